package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/dbmetrics"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/psqlbuilder"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/types"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"vendor_id",
	"customer_phone",
	"customer_name",
	"customer_email",
	"service_name",
	"notes",
	"booking_date",
	"start_time",
	"token",
	"status",
	"completed",
	"completed_by",
	"estimated_wait_minutes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её: при
// создании бронирования с выдачей талона это обязательно, иначе
// уникальность (vendor, date, token) держится только на constraint.
// Нарушение constraint транслируется в ErrTokenTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"vendor_id",
			"customer_phone",
			"customer_name",
			"customer_email",
			"service_name",
			"notes",
			"booking_date",
			"start_time",
			"token",
			"status",
			"completed",
			"estimated_wait_minutes",
		).
		Values(
			booking.VendorID,
			booking.CustomerPhone,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.ServiceName,
			booking.Notes,
			booking.BookingDate,
			booking.StartTime,
			booking.Token,
			booking.Status,
			booking.Completed,
			booking.EstimatedWaitMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueTokenViolation(err) {
			// цепочка с кодом 23505 сохраняется для ретрая транзакции
			return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrTokenTaken, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FindByTokenAndPhone находит бронирование по талону и точному номеру
// телефона. Если date не nil, дополнительно фильтрует по дате.
func (r *Repository) FindByTokenAndPhone(ctx context.Context, token int, phone string, date *time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"token": token, "customer_phone": phone})

	if date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *date})
	}

	query, args, err := selectBuilder.
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByTokenAndPhone - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "FindByTokenAndPhone")
}

// LatestByEmail возвращает последнее по времени создания бронирование
// клиента с указанным email
func (r *Repository) LatestByEmail(ctx context.Context, email string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LatestByEmail - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "LatestByEmail")
}

// GetByVendorWithFilter получает бронирования вендора с фильтрацией по
// статусу и дате и пагинацией. Сортировка: дата, затем время.
func (r *Repository) GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"vendor_id": filter.VendorID}).
		OrderBy("booking_date ASC", "start_time ASC", "token ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.
			Limit(uint64(filter.Limit)).
			Offset(uint64(filter.Offset()))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByVendorWithFilter считает бронирования под тем же фильтром,
// что и GetByVendorWithFilter (для пагинации)
func (r *Repository) CountByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From(bookingsTable).
		Where(squirrel.Eq{"vendor_id": filter.VendorID})

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByVendorWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByVendorWithFilter - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// MaxTokenForDate возвращает максимальный талон среди всех бронирований
// вендора на дату (0, если бронирований нет). Учитываются все статусы:
// отмененные талоны не переиспользуются.
func (r *Repository) MaxTokenForDate(ctx context.Context, vendorID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(token), 0)").
		From(bookingsTable).
		Where(squirrel.Eq{"vendor_id": vendorID, "booking_date": date}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MaxTokenForDate - build select query: %w", ErrBuildQuery, err)
	}

	var maxToken int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxToken); err != nil {
		return 0, fmt.Errorf("%w: MaxTokenForDate - scan max token: %w", ErrScanRow, err)
	}

	return maxToken, nil
}

// CountAhead считает активные бронирования со строго меньшим талоном
// на ту же дату у того же вендора, основа расчета позиции в очереди
func (r *Repository) CountAhead(ctx context.Context, vendorID int64, date time.Time, token int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(bookingsTable).
		Where(squirrel.Eq{
			"vendor_id":    vendorID,
			"booking_date": date,
			"status":       domain.StatusBooked,
			"completed":    false,
		}).
		Where(squirrel.Lt{"token": token}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountAhead - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAhead - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// TokenInUse проверяет, занят ли талон другим бронированием вендора
// на указанную дату (для ручного редактирования талона)
func (r *Repository) TokenInUse(ctx context.Context, vendorID int64, date time.Time, token int, excludeID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(bookingsTable).
		Where(squirrel.Eq{
			"vendor_id":    vendorID,
			"booking_date": date,
			"token":        token,
		}).
		Where(squirrel.NotEq{"id": excludeID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TokenInUse - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: TokenInUse - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// SearchActiveByPhone ищет активные предстоящие бронирования по номеру
// телефона. Совпадение точное либо по суффиксу: так находятся номера,
// сохраненные с кодом страны, при поиске без него.
func (r *Repository) SearchActiveByPhone(ctx context.Context, phoneDigits string, today time.Time, now types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Or{
			squirrel.Eq{"customer_phone": phoneDigits},
			squirrel.Like{"customer_phone": "%" + phoneDigits},
		}).
		Where(squirrel.NotEq{"status": statusStrings(domain.TerminalStatuses)}).
		Where(squirrel.Or{
			squirrel.Gt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.GtOrEq{"start_time": string(now)},
			},
		}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SearchActiveByPhone - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchActiveByPhone - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// BookedTimesForDate возвращает времена активных бронирований вендора
// на дату (для генерации свободных слотов)
func (r *Repository) BookedTimesForDate(ctx context.Context, vendorID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("start_time").
		From(bookingsTable).
		Where(squirrel.Eq{
			"vendor_id":    vendorID,
			"booking_date": date,
			"status":       domain.StatusBooked,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: BookedTimesForDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: BookedTimesForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: BookedTimesForDate - scan time: %w", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: BookedTimesForDate - rows error: %w", ErrScanRow, err)
	}

	return times, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.exec(ctx, "UpdateStatus", psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// Cancel помечает бронирование отмененным и фиксирует время отмены
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	return r.exec(ctx, "Cancel", psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// SetCompleted переключает флаг завершения и имя сотрудника.
// При снятии флага completed_by обнуляется.
func (r *Repository) SetCompleted(ctx context.Context, id int64, completed bool, completedBy *string) error {
	updateBuilder := psqlbuilder.Update(bookingsTable).
		Set("completed", completed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if completed {
		updateBuilder = updateBuilder.
			Set("status", domain.StatusDone).
			Set("completed_by", completedBy)
	} else {
		updateBuilder = updateBuilder.
			Set("status", domain.StatusBooked).
			Set("completed_by", nil)
	}

	return r.exec(ctx, "SetCompleted", updateBuilder)
}

// Reschedule переносит бронирование на новые дату и время.
// Талон не меняется: перенесенное бронирование сохраняет исходный номер.
func (r *Repository) Reschedule(ctx context.Context, id int64, newDate time.Time, newTime types.TimeString) error {
	err := r.exec(ctx, "Reschedule", psqlbuilder.Update(bookingsTable).
		Set("booking_date", newDate).
		Set("start_time", newTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))

	if err != nil && isUniqueTokenViolation(err) {
		return ErrTokenTaken
	}
	return err
}

// UpdateToken задает бронированию новый талон.
// Нарушение уникальности транслируется в ErrTokenTaken.
func (r *Repository) UpdateToken(ctx context.Context, id int64, token int) error {
	err := r.exec(ctx, "UpdateToken", psqlbuilder.Update(bookingsTable).
		Set("token", token).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))

	if err != nil && isUniqueTokenViolation(err) {
		return ErrTokenTaken
	}
	return err
}

// UpdateWaitTime задает оценку времени обслуживания в минутах
func (r *Repository) UpdateWaitTime(ctx context.Context, id int64, minutes int) error {
	return r.exec(ctx, "UpdateWaitTime", psqlbuilder.Update(bookingsTable).
		Set("estimated_wait_minutes", minutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}))
}

// exec выполняет UPDATE и транслирует rowsAffected == 0 в ErrBookingNotFound
func (r *Repository) exec(ctx context.Context, method string, updateBuilder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueTokenViolation(err) {
			return err
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку результата
func (r *Repository) scanBooking(row *sql.Row, method string) (*domain.Booking, error) {
	var b domain.Booking
	var notes sql.NullString
	var completedBy sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.VendorID,
		&b.CustomerPhone,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.ServiceName,
		&notes,
		&b.BookingDate,
		&b.StartTime,
		&b.Token,
		&b.Status,
		&b.Completed,
		&completedBy,
		&b.EstimatedWaitMinutes,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, method, err)
	}

	b.Notes = notes.String
	if completedBy.Valid {
		b.CompletedBy = &completedBy.String
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var notes sql.NullString
		var completedBy sql.NullString
		var cancelledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.VendorID,
			&b.CustomerPhone,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.ServiceName,
			&notes,
			&b.BookingDate,
			&b.StartTime,
			&b.Token,
			&b.Status,
			&b.Completed,
			&completedBy,
			&b.EstimatedWaitMinutes,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		b.Notes = notes.String
		if completedBy.Valid {
			b.CompletedBy = &completedBy.String
		}
		if cancelledAt.Valid {
			t := cancelledAt.Time
			b.CancelledAt = &t
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// statusStrings конвертирует статусы в строки для squirrel
func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// isUniqueTokenViolation проверяет нарушение уникального ограничения
// (vendor_id, booking_date, token)
func isUniqueTokenViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == "23505" && pqErr.Constraint == "bookings_vendor_date_token_key"
}
