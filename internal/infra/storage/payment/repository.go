package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/dbmetrics"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/pkg/psqlbuilder"
)

const paymentsTable = "payments"

var paymentColumns = []string{
	"id",
	"vendor_id",
	"amount",
	"plan_type",
	"billing_cycle",
	"payment_token",
	"reference",
	"status",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для stub-платежей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж. Повторное использование платежного токена
// транслируется в ErrTokenUsed.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(paymentsTable).
		Columns(
			"vendor_id",
			"amount",
			"plan_type",
			"billing_cycle",
			"payment_token",
			"reference",
			"status",
			"expires_at",
		).
		Values(
			p.VendorID,
			p.Amount,
			p.PlanType,
			p.BillingCycle,
			p.PaymentToken,
			p.Reference,
			p.Status,
			p.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == "23505" {
			return nil, ErrTokenUsed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByToken находит платеж по платежному токену
func (r *Repository) GetByToken(ctx context.Context, paymentToken string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From(paymentsTable).
		Where(squirrel.Eq{"payment_token": paymentToken}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.VendorID,
		&p.Amount,
		&p.PlanType,
		&p.BillingCycle,
		&p.PaymentToken,
		&p.Reference,
		&p.Status,
		&p.ExpiresAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan payment: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
