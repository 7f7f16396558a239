package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
	paymentRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/payment"
	vendorRepo "github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/infra/storage/vendor"
	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/service/payments/models"
)

// Service stub-сервис оплаты подписок. Денег не двигает: платежный токен
// клиента проверяется только на уникальность, сумма берется из тарифа.
type Service struct {
	paymentRepo PaymentRepository
	vendorRepo  VendorRepository
	txManager   TransactionManager
	logger      Logger

	now func() time.Time
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	vendorRepo VendorRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		vendorRepo:  vendorRepo,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Process проводит stub-платеж: фиксирует запись об оплате и продлевает
// подписку вендора в одной транзакции
func (s *Service) Process(ctx context.Context, req *models.ProcessPaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Process: vendor=%d, plan=%s, cycle=%s", req.VendorID, req.PlanType, req.BillingCycle)

	paymentToken := strings.TrimSpace(req.PaymentToken)
	if paymentToken == "" {
		return nil, fmt.Errorf("%w: paymentToken is required", ErrInvalidInput)
	}

	amount, err := domain.PlanAmount(req.PlanType, req.BillingCycle)
	if err != nil {
		s.logger.Warn("Process: unknown plan=%s cycle=%s for vendor=%d", req.PlanType, req.BillingCycle, req.VendorID)
		return nil, fmt.Errorf("%w: unknown plan type or billing cycle", ErrInvalidInput)
	}

	term, err := domain.SubscriptionTerm(req.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown billing cycle", ErrInvalidInput)
	}

	if _, err := s.vendorRepo.GetByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("Process: vendor=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("Process: failed to get vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: Process - failed to get vendor: %w", ErrInternal, err)
	}

	expiresAt := s.now().UTC().Add(term)

	payment := &domain.Payment{
		VendorID:     req.VendorID,
		Amount:       amount,
		PlanType:     req.PlanType,
		BillingCycle: req.BillingCycle,
		PaymentToken: paymentToken,
		Reference:    uuid.NewString(),
		Status:       domain.PaymentCompleted,
		ExpiresAt:    expiresAt,
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.paymentRepo.Create(txCtx, payment); err != nil {
			if errors.Is(err, paymentRepo.ErrTokenUsed) {
				return ErrTokenUsed
			}
			return fmt.Errorf("%w: Process - failed to create payment: %w", ErrInternal, err)
		}

		sub := domain.Subscription{
			PlanType:     req.PlanType,
			BillingCycle: req.BillingCycle,
			Status:       domain.SubscriptionActive,
			ExpiresAt:    &expiresAt,
		}
		if err := s.vendorRepo.UpdateSubscription(txCtx, req.VendorID, sub); err != nil {
			return fmt.Errorf("%w: Process - failed to update subscription: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrTokenUsed) {
			s.logger.Warn("Process: payment token already used for vendor=%d", req.VendorID)
		} else {
			s.logger.Error("Process: failed for vendor=%d: %v", req.VendorID, err)
		}
		return nil, err
	}

	s.logger.Info("Process: payment reference=%s recorded for vendor=%d, amount=%d", payment.Reference, req.VendorID, amount)
	return models.FromDomainPayment(payment), nil
}

// Verify возвращает платеж по платежному токену
func (s *Service) Verify(ctx context.Context, paymentToken string) (*models.PaymentResponse, error) {
	paymentToken = strings.TrimSpace(paymentToken)
	if paymentToken == "" {
		return nil, fmt.Errorf("%w: paymentToken is required", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.GetByToken(ctx, paymentToken)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Verify: payment not found for token")
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Verify: repository error: %v", err)
		return nil, fmt.Errorf("%w: Verify - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainPayment(payment), nil
}
