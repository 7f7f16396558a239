package models

import (
	"time"

	"github.com/shaswat2031/Appointment-Booking-System-for-Salons-Clinics/internal/domain"
)

// Request модели

// ProcessPaymentRequest запрос на оплату подписки
type ProcessPaymentRequest struct {
	VendorID     int64
	PlanType     string `json:"planType"`
	BillingCycle string `json:"billingCycle"`
	PaymentToken string `json:"paymentToken"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	Reference    string    `json:"reference"`
	VendorID     int64     `json:"vendorId"`
	Amount       int       `json:"amount"`
	PlanType     string    `json:"planType"`
	BillingCycle string    `json:"billingCycle"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		Reference:    p.Reference,
		VendorID:     p.VendorID,
		Amount:       p.Amount,
		PlanType:     p.PlanType,
		BillingCycle: p.BillingCycle,
		Status:       string(p.Status),
		ExpiresAt:    p.ExpiresAt,
		CreatedAt:    p.CreatedAt,
	}
}
