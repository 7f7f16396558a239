package domain

import (
	"errors"
	"time"
)

// Plan and billing cycle identifiers for the stubbed subscription flow.
const (
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanPremium = "premium"

	CycleMonthly = "monthly"
	CycleAnnual  = "annual"
)

// PaymentStatus represents the state of a stub payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// SubscriptionStatus values mirrored onto the vendor record.
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
	SubscriptionExpired  = "expired"
)

// ErrUnknownPlan возвращается для неизвестной комбинации план/цикл
var ErrUnknownPlan = errors.New("domain: unknown plan type or billing cycle")

// Payment is a stubbed, non-cryptographic payment record. The client-supplied
// payment token is matched for uniqueness only; no gateway is involved.
type Payment struct {
	ID           int64
	VendorID     int64
	Amount       int // plan price, whole currency units
	PlanType     string
	BillingCycle string

	// PaymentToken is the opaque client-supplied token; unique per payment.
	PaymentToken string
	// Reference is the server-generated payment reference (uuid).
	Reference string

	Status    PaymentStatus
	ExpiresAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanAmount returns the price of a plan for a billing cycle.
func PlanAmount(planType, billingCycle string) (int, error) {
	monthly := map[string]int{
		PlanStarter: 600,
		PlanGrowth:  2400,
		PlanPremium: 5000,
	}

	base, ok := monthly[planType]
	if !ok {
		return 0, ErrUnknownPlan
	}

	switch billingCycle {
	case CycleMonthly:
		return base, nil
	case CycleAnnual:
		return base * 10, nil
	default:
		return 0, ErrUnknownPlan
	}
}

// SubscriptionTerm returns the duration added by one billing cycle.
func SubscriptionTerm(billingCycle string) (time.Duration, error) {
	switch billingCycle {
	case CycleMonthly:
		return 30 * 24 * time.Hour, nil
	case CycleAnnual:
		return 365 * 24 * time.Hour, nil
	default:
		return 0, ErrUnknownPlan
	}
}
