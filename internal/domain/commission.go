package domain

import "github.com/shopspring/decimal"

// Commission policy. Fixed business constants, not configuration.
const (
	CommissionRatePercent = 10
	GraceWindowStartDay   = 10
	GraceWindowEndDay     = 15
)

var (
	// CommissionRate share of completed earnings owed to the platform
	CommissionRate = decimal.New(CommissionRatePercent, -2)

	// DebtThreshold debt at or above which an owner is due or suspended
	DebtThreshold = decimal.NewFromInt(10)
)

// CommissionStatus is the derived payment state of an owner.
// It is recomputed from current data on every evaluation and never stored.
type CommissionStatus struct {
	TotalEarnings    decimal.Decimal
	CommissionTarget decimal.Decimal
	TotalPaid        decimal.Decimal
	Debt             decimal.Decimal
	IsDue            bool
	IsSuspended      bool
}

// EvaluateCommission computes the commission state for the given day of month.
//
//	target = floor(earnings * 10%)
//	debt   = max(0, target - paid)
//	due    = 10 <= day <= 15 && debt >= 10
//	susp   = day > 15 && debt >= 10
func EvaluateCommission(totalEarnings, totalPaid decimal.Decimal, dayOfMonth int) CommissionStatus {
	target := totalEarnings.Mul(CommissionRate).Floor()

	debt := target.Sub(totalPaid)
	if debt.IsNegative() {
		debt = decimal.Zero
	}

	owes := debt.GreaterThanOrEqual(DebtThreshold)

	return CommissionStatus{
		TotalEarnings:    totalEarnings,
		CommissionTarget: target,
		TotalPaid:        totalPaid,
		Debt:             debt,
		IsDue:            owes && dayOfMonth >= GraceWindowStartDay && dayOfMonth <= GraceWindowEndDay,
		IsSuspended:      owes && dayOfMonth > GraceWindowEndDay,
	}
}
