package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateCommission(t *testing.T) {
	tests := []struct {
		name          string
		earnings      int64
		paid          int64
		day           int
		wantDebt      int64
		wantDue       bool
		wantSuspended bool
	}{
		{name: "grace window with debt", earnings: 10000, paid: 0, day: 12, wantDebt: 1000, wantDue: true},
		{name: "past grace window with debt", earnings: 10000, paid: 0, day: 20, wantDebt: 1000, wantSuspended: true},
		{name: "debt paid off after grace window", earnings: 10000, paid: 1000, day: 20, wantDebt: 0},
		{name: "before grace window", earnings: 10000, paid: 0, day: 9, wantDebt: 1000},
		{name: "first day of window", earnings: 10000, paid: 0, day: 10, wantDebt: 1000, wantDue: true},
		{name: "last day of window", earnings: 10000, paid: 0, day: 15, wantDebt: 1000, wantDue: true},
		{name: "first suspended day", earnings: 10000, paid: 0, day: 16, wantDebt: 1000, wantSuspended: true},
		{name: "debt below threshold", earnings: 99, paid: 0, day: 20, wantDebt: 9},
		{name: "debt exactly threshold", earnings: 100, paid: 0, day: 20, wantDebt: 10, wantSuspended: true},
		{name: "overpaid is clamped", earnings: 1000, paid: 500, day: 20, wantDebt: 0},
		{name: "target is floored", earnings: 1059, paid: 0, day: 12, wantDebt: 105, wantDue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := EvaluateCommission(decimal.NewFromInt(tt.earnings), decimal.NewFromInt(tt.paid), tt.day)

			assert.True(t, decimal.NewFromInt(tt.wantDebt).Equal(status.Debt), "debt = %s", status.Debt)
			assert.Equal(t, tt.wantDue, status.IsDue)
			assert.Equal(t, tt.wantSuspended, status.IsSuspended)
		})
	}
}

func TestEvaluateCommission_FractionalEarnings(t *testing.T) {
	status := EvaluateCommission(decimal.RequireFromString("199.99"), decimal.Zero, 12)

	assert.True(t, decimal.NewFromInt(19).Equal(status.CommissionTarget))
	assert.True(t, status.IsDue)
}

func TestSalon_IsBookable(t *testing.T) {
	salon := &Salon{IsActive: true, Status: SalonApproved}

	assert.True(t, salon.IsBookable(CommissionStatus{}))
	assert.False(t, salon.IsBookable(CommissionStatus{IsSuspended: true}), "suspension beats owner activation")

	salon.IsActive = false
	assert.False(t, salon.IsBookable(CommissionStatus{}))

	salon.IsActive = true
	salon.Status = SalonPending
	assert.False(t, salon.IsBookable(CommissionStatus{}))
}

func TestSalon_EffectivePriority(t *testing.T) {
	p := 3
	assert.Equal(t, 3, (&Salon{Priority: &p}).EffectivePriority())
	assert.Equal(t, DefaultSalonPriority, (&Salon{}).EffectivePriority())
}
