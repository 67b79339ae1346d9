package commission_due_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ErrInternal возвращается, если не удалось вычислить должников
var ErrInternal = errors.New("commission_due_reminders: internal error")

// Response итог прохода
type Response struct {
	Due  int
	Sent int
}

// UseCase напоминает владельцам об оплате комиссии в период 10..15 числа.
// Каждому владельцу не чаще одного раза в день.
type UseCase struct {
	commission   CommissionEvaluator
	store        ReminderStore
	notifier     Notifier
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(commission CommissionEvaluator, store ReminderStore, notifier Notifier, loc *time.Location, logger Logger) *UseCase {
	return &UseCase{
		commission:   commission,
		store:        store,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Execute выполняет один проход
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	due, err := uc.commission.DueOwners(ctx)
	if err != nil {
		uc.logger.Error("CommissionDueReminders: failed to evaluate owners: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	today := uc.timeProvider.Now().In(uc.loc)
	resp := &Response{Due: len(due)}

	for _, owner := range due {
		marked, err := uc.store.MarkCommissionReminded(ctx, owner.OwnerID, today)
		if err != nil {
			uc.logger.Warn("CommissionDueReminders: skipping owner=%d, reminder store unavailable: %v", owner.OwnerID, err)
			continue
		}
		if !marked {
			continue
		}

		uc.notifier.Notify(ctx, owner.OwnerID, domain.CommissionDueNotice(owner.Status.Debt))
		resp.Sent++

		uc.logger.Info("CommissionDueReminders: reminded owner=%d, debt=%s", owner.OwnerID, owner.Status.Debt.String())
	}

	return resp, nil
}
