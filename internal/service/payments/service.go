package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/payment"
)

// Service сервис платежей комиссии. Долг уменьшают только подтверждённые администратором платежи.
type Service struct {
	paymentRepo  PaymentRepository
	notifier     Notifier
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, notifier Notifier, loc *time.Location, logger Logger) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// Submit регистрирует платёж владельца в статусе PENDING
func (s *Service) Submit(ctx context.Context, caller domain.Identity, req *SubmitPaymentRequest) (*PaymentResponse, error) {
	s.logger.Info("Submit: owner=%d submits payment amount=%s", caller.UserID, req.Amount.String())

	if caller.Role != domain.RoleOwner {
		s.logger.Warn("Submit: user=%d with role=%s cannot submit payments", caller.UserID, caller.Role)
		return nil, ErrAccessDenied
	}

	trxID := strings.TrimSpace(req.TrxID)
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if trxID == "" || utf8.RuneCountInString(trxID) > domain.MaxTrxIDLen {
		return nil, fmt.Errorf("%w: trxId must be 1..%d characters", ErrInvalidInput, domain.MaxTrxIDLen)
	}

	date := s.timeProvider.Now().In(s.loc)
	if req.Date != nil {
		parsed, err := time.ParseInLocation(domain.DateFormat, *req.Date, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		date = parsed
	}

	created, err := s.paymentRepo.Create(ctx, &domain.OwnerPayment{
		OwnerID: caller.UserID,
		Amount:  req.Amount,
		Date:    date,
		TrxID:   trxID,
		Status:  domain.PaymentPending,
	})
	if err != nil {
		s.logger.Error("Submit: repository error for owner=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: payment id=%d registered for owner=%d", created.ID, caller.UserID)
	return fromDomainPayment(created), nil
}

// List возвращает платежи. Администратор видит все, владелец только свои.
func (s *Service) List(ctx context.Context, caller domain.Identity, req *ListPaymentsRequest) (*PaymentListResponse, error) {
	ownerID := req.OwnerID
	if !caller.IsAdmin() {
		if caller.Role != domain.RoleOwner {
			return nil, ErrAccessDenied
		}
		ownerID = &caller.UserID
	}

	var status *domain.PaymentStatus
	if req.Status != nil {
		parsed, ok := domain.ParsePaymentStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, *req.Status)
		}
		status = &parsed
	}

	payments, err := s.paymentRepo.List(ctx, ownerID, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &PaymentListResponse{Payments: make([]PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, *fromDomainPayment(p))
	}
	return resp, nil
}

// Confirm подтверждает платёж. Только администратор; владелец получает уведомление.
func (s *Service) Confirm(ctx context.Context, caller domain.Identity, id int64) (*PaymentResponse, error) {
	s.logger.Info("Confirm: confirming payment id=%d by user=%d", id, caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("Confirm: user=%d is not an admin", caller.UserID)
		return nil, ErrAccessDenied
	}

	confirmed, err := s.paymentRepo.Confirm(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
			s.logger.Warn("Confirm: payment id=%d not found", id)
			return nil, ErrPaymentNotFound
		case errors.Is(err, paymentRepo.ErrAlreadyConfirmed):
			s.logger.Warn("Confirm: payment id=%d already confirmed", id)
			return nil, ErrAlreadyConfirmed
		}
		s.logger.Error("Confirm: repository error for payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	s.notifier.Notify(ctx, confirmed.OwnerID, domain.PaymentConfirmedNotice())

	s.logger.Info("Confirm: payment id=%d confirmed for owner=%d", id, confirmed.OwnerID)
	return fromDomainPayment(confirmed), nil
}
