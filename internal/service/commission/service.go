package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
)

// DueOwner владелец, которому пора оплатить комиссию
type DueOwner struct {
	OwnerID int64
	SalonID int64
	Status  domain.CommissionStatus
}

// Service вычисляет состояние комиссии владельцев.
// Состояние не хранится и пересчитывается при каждом вызове.
type Service struct {
	salonRepo    SalonRepository
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса комиссии
func NewService(
	salonRepo SalonRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:    salonRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// GetStatus возвращает состояние комиссии владельца. Доступно самому владельцу и администратору.
func (s *Service) GetStatus(ctx context.Context, caller domain.Identity, ownerID int64) (domain.CommissionStatus, error) {
	if ownerID <= 0 {
		return domain.CommissionStatus{}, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if caller.UserID != ownerID && !caller.IsAdmin() {
		s.logger.Warn("GetStatus: access denied for user=%d to owner=%d", caller.UserID, ownerID)
		return domain.CommissionStatus{}, ErrAccessDenied
	}

	return s.Evaluate(ctx, ownerID)
}

// Evaluate вычисляет состояние комиссии владельца ownerID.
// Владелец без салона не имеет заработка и долга.
func (s *Service) Evaluate(ctx context.Context, ownerID int64) (domain.CommissionStatus, error) {
	salon, err := s.salonRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return s.evaluate(ctx, ownerID, nil)
		}
		s.logger.Error("Evaluate: failed to get salon for owner=%d: %v", ownerID, err)
		return domain.CommissionStatus{}, fmt.Errorf("%w: Evaluate - get salon: %v", ErrInternal, err)
	}

	return s.evaluate(ctx, ownerID, salon)
}

// EvaluateSalon вычисляет состояние комиссии владельца уже загруженного салона
func (s *Service) EvaluateSalon(ctx context.Context, salon *domain.Salon) (domain.CommissionStatus, error) {
	return s.evaluate(ctx, salon.OwnerID, salon)
}

// IsSuspended сообщает, приостановлен ли салон за неуплату комиссии
func (s *Service) IsSuspended(ctx context.Context, salon *domain.Salon) (bool, error) {
	status, err := s.EvaluateSalon(ctx, salon)
	if err != nil {
		return false, err
	}
	return status.IsSuspended, nil
}

// DueOwners возвращает владельцев, у которых сейчас открыт период оплаты и есть долг
func (s *Service) DueOwners(ctx context.Context) ([]DueOwner, error) {
	salons, err := s.salonRepo.List(ctx, domain.SalonFilter{})
	if err != nil {
		s.logger.Error("DueOwners: failed to list salons: %v", err)
		return nil, fmt.Errorf("%w: DueOwners - list salons: %v", ErrInternal, err)
	}

	due := make([]DueOwner, 0)
	for _, salon := range salons {
		status, err := s.evaluate(ctx, salon.OwnerID, salon)
		if err != nil {
			return nil, err
		}
		if status.IsDue {
			due = append(due, DueOwner{OwnerID: salon.OwnerID, SalonID: salon.ID, Status: status})
		}
	}

	return due, nil
}

func (s *Service) evaluate(ctx context.Context, ownerID int64, salon *domain.Salon) (domain.CommissionStatus, error) {
	earnings := decimal.Zero
	if salon != nil {
		total, err := s.bookingRepo.SumCompletedTotal(ctx, salon.ID)
		if err != nil {
			s.logger.Error("evaluate: failed to sum earnings for salon=%d: %v", salon.ID, err)
			return domain.CommissionStatus{}, fmt.Errorf("%w: evaluate - sum earnings: %v", ErrInternal, err)
		}
		earnings = total
	}

	paid, err := s.paymentRepo.SumConfirmedByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("evaluate: failed to sum payments for owner=%d: %v", ownerID, err)
		return domain.CommissionStatus{}, fmt.Errorf("%w: evaluate - sum payments: %v", ErrInternal, err)
	}

	day := s.timeProvider.Now().In(s.loc).Day()

	return domain.EvaluateCommission(earnings, paid, day), nil
}
