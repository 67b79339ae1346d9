package salons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salonservice"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// ListServices возвращает услуги салона. Публичный метод.
func (s *Service) ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	if _, err := s.getSalon(ctx, "ListServices", salonID); err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		s.logger.Error("ListServices: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// AddService добавляет услугу в салон владельца
func (s *Service) AddService(ctx context.Context, caller domain.Identity, salonID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("AddService: adding service to salon id=%d by user=%d", salonID, caller.UserID)

	if err := s.checkOwner(ctx, "AddService", caller, salonID); err != nil {
		return nil, err
	}

	if req.Name == nil || req.Price == nil || req.DurationMinutes == nil {
		return nil, fmt.Errorf("%w: name, price and durationMinutes are required", ErrInvalidInput)
	}
	if err := validateService(req); err != nil {
		s.logger.Warn("AddService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		SalonID:         salonID,
		Name:            strings.TrimSpace(*req.Name),
		Price:           *req.Price,
		DurationMinutes: *req.DurationMinutes,
		Image:           req.Image,
	})
	if err != nil {
		s.logger.Error("AddService: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddService: created service id=%d in salon id=%d", created.ID, salonID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу. Новая цена не влияет на уже созданные бронирования.
func (s *Service) UpdateService(ctx context.Context, caller domain.Identity, salonID, serviceID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d in salon id=%d by user=%d", serviceID, salonID, caller.UserID)

	if err := s.checkOwner(ctx, "UpdateService", caller, salonID); err != nil {
		return nil, err
	}

	if err := validateService(req); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	upd := serviceRepo.Update{
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Image:           req.Image,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		upd.Name = &name
	}

	updated, err := s.serviceRepo.Update(ctx, salonID, serviceID, upd)
	if err != nil {
		return nil, s.mapServiceError("UpdateService", serviceID, err)
	}

	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу салона
func (s *Service) DeleteService(ctx context.Context, caller domain.Identity, salonID, serviceID int64) error {
	if err := s.checkOwner(ctx, "DeleteService", caller, salonID); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, salonID, serviceID); err != nil {
		return s.mapServiceError("DeleteService", serviceID, err)
	}

	s.logger.Info("DeleteService: service id=%d deleted from salon id=%d", serviceID, salonID)
	return nil
}

func (s *Service) checkOwner(ctx context.Context, method string, caller domain.Identity, salonID int64) error {
	salon, err := s.getSalon(ctx, method, salonID)
	if err != nil {
		return err
	}
	if salon.OwnerID != caller.UserID {
		s.logger.Warn("%s: user=%d is not the owner of salon id=%d", method, caller.UserID, salonID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) mapServiceError(method string, id int64, err error) error {
	if errors.Is(err, serviceRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service id=%d not found", method, id)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error for service id=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func validateService(req *models.ServiceRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	return nil
}
