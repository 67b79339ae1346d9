package salons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

// Service сервис салонов: публичный каталог, кабинет владельца и модерация
type Service struct {
	salonRepo   SalonRepository
	serviceRepo ServiceRepository
	commission  CommissionEvaluator
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	commission CommissionEvaluator,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		salonRepo:   salonRepo,
		serviceRepo: serviceRepo,
		commission:  commission,
		notifier:    notifier,
		logger:      logger,
	}
}

// ListBookable возвращает публичный список салонов: одобренные, активные и не приостановленные.
// Порядок: приоритет (без приоритета = 99), затем ID.
func (s *Service) ListBookable(ctx context.Context, search string) (*models.SalonListResponse, error) {
	s.logger.Info("ListBookable: listing salons, search=%q", search)

	salons, err := s.salonRepo.List(ctx, domain.SalonFilter{Search: search, OnlyListable: true})
	if err != nil {
		s.logger.Error("ListBookable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookable - repository error: %v", ErrInternal, err)
	}

	bookable := make([]*domain.Salon, 0, len(salons))
	for _, salon := range salons {
		suspended, err := s.commission.IsSuspended(ctx, salon)
		if err != nil {
			// Салон с неизвестным состоянием комиссии не показываем
			s.logger.Warn("ListBookable: skipping salon id=%d, commission check failed: %v", salon.ID, err)
			continue
		}
		if suspended {
			continue
		}
		bookable = append(bookable, salon)
	}

	s.logger.Info("ListBookable: %d of %d salons are bookable", len(bookable), len(salons))
	return models.FromDomainSalonList(bookable), nil
}

// ListAll возвращает все салоны без фильтрации. Только для администратора.
func (s *Service) ListAll(ctx context.Context, caller domain.Identity, search string) (*models.SalonListResponse, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("ListAll: user=%d is not an admin", caller.UserID)
		return nil, ErrAccessDenied
	}

	salons, err := s.salonRepo.List(ctx, domain.SalonFilter{Search: search})
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSalonList(salons), nil
}

// Get получает салон вместе с услугами. Публичный метод.
func (s *Service) Get(ctx context.Context, id int64) (*models.SalonResponse, error) {
	s.logger.Info("Get: fetching salon id=%d", id)

	salon, err := s.getSalon(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	if err := s.attachServices(ctx, "Get", salon); err != nil {
		return nil, err
	}

	return models.FromDomainSalon(salon), nil
}

// GetMine получает салон текущего владельца
func (s *Service) GetMine(ctx context.Context, caller domain.Identity) (*models.SalonResponse, error) {
	salon, err := s.salonRepo.GetByOwnerID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetMine: repository error for owner=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: GetMine - repository error: %v", ErrInternal, err)
	}

	if err := s.attachServices(ctx, "GetMine", salon); err != nil {
		return nil, err
	}

	return models.FromDomainSalon(salon), nil
}

// Create создает салон владельца. Новый салон ожидает модерации.
func (s *Service) Create(ctx context.Context, caller domain.Identity, req *models.CreateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Create: creating salon by user=%d", caller.UserID)

	// 1. Только владельцы могут создавать салоны
	if caller.Role != domain.RoleOwner {
		s.logger.Warn("Create: user=%d with role=%s cannot create salons", caller.UserID, caller.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем входные данные
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if err := validateSalonText(name, location); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем салон
	salon := &domain.Salon{
		OwnerID:     caller.UserID,
		Name:        name,
		Location:    location,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    true,
		Status:      domain.SalonPending,
	}

	created, err := s.salonRepo.Create(ctx, salon)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonAlreadyExists) {
			s.logger.Warn("Create: owner=%d already has a salon", caller.UserID)
			return nil, ErrSalonAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created salon id=%d for owner=%d", created.ID, caller.UserID)
	return models.FromDomainSalon(created), nil
}

// Update обновляет данные салона. Доступно владельцу салона.
// Администратор может менять только видимость (isActive).
func (s *Service) Update(ctx context.Context, caller domain.Identity, id int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Update: updating salon id=%d by user=%d", id, caller.UserID)

	salon, err := s.getSalon(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	isOwner := salon.OwnerID == caller.UserID
	if !isOwner {
		adminToggle := caller.IsAdmin() && req.IsActive != nil &&
			req.Name == nil && req.Location == nil && req.Description == nil && req.Image == nil
		if !adminToggle {
			s.logger.Warn("Update: user=%d cannot update salon id=%d", caller.UserID, id)
			return nil, ErrAccessDenied
		}
	}

	upd := salonRepo.Update{
		Description: req.Description,
		Image:       req.Image,
		IsActive:    req.IsActive,
	}

	if req.Name != nil || req.Location != nil {
		name := strings.TrimSpace(derefOr(req.Name, salon.Name))
		location := strings.TrimSpace(derefOr(req.Location, salon.Location))
		if err := validateSalonText(name, location); err != nil {
			s.logger.Warn("Update: validation failed for salon id=%d: %v", id, err)
			return nil, err
		}
		upd.Name = &name
		upd.Location = &location
	}

	updated, err := s.salonRepo.UpdateInfo(ctx, id, upd)
	if err != nil {
		return nil, s.mapSalonError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated salon id=%d", id)
	return models.FromDomainSalon(updated), nil
}

// SetStatus меняет статус модерации салона. Только администратор; владелец получает уведомление.
func (s *Service) SetStatus(ctx context.Context, caller domain.Identity, id int64, rawStatus string) (*models.SalonResponse, error) {
	s.logger.Info("SetStatus: setting salon id=%d status=%s by user=%d", id, rawStatus, caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("SetStatus: user=%d is not an admin", caller.UserID)
		return nil, ErrAccessDenied
	}

	status, ok := domain.ParseSalonStatus(rawStatus)
	if !ok {
		return nil, fmt.Errorf("%w: unknown salon status %q", ErrInvalidInput, rawStatus)
	}

	updated, err := s.salonRepo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, s.mapSalonError("SetStatus", id, err)
	}

	s.notifier.Notify(ctx, updated.OwnerID, domain.SalonStatusNotice(status))

	s.logger.Info("SetStatus: salon id=%d is now %s", id, status)
	return models.FromDomainSalon(updated), nil
}

// SetPriority задает приоритет сортировки салона. nil сбрасывает приоритет. Только администратор.
func (s *Service) SetPriority(ctx context.Context, caller domain.Identity, id int64, priority *int) (*models.SalonResponse, error) {
	if !caller.IsAdmin() {
		s.logger.Warn("SetPriority: user=%d is not an admin", caller.UserID)
		return nil, ErrAccessDenied
	}

	if priority != nil && *priority < 0 {
		return nil, fmt.Errorf("%w: priority must not be negative", ErrInvalidInput)
	}

	updated, err := s.salonRepo.SetPriority(ctx, id, priority)
	if err != nil {
		return nil, s.mapSalonError("SetPriority", id, err)
	}

	s.logger.Info("SetPriority: salon id=%d priority=%d", id, updated.EffectivePriority())
	return models.FromDomainSalon(updated), nil
}

// Delete удаляет салон вместе с услугами и бронированиями. Только администратор.
func (s *Service) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	if !caller.IsAdmin() {
		s.logger.Warn("Delete: user=%d is not an admin", caller.UserID)
		return ErrAccessDenied
	}

	if err := s.salonRepo.Delete(ctx, id); err != nil {
		return s.mapSalonError("Delete", id, err)
	}

	s.logger.Info("Delete: salon id=%d deleted", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getSalon(ctx context.Context, method string, id int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapSalonError(method, id, err)
	}
	return salon, nil
}

func (s *Service) attachServices(ctx context.Context, method string, salon *domain.Salon) error {
	services, err := s.serviceRepo.GetBySalonID(ctx, salon.ID)
	if err != nil {
		s.logger.Error("%s: failed to get services for salon id=%d: %v", method, salon.ID, err)
		return fmt.Errorf("%w: %s - get services: %v", ErrInternal, method, err)
	}
	salon.Services = services
	return nil
}

func (s *Service) mapSalonError(method string, id int64, err error) error {
	if errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Warn("%s: salon id=%d not found", method, id)
		return ErrSalonNotFound
	}
	s.logger.Error("%s: repository error for salon id=%d: %v", method, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func validateSalonText(name, location string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxSalonNameLen {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	return nil
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
