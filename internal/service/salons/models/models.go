package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// CreateSalonRequest запрос владельца на создание салона
type CreateSalonRequest struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Image       *string `json:"image,omitempty"`
}

// UpdateSalonRequest запрос на обновление салона.
// Все поля опциональны - обновляются только переданные значения
type UpdateSalonRequest struct {
	Name        *string `json:"name,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ServiceRequest запрос на создание или обновление услуги.
// При обновлении nil поля не меняются
type ServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Image           *string          `json:"image,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64           `json:"id"`
	SalonID         int64           `json:"salonId"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Image           *string         `json:"image,omitempty"`
}

// SalonResponse ответ с данными салона
type SalonResponse struct {
	ID          int64             `json:"id"`
	OwnerID     int64             `json:"ownerId"`
	Name        string            `json:"name"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Image       *string           `json:"image,omitempty"`
	IsActive    bool              `json:"isActive"`
	Status      string            `json:"status"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	Priority    *int              `json:"priority,omitempty"`
	Services    []ServiceResponse `json:"services,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// SalonListResponse ответ со списком салонов
type SalonListResponse struct {
	Salons []SalonResponse `json:"salons"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainSalon конвертирует domain модель в DTO
func FromDomainSalon(s *domain.Salon) *SalonResponse {
	if s == nil {
		return nil
	}

	resp := &SalonResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Location:    s.Location,
		Description: s.Description,
		Image:       s.Image,
		IsActive:    s.IsActive,
		Status:      string(s.Status),
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		Priority:    s.Priority,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if len(s.Services) > 0 {
		resp.Services = FromDomainServiceList(s.Services).Services
	}

	return resp
}

// FromDomainSalonList конвертирует список салонов в DTO
func FromDomainSalonList(salons []*domain.Salon) *SalonListResponse {
	resp := &SalonListResponse{
		Salons: make([]SalonResponse, 0, len(salons)),
	}
	for _, salon := range salons {
		resp.Salons = append(resp.Salons, *FromDomainSalon(salon))
	}
	return resp
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		SalonID:         s.SalonID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Image:           s.Image,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for i := range services {
		resp.Services = append(resp.Services, *FromDomainService(&services[i]))
	}
	return resp
}
