package salons

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
)

type SalonService interface {
	ListBookable(ctx context.Context, search string) (*models.SalonListResponse, error)
	ListAll(ctx context.Context, caller domain.Identity, search string) (*models.SalonListResponse, error)
	Get(ctx context.Context, id int64) (*models.SalonResponse, error)
	GetMine(ctx context.Context, caller domain.Identity) (*models.SalonResponse, error)
	Create(ctx context.Context, caller domain.Identity, req *models.CreateSalonRequest) (*models.SalonResponse, error)
	Update(ctx context.Context, caller domain.Identity, id int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error)
	SetStatus(ctx context.Context, caller domain.Identity, id int64, rawStatus string) (*models.SalonResponse, error)
	SetPriority(ctx context.Context, caller domain.Identity, id int64, priority *int) (*models.SalonResponse, error)
	Delete(ctx context.Context, caller domain.Identity, id int64) error

	ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error)
	AddService(ctx context.Context, caller domain.Identity, salonID int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, caller domain.Identity, salonID, serviceID int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	DeleteService(ctx context.Context, caller domain.Identity, salonID, serviceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
