package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
)

// Service сервис отзывов. Рейтинг салона пересчитывается при каждом новом отзыве.
type Service struct {
	reviewRepo ReviewRepository
	salonRepo  SalonRepository
	userClient UserServiceClient
	notifier   Notifier
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	salonRepo SalonRepository,
	userClient UserServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		salonRepo:  salonRepo,
		userClient: userClient,
		notifier:   notifier,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create добавляет отзыв клиента и пересчитывает рейтинг салона (среднее, один знак после запятой)
func (s *Service) Create(ctx context.Context, caller domain.Identity, salonID int64, req *CreateReviewRequest) (*CreateReviewResponse, error) {
	s.logger.Info("Create: adding review to salon id=%d by user=%d", salonID, caller.UserID)

	// 1. Валидируем входные данные
	comment := strings.TrimSpace(req.Comment)
	if req.Rating < domain.MinReviewRating || req.Rating > domain.MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinReviewRating, domain.MaxReviewRating)
	}
	if utf8.RuneCountInString(comment) > domain.MaxReviewCommentLen {
		return nil, fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	// 2. Салон должен существовать, владелец не оценивает сам себя
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - get salon: %v", ErrInternal, err)
	}
	if salon.OwnerID == caller.UserID {
		s.logger.Warn("Create: owner=%d cannot review own salon id=%d", caller.UserID, salonID)
		return nil, ErrAccessDenied
	}

	// 3. Имя автора из UserService (пустое при недоступности сервиса)
	userName := s.userClient.DisplayName(ctx, caller.UserID)

	// 4. Сохраняем отзыв и рейтинг в одной транзакции.
	// Строка салона блокируется до подсчёта, чтобы параллельные отзывы пересчитывали рейтинг по очереди.
	var (
		created *domain.Review
		rating  float64
		count   int
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.salonRepo.LockByID(ctx, salonID); err != nil {
			return fmt.Errorf("lock salon: %w", err)
		}

		var err error
		created, err = s.reviewRepo.Create(ctx, &domain.Review{
			SalonID:  salonID,
			UserID:   caller.UserID,
			UserName: userName,
			Rating:   req.Rating,
			Comment:  comment,
		})
		if err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		sum, n, err := s.reviewRepo.Stats(ctx, salonID)
		if err != nil {
			return fmt.Errorf("review stats: %w", err)
		}

		rating, count = domain.AverageRating(sum, n), n
		if err := s.salonRepo.UpdateRating(ctx, salonID, rating, count); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: failed to save review for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	// 5. Уведомляем владельца
	s.notifier.Notify(ctx, salon.OwnerID, domain.NewReviewNotice(userName, req.Rating))

	s.logger.Info("Create: review id=%d saved, salon id=%d rating=%.1f (%d reviews)", created.ID, salonID, rating, count)
	return &CreateReviewResponse{
		Review:      fromDomainReview(created),
		SalonRating: rating,
		ReviewCount: count,
	}, nil
}

// List возвращает отзывы салона, новые первыми. Публичный метод.
func (s *Service) List(ctx context.Context, salonID int64) (*ReviewListResponse, error) {
	reviews, err := s.reviewRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &ReviewListResponse{Reviews: make([]ReviewResponse, 0, len(reviews))}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, fromDomainReview(r))
	}
	return resp, nil
}
