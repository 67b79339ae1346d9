package reviews

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CreateReviewRequest запрос на добавление отзыва
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID        int64     `json:"id"`
	SalonID   int64     `json:"salonId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewResponse отзыв и пересчитанный рейтинг салона
type CreateReviewResponse struct {
	Review      ReviewResponse `json:"review"`
	SalonRating float64        `json:"salonRating"`
	ReviewCount int            `json:"reviewCount"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

func fromDomainReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		SalonID:   r.SalonID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
