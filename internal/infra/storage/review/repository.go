package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("salon_id", "user_id", "user_name", "rating", "comment").
		Values(review.SalonID, review.UserID, review.UserName, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	review.CreatedAt = createdAt.Time

	return review, nil
}

// GetBySalonID возвращает отзывы салона, новые первыми
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "user_id", "user_name", "rating", "comment", "created_at").
		From("reviews").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var (
			review    domain.Review
			createdAt sql.NullTime
		)
		err := rows.Scan(
			&review.ID,
			&review.SalonID,
			&review.UserID,
			&review.UserName,
			&review.Rating,
			&review.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySalonID - scan row: %v", ErrScanRow, err)
		}
		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// Stats возвращает сумму оценок и количество отзывов салона
func (r *Repository) Stats(ctx context.Context, salonID int64) (int64, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(rating), 0)", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	var (
		sum   int64
		count int
	)
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum, &count); err != nil {
		return 0, 0, fmt.Errorf("%w: Stats - scan row: %v", ErrScanRow, err)
	}

	return sum, count, nil
}
