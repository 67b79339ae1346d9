package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var salonColumns = []string{
	"id",
	"owner_id",
	"name",
	"location",
	"description",
	"image",
	"is_active",
	"status",
	"rating",
	"review_count",
	"priority",
	"created_at",
	"updated_at",
}

// Update частичное обновление данных салона владельцем. nil поля не меняются.
type Update struct {
	Name        *string
	Location    *string
	Description *string
	Image       *string
	IsActive    *bool
}

// Repository репозиторий салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает салон. У владельца может быть только один салон.
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salons").
		Columns("owner_id", "name", "location", "description", "image", "is_active", "status", "priority").
		Values(salon.OwnerID, salon.Name, salon.Location, salon.Description, salon.Image, salon.IsActive, salon.Status, salon.Priority).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&salon.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSalonAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return salon, nil
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByOwnerID получает салон владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error) {
	return r.getOne(ctx, "GetByOwnerID", squirrel.Eq{"owner_id": ownerID})
}

// List возвращает салоны, отсортированные по приоритету (NULL = 99) и ID.
// Проверка приостановки за неуплату комиссии выполняется на уровне сервиса.
func (r *Repository) List(ctx context.Context, filter domain.SalonFilter) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(salonColumns...).
		From("salons").
		OrderBy(fmt.Sprintf("COALESCE(priority, %d) ASC", domain.DefaultSalonPriority), "id ASC")

	if filter.OnlyListable {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"is_active": true}).
			Where(squirrel.Eq{"status": string(domain.SalonApproved)})
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	salons := make([]*domain.Salon, 0)
	for rows.Next() {
		salon, err := scanSalon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		salons = append(salons, salon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

// UpdateInfo обновляет данные салона, заданные в upd
func (r *Repository) UpdateInfo(ctx context.Context, id int64, upd Update) (*domain.Salon, error) {
	builder := psqlbuilder.Update("salons").Set("updated_at", squirrel.Expr("NOW()"))

	if upd.Name != nil {
		builder = builder.Set("name", *upd.Name)
	}
	if upd.Location != nil {
		builder = builder.Set("location", *upd.Location)
	}
	if upd.Description != nil {
		builder = builder.Set("description", *upd.Description)
	}
	if upd.Image != nil {
		builder = builder.Set("image", *upd.Image)
	}
	if upd.IsActive != nil {
		builder = builder.Set("is_active", *upd.IsActive)
	}

	return r.updateReturning(ctx, "UpdateInfo", builder.Where(squirrel.Eq{"id": id}))
}

// SetStatus меняет статус модерации
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.SalonStatus) (*domain.Salon, error) {
	builder := psqlbuilder.Update("salons").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, "SetStatus", builder)
}

// SetPriority задает приоритет сортировки, nil сбрасывает его
func (r *Repository) SetPriority(ctx context.Context, id int64, priority *int) (*domain.Salon, error) {
	builder := psqlbuilder.Update("salons").
		Set("priority", priority).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateReturning(ctx, "SetPriority", builder)
}

// LockByID блокирует строку салона до конца текущей транзакции (SELECT ... FOR UPDATE).
// Вне транзакции блокировка снимается сразу.
func (r *Repository) LockByID(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("salons").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockByID - build select query: %v", ErrBuildQuery, err)
	}

	var lockedID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSalonNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockByID - execute select: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateRating сохраняет пересчитанный рейтинг
func (r *Repository) UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("rating", rating).
		Set("review_count", reviewCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateRating", query, args)
}

// Delete удаляет салон вместе с услугами и бронированиями (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	salon, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan salon: %v", ErrScanRow, method, err)
	}

	return salon, nil
}

func (r *Repository) updateReturning(ctx context.Context, method string, builder squirrel.UpdateBuilder) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Suffix("RETURNING " + strings.Join(salonColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, method, err)
	}

	salon, err := scanSalon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	return salon, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSalon(row rowScanner) (*domain.Salon, error) {
	var (
		salon                domain.Salon
		image                sql.NullString
		status               string
		priority             sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&salon.ID,
		&salon.OwnerID,
		&salon.Name,
		&salon.Location,
		&salon.Description,
		&image,
		&salon.IsActive,
		&status,
		&salon.Rating,
		&salon.ReviewCount,
		&priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		salon.Image = &image.String
	}
	if priority.Valid {
		p := int(priority.Int64)
		salon.Priority = &p
	}
	salon.Status = domain.SalonStatus(status)
	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return &salon, nil
}

func execAffectingOne(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

// escapeLike экранирует спецсимволы шаблона LIKE
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
