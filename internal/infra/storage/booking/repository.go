package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	// liveSlotConstraint частичный уникальный индекс (salon_id, booking_date, time_label) WHERE status <> 'REJECTED'
	liveSlotConstraint = "bookings_live_slot_uniq"

	uniqueViolation pq.ErrorCode = "23505"

	onLiveSlotConflict = "ON CONFLICT (salon_id, booking_date, time_label) WHERE status <> 'REJECTED' DO NOTHING"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"salon_id",
	"service_ids",
	"booking_date",
	"time_label",
	"status",
	"total_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create атомарно занимает слот и создаёт бронирование.
// Уникальность слота гарантирует частичный индекс bookings_live_slot_uniq:
// если слот уже занят живым бронированием, вставка ничего не делает
// и возвращается domain.Duplicate(). Ошибка возвращается только при проблемах с БД.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (domain.AdmissionResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"salon_id",
			"service_ids",
			"booking_date",
			"time_label",
			"status",
			"total_price",
		).
		Values(
			booking.UserID,
			booking.SalonID,
			pq.Array(booking.ServiceIDs),
			booking.Date.Format(domain.DateFormat),
			booking.TimeLabel,
			booking.Status,
			booking.TotalPrice,
		).
		Suffix(onLiveSlotConflict + " RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return domain.AdmissionResult{}, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// ON CONFLICT DO NOTHING: слот занят
		return domain.Duplicate(), nil
	case isLiveSlotViolation(err):
		return domain.Duplicate(), nil
	case err != nil:
		return domain.AdmissionResult{}, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return domain.Admitted(booking), nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBySalonWithFilter получает бронирования салона с фильтрацией по периоду и статусам.
// По умолчанию отклонённые бронирования исключаются (IncludeRejected = false).
func (r *Repository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	} else if !filter.IncludeRejected {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusRejected)})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC", "created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOccupiedLabels возвращает метки времени, занятые живыми бронированиями салона на дату
func (r *Repository) GetOccupiedLabels(ctx context.Context, salonID int64, date time.Time) ([]types.TimeLabel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_label").
		From("bookings").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": string(domain.StatusRejected)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedLabels - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedLabels - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	labels := make([]types.TimeLabel, 0)
	for rows.Next() {
		var label types.TimeLabel
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: GetOccupiedLabels - scan time_label: %v", ErrScanRow, err)
		}
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedLabels - rows error: %v", ErrScanRow, err)
	}

	return labels, nil
}

// GetByDateAndStatuses получает бронирования всех салонов на дату с указанными статусами.
// Используется фоновыми задачами (напоминания, просроченные заявки).
func (r *Repository) GetByDateAndStatuses(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": statusStrings(statuses)}).
		OrderBy("salon_id", "time_label").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndStatuses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateAndStatuses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetPendingBefore получает PENDING бронирования с датой не позже указанной
func (r *Repository) GetPendingBefore(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.LtOrEq{"booking_date": date.Format(domain.DateFormat)}).
		OrderBy("booking_date", "id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// SumCompletedTotal возвращает сумму total_price завершённых бронирований салона
func (r *Repository) SumCompletedTotal(ctx context.Context, salonID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From("bookings").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)}).
		ToSql()

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumCompletedTotal - build select query: %v", ErrBuildQuery, err)
	}

	var total decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumCompletedTotal - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus меняет статус только если текущий статус равен from.
// Две конкурентные смены статуса из одного состояния не могут пройти обе.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		createdAt, updatedAt sql.NullTime
		status               string
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SalonID,
		pq.Array(&booking.ServiceIDs),
		&booking.Date,
		&booking.TimeLabel,
		&status,
		&booking.TotalPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isLiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == liveSlotConstraint
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
