package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"owner_id",
	"amount",
	"payment_date",
	"trx_id",
	"status",
	"confirmed_at",
	"created_at",
}

// Repository репозиторий платежей комиссии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заявленный владельцем платёж в статусе PENDING
func (r *Repository) Create(ctx context.Context, payment *domain.OwnerPayment) (*domain.OwnerPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("owner_payments").
		Columns("owner_id", "amount", "payment_date", "trx_id", "status").
		Values(payment.OwnerID, payment.Amount, payment.Date.Format(domain.DateFormat), payment.TrxID, payment.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// GetByID получает платёж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.OwnerPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("owner_payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// List возвращает платежи, новые первыми.
// ownerID и status опциональны.
func (r *Repository) List(ctx context.Context, ownerID *int64, status *domain.PaymentStatus) ([]*domain.OwnerPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("owner_payments").
		OrderBy("created_at DESC", "id DESC")

	if ownerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *ownerID})
	}
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
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

	payments := make([]*domain.OwnerPayment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// Confirm переводит платёж из PENDING в CONFIRMED.
// Условный UPDATE: повторное подтверждение возвращает ErrAlreadyConfirmed.
func (r *Repository) Confirm(ctx context.Context, id int64) (*domain.OwnerPayment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("owner_payments").
		Set("status", string(domain.PaymentConfirmed)).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.PaymentPending)}).
		Suffix("RETURNING " + strings.Join(paymentColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Либо платежа нет, либо он уже подтверждён
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyConfirmed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// SumConfirmedByOwner возвращает сумму подтверждённых платежей владельца
func (r *Repository) SumConfirmedByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("owner_payments").
		Where(squirrel.Eq{"owner_id": ownerID, "status": string(domain.PaymentConfirmed)}).
		ToSql()

	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumConfirmedByOwner - build select query: %v", ErrBuildQuery, err)
	}

	var total decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumConfirmedByOwner - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.OwnerPayment, error) {
	var (
		payment     domain.OwnerPayment
		status      string
		confirmedAt sql.NullTime
		createdAt   sql.NullTime
	)

	err := row.Scan(
		&payment.ID,
		&payment.OwnerID,
		&payment.Amount,
		&payment.Date,
		&payment.TrxID,
		&status,
		&confirmedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	payment.Status = domain.PaymentStatus(status)
	if confirmedAt.Valid {
		payment.ConfirmedAt = &confirmedAt.Time
	}
	payment.CreatedAt = createdAt.Time

	return &payment, nil
}
