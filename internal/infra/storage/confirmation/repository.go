package confirmation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/pkg/psqlbuilder"
)

const tableName = "booking_confirmations"

// Repository репозиторий состояний подтверждения бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подтверждений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert сохраняет текущее состояние прогона подтверждения
func (r *Repository) Upsert(ctx context.Context, c *domain.Confirmation) error {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_id",
			"state",
			"attempt",
			"max_attempts",
			"last_error",
			"updated_at",
		).
		Values(
			c.BookingID,
			c.State,
			c.Attempt,
			c.MaxAttempts,
			c.LastError,
			c.UpdatedAt,
		).
		Suffix("ON CONFLICT (booking_id) DO UPDATE SET " +
			"state = EXCLUDED.state, attempt = EXCLUDED.attempt, max_attempts = EXCLUDED.max_attempts, " +
			"last_error = EXCLUDED.last_error, updated_at = EXCLUDED.updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByBookingID получает состояние подтверждения бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Confirmation, error) {
	query, args, err := psqlbuilder.Select(
		"booking_id",
		"state",
		"attempt",
		"max_attempts",
		"last_error",
		"updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Confirmation
	var lastError sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.BookingID,
		&c.State,
		&c.Attempt,
		&c.MaxAttempts,
		&lastError,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan confirmation: %v", ErrScanRow, err)
	}

	if lastError.Valid {
		c.LastError = &lastError.String
	}

	return &c, nil
}
