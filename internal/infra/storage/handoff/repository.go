package handoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/pkg/psqlbuilder"
)

const tableName = "handoff_records"

var returningColumns = "RETURNING kind, booking_id, method, amount, message, created_at, expires_at"

// Repository хранилище handoff-записей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория handoff-записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save сохраняет запись, заменяя существующую с тем же ключом (kind, booking_id)
func (r *Repository) Save(ctx context.Context, record *domain.HandoffRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"kind",
			"booking_id",
			"method",
			"amount",
			"message",
			"created_at",
			"expires_at",
		).
		Values(
			record.Kind,
			record.BookingID,
			record.Method,
			record.Amount,
			record.Message,
			record.CreatedAt,
			record.ExpiresAt,
		).
		Suffix("ON CONFLICT (kind, booking_id) DO UPDATE SET " +
			"method = EXCLUDED.method, amount = EXCLUDED.amount, message = EXCLUDED.message, " +
			"created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Consume атомарно читает и удаляет запись.
// Просроченная запись тоже удаляется, но возвращается ErrRecordNotFound.
func (r *Repository) Consume(ctx context.Context, kind domain.HandoffKind, bookingID int64, now time.Time) (*domain.HandoffRecord, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"kind": kind, "booking_id": bookingID}).
		Suffix(returningColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Consume - build delete query: %v", ErrBuildQuery, err)
	}

	var record domain.HandoffRecord
	var message sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&record.Kind,
		&record.BookingID,
		&record.Method,
		&record.Amount,
		&message,
		&record.CreatedAt,
		&record.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Consume - scan record: %v", ErrScanRow, err)
	}

	record.Message = message.String

	if record.IsExpired(now) {
		return nil, ErrRecordNotFound
	}

	return &record, nil
}

// Delete удаляет запись, если она есть
func (r *Repository) Delete(ctx context.Context, kind domain.HandoffKind, bookingID int64) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"kind": kind, "booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// PurgeExpired удаляет просроченные записи и возвращает их количество
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func validateRecord(record *domain.HandoffRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if !record.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRecord, record.Kind)
	}
	if record.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidRecord)
	}
	if !record.ExpiresAt.After(record.CreatedAt) {
		return fmt.Errorf("%w: expires_at must be after created_at", ErrInvalidRecord)
	}
	return nil
}
