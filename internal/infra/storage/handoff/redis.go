package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// RedisRepository хранилище handoff-записей в Redis, срок жизни задается TTL ключа
type RedisRepository struct {
	client redis.Cmdable
}

// NewRedisRepository создает репозиторий поверх готового клиента
func NewRedisRepository(client redis.Cmdable) *RedisRepository {
	return &RedisRepository{client: client}
}

// redisRecord формат хранения записи в Redis
type redisRecord struct {
	Kind      domain.HandoffKind   `json:"kind"`
	BookingID int64                `json:"bookingId"`
	Method    domain.PaymentMethod `json:"paymentMethod"`
	Amount    float64              `json:"amount"`
	Message   string               `json:"message,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	ExpiresAt time.Time            `json:"expiresAt"`
}

func (r *RedisRepository) Save(ctx context.Context, record *domain.HandoffRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	payload, err := json.Marshal(redisRecord{
		Kind:      record.Kind,
		BookingID: record.BookingID,
		Method:    record.Method,
		Amount:    record.Amount,
		Message:   record.Message,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCodec, err)
	}

	ttl := record.ExpiresAt.Sub(record.CreatedAt)
	if err := r.client.Set(ctx, recordKey(record.Kind, record.BookingID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set: %v", ErrExecQuery, err)
	}
	return nil
}

// Consume читает и удаляет запись одной командой GETDEL
func (r *RedisRepository) Consume(ctx context.Context, kind domain.HandoffKind, bookingID int64, now time.Time) (*domain.HandoffRecord, error) {
	data, err := r.client.GetDel(ctx, recordKey(kind, bookingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: Consume - getdel: %v", ErrExecQuery, err)
	}

	var stored redisRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: Consume - decode: %v", ErrScanRow, err)
	}

	record := &domain.HandoffRecord{
		Kind:      stored.Kind,
		BookingID: stored.BookingID,
		Method:    stored.Method,
		Amount:    stored.Amount,
		Message:   stored.Message,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}
	if record.IsExpired(now) {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (r *RedisRepository) Delete(ctx context.Context, kind domain.HandoffKind, bookingID int64) error {
	if err := r.client.Del(ctx, recordKey(kind, bookingID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrExecQuery, err)
	}
	return nil
}

// PurgeExpired ничего не делает: Redis удаляет ключи по TTL сам
func (r *RedisRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func recordKey(kind domain.HandoffKind, bookingID int64) string {
	return fmt.Sprintf("handoff:%s:booking:%d", kind, bookingID)
}
