package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	confirmationRepo "github.com/m04kA/SMC-SalonCheckout/internal/infra/storage/confirmation"
)

// Options параметры повторных попыток
type Options struct {
	// MaxAttempts количество попыток в одном прогоне
	MaxAttempts int
	// BaseDelay пауза после попытки n равна n * BaseDelay
	BaseDelay time.Duration
	// RunTimeout ограничение на весь прогон, 0 без ограничения
	RunTimeout time.Duration
}

// Service подтверждает бронирование в BookingService после успешной оплаты.
// Делает до MaxAttempts попыток с линейно растущей паузой.
// Одновременные прогоны одного бронирования с одним источником запуска объединяются в один,
// прогоны разных источников выполняются по очереди.
type Service struct {
	bookingClient BookingServiceClient
	repo          ConfirmationRepository
	publisher     EventPublisher
	metrics       Metrics
	opts          Options
	sleep         SleepFunc
	timeProvider  TimeProvider
	group         singleflight.Group
	// runLocks не дают двум прогонам одного бронирования идти одновременно
	runLocks      [runLockStripes]sync.Mutex
	logger        Logger
}

const runLockStripes = 64

// NewService создает новый экземпляр сервиса подтверждения
func NewService(
	bookingClient BookingServiceClient,
	repo ConfirmationRepository,
	publisher EventPublisher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = domain.DefaultConfirmationAttempts
	}
	if opts.BaseDelay < 0 {
		opts.BaseDelay = domain.DefaultConfirmationDelay
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		bookingClient: bookingClient,
		repo:          repo,
		publisher:     publisher,
		metrics:       metrics,
		opts:          opts,
		sleep:         sleepContext,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Reconcile запускает прогон подтверждения и возвращает его итог.
// Исчерпание попыток не является ошибкой: возвращается состояние exhausted.
// Ошибка возвращается только при отмене контекста (вместе с состоянием exhausted).
func (s *Service) Reconcile(ctx context.Context, bookingID int64) (*domain.Confirmation, error) {
	return s.start(ctx, bookingID, "auto")
}

// Restart запускает новый прогон вручную, всегда с первой попытки
func (s *Service) Restart(ctx context.Context, bookingID int64) (*domain.Confirmation, error) {
	return s.start(ctx, bookingID, "manual")
}

// Get возвращает последнее сохраненное состояние подтверждения
// Если прогонов не было, возвращается состояние not_started
func (s *Service) Get(ctx context.Context, bookingID int64) (*domain.Confirmation, error) {
	if bookingID <= 0 {
		return nil, ErrInvalidBookingID
	}

	c, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, confirmationRepo.ErrConfirmationNotFound) {
			return &domain.Confirmation{
				BookingID:   bookingID,
				State:       domain.ConfirmationNotStarted,
				MaxAttempts: s.opts.MaxAttempts,
			}, nil
		}
		s.logger.Error("Reconciler: failed to load confirmation for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return c, nil
}

type runResult struct {
	confirmation *domain.Confirmation
	err          error
}

func (s *Service) start(ctx context.Context, bookingID int64, trigger string) (*domain.Confirmation, error) {
	if bookingID <= 0 {
		return nil, ErrInvalidBookingID
	}

	// Автоматические и ручные прогоны объединяются раздельно:
	// ручной перезапуск ждет завершения текущего прогона и начинает новый с первой попытки
	key := fmt.Sprintf("%s:%d", trigger, bookingID)
	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		lock := &s.runLocks[bookingID%runLockStripes]
		lock.Lock()
		defer lock.Unlock()

		c, err := s.run(ctx, bookingID, trigger)
		return runResult{confirmation: c, err: err}, nil
	})
	if shared {
		s.logger.Info("Reconciler: booking=%d joined an in-flight %s run", bookingID, trigger)
	}

	res := v.(runResult)
	// Каждый вызывающий получает свою копию состояния
	c := *res.confirmation
	return &c, res.err
}

func (s *Service) run(ctx context.Context, bookingID int64, trigger string) (*domain.Confirmation, error) {
	if s.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RunTimeout)
		defer cancel()
	}

	s.logger.Info("Reconciler: starting %s run for booking=%d, max_attempts=%d", trigger, bookingID, s.opts.MaxAttempts)

	c := &domain.Confirmation{
		BookingID:   bookingID,
		State:       domain.ConfirmationNotStarted,
		MaxAttempts: s.opts.MaxAttempts,
	}

	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		c.State = domain.ConfirmationAttempting
		c.Attempt = attempt
		s.persist(ctx, c)

		err := s.bookingClient.UpdateStatus(ctx, bookingID, domain.StatusConfirmed)
		if err == nil {
			s.metrics.IncReconcileAttempt("success")
			c.State = domain.ConfirmationConfirmed
			c.LastError = nil
			s.persist(ctx, c)
			s.finish(ctx, c)
			s.logger.Info("Reconciler: booking=%d confirmed on attempt %d", bookingID, attempt)
			return c, nil
		}

		lastErr = err
		errText := err.Error()
		c.LastError = &errText
		s.metrics.IncReconcileAttempt("failure")
		s.logger.Warn("Reconciler: attempt %d/%d for booking=%d failed: %v", attempt, s.opts.MaxAttempts, bookingID, err)

		if attempt == s.opts.MaxAttempts {
			break
		}

		delay := time.Duration(attempt) * s.opts.BaseDelay
		if err := s.sleep(ctx, delay); err != nil {
			s.logger.Warn("Reconciler: run for booking=%d interrupted after attempt %d: %v", bookingID, attempt, err)
			c.State = domain.ConfirmationExhausted
			s.persist(ctx, c)
			s.finish(ctx, c)
			return c, err
		}
	}

	c.State = domain.ConfirmationExhausted
	s.persist(ctx, c)
	s.finish(ctx, c)
	s.logger.Error("Reconciler: booking=%d not confirmed after %d attempts: %v", bookingID, c.Attempt, lastErr)
	return c, nil
}

// persist сохраняет состояние. Сбой хранилища не прерывает прогон.
func (s *Service) persist(ctx context.Context, c *domain.Confirmation) {
	c.UpdatedAt = s.timeProvider.Now()
	if err := s.repo.Upsert(context.WithoutCancel(ctx), c); err != nil {
		s.logger.Error("Reconciler: failed to persist state %s for booking=%d, attempt=%d: %v",
			c.State, c.BookingID, c.Attempt, err)
	}
}

func (s *Service) finish(ctx context.Context, c *domain.Confirmation) {
	s.metrics.IncReconcileRun(string(c.State))

	eventType := events.TypeBookingConfirmed
	if c.State == domain.ConfirmationExhausted {
		eventType = events.TypeConfirmationExhausted
	}

	event := events.NewEvent(eventType, c.BookingID, s.timeProvider.Now())
	event.Attempt = c.Attempt
	if c.LastError != nil {
		event.Error = *c.LastError
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("Reconciler: failed to publish %s for booking=%d: %v", eventType, c.BookingID, err)
	}
}
