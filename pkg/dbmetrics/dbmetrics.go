package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// DBExecutor общий интерфейс для выполнения запросов
// Поддерживает *sql.DB и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Observer получатель метрик запросов
type Observer interface {
	ObserveDBQuery(operation, status string, seconds float64)
	SetDBConnections(open, inUse int)
}

// DB обёртка над *sql.DB, которая пишет длительность запросов в метрики
type DB struct {
	db       *sql.DB
	observer Observer
}

// Wrap оборачивает соединение без сборщика статистики пула
func Wrap(db *sql.DB, observer Observer) *DB {
	return &DB{db: db, observer: observer}
}

// DefaultCollectInterval период сбора статистики connection pool
const DefaultCollectInterval = 15 * time.Second

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, observer Observer, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, observer)
	go wrapped.collectPoolStats(DefaultCollectInterval, stopCh)
	return wrapped
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := d.db.Stats()
			d.observer.SetDBConnections(stats.OpenConnections, stats.InUse)
		case <-stopCh:
			return
		}
	}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext ошибки сканирования здесь не видны, поэтому статус всегда ok
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, nil)
	return row
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.observer == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.observer.ObserveDBQuery(Operation(query), status, time.Since(start).Seconds())
}

// Operation возвращает тип SQL-запроса (select, insert, update, delete) по первому слову
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
