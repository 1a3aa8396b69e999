package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter часть *kafka.Writer, которая используется продюсером
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события сценария оплаты в Kafka
// Ключ сообщения: ID бронирования, чтобы события одного бронирования попадали в одну партицию
type Producer struct {
	writer messageWriter
	topic  string
	log    Logger
}

// NewProducer создает продюсер для списка брокеров
func NewProducer(brokers []string, topic string, log Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return newProducer(writer, topic, log)
}

func newProducer(writer messageWriter, topic string, log Logger) *Producer {
	return &Producer{writer: writer, topic: topic, log: log}
}

// Publish отправляет событие
func (p *Producer) Publish(ctx context.Context, event *CheckoutEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.log.Error("Kafka: failed to publish %s for booking_id=%d: %v", event.Type, event.BookingID, err)
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.log.Info("Kafka: published %s for booking_id=%d to %s", event.Type, event.BookingID, p.topic)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NopPublisher используется, когда Kafka не настроена
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event *CheckoutEvent) error {
	return nil
}
