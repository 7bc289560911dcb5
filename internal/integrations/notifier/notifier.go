package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MessageWriter часть kafka.Writer, которой пользуется нотификатор
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier публикует события в топик, откуда их забирает рассыльщик писем
type KafkaNotifier struct {
	writer MessageWriter
	log    Logger
	now    func() time.Time
}

// NewKafkaWriter создает writer для списка брокеров
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func NewKafkaNotifier(writer MessageWriter, log Logger) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, log: log, now: time.Now}
}

// Publish отправляет событие. Ключ сообщения - ID пользователя, чтобы события
// одного пользователя попадали в одну партицию по порядку.
// Ошибка доставки только логируется: бизнес-операция уже завершена
func (n *KafkaNotifier) Publish(ctx context.Context, event domain.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = n.now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		n.log.Warn("Notifier: failed to marshal event type=%s user=%d: %v", event.Type, event.UserID, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.log.Warn("Notifier: failed to publish event type=%s user=%d: %v", event.Type, event.UserID, err)
		return
	}
	n.log.Info("Notifier: published event type=%s user=%d", event.Type, event.UserID)
}

func (n *KafkaNotifier) Close() error {
	if err := n.writer.Close(); err != nil {
		return fmt.Errorf("notifier: close writer: %w", err)
	}
	return nil
}

// LogNotifier пишет события в лог, когда Kafka выключена
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Publish(_ context.Context, event domain.Event) {
	n.log.Info("Notifier: event type=%s user=%d payload=%v", event.Type, event.UserID, event.Payload)
}

func (n *LogNotifier) Close() error {
	return nil
}
