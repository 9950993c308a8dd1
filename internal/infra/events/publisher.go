package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Типы событий жизненного цикла записи
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentRescheduled   = "appointment.rescheduled"
	TypeAppointmentCancelled     = "appointment.cancelled"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// ErrPublish возвращается, если событие не удалось отправить
var ErrPublish = errors.New("events: failed to publish event")

// Publisher отправляет события о записях во внешнюю шину
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Event событие о записи
type Event struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointmentId"`
	BranchID      string    `json:"branchId"`
	Date          string    `json:"appointmentDate"`
	Time          string    `json:"appointmentTime"`
	Status        string    `json:"status"`
	StylistIDs    []string  `json:"stylistIds"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewEvent собирает событие по записи
func NewEvent(eventType string, a *domain.Appointment) Event {
	stylists := make([]string, 0, len(a.ServiceStylistPairs))
	for _, pair := range a.ServiceStylistPairs {
		stylists = append(stylists, pair.StylistID)
	}
	return Event{
		Type:          eventType,
		AppointmentID: a.ID,
		BranchID:      a.BranchID,
		Date:          a.AppointmentDate.String(),
		Time:          a.AppointmentTime.String(),
		Status:        string(a.Status),
		StylistIDs:    stylists,
		OccurredAt:    time.Now().UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher отправляет события в kafka, ключ сообщения = id филиала
type KafkaPublisher struct {
	writer messageWriter
}

// writerBatchTimeout ограничивает ожидание отправки одного события после коммита
const writerBatchTimeout = 10 * time.Millisecond

// NewKafkaPublisher создает publisher для списка брокеров и топика
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: newWriter(brokers, topic)}
}

// newWriter события пишутся по одному, батч отправляется сразу
func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           writerBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// Publish отправляет событие синхронно
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := toMessage(ctx, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrPublish, event.Type, event.AppointmentID, err)
	}
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(ctx context.Context, event Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: encode %s: %v", ErrPublish, event.Type, err)
	}

	carrier := headerCarrier{headers: []kafka.Header{
		{Key: "event_type", Value: []byte(event.Type)},
	}}
	otel.GetTextMapPropagator().Inject(ctx, &carrier)

	return kafka.Message{
		Key:     []byte(event.BranchID),
		Value:   payload,
		Headers: carrier.headers,
		Time:    event.OccurredAt,
	}, nil
}

// NoopPublisher используется, когда kafka выключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
