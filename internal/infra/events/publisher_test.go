package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type stubWriter struct {
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error { return nil }

func sample() *domain.Appointment {
	return &domain.Appointment{
		ID:              "a1",
		BranchID:        "b1",
		AppointmentDate: types.NewDate(2024, 1, 1),
		AppointmentTime: "10:00",
		Status:          domain.StatusScheduled,
		ServiceStylistPairs: []domain.ServiceStylistPair{
			{ServiceID: "cut", StylistID: "s1"},
		},
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &stubWriter{}
	p := &KafkaPublisher{writer: writer}

	require.NoError(t, p.Publish(context.Background(), NewEvent(TypeAppointmentCreated, sample())))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "b1", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, TypeAppointmentCreated, string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "2024-01-01", decoded.Date)
	assert.Equal(t, "10:00", decoded.Time)
	assert.Equal(t, []string{"s1"}, decoded.StylistIDs)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &stubWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), NewEvent(TypeAppointmentCancelled, sample()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

func TestNewWriter_FlushesEachEvent(t *testing.T) {
	w := newWriter([]string{"localhost:9092"}, "salon.appointments")
	defer w.Close()

	assert.Equal(t, "salon.appointments", w.Topic)
	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 50*time.Millisecond)
	assert.Positive(t, w.BatchTimeout)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)

	p := NewKafkaPublisher([]string{"localhost:9092"}, "salon.appointments")
	assert.IsType(t, &kafka.Writer{}, p.writer)
}
