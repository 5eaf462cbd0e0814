package kafka_test

import (
	"testing"
	"time"

	"studio/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	occurredAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	message := kafka.Message{
		Key:   "b-1",
		Value: kafka.NewEvent("booking.created", occurredAt, payload{BookingID: "b-1", Status: "OPEN"}),
	}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.JSONEq(t, `{"name":"booking.created","occurred_at":"2026-03-01T10:00:00Z","data":{"booking_id":"b-1","status":"OPEN"}}`, string(msg.Value))
}

func TestMessage_ToKafkaMessageMarshalError(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	key, event, err := kafka.DecodeKafkaMessage[kafka.Event[payload]](kafkaGo.Message{
		Key:   []byte("b-2"),
		Value: []byte(`{"name":"booking.status_changed","occurred_at":"2026-03-01T10:00:00Z","data":{"booking_id":"b-2","status":"CONFIRMED"}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "b-2", key)
	assert.Equal(t, "booking.status_changed", event.Name)
	assert.Equal(t, "CONFIRMED", event.Data.Status)

	_, _, err = kafka.DecodeKafkaMessage[kafka.Event[payload]](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
