package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/event"
	pkgkafka "github.com/bibbank/loan-origination/pkg/kafka"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

type mockProducer struct {
	topic    string
	messages []pkgkafka.Message
	calls    int
	err      error
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...pkgkafka.Message) error {
	m.calls++
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return m.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewEventPublisher(producer, "origination-events", quietLogger())

	started := event.NewApplicationStarted("app-1", testutil.TestCustomerID, testutil.FixedNow)
	initiated := event.NewApplicationInitiated("app-1", testutil.TestCustomerID,
		decimal.NewFromInt(500000), 36, "wedding", "INSTANT", "within pre-approved limit", testutil.FixedNow)

	require.NoError(t, pub.Publish(context.Background(), started, initiated))

	assert.Equal(t, 1, producer.calls)
	assert.Equal(t, "origination-events", producer.topic)
	require.Len(t, producer.messages, 2)

	msg := producer.messages[1]
	assert.Equal(t, []byte("app-1"), msg.Key)
	assert.Equal(t, event.TypeApplicationInitiated, msg.Headers["event_type"])
	assert.Equal(t, initiated.EventID(), msg.Headers["event_id"])
	assert.Equal(t, "LoanApplication", msg.Headers["aggregate_type"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "500000", body["amount"])
	assert.Equal(t, float64(36), body["tenure_months"])
	assert.Equal(t, "app-1", body["aggregate_id"])
}

func TestEventPublisher_NoEventsSkipsProducer(t *testing.T) {
	producer := &mockProducer{}
	pub := NewEventPublisher(producer, "origination-events", quietLogger())

	require.NoError(t, pub.Publish(context.Background()))
	assert.Zero(t, producer.calls)
}

func TestEventPublisher_ProducerError(t *testing.T) {
	producer := &mockProducer{err: errors.New("broker down")}
	pub := NewEventPublisher(producer, "origination-events", quietLogger())

	err := pub.Publish(context.Background(), event.NewKYCVerified("app-1", testutil.TestCustomerID, testutil.FixedNow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origination-events")
	assert.ErrorIs(t, err, producer.err)
}

func TestLogEventPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogEventPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background(),
		event.NewApplicationRejected("app-9", testutil.TestCustomerID, "customer withdrew", testutil.FixedNow)))

	assert.Contains(t, buf.String(), event.TypeApplicationRejected)
	assert.Contains(t, buf.String(), `"application_id":"app-9"`)
}
