package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestPublishCheckoutCompleted(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w}
	event := domain.CheckoutCompleted{
		CartKey:     "cart:s1",
		SessionID:   "cs_1",
		CompletedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishCheckoutCompleted(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "cart:s1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, EventTypeCheckoutCompleted, string(msg.Headers[0].Value))

	var decoded domain.CheckoutCompleted
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestPublishCheckoutCompleted_WriteError(t *testing.T) {
	p := &Publisher{writer: &mockWriter{err: errors.New("broker unavailable")}}

	err := p.PublishCheckoutCompleted(context.Background(), domain.CheckoutCompleted{CartKey: "cart:s1"})

	assert.ErrorContains(t, err, "failed to publish checkout event")
}

func TestClose(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
