package events

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(slog.Default())
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *QuizEvent, 1)
	require.NoError(t, bus.Subscribe(ctx, func(_ context.Context, e *QuizEvent) {
		received <- e
	}))

	err := bus.Publish(context.Background(), &QuizEvent{
		Type:        QuizCompleted,
		SessionID:   "abc12345",
		ScaledScore: 750,
		Passed:      true,
	})
	require.NoError(t, err)

	select {
	case e := <-received:
		assert.Equal(t, QuizCompleted, e.Type)
		assert.Equal(t, "abc12345", e.SessionID)
		assert.Equal(t, 750, e.ScaledScore)
		assert.True(t, e.Passed)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestBus_PublishFillsDefaults(t *testing.T) {
	bus := NewBus(slog.Default())
	defer bus.Close()

	event := &QuizEvent{Type: QuizStarted, SessionID: "abc12345"}
	require.NoError(t, bus.Publish(context.Background(), event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
}
