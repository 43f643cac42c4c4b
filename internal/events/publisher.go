package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher publishes quiz lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event *QuizEvent) error
	Close() error
}

// Bus is a Watermill GoChannel pub/sub: the application runs as a single
// process, so events stay in memory instead of crossing a broker.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	wmLogger := watermill.NewSlogLogger(logger)
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, wmLogger),
		logger: logger,
	}
}

func (b *Bus) Publish(ctx context.Context, event *QuizEvent) error {
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("session_id", event.SessionID)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(Topic, msg); err != nil {
		b.logger.Error("failed to publish quiz event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish quiz event: %w", err)
	}
	return nil
}

// Subscribe delivers every quiz event to handler until ctx is cancelled.
// Malformed messages are acked and dropped.
func (b *Bus) Subscribe(ctx context.Context, handler func(context.Context, *QuizEvent)) error {
	messages, err := b.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Topic, err)
	}

	go func() {
		for msg := range messages {
			var event QuizEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Warn("dropping malformed quiz event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			handler(ctx, &event)
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
