package kafka

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

type BookingEventHandler func(context.Context, BookingEvent) error

// ConsumeBookingEvents reads until ctx is done. An offset is committed only
// after its event was handled, so a failed handler leaves it for the next run.
// Messages that do not decode are logged and committed.
func (c *Consumer) ConsumeBookingEvents(ctx context.Context, handle BookingEventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		event, err := DecodeBookingEvent(msg)
		if err != nil {
			log.Printf("skip message: %v", err)
		} else if err := handle(ctx, event); err != nil {
			return fmt.Errorf("handle %s for booking %s: %w", event.Type, event.BookingID, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}
