package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventTypeHeader carries BookingEvent.Type so consumers can filter without decoding.
const EventTypeHeader = "event_type"

type Producer struct {
	brokers []string
	topics  []string
	writer  *kafka.Writer
}

// NewProducer builds a synchronous writer; the topic is chosen per message.
// topics are the ones CheckConnection expects the cluster to know.
func NewProducer(brokers []string, topics ...string) *Producer {
	return &Producer{
		brokers: brokers,
		topics:  topics,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes payload as JSON under key. All events of one booking share
// its id as key, so they land on one partition in order.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	msg, err := newMessage(topic, key, payload)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s to %s: %w", key, topic, err)
	}
	return nil
}

func newMessage(topic, key string, payload interface{}) (kafka.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if event, ok := payload.(BookingEvent); ok {
		msg.Time = event.OccurredAt
		msg.Headers = []kafka.Header{{Key: EventTypeHeader, Value: []byte(event.Type)}}
	}
	return msg, nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and, when topics were given, makes
// sure each of them has at least one partition.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("dial %s: %w", p.brokers[0], err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.topics...)
	if err != nil {
		return fmt.Errorf("read partitions: %w", err)
	}
	seen := make(map[string]bool, len(partitions))
	for _, part := range partitions {
		seen[part.Topic] = true
	}
	for _, topic := range p.topics {
		if !seen[topic] {
			return fmt.Errorf("topic %s not found", topic)
		}
	}
	return nil
}
