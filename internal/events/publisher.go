package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const Topic = "storefront-saga"

// Event records a saga stage transition for downstream analytics. Emission is
// best effort: a lost event never fails the guest's request.
type Event struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"session_id"`
	OrderRef   string    `json:"order_ref,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	TypeCheckoutCompleted = "checkout_completed"
	TypePaymentCompleted  = "payment_completed"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a disabled publisher when no brokers are configured.
func NewPublisher(brokers ...string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p.writer == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal event %s: %v", event.Type, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
	})
	if err != nil {
		log.Printf("failed to publish event %s: %v", event.Type, err)
	}
}

func (p *Publisher) Close() {
	if p.writer == nil {
		return
	}
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}
