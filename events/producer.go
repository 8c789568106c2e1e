package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const producerName = "fruitstore-api"

// Producer is an async Kafka publisher for order lifecycle events. A nil
// *Producer is valid and drops everything, so the broker is optional.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

func (p *Producer) Start(ctx context.Context) {
	if p == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					_ = p.w.WriteMessages(context.Background(), m)
				}
				_ = p.w.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					close(p.closeCh)
					return
				}
				if err := p.w.WriteMessages(context.Background(), m); err != nil {
					log.Printf("events: publish failed: %v", err)
				}
			}
		}
	}()
}

// PublishEvent wraps a payload in an envelope keyed by order ref.
// Fire-and-forget; delivery failures are logged, not surfaced.
func (p *Producer) PublishEvent(eventType, orderRef string, payload any) {
	if p == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: marshal payload: %v", err)
		return
	}
	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producerName,
		OrderRef:   orderRef,
		Payload:    raw,
	}
	value, err := json.Marshal(env)
	if err != nil {
		log.Printf("events: marshal envelope: %v", err)
		return
	}
	select {
	case p.inbox <- kafka.Message{Key: []byte(orderRef), Value: value, Time: time.Now()}:
	default:
		log.Printf("events: inbox full, dropping %s for %s", eventType, orderRef)
	}
}

func (p *Producer) Close() {
	if p == nil {
		return
	}
	close(p.inbox)
}

func (p *Producer) WaitClosed() {
	if p == nil {
		return
	}
	<-p.closeCh
}
