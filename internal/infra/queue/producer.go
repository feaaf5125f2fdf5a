package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/leadtrack/internal/usecase"
)

// LeadEventPayload is the message published for every store mutation.
type LeadEventPayload struct {
	Kind       string `json:"kind"`
	LeadID     string `json:"lead_id"`
	LeadName   string `json:"lead_name,omitempty"`
	LeadStatus string `json:"lead_status,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Producer bridges store mutation events onto the lead exchange so
// external automations (CRM sync, notifications) can react.
type Producer struct {
	ch     *amqp.Channel
	logger *slog.Logger
}

func NewProducer(ch *amqp.Channel, logger *slog.Logger) *Producer {
	return &Producer{ch: ch, logger: logger.With("component", "queue_producer")}
}

// Listener adapts Publish to the store's mutation listener signature.
// Publish failures are logged, never propagated: the store already
// committed the mutation and the event stream is best-effort.
func (p *Producer) Listener() usecase.MutationListener {
	return func(ev usecase.MutationEvent) {
		payload := LeadEventPayload{
			Kind:       ev.Kind,
			LeadID:     ev.LeadID,
			LeadName:   ev.Lead.Name,
			LeadStatus: ev.Lead.Status,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := p.Publish(context.Background(), payload); err != nil {
			p.logger.Error("failed to publish lead event", "kind", ev.Kind, "lead_id", ev.LeadID, "error", err)
		}
	}
}

func (p *Producer) Publish(ctx context.Context, payload LeadEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
}
