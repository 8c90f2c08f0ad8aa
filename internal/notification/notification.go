// Package notification is the port through which the booking core emits
// notification intents. Delivery (email rendering, sending) is an external
// consumer of the intent topic; a failed emission never rolls back a booking
// transition.
package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notification.go -destination=./mocks/notification_mock.go -package=mocks

import (
	"context"
	"fmt"

	"eke/config"
	"eke/infras/kafka"
	"eke/infras/otel"
	"eke/shared/constant"
)

type Kind string

const (
	KindRequestReceived    Kind = "REQUEST_RECEIVED"
	KindConfirmed          Kind = "CONFIRMED"
	KindDeclined           Kind = "DECLINED"
	KindCancelled          Kind = "CANCELLED"
	KindCancelledByRenter  Kind = "CANCELLED_BY_RENTER"
	KindExpired            Kind = "EXPIRED"
	KindAmendmentRequested Kind = "AMENDMENT_REQUESTED"
	KindBookingUpdated     Kind = "BOOKING_UPDATED"
)

// Intent describes a notification the core wants delivered. Recipient is the
// user id of the addressee; Payload carries template fields for the consumer.
type Intent struct {
	Kind      Kind              `json:"kind"`
	Recipient string            `json:"recipient"`
	BookingID string            `json:"booking_id"`
	ListingID string            `json:"listing_id"`
	Payload   map[string]string `json:"payload,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, intent Intent) error
}

type kafkaNotifier struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otl otel.Otel) Notifier {
	return &kafkaNotifier{
		client: client,
		cfg:    cfg,
		otel:   otl,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, intent Intent) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"notification.kind":      string(intent.Kind),
		"notification.booking":   intent.BookingID,
		"notification.recipient": intent.Recipient,
	})

	err = n.client.SendMessages(ctx, n.cfg.Kafka.NotificationTopic, kafka.Message{
		Key:   intent.BookingID,
		Value: intent,
	})
	if err != nil {
		return fmt.Errorf("failed to emit notification intent: %w", err)
	}

	return nil
}
