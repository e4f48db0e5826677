package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"visitor-insights-service/internal/model"
	"visitor-insights-service/internal/repository"
)

// Dispatcher records outbound-notification intents for out-of-band email
// delivery. Send reports success or failure back through the event
// tracker and never raises to the caller: the business record is already
// saved before a notification is attempted, so delivery stays best-effort.
type Dispatcher interface {
	Send(ctx context.Context, intent model.NotificationIntent) bool
}

type dispatcher struct {
	repo      repository.NotificationRepository
	tracker   Tracker
	recipient string
}

// NewDispatcher constructs a Dispatcher. recipient is the default
// destination applied when the intent does not name one.
func NewDispatcher(repo repository.NotificationRepository, tracker Tracker, recipient string) Dispatcher {
	return &dispatcher{
		repo:      repo,
		tracker:   tracker,
		recipient: recipient,
	}
}

func (d *dispatcher) Send(ctx context.Context, intent model.NotificationIntent) bool {
	if intent.Recipient == "" {
		intent.Recipient = d.recipient
	}
	// Random token keeps references unique even for same-type intents
	// created within the same millisecond.
	intent.ClientReference = fmt.Sprintf("%s_%s", intent.Type, uuid.New().String())

	if err := d.repo.Create(ctx, intent); err != nil {
		log.Printf("[ERROR] failed to create %s notification: %v", intent.Type, err)
		d.tracker.TrackEvent(model.EventData{
			Name: "notification_failed",
			Properties: map[string]any{
				"type":  string(intent.Type),
				"error": err.Error(),
			},
		}, model.ClientContext{})
		return false
	}

	d.tracker.TrackEvent(model.EventData{
		Name: "notification_created",
		Properties: map[string]any{
			"type":             string(intent.Type),
			"status":           "success",
			"client_reference": intent.ClientReference,
		},
	}, model.ClientContext{})
	return true
}
