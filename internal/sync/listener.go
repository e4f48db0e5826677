package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"visitor-insights-service/internal/db"
	"visitor-insights-service/internal/model"
)

const reconnectDelay = 5 * time.Second

// Listener holds one dedicated connection on LISTEN for the watched
// channels and feeds decoded changes to the coordinator. On connection
// loss it reconnects with a fixed delay until the context is cancelled.
type Listener struct {
	pool        *pgxpool.Pool
	coordinator *Coordinator
}

// NewListener constructs a Listener.
func NewListener(pool *pgxpool.Pool, coordinator *Coordinator) *Listener {
	return &Listener{pool: pool, coordinator: coordinator}
}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[ERROR] change feed disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	defer conn.Release()

	channels := []string{db.ChannelBookings, db.ChannelEnquiries, db.ChannelEvents}
	for _, channel := range channels {
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			return fmt.Errorf("listen %s: %w", channel, err)
		}
	}
	log.Printf("[INFO] change feed listening on %d channels", len(channels))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.dispatch(ctx, notification.Channel, notification.Payload)
	}
}

// dispatch decodes one notification and routes it to the coordinator.
// Changes interleave per arrival order from the stream; no ordering is
// guaranteed across channels.
func (l *Listener) dispatch(ctx context.Context, channel, payload string) {
	var change model.TableChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		log.Printf("[ERROR] malformed change payload on %s: %v", channel, err)
		return
	}

	switch channel {
	case db.ChannelBookings:
		l.coordinator.HandleBookingChange(ctx, change)
	case db.ChannelEnquiries:
		l.coordinator.HandleEnquiryChange(ctx, change)
	case db.ChannelEvents:
		l.coordinator.HandleAnalyticsEvent(ctx, change)
	}
}
