package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"visitor-insights-service/internal/model"
)

// EventRepository defines database operations for analytics events.
type EventRepository interface {
	// Create inserts a single event.
	Create(ctx context.Context, event model.Event) error

	// CreateBatch inserts multiple events efficiently using pgx.Batch.
	CreateBatch(ctx context.Context, events []model.Event) error

	// ListSince returns all events timestamped at or after the given instant,
	// oldest first.
	ListSince(ctx context.Context, from time.Time) ([]model.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates an EventRepository backed by PostgreSQL.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const insertEventQuery = `
	INSERT INTO analytics_events (id, event_name, properties, url, user_agent, ts)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING
`

const listEventsSinceQuery = `
	SELECT id, event_name, properties, url, user_agent, ts
	FROM analytics_events
	WHERE ts >= $1
	ORDER BY ts ASC
`

func (r *eventRepository) Create(ctx context.Context, event model.Event) error {
	properties, err := marshalProperties(event.Properties)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, insertEventQuery,
		event.ID,
		event.Name,
		properties,
		event.URL,
		event.UserAgent,
		event.Timestamp,
	)

	return err
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []model.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	for _, event := range events {
		properties, err := marshalProperties(event.Properties)
		if err != nil {
			return err
		}

		batch.Queue(insertEventQuery,
			event.ID,
			event.Name,
			properties,
			event.URL,
			event.UserAgent,
			event.Timestamp,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		_, err := br.Exec()
		if err != nil {
			return fmt.Errorf("batch execution error: %w", err)
		}
	}

	return nil
}

func (r *eventRepository) ListSince(ctx context.Context, from time.Time) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx, listEventsSinceQuery, from)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var (
			event model.Event
			raw   []byte
		)
		if err := rows.Scan(&event.ID, &event.Name, &raw, &event.URL, &event.UserAgent, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &event.Properties); err != nil {
				return nil, fmt.Errorf("unmarshal properties: %w", err)
			}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

func marshalProperties(properties map[string]any) ([]byte, error) {
	if properties == nil {
		properties = map[string]any{}
	}
	b, err := json.Marshal(properties)
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}
	return b, nil
}
