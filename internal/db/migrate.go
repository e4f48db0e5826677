package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification channels fed by the insert triggers below. The sync
// coordinator LISTENs on these.
const (
	ChannelBookings  = "bookings_changed"
	ChannelEnquiries = "enquiries_changed"
	ChannelEvents    = "analytics_events_changed"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id           UUID PRIMARY KEY,
		event_name   TEXT NOT NULL,
		properties   JSONB NOT NULL DEFAULT '{}',
		url          TEXT NOT NULL DEFAULT '',
		user_agent   TEXT NOT NULL DEFAULT '',
		ts           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS analytics_events_ts_idx ON analytics_events (ts)`,
	`CREATE INDEX IF NOT EXISTS analytics_events_name_idx ON analytics_events (event_name)`,

	`CREATE TABLE IF NOT EXISTS email_notifications (
		id               BIGSERIAL PRIMARY KEY,
		type             TEXT NOT NULL,
		recipient        TEXT NOT NULL,
		subject          TEXT NOT NULL DEFAULT '',
		client_reference TEXT NOT NULL UNIQUE,
		client_metadata  JSONB NOT NULL DEFAULT '{}',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id               UUID PRIMARY KEY,
		name             TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL DEFAULT '',
		alt_phone        TEXT NOT NULL DEFAULT '',
		package_name     TEXT NOT NULL,
		package_type     TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		price            TEXT NOT NULL DEFAULT '',
		travel_date      TEXT NOT NULL DEFAULT '',
		num_travelers    INT NOT NULL DEFAULT 0,
		special_requests TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'pending',
		source_page      TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS enquiries (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		subject     TEXT NOT NULL DEFAULT '',
		message     TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'pending',
		source      TEXT NOT NULL DEFAULT '',
		source_page TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS content_suggestions (
		id         BIGSERIAL PRIMARY KEY,
		path       TEXT NOT NULL,
		suggestion TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// Change feed: each trigger publishes the affected row on its channel.
	// pg_notify payloads are capped at 8000 bytes, which the row shapes
	// here stay well under.
	`CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
	DECLARE
		affected RECORD;
	BEGIN
		IF TG_OP = 'DELETE' THEN
			affected := OLD;
		ELSE
			affected := NEW;
		END IF;
		PERFORM pg_notify(TG_ARGV[0], json_build_object(
			'table', TG_TABLE_NAME,
			'operation', TG_OP,
			'row', row_to_json(affected)
		)::text);
		RETURN affected;
	END;
	$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS bookings_notify ON bookings`,
	`CREATE TRIGGER bookings_notify
		AFTER INSERT OR UPDATE OR DELETE ON bookings
		FOR EACH ROW EXECUTE FUNCTION notify_table_change('bookings_changed')`,

	`DROP TRIGGER IF EXISTS enquiries_notify ON enquiries`,
	`CREATE TRIGGER enquiries_notify
		AFTER INSERT OR UPDATE OR DELETE ON enquiries
		FOR EACH ROW EXECUTE FUNCTION notify_table_change('enquiries_changed')`,

	`DROP TRIGGER IF EXISTS analytics_events_notify ON analytics_events`,
	`CREATE TRIGGER analytics_events_notify
		AFTER INSERT ON analytics_events
		FOR EACH ROW EXECUTE FUNCTION notify_table_change('analytics_events_changed')`,
}

// RunMigrations ensures required tables and triggers exist. This keeps the
// service self-contained without an external migration step.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
