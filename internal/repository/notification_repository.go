package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"visitor-insights-service/internal/model"
)

// NotificationRepository persists outbound-notification intents. Actual
// email delivery is owned by a separate mailer process reading the table.
type NotificationRepository interface {
	Create(ctx context.Context, intent model.NotificationIntent) error
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a NotificationRepository backed by PostgreSQL.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const insertNotificationQuery = `
	INSERT INTO email_notifications (type, recipient, subject, client_reference, client_metadata)
	VALUES ($1, $2, $3, $4, $5)
`

func (r *notificationRepository) Create(ctx context.Context, intent model.NotificationIntent) error {
	metadata, err := json.Marshal(intent.Metadata())
	if err != nil {
		return fmt.Errorf("marshal client metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertNotificationQuery,
		string(intent.Type),
		intent.Recipient,
		intent.Subject,
		intent.ClientReference,
		metadata,
	)

	return err
}
