package notifications

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"

	"go.uber.org/zap"
)

type notificationPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewNotificationPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.NotificationRepository {
	return &notificationPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *notificationPostgresRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertNotification,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
	).Scan(&notification.ID, &notification.Read, &notification.CreatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *notificationPostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountNotificationsByUser, userID).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListNotificationsByUser, userID, limit, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return notifications, total, nil
}

// FindOwner returns an empty user id when the notification does not exist.
func (r *notificationPostgresRepository) FindOwner(ctx context.Context, notificationID string) (string, error) {
	var userID string
	err := r.DB.QueryRowContext(ctx, queries.GetNotificationOwner, notificationID).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrPostgresDBFindData(err)
	}
	return userID, nil
}

func (r *notificationPostgresRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	if _, err := r.DB.ExecContext(ctx, queries.MarkNotificationRead, notificationID, userID); err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}
