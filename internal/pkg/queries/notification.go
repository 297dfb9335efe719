package queries

const (
	InsertNotification = `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, read, created_at
	`

	ListNotificationsByUser = `
		SELECT id, user_id, title, message, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	CountNotificationsByUser = `SELECT COUNT(*) FROM notifications WHERE user_id = $1`

	MarkNotificationRead = `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`

	GetNotificationOwner = `SELECT user_id FROM notifications WHERE id = $1`
)
