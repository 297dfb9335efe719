package conversations

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type conversationPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewConversationPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ConversationRepository {
	return &conversationPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConversation(row rowScanner) (*models.Conversation, error) {
	var c models.Conversation
	err := row.Scan(
		&c.ID,
		&c.PatientID,
		&c.DoctorID,
		&c.AppointmentID,
		&c.PatientUserID,
		&c.DoctorUserID,
		&c.PatientName,
		&c.DoctorName,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *conversationPostgresRepository) FindByPair(ctx context.Context, patientID, doctorID string) (*models.Conversation, error) {
	conversation, err := scanConversation(r.DB.QueryRowContext(ctx, queries.GetConversationByPair, patientID, doctorID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return conversation, nil
}

func (r *conversationPostgresRepository) FindByID(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conversation, err := scanConversation(r.DB.QueryRowContext(ctx, queries.GetConversationByID, conversationID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return conversation, nil
}

func (r *conversationPostgresRepository) Create(ctx context.Context, conversation *models.Conversation) error {
	var appointmentID interface{}
	if conversation.AppointmentID != "" {
		appointmentID = conversation.AppointmentID
	}
	err := r.DB.QueryRowContext(ctx, queries.InsertConversation,
		conversation.PatientID,
		conversation.DoctorID,
		appointmentID,
	).Scan(&conversation.ID, &conversation.CreatedAt)
	if err != nil {
		if constraint, ok := utils.IsUniqueViolation(err); ok {
			return exceptions.ErrPostgresDBDuplicateData(err, constraint)
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *conversationPostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	rows, err := r.DB.QueryContext(ctx, queries.ListConversationsByUser, userID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	conversations := make([]models.Conversation, 0)
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		conversations = append(conversations, *conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return conversations, nil
}

func (r *conversationPostgresRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertMessage,
		message.ConversationID,
		message.SenderID,
		message.Content,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *conversationPostgresRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error) {
	rows, err := r.DB.QueryContext(ctx, queries.ListMessagesByConversation, conversationID, limit, offset)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return messages, nil
}
