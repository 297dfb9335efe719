package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
)

type ConversationEnsurer interface {
	Ensure(ctx context.Context, patientID, doctorID, appointmentID string) (*models.Conversation, error)
}

type ConversationUsecase interface {
	ConversationEnsurer
	List(ctx context.Context, session *models.Session) ([]models.Conversation, error)
	ListMessages(ctx context.Context, session *models.Session, conversationID string, pagination requests.Pagination) ([]models.Message, error)
	SendMessage(ctx context.Context, session *models.Session, conversationID string, request *requests.SendMessage) (*models.Message, error)
}

type ConversationRepository interface {
	FindByPair(ctx context.Context, patientID, doctorID string) (*models.Conversation, error)
	FindByID(ctx context.Context, conversationID string) (*models.Conversation, error)
	Create(ctx context.Context, conversation *models.Conversation) error
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]models.Message, error)
}
