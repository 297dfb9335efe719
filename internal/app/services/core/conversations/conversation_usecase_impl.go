package conversations

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const messagingWindow = constvars.ConversationMessagingWindowDays * 24 * time.Hour

type conversationUsecase struct {
	ConversationRepository contracts.ConversationRepository
	AppointmentRepository  contracts.AppointmentRepository
	Policy                 contracts.AuthorizationPolicy
	Log                    *zap.Logger
	now                    func() time.Time
}

func NewConversationUsecase(
	conversationRepository contracts.ConversationRepository,
	appointmentRepository contracts.AppointmentRepository,
	authorizationPolicy contracts.AuthorizationPolicy,
	logger *zap.Logger,
) contracts.ConversationUsecase {
	return &conversationUsecase{
		ConversationRepository: conversationRepository,
		AppointmentRepository:  appointmentRepository,
		Policy:                 authorizationPolicy,
		Log:                    logger,
		now:                    time.Now,
	}
}

// Ensure returns the conversation of the pair, creating it on first call.
// Losing the insert race to a concurrent caller yields the winner's row.
func (uc *conversationUsecase) Ensure(ctx context.Context, patientID, doctorID, appointmentID string) (*models.Conversation, error) {
	requestID := utils.GetRequestID(ctx)

	existing, err := uc.ConversationRepository.FindByPair(ctx, patientID, doctorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conversation := &models.Conversation{
		PatientID:     patientID,
		DoctorID:      doctorID,
		AppointmentID: appointmentID,
	}
	err = uc.ConversationRepository.Create(ctx, conversation)
	if exceptions.HasStatusCode(err, constvars.StatusConflict) {
		uc.Log.Info("conversationUsecase.Ensure lost insert race, reusing existing conversation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
		)
		return uc.ConversationRepository.FindByPair(ctx, patientID, doctorID)
	}
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "conversation_created", requestID,
		zap.String(constvars.LoggingConversationIDKey, conversation.ID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return conversation, nil
}

func (uc *conversationUsecase) List(ctx context.Context, session *models.Session) ([]models.Conversation, error) {
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceConversation, constvars.ActionList, constvars.OwnershipSelf); err != nil {
		return nil, err
	}
	return uc.ConversationRepository.ListByUser(ctx, session.UserID)
}

func (uc *conversationUsecase) ListMessages(ctx context.Context, session *models.Session, conversationID string, pagination requests.Pagination) ([]models.Message, error) {
	conversation, err := uc.findForParticipant(ctx, session, conversationID, constvars.ActionRead)
	if err != nil {
		return nil, err
	}
	return uc.ConversationRepository.ListMessages(ctx, conversation.ID, pagination.PageSize, pagination.Offset())
}

func (uc *conversationUsecase) SendMessage(ctx context.Context, session *models.Session, conversationID string, request *requests.SendMessage) (*models.Message, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("conversationUsecase.SendMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingConversationIDKey, conversationID),
	)

	conversation, err := uc.findForParticipant(ctx, session, conversationID, constvars.ActionSendMessage)
	if err != nil {
		return nil, err
	}

	endTime, err := uc.AppointmentRepository.LatestCompletedEndTime(ctx, conversation.PatientID, conversation.DoctorID)
	if err != nil {
		return nil, err
	}
	if endTime == nil {
		return nil, exceptions.ErrMessagingWindowClosed(nil, "never opened")
	}
	closesAt := endTime.Add(messagingWindow)
	if uc.now().After(closesAt) {
		return nil, exceptions.ErrMessagingWindowClosed(nil, closesAt.Format(time.RFC3339))
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       session.UserID,
		Content:        request.Content,
	}
	if err := uc.ConversationRepository.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (uc *conversationUsecase) findForParticipant(ctx context.Context, session *models.Session, conversationID, action string) (*models.Conversation, error) {
	conversation, err := uc.ConversationRepository.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceConversation, conversationID)
	}
	owned := session.UserID == conversation.PatientUserID || session.UserID == conversation.DoctorUserID
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceConversation, action, policy.Ownership(owned)); err != nil {
		return nil, err
	}
	return conversation, nil
}
