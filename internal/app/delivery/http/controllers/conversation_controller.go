package controllers

import (
	"context"
	"net/http"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type ConversationController struct {
	Log                 *zap.Logger
	ConversationUsecase contracts.ConversationUsecase
}

func NewConversationController(logger *zap.Logger, conversationUsecase contracts.ConversationUsecase) *ConversationController {
	return &ConversationController{
		Log:                 logger,
		ConversationUsecase: conversationUsecase,
	}
}

func (ctrl *ConversationController) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	conversations, err := ctrl.ConversationUsecase.List(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ConversationListSuccess, conversations)
}

func (ctrl *ConversationController) ListMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	conversationID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	messages, err := ctrl.ConversationUsecase.ListMessages(ctx, session, conversationID, utils.BuildPaginationRequest(r))
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MessageListSuccess, messages)
}

func (ctrl *ConversationController) SendMessage(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	session, ok := sessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}
	conversationID, err := utils.GetURLParamUUID(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SendMessage)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.SanitizeSendMessageRequest(request)
	if err := validate(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	message, err := ctrl.ConversationUsecase.SendMessage(ctx, session, conversationID, request)
	if err != nil {
		ctrl.Log.Warn("ConversationController.SendMessage ConversationUsecase.SendMessage error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConversationIDKey, conversationID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.MessageSendSuccess, message)
}
