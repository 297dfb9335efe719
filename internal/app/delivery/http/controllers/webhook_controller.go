package controllers

import (
	"context"
	"io"
	"net/http"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type WebhookController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewWebhookController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *WebhookController {
	return &WebhookController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

// PaymentGateway handles gateway event callbacks. The signature is computed
// over the exact bytes received, so the raw body captured by the body buffer
// middleware is preferred over re-reading the request.
func (ctrl *WebhookController) PaymentGateway(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	raw, ok := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
	if !ok {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
			return
		}
		raw = body
	}
	signature := r.Header.Get(constvars.HeaderPaystackSignature)

	ctrl.Log.Info("WebhookController.PaymentGateway called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(raw)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := ctrl.PaymentUsecase.HandleWebhook(ctx, raw, signature)
	if err != nil {
		ctrl.Log.Warn("WebhookController.PaymentGateway PaymentUsecase.HandleWebhook error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("WebhookController.PaymentGateway succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, result.Event),
		zap.Bool(constvars.LoggingSuccessKey, result.Applied),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.WebhookReceivedSuccess, result)
}
