package controllers

import (
	"context"
	"net/http"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// reminderJobTimeout is longer than requestTimeout because the job walks a
// batch of appointments and hands each one to the dispatcher.
const reminderJobTimeout = 60 * time.Second

type JobController struct {
	Log             *zap.Logger
	ReminderUsecase contracts.ReminderUsecase
}

func NewJobController(logger *zap.Logger, reminderUsecase contracts.ReminderUsecase) *JobController {
	return &JobController{
		Log:             logger,
		ReminderUsecase: reminderUsecase,
	}
}

func (ctrl *JobController) AppointmentReminders(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("JobController.AppointmentReminders called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), reminderJobTimeout)
	defer cancel()

	result, err := ctrl.ReminderUsecase.SendUpcomingReminders(ctx)
	if err != nil {
		ctrl.Log.Error("JobController.AppointmentReminders ReminderUsecase.SendUpcomingReminders error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("JobController.AppointmentReminders succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, result.Sent),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReminderJobSuccess, result)
}
