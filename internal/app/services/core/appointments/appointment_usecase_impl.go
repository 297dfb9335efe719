package appointments

import (
	"context"
	"fmt"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const appointmentLockTTL = 10 * time.Second

type appointmentUsecase struct {
	AppointmentRepository  contracts.AppointmentRepository
	PatientRepository      contracts.PatientRepository
	DoctorRepository       contracts.DoctorRepository
	ConversationEnsurer    contracts.ConversationEnsurer
	NotificationDispatcher contracts.NotificationDispatcher
	InboxWriter            contracts.InboxWriter
	LockService            contracts.LockerService
	Policy                 contracts.AuthorizationPolicy
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
	now                    func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	conversationEnsurer contracts.ConversationEnsurer,
	notificationDispatcher contracts.NotificationDispatcher,
	inboxWriter contracts.InboxWriter,
	lockService contracts.LockerService,
	authorizationPolicy contracts.AuthorizationPolicy,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository:  appointmentRepository,
		PatientRepository:      patientRepository,
		DoctorRepository:       doctorRepository,
		ConversationEnsurer:    conversationEnsurer,
		NotificationDispatcher: notificationDispatcher,
		InboxWriter:            inboxWriter,
		LockService:            lockService,
		Policy:                 authorizationPolicy,
		InternalConfig:         internalConfig,
		Log:                    logger,
		now:                    time.Now,
	}
}

func (uc *appointmentUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionCreate, constvars.OwnershipSelf); err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, constvars.RolePatient)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceDoctor, request.DoctorID)
	}
	if doctor.Status != constvars.DoctorStatusApproved {
		return nil, exceptions.ErrDoctorNotPracticing(nil, doctor.Status)
	}

	date, err := utils.ParseCalendarDate(request.Date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	scheduled, clock := resolveSchedule(date, request.Time)
	if err := checkCreateWindow(scheduled, clock != "" || hasClock(date), uc.now()); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      scheduled,
		Time:      clock,
		Type:      request.Type,
		Status:    constvars.AppointmentStatusPending,
		Notes:     request.Notes,
	}
	if err := uc.AppointmentRepository.Create(ctx, appointment); err != nil {
		return nil, err
	}

	uc.NotificationDispatcher.Submit(ctx, &models.AppointmentNotification{
		Appointment:  *appointment,
		PatientName:  patient.FullName,
		PatientEmail: patient.Email,
		DoctorName:   doctor.FullName,
		DoctorEmail:  doctor.Email,
		Type:         constvars.NotificationTypeBooking,
	})
	uc.InboxWriter.Notify(ctx, doctor.UserID,
		constvars.InboxTitleAppointmentRequested,
		fmt.Sprintf(constvars.InboxMessageAppointmentRequested, patient.FullName, formatDate(appointment.Date), appointment.Time),
		constvars.NotificationTypeBooking,
	)

	utils.LogBusinessEvent(uc.Log, "appointment_created", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return appointment, nil
}

// Update applies a partial change. Authorization and every validation run
// before the single conditional write.
func (uc *appointmentUsecase) Update(ctx context.Context, session *models.Session, appointmentID string, request *requests.UpdateAppointment) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	detail, err := uc.findDetail(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	current := detail.Status
	// A requested status always goes through the transition table; asking for
	// the current status is not a transition and is rejected.
	statusChanged := request.Status != nil
	dateChanged := request.Date != nil || request.Time != nil

	ownership := policy.Ownership(isParticipant(session, detail))
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionUpdateNotes, ownership); err != nil {
		return nil, err
	}
	if statusChanged {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionUpdateStatus, ownership); err != nil {
			return nil, err
		}
	}
	if dateChanged {
		if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionReschedule, ownership); err != nil {
			return nil, err
		}
	}

	updated := detail.Appointment
	now := uc.now()

	if statusChanged {
		if !CanTransition(current, *request.Status) {
			uc.Log.Warn("appointmentUsecase.Update rejected status transition",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCurrentStatusKey, current),
				zap.String(constvars.LoggingRequestedStatusKey, *request.Status),
			)
			return nil, exceptions.ErrInvalidStatusTransition(nil, current, *request.Status)
		}
		updated.Status = *request.Status
	}

	if dateChanged {
		if IsTerminal(current) {
			return nil, exceptions.ErrAppointmentNotReschedulable(nil, current)
		}

		base := updated.Date.UTC().Truncate(day)
		dateHasClock := false
		if request.Date != nil {
			parsed, err := utils.ParseCalendarDate(*request.Date)
			if err != nil {
				return nil, exceptions.ErrCannotParseDate(err)
			}
			base = parsed
			dateHasClock = hasClock(parsed)
		}
		clock := updated.Time
		if request.Time != nil {
			clock = *request.Time
		}
		scheduled, resolvedClock := resolveSchedule(base, clock)
		dayPicked := request.Date != nil && request.Time == nil && !dateHasClock
		if err := checkRescheduleWindow(scheduled, resolvedClock != "" || dateHasClock, dayPicked, now); err != nil {
			return nil, err
		}
		updated.Date = scheduled
		updated.Time = resolvedClock

		if !statusChanged && current == constvars.AppointmentStatusApproved {
			updated.Status = constvars.AppointmentStatusPending
		}
	}

	if request.Notes != nil {
		updated.Notes = *request.Notes
	}
	if updated.Status == constvars.AppointmentStatusCompleted && current != constvars.AppointmentStatusCompleted {
		endTime := now
		updated.EndTime = &endTime
	}

	unlock, err := uc.lock(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ok, err := uc.AppointmentRepository.UpdateIfStatus(ctx, &updated, current)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrAppointmentStaleWrite(nil, current)
	}

	if updated.Status == constvars.AppointmentStatusCompleted && current != constvars.AppointmentStatusCompleted {
		if _, err := uc.ConversationEnsurer.Ensure(ctx, updated.PatientID, updated.DoctorID, updated.ID); err != nil {
			uc.Log.Error("appointmentUsecase.Update failed to ensure conversation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
				zap.Error(err),
			)
		}
	}

	switch {
	case dateChanged:
		uc.notify(ctx, detail, updated, constvars.NotificationTypeReschedule)
	case statusChanged:
		uc.notify(ctx, detail, updated, constvars.NotificationTypeStatusUpdate)
		uc.InboxWriter.Notify(ctx, detail.PatientUserID,
			constvars.InboxTitleAppointmentUpdated,
			fmt.Sprintf(constvars.InboxMessageAppointmentUpdated, formatDate(updated.Date), updated.Time, updated.Status),
			constvars.NotificationTypeStatusUpdate,
		)
	}

	utils.LogBusinessEvent(uc.Log, "appointment_updated", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
		zap.String(constvars.LoggingCurrentStatusKey, current),
		zap.String(constvars.LoggingRequestedStatusKey, updated.Status),
	)
	return &updated, nil
}

func (uc *appointmentUsecase) Cancel(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	detail, err := uc.findDetail(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ownership := policy.Ownership(session.UserID == detail.PatientUserID)
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionCancel, ownership); err != nil {
		return nil, err
	}

	current := detail.Status
	if !isCancelable(current) {
		return nil, exceptions.ErrAppointmentNotCancelable(nil, current)
	}

	unlock, err := uc.lock(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	updated := detail.Appointment
	updated.Status = constvars.AppointmentStatusCanceled
	ok, err := uc.AppointmentRepository.UpdateIfStatus(ctx, &updated, current)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrAppointmentStaleWrite(nil, current)
	}

	uc.notify(ctx, detail, updated, constvars.NotificationTypeStatusUpdate)
	uc.InboxWriter.Notify(ctx, detail.DoctorUserID,
		constvars.InboxTitleAppointmentCanceled,
		fmt.Sprintf(constvars.InboxMessageAppointmentCanceled, detail.PatientName, formatDate(updated.Date), updated.Time),
		constvars.NotificationTypeStatusUpdate,
	)

	utils.LogBusinessEvent(uc.Log, "appointment_canceled", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
	)
	return &updated, nil
}

func (uc *appointmentUsecase) Get(ctx context.Context, session *models.Session, appointmentID string) (*models.AppointmentDetail, error) {
	detail, err := uc.findDetail(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	ownership := policy.Ownership(isParticipant(session, detail))
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionRead, ownership); err != nil {
		return nil, err
	}
	return detail, nil
}

func (uc *appointmentUsecase) List(ctx context.Context, session *models.Session, query requests.AppointmentQuery) (*responses.Page[models.AppointmentDetail], error) {
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionList, constvars.OwnershipSelf); err != nil {
		return nil, err
	}

	filter := models.AppointmentFilter{
		Status: strings.ToUpper(query.Status),
		Limit:  query.PageSize,
		Offset: query.Offset(),
	}
	switch session.Role {
	case constvars.RolePatient:
		patient, err := uc.PatientRepository.FindByUserID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, exceptions.ErrRoleProfileNotFound(nil, session.Role)
		}
		filter.PatientID = patient.ID
	case constvars.RoleDoctor:
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, exceptions.ErrRoleProfileNotFound(nil, session.Role)
		}
		filter.DoctorID = doctor.ID
	}

	items, total, err := uc.AppointmentRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.AppointmentDetail]{Items: items, Total: total}, nil
}

// Meeting returns the video meeting of an approved video call, creating it
// on first access. Concurrent first accesses converge on one stored meeting.
func (uc *appointmentUsecase) Meeting(ctx context.Context, session *models.Session, appointmentID string) (*responses.Meeting, error) {
	requestID := utils.GetRequestID(ctx)
	detail, err := uc.findDetail(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	ownership := policy.Ownership(isParticipant(session, detail))
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceAppointment, constvars.ActionMeeting, ownership); err != nil {
		return nil, err
	}
	if detail.Type != constvars.AppointmentTypeVideoCall || detail.Status != constvars.AppointmentStatusApproved {
		return nil, exceptions.ErrMeetingUnavailable(nil, detail.Type, detail.Status)
	}

	if detail.MeetingID != nil && detail.MeetingURL != nil {
		return &responses.Meeting{AppointmentID: detail.ID, MeetingID: *detail.MeetingID, MeetingURL: *detail.MeetingURL}, nil
	}

	meetingID := uuid.NewString()
	meetingURL := fmt.Sprintf("%s/%s", strings.TrimRight(uc.InternalConfig.Meeting.BaseUrl, "/"), meetingID)
	created, err := uc.AppointmentRepository.SetMeetingIfAbsent(ctx, detail.ID, meetingID, meetingURL)
	if err != nil {
		return nil, err
	}

	if !created {
		stored, err := uc.AppointmentRepository.FindByID(ctx, detail.ID)
		if err != nil {
			return nil, err
		}
		if stored == nil || stored.MeetingID == nil || stored.MeetingURL == nil {
			return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceAppointment, detail.ID)
		}
		return &responses.Meeting{AppointmentID: detail.ID, MeetingID: *stored.MeetingID, MeetingURL: *stored.MeetingURL}, nil
	}

	withMeeting := detail.Appointment
	withMeeting.MeetingID = &meetingID
	withMeeting.MeetingURL = &meetingURL
	uc.notify(ctx, detail, withMeeting, constvars.NotificationTypeVideoMeeting)

	uc.Log.Info("appointmentUsecase.Meeting created meeting",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, detail.ID),
	)
	return &responses.Meeting{AppointmentID: detail.ID, MeetingID: meetingID, MeetingURL: meetingURL}, nil
}

func (uc *appointmentUsecase) findDetail(ctx context.Context, appointmentID string) (*models.AppointmentDetail, error) {
	detail, err := uc.AppointmentRepository.FindDetailByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceAppointment, appointmentID)
	}
	return detail, nil
}

// lock takes the advisory per-appointment lock. A Redis failure is logged
// and the conditional update alone guards the write.
func (uc *appointmentUsecase) lock(ctx context.Context, appointmentID string) (func(), error) {
	key := fmt.Sprintf(constvars.RedisKeyAppointmentLockFmt, appointmentID)
	acquired, token, err := uc.LockService.TryLock(ctx, key, appointmentLockTTL)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.lock unavailable, relying on conditional update",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return func() {}, nil
	}
	if !acquired {
		return nil, exceptions.ErrAppointmentStaleWrite(nil, "unlocked")
	}
	return func() {
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			uc.Log.Warn("appointmentUsecase.lock failed to release", zap.String(constvars.LoggingRedisKey, key), zap.Error(err))
		}
	}, nil
}

func (uc *appointmentUsecase) notify(ctx context.Context, detail *models.AppointmentDetail, appointment models.Appointment, notificationType string) {
	uc.NotificationDispatcher.Submit(ctx, &models.AppointmentNotification{
		Appointment:  appointment,
		PatientName:  detail.PatientName,
		PatientEmail: detail.PatientEmail,
		DoctorName:   detail.DoctorName,
		DoctorEmail:  detail.DoctorEmail,
		Type:         notificationType,
	})
}

func isParticipant(session *models.Session, detail *models.AppointmentDetail) bool {
	return session.UserID == detail.PatientUserID || session.UserID == detail.DoctorUserID
}

// resolveSchedule merges a calendar date with an HH:MM clock. The returned
// clock is empty only when neither the date nor the input carried one.
func resolveSchedule(date time.Time, clock string) (time.Time, string) {
	scheduled := utils.ScheduledAt(date, clock)
	if clock == "" && hasClock(scheduled) {
		clock = scheduled.Format(constvars.TimeFormatHHMM)
	}
	return scheduled, clock
}

func formatDate(t time.Time) string {
	return t.UTC().Format(constvars.TimeFormatYYYYMMDD)
}
