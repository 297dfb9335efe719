package admin

import (
	"context"
	"fmt"
	"strings"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type adminUsecase struct {
	StatsRepository  contracts.AdminStatsRepository
	DoctorRepository contracts.DoctorRepository
	InboxWriter      contracts.InboxWriter
	Policy           contracts.AuthorizationPolicy
	Log              *zap.Logger
}

func NewAdminUsecase(
	statsRepository contracts.AdminStatsRepository,
	doctorRepository contracts.DoctorRepository,
	inboxWriter contracts.InboxWriter,
	authorizationPolicy contracts.AuthorizationPolicy,
	logger *zap.Logger,
) contracts.AdminUsecase {
	return &adminUsecase{
		StatsRepository:  statsRepository,
		DoctorRepository: doctorRepository,
		InboxWriter:      inboxWriter,
		Policy:           authorizationPolicy,
		Log:              logger,
	}
}

func (uc *adminUsecase) GetStats(ctx context.Context, session *models.Session) (*models.DashboardStats, error) {
	uc.Log.Info("adminUsecase.GetStats called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceStats, constvars.ActionRead, constvars.OwnershipOther); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{}
	groups := []struct {
		query  string
		target *map[string]int
	}{
		{queries.CountUsersByRole, &stats.UsersByRole},
		{queries.CountDoctorsByStatus, &stats.DoctorsByStatus},
		{queries.CountAppointmentsByStatus, &stats.AppointmentsByStatus},
		{queries.CountPaymentsByStatus, &stats.PaymentsByStatus},
		{queries.CountDoctorDocumentsByStatus, &stats.DocumentsByStatus},
	}
	for _, group := range groups {
		counts, err := uc.StatsRepository.CountGrouped(ctx, group.query)
		if err != nil {
			return nil, err
		}
		*group.target = counts
	}

	revenue, err := uc.StatsRepository.SumSuccessfulPayments(ctx)
	if err != nil {
		return nil, err
	}

	stats.TotalUsers = sum(stats.UsersByRole)
	stats.TotalAppointments = sum(stats.AppointmentsByStatus)
	stats.PendingDoctorApplications = stats.DoctorsByStatus[constvars.DoctorStatusPending]
	stats.PendingDoctorDocuments = stats.DocumentsByStatus[constvars.DocumentStatusPending]
	stats.TotalRevenue = revenue
	return stats, nil
}

func sum(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// ListDoctors shows every doctor regardless of status, unlike the public
// directory.
func (uc *adminUsecase) ListDoctors(ctx context.Context, session *models.Session, query requests.DoctorQuery) (*responses.Page[models.Doctor], error) {
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctor, constvars.ActionList, constvars.OwnershipOther); err != nil {
		return nil, err
	}
	doctors, total, err := uc.DoctorRepository.List(ctx, models.DoctorFilter{
		Status:         strings.ToUpper(query.Status),
		Specialization: query.Specialization,
		Limit:          query.PageSize,
		Offset:         query.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.Doctor]{Items: doctors, Total: total}, nil
}

func (uc *adminUsecase) UpdateDoctorStatus(ctx context.Context, session *models.Session, doctorID string, request *requests.UpdateDoctorStatus) (*models.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctor, constvars.ActionUpdateStatus, constvars.OwnershipOther); err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceDoctor, doctorID)
	}

	status := strings.ToUpper(request.Status)
	if err := uc.DoctorRepository.UpdateStatus(ctx, doctor.ID, status); err != nil {
		return nil, err
	}
	doctor.Status = status

	uc.InboxWriter.Notify(ctx, doctor.UserID,
		constvars.InboxTitleDoctorStatusUpdated,
		fmt.Sprintf(constvars.InboxMessageDoctorStatusUpdated, strings.ToLower(status)),
		constvars.NotificationTypeAccount,
	)

	utils.LogSecurityEvent(uc.Log, "doctor_status_changed", requestID, utils.SeverityLow,
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String("status", status),
	)
	return doctor, nil
}
