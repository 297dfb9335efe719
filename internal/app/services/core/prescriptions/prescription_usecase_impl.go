package prescriptions

import (
	"context"
	"fmt"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type prescriptionUsecase struct {
	PrescriptionRepository contracts.PrescriptionRepository
	PatientRepository      contracts.PatientRepository
	DoctorRepository       contracts.DoctorRepository
	AppointmentRepository  contracts.AppointmentRepository
	InboxWriter            contracts.InboxWriter
	Policy                 contracts.AuthorizationPolicy
	Log                    *zap.Logger
}

func NewPrescriptionUsecase(
	prescriptionRepository contracts.PrescriptionRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	inboxWriter contracts.InboxWriter,
	authorizationPolicy contracts.AuthorizationPolicy,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	return &prescriptionUsecase{
		PrescriptionRepository: prescriptionRepository,
		PatientRepository:      patientRepository,
		DoctorRepository:       doctorRepository,
		AppointmentRepository:  appointmentRepository,
		InboxWriter:            inboxWriter,
		Policy:                 authorizationPolicy,
		Log:                    logger,
	}
}

// Create issues a prescription to a patient the doctor has seen or is
// scheduled to see.
func (uc *prescriptionUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreatePrescription) (*models.Prescription, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("prescriptionUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePrescription, constvars.ActionCreate, constvars.OwnershipSelf); err != nil {
		return nil, err
	}
	doctor, err := uc.sessionDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourcePatient, request.PatientID)
	}

	related, err := uc.AppointmentRepository.ExistsBetween(ctx, patient.ID, doctor.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePrescription, constvars.ActionCreate, policy.Ownership(related)); err != nil {
		return nil, err
	}

	prescription := &models.Prescription{
		DoctorID:     doctor.ID,
		PatientID:    patient.ID,
		Medication:   request.Medication,
		Dosage:       request.Dosage,
		Instructions: request.Instructions,
		DoctorName:   doctor.FullName,
		PatientName:  patient.FullName,
	}
	if err := uc.PrescriptionRepository.Create(ctx, prescription); err != nil {
		return nil, err
	}

	uc.InboxWriter.Notify(ctx, patient.UserID,
		constvars.InboxTitlePrescriptionIssued,
		fmt.Sprintf(constvars.InboxMessagePrescriptionIssued, doctor.FullName, prescription.Medication),
		constvars.NotificationTypePrescription,
	)

	utils.LogBusinessEvent(uc.Log, "prescription_created", requestID,
		zap.String(constvars.LoggingPrescriptionIDKey, prescription.ID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return prescription, nil
}

func (uc *prescriptionUsecase) List(ctx context.Context, session *models.Session, pagination requests.Pagination) (*responses.Page[models.Prescription], error) {
	filter := models.PrescriptionFilter{
		Limit:  pagination.PageSize,
		Offset: pagination.Offset(),
	}

	ownership := constvars.OwnershipSelf
	switch session.Role {
	case constvars.RolePatient:
		patient, err := uc.sessionPatient(ctx, session)
		if err != nil {
			return nil, err
		}
		filter.PatientID = patient.ID
	case constvars.RoleDoctor:
		doctor, err := uc.sessionDoctor(ctx, session)
		if err != nil {
			return nil, err
		}
		filter.DoctorID = doctor.ID
	default:
		ownership = constvars.OwnershipOther
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePrescription, constvars.ActionList, ownership); err != nil {
		return nil, err
	}

	items, total, err := uc.PrescriptionRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.Prescription]{Items: items, Total: total}, nil
}

func (uc *prescriptionUsecase) Get(ctx context.Context, session *models.Session, prescriptionID string) (*models.Prescription, error) {
	prescription, err := uc.find(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	owned, err := uc.isParty(ctx, session, prescription)
	if err != nil {
		return nil, err
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePrescription, constvars.ActionRead, policy.Ownership(owned)); err != nil {
		return nil, err
	}
	return prescription, nil
}

// Update lets the issuing doctor change the medication, dosage or
// instructions. The parties never change.
func (uc *prescriptionUsecase) Update(ctx context.Context, session *models.Session, prescriptionID string, request *requests.UpdatePrescription) (*models.Prescription, error) {
	requestID := utils.GetRequestID(ctx)
	prescription, err := uc.find(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}

	owned := false
	if session.Role == constvars.RoleDoctor {
		doctor, err := uc.sessionDoctor(ctx, session)
		if err != nil {
			return nil, err
		}
		owned = doctor.ID == prescription.DoctorID
	}
	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePrescription, constvars.ActionUpdate, policy.Ownership(owned)); err != nil {
		return nil, err
	}

	if request.Medication != nil {
		prescription.Medication = *request.Medication
	}
	if request.Dosage != nil {
		prescription.Dosage = *request.Dosage
	}
	if request.Instructions != nil {
		prescription.Instructions = *request.Instructions
	}
	if err := uc.PrescriptionRepository.Update(ctx, prescription); err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "prescription_updated", requestID,
		zap.String(constvars.LoggingPrescriptionIDKey, prescription.ID),
	)
	return uc.find(ctx, prescription.ID)
}

func (uc *prescriptionUsecase) find(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourcePrescription, prescriptionID)
	}
	return prescription, nil
}

func (uc *prescriptionUsecase) isParty(ctx context.Context, session *models.Session, prescription *models.Prescription) (bool, error) {
	switch session.Role {
	case constvars.RolePatient:
		patient, err := uc.sessionPatient(ctx, session)
		if err != nil {
			return false, err
		}
		return patient.ID == prescription.PatientID, nil
	case constvars.RoleDoctor:
		doctor, err := uc.sessionDoctor(ctx, session)
		if err != nil {
			return false, err
		}
		return doctor.ID == prescription.DoctorID, nil
	}
	return false, nil
}

func (uc *prescriptionUsecase) sessionPatient(ctx context.Context, session *models.Session) (*models.Patient, error) {
	patient, err := uc.PatientRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, session.Role)
	}
	return patient, nil
}

func (uc *prescriptionUsecase) sessionDoctor(ctx context.Context, session *models.Session) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, session.Role)
	}
	return doctor, nil
}
