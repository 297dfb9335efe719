package users

import (
	"context"
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

type userUsecase struct {
	UserRepository     contracts.UserRepository
	PatientRepository  contracts.PatientRepository
	DoctorRepository   contracts.DoctorRepository
	HospitalRepository contracts.HospitalRepository
	Policy             contracts.AuthorizationPolicy
	Log                *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	hospitalRepository contracts.HospitalRepository,
	authorizationPolicy contracts.AuthorizationPolicy,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository:     userRepository,
		PatientRepository:  patientRepository,
		DoctorRepository:   doctorRepository,
		HospitalRepository: hospitalRepository,
		Policy:             authorizationPolicy,
		Log:                logger,
	}
}

func (uc *userUsecase) UpdatePatientProfile(ctx context.Context, session *models.Session, request *requests.UpdatePatientProfile) (*models.Patient, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.UpdatePatientProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourcePatient, constvars.ActionUpdate, policy.Ownership(true)); err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, constvars.RolePatient)
	}

	if request.DateOfBirth != nil {
		dob, err := utils.ParseCalendarDate(*request.DateOfBirth)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		patient.DateOfBirth = &dob
	}
	if request.Gender != nil {
		patient.Gender = *request.Gender
	}
	if request.Phone != nil {
		patient.Phone = *request.Phone
	}
	if request.Address != nil {
		patient.Address = *request.Address
	}
	if request.MedicalHistory != nil {
		patient.MedicalHistory = *request.MedicalHistory
	}

	if err := uc.PatientRepository.Update(ctx, patient); err != nil {
		return nil, err
	}
	if request.FullName != nil {
		if err := uc.UserRepository.UpdateFullName(ctx, session.UserID, *request.FullName); err != nil {
			return nil, err
		}
		patient.FullName = *request.FullName
	}

	uc.Log.Info("userUsecase.UpdatePatientProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (uc *userUsecase) UpdateDoctorProfile(ctx context.Context, session *models.Session, request *requests.UpdateDoctorProfile) (*models.Doctor, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.UpdateDoctorProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourceDoctor, constvars.ActionUpdate, policy.Ownership(true)); err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.FindByUserID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrRoleProfileNotFound(nil, constvars.RoleDoctor)
	}

	if request.Specialization != nil {
		doctor.Specialization = *request.Specialization
	}
	if request.Phone != nil {
		doctor.Phone = *request.Phone
	}
	if request.Address != nil {
		doctor.Address = *request.Address
	}
	if request.HospitalID != nil {
		doctor.HospitalID = request.HospitalID
	}

	if err := uc.DoctorRepository.Update(ctx, doctor); err != nil {
		return nil, err
	}
	if request.FullName != nil {
		if err := uc.UserRepository.UpdateFullName(ctx, session.UserID, *request.FullName); err != nil {
			return nil, err
		}
		doctor.FullName = *request.FullName
	}

	uc.Log.Info("userUsecase.UpdateDoctorProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return doctor, nil
}

// ListDoctors is the public directory, so only approved doctors are listed.
func (uc *userUsecase) ListDoctors(ctx context.Context, query requests.DoctorQuery) (*responses.Page[models.Doctor], error) {
	doctors, total, err := uc.DoctorRepository.List(ctx, models.DoctorFilter{
		Status:         constvars.DoctorStatusApproved,
		Specialization: query.Specialization,
		Limit:          query.PageSize,
		Offset:         query.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return &responses.Page[models.Doctor]{Items: doctors, Total: total}, nil
}

func (uc *userUsecase) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.Status != constvars.DoctorStatusApproved {
		return nil, exceptions.ErrResourceNotFound(nil, constvars.ResourceDoctor, doctorID)
	}
	return doctor, nil
}

func (uc *userUsecase) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	return uc.HospitalRepository.List(ctx)
}

func (uc *userUsecase) CreateHospital(ctx context.Context, session *models.Session, request *requests.CreateHospital) (*models.Hospital, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.CreateHospital called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	if err := uc.Policy.Authorize(session.Role, constvars.ResourceHospital, constvars.ActionCreate, constvars.OwnershipOther); err != nil {
		return nil, err
	}

	hospital := &models.Hospital{
		Name:    request.Name,
		Address: request.Address,
		Phone:   request.Phone,
	}
	if err := uc.HospitalRepository.Create(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}
