package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository         contracts.UserRepository
	PatientRepository      contracts.PatientRepository
	DoctorRepository       contracts.DoctorRepository
	AdminRepository        contracts.AdminRepository
	SessionService         contracts.SessionService
	NotificationDispatcher contracts.NotificationDispatcher
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	adminRepository contracts.AdminRepository,
	sessionService contracts.SessionService,
	notificationDispatcher contracts.NotificationDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:         userRepository,
		PatientRepository:      patientRepository,
		DoctorRepository:       doctorRepository,
		AdminRepository:        adminRepository,
		SessionService:         sessionService,
		NotificationDispatcher: notificationDispatcher,
		InternalConfig:         internalConfig,
		Log:                    logger,
	}
}

// Register creates the user and its role profile. An existing account with
// the same role but no profile only gets the profile created.
func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, request.Role),
	)

	if request.Role != constvars.RolePatient && request.Role != constvars.RoleDoctor {
		return nil, exceptions.ErrRoleNotAllowed(nil, request.Role)
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	existing, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.Role != request.Role {
			return nil, exceptions.ErrEmailAlreadyExist(nil)
		}
		// Only the account holder may attach the missing profile.
		if !utils.CheckPasswordHash(request.Password, existing.PasswordHash) {
			utils.LogSecurityEvent(uc.Log, "profile_repair_password_mismatch", requestID, utils.SeverityMedium,
				zap.String(constvars.LoggingUserIDKey, existing.ID),
			)
			return nil, exceptions.ErrEmailAlreadyExist(nil)
		}
		hasProfile, err := uc.hasRoleProfile(ctx, existing)
		if err != nil {
			return nil, err
		}
		if hasProfile {
			return nil, exceptions.ErrEmailAlreadyExist(nil)
		}

		profile, err := uc.createRoleProfile(ctx, existing.ID, request)
		if err != nil {
			return nil, err
		}
		uc.Log.Warn("authUsecase.Register repaired missing role profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, existing.ID),
			zap.String(constvars.LoggingRoleKey, existing.Role),
		)
		if !existing.EmailVerified {
			uc.sendVerification(ctx, existing)
		}
		return &responses.RegisterUser{User: existing, Profile: profile, Repaired: true}, nil
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:        email,
		FullName:     request.FullName,
		PasswordHash: passwordHash,
		Role:         request.Role,
	}
	if err := uc.UserRepository.Create(ctx, user); err != nil {
		if exceptions.HasStatusCode(err, constvars.StatusConflict) {
			return nil, exceptions.ErrEmailAlreadyExist(err)
		}
		return nil, err
	}

	profile, err := uc.createRoleProfile(ctx, user.ID, request)
	if err != nil {
		return nil, err
	}

	uc.sendVerification(ctx, user)

	utils.LogBusinessEvent(uc.Log, "user_registered", requestID,
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingRoleKey, user.Role),
	)
	return &responses.RegisterUser{User: user, Profile: profile}, nil
}

func (uc *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	userID, err := uc.SessionService.ParseVerificationToken(token)
	if err != nil {
		return err
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrTokenInvalidOrExpired(nil)
	}
	if user.EmailVerified {
		return nil
	}
	return uc.UserRepository.MarkEmailVerified(ctx, userID)
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		utils.LogSecurityEvent(uc.Log, "login_failed", requestID, utils.SeverityMedium)
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}
	if !user.EmailVerified {
		return nil, exceptions.ErrEmailNotVerified(nil)
	}

	hasProfile, err := uc.hasRoleProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	if !hasProfile {
		return nil, exceptions.ErrRoleProfileNotFound(nil, user.Role)
	}

	token, expiresAt, err := uc.SessionService.IssueSessionToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.LoginUser{
		Token:       token,
		ExpiresAt:   expiresAt,
		RedirectURL: redirectURLFor(user.Role),
		User:        user,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return uc.SessionService.Revoke(ctx, session)
}

func (uc *authUsecase) Me(ctx context.Context, session *models.Session) (*responses.Me, error) {
	user, err := uc.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotFound(nil, "user", session.UserID)
	}

	result := &responses.Me{User: user}
	switch user.Role {
	case constvars.RolePatient:
		result.Patient, err = uc.PatientRepository.FindByUserID(ctx, user.ID)
	case constvars.RoleDoctor:
		result.Doctor, err = uc.DoctorRepository.FindByUserID(ctx, user.ID)
	case constvars.RoleAdmin:
		result.Admin, err = uc.AdminRepository.FindByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateAdmin provisions a verified admin account. It is only reachable from
// the migration command.
func (uc *authUsecase) CreateAdmin(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Role:         constvars.RoleAdmin,
	}
	if err := uc.UserRepository.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.UserRepository.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.EmailVerified = true

	if err := uc.AdminRepository.Create(ctx, &models.Admin{UserID: user.ID}); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *authUsecase) hasRoleProfile(ctx context.Context, user *models.User) (bool, error) {
	switch user.Role {
	case constvars.RolePatient:
		patient, err := uc.PatientRepository.FindByUserID(ctx, user.ID)
		return patient != nil, err
	case constvars.RoleDoctor:
		doctor, err := uc.DoctorRepository.FindByUserID(ctx, user.ID)
		return doctor != nil, err
	case constvars.RoleAdmin:
		admin, err := uc.AdminRepository.FindByUserID(ctx, user.ID)
		return admin != nil, err
	}
	return false, nil
}

func (uc *authUsecase) createRoleProfile(ctx context.Context, userID string, request *requests.RegisterUser) (interface{}, error) {
	switch request.Role {
	case constvars.RolePatient:
		patient := &models.Patient{
			UserID:         userID,
			Gender:         request.Gender,
			Phone:          request.Phone,
			Address:        request.Address,
			MedicalHistory: request.MedicalHistory,
		}
		if request.DateOfBirth != "" {
			dob, err := utils.ParseCalendarDate(request.DateOfBirth)
			if err != nil {
				return nil, exceptions.ErrCannotParseDate(err)
			}
			patient.DateOfBirth = &dob
		}
		if err := uc.PatientRepository.Create(ctx, patient); err != nil {
			return nil, err
		}
		return patient, nil
	default:
		doctor := &models.Doctor{
			UserID:         userID,
			Specialization: request.Specialization,
			Phone:          request.Phone,
			Address:        request.Address,
			HospitalID:     request.HospitalID,
			Status:         constvars.DoctorStatusPending,
		}
		if err := uc.DoctorRepository.Create(ctx, doctor); err != nil {
			return nil, err
		}
		return doctor, nil
	}
}

func (uc *authUsecase) sendVerification(ctx context.Context, user *models.User) {
	token, err := uc.SessionService.IssueVerificationToken(user.ID)
	if err != nil {
		uc.Log.Error("authUsecase.sendVerification failed to issue token",
			zap.String(constvars.LoggingUserIDKey, user.ID),
			zap.Error(err),
		)
		return
	}

	app := uc.InternalConfig.App
	link := fmt.Sprintf(constvars.VerifyEmailLinkFormat,
		strings.TrimRight(app.BaseUrl, "/"),
		app.EndpointPrefix,
		app.Version,
		url.QueryEscape(token),
	)
	uc.NotificationDispatcher.SubmitVerification(ctx, &models.VerificationNotification{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Link:     link,
	})
}

func redirectURLFor(role string) string {
	switch role {
	case constvars.RoleDoctor:
		return constvars.RedirectURLDoctor
	case constvars.RoleAdmin:
		return constvars.RedirectURLAdmin
	default:
		return constvars.RedirectURLPatient
	}
}
