package contracts

import (
	"context"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, session *models.Session) error
	Me(ctx context.Context, session *models.Session) (*responses.Me, error)
	CreateAdmin(ctx context.Context, email, password, fullName string) (*models.User, error)
}

type UserUsecase interface {
	UpdatePatientProfile(ctx context.Context, session *models.Session, request *requests.UpdatePatientProfile) (*models.Patient, error)
	UpdateDoctorProfile(ctx context.Context, session *models.Session, request *requests.UpdateDoctorProfile) (*models.Doctor, error)
	ListDoctors(ctx context.Context, query requests.DoctorQuery) (*responses.Page[models.Doctor], error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	CreateHospital(ctx context.Context, session *models.Session, request *requests.CreateHospital) (*models.Hospital, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, userID string) error
	UpdateFullName(ctx context.Context, userID, fullName string) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByUserID(ctx context.Context, userID string) (*models.Patient, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByUserID(ctx context.Context, userID string) (*models.Doctor, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	UpdateStatus(ctx context.Context, doctorID, status string) error
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByUserID(ctx context.Context, userID string) (*models.Admin, error)
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *models.Hospital) error
	List(ctx context.Context) ([]models.Hospital, error)
}
