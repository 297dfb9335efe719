package auth

import (
	"context"
	"errors"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryStore struct {
	users    map[string]*models.User
	patients map[string]*models.Patient
	doctors  map[string]*models.Doctor
	admins   map[string]*models.Admin
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[string]*models.User{},
		patients: map[string]*models.Patient{},
		doctors:  map[string]*models.Doctor{},
		admins:   map[string]*models.Admin{},
	}
}

type fakeUserRepository struct{ s *memoryStore }

func (f fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	stored := *user
	f.s.users[user.ID] = &stored
	return nil
}
func (f fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}
func (f fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	if u, ok := f.s.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}
func (f fakeUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	f.s.users[userID].EmailVerified = true
	return nil
}
func (f fakeUserRepository) UpdateFullName(ctx context.Context, userID, fullName string) error {
	return nil
}

type fakePatientRepository struct{ s *memoryStore }

func (f fakePatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	patient.ID = uuid.NewString()
	f.s.patients[patient.UserID] = patient
	return nil
}
func (f fakePatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	return f.s.patients[userID], nil
}
func (f fakePatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return nil, nil
}
func (f fakePatientRepository) Update(ctx context.Context, patient *models.Patient) error { return nil }

type fakeDoctorRepository struct{ s *memoryStore }

func (f fakeDoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	doctor.ID = uuid.NewString()
	f.s.doctors[doctor.UserID] = doctor
	return nil
}
func (f fakeDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	return f.s.doctors[userID], nil
}
func (f fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return nil, nil
}
func (f fakeDoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error { return nil }
func (f fakeDoctorRepository) UpdateStatus(ctx context.Context, doctorID, status string) error {
	return nil
}
func (f fakeDoctorRepository) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	return nil, 0, nil
}

type fakeAdminRepository struct{ s *memoryStore }

func (f fakeAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = uuid.NewString()
	f.s.admins[admin.UserID] = admin
	return nil
}
func (f fakeAdminRepository) FindByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	return f.s.admins[userID], nil
}

type fakeSessionService struct {
	revoked []string
}

func (f *fakeSessionService) IssueSessionToken(userID, role string) (string, time.Time, error) {
	return "session-" + userID, time.Now().Add(time.Hour), nil
}
func (f *fakeSessionService) ParseSessionToken(ctx context.Context, token string) (*models.Session, error) {
	return nil, nil
}
func (f *fakeSessionService) Revoke(ctx context.Context, session *models.Session) error {
	f.revoked = append(f.revoked, session.TokenID)
	return nil
}
func (f *fakeSessionService) IssueVerificationToken(userID string) (string, error) {
	return "verify-" + userID, nil
}
func (f *fakeSessionService) ParseVerificationToken(token string) (string, error) {
	if len(token) > len("verify-") && token[:len("verify-")] == "verify-" {
		return token[len("verify-"):], nil
	}
	return "", exceptions.ErrTokenInvalidOrExpired(errors.New("bad token"))
}

type fakeDispatcher struct {
	verifications []*models.VerificationNotification
}

func (f *fakeDispatcher) Submit(ctx context.Context, notification *models.AppointmentNotification) {}
func (f *fakeDispatcher) SubmitVerification(ctx context.Context, notification *models.VerificationNotification) {
	f.verifications = append(f.verifications, notification)
}

type testHarness struct {
	usecase    *authUsecase
	store      *memoryStore
	sessions   *fakeSessionService
	dispatcher *fakeDispatcher
}

func newHarness() *testHarness {
	store := newMemoryStore()
	sessions := &fakeSessionService{}
	dispatcher := &fakeDispatcher{}
	cfg := &config.InternalConfig{App: config.App{BaseUrl: "https://api.example.com/", EndpointPrefix: "api", Version: "v1"}}
	uc := NewAuthUsecase(
		fakeUserRepository{store},
		fakePatientRepository{store},
		fakeDoctorRepository{store},
		fakeAdminRepository{store},
		sessions,
		dispatcher,
		cfg,
		zap.NewNop(),
	).(*authUsecase)
	return &testHarness{usecase: uc, store: store, sessions: sessions, dispatcher: dispatcher}
}

func patientRequest() *requests.RegisterUser {
	return &requests.RegisterUser{
		Role:        "PATIENT",
		Email:       "Ama@Example.com",
		Password:    "Str0ng!Pass",
		FullName:    "Ama Mensah",
		DateOfBirth: "1990-04-12",
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("Creates Patient And Sends Verification", func(t *testing.T) {
		h := newHarness()
		res, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)
		assert.Equal(t, "ama@example.com", res.User.Email)
		assert.False(t, res.Repaired)

		patient, ok := res.Profile.(*models.Patient)
		require.True(t, ok)
		require.NotNil(t, patient.DateOfBirth)

		require.Len(t, h.dispatcher.verifications, 1)
		assert.Equal(t, "https://api.example.com/api/v1/auth/verify-email?token=verify-"+res.User.ID, h.dispatcher.verifications[0].Link)
	})

	t.Run("Doctor Starts Pending", func(t *testing.T) {
		h := newHarness()
		req := patientRequest()
		req.Role = "DOCTOR"
		req.Specialization = "Cardiology"

		res, err := h.usecase.Register(context.Background(), req)
		require.NoError(t, err)
		doctor := res.Profile.(*models.Doctor)
		assert.Equal(t, "PENDING", doctor.Status)
	})

	t.Run("Admin Role Rejected", func(t *testing.T) {
		h := newHarness()
		req := patientRequest()
		req.Role = "ADMIN"

		_, err := h.usecase.Register(context.Background(), req)
		assert.Equal(t, 400, exceptions.StatusCodeOf(err))
	})

	t.Run("Existing Account With Profile Conflicts", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)

		_, err = h.usecase.Register(context.Background(), patientRequest())
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
	})

	t.Run("Existing Account Under Other Role Conflicts", func(t *testing.T) {
		h := newHarness()
		_, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)

		req := patientRequest()
		req.Role = "DOCTOR"
		req.Specialization = "GP"
		_, err = h.usecase.Register(context.Background(), req)
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
	})

	t.Run("Missing Profile Is Repaired", func(t *testing.T) {
		h := newHarness()
		first, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)
		delete(h.store.patients, first.User.ID)

		res, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)
		assert.True(t, res.Repaired)
		assert.Equal(t, first.User.ID, res.User.ID)
		assert.NotNil(t, h.store.patients[first.User.ID])
		assert.Len(t, h.store.users, 1)
	})

	t.Run("Repair With Wrong Password Is Conflict", func(t *testing.T) {
		h := newHarness()
		first, err := h.usecase.Register(context.Background(), patientRequest())
		require.NoError(t, err)
		delete(h.store.patients, first.User.ID)

		req := patientRequest()
		req.Password = "0ther!Pass"
		req.Address = "12 Ring Road"
		_, err = h.usecase.Register(context.Background(), req)
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
		assert.Nil(t, h.store.patients[first.User.ID])
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	h := newHarness()
	registered, err := h.usecase.Register(context.Background(), patientRequest())
	require.NoError(t, err)
	userID := registered.User.ID

	login := &requests.LoginUser{Email: "ama@example.com", Password: "Str0ng!Pass"}

	t.Run("Unverified Email Forbidden", func(t *testing.T) {
		_, err := h.usecase.Login(context.Background(), login)
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
	})

	require.NoError(t, h.usecase.VerifyEmail(context.Background(), "verify-"+userID))

	t.Run("Wrong Password Unauthorized", func(t *testing.T) {
		_, err := h.usecase.Login(context.Background(), &requests.LoginUser{Email: "ama@example.com", Password: "nope"})
		assert.Equal(t, 401, exceptions.StatusCodeOf(err))
	})

	t.Run("Unknown Email Unauthorized", func(t *testing.T) {
		_, err := h.usecase.Login(context.Background(), &requests.LoginUser{Email: "who@example.com", Password: "Str0ng!Pass"})
		assert.Equal(t, 401, exceptions.StatusCodeOf(err))
	})

	t.Run("Success Redirects Patient", func(t *testing.T) {
		res, err := h.usecase.Login(context.Background(), login)
		require.NoError(t, err)
		assert.Equal(t, "/patient/dashboard", res.RedirectURL)
		assert.Equal(t, "session-"+userID, res.Token)
	})

	t.Run("Missing Profile Not Found", func(t *testing.T) {
		delete(h.store.patients, userID)
		_, err := h.usecase.Login(context.Background(), login)
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})
}

func TestAuthUsecase_VerifyEmailInvalidToken(t *testing.T) {
	h := newHarness()
	err := h.usecase.VerifyEmail(context.Background(), "garbage")
	assert.Equal(t, 401, exceptions.StatusCodeOf(err))
}

func TestAuthUsecase_CreateAdmin(t *testing.T) {
	h := newHarness()
	user, err := h.usecase.CreateAdmin(context.Background(), "Root@Example.com", "Adm1n!Pass", "Root")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	assert.Equal(t, "ADMIN", user.Role)
	assert.True(t, utils.CheckPasswordHash("Adm1n!Pass", h.store.users[user.ID].PasswordHash))
	assert.NotNil(t, h.store.admins[user.ID])

	me, err := h.usecase.Me(context.Background(), &models.Session{UserID: user.ID, Role: "ADMIN"})
	require.NoError(t, err)
	assert.NotNil(t, me.Admin)

	_, err = h.usecase.CreateAdmin(context.Background(), "root@example.com", "Adm1n!Pass", "Root")
	assert.Equal(t, 409, exceptions.StatusCodeOf(err))
}

func TestAuthUsecase_Logout(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.usecase.Logout(context.Background(), &models.Session{TokenID: "jti-1", UserID: "u"}))
	assert.Equal(t, []string{"jti-1"}, h.sessions.revoked)
}

func TestAuthUsecase_Me(t *testing.T) {
	h := newHarness()
	res, err := h.usecase.Register(context.Background(), patientRequest())
	require.NoError(t, err)

	me, err := h.usecase.Me(context.Background(), &models.Session{UserID: res.User.ID, Role: "PATIENT"})
	require.NoError(t, err)
	require.NotNil(t, me.Patient)
	assert.Nil(t, me.Doctor)

	_, err = h.usecase.Me(context.Background(), &models.Session{UserID: "missing", Role: "PATIENT"})
	assert.Equal(t, 404, exceptions.StatusCodeOf(err))
}
