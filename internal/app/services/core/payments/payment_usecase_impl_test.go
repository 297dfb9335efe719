package payments

import (
	"context"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const webhookSecret = "sk_test_secret"

type memoryPaymentRepository struct {
	payments      map[string]*models.Payment
	statusUpdates int
	gatewayRefs   map[string]string
}

func newMemoryPaymentRepository() *memoryPaymentRepository {
	return &memoryPaymentRepository{payments: map[string]*models.Payment{}, gatewayRefs: map[string]string{}}
}

func (m *memoryPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	copied := *payment
	m.payments[payment.Reference] = &copied
	return nil
}

func (m *memoryPaymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	if p, ok := m.payments[reference]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryPaymentRepository) SetGatewayReference(ctx context.Context, paymentID, gatewayReference string) error {
	m.gatewayRefs[paymentID] = gatewayReference
	return nil
}

func (m *memoryPaymentRepository) UpdateStatusIfPending(ctx context.Context, reference, status, gatewayReference string) (bool, error) {
	m.statusUpdates++
	p, ok := m.payments[reference]
	if !ok || p.Status != "PENDING" {
		return false, nil
	}
	p.Status = status
	if gatewayReference != "" {
		m.gatewayRefs[p.ID] = gatewayReference
	}
	return true, nil
}

func (m *memoryPaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error) {
	out := make([]models.Payment, 0)
	for _, p := range m.payments {
		if filter.UserID == "" || p.UserID == filter.UserID {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

type fakeGateway struct {
	initialized   []requests.GatewayInitialize
	initializeErr error
	verifyStatus  string
	verifyCalls   int
}

const gatewayTransactionID = "4099260516"


func (f *fakeGateway) InitializeTransaction(ctx context.Context, request *requests.GatewayInitialize) (*responses.GatewayInitialize, error) {
	f.initialized = append(f.initialized, *request)
	if f.initializeErr != nil {
		return nil, f.initializeErr
	}
	return &responses.GatewayInitialize{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		AccessCode:       "abc",
		Reference:        request.Reference,
	}, nil
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*responses.GatewayVerify, error) {
	f.verifyCalls++
	return &responses.GatewayVerify{Status: f.verifyStatus, Reference: reference, GatewayID: gatewayTransactionID}, nil
}

// stubAppointmentRepository panics on any method but FindByID, so a payment
// flow that tried to modify an appointment would fail the test.
type stubAppointmentRepository struct {
	contracts.AppointmentRepository
	appointments map[string]*models.Appointment
}

func (s *stubAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return s.appointments[appointmentID], nil
}

type stubPatientRepository struct {
	contracts.PatientRepository
}

func (s *stubPatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	if userID == "pu-1" {
		return &models.Patient{ID: "pat-1", UserID: "pu-1"}, nil
	}
	return nil, nil
}

type stubUserRepository struct {
	contracts.UserRepository
}

func (s *stubUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	switch userID {
	case "pu-1", "pu-2":
		return &models.User{ID: userID, Email: userID + "@example.com"}, nil
	}
	return nil, nil
}

type recordingInbox struct {
	userIDs []string
}

func (r *recordingInbox) Notify(ctx context.Context, userID, title, message, notificationType string) {
	r.userIDs = append(r.userIDs, userID)
}

type fakeLocker struct {
	held bool
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return !f.held, "token", nil
}
func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error { return nil }
func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

type paymentFixture struct {
	uc           *paymentUsecase
	repo         *memoryPaymentRepository
	gateway      *fakeGateway
	inbox        *recordingInbox
	locker       *fakeLocker
	appointments *stubAppointmentRepository
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	p, err := policy.NewCasbinPolicy(zap.NewNop())
	require.NoError(t, err)

	f := &paymentFixture{
		repo:    newMemoryPaymentRepository(),
		gateway: &fakeGateway{},
		inbox:   &recordingInbox{},
		locker:  &fakeLocker{},
		appointments: &stubAppointmentRepository{appointments: map[string]*models.Appointment{
			"appt-1": {ID: "appt-1", PatientID: "pat-1", Status: "PENDING"},
			"appt-2": {ID: "appt-2", PatientID: "pat-2", Status: "PENDING"},
		}},
	}
	internalConfig := &config.InternalConfig{PaymentGateway: config.AppPaymentGateway{SecretKey: webhookSecret, CallbackUrl: "https://app.example.com/payments/callback"}}
	f.uc = NewPaymentUsecase(f.repo, f.appointments, &stubPatientRepository{}, &stubUserRepository{}, f.gateway, f.inbox, f.locker, p, internalConfig, zap.NewNop()).(*paymentUsecase)
	return f
}

func (f *paymentFixture) seed(reference, status string) {
	appointmentID := "appt-1"
	f.repo.payments[reference] = &models.Payment{
		ID:            reference,
		UserID:        "pu-1",
		AppointmentID: &appointmentID,
		Amount:        150,
		Currency:      "GHS",
		Status:        status,
		Reference:     reference,
	}
}

var payerSession = &models.Session{UserID: "pu-1", Role: "PATIENT"}

func strPtr(s string) *string { return &s }

func TestPaymentUsecase_Initialize(t *testing.T) {
	t.Run("Pending Payment With Reference Equal To ID", func(t *testing.T) {
		f := newPaymentFixture(t)
		result, err := f.uc.Initialize(context.Background(), payerSession, &requests.InitializePayment{
			Amount:        150.5,
			AppointmentID: strPtr("appt-1"),
		})
		require.NoError(t, err)
		assert.Equal(t, result.PaymentID, result.Reference)
		assert.Equal(t, "https://checkout.paystack.com/abc", result.AuthorizationURL)

		stored := f.repo.payments[result.Reference]
		assert.Equal(t, "PENDING", stored.Status)
		assert.Equal(t, "GHS", stored.Currency)
		require.Len(t, f.gateway.initialized, 1)
		assert.Equal(t, int64(15050), f.gateway.initialized[0].Amount)
		assert.Equal(t, "pu-1@example.com", f.gateway.initialized[0].Email)
		assert.Equal(t, "abc", f.repo.gatewayRefs[result.PaymentID])
	})

	t.Run("Paying For Another User Is Denied", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.Initialize(context.Background(), payerSession, &requests.InitializePayment{Amount: 10, UserID: "pu-2"})
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
		assert.Empty(t, f.repo.payments)
	})

	t.Run("Admin May Pay For Another User", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.Initialize(context.Background(), &models.Session{UserID: "au-1", Role: "ADMIN"}, &requests.InitializePayment{Amount: 10, UserID: "pu-2"})
		require.NoError(t, err)
	})

	t.Run("Foreign Appointment Is Denied", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.Initialize(context.Background(), payerSession, &requests.InitializePayment{Amount: 10, AppointmentID: strPtr("appt-2")})
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
	})

	t.Run("Unknown Appointment", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.Initialize(context.Background(), payerSession, &requests.InitializePayment{Amount: 10, AppointmentID: strPtr("appt-404")})
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})

	t.Run("Gateway Failure Keeps Pending Row", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.initializeErr = exceptions.ErrPaymentGatewayStatus(nil, "paystack", 502, "bad gateway")
		_, err := f.uc.Initialize(context.Background(), payerSession, &requests.InitializePayment{Amount: 10})
		assert.Equal(t, 500, exceptions.StatusCodeOf(err))
		require.Len(t, f.repo.payments, 1)
		for _, p := range f.repo.payments {
			assert.Equal(t, "PENDING", p.Status)
		}
	})
}

func TestPaymentUsecase_Verify(t *testing.T) {
	t.Run("Success Leaves Appointment Pending", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		f.gateway.verifyStatus = "success"

		result, err := f.uc.Verify(context.Background(), payerSession, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "SUCCESS", result.Status)
		assert.Equal(t, "PENDING", f.appointments.appointments["appt-1"].Status)
		assert.Equal(t, []string{"pu-1"}, f.inbox.userIDs)
		assert.Equal(t, gatewayTransactionID, f.repo.gatewayRefs["ref-1"])
	})

	gatewayStatuses := map[string]string{
		"failed":    "FAILED",
		"abandoned": "FAILED",
		"reversed":  "FAILED",
		"ongoing":   "PENDING",
	}
	for gatewayStatus, want := range gatewayStatuses {
		t.Run("Gateway "+gatewayStatus, func(t *testing.T) {
			f := newPaymentFixture(t)
			f.seed("ref-1", "PENDING")
			f.gateway.verifyStatus = gatewayStatus

			result, err := f.uc.Verify(context.Background(), payerSession, "ref-1")
			require.NoError(t, err)
			assert.Equal(t, want, result.Status)
			assert.Empty(t, f.inbox.userIDs)
			assert.NotContains(t, f.repo.gatewayRefs, "ref-1")
		})
	}

	t.Run("Settled Payment Skips Gateway", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "SUCCESS")
		result, err := f.uc.Verify(context.Background(), payerSession, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "SUCCESS", result.Status)
		assert.Zero(t, f.gateway.verifyCalls)
	})

	t.Run("Concurrent Verification Skips Gateway", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		f.locker.held = true
		result, err := f.uc.Verify(context.Background(), payerSession, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", result.Status)
		assert.Zero(t, f.gateway.verifyCalls)
	})

	t.Run("Unknown Reference", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.Verify(context.Background(), payerSession, "missing")
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})

	t.Run("Other Patient Denied", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		_, err := f.uc.Verify(context.Background(), &models.Session{UserID: "pu-2", Role: "PATIENT"}, "ref-1")
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
	})
}

func TestPaymentUsecase_HandleWebhook(t *testing.T) {
	successBody := []byte(`{"event":"charge.success","data":{"id":4099260516,"reference":"ref-1","status":"success"}}`)

	t.Run("Invalid Signature Touches Nothing", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")

		for _, signature := range []string{"", "deadbeef", utils.SignHMACSHA512("wrong-secret", successBody)} {
			_, err := f.uc.HandleWebhook(context.Background(), successBody, signature)
			assert.Equal(t, 400, exceptions.StatusCodeOf(err))
		}
		assert.Zero(t, f.repo.statusUpdates)
		assert.Equal(t, "PENDING", f.repo.payments["ref-1"].Status)
	})

	t.Run("Charge Success Applied Once", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		signature := utils.SignHMACSHA512(webhookSecret, successBody)

		first, err := f.uc.HandleWebhook(context.Background(), successBody, signature)
		require.NoError(t, err)
		assert.True(t, first.Applied)
		assert.Equal(t, "SUCCESS", f.repo.payments["ref-1"].Status)
		assert.Equal(t, gatewayTransactionID, f.repo.gatewayRefs["ref-1"])

		second, err := f.uc.HandleWebhook(context.Background(), successBody, signature)
		require.NoError(t, err)
		assert.False(t, second.Applied)
		assert.Len(t, f.inbox.userIDs, 1)
	})

	t.Run("Charge Failed", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		body := []byte(`{"event":"charge.failed","data":{"reference":"ref-1"}}`)

		result, err := f.uc.HandleWebhook(context.Background(), body, utils.SignHMACSHA512(webhookSecret, body))
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, "FAILED", f.repo.payments["ref-1"].Status)
	})

	t.Run("Other Events Ignored", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.seed("ref-1", "PENDING")
		body := []byte(`{"event":"transfer.success","data":{"reference":"ref-1"}}`)

		result, err := f.uc.HandleWebhook(context.Background(), body, utils.SignHMACSHA512(webhookSecret, body))
		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Zero(t, f.repo.statusUpdates)
	})

	t.Run("Unknown Reference Acknowledged", func(t *testing.T) {
		f := newPaymentFixture(t)
		body := []byte(`{"event":"charge.success","data":{"reference":"nope"}}`)

		result, err := f.uc.HandleWebhook(context.Background(), body, utils.SignHMACSHA512(webhookSecret, body))
		require.NoError(t, err)
		assert.Equal(t, "nope", result.Reference)
		assert.False(t, result.Applied)
	})
}

func TestPaymentUsecase_List(t *testing.T) {
	f := newPaymentFixture(t)
	f.seed("ref-1", "PENDING")
	f.repo.payments["ref-2"] = &models.Payment{ID: "ref-2", UserID: "pu-2", Reference: "ref-2", Status: "SUCCESS"}

	page, err := f.uc.List(context.Background(), payerSession, requests.PaymentQuery{Pagination: requests.Pagination{Page: 1, PageSize: 20}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = f.uc.List(context.Background(), &models.Session{UserID: "au-1", Role: "ADMIN"}, requests.PaymentQuery{Pagination: requests.Pagination{Page: 1, PageSize: 20}})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}
