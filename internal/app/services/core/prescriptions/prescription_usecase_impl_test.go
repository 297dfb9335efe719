package prescriptions

import (
	"context"
	"fmt"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/app/services/shared/policy"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryPrescriptionRepository struct {
	prescriptions map[string]*models.Prescription
	seq           int
}

func (m *memoryPrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	m.seq++
	prescription.ID = fmt.Sprintf("rx-%d", m.seq)
	copied := *prescription
	m.prescriptions[prescription.ID] = &copied
	return nil
}

func (m *memoryPrescriptionRepository) FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	if p, ok := m.prescriptions[prescriptionID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryPrescriptionRepository) List(ctx context.Context, filter models.PrescriptionFilter) ([]models.Prescription, int, error) {
	out := make([]models.Prescription, 0)
	for _, p := range m.prescriptions {
		if (filter.PatientID == "" || p.PatientID == filter.PatientID) && (filter.DoctorID == "" || p.DoctorID == filter.DoctorID) {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (m *memoryPrescriptionRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	copied := *prescription
	m.prescriptions[prescription.ID] = &copied
	return nil
}

type stubPatientRepository struct {
	contracts.PatientRepository
}

var patients = map[string]*models.Patient{
	"pat-1": {ID: "pat-1", UserID: "pu-1", FullName: "Ama Mensah"},
	"pat-2": {ID: "pat-2", UserID: "pu-2", FullName: "Kofi Boateng"},
}

func (s *stubPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return patients[patientID], nil
}

func (s *stubPatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	for _, p := range patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

type stubDoctorRepository struct {
	contracts.DoctorRepository
}

var doctors = map[string]*models.Doctor{
	"doc-a": {ID: "doc-a", UserID: "du-1", FullName: "Kwame Asante"},
	"doc-b": {ID: "doc-b", UserID: "du-2", FullName: "Efua Owusu"},
}

func (s *stubDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	for _, d := range doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

// stubAppointmentRepository relates pat-1 with doc-a and pat-2 with doc-b.
type stubAppointmentRepository struct {
	contracts.AppointmentRepository
}

func (s *stubAppointmentRepository) ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error) {
	return (patientID == "pat-1" && doctorID == "doc-a") || (patientID == "pat-2" && doctorID == "doc-b"), nil
}

type recordingInbox struct {
	userIDs  []string
	messages []string
}

func (r *recordingInbox) Notify(ctx context.Context, userID, title, message, notificationType string) {
	r.userIDs = append(r.userIDs, userID)
	r.messages = append(r.messages, message)
}

var (
	doctorA      = &models.Session{UserID: "du-1", Role: "DOCTOR"}
	doctorB      = &models.Session{UserID: "du-2", Role: "DOCTOR"}
	patientOne   = &models.Session{UserID: "pu-1", Role: "PATIENT"}
	patientTwo   = &models.Session{UserID: "pu-2", Role: "PATIENT"}
	adminSession = &models.Session{UserID: "au-1", Role: "ADMIN"}
)

func newPrescriptionUsecase(t *testing.T) (*prescriptionUsecase, *memoryPrescriptionRepository, *recordingInbox) {
	t.Helper()
	p, err := policy.NewCasbinPolicy(zap.NewNop())
	require.NoError(t, err)
	repo := &memoryPrescriptionRepository{prescriptions: map[string]*models.Prescription{}}
	inbox := &recordingInbox{}
	uc := NewPrescriptionUsecase(repo, &stubPatientRepository{}, &stubDoctorRepository{}, &stubAppointmentRepository{}, inbox, p, zap.NewNop())
	return uc.(*prescriptionUsecase), repo, inbox
}

func amoxicillin(patientID string) *requests.CreatePrescription {
	return &requests.CreatePrescription{
		PatientID:    patientID,
		Medication:   "Amoxicillin",
		Dosage:       "500mg three times daily",
		Instructions: "Take after meals",
	}
}

func strPtr(s string) *string { return &s }

func TestPrescriptionUsecase_Create(t *testing.T) {
	t.Run("Doctor Prescribes To Own Patient", func(t *testing.T) {
		uc, repo, inbox := newPrescriptionUsecase(t)
		prescription, err := uc.Create(context.Background(), doctorA, amoxicillin("pat-1"))
		require.NoError(t, err)
		assert.Equal(t, "doc-a", prescription.DoctorID)
		assert.Equal(t, "pat-1", prescription.PatientID)
		assert.Len(t, repo.prescriptions, 1)
		assert.Equal(t, []string{"pu-1"}, inbox.userIDs)
		assert.Equal(t, "Dr. Kwame Asante prescribed Amoxicillin", inbox.messages[0])
	})

	t.Run("No Shared Appointment", func(t *testing.T) {
		uc, repo, inbox := newPrescriptionUsecase(t)
		_, err := uc.Create(context.Background(), doctorA, amoxicillin("pat-2"))
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
		assert.Empty(t, repo.prescriptions)
		assert.Empty(t, inbox.userIDs)
	})

	t.Run("Unknown Patient", func(t *testing.T) {
		uc, _, _ := newPrescriptionUsecase(t)
		_, err := uc.Create(context.Background(), doctorA, amoxicillin("pat-9"))
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})

	t.Run("Patient Cannot Prescribe", func(t *testing.T) {
		uc, _, _ := newPrescriptionUsecase(t)
		_, err := uc.Create(context.Background(), patientOne, amoxicillin("pat-1"))
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
	})
}

func TestPrescriptionUsecase_Access(t *testing.T) {
	uc, _, _ := newPrescriptionUsecase(t)
	first, err := uc.Create(context.Background(), doctorA, amoxicillin("pat-1"))
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), doctorB, amoxicillin("pat-2"))
	require.NoError(t, err)

	t.Run("Listing Is Scoped", func(t *testing.T) {
		page, err := uc.List(context.Background(), patientOne, requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		assert.Equal(t, first.ID, page.Items[0].ID)

		page, err = uc.List(context.Background(), doctorB, requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)

		page, err = uc.List(context.Background(), adminSession, requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("Get", func(t *testing.T) {
		_, err := uc.Get(context.Background(), patientOne, first.ID)
		require.NoError(t, err)
		_, err = uc.Get(context.Background(), adminSession, first.ID)
		require.NoError(t, err)

		_, err = uc.Get(context.Background(), patientTwo, first.ID)
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
		_, err = uc.Get(context.Background(), doctorB, first.ID)
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
		_, err = uc.Get(context.Background(), patientOne, "rx-404")
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})

	t.Run("Only Author Updates", func(t *testing.T) {
		_, err := uc.Update(context.Background(), doctorB, first.ID, &requests.UpdatePrescription{Dosage: strPtr("250mg")})
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
		_, err = uc.Update(context.Background(), patientOne, first.ID, &requests.UpdatePrescription{Dosage: strPtr("250mg")})
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))

		updated, err := uc.Update(context.Background(), doctorA, first.ID, &requests.UpdatePrescription{Dosage: strPtr("250mg")})
		require.NoError(t, err)
		assert.Equal(t, "250mg", updated.Dosage)
		assert.Equal(t, "Amoxicillin", updated.Medication)
		assert.Equal(t, "pat-1", updated.PatientID)
	})
}
