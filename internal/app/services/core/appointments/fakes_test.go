package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"telehealth-service/internal/app/models"
	"time"
)

type memoryAppointmentRepository struct {
	mu           sync.Mutex
	items        map[string]*models.AppointmentDetail
	seq          int
	participants models.AppointmentParticipants
	beforeUpdate func(stored *models.AppointmentDetail)
	reminderErr  error
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{items: map[string]*models.AppointmentDetail{}}
}

func (m *memoryAppointmentRepository) put(detail models.AppointmentDetail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[detail.ID] = &detail
}

func (m *memoryAppointmentRepository) get(id string) models.AppointmentDetail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.items[id]
}

func (m *memoryAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	appointment.ID = fmt.Sprintf("appt-%d", m.seq)
	m.items[appointment.ID] = &models.AppointmentDetail{Appointment: *appointment, AppointmentParticipants: m.participants}
	return nil
}

func (m *memoryAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.items[appointmentID]; ok {
		copied := d.Appointment
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryAppointmentRepository) FindDetailByID(ctx context.Context, appointmentID string) (*models.AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.items[appointmentID]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryAppointmentRepository) UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[appointment.ID]
	if !ok {
		return false, nil
	}
	if m.beforeUpdate != nil {
		m.beforeUpdate(stored)
	}
	if stored.Status != expectedStatus {
		return false, nil
	}
	stored.Appointment = *appointment
	return true, nil
}

func (m *memoryAppointmentRepository) SetMeetingIfAbsent(ctx context.Context, appointmentID, meetingID, meetingURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.items[appointmentID]
	if stored.MeetingID != nil {
		return false, nil
	}
	stored.MeetingID = &meetingID
	stored.MeetingURL = &meetingURL
	return true, nil
}

func (m *memoryAppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.AppointmentDetail, 0)
	for _, d := range m.items {
		if filter.PatientID != "" && d.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && d.DoctorID != filter.DoctorID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		items = append(items, *d)
	}
	return items, len(items), nil
}

func (m *memoryAppointmentRepository) FindDueForReminder(ctx context.Context, from, to time.Time, limit int) ([]models.AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.AppointmentDetail, 0)
	for _, d := range m.items {
		if d.Status != "APPROVED" || d.ReminderSentAt != nil {
			continue
		}
		if d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		items = append(items, *d)
	}
	return items, nil
}

func (m *memoryAppointmentRepository) MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) (bool, error) {
	if m.reminderErr != nil {
		return false, m.reminderErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.items[appointmentID]
	if stored.ReminderSentAt != nil {
		return false, nil
	}
	stored.ReminderSentAt = &sentAt
	return true, nil
}

func (m *memoryAppointmentRepository) ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error) {
	return false, nil
}

func (m *memoryAppointmentRepository) LatestCompletedEndTime(ctx context.Context, patientID, doctorID string) (*time.Time, error) {
	return nil, nil
}

type fakePatientRepository struct {
	patients []models.Patient
}

func (f *fakePatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return nil
}

func (f *fakePatientRepository) FindByUserID(ctx context.Context, userID string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.UserID == userID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.ID == patientID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return nil
}

type fakeDoctorRepository struct {
	doctors []models.Doctor
}

func (f *fakeDoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return nil
}

func (f *fakeDoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	for _, d := range f.doctors {
		if d.ID == doctorID {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return nil
}

func (f *fakeDoctorRepository) UpdateStatus(ctx context.Context, doctorID, status string) error {
	return nil
}

func (f *fakeDoctorRepository) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, int, error) {
	return nil, 0, nil
}

type fakeConversationEnsurer struct {
	calls []string
	err   error
}

func (f *fakeConversationEnsurer) Ensure(ctx context.Context, patientID, doctorID, appointmentID string) (*models.Conversation, error) {
	f.calls = append(f.calls, appointmentID)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Conversation{PatientID: patientID, DoctorID: doctorID}, nil
}

type recordingDispatcher struct {
	mu   sync.Mutex
	sent []models.AppointmentNotification
}

func (r *recordingDispatcher) Submit(ctx context.Context, notification *models.AppointmentNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, *notification)
}

func (r *recordingDispatcher) SubmitVerification(ctx context.Context, notification *models.VerificationNotification) {
}

func (r *recordingDispatcher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Type)
	}
	return out
}

type inboxEntry struct {
	UserID string
	Title  string
}

type recordingInbox struct {
	entries []inboxEntry
}

func (r *recordingInbox) Notify(ctx context.Context, userID, title, message, notificationType string) {
	r.entries = append(r.entries, inboxEntry{UserID: userID, Title: title})
}

type fakeLocker struct {
	held     bool
	err      error
	unlocked int
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.err != nil {
		return false, "", f.err
	}
	if f.held {
		return false, "", nil
	}
	return true, "token", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	f.unlocked++
	return nil
}

func (f *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

var errRedisDown = errors.New("redis: connection refused")
