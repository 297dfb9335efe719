package models

import "time"

type Appointment struct {
	ID             string     `json:"id"`
	PatientID      string     `json:"patientId"`
	DoctorID       string     `json:"doctorId"`
	Date           time.Time  `json:"date"`
	Time           string     `json:"time"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	MeetingID      *string    `json:"meetingId,omitempty"`
	MeetingURL     *string    `json:"meetingUrl,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	ReminderSentAt *time.Time `json:"-"`
	TimeModel
}

// AppointmentParticipants carries the user side of both parties so callers
// can evaluate ownership and address notifications without extra lookups.
type AppointmentParticipants struct {
	PatientUserID string `json:"patientUserId"`
	PatientName   string `json:"patientName"`
	PatientEmail  string `json:"patientEmail"`
	DoctorUserID  string `json:"doctorUserId"`
	DoctorName    string `json:"doctorName"`
	DoctorEmail   string `json:"doctorEmail"`
}

type AppointmentDetail struct {
	Appointment
	AppointmentParticipants
}

type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    string
	Limit     int
	Offset    int
}
