package models

import "time"

// Notification is an inbox row shown to a user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentNotification is the input of the email dispatcher for
// appointment lifecycle events.
type AppointmentNotification struct {
	Appointment  Appointment
	PatientName  string
	PatientEmail string
	DoctorName   string
	DoctorEmail  string
	Type         string
}

type EmailMessage struct {
	To      string `json:"to"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailJob is the payload stored in the notification queue.
type EmailJob struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	RequestID   string       `json:"request_id,omitempty"`
	Message     EmailMessage `json:"message"`
	FailedCount int          `json:"failed_count"`
}

type QueuedEmailJob struct {
	DeliveryTag uint64
	Job         EmailJob
}

// VerificationNotification addresses the email verification message to a
// single registrant.
type VerificationNotification struct {
	UserID   string
	FullName string
	Email    string
	Link     string
}
