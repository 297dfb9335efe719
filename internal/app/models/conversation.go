package models

import "time"

type Conversation struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	DoctorID      string    `json:"doctorId"`
	AppointmentID string    `json:"appointmentId"`
	PatientUserID string    `json:"patientUserId,omitempty"`
	DoctorUserID  string    `json:"doctorUserId,omitempty"`
	PatientName   string    `json:"patientName,omitempty"`
	DoctorName    string    `json:"doctorName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
