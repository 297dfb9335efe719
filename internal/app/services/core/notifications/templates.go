package notifications

import (
	"fmt"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
)

const unspecifiedTime = "a time to be confirmed"

// renderAppointmentEmails produces the patient and doctor copies of an
// appointment notification.
func renderAppointmentEmails(n *models.AppointmentNotification) ([]models.EmailMessage, error) {
	a := n.Appointment
	date := a.Date.UTC().Format(constvars.TimeFormatYYYYMMDD)
	clock := a.Time
	if clock == "" {
		clock = unspecifiedTime
	}

	var subject, body string
	switch n.Type {
	case constvars.NotificationTypeBooking:
		subject = constvars.EmailSubjectBooking
		body = fmt.Sprintf(constvars.EmailBodyBooking, n.PatientName, n.DoctorName, date, clock, a.Type)
	case constvars.NotificationTypeReminder:
		subject = constvars.EmailSubjectReminder
		body = fmt.Sprintf(constvars.EmailBodyReminder, n.PatientName, n.DoctorName, date, clock)
	case constvars.NotificationTypeReschedule:
		subject = constvars.EmailSubjectReschedule
		body = fmt.Sprintf(constvars.EmailBodyReschedule, n.PatientName, n.DoctorName, date, clock, a.Status)
	case constvars.NotificationTypeVideoMeeting:
		if a.MeetingURL == nil {
			return nil, fmt.Errorf("appointment %s has no meeting url", a.ID)
		}
		subject = constvars.EmailSubjectVideoMeeting
		body = fmt.Sprintf(constvars.EmailBodyVideoMeeting, n.PatientName, n.DoctorName, date, clock, *a.MeetingURL)
	case constvars.NotificationTypeStatusUpdate:
		subject = fmt.Sprintf(constvars.EmailSubjectStatusUpdate, a.Status)
		body = fmt.Sprintf(constvars.EmailBodyStatusUpdate, n.PatientName, n.DoctorName, date, clock, a.Status)
	default:
		return nil, fmt.Errorf("unsupported notification type %q", n.Type)
	}

	return []models.EmailMessage{
		compose(n.PatientEmail, n.PatientName, subject, body),
		compose(n.DoctorEmail, n.DoctorName, subject, body),
	}, nil
}

func renderVerificationEmail(n *models.VerificationNotification) models.EmailMessage {
	return compose(n.Email, n.FullName, constvars.EmailSubjectEmailVerification, fmt.Sprintf(constvars.EmailBodyEmailVerification, n.Link))
}

func compose(to, toName, subject, body string) models.EmailMessage {
	return models.EmailMessage{
		To:      to,
		ToName:  toName,
		Subject: subject,
		Body:    fmt.Sprintf(constvars.EmailGreetingFormat, toName) + body + constvars.EmailSignature,
	}
}
