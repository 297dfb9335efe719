package constvars

const (
	EmailSubjectBooking           = "[TELEHEALTH] Appointment Request Received"
	EmailSubjectReminder          = "[TELEHEALTH] Upcoming Appointment Reminder"
	EmailSubjectReschedule        = "[TELEHEALTH] Appointment Rescheduled"
	EmailSubjectVideoMeeting      = "[TELEHEALTH] Your Video Consultation Link"
	EmailSubjectStatusUpdate      = "[TELEHEALTH] Appointment %s"
	EmailSubjectEmailVerification = "[TELEHEALTH] Verify Your Email"
)

const (
	EmailGreetingFormat = "Hello %s,\r\n\r\n"
	EmailSignature      = "\r\n\r\nTelehealth Care Team"

	// patient, doctor, date, time, type
	EmailBodyBooking = "An appointment between %s and Dr. %s has been requested for %s at %s (%s). The doctor will review the request shortly."
	// patient, doctor, date, time
	EmailBodyReminder = "This is a reminder that the appointment between %s and Dr. %s is scheduled for %s at %s."
	// patient, doctor, date, time, status
	EmailBodyReschedule = "The appointment between %s and Dr. %s has been moved to %s at %s. Current status: %s."
	// patient, doctor, date, time, url
	EmailBodyVideoMeeting = "The video consultation between %s and Dr. %s on %s at %s can be joined at: %s"
	// patient, doctor, date, time, status
	EmailBodyStatusUpdate = "The appointment between %s and Dr. %s on %s at %s is now %s."
	// link
	EmailBodyEmailVerification = "Please confirm your email address by opening this link: %s"
)

const (
	EmailSendBasicEmailSubjectFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s\r\n"
)

const (
	InboxTitleAppointmentRequested = "New appointment request"
	InboxTitleAppointmentUpdated   = "Appointment updated"
	InboxTitleAppointmentCanceled  = "Appointment canceled"
	InboxTitlePaymentReceived      = "Payment received"
	InboxTitlePrescriptionIssued   = "New prescription"
	InboxTitleDocumentReviewed     = "Document reviewed"
	InboxTitleDoctorStatusUpdated  = "Account status updated"

	InboxMessageAppointmentRequested = "%s requested an appointment on %s at %s"
	InboxMessageAppointmentUpdated   = "Your appointment on %s at %s is now %s"
	InboxMessageAppointmentCanceled  = "%s canceled the appointment on %s at %s"
	InboxMessagePaymentReceived      = "Your payment of %.2f %s was successful"
	InboxMessagePrescriptionIssued   = "Dr. %s prescribed %s"
	InboxMessageDocumentReviewed     = "Your document %q was %s"
	InboxMessageDoctorStatusUpdated  = "Your doctor account is now %s"
)
