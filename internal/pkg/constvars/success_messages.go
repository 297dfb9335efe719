package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	RegisterSuccess      = "account registered successfully"
	LoginSuccess         = "successfully login"
	LogoutSuccess        = "successfully logout"
	VerifyEmailSuccess   = "email verified successfully"
	ProfileGetSuccess    = "get profile successfully"
	ProfileUpdateSuccess = "profile updated successfully"

	// Directory messages
	DoctorListSuccess         = "get doctors successfully"
	DoctorGetSuccess          = "get doctor successfully"
	DoctorStatusUpdateSuccess = "doctor status updated successfully"
	HospitalListSuccess       = "get hospitals successfully"
	HospitalCreateSuccess     = "hospital created successfully"

	// Appointment messages
	AppointmentCreateSuccess = "appointment created successfully"
	AppointmentUpdateSuccess = "appointment updated successfully"
	AppointmentCancelSuccess = "appointment canceled successfully"
	AppointmentGetSuccess    = "get appointment successfully"
	AppointmentListSuccess   = "get appointments successfully"
	MeetingGetSuccess        = "get meeting successfully"

	// Payment messages
	PaymentInitializeSuccess = "payment initialized successfully"
	PaymentVerifySuccess     = "payment verified successfully"
	PaymentListSuccess       = "get payments successfully"
	WebhookReceivedSuccess   = "webhook received"

	// Prescription messages
	PrescriptionCreateSuccess = "prescription created successfully"
	PrescriptionUpdateSuccess = "prescription updated successfully"
	PrescriptionGetSuccess    = "get prescription successfully"
	PrescriptionListSuccess   = "get prescriptions successfully"

	// Document messages
	DocumentUploadSuccess       = "document uploaded successfully"
	DocumentListSuccess         = "get documents successfully"
	DocumentDownloadSuccess     = "get document url successfully"
	DocumentDeleteSuccess       = "document deleted successfully"
	DocumentStatusUpdateSuccess = "document status updated successfully"

	// Conversation messages
	ConversationListSuccess = "get conversations successfully"
	MessageListSuccess      = "get messages successfully"
	MessageSendSuccess      = "message sent successfully"

	// Notification messages
	NotificationListSuccess     = "get notifications successfully"
	NotificationMarkReadSuccess = "notification marked as read"

	// Admin messages
	AdminStatsSuccess = "get dashboard stats successfully"

	// Job messages
	ReminderJobSuccess = "appointment reminders processed"
)
