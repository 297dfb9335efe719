package constvars

// Authorization resources.
const (
	ResourceAppointment    = "appointment"
	ResourcePayment        = "payment"
	ResourcePrescription   = "prescription"
	ResourceMedicalRecord  = "medical_record"
	ResourceDoctorDocument = "doctor_document"
	ResourceConversation   = "conversation"
	ResourceNotification   = "notification"
	ResourceDoctor         = "doctor"
	ResourcePatient        = "patient"
	ResourceHospital       = "hospital"
	ResourceStats          = "stats"
)

// Authorization actions.
const (
	ActionCreate       = "create"
	ActionRead         = "read"
	ActionList         = "list"
	ActionUpdate       = "update"
	ActionUpdateStatus = "update_status"
	ActionUpdateNotes  = "update_notes"
	ActionReschedule   = "reschedule"
	ActionCancel       = "cancel"
	ActionDelete       = "delete"
	ActionDownload     = "download"
	ActionMeeting      = "meeting"
	ActionSendMessage  = "send_message"
)

// Ownership of the target resource relative to the caller.
const (
	OwnershipSelf  = "self"
	OwnershipOther = "other"
)
