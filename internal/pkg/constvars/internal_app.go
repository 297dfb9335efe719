package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
	CONTEXT_API_KEY_AUTH             ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "TLHLTH_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPage            = 1
	DefaultPageSize        = 20
	MaxPageSize            = 100
)

const (
	RoleAdmin   = "ADMIN"
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

const (
	RedirectURLPatient = "/patient/dashboard"
	RedirectURLDoctor  = "/doctor/dashboard"
	RedirectURLAdmin   = "/admin/dashboard"
)

const (
	DoctorStatusPending   = "PENDING"
	DoctorStatusApproved  = "APPROVED"
	DoctorStatusRejected  = "REJECTED"
	DoctorStatusSuspended = "SUSPENDED"
)

const (
	AppointmentTypeInPerson  = "IN_PERSON"
	AppointmentTypeOnline    = "ONLINE"
	AppointmentTypeVideoCall = "VIDEO_CALL"
)

const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusApproved  = "APPROVED"
	AppointmentStatusRejected  = "REJECTED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusCanceled  = "CANCELED"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"

	PaymentMethodPaystack  = "PAYSTACK"
	PaymentDefaultCurrency = "GHS"
	// gateway amounts are expressed in the currency's minor unit
	PaymentMinorUnitMultiplier = 100
)

const (
	DocumentStatusPending  = "PENDING"
	DocumentStatusApproved = "APPROVED"
	DocumentStatusRejected = "REJECTED"
)

const (
	NotificationTypeBooking           = "BOOKING"
	NotificationTypeReminder          = "REMINDER"
	NotificationTypeReschedule        = "RESCHEDULE"
	NotificationTypeVideoMeeting      = "VIDEO_MEETING"
	NotificationTypeStatusUpdate      = "STATUS_UPDATE"
	NotificationTypeEmailVerification = "EMAIL_VERIFICATION"
	NotificationTypePayment           = "PAYMENT"
	NotificationTypePrescription      = "PRESCRIPTION"
	NotificationTypeDocument          = "DOCUMENT"
	NotificationTypeAccount           = "ACCOUNT"
)

const (
	// Appointment dates may be moved at most this many days ahead.
	AppointmentRescheduleWindowDays = 30
	// Messaging stays open this long after the latest completed appointment.
	ConversationMessagingWindowDays = 7
	// Reminders go out for approved appointments starting within this window.
	AppointmentReminderLeadTimeInHours = 24
)

const (
	TokenPurposeSession     = "session"
	TokenPurposeVerifyEmail = "verify_email"

	// base url, endpoint prefix, version, token
	VerifyEmailLinkFormat = "%s/%s/%s/auth/verify-email?token=%s"
)

const (
	PaystackEventChargeSuccess = "charge.success"
	PaystackEventChargeFailed  = "charge.failed"

	PaystackTransactionSuccess   = "success"
	PaystackTransactionFailed    = "failed"
	PaystackTransactionAbandoned = "abandoned"
	PaystackTransactionReversed  = "reversed"
)

const (
	StorageObjectPublicMarker = "/object/public/"
	StorageObjectSignMarker   = "/object/sign/"

	StorageFolderMedicalRecords  = "medical-records"
	StorageFolderDoctorDocuments = "doctor-documents"
)

const (
	TimeFormatYYYYMMDD = "2006-01-02"
	TimeFormatHHMM     = "15:04"
)
