package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorTypeKey      = "error_type"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingOperationKey      = "operation"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"

	LoggingUserIDKey          = "user_id"
	LoggingRoleKey            = "role"
	LoggingEmailKey           = "email"
	LoggingPatientIDKey       = "patient_id"
	LoggingDoctorIDKey        = "doctor_id"
	LoggingAppointmentIDKey   = "appointment_id"
	LoggingPaymentIDKey       = "payment_id"
	LoggingPaymentRefKey      = "payment_reference"
	LoggingPrescriptionIDKey  = "prescription_id"
	LoggingConversationIDKey  = "conversation_id"
	LoggingDocumentIDKey      = "document_id"
	LoggingNotificationIDKey  = "notification_id"
	LoggingNotificationType   = "notification_type"
	LoggingCurrentStatusKey   = "current_status"
	LoggingRequestedStatusKey = "requested_status"
	LoggingObjectKey          = "object_key"
	LoggingBucketKey          = "bucket"
	LoggingQueueKey           = "queue"
	LoggingEventKey           = "event"
	LoggingCountKey           = "count"

	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
