package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"alphanum":     "must contain only alphanumeric characters",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"gt":           "must be greater than %s",
	"len":          "must be exactly %s characters long",
	"oneof":        "must be one of %s",
	"uuid":         "must be a valid id",
	"password":     "must be at least 8 characters long and include an uppercase letter, a lowercase letter, a digit and a special character",
	"clock":        "time must use the HH:MM format",
	"calendar":     "date must use the YYYY-MM-DD or RFC3339 format",
	"currency":     "currency must be a 3 letter ISO code",
	"phone_number": "phone number must use the international format",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailNotVerified              = "please verify your email before logging in"
	ErrClientProfileNotFound               = "profile for this account was not found"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "%s not found"
	ErrClientInvalidStatusTransition       = "cannot change status from %s to %s"
	ErrClientAppointmentDateInPast         = "appointment date cannot be in the past"
	ErrClientAppointmentDateTooFar         = "appointment date must be within %d days from now"
	ErrClientAppointmentNotCancelable      = "appointment with status %s cannot be canceled"
	ErrClientAppointmentNotReschedulable   = "appointment with status %s cannot be rescheduled"
	ErrClientAppointmentModified           = "appointment was modified by another request, please reload and try again"
	ErrClientMeetingUnavailable            = "video meeting is only available for approved video call appointments"
	ErrClientDoctorNotPracticing           = "doctor is not accepting appointments"
	ErrClientPaymentGatewayFailed          = "payment provider could not process the request"
	ErrClientInvalidWebhookSignature       = "invalid signature"
	ErrClientMessagingWindowClosed         = "messaging window for this conversation is closed"
	ErrClientInvalidFileType               = "file type is not supported"
	ErrClientFileTooLarge                  = "file exceeds the maximum allowed size of %d MB"
	ErrClientRoleNotAllowed                = "registration for this role is not allowed"
	ErrClientInvalidAPIKey                 = "invalid API key"
	ErrClientPatientIDRequired             = "patientId is required"
	ErrClientRouteNotFound                 = "the requested endpoint does not exist"
	ErrClientMethodNotAllowed              = "method not allowed for this endpoint"
	ErrClientTooManyRequests               = "too many requests, please slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevReadBody                 = "cannot read request body"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevMissingSessionData       = "session missing from context"
	ErrDevRouteNotFound            = "no route for %s %s"
	ErrDevMethodNotAllowed         = "method %s not allowed on %s"
	ErrDevTooManyRequests          = "rate limit exceeded for %s"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevDecodeResponse           = "failed to decode response from %s"

	// Usecase messages
	ErrDevEmailAlreadyExists         = "email already exists"
	ErrDevEmailNotVerified           = "email not verified"
	ErrDevRoleProfileMissing         = "user has no %s profile"
	ErrDevRoleNotAllowed             = "role %s cannot self register"
	ErrDevResourceNotFound           = "%s with id %s not found"
	ErrDevInvalidStatusTransition    = "transition %s -> %s is not allowed"
	ErrDevAppointmentDateInPast      = "requested date %s is before now %s"
	ErrDevAppointmentDateTooFar      = "requested date %s is after the window end %s"
	ErrDevAppointmentNotCancelable   = "appointment status %s is not cancelable"
	ErrDevAppointmentNotReschedulale = "appointment status %s is terminal"
	ErrDevAppointmentStaleWrite      = "conditional update on status %s affected no rows"
	ErrDevMeetingUnavailable         = "meeting requires type VIDEO_CALL and status APPROVED, got %s/%s"
	ErrDevDoctorNotPracticing        = "doctor status is %s"
	ErrDevMessagingWindowClosed      = "messaging window closed at %s"
	ErrDevInvalidFileType            = "content type %s is not allowed"
	ErrDevFileTooLarge               = "file size %d exceeds limit %d"
	ErrDevPatientIDRequired          = "patient id missing for role %s"

	// Payment gateway messages
	ErrDevPaymentGatewayStatus   = "payment gateway %s responded with status %d: %s"
	ErrDevPaymentGatewayRejected = "payment gateway %s rejected request: %s"
	ErrDevWebhookSignature       = "webhook signature mismatch"

	// SMTP & email messages
	ErrDevSMTPSendEmail     = "failed to send email via SMTP client hostname %s"
	ErrDevSendGridSendEmail = "failed to send email via sendgrid, status %d"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenRevoked          = "token has been revoked"
	ErrDevAuthTokenPurpose          = "token purpose mismatch"
	ErrDevAuthPermissionDenied      = "permission denied for role %s on %s:%s (%s)"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthPolicy                = "authorization policy evaluation failed"
	ErrDevInvalidAPIKey             = "api key mismatch"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert data into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update data in database"
	ErrDevDBFailedToFindDocument     = "failed when do find data on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete data on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating rows from database"
	ErrDevDBDuplicateData            = "unique constraint %s violated"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToDeleteObject          = "failed to delete object from minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE key in redis"
	ErrDevRedisUnlock     = "failed to release lock in redis"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"

	// Server messages
	ErrDevServerInternalError    = "internal server error"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerPanic            = "recovered from panic"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrLineLocationUnknown = "line location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)

const (
	ErrEnvParsing     = "Error parsing %s: %v, will use default value"
	ErrEnvKeyNotExist = "Error getting env key: %s, will use default value"
)
