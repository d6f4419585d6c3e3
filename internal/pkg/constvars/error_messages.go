package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":            "is required",
	"email":               "must be a valid email",
	"min":                 "must be at least %s characters long",
	"max":                 "maximum at %s characters long",
	"len":                 "must be %s characters long",
	"oneof":               "must be one of [%s]",
	"eq":                  "must be accepted",
	"phone":               "must be a valid international phone number, e.g. +14155552671",
	"identification_type": "must be a supported identification type",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}

// Tags whose message is returned as-is, without the field name prefix
var TagsWithStandaloneMessage = map[string]bool{
	"phone": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientSubmissionInProgress          = "your submission is still being processed, please wait"
	ErrClientFormExpired                   = "this form has expired, please reload the page and try again"
	ErrClientUnknownAppointmentMode        = "unknown appointment form type"
	ErrClientPatientAlreadyRegistered      = "this patient is already registered"
	ErrClientIdentityNotFound              = "we could not find your details, please start again"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientDocumentTooLarge              = "the identification document is too large"
	ErrClientSubmitFailed                  = "we could not submit your form, please try again"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevCannotReadUploadedFile   = "cannot read uploaded file"
	ErrDevDocumentTooLarge         = "uploaded document exceeds %d MB"
	ErrDevValidationFailed         = "validation failed"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"
	ErrDevUnknownAppointmentMode   = "unknown appointment mode %q"
	ErrDevFormKindMismatch         = "form token issued for %q, used on %q"
	ErrDevSubmissionInProgress     = "form instance %s already has a submission in flight"
	ErrDevPatientAlreadyRegistered = "patient profile already exists for user %s"
	ErrDevIdentityNotFound         = "identity %s not found"
	ErrDevAppointmentNotFound      = "appointment %s not found"
	ErrDevAppointmentOwnerMismatch = "appointment %s does not belong to user %s"
	ErrDevRenderTemplate           = "failed to render form template"

	ErrDevFormTokenInvalid  = "invalid or expired form token"
	ErrDevFormTokenGenerate = "failed to sign form token"
	ErrDevFormTokenMissing  = "form token missing"

	ErrDevDBFailedToInsertDocument = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument = "failed to update document into database"
	ErrDevDBFailedToFindDocument   = "failed when do find document on database"
	ErrDevDBStringNotObjectID      = "given ID is not valid object ID"

	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"
	ErrDevMinioFailedToDeleteObject          = "failed to delete object from minio storage with bucket name '%s'"

	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisGetNoData  = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitmq queue '%s'"

	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)
