package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CRPLS_SVC_"
)

const (
	MongoCollectionIdentities   = "identities"
	MongoCollectionPatients     = "patients"
	MongoCollectionAppointments = "appointments"
)

const (
	RedisKeyFormBusyPrefix = "form:busy:"
)

const (
	DefaultRequestTimeoutInSeconds = 10
	BusyReleaseTimeoutInSeconds    = 5
)
