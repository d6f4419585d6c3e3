package config

import (
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "carepulse"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			MaxSizeInMB:         utils.GetEnvInt("LOGGER_MAX_SIZE_IN_MB", 100),
			MaxBackups:          utils.GetEnvInt("LOGGER_MAX_BACKUPS", 5),
			MaxAgeInDays:        utils.GetEnvInt("LOGGER_MAX_AGE_IN_DAYS", 28),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	internalConfig := &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", constvars.DefaultRequestTimeoutInSeconds),
		},
		FormToken: AppFormToken{
			Secret:           utils.GetEnvString("FORM_TOKEN_SECRET", ""),
			ExpTimeInMinutes: utils.GetEnvInt("FORM_TOKEN_EXP_TIME_IN_MINUTES", 60),
			BusyTTLInSeconds: utils.GetEnvInt("FORM_BUSY_TTL_IN_SECONDS", 30),
		},
		Minio: AppMinio{
			BucketName:                              utils.GetEnvString("APP_MINIO_BUCKET_NAME", "identification-documents"),
			IdentificationDocumentMaxUploadSizeInMB: utils.GetEnvInt("APP_MINIO_IDENTIFICATION_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 5),
			PreSignedUrlObjectExpiryTimeInHours:     utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			SMSQueue: utils.GetEnvString("APP_RABBITMQ_SMS_QUEUE", "carepulse_sms_notifications"),
		},
		MongoDB: AppMongoDB{
			CarepulseDBName: utils.GetEnvString("APP_MONGODB_CAREPULSE_DB_NAME", "carepulse"),
		},
	}
	internalConfig.FormToken.BusyTTLInSeconds = clampBusyTTL(
		internalConfig.FormToken.BusyTTLInSeconds,
		internalConfig.App.RequestTimeoutInSeconds,
	)
	return internalConfig
}

// clampBusyTTL keeps the busy lock alive for the longest a submission can run:
// the request timeout plus the release timeout, with one second of slack.
func clampBusyTTL(busyTTLInSeconds, requestTimeoutInSeconds int) int {
	if requestTimeoutInSeconds <= 0 {
		requestTimeoutInSeconds = constvars.DefaultRequestTimeoutInSeconds
	}
	minimum := requestTimeoutInSeconds + constvars.BusyReleaseTimeoutInSeconds + 1
	if busyTTLInSeconds < minimum {
		return minimum
	}
	return busyTTLInSeconds
}
