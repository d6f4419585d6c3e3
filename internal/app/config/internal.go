package config

type InternalConfig struct {
	App       App          `mapstructure:"app"`
	FormToken AppFormToken `mapstructure:"form_token"`
	Minio     AppMinio     `mapstructure:"minio"`
	RabbitMQ  AppRabbitMQ  `mapstructure:"rabbitmq"`
	MongoDB   AppMongoDB   `mapstructure:"mongodb"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	FrontendDomain             string `mapstructure:"frontend_domain"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
}

type AppFormToken struct {
	Secret           string `mapstructure:"secret"`
	ExpTimeInMinutes int    `mapstructure:"exp_time_in_minutes"`
	BusyTTLInSeconds int    `mapstructure:"busy_ttl_in_seconds"`
}

type AppMinio struct {
	BucketName                              string `mapstructure:"bucket_name"`
	IdentificationDocumentMaxUploadSizeInMB int    `mapstructure:"identification_document_max_upload_size_in_mb"`
	PreSignedUrlObjectExpiryTimeInHours     int    `mapstructure:"pre_signed_url_object_expiry_time_in_hours"`
}

type AppRabbitMQ struct {
	SMSQueue string `mapstructure:"sms_queue"`
}

type AppMongoDB struct {
	CarepulseDBName string `mapstructure:"carepulse_db_name"`
}
