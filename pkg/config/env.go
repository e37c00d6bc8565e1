package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvBaseURL  = "BASE_URL"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvPlatformFeeRate = "PLATFORM_FEE_RATE"

	EnvUploadDir     = "UPLOAD_DIR"
	EnvMaxUploadSize = "MAX_UPLOAD_SIZE"

	EnvStripeSecretKey      = "STRIPE_SECRET_KEY"
	EnvStripePublishableKey = "STRIPE_PUBLISHABLE_KEY"
	EnvStripeWebhookSecret  = "STRIPE_WEBHOOK_SECRET"

	EnvSMTPHost          = "SMTP_HOST"
	EnvSMTPPort          = "SMTP_PORT"
	EnvSMTPUsername      = "SMTP_USERNAME"
	EnvSMTPPassword      = "SMTP_PASSWORD"
	EnvEmailFrom         = "EMAIL_FROM"
	EnvOwnerAlertEmail   = "OWNER_ALERT_EMAIL"
	EnvEmailSendDisabled = "EMAIL_SEND_DISABLED"
)
