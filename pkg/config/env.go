package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoHost         = "MONGO_HOST"
	EnvMongoUser         = "DB_USER"
	EnvMongoPass         = "DB_PASS"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort              = "PORT"
	EnvEnvironment       = "NODE_ENV"
	EnvLogLevel          = "LOG_LEVEL"
	EnvAccessTokenSecret = "ACCESS_TOKEN_SECRET"
	EnvCORSOrigins       = "CORS_ORIGINS"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRequireAuthForMutations = "REQUIRE_AUTH_FOR_MUTATIONS"
	EnvBookingLockEnabled      = "BOOKING_LOCK_ENABLED"
)
