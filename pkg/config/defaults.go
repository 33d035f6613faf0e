package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoHost         = "cluster0.ihwvydu.mongodb.net"
	DefaultMongoDatabaseName = "hotelLuxury"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort        = "5000"
	DefaultEnvironment = Development
	DefaultLogLevel    = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultRequireAuthForMutations = false
	DefaultBookingLockEnabled      = false

	MinAccessTokenSecretLength = 16
)

const (
	Production  = "production"
	Development = "development"
)

var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"https://hotel-luxury-6656d.web.app",
	"https://hotel-luxury-6656d.firebaseapp.com",
}
