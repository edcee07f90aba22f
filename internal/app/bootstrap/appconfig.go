// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds folio's app-level configuration. WAFFLE's CoreConfig
// covers ports, TLS, logging level and environment; everything specific
// to the portfolio API lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session tokens and cookie
	SessionKey    string // HMAC secret for tokens and the cookie store
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// ResetKey guards DELETE /api/admin/reset. Blank disables reset.
	ResetKey string

	// Content rules
	ProficiencyPolicy    string // "reject" or "clamp"
	SettingsMaxBlobBytes int64  // cap on decoded setting uploads

	// Blob storage for setting uploads: "inline" or "minio"
	BlobBackend   string
	MinioEndpoint string
	MinioAccess   string
	MinioSecret   string
	MinioBucket   string
	MinioUseSSL   bool

	// Shared rate limiting (blank address keeps limits in memory)
	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string

	// Peers (IPs or CIDRs) whose X-Forwarded-For / X-Real-IP headers are
	// believed. Empty means rate limits key on the socket address.
	TrustedProxies []string

	LoginRateLimit   int
	ContactRateLimit int
	RateLimitWindow  time.Duration

	// Request deadlines around backend calls (see system/timeouts)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
