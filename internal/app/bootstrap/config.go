// internal/app/bootstrap/config.go
package bootstrap

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/folio/internal/app/features/settings"
	"github.com/dalemusser/folio/internal/app/features/skills"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// Blob backends.
const (
	BlobBackendInline = "inline"
	BlobBackendMinio  = "minio"
)

// appConfigKeys are loaded via WAFFLE's config system:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: FOLIO_MONGO_URI, FOLIO_RESET_KEY, etc.
//   - Command-line flags: --mongo_uri, --reset_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "folio", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},
	{Name: "session_key", Default: devSessionKey, Desc: "Token and cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "folio-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "reset_key", Default: "", Desc: "Shared secret for DELETE /api/admin/reset (blank disables reset)"},

	{Name: "proficiency_policy", Default: skills.PolicyReject, Desc: "Skill proficiency outside 1-100: 'reject' or 'clamp'"},
	{Name: "settings_max_blob_bytes", Default: settings.DefaultMaxBlobBytes, Desc: "Max decoded size of a setting upload in bytes"},

	// Blob storage
	{Name: "blob_backend", Default: BlobBackendInline, Desc: "Setting uploads: 'inline' (MongoDB) or 'minio'"},
	{Name: "minio_endpoint", Default: "", Desc: "MinIO/S3 endpoint host:port"},
	{Name: "minio_access_key", Default: "", Desc: "MinIO access key"},
	{Name: "minio_secret_key", Default: "", Desc: "MinIO secret key"},
	{Name: "minio_bucket", Default: "folio-settings", Desc: "Bucket for setting uploads"},
	{Name: "minio_use_ssl", Default: false, Desc: "Use TLS for MinIO"},

	// Rate limiting
	{Name: "redis_addr", Default: "", Desc: "Redis address for shared rate limits (blank keeps limits in memory)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "login_rate_limit", Default: 10, Desc: "Sign-in, setup and reset attempts per IP per window"},
	{Name: "contact_rate_limit", Default: 5, Desc: "Contact submissions per IP per window"},
	{Name: "rate_limit_window", Default: "15m", Desc: "Rate limit window (e.g., 15m, 1h)"},

	{Name: "cors_allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated origins allowed by CORS"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For"},

	// Backend call deadlines
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-document operations"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list queries and admin setup"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for setting uploads and content"},
}

// LoadConfig loads WAFFLE core config and folio's app config.
// Precedence: flags > env (FOLIO_*) > config files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FOLIO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		ResetKey:         strings.TrimSpace(appValues.String("reset_key")),

		ProficiencyPolicy:    strings.ToLower(appValues.String("proficiency_policy")),
		SettingsMaxBlobBytes: int64(appValues.Int("settings_max_blob_bytes")),

		BlobBackend:   strings.ToLower(appValues.String("blob_backend")),
		MinioEndpoint: appValues.String("minio_endpoint"),
		MinioAccess:   appValues.String("minio_access_key"),
		MinioSecret:   appValues.String("minio_secret_key"),
		MinioBucket:   appValues.String("minio_bucket"),
		MinioUseSSL:   appValues.Bool("minio_use_ssl"),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		TrustedProxies:     splitList(appValues.String("trusted_proxies")),

		LoginRateLimit:   appValues.Int("login_rate_limit"),
		ContactRateLimit: appValues.Int("contact_rate_limit"),
		RateLimitWindow:  appValues.Duration("rate_limit_window", 15*time.Minute),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
		TimeoutLong:   appValues.Duration("timeout_long", 30*time.Second),
	}

	// A blank key outside production gets a random one; sessions then do
	// not survive a restart.
	if appCfg.SessionKey == "" && coreCfg.Env != "prod" {
		appCfg.SessionKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key is blank; generated a random key for this process")
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateConfig rejects configurations that would fail at runtime or
// are unsafe in production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(coreCfg.Env, appCfg)
}

// validateAppConfig holds the checks that do not depend on WAFFLE.
func validateAppConfig(env string, appCfg AppConfig) error {
	if appCfg.SessionKey == "" {
		return errors.New("session_key is required")
	}
	if env == "prod" && appCfg.SessionKey == devSessionKey {
		return errors.New("session_key must be changed from the development default in production")
	}
	if !skills.IsPolicy(appCfg.ProficiencyPolicy) {
		return fmt.Errorf("proficiency_policy must be %q or %q, got %q", skills.PolicyReject, skills.PolicyClamp, appCfg.ProficiencyPolicy)
	}
	if appCfg.SettingsMaxBlobBytes <= 0 {
		return errors.New("settings_max_blob_bytes must be positive")
	}
	switch appCfg.BlobBackend {
	case BlobBackendInline:
	case BlobBackendMinio:
		if appCfg.MinioEndpoint == "" || appCfg.MinioAccess == "" || appCfg.MinioSecret == "" || appCfg.MinioBucket == "" {
			return errors.New("blob_backend=minio requires minio_endpoint, minio_access_key, minio_secret_key and minio_bucket")
		}
	default:
		return fmt.Errorf("blob_backend must be %q or %q, got %q", BlobBackendInline, BlobBackendMinio, appCfg.BlobBackend)
	}
	if _, err := ratelimit.ParseTrustedProxies(appCfg.TrustedProxies); err != nil {
		return err
	}
	if appCfg.LoginRateLimit <= 0 || appCfg.ContactRateLimit <= 0 || appCfg.RateLimitWindow <= 0 {
		return errors.New("rate limits and rate_limit_window must be positive")
	}
	return nil
}
