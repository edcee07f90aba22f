package bootstrap

import (
	"testing"
	"time"
)

func validAppConfig() AppConfig {
	return AppConfig{
		SessionKey:           "test-session-key-0123456789abcdef",
		ProficiencyPolicy:    "reject",
		SettingsMaxBlobBytes: 1 << 20,
		BlobBackend:          BlobBackendInline,
		LoginRateLimit:       10,
		ContactRateLimit:     5,
		RateLimitWindow:      15 * time.Minute,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "valid inline", env: "prod", mutate: func(*AppConfig) {}},
		{name: "clamp policy", env: "dev", mutate: func(c *AppConfig) { c.ProficiencyPolicy = "clamp" }},
		{name: "missing session key", env: "dev", mutate: func(c *AppConfig) { c.SessionKey = "" }, wantErr: true},
		{name: "dev key in prod", env: "prod", mutate: func(c *AppConfig) { c.SessionKey = devSessionKey }, wantErr: true},
		{name: "dev key in dev", env: "dev", mutate: func(c *AppConfig) { c.SessionKey = devSessionKey }},
		{name: "unknown policy", env: "dev", mutate: func(c *AppConfig) { c.ProficiencyPolicy = "round" }, wantErr: true},
		{name: "zero blob cap", env: "dev", mutate: func(c *AppConfig) { c.SettingsMaxBlobBytes = 0 }, wantErr: true},
		{name: "unknown backend", env: "dev", mutate: func(c *AppConfig) { c.BlobBackend = "s3" }, wantErr: true},
		{name: "minio without endpoint", env: "dev", mutate: func(c *AppConfig) {
			c.BlobBackend = BlobBackendMinio
			c.MinioAccess, c.MinioSecret, c.MinioBucket = "a", "s", "b"
		}, wantErr: true},
		{name: "minio complete", env: "dev", mutate: func(c *AppConfig) {
			c.BlobBackend = BlobBackendMinio
			c.MinioEndpoint, c.MinioAccess, c.MinioSecret, c.MinioBucket = "localhost:9000", "a", "s", "b"
		}},
		{name: "zero login limit", env: "dev", mutate: func(c *AppConfig) { c.LoginRateLimit = 0 }, wantErr: true},
		{name: "zero window", env: "dev", mutate: func(c *AppConfig) { c.RateLimitWindow = 0 }, wantErr: true},
		{name: "trusted proxies", env: "prod", mutate: func(c *AppConfig) { c.TrustedProxies = []string{"10.0.0.0/8", "127.0.0.1"} }},
		{name: "bad trusted proxy", env: "dev", mutate: func(c *AppConfig) { c.TrustedProxies = []string{"proxy.internal"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(tt.env, cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"http://localhost:3000", []string{"http://localhost:3000"}},
		{" https://a.example , ,https://b.example ", []string{"https://a.example", "https://b.example"}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
