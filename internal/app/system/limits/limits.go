// internal/app/system/limits/limits.go
package limits

// Request body size limits for JSON endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the default cap for content writes. A project's
	// longDescription alone may be 20000 characters of HTML.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxCredentialsBody caps sign-in and admin setup payloads.
	MaxCredentialsBody = 8 << 10 // 8 KB

	// MaxContactBody caps public contact submissions.
	MaxContactBody = 32 << 10 // 32 KB

	// SettingsEnvelope is the room left for the non-value fields of a
	// settings upsert on top of the encoded upload.
	SettingsEnvelope = 64 << 10 // 64 KB
)

// Base64Len returns the encoded length of n raw bytes, including padding.
func Base64Len(n int64) int64 {
	return (n + 2) / 3 * 4
}
