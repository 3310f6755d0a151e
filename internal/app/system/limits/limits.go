// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size of a JSON request body.
	MaxJSONBody = 64 << 10 // 64 KB
)

// Field length limits, in characters.
const (
	MaxNameLen        = 200
	MaxTitleLen       = 200
	MaxDescriptionLen = 4000
	MaxLocationLen    = 300
)
