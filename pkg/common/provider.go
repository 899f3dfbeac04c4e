// File: pkg/common/provider.go
package common

import "strings"

// Provider identifies a storage backend. Values double as registry keys and config values
type Provider string

const (
	AWS    Provider = "aws"
	GCP    Provider = "gcp"
	Memory Provider = "memory"
)

// Normalizes user input such as " AWS " into a registry key
func ParseProvider(s string) Provider {
	return Provider(strings.ToLower(strings.TrimSpace(s)))
}

func (p Provider) String() string {
	return string(p)
}

// Human-readable name used in summaries
func (p Provider) DisplayName() string {
	switch p {
	case AWS:
		return "AWS S3"
	case GCP:
		return "Google Cloud Storage"
	case Memory:
		return "In-memory (dry run)"
	default:
		return strings.ToUpper(string(p))
	}
}
