// File: pkg/storage/model.go
package storage

import (
	"fmt"
)

// Index document applied by providers when a website configuration has no redirect
const DefaultIndexDocument = "index.html"

// Provider-neutral website configuration. The zero value means
// "serve this bucket's own objects" with provider defaults
type WebsiteConfiguration struct {
	RedirectAllRequestsTo *RedirectAllRequestsTo
}

// Requests keep their original protocol
type RedirectAllRequestsTo struct {
	HostName string
}

func (w WebsiteConfiguration) IsRedirect() bool {
	return w.RedirectAllRequestsTo != nil
}

func (w WebsiteConfiguration) String() string {
	if w.RedirectAllRequestsTo == nil {
		return "serve " + DefaultIndexDocument
	}
	return "redirect to " + w.RedirectAllRequestsTo.HostName
}

type ObjectInput struct {
	Key         string
	Content     []byte
	ContentType string
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
