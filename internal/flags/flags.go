// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider selects the storage backend for a deploy, overriding the configured one
	Provider      = "provider"
	ProviderShort = "p"

	// BuildDir points at the directory whose files are uploaded
	BuildDir      = "build-dir"
	BuildDirShort = "b"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"

	// Yes skips confirmation prompts
	Yes      = "yes"
	YesShort = "y"
)
