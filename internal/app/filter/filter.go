// Package filter provides the filter chain for file selection validation.
package filter

import (
	"context"

	"github.com/osa030/dirplayer/internal/domain/track"
)

// Rejection codes. Each maps to a user-facing message in the config.
const (
	CodeUnsupportedFile       = "unsupported_file"
	CodeZeroDuration          = "zero_duration"
	CodeDurationLimitExceeded = "duration_limit_exceeded"
)

// Candidate represents a track about to be queued.
type Candidate struct {
	Track track.Track
}

// Result represents the result of a filter check.
type Result struct {
	Accepted bool
	Code     string // e.g., "unsupported_file", "zero_duration"
}

// Accept returns an accepted result.
func Accept() Result {
	return Result{Accepted: true}
}

// Reject returns a rejected result with the given code.
func Reject(code string) Result {
	return Result{Accepted: false, Code: code}
}

// Filter is the interface for selection filters.
type Filter interface {
	// Name returns the filter name (used in config).
	Name() string
	// Description returns a human-readable description.
	Description() string
	// ReturnCodes returns the codes this filter can return.
	ReturnCodes() []string
	// ValidateConfig validates and applies the filter configuration.
	ValidateConfig(settings map[string]any) error
	// AppliesTo returns true if this filter should be applied to tracks from the given source.
	AppliesTo(source track.Source) bool
	// Check performs the filter check.
	Check(ctx context.Context, c Candidate) Result
}

// registry holds registered filter factories.
var registry = make(map[string]func() Filter)

// Register registers a filter factory.
func Register(name string, factory func() Filter) {
	registry[name] = factory
}

// GetRegistered returns all registered filter factories.
func GetRegistered() map[string]func() Filter {
	return registry
}
