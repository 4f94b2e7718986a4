// Package health reports the health of the serialization core's parts
package health

import (
	"regexp"
	"strings"
	"time"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
)

// Pre-compiled regexes for error message sanitization
var (
	urlRegex        = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s]+`)
	unixPathRegex   = regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`)
	ipAddrRegex     = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	portRegex       = regexp.MustCompile(`:\d{2,5}\b`)
	credentialRegex = regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`)
)

// Status represents the health state of a component or system
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"` // true if status is "healthy"
	Status      string    `json:"status"`  // "healthy", "unhealthy", "degraded"
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
	Metrics     *Metrics  `json:"metrics,omitempty"`
}

// Metrics contains health-related counters
type Metrics struct {
	ErrorCount   int       `json:"error_count"`
	Processed    int64     `json:"processed,omitempty"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool {
	return s.Status == StateHealthy
}

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool {
	return s.Status == StateDegraded
}

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool {
	return s.Status == StateUnhealthy
}

// WithMetrics returns a copy of the status with metrics attached
func (s Status) WithMetrics(metrics *Metrics) Status {
	s.Metrics = metrics
	return s
}

// FromError derives a status from the outcome of an operation. A nil error
// is healthy, a transient or invalid-input error degraded, anything else
// unhealthy. The message is sanitized.
func FromError(component string, err error) Status {
	switch {
	case err == nil:
		return NewHealthy(component, "ok")
	case errors.IsTransient(err), errors.IsInvalid(err):
		return NewDegraded(component, sanitizeErrorMessage(err.Error()))
	default:
		return NewUnhealthy(component, sanitizeErrorMessage(err.Error()))
	}
}

// sanitizeErrorMessage removes URLs, paths, addresses and credentials from
// an error message before it is exposed on the health endpoint.
func sanitizeErrorMessage(err string) string {
	if err == "" {
		return ""
	}

	sanitized := urlRegex.ReplaceAllString(err, "[URL]")
	sanitized = unixPathRegex.ReplaceAllString(sanitized, "[PATH]")
	sanitized = ipAddrRegex.ReplaceAllString(sanitized, "[IP]")
	sanitized = portRegex.ReplaceAllString(sanitized, "[PORT]")

	lower := strings.ToLower(sanitized)
	if strings.Contains(lower, "password") || strings.Contains(lower, "token") ||
		strings.Contains(lower, "key") || strings.Contains(lower, "secret") ||
		strings.Contains(lower, "credential") {
		sanitized = credentialRegex.ReplaceAllString(sanitized, "[REDACTED]")
	}

	return sanitized
}
