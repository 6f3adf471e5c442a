package observe

import (
	"errors"

	"github.com/jonwraymond/coursecms/observe/exporters"
)

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrEndpointNotConfigured indicates an OTLP endpoint environment
	// variable is not set.
	ErrEndpointNotConfigured = exporters.ErrEndpointNotConfigured
)

// RedactedFields lists field keys whose values never reach the log output.
var RedactedFields = []string{
	"password",
	"password_hash",
	"passwordHash",
	"secret",
	"token",
	"authorization",
	"api_key",
	"apiKey",
	"dsn",
	"credential",
}
