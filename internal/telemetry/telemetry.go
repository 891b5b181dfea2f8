// Package telemetry emits structured product/ops events. Emission must never
// affect the caller's outcome; emitters swallow their own failures.
package telemetry

import "github.com/sirupsen/logrus"

// Event names shared with the mobile client's analytics.
const (
	EventMessageSent      = "Message Sent"
	EventResponseReceived = "Response Received"
	EventAPIError         = "API Error"
)

// Emitter records a named event with free-form properties.
type Emitter interface {
	Track(event string, props map[string]any)
}

// LogEmitter writes events as structured log lines. It stands in for the
// hosted analytics collaborator.
type LogEmitter struct {
	logger *logrus.Logger
}

// NewLogEmitter returns a LogEmitter backed by the given logger, or a default
// logrus logger when nil.
func NewLogEmitter(logger *logrus.Logger) *LogEmitter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogEmitter{logger: logger}
}

// Track logs the event with its properties as fields.
func (e *LogEmitter) Track(event string, props map[string]any) {
	fields := make(logrus.Fields, len(props))
	for k, v := range props {
		fields[k] = v
	}
	e.logger.WithFields(fields).Info(event)
}

// Noop discards all events. Used in tests and as the default when no emitter
// is wired.
type Noop struct{}

// Track implements Emitter.
func (Noop) Track(string, map[string]any) {}
