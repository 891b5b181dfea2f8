package recommend

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential means no API key was configured; the call is
	// never attempted.
	ErrMissingCredential = errors.New("recommendation api key is missing")

	// ErrUnauthorized is an upstream 401. Not retried.
	ErrUnauthorized = errors.New("Unauthorized: check recommendation api key")
)

// UpstreamError is a terminal upstream failure, surfaced after the retry
// budget is spent or for statuses that are never retried.
type UpstreamError struct {
	Status      int
	Code        string
	Description string
	Attempts    int
}

func (e *UpstreamError) Error() string {
	if e.Description != "" {
		if e.Code != "" {
			return fmt.Sprintf("upstream error %d (%s): %s", e.Status, e.Code, e.Description)
		}
		return fmt.Sprintf("upstream error %d: %s", e.Status, e.Description)
	}
	return fmt.Sprintf("upstream error %d", e.Status)
}

// isInternalError matches the upstream's internal-error signatures, which
// gate the one-shot session-reset recovery.
func isInternalError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "internal_error") ||
		strings.Contains(msg, "something went wrong internally")
}
