// Package rewrite restyles raw recommendation text into a persona's voice.
// Providers are tried in configured order under a hard deadline; the
// deterministic persona-framing template is the terminal fallback, so a
// rewrite never fails outward.
package rewrite

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/internal/telemetry"
)

const (
	// DefaultTimeout bounds each provider attempt.
	DefaultTimeout = 4500 * time.Millisecond

	fallbackClip        = 480
	fallbackPlaceholder = "Lining up a few spots for you."
)

// Provider is one text-generation path. Available is a cheap capability
// probe evaluated per call; unavailable providers are skipped silently.
type Provider interface {
	Name() string
	Available(ctx context.Context) bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Rewriter drives the provider chain.
type Rewriter struct {
	personas  persona.Store
	providers []Provider
	timeout   time.Duration
	emitter   telemetry.Emitter
}

// New builds a Rewriter. providers may be empty, in which case every rewrite
// resolves to the template fallback.
func New(personas persona.Store, providers []Provider, timeout time.Duration, emitter telemetry.Emitter) *Rewriter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if emitter == nil {
		emitter = telemetry.Noop{}
	}
	return &Rewriter{
		personas:  personas,
		providers: providers,
		timeout:   timeout,
		emitter:   emitter,
	}
}

// Rewrite restyles rawText in the persona's voice. It always returns a
// non-empty string.
func (r *Rewriter) Rewrite(ctx context.Context, personaID, originalQuery, rawText string, hasReservableSpot bool) string {
	p := r.personas.Resolve(personaID)
	prompt := BuildPrompt(p, originalQuery, rawText, hasReservableSpot)

	for _, prov := range r.providers {
		if !prov.Available(ctx) {
			continue
		}

		text, err := r.generateWithDeadline(ctx, prov, prompt)
		if err != nil {
			isTimeout := errors.Is(err, context.DeadlineExceeded)
			r.emitter.Track(telemetry.EventAPIError, map[string]any{
				"service":   prov.Name(),
				"personaId": personaID,
				"isTimeout": isTimeout,
				"message":   err.Error(),
			})
			log.Printf("[rewrite] provider %s failed (timeout=%v): %v", prov.Name(), isTimeout, err)
			continue
		}

		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			r.emitter.Track(telemetry.EventAPIError, map[string]any{
				"service":   prov.Name(),
				"personaId": personaID,
				"isTimeout": false,
				"message":   "empty completion",
			})
			continue
		}
		return trimmed
	}

	return Fallback(p.Name, rawText)
}

// generateWithDeadline enforces the per-attempt timeout even against a
// provider that ignores its context. Cancelling the context discards the
// losing branch; the buffered channel lets its goroutine finish and be
// collected.
func (r *Rewriter) generateWithDeadline(ctx context.Context, prov Provider, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := prov.Generate(callCtx, prompt)
		ch <- result{text: text, err: err}
	}()

	select {
	case <-callCtx.Done():
		return "", callCtx.Err()
	case res := <-ch:
		return res.text, res.err
	}
}

// Fallback is the deterministic persona-framing template used when every
// provider fails: the persona name plus the first 480 characters of the raw
// text, ellipsized when truncated.
func Fallback(personaName, rawText string) string {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		trimmed = fallbackPlaceholder
	}
	if len(trimmed) > fallbackClip {
		trimmed = trimmed[:fallbackClip] + "..."
	}
	return personaName + " take: " + trimmed
}
