// Package recommend wraps the conversational business-recommendation API:
// session-token continuity, retry/backoff, and error classification.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/streetwise-app/backend/internal/model/chat"
	"github.com/streetwise-app/backend/internal/model/entity"
	"github.com/streetwise-app/backend/internal/telemetry"
)

const (
	defaultBaseURL       = "https://api.yelp.com/ai"
	defaultSearchBaseURL = "https://api.yelp.com/v3"
	defaultRetries       = 2
	defaultBackoff       = 600 * time.Millisecond
)

// Config carries the client settings. Zero values fall back to production
// defaults; tests override BaseURL and Backoff.
type Config struct {
	APIKey        string
	BaseURL       string
	SearchBaseURL string
	Retries       int
	Backoff       time.Duration
	HTTPClient    *http.Client
}

// ChatResponse is the upstream response for one chat turn.
type ChatResponse struct {
	ChatID   string             `json:"chat_id,omitempty"`
	Response struct {
		Text string `json:"text"`
	} `json:"response"`
	Entities []entity.RawRecord `json:"entities,omitempty"`
}

type chatPayload struct {
	Query       string           `json:"query"`
	UserContext chat.UserContext `json:"user_context"`
	ChatID      string           `json:"chat_id,omitempty"`
}

type errorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Session is a stateful client for one conversation. The token returned by
// the first response is echoed on every subsequent request until Reset.
// Callers must not run concurrent turns on one Session; the mutex only
// protects token reads against the HTTP handler goroutines.
type Session struct {
	cfg     Config
	client  *http.Client
	emitter telemetry.Emitter

	mu    sync.Mutex
	token string
}

// NewSession builds a Session with defaults applied.
func NewSession(cfg Config, emitter telemetry.Emitter) *Session {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.SearchBaseURL == "" {
		cfg.SearchBaseURL = defaultSearchBaseURL
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}
	if cfg.Backoff == 0 {
		cfg.Backoff = defaultBackoff
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if emitter == nil {
		emitter = telemetry.Noop{}
	}
	return &Session{cfg: cfg, client: client, emitter: emitter}
}

// Token returns the current session token, empty for a fresh session.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken seeds the session token, e.g. one restored from durable storage.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Reset clears the session token so the next send starts a new conversation
// upstream.
func (s *Session) Reset() {
	s.SetToken("")
}

// SendChat sends one prefaced query upstream and returns the raw response.
// Transient statuses are retried with exponential backoff; a terminal
// internal-error failure while a token is set clears the token and reruns
// the whole send exactly once as a fresh request.
func (s *Session) SendChat(ctx context.Context, query string, userCtx chat.UserContext) (*ChatResponse, error) {
	if s.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	res, err := s.sendWithRetry(ctx, query, userCtx)
	if err != nil {
		if isInternalError(err) && s.Token() != "" {
			log.Printf("[recommend] internal error with session token set; clearing session and retrying once")
			s.Reset()
			res, err = s.sendWithRetry(ctx, query, userCtx)
		}
		if err != nil {
			return nil, err
		}
	}

	if res.ChatID != "" {
		s.SetToken(res.ChatID)
	}
	return res, nil
}

// sendWithRetry runs the HTTP-layer attempt loop. 401 fails immediately;
// 429/500/503/504 retry with doubling backoff until the budget is spent.
func (s *Session) sendWithRetry(ctx context.Context, query string, userCtx chat.UserContext) (*ChatResponse, error) {
	backoff := s.cfg.Backoff

	for attempt := 0; ; attempt++ {
		res, status, body, err := s.doChatRequest(ctx, query, userCtx)
		if err == nil && status/100 == 2 {
			return res, nil
		}

		if status == http.StatusUnauthorized {
			s.trackError(status, "", ErrUnauthorized.Error(), attempt)
			return nil, ErrUnauthorized
		}

		retryable := status == http.StatusTooManyRequests ||
			status == http.StatusInternalServerError ||
			status == http.StatusServiceUnavailable ||
			status == http.StatusGatewayTimeout
		if retryable && attempt < s.cfg.Retries {
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
			continue
		}

		if err != nil {
			s.trackError(status, "", err.Error(), attempt)
			return nil, fmt.Errorf("recommendation request failed: %w", err)
		}

		var parsed errorBody
		_ = json.Unmarshal(body, &parsed)
		upstream := &UpstreamError{
			Status:      status,
			Code:        parsed.Error.Code,
			Description: parsed.Error.Description,
			Attempts:    attempt + 1,
		}
		s.trackError(status, upstream.Code, upstream.Error(), attempt)
		return nil, upstream
	}
}

// doChatRequest performs a single POST. status is zero for transport errors.
func (s *Session) doChatRequest(ctx context.Context, query string, userCtx chat.UserContext) (*ChatResponse, int, []byte, error) {
	payload := chatPayload{
		Query:       query,
		UserContext: userCtx,
		ChatID:      s.Token(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/chat/v2", bytes.NewReader(raw))
	if err != nil {
		return nil, 0, nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, nil, fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, resp.StatusCode, body, nil
	}

	var out ChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, resp.StatusCode, body, fmt.Errorf("decode chat response: %w", err)
	}
	return &out, resp.StatusCode, body, nil
}

// ResolvePlaceName reverse-geocodes coordinates by asking the business-search
// endpoint for the nearest result's city. Any failure degrades to an empty
// name; it never propagates.
func (s *Session) ResolvePlaceName(ctx context.Context, lat, lon float64) string {
	if s.cfg.APIKey == "" {
		return ""
	}

	endpoint := fmt.Sprintf("%s/businesses/search?%s", s.cfg.SearchBaseURL, url.Values{
		"latitude":  {fmt.Sprintf("%f", lat)},
		"longitude": {fmt.Sprintf("%f", lon)},
		"limit":     {"1"},
		"sort_by":   {"distance"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[recommend] reverse geocode failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		log.Printf("[recommend] reverse geocode failed: status %d", resp.StatusCode)
		return ""
	}

	var out struct {
		Businesses []struct {
			Location entity.Location `json:"location"`
		} `json:"businesses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("[recommend] reverse geocode decode failed: %v", err)
		return ""
	}
	if len(out.Businesses) == 0 {
		return ""
	}
	return out.Businesses[0].Location.City
}

func (s *Session) trackError(status int, code, message string, attempt int) {
	s.emitter.Track(telemetry.EventAPIError, map[string]any{
		"service": "yelp",
		"status":  status,
		"code":    code,
		"message": message,
		"attempt": attempt,
	})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
