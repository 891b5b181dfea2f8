package guide

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/streetwise-app/backend/internal/model/chat"
	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/internal/service/recommend"
	"github.com/streetwise-app/backend/internal/service/rewrite"
	guideService "github.com/streetwise-app/backend/internal/service/guide"
)

type passthroughProvider struct{}

func (passthroughProvider) Name() string                   { return "stub" }
func (passthroughProvider) Available(context.Context) bool { return true }
func (passthroughProvider) Generate(context.Context, string) (string, error) {
	return "Check out Starlight Bar.", nil
}

func setupRouter(t *testing.T, status int, body string) *chi.Mux {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	personas := persona.NewMemoryStore(persona.Seed())
	cfg := recommend.Config{
		APIKey:        "test-key",
		BaseURL:       upstream.URL,
		SearchBaseURL: upstream.URL,
		Retries:       1,
		Backoff:       time.Millisecond,
	}
	rewriter := rewrite.New(personas, []rewrite.Provider{passthroughProvider{}}, 0, nil)
	svc := guideService.NewService(personas, cfg, nil, rewriter, nil, nil, nil)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func createConversation(t *testing.T, r *chi.Mux, personaID string) chat.Conversation {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"personaId": personaID})
	req := httptest.NewRequest(http.MethodPost, "/conversations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var convo chat.Conversation
	if err := json.NewDecoder(resp.Body).Decode(&convo); err != nil {
		t.Fatalf("decode conversation: %v", err)
	}
	return convo
}

const okBody = `{"chat_id":"tok-1","response":{"text":"Here you go."},` +
	`"entities":[{"id":"sb-1","name":"Starlight Bar","rating":4.5}]}`

func TestSendMessageRoundTrip(t *testing.T) {
	r := setupRouter(t, http.StatusOK, okBody)
	convo := createConversation(t, r, "pete")

	payload, _ := json.Marshal(map[string]any{"query": "drinks nearby?"})
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+convo.ID+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var res guideService.TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Message.Text != "Check out Starlight Bar." {
		t.Fatalf("unexpected reply text %q", res.Message.Text)
	}
	if len(res.Message.Entities) != 1 || res.Message.Entities[0].Name != "Starlight Bar" {
		t.Fatalf("expected the mentioned entity, got %+v", res.Message.Entities)
	}
	if res.ChatID != "tok-1" {
		t.Fatalf("expected session token in result, got %q", res.ChatID)
	}
}

func TestSendMessageEmptyQuery(t *testing.T) {
	r := setupRouter(t, http.StatusOK, okBody)
	convo := createConversation(t, r, "ava")

	payload := []byte(`{"query":"  "}`)
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+convo.ID+"/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageUpstreamFailure(t *testing.T) {
	r := setupRouter(t, http.StatusServiceUnavailable, `{"error":{"code":"overloaded","description":"busy"}}`)
	convo := createConversation(t, r, "sam")

	payload := []byte(`{"query":"brunch?"}`)
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+convo.ID+"/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestTranscriptUnknownConversation(t *testing.T) {
	r := setupRouter(t, http.StatusOK, okBody)

	req := httptest.NewRequest(http.MethodGet, "/conversations/missing/messages", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestResetClearsTranscript(t *testing.T) {
	r := setupRouter(t, http.StatusOK, okBody)
	convo := createConversation(t, r, "nora")

	payload := []byte(`{"query":"cocktails?"}`)
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+convo.ID+"/messages", bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("send failed: %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/conversations/"+convo.ID+"/messages", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/conversations/"+convo.ID+"/messages", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var got struct {
		Messages []chat.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(got.Messages) != 0 {
		t.Fatalf("expected empty transcript after reset, got %d messages", len(got.Messages))
	}
}

func TestCreateConversationUnknownPersona(t *testing.T) {
	r := setupRouter(t, http.StatusOK, okBody)

	payload := []byte(`{"personaId":""}`)
	req := httptest.NewRequest(http.MethodPost, "/conversations", bytes.NewReader(payload))
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
