package guide

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/internal/model/weather"
	"github.com/streetwise-app/backend/internal/service/recommend"
	"github.com/streetwise-app/backend/internal/service/rewrite"
	"github.com/streetwise-app/backend/internal/storage"
)

type echoProvider struct{}

func (echoProvider) Name() string                   { return "echo" }
func (echoProvider) Available(context.Context) bool { return true }
func (echoProvider) Generate(_ context.Context, _ string) (string, error) {
	return "Head to Starlight Bar tonight.", nil
}

type fakeWeather struct {
	mu    sync.Mutex
	calls int
	snap  *weather.Snapshot
	err   error
}

func (f *fakeWeather) Fetch(context.Context, float64, float64) (*weather.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snap, f.err
}

type capturedPayload struct {
	Query  string `json:"query"`
	ChatID string `json:"chat_id"`
}

// chatUpstream is a scripted recommendation endpoint recording every payload.
type chatUpstream struct {
	mu       sync.Mutex
	payloads []capturedPayload
	handler  func(w http.ResponseWriter, n int)
}

func (u *chatUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var p capturedPayload
	_ = json.NewDecoder(r.Body).Decode(&p)
	u.mu.Lock()
	u.payloads = append(u.payloads, p)
	n := len(u.payloads)
	u.mu.Unlock()
	u.handler(w, n)
}

func (u *chatUpstream) payload(i int) capturedPayload {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.payloads[i]
}

func (u *chatUpstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.payloads)
}

func okChatBody(chatID, text string) string {
	return `{"chat_id":"` + chatID + `","response":{"text":"` + text + `"},` +
		`"entities":[{"id":"sb-1","name":"Starlight Bar","rating":4.5},` +
		`{"id":"mc-2","name":"Moonbeam Cafe","rating":4.0}]}`
}

func newTestService(t *testing.T, upstream *chatUpstream, fetcher WeatherFetcher, tokens storage.TokenStore) *Service {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	personas := persona.NewMemoryStore(persona.Seed())
	cfg := recommend.Config{
		APIKey:        "test-key",
		BaseURL:       srv.URL,
		SearchBaseURL: srv.URL,
		Retries:       1,
		Backoff:       time.Millisecond,
	}
	rewriter := rewrite.New(personas, []rewrite.Provider{echoProvider{}}, 0, nil)
	return NewService(personas, cfg, fetcher, rewriter, tokens, nil, nil)
}

func TestRunTurnHappyPath(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-1", "Two spots for you.")))
	}}
	fetcher := &fakeWeather{snap: &weather.Snapshot{TempF: 70, Description: "clear sky"}}
	tokens := storage.NewMemoryTokenStore()
	svc := newTestService(t, upstream, fetcher, tokens)

	convo, err := svc.StartConversation(context.Background(), "pete")
	require.NoError(t, err)

	res, err := svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "late night drinks?"})
	require.NoError(t, err)

	assert.Equal(t, "Head to Starlight Bar tonight.", res.Message.Text)
	assert.Equal(t, "tok-1", res.ChatID)
	// Only the mentioned entity survives the filter.
	require.Len(t, res.Message.Entities, 1)
	assert.Equal(t, "Starlight Bar", res.Message.Entities[0].Name)

	transcript, err := svc.Transcript(context.Background(), convo.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	assert.Equal(t, "user", transcript[0].Role)
	assert.Equal(t, "late night drinks?", transcript[0].Text)
	assert.Equal(t, "assistant", transcript[1].Role)

	// Token persisted for the persona.
	saved, err := tokens.Get("pete")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", saved)

	// Context preamble and query travel in one prefaced message.
	sent := upstream.payload(0).Query
	assert.Contains(t, sent, "Current context:")
	assert.Contains(t, sent, "late night drinks?")
	assert.Contains(t, sent, "70°F")
	assert.Empty(t, upstream.payload(0).ChatID)
}

func TestRunTurnWeatherFetchedOncePerConversation(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-1", "Sure.")))
	}}
	fetcher := &fakeWeather{snap: &weather.Snapshot{TempF: 70, Description: "clear sky"}}
	svc := newTestService(t, upstream, fetcher, storage.NewMemoryTokenStore())

	convo, err := svc.StartConversation(context.Background(), "ava")
	require.NoError(t, err)

	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "galleries?"})
	require.NoError(t, err)
	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "more?"})
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	// Second turn carries the established session token.
	assert.Equal(t, "tok-1", upstream.payload(1).ChatID)
}

func TestRunTurnSwallowsWeatherFailure(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-1", "Sure.")))
	}}
	fetcher := &fakeWeather{err: assert.AnError}
	svc := newTestService(t, upstream, fetcher, storage.NewMemoryTokenStore())

	convo, err := svc.StartConversation(context.Background(), "nora")
	require.NoError(t, err)

	res, err := svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "cocktails?"})
	require.NoError(t, err)
	assert.Nil(t, res.Weather)
}

func TestRunTurnInternalErrorIsCanned(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"internal_error","description":"something went wrong internally"}}`))
	}}
	svc := newTestService(t, upstream, nil, storage.NewMemoryTokenStore())

	convo, err := svc.StartConversation(context.Background(), "sam")
	require.NoError(t, err)

	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "brunch?"})
	require.Error(t, err)
	assert.Equal(t, "recommendation service internal error", err.Error())

	// Failed turn keeps the user message, adds no assistant reply.
	transcript, err := svc.Transcript(context.Background(), convo.ID)
	require.NoError(t, err)
	require.Len(t, transcript, 1)
	assert.Equal(t, "user", transcript[0].Role)

	lastErr, err := svc.LastError(context.Background(), convo.ID)
	require.NoError(t, err)
	assert.Equal(t, "recommendation service internal error", lastErr)
}

func TestStartConversationRestoresPersistedToken(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-2", "Welcome back.")))
	}}
	tokens := storage.NewMemoryTokenStore()
	require.NoError(t, tokens.Set("bella", "tok-restored"))
	svc := newTestService(t, upstream, nil, tokens)

	convo, err := svc.StartConversation(context.Background(), "bella")
	require.NoError(t, err)

	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "pasta?"})
	require.NoError(t, err)

	assert.Equal(t, "tok-restored", upstream.payload(0).ChatID)
}

func TestResetClearsConversation(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-1", "Here you go.")))
	}}
	tokens := storage.NewMemoryTokenStore()
	svc := newTestService(t, upstream, nil, tokens)

	convo, err := svc.StartConversation(context.Background(), "maxine")
	require.NoError(t, err)
	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "jazz bars?"})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(context.Background(), convo.ID))

	transcript, err := svc.Transcript(context.Background(), convo.ID)
	require.NoError(t, err)
	assert.Empty(t, transcript)

	saved, err := tokens.Get("maxine")
	require.NoError(t, err)
	assert.Empty(t, saved)

	// Next turn starts a fresh upstream session.
	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "again?"})
	require.NoError(t, err)
	assert.Empty(t, upstream.payload(upstream.count()-1).ChatID)
}

func TestRunTurnValidation(t *testing.T) {
	upstream := &chatUpstream{handler: func(w http.ResponseWriter, _ int) {
		w.Write([]byte(okChatBody("tok-1", "ok")))
	}}
	svc := newTestService(t, upstream, nil, storage.NewMemoryTokenStore())

	convo, err := svc.StartConversation(context.Background(), "willa")
	require.NoError(t, err)

	_, err = svc.RunTurn(context.Background(), convo.ID, TurnInput{Query: "   "})
	assert.ErrorIs(t, err, ErrQueryRequired)

	_, err = svc.RunTurn(context.Background(), "missing", TurnInput{Query: "hi"})
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = svc.StartConversation(context.Background(), "")
	assert.ErrorIs(t, err, ErrPersonaRequired)

	assert.Zero(t, upstream.count())
}
