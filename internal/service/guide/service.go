// Package guide orchestrates one chat turn end to end: context preamble,
// recommendation call, entity normalization, persona rewrite, and mention
// filtering, with per-conversation transcript state.
package guide

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streetwise-app/backend/internal/analysis/entities"
	"github.com/streetwise-app/backend/internal/analysis/mention"
	"github.com/streetwise-app/backend/internal/geo"
	"github.com/streetwise-app/backend/internal/model/chat"
	"github.com/streetwise-app/backend/internal/model/entity"
	"github.com/streetwise-app/backend/internal/model/persona"
	"github.com/streetwise-app/backend/internal/model/weather"
	"github.com/streetwise-app/backend/internal/service/recommend"
	"github.com/streetwise-app/backend/internal/service/rewrite"
	"github.com/streetwise-app/backend/internal/storage"
	"github.com/streetwise-app/backend/internal/telemetry"
)

// Fallback coordinates when the device provides none (lower Manhattan).
const (
	defaultLatitude  = 40.7128
	defaultLongitude = -74.006
	defaultLocale    = "en_US"
)

const internalErrorPhrase = "recommendation service internal error"

var (
	ErrPersonaRequired      = errors.New("persona id is required")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrQueryRequired        = errors.New("query is required")
)

// WeatherFetcher is the weather collaborator; nil means no weather context.
type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
}

// TurnInput is one user turn. Latitude/Longitude are nil when the device has
// no fix; City and RadiusMiles are optional.
type TurnInput struct {
	Query       string
	Latitude    *float64
	Longitude   *float64
	City        string
	RadiusMiles float64
}

// TurnResult carries the assistant reply for a successful turn.
type TurnResult struct {
	Message chat.Message      `json:"message"`
	Weather *weather.Snapshot `json:"weather,omitempty"`
	ChatID  string            `json:"chatId,omitempty"`
}

// TurnError is the user-visible failure for a turn; internal-error messages
// are collapsed to a canned phrase.
type TurnError struct {
	msg string
}

func (e *TurnError) Error() string { return e.msg }

// conversation is the per-conversation state owned by the orchestrator.
type conversation struct {
	mu       sync.Mutex
	info     chat.Conversation
	persona  persona.Persona
	session  *recommend.Session
	messages []chat.Message
	weather  *weather.Snapshot
	lastErr  string
}

// Service manages conversations and drives the turn pipeline.
type Service struct {
	personas     persona.Store
	recommendCfg recommend.Config
	weatherSvc   WeatherFetcher
	rewriter     *rewrite.Rewriter
	tokens       storage.TokenStore
	slots        *entities.SlotCache
	emitter      telemetry.Emitter
	now          func() time.Time

	mu     sync.RWMutex
	convos map[string]*conversation
}

// NewService wires the orchestrator. weatherSvc may be nil; tokens and
// emitter fall back to in-memory/no-op implementations.
func NewService(
	personas persona.Store,
	recommendCfg recommend.Config,
	weatherSvc WeatherFetcher,
	rewriter *rewrite.Rewriter,
	tokens storage.TokenStore,
	slots *entities.SlotCache,
	emitter telemetry.Emitter,
) *Service {
	if tokens == nil {
		tokens = storage.NewMemoryTokenStore()
	}
	if slots == nil {
		slots = entities.NewSlotCache()
	}
	if emitter == nil {
		emitter = telemetry.Noop{}
	}
	return &Service{
		personas:     personas,
		recommendCfg: recommendCfg,
		weatherSvc:   weatherSvc,
		rewriter:     rewriter,
		tokens:       tokens,
		slots:        slots,
		emitter:      emitter,
		now:          time.Now,
		convos:       make(map[string]*conversation),
	}
}

// StartConversation provisions a conversation bound to a persona and restores
// any persisted session token for continuity across restarts.
func (s *Service) StartConversation(_ context.Context, personaID string) (chat.Conversation, error) {
	if personaID == "" {
		return chat.Conversation{}, ErrPersonaRequired
	}
	p, ok := s.personas.FindByID(personaID)
	if !ok {
		return chat.Conversation{}, ErrPersonaRequired
	}

	session := recommend.NewSession(s.recommendCfg, s.emitter)
	if token, err := s.tokens.Get(p.ID); err != nil {
		log.Printf("[guide] failed to restore session token for %s: %v", p.ID, err)
	} else if token != "" {
		session.SetToken(token)
	}

	convo := &conversation{
		info: chat.Conversation{
			ID:        uuid.NewString(),
			PersonaID: p.ID,
			CreatedAt: s.now().UTC(),
		},
		persona:  p,
		session:  session,
		messages: make([]chat.Message, 0, 16),
	}

	s.mu.Lock()
	s.convos[convo.info.ID] = convo
	s.mu.Unlock()

	return convo.info, nil
}

func (s *Service) conversation(id string) (*conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	convo, ok := s.convos[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return convo, nil
}

// Transcript returns a copy of the conversation's messages in append order.
func (s *Service) Transcript(_ context.Context, conversationID string) ([]chat.Message, error) {
	convo, err := s.conversation(conversationID)
	if err != nil {
		return nil, err
	}
	convo.mu.Lock()
	defer convo.mu.Unlock()
	out := make([]chat.Message, len(convo.messages))
	copy(out, convo.messages)
	return out, nil
}

// LastError returns the user-visible error from the most recent failed turn.
func (s *Service) LastError(_ context.Context, conversationID string) (string, error) {
	convo, err := s.conversation(conversationID)
	if err != nil {
		return "", err
	}
	convo.mu.Lock()
	defer convo.mu.Unlock()
	return convo.lastErr, nil
}

// RunTurn executes one user turn. The user message is appended before any
// network call; on failure no assistant message is appended and the returned
// error carries the user-visible string.
func (s *Service) RunTurn(ctx context.Context, conversationID string, input TurnInput) (TurnResult, error) {
	if strings.TrimSpace(input.Query) == "" {
		return TurnResult{}, ErrQueryRequired
	}
	convo, err := s.conversation(conversationID)
	if err != nil {
		return TurnResult{}, err
	}

	// One in-flight turn per conversation.
	convo.mu.Lock()
	defer convo.mu.Unlock()

	convo.messages = append(convo.messages, chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleUser,
		Text:      input.Query,
		CreatedAt: s.now().UTC(),
	})
	convo.lastErr = ""

	lat, lon := defaultLatitude, defaultLongitude
	if input.Latitude != nil && input.Longitude != nil {
		lat, lon = *input.Latitude, *input.Longitude
	}
	userCtx := chat.UserContext{Locale: defaultLocale, Latitude: lat, Longitude: lon}

	// Weather is optional context: fetched once per conversation, failures
	// swallowed.
	if convo.weather == nil && s.weatherSvc != nil {
		if snap, err := s.weatherSvc.Fetch(ctx, lat, lon); err != nil {
			log.Printf("[guide] weather unavailable: %v", err)
		} else {
			convo.weather = snap
		}
	}

	city := input.City
	if city == "" {
		city = geo.NYCNeighborhood(lat, lon)
	}
	if city == "" {
		city = convo.session.ResolvePlaceName(ctx, lat, lon)
	}

	contextText := BuildContextString(convo.weather, userCtx, city, input.RadiusMiles, s.now())
	outbound := joinNonEmpty([]string{contextText, convo.persona.Preface, input.Query}, "\n\n")

	s.emitter.Track(telemetry.EventMessageSent, map[string]any{
		"personaId":    convo.persona.ID,
		"messageCount": len(convo.messages),
	})

	res, err := convo.session.SendChat(ctx, outbound, userCtx)
	if err != nil {
		convo.lastErr = userFacing(err)
		return TurnResult{}, &TurnError{msg: convo.lastErr}
	}

	rawText := res.Response.Text
	if rawText == "" {
		rawText = "No response text returned."
	}
	normalized := entities.Normalize(res.Entities, s.slots)

	if token := convo.session.Token(); token != "" {
		if err := s.tokens.Set(convo.persona.ID, token); err != nil {
			log.Printf("[guide] failed to persist session token for %s: %v", convo.persona.ID, err)
		}
	}

	finalText := rawText
	if res.Response.Text != "" {
		finalText = s.rewriter.Rewrite(ctx, convo.persona.ID, outbound, res.Response.Text, entity.AnyRawReservable(res.Entities))
		s.emitter.Track(telemetry.EventResponseReceived, map[string]any{
			"personaId":   convo.persona.ID,
			"entityCount": len(normalized),
			"textLength":  len(finalText),
		})
	}

	finalEntities := mention.Filter(finalText, normalized)

	message := chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleAssistant,
		Text:      finalText,
		Entities:  finalEntities,
		CreatedAt: s.now().UTC(),
	}
	convo.messages = append(convo.messages, message)

	return TurnResult{
		Message: message,
		Weather: convo.weather,
		ChatID:  convo.session.Token(),
	}, nil
}

// Reset clears the transcript, error, and session token, and deletes the
// persisted token for the persona.
func (s *Service) Reset(_ context.Context, conversationID string) error {
	convo, err := s.conversation(conversationID)
	if err != nil {
		return err
	}
	convo.mu.Lock()
	defer convo.mu.Unlock()

	convo.messages = convo.messages[:0]
	convo.lastErr = ""
	convo.weather = nil
	convo.session.Reset()
	if err := s.tokens.Delete(convo.persona.ID); err != nil {
		log.Printf("[guide] failed to delete persisted token for %s: %v", convo.persona.ID, err)
	}
	return nil
}

// userFacing maps a pipeline error to the string shown to the user.
func userFacing(err error) string {
	msg := err.Error()
	if strings.Contains(strings.ToLower(msg), "internal") {
		return internalErrorPhrase
	}
	return msg
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
