package chat

import (
	"time"

	"github.com/streetwise-app/backend/internal/model/entity"
)

// Roles a transcript message can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation transcript. Assistant messages carry
// the entities mentioned in their text.
type Message struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Text      string          `json:"text"`
	Entities  []entity.Record `json:"entities,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UserContext is the per-request location context sent upstream.
type UserContext struct {
	Locale    string  `json:"locale"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
