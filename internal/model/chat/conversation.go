package chat

import "time"

// Conversation binds an anonymous frontend session to a persona. The upstream
// session token lives in the recommend client, not here.
type Conversation struct {
	ID        string    `json:"id"`
	PersonaID string    `json:"personaId"`
	CreatedAt time.Time `json:"createdAt"`
}
