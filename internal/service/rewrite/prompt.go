package rewrite

import (
	"strings"

	"github.com/streetwise-app/backend/internal/model/persona"
)

const reservationHint = "Mention that at least one spot is reservable with one tap."

const standingInstruction = "Rewrite in character, keep business names and factual details intact. " +
	"Keep it short (2-3 sentences). Wrap business names in **double asterisks** for bolding."

// BuildPrompt assembles the full rewrite prompt: persona instruction, an
// optional reservation hint, the original query and raw response, and the
// standing formatting instruction.
func BuildPrompt(p persona.Persona, originalQuery, rawText string, hasReservableSpot bool) string {
	hint := ""
	if hasReservableSpot {
		hint = reservationHint
	}
	return strings.Join([]string{
		p.Rewrite,
		hint,
		"",
		"Original query: " + originalQuery,
		"Raw response: " + rawText,
		"",
		standingInstruction,
	}, "\n")
}
