package persona_test

import (
	"testing"

	"github.com/streetwise-app/backend/internal/model/persona"
)

func TestSeedHasTenPersonas(t *testing.T) {
	seed := persona.Seed()
	if len(seed) != 10 {
		t.Fatalf("expected 10 personas, got %d", len(seed))
	}
	for _, p := range seed {
		if p.Preface == "" || p.Rewrite == "" {
			t.Fatalf("persona %s missing prompt framing", p.ID)
		}
		if p.TTS.VoiceID == "" {
			t.Fatalf("persona %s missing voice id", p.ID)
		}
	}
}

func TestResolveFallsBackToFirstEntry(t *testing.T) {
	store := persona.NewMemoryStore(persona.Seed())

	got := store.Resolve("no-such-guide")
	if got.ID != "ava" {
		t.Fatalf("expected fallback to first catalog entry, got %s", got.ID)
	}

	pete := store.Resolve("pete")
	if pete.Name != "Pizza Pete" {
		t.Fatalf("unexpected persona: %s", pete.Name)
	}
}
