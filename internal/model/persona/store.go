package persona

// Store exposes persona retrieval for the chat pipeline and HTTP handlers.
type Store interface {
	List() []Persona
	FindByID(id string) (Persona, bool)
	// Resolve behaves like FindByID but falls back to the first catalog
	// entry for unknown ids, so callers always get a usable persona.
	Resolve(id string) Persona
}

// MemoryStore implements Store with an in-memory slice loaded at startup.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// List returns the predefined persona list.
func (s *MemoryStore) List() []Persona {
	return append([]Persona(nil), s.items...)
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Resolve returns the persona for id, or the first catalog entry when the id
// is unknown.
func (s *MemoryStore) Resolve(id string) Persona {
	if p, ok := s.FindByID(id); ok {
		return p
	}
	return s.items[0]
}
