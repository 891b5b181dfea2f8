package weather

// Snapshot is the per-turn weather context. Fetched once per conversation and
// cached in memory; absent entirely when the weather service is unavailable.
type Snapshot struct {
	TempF       float64 `json:"tempF"`
	Description string  `json:"description"`
	Icon        string  `json:"icon,omitempty"`
	City        string  `json:"city,omitempty"`
}
