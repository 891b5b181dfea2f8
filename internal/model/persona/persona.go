package persona

// ColorPair holds the primary/accent pair driving the persona card gradient.
type ColorPair struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// TTSParams carries the synthesized-voice tuning for a persona. Audio
// synthesis itself lives in a collaborator; the backend only serves the
// parameters.
type TTSParams struct {
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
	Style           float64 `json:"style"`
}

// Persona captures a stylized local-guide character: presentation attributes
// for the frontend plus the prompt framing used by the chat pipeline.
type Persona struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Accent  string    `json:"accent"`
	Tone    string    `json:"tone"`
	Colors  ColorPair `json:"colors"`
	TTS     TTSParams `json:"tts"`
	Preface string    `json:"preface"`
	Rewrite string    `json:"rewrite"`
}
