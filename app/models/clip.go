package models

import "time"

// Clip is a single voice-dictation recording segment. Clips live only in
// memory for the duration of a dictation session; they are never
// persisted. Data holds the recorded WAV payload as uploaded by the
// dictation page.
type Clip struct {
	ID        string        `json:"id"`
	MIME      string        `json:"mime"`
	Size      int           `json:"size"`
	Duration  time.Duration `json:"duration,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	Data      []byte        `json:"-"`
}
