package models

import "time"

// Attempt is one finished (or abandoned) playback session of a participant.
type Attempt struct {
	ID             int       `json:"id"`
	Participant    string    `json:"participant"`
	ScenarioKey    string    `json:"scenario"`
	StepID         int       `json:"step_id,omitempty"`
	Kind           string    `json:"kind"`
	Result         string    `json:"result"`
	Score          int       `json:"score"`
	Attempts       int       `json:"attempts"`
	TranscriptPath string    `json:"transcript_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Attempt results besides playback pass/fail.
const (
	ResultAbandoned = "abandoned"
)
