package models

import "time"

// StepProgress mirrors the per-step progress of the lesson service (score_earned in XP).
type StepProgress struct {
	Participant string    `json:"participant"`
	StepID      int       `json:"step_id"`
	IsCompleted bool      `json:"is_completed"`
	ScoreEarned int       `json:"score_earned"`
	CompletedAt time.Time `json:"completed_at"`
}
