package playback

import "AwarenessSimulator_SecurityProject/internal/scenario"

type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhasePresenting       Phase = "presenting"
	PhaseAwaitingDecision Phase = "awaiting_decision"
	PhaseResolving        Phase = "resolving"
	PhaseCompleted        Phase = "completed"
	PhaseFailed           Phase = "failed"
)

// Terminal reports whether the phase ends an attempt.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

type Speaker string

const (
	SpeakerCounterpart Speaker = "counterpart"
	SpeakerParticipant Speaker = "participant"
)

type Entry struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
)

type Outcome struct {
	Result   Result `json:"result"`
	Feedback string `json:"feedback,omitempty"`
	Score    int    `json:"score"`
}

// Email decisions.
const (
	DecisionPhishing = "phishing"
	DecisionSafe     = "safe"
)

// Scores awarded on completion.
const (
	ChatScore  = 100
	EmailScore = 50
)

// Snapshot is a copy of the controller state handed to renderers and subscribers.
// Mutating it has no effect on the controller.
type Snapshot struct {
	Kind       scenario.Kind     `json:"kind"`
	Phase      Phase             `json:"phase"`
	Transcript []Entry           `json:"transcript"`
	Cursor     int               `json:"cursor"`
	Answered   bool              `json:"answered"`
	Typing     bool              `json:"typing"`
	Options    []scenario.Option `json:"-"`
	Outcome    *Outcome          `json:"outcome,omitempty"`
	// LastFeedback is the feedback of the last correctly answered chat choice.
	LastFeedback string `json:"last_feedback,omitempty"`
	Attempt      int    `json:"attempt"`
}
