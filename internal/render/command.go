package render

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ActionDecide  = "decide"
	ActionRestart = "restart"
	ActionRetry   = "retry"
)

var ErrUnknownAction = errors.New("unknown action")

// Command is an inbound user event from a renderer.
type Command struct {
	Action string `json:"action"`
	Option string `json:"option,omitempty"`
}

// Player is the part of the playback controller a renderer may drive.
type Player interface {
	Decide(optionID string) error
	Restart() error
	Retry() error
}

func ParseCommand(raw []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}

// Dispatch forwards the command to the player. Scoring and transitions stay in the player.
func Dispatch(p Player, cmd Command) error {
	switch cmd.Action {
	case ActionDecide:
		return p.Decide(cmd.Option)
	case ActionRestart:
		return p.Restart()
	case ActionRetry:
		return p.Retry()
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
}
