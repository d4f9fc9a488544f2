package scenario

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidScenario = errors.New("invalid scenario")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}

// Validate checks the script invariants. It has no side effects and must pass before
// a controller is constructed.
func Validate(s Script) error {
	switch s.Kind {
	case KindChat:
		return validateChat(s)
	case KindEmail:
		return validateEmail(s)
	default:
		return invalid("unknown kind %q", s.Kind)
	}
}

func validateChat(s Script) error {
	if len(s.Steps) == 0 {
		return invalid("chat scenario has no steps")
	}
	for i, step := range s.Steps {
		switch {
		case step.IsMessage():
			if strings.TrimSpace(step.Message.Text) == "" {
				return invalid("step %d: message text is empty", i)
			}
		case step.IsChoice():
			if len(step.Choice.Options) == 0 {
				return invalid("step %d: choice has no options", i)
			}
			for j, opt := range step.Choice.Options {
				if strings.TrimSpace(opt.Text) == "" {
					return invalid("step %d option %d: text is empty", i, j)
				}
			}
		default:
			return invalid("step %d: must be either a message or a choice", i)
		}
	}
	return nil
}

func validateEmail(s Script) error {
	doc := s.Email
	if doc == nil {
		return invalid("email scenario has no document")
	}
	// " "만 입력된 필드도 비어있는 것으로 취급
	fields := []struct {
		name  string
		value string
	}{
		{"subject", doc.Subject},
		{"sender_name", doc.SenderName},
		{"sender_email", doc.SenderEmail},
		{"body_html", doc.BodyMarkup},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return invalid("email field %s is required", f.name)
		}
	}
	if doc.IsPhishing == nil {
		return invalid("email field is_phishing is required")
	}
	return nil
}
