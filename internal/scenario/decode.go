package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// record is the scenario_data shape stored on lesson steps (and in catalog files).
type record struct {
	Key          string       `json:"key" yaml:"key"`
	Title        string       `json:"title" yaml:"title"`
	Type         string       `json:"type" yaml:"type"`
	ScenarioType string       `json:"scenario_type" yaml:"scenario_type"`
	ContactName  string       `json:"contact_name" yaml:"contact_name"`
	Steps        []stepRecord `json:"steps" yaml:"steps"`

	Subject     string `json:"subject" yaml:"subject"`
	SenderName  string `json:"sender_name" yaml:"sender_name"`
	SenderEmail string `json:"sender_email" yaml:"sender_email"`
	BodyHTML    string `json:"body_html" yaml:"body_html"`
	IsPhishing  *bool  `json:"is_phishing" yaml:"is_phishing"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type stepRecord struct {
	Type    string         `json:"type" yaml:"type"`
	Text    string         `json:"text" yaml:"text"`
	Options []optionRecord `json:"options" yaml:"options"`
}

type optionRecord struct {
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"is_correct" yaml:"is_correct"`
	Feedback  string `json:"feedback" yaml:"feedback"`
}

// KindForStepType maps lesson step types (simulation_chat, simulation_email) and bare
// kind names to a Kind. ok is false for non-simulation steps.
func KindForStepType(stepType string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(stepType)) {
	case "chat", "simulation_chat":
		return KindChat, true
	case "email", "simulation_email":
		return KindEmail, true
	}
	return "", false
}

// Decode parses scenario JSON as stored on a lesson record and validates it.
func Decode(raw []byte) (Script, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return r.script()
}

// DecodeWithKind is Decode for records whose kind comes from the enclosing lesson step.
func DecodeWithKind(raw []byte, kind Kind) (Script, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	r.Type = string(kind)
	return r.script()
}

// DecodeYAML parses a catalog file.
func DecodeYAML(raw []byte) (Script, error) {
	var r record
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return r.script()
}

func (r record) kind() Kind {
	for _, t := range []string{r.Type, r.ScenarioType} {
		if k, ok := KindForStepType(t); ok {
			return k
		}
	}
	// 알 수 없는 타입은 Validate에서 거부
	if r.Type != "" {
		return Kind(r.Type)
	}
	if r.ScenarioType != "" {
		return Kind(r.ScenarioType)
	}
	// 타입이 없으면 내용으로 추정
	if len(r.Steps) > 0 {
		return KindChat
	}
	if r.Subject != "" || r.BodyHTML != "" {
		return KindEmail
	}
	return ""
}

func (r record) script() (Script, error) {
	s := Script{
		Key:              r.Key,
		Title:            r.Title,
		Kind:             r.kind(),
		ParticipantLabel: r.ContactName,
	}

	switch s.Kind {
	case KindChat:
		steps := make([]Step, 0, len(r.Steps))
		for i, sr := range r.Steps {
			step, err := sr.step()
			if err != nil {
				return Script{}, invalid("step %d: %v", i, err)
			}
			steps = append(steps, step)
		}
		s.Steps = steps
	case KindEmail:
		s.ParticipantLabel = r.SenderName
		s.Email = &EmailDocument{
			Subject:     r.Subject,
			SenderName:  r.SenderName,
			SenderEmail: r.SenderEmail,
			BodyMarkup:  r.BodyHTML,
			IsPhishing:  r.IsPhishing,
			Explanation: r.Explanation,
		}
	}

	if err := Validate(s); err != nil {
		return Script{}, err
	}
	return s, nil
}

func (sr stepRecord) step() (Step, error) {
	switch sr.Type {
	case "message":
		return MessageStep(sr.Text), nil
	case "choice":
		options := make([]Option, 0, len(sr.Options))
		for _, o := range sr.Options {
			options = append(options, Option{Text: o.Text, IsCorrect: o.IsCorrect, Feedback: o.Feedback})
		}
		return ChoiceStep(options...), nil
	default:
		return Step{}, fmt.Errorf("unknown step type %q", sr.Type)
	}
}
