/**
* Name: 			scenario.go
* Description: 		시뮬레이션 시나리오 스크립트 모델 (chat / email)
* Workflow: 		레슨 레코드 디코딩 -> 검증 -> 컨트롤러에 전달
 */

package scenario

// Kind selects the playback flow and the renderer for a script.
type Kind string

const (
	KindChat  Kind = "chat"
	KindEmail Kind = "email"
)

const (
	DefaultCorrectFeedback   = "Correct!"
	DefaultIncorrectFeedback = "You fell for the trick!"
)

// Script is the immutable scenario supplied by the hosting lesson.
type Script struct {
	Key              string
	Title            string
	Kind             Kind
	ParticipantLabel string
	Steps            []Step
	Email            *EmailDocument
}

// Step is exactly one of Message or Choice.
type Step struct {
	Message *Message
	Choice  *Choice
}

type Message struct {
	Text string
}

type Choice struct {
	Options []Option
}

type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback,omitempty"`
}

// EmailDocument is the single fixed document of an email scenario.
// IsPhishing is a pointer so a missing flag can be told apart from false.
type EmailDocument struct {
	Subject     string
	SenderName  string
	SenderEmail string
	BodyMarkup  string
	IsPhishing  *bool
	Explanation string
}

// MessageStep and ChoiceStep build steps for scripts assembled in code.
func MessageStep(text string) Step {
	return Step{Message: &Message{Text: text}}
}

func ChoiceStep(options ...Option) Step {
	return Step{Choice: &Choice{Options: options}}
}

// IsMessage reports whether the step self-advances after the typing delay.
func (s Step) IsMessage() bool {
	return s.Message != nil && s.Choice == nil
}

func (s Step) IsChoice() bool {
	return s.Choice != nil && s.Message == nil
}

func (s Script) StepCount() int {
	return len(s.Steps)
}

// ContactName falls back to a neutral label when the script has none.
func (s Script) ContactName() string {
	if s.ParticipantLabel == "" {
		return "Unknown"
	}
	return s.ParticipantLabel
}

// FeedbackText returns the option feedback or the default text for its correctness.
func (o Option) FeedbackText() string {
	if o.Feedback != "" {
		return o.Feedback
	}
	if o.IsCorrect {
		return DefaultCorrectFeedback
	}
	return DefaultIncorrectFeedback
}

// Phishing reports the document flag; callers must have validated the script.
func (d EmailDocument) Phishing() bool {
	return d.IsPhishing != nil && *d.IsPhishing
}

func Bool(v bool) *bool {
	return &v
}
