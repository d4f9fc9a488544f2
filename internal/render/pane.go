/**
* Name: 			pane.go
* Description: 		재생 상태(Snapshot)를 화면 모델로 변환하는 렌더 어댑터
* Workflow: 		Snapshot + Script -> ChatPane / EmailPane -> JSON 프레임 또는 HTML 조각
 */

package render

import (
	"html/template"
	"strconv"

	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/microcosm-cc/bluemonday"
)

const (
	PaneChat        = "chat"
	PaneEmail       = "email"
	PaneUnavailable = "unavailable"

	UnavailableMessage = "This content is currently unavailable."
)

// Pane is the whole visual tree sent to the browser for one state.
type Pane struct {
	Kind    string         `json:"kind"`
	Phase   playback.Phase `json:"phase,omitempty"`
	Chat    *ChatPane      `json:"chat,omitempty"`
	Email   *EmailPane     `json:"email,omitempty"`
	Message string         `json:"message,omitempty"`
}

type Bubble struct {
	Sender playback.Speaker `json:"sender"`
	Text   string           `json:"text"`
}

type Button struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Action   string `json:"action"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Overlay shows the result of a decision. Action is the retry affordance.
type Overlay struct {
	Success bool    `json:"success"`
	Title   string  `json:"title"`
	Text    string  `json:"text,omitempty"`
	Score   int     `json:"score,omitempty"`
	Action  *Button `json:"action,omitempty"`
}

type ChatPane struct {
	ContactName string   `json:"contact_name"`
	Status      string   `json:"status"`
	Messages    []Bubble `json:"messages"`
	Typing      bool     `json:"typing"`
	Choices     []Button `json:"choices,omitempty"`
	Overlay     *Overlay `json:"overlay,omitempty"`
}

type EmailPane struct {
	Subject       string        `json:"subject"`
	SenderName    string        `json:"sender_name"`
	SenderEmail   string        `json:"sender_email"`
	AvatarInitial string        `json:"avatar_initial"`
	Body          template.HTML `json:"body"`
	Controls      []Button      `json:"controls"`
	Overlay       *Overlay      `json:"overlay,omitempty"`
}

// Renderer holds the sanitizing policies; it keeps no playback state.
type Renderer struct {
	body  *bluemonday.Policy
	plain *bluemonday.Policy
}

func NewRenderer() *Renderer {
	body := bluemonday.UGCPolicy()
	body.RequireNoFollowOnLinks(true)
	body.AddTargetBlankToFullyQualifiedLinks(true)
	return &Renderer{body: body, plain: bluemonday.StrictPolicy()}
}

// Render selects the adapter by script kind.
func (r *Renderer) Render(snap playback.Snapshot, script scenario.Script) Pane {
	switch script.Kind {
	case scenario.KindChat:
		chat := r.Chat(snap, script)
		return Pane{Kind: PaneChat, Phase: snap.Phase, Chat: &chat}
	case scenario.KindEmail:
		email := r.Email(snap, script)
		return Pane{Kind: PaneEmail, Phase: snap.Phase, Email: &email}
	}
	return Unavailable()
}

// Unavailable is the neutral fallback for scenarios that failed validation.
func Unavailable() Pane {
	return Pane{Kind: PaneUnavailable, Message: UnavailableMessage}
}

func retryButton() *Button {
	return &Button{ID: ActionRetry, Label: "Try again", Action: ActionRetry}
}

func (r *Renderer) Chat(snap playback.Snapshot, script scenario.Script) ChatPane {
	pane := ChatPane{
		ContactName: script.ContactName(),
		Status:      "online",
		Messages:    make([]Bubble, 0, len(snap.Transcript)),
		Typing:      snap.Typing,
	}
	if snap.Typing {
		pane.Status = "typing..."
	}
	for _, e := range snap.Transcript {
		pane.Messages = append(pane.Messages, Bubble{Sender: e.Speaker, Text: e.Text})
	}
	if snap.Phase == playback.PhaseAwaitingDecision {
		for i, opt := range snap.Options {
			pane.Choices = append(pane.Choices, Button{ID: strconv.Itoa(i), Label: opt.Text, Action: ActionDecide})
		}
	}

	switch snap.Phase {
	case playback.PhaseFailed:
		pane.Overlay = &Overlay{Title: "Mistake", Action: retryButton()}
		if snap.Outcome != nil {
			pane.Overlay.Text = snap.Outcome.Feedback
		}
	case playback.PhaseCompleted:
		pane.Overlay = &Overlay{Success: true, Title: "Well done!", Text: snap.LastFeedback}
		if snap.Outcome != nil {
			pane.Overlay.Score = snap.Outcome.Score
		}
	}
	return pane
}

func (r *Renderer) Email(snap playback.Snapshot, script scenario.Script) EmailPane {
	doc := script.Email
	pane := EmailPane{
		Subject:       doc.Subject,
		SenderName:    doc.SenderName,
		SenderEmail:   doc.SenderEmail,
		AvatarInitial: "A",
		Body:          template.HTML(r.body.Sanitize(doc.BodyMarkup)),
	}
	if initial := []rune(doc.SenderName); len(initial) > 0 {
		pane.AvatarInitial = string(initial[0])
	}

	// 결과가 나온 뒤에는 판정 버튼 비활성화
	disabled := snap.Outcome != nil || snap.Phase != playback.PhaseAwaitingDecision
	pane.Controls = []Button{
		{ID: playback.DecisionPhishing, Label: "This is phishing!", Action: ActionDecide, Disabled: disabled},
		{ID: playback.DecisionSafe, Label: "Looks safe", Action: ActionDecide, Disabled: disabled},
	}

	if out := snap.Outcome; out != nil {
		if out.Result == playback.ResultPass {
			pane.Overlay = &Overlay{Success: true, Title: "Correct!", Text: out.Feedback, Score: out.Score}
		} else {
			pane.Overlay = &Overlay{Title: "Mistake", Text: out.Feedback, Action: retryButton()}
		}
	}
	return pane
}
