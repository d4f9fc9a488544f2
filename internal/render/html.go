package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"AwarenessSimulator_SecurityProject/internal/playback"
)

const overlayTemplate = `{{define "overlay"}}{{with .}}
<div class="result-overlay {{if .Success}}success{{else}}fail{{end}}">
  <h3>{{.Title}}</h3>
  {{if .Text}}<p>{{.Text}}</p>{{end}}
  {{if .Score}}<span class="score">+{{.Score}} XP</span>{{end}}
  {{with .Action}}<button class="continue-btn" data-action="{{.Action}}">{{.Label}}</button>{{end}}
</div>{{end}}{{end}}`

const chatTemplate = `<div class="messenger-container">
<div class="messenger-header">
  <div class="avatar">?</div>
  <div class="contact-info"><h3>{{.ContactName}}</h3><span class="status">{{.Status}}</span></div>
</div>
<div class="messenger-body">
{{range .Messages}}  <div class="message {{.Sender}}">{{.Text}}</div>
{{end}}{{if .Typing}}  <div class="message counterpart typing">...</div>
{{end}}</div>
<div class="messenger-footer">
{{if .Choices}}  <div class="options-grid">
{{range .Choices}}    <button class="option-btn" data-action="{{.Action}}" data-option="{{.ID}}">{{.Label}}</button>
{{end}}  </div>
{{end}}</div>
{{template "overlay" .Overlay}}
</div>`

const emailTemplate = `<div class="email-client-container">
<div class="email-toolbar">
{{range .Controls}}  <button class="toolbar-btn {{.ID}}-btn" data-action="{{.Action}}" data-option="{{.ID}}"{{if .Disabled}} disabled{{end}}>{{.Label}}</button>
{{end}}</div>
<div class="email-content">
  <div class="email-header">
    <div class="email-subject">{{.Subject}}</div>
    <div class="sender-info">
      <div class="sender-avatar">{{.AvatarInitial}}</div>
      <div class="sender-details"><span class="sender-name">{{.SenderName}}</span> <span class="sender-email">&lt;{{.SenderEmail}}&gt;</span></div>
    </div>
  </div>
  <div class="email-body">{{.Body}}</div>
</div>
{{template "overlay" .Overlay}}
</div>`

const unavailableTemplate = `<div class="scenario-unavailable"><p>{{.Message}}</p></div>`

var (
	chatHTML        = template.Must(template.Must(template.New("chat").Parse(overlayTemplate)).Parse(chatTemplate))
	emailHTML       = template.Must(template.Must(template.New("email").Parse(overlayTemplate)).Parse(emailTemplate))
	unavailableHTML = template.Must(template.New("unavailable").Parse(unavailableTemplate))
)

// HTML renders the pane as a fragment for server rendered hosts.
func HTML(p Pane) (template.HTML, error) {
	var buf bytes.Buffer
	var err error
	switch {
	case p.Chat != nil:
		err = chatHTML.Execute(&buf, p.Chat)
	case p.Email != nil:
		err = emailHTML.Execute(&buf, p.Email)
	default:
		err = unavailableHTML.Execute(&buf, p)
	}
	if err != nil {
		return "", fmt.Errorf("render %s pane: %w", p.Kind, err)
	}
	return template.HTML(buf.String()), nil
}

// Text renders the pane for a terminal.
func (r *Renderer) Text(p Pane) string {
	var b strings.Builder
	switch {
	case p.Chat != nil:
		c := p.Chat
		fmt.Fprintf(&b, "== %s (%s) ==\n", c.ContactName, c.Status)
		for _, m := range c.Messages {
			who := c.ContactName
			if m.Sender == playback.SpeakerParticipant {
				who = "you"
			}
			fmt.Fprintf(&b, "[%s] %s\n", who, m.Text)
		}
		if c.Typing {
			b.WriteString("...\n")
		}
		for _, choice := range c.Choices {
			fmt.Fprintf(&b, "  %s) %s\n", choice.ID, choice.Label)
		}
		writeOverlay(&b, c.Overlay)
	case p.Email != nil:
		e := p.Email
		fmt.Fprintf(&b, "Subject: %s\nFrom: %s <%s>\n\n", e.Subject, e.SenderName, e.SenderEmail)
		b.WriteString(strings.TrimSpace(html.UnescapeString(r.plain.Sanitize(string(e.Body)))))
		b.WriteString("\n\n")
		for _, ctl := range e.Controls {
			if !ctl.Disabled {
				fmt.Fprintf(&b, "  %s) %s\n", ctl.ID, ctl.Label)
			}
		}
		writeOverlay(&b, e.Overlay)
	default:
		b.WriteString(p.Message)
		b.WriteString("\n")
	}
	return b.String()
}

func writeOverlay(b *strings.Builder, o *Overlay) {
	if o == nil {
		return
	}
	fmt.Fprintf(b, "\n*** %s ***\n", o.Title)
	if o.Text != "" {
		fmt.Fprintf(b, "%s\n", o.Text)
	}
	if o.Score > 0 {
		fmt.Fprintf(b, "+%d XP\n", o.Score)
	}
	if o.Action != nil {
		fmt.Fprintf(b, "  %s) %s\n", o.Action.ID, o.Action.Label)
	}
}
