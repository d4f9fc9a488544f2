package scenario_test

import (
	"testing"
	"testing/fstest"

	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEmail() scenario.Script {
	return scenario.Script{
		Kind: scenario.KindEmail,
		Email: &scenario.EmailDocument{
			Subject:     "Password update",
			SenderName:  "IT Support",
			SenderEmail: "support@company-security.com",
			BodyMarkup:  "<p>Click <a href=\"#\">here</a></p>",
			IsPhishing:  scenario.Bool(true),
			Explanation: "Look at the sender domain.",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		script  func() scenario.Script
		wantErr bool
	}{
		{
			name: "chat with message and choice",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindChat, Steps: []scenario.Step{
					scenario.MessageStep("Hi"),
					scenario.ChoiceStep(scenario.Option{Text: "OK", IsCorrect: true}),
				}}
			},
		},
		{
			name: "chat without steps",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindChat}
			},
			wantErr: true,
		},
		{
			name: "choice without options",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindChat, Steps: []scenario.Step{scenario.ChoiceStep()}}
			},
			wantErr: true,
		},
		{
			name: "step with both variants",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindChat, Steps: []scenario.Step{{
					Message: &scenario.Message{Text: "Hi"},
					Choice:  &scenario.Choice{Options: []scenario.Option{{Text: "OK"}}},
				}}}
			},
			wantErr: true,
		},
		{
			name: "blank message",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindChat, Steps: []scenario.Step{scenario.MessageStep("  ")}}
			},
			wantErr: true,
		},
		{
			name:   "complete email",
			script: validEmail,
		},
		{
			name: "email with blank subject",
			script: func() scenario.Script {
				s := validEmail()
				s.Email.Subject = " "
				return s
			},
			wantErr: true,
		},
		{
			name: "email without phishing flag",
			script: func() scenario.Script {
				s := validEmail()
				s.Email.IsPhishing = nil
				return s
			},
			wantErr: true,
		},
		{
			name: "email without document",
			script: func() scenario.Script {
				return scenario.Script{Kind: scenario.KindEmail}
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			script: func() scenario.Script {
				return scenario.Script{Kind: "sms", Steps: []scenario.Step{scenario.MessageStep("Hi")}}
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scenario.Validate(tt.script())
			if tt.wantErr {
				require.ErrorIs(t, err, scenario.ErrInvalidScenario)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDecode_Chat(t *testing.T) {
	raw := []byte(`{
		"contact_name": "Boss",
		"steps": [
			{"type": "message", "text": "Hi"},
			{"type": "choice", "options": [
				{"text": "OK", "is_correct": true},
				{"text": "Sure thing", "is_correct": false, "feedback": "Never do that"}
			]},
			{"type": "message", "text": "Great, bye"}
		]
	}`)

	s, err := scenario.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, scenario.KindChat, s.Kind)
	assert.Equal(t, "Boss", s.ContactName())
	require.Equal(t, 3, s.StepCount())
	assert.True(t, s.Steps[0].IsMessage())
	require.True(t, s.Steps[1].IsChoice())
	assert.Equal(t, scenario.DefaultCorrectFeedback, s.Steps[1].Choice.Options[0].FeedbackText())
	assert.Equal(t, "Never do that", s.Steps[1].Choice.Options[1].FeedbackText())
}

func TestDecode_Email(t *testing.T) {
	raw := []byte(`{
		"subject": "Urgent: password update",
		"sender_name": "IT Support",
		"sender_email": "support@company-security.com",
		"body_html": "<p>Update <a href='http://evil'>here</a></p>",
		"is_phishing": false,
		"explanation": "Check the domain"
	}`)

	s, err := scenario.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, scenario.KindEmail, s.Kind)
	require.NotNil(t, s.Email)
	assert.False(t, s.Email.Phishing())
	assert.Equal(t, "IT Support", s.ContactName())
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed json":               `{"steps": [`,
		"empty steps":                  `{"type": "chat", "steps": []}`,
		"unknown step type":            `{"steps": [{"type": "video", "text": "x"}]}`,
		"missing flag":                 `{"type": "email", "subject": "a", "sender_name": "b", "sender_email": "c", "body_html": "d"}`,
		"empty record":                 `{}`,
		"non-simulation type":          `{"type": "quiz", "steps": [{"type": "message", "text": "hi"}]}`,
		"non-simulation scenario_type": `{"scenario_type": "video", "subject": "a", "body_html": "b"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Decode([]byte(raw))
			require.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestDecodeWithKind(t *testing.T) {
	raw := []byte(`{"steps": [{"type": "message", "text": "Hi"}]}`)
	_, err := scenario.DecodeWithKind(raw, scenario.KindEmail)
	require.ErrorIs(t, err, scenario.ErrInvalidScenario, "chat content under an email step must not validate")

	s, err := scenario.DecodeWithKind(raw, scenario.KindChat)
	require.NoError(t, err)
	assert.Equal(t, 1, s.StepCount())
}

func TestKindForStepType(t *testing.T) {
	k, ok := scenario.KindForStepType("simulation_email")
	require.True(t, ok)
	assert.Equal(t, scenario.KindEmail, k)

	k, ok = scenario.KindForStepType("Simulation_Chat")
	require.True(t, ok)
	assert.Equal(t, scenario.KindChat, k)

	_, ok = scenario.KindForStepType("quiz")
	assert.False(t, ok)
}

func TestBuiltinRegistry(t *testing.T) {
	r, err := scenario.NewBuiltinRegistry()
	require.NoError(t, err)

	list := r.List()
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Key, list[i].Key, "list is sorted by key")
	}
	for _, s := range list {
		assert.NoError(t, scenario.Validate(s), s.Key)
	}

	s, ok := r.Get("delivery_notification")
	require.True(t, ok)
	assert.Equal(t, scenario.KindEmail, s.Kind)
	assert.True(t, s.Email.Phishing())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_LoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"scenarios/greeting.yml": {Data: []byte("type: chat\nsteps:\n  - type: message\n    text: hello\n")},
		"scenarios/readme.txt":   {Data: []byte("ignored")},
	}
	r := scenario.NewRegistry()
	require.NoError(t, r.LoadFromFS(fsys, "scenarios"))

	s, ok := r.Get("greeting")
	require.True(t, ok, "key defaults to the file name")
	assert.Equal(t, "hello", s.Steps[0].Message.Text)
	assert.Len(t, r.List(), 1)

	fsys["scenarios/broken.yaml"] = &fstest.MapFile{Data: []byte("type: chat\nsteps: []\n")}
	require.ErrorIs(t, r.LoadFromFS(fsys, "scenarios"), scenario.ErrInvalidScenario)
}
