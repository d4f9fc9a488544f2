package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"AwarenessSimulator_SecurityProject/internal/auth"
	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/render"
	"AwarenessSimulator_SecurityProject/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChat = `
title: Test chat
type: chat
contact_name: Alex
steps:
  - type: message
    text: Hi
  - type: choice
    options:
      - text: Call back
        is_correct: true
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { scenarioDir = "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(validChat), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"scenario_type": "email", "subject": "Hi"}`), 0644))

	out, err := execute(t, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good+" (chat, 2 steps)")

	out, err = execute(t, "", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad)
	assert.ErrorContains(t, err, "1 of 2")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(validChat), 0644))

	out, err := execute(t, "", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "delivery_notification")
	assert.Contains(t, out, "extra")
	assert.Contains(t, out, "Test chat")
}

func TestPlay_UnknownInput(t *testing.T) {
	out, err := execute(t, "x\nq\n", "play", "delivery_notification", "--unit", "1ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Subject:")
	assert.Contains(t, out, "error: "+playback.ErrUnknownOption.Error())
}

func TestPlay_NotFound(t *testing.T) {
	_, err := execute(t, "", "play", "nope")
	assert.ErrorContains(t, err, "scenario not found")
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "cli-secret")
	out, err := execute(t, "", "token", "--user", "gildong", "--ttl", "1h")
	require.NoError(t, err)

	auth.SetSigningKey("cli-secret")
	claims, err := auth.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "gildong", claims.Participant())
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		line string
		kind scenario.Kind
		want render.Command
	}{
		{line: "1", kind: scenario.KindChat, want: render.Command{Action: render.ActionDecide, Option: "1"}},
		{line: "p", kind: scenario.KindEmail, want: render.Command{Action: render.ActionDecide, Option: playback.DecisionPhishing}},
		{line: "S", kind: scenario.KindEmail, want: render.Command{Action: render.ActionDecide, Option: playback.DecisionSafe}},
		{line: "p", kind: scenario.KindChat, want: render.Command{Action: render.ActionDecide, Option: "p"}},
		{line: "r", kind: scenario.KindChat, want: render.Command{Action: render.ActionRestart}},
		{line: "t", kind: scenario.KindEmail, want: render.Command{Action: render.ActionRetry}},
		{line: "retry", kind: scenario.KindChat, want: render.Command{Action: render.ActionRetry}},
		{line: "Restart", kind: scenario.KindEmail, want: render.Command{Action: render.ActionRestart}},
		{line: "PHISHING", kind: scenario.KindEmail, want: render.Command{Action: render.ActionDecide, Option: playback.DecisionPhishing}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseInput(tt.line, tt.kind), tt.line)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPlay_RetryThenComplete(t *testing.T) {
	in, stdin := io.Pipe()
	out := &lockedBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetIn(in)
	rootCmd.SetArgs([]string{"play", "delivery_notification", "--unit", "1ms"})

	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	// 화면에 표시된 키를 그대로 입력
	send := func(line string) {
		_, err := io.WriteString(stdin, line+"\n")
		require.NoError(t, err)
	}
	send(playback.DecisionSafe)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), render.ActionRetry+") Try again")
	}, 2*time.Second, 5*time.Millisecond)

	send(render.ActionRetry)
	send(playback.DecisionPhishing)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "*** completed, score 50 ***")
	}, 2*time.Second, 5*time.Millisecond)

	send("q")
	require.NoError(t, <-done)
	require.NoError(t, stdin.Close())
	assert.NotContains(t, out.String(), "error:")
}
