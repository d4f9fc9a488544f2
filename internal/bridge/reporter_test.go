package bridge_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"AwarenessSimulator_SecurityProject/internal/bridge"
	"AwarenessSimulator_SecurityProject/internal/playback"
	"AwarenessSimulator_SecurityProject/internal/scenario"
	"AwarenessSimulator_SecurityProject/internal/storage"
	"AwarenessSimulator_SecurityProject/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type forwarderStub struct {
	err    error
	tokens []string
	scores []int
}

func (f *forwarderStub) ReportCompletion(_ context.Context, token string, _ int, score int) error {
	f.tokens = append(f.tokens, token)
	f.scores = append(f.scores, score)
	return f.err
}

type recorderStub struct {
	completed []scenario.Kind
	failed    []string
}

func (r *recorderStub) Completed(kind scenario.Kind) { r.completed = append(r.completed, kind) }
func (r *recorderStub) ReportFailed(target string)   { r.failed = append(r.failed, target) }

func TestReport_PersistsAndForwards(t *testing.T) {
	require.NoError(t, storage.InitDB(":memory:"))
	t.Cleanup(func() { storage.CloseDB() })

	lms := &forwarderStub{}
	rec := &recorderStub{}
	r := bridge.NewReporter(storage.SaveStepProgress, lms, rec)

	target := bridge.Target{Participant: "gildong", Token: "tok", StepID: 5, Kind: scenario.KindChat}
	r.Bridge(target)(100)

	p, err := storage.GetStepProgress(context.Background(), "gildong", 5)
	require.NoError(t, err)
	assert.Equal(t, 100, p.ScoreEarned)
	assert.Equal(t, []string{"tok"}, lms.tokens)
	assert.Equal(t, []int{100}, lms.scores)
	assert.Equal(t, []scenario.Kind{scenario.KindChat}, rec.completed)
	assert.Empty(t, rec.failed)
}

func TestReport_FailuresAreCounted(t *testing.T) {
	lms := &forwarderStub{err: errors.New("boom")}
	rec := &recorderStub{}
	save := func(context.Context, string, int, int) error { return errors.New("disk full") }
	r := bridge.NewReporter(save, lms, rec)

	r.Report(context.Background(), bridge.Target{Participant: "gildong", StepID: 2, Kind: scenario.KindEmail}, 50)

	assert.Equal(t, []string{"progress", "lms"}, rec.failed)
	assert.Equal(t, []int{50}, lms.scores)
}

func TestReport_CatalogScenarioOnlyCounts(t *testing.T) {
	lms := &forwarderStub{}
	rec := &recorderStub{}
	saved := false
	save := func(context.Context, string, int, int) error { saved = true; return nil }
	r := bridge.NewReporter(save, lms, rec)

	r.Report(context.Background(), bridge.Target{Participant: "gildong", Kind: scenario.KindChat}, 100)

	assert.False(t, saved)
	assert.Empty(t, lms.scores)
	assert.Len(t, rec.completed, 1)
}

func TestBridge_WiredToController(t *testing.T) {
	lms := &forwarderStub{}
	r := bridge.NewReporter(nil, lms, nil)
	clock := testhelpers.NewManualClock()

	script := scenario.Script{
		Kind: scenario.KindEmail,
		Email: &scenario.EmailDocument{
			Subject:     "Quarterly newsletter",
			SenderName:  "IT Team",
			SenderEmail: "it@company.example",
			BodyMarkup:  "<p>News</p>",
			IsPhishing:  scenario.Bool(false),
			Explanation: "Known internal sender.",
		},
	}
	ctrl, err := playback.New(script,
		playback.WithClock(clock),
		playback.OnComplete(r.Bridge(bridge.Target{Participant: "gildong", Token: "tok", StepID: 9, Kind: scenario.KindEmail})),
	)
	require.NoError(t, err)
	require.NoError(t, ctrl.Start())
	require.NoError(t, ctrl.Decide(playback.DecisionSafe))

	clock.Advance(2 * time.Second)
	assert.Empty(t, lms.scores)
	clock.Advance(time.Second)
	assert.Equal(t, []int{playback.EmailScore}, lms.scores)
}
