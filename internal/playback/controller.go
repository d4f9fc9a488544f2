/**
* Name: 			controller.go
* Description: 		시나리오 재생 상태 머신 (chat / email 공용)
* Workflow: 		Start -> (메시지 타이핑 지연) -> 선택 대기 -> Decide -> 판정 지연 -> 진행 또는 종료
 */

package playback

import (
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"AwarenessSimulator_SecurityProject/internal/scenario"
)

var (
	ErrNotAwaitingDecision = errors.New("playback: not awaiting a decision")
	ErrUnknownOption       = errors.New("playback: unknown option")
	ErrAlreadyStarted      = errors.New("playback: already started")
	ErrNoFailure           = errors.New("playback: no failed decision to retry")
	ErrClosed              = errors.New("playback: controller closed")
)

// Delays in time units.
const (
	TypingDelay     = 1.5
	ResolveDelay    = 0.5
	CompletionDelay = 3.0
)

// Observer receives state machine events, e.g. for metrics.
type Observer interface {
	Transition(kind scenario.Kind, from, to Phase)
	StaleTimer(kind scenario.Kind)
}

type nopObserver struct{}

func (nopObserver) Transition(scenario.Kind, Phase, Phase) {}
func (nopObserver) StaleTimer(scenario.Kind)               {}

type Option func(*Controller)

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithTimeUnit sets the length of one delay unit (default one second).
func WithTimeUnit(unit time.Duration) Option {
	return func(c *Controller) { c.unit = unit }
}

func WithObserver(observer Observer) Option {
	return func(c *Controller) { c.observer = observer }
}

// OnComplete registers the completion bridge. It is called at most once per controller,
// only on a successful outcome, and never with the controller lock held.
func OnComplete(fn func(score int)) Option {
	return func(c *Controller) { c.onComplete = fn }
}

// Controller drives one playback session. All state is owned by the controller; readers
// get copies through State and Subscribe.
type Controller struct {
	script     scenario.Script
	clock      Clock
	logger     *slog.Logger
	unit       time.Duration
	observer   Observer
	onComplete func(score int)

	mu           sync.Mutex
	phase        Phase
	transcript   []Entry
	cursor       int
	answered     bool
	typing       bool
	outcome      *Outcome
	lastFeedback string
	attempt      int

	// generation invalidates every callback scheduled before it was bumped.
	generation uint64
	pending    Timer

	completionDue   *int
	completionFired bool

	subscribers    map[int]chan Snapshot
	nextSubscriber int
	closed         bool
}

// New validates the script and returns an idle controller.
func New(script scenario.Script, opts ...Option) (*Controller, error) {
	if err := scenario.Validate(script); err != nil {
		return nil, err
	}
	c := &Controller{
		script:      script,
		clock:       RealClock(),
		logger:      slog.Default(),
		unit:        time.Second,
		observer:    nopObserver{},
		phase:       PhaseIdle,
		subscribers: make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) Script() scenario.Script {
	return c.script
}

func (c *Controller) Start() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.begin()
	c.publish()
	due := c.takeCompletion()
	c.mu.Unlock()

	c.report(due)
	return nil
}

// Decide feeds a participant decision. Chat options are addressed by their index,
// email decisions are DecisionPhishing or DecisionSafe. Outside AwaitingDecision the
// call is a no-op returning ErrNotAwaitingDecision.
func (c *Controller) Decide(optionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.phase != PhaseAwaitingDecision {
		return ErrNotAwaitingDecision
	}

	var err error
	switch c.script.Kind {
	case scenario.KindChat:
		err = c.decideChat(optionID)
	case scenario.KindEmail:
		err = c.decideEmail(optionID)
	}
	if err != nil {
		return err
	}
	c.publish()
	return nil
}

// Restart cancels any pending timer, clears transcript, cursor and outcome and plays
// the script again from the beginning. It never reports a completion.
func (c *Controller) Restart() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.reset()
	c.begin()
	c.publish()
	due := c.takeCompletion()
	c.mu.Unlock()

	c.report(due)
	return nil
}

// Retry offers the "try again" affordance after a failed decision. Email scenarios
// return to the decision without touching the document, chat scenarios restart.
func (c *Controller) Retry() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.phase != PhaseFailed {
		c.mu.Unlock()
		return ErrNoFailure
	}
	if c.script.Kind == scenario.KindChat {
		c.mu.Unlock()
		return c.Restart()
	}

	c.outcome = nil
	c.answered = false
	c.attempt++
	c.setPhase(PhaseAwaitingDecision)
	c.publish()
	c.mu.Unlock()
	return nil
}

// Close unmounts the controller: the pending timer is cancelled and subscriber
// channels are closed. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.cancelPending()
	c.generation++
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
	return nil
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe returns a channel that always holds the latest snapshot. Slow readers
// skip intermediate states. The channel is closed by cancel or Close.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSubscriber
	c.nextSubscriber++
	c.subscribers[id] = ch
	ch <- c.snapshot()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subscribers[id]; ok {
			close(sub)
			delete(c.subscribers, id)
		}
	}
}

// begin enters the first state of an attempt. Caller holds mu.
func (c *Controller) begin() {
	c.attempt++
	switch c.script.Kind {
	case scenario.KindChat:
		c.present()
	case scenario.KindEmail:
		c.setPhase(PhaseAwaitingDecision)
	}
}

func (c *Controller) reset() {
	c.cancelPending()
	c.generation++
	c.transcript = nil
	c.cursor = 0
	c.answered = false
	c.typing = false
	c.outcome = nil
	c.lastFeedback = ""
	c.completionDue = nil
	c.setPhase(PhaseIdle)
}

// present shows the step under the cursor. Message steps self-advance after the
// typing delay; choice steps wait for Decide.
func (c *Controller) present() {
	if c.cursor >= len(c.script.Steps) {
		c.typing = false
		c.outcome = &Outcome{Result: ResultPass, Score: ChatScore}
		c.setPhase(PhaseCompleted)
		c.queueCompletion(ChatScore)
		return
	}

	step := c.script.Steps[c.cursor]
	if step.IsMessage() {
		c.setPhase(PhasePresenting)
		c.typing = true
		c.schedule(TypingDelay, c.deliverMessage)
		return
	}
	c.typing = false
	c.setPhase(PhaseAwaitingDecision)
}

func (c *Controller) deliverMessage() {
	step := c.script.Steps[c.cursor]
	c.typing = false
	c.transcript = append(c.transcript, Entry{Speaker: SpeakerCounterpart, Text: step.Message.Text})
	c.cursor++
	c.present()
}

func (c *Controller) decideChat(optionID string) error {
	options := c.script.Steps[c.cursor].Choice.Options
	idx, err := strconv.Atoi(optionID)
	if err != nil || idx < 0 || idx >= len(options) {
		return ErrUnknownOption
	}
	option := options[idx]

	// 사용자의 선택은 즉시 대화에 추가
	c.transcript = append(c.transcript, Entry{Speaker: SpeakerParticipant, Text: option.Text})
	c.setPhase(PhaseResolving)
	c.schedule(ResolveDelay, func() { c.resolveChoice(option) })
	return nil
}

func (c *Controller) resolveChoice(option scenario.Option) {
	if option.IsCorrect {
		c.outcome = nil
		c.lastFeedback = option.FeedbackText()
		c.cursor++
		c.present()
		return
	}
	c.outcome = &Outcome{Result: ResultFail, Feedback: option.FeedbackText()}
	c.setPhase(PhaseFailed)
}

func (c *Controller) decideEmail(decision string) error {
	if decision != DecisionPhishing && decision != DecisionSafe {
		return ErrUnknownOption
	}
	doc := c.script.Email
	success := (decision == DecisionPhishing) == doc.Phishing()

	c.answered = true
	c.setPhase(PhaseResolving)
	if !success {
		c.outcome = &Outcome{Result: ResultFail, Feedback: doc.Explanation}
		c.setPhase(PhaseFailed)
		return nil
	}
	c.outcome = &Outcome{Result: ResultPass, Feedback: doc.Explanation, Score: EmailScore}
	c.setPhase(PhaseCompleted)
	// 설명을 읽을 시간을 준 뒤 완료 보고
	c.schedule(CompletionDelay, func() { c.queueCompletion(EmailScore) })
	return nil
}

func (c *Controller) setPhase(to Phase) {
	from := c.phase
	if from == to {
		return
	}
	c.phase = to
	c.observer.Transition(c.script.Kind, from, to)
	c.logger.Debug("playback transition",
		slog.String("kind", string(c.script.Kind)),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
}

// schedule replaces the pending timer. The callback only runs if no restart, close or
// newer schedule happened in between.
func (c *Controller) schedule(units float64, fn func()) {
	c.cancelPending()
	c.generation++
	gen := c.generation
	c.pending = c.clock.AfterFunc(time.Duration(units*float64(c.unit)), func() {
		c.fire(gen, fn)
	})
}

func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) fire(gen uint64, fn func()) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		current := c.generation
		c.mu.Unlock()
		c.logger.Debug("stale playback timer ignored",
			slog.String("kind", string(c.script.Kind)),
			slog.Uint64("generation", gen),
			slog.Uint64("current", current))
		c.observer.StaleTimer(c.script.Kind)
		return
	}
	c.pending = nil
	fn()
	c.publish()
	due := c.takeCompletion()
	c.mu.Unlock()

	c.report(due)
}

func (c *Controller) queueCompletion(score int) {
	if c.completionFired {
		return
	}
	c.completionDue = &score
}

func (c *Controller) takeCompletion() *int {
	if c.completionDue == nil || c.completionFired {
		return nil
	}
	due := c.completionDue
	c.completionDue = nil
	c.completionFired = true
	return due
}

func (c *Controller) report(due *int) {
	if due == nil || c.onComplete == nil {
		return
	}
	c.onComplete(*due)
}

func (c *Controller) publish() {
	if len(c.subscribers) == 0 {
		return
	}
	snap := c.snapshot()
	for _, ch := range c.subscribers {
		// 최신 상태만 유지
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		Kind:         c.script.Kind,
		Phase:        c.phase,
		Transcript:   append([]Entry(nil), c.transcript...),
		Cursor:       c.cursor,
		Answered:     c.answered,
		Typing:       c.typing,
		LastFeedback: c.lastFeedback,
		Attempt:      c.attempt,
	}
	if c.outcome != nil {
		outcome := *c.outcome
		snap.Outcome = &outcome
	}
	if c.script.Kind == scenario.KindChat && c.phase == PhaseAwaitingDecision {
		snap.Options = append([]scenario.Option(nil), c.script.Steps[c.cursor].Choice.Options...)
	}
	return snap
}
