package submission

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/correctme/correctme/internal/logging"
)

// DefaultHistorySize is how many resolved submissions are remembered
const DefaultHistorySize = 20

// Corrector performs one correction request.
// An empty result with a nil error means the service had nothing to return.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// CorrectorFunc adapts a function to the Corrector interface
type CorrectorFunc func(ctx context.Context, text string) (string, error)

// Correct calls f(ctx, text)
func (f CorrectorFunc) Correct(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Submission is a request started by Begin and resolved by Complete
type Submission struct {
	ID        string
	Text      string // raw input, untrimmed
	Status    string // status line drawn for this submission
	StartedAt time.Time
}

// Entry is a resolved submission kept in the session history
type Entry struct {
	ID        string
	Input     string
	Output    string
	State     State
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Snapshot is a consistent copy of the controller fields
type Snapshot struct {
	Input     string
	Corrected string
	Status    string
	Loading   bool
	State     State
}

// OutputVisible reports whether the output box should be shown
func (s Snapshot) OutputVisible() bool {
	return !s.Loading && s.Corrected != ""
}

// Controller owns the state of one correction session.
// All methods are safe for concurrent use.
type Controller struct {
	corrector Corrector

	mu        sync.Mutex
	input     string
	corrected string
	status    string
	loading   bool
	failed    bool

	rng         *rand.Rand
	now         func() time.Time
	history     []Entry
	historySize int
}

// Option configures a Controller
type Option func(*Controller)

// WithRand sets the random source used to draw status messages
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// WithHistorySize sets how many resolved submissions are kept (0 disables history)
func WithHistorySize(n int) Option {
	return func(c *Controller) {
		if n < 0 {
			n = 0
		}
		c.historySize = n
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller that sends submissions to corrector
func NewController(corrector Corrector, opts ...Option) *Controller {
	c := &Controller{
		corrector:   corrector,
		now:         time.Now,
		historySize: DefaultHistorySize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		seed := uint64(c.now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>32|1))
	}

	return c
}

// Begin starts a submission of text.
// Whitespace-only text is ignored: Begin returns false and nothing changes.
// Otherwise the corrected text is cleared, the controller is InFlight and a
// status line has been drawn by the time Begin returns.
//
// Begin does not refuse to start while another submission is in flight.
func (c *Controller) Begin(text string) (*Submission, bool) {
	if isBlank(text) {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.corrected = ""
	c.failed = false
	c.loading = true
	c.status = StatusMessages[c.rng.IntN(len(StatusMessages))]

	return &Submission{
		ID:        uuid.NewString(),
		Text:      text,
		Status:    c.status,
		StartedAt: c.now(),
	}, true
}

// Complete issues the single request for sub and records the outcome.
// Errors are never returned: a failure shows ErrorMarker as the output.
// The loading flag is cleared on every path, including a panicking corrector.
func (c *Controller) Complete(ctx context.Context, sub *Submission) (state State) {
	var (
		output  string
		callErr error
	)

	defer func() {
		if r := recover(); r != nil {
			callErr = fmt.Errorf("corrector panicked: %v", r)
			output = ErrorMarker
		}
		state = c.resolve(sub, output, callErr)
	}()

	corrected, err := c.corrector.Correct(ctx, sub.Text)
	switch {
	case err != nil:
		callErr = err
		output = ErrorMarker
	case corrected == "":
		output = FallbackText
	default:
		output = corrected
	}

	return state
}

func (c *Controller) resolve(sub *Submission, output string, callErr error) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	c.corrected = output
	c.failed = callErr != nil
	state := deriveState(c.loading, c.failed, c.corrected)

	elapsed := c.now().Sub(sub.StartedAt)
	c.record(Entry{
		ID:        sub.ID,
		Input:     sub.Text,
		Output:    output,
		State:     state,
		Err:       callErr,
		StartedAt: sub.StartedAt,
		Duration:  elapsed,
	})

	logging.LogSubmission(sub.ID, state.String(), len(sub.Text), elapsed, callErr)

	return state
}

// Submit runs Begin and Complete. ok is false when text was ignored.
func (c *Controller) Submit(ctx context.Context, text string) (state State, ok bool) {
	sub, ok := c.Begin(text)
	if !ok {
		return c.State(), false
	}
	return c.Complete(ctx, sub), true
}

// SubmitInput submits the current input text
func (c *Controller) SubmitInput(ctx context.Context) (State, bool) {
	return c.Submit(ctx, c.Input())
}

// Clear empties the input and the corrected text
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = ""
	c.corrected = ""
	c.failed = false
}

// isBlank reports whether text has nothing but whitespace.
// The byte order mark counts as whitespace.
func isBlank(text string) bool {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) == ""
}

// SetInput replaces the input text
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = text
}

// AppendSpeechResult appends a transcript to the input, separated by a space.
// It is accepted in every state, including InFlight.
func (c *Controller) AppendSpeechResult(transcript string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = c.input + " " + transcript
}

// Input returns the current input text
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.input
}

// State returns the current derived state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return deriveState(c.loading, c.failed, c.corrected)
}

// Snapshot returns a consistent copy of all fields
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Input:     c.input,
		Corrected: c.corrected,
		Status:    c.status,
		Loading:   c.loading,
		State:     deriveState(c.loading, c.failed, c.corrected),
	}
}
