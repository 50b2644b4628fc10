// Package engine implements the timed typing session state machine.
package engine

import (
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/sprint/internal/logging"
)

const defaultTickInterval = time.Second

// Picker supplies target sentences.
type Picker interface {
	Pick() string
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	// Clock drives the countdown. Defaults to RealClock.
	Clock Clock
	// OnTick receives the snapshot after each countdown tick. It runs
	// outside the engine lock.
	OnTick func(Snapshot)
	Logger *slog.Logger

	tickInterval time.Duration
}

// Snapshot is the read-only view of a session.
type Snapshot struct {
	// Session increments on every reset.
	Session       uint64
	Phase         Phase
	Target        string
	Typed         string
	TimeRemaining int
	StartedAt     time.Time
	Metrics
}

// Started reports whether the session left the idle phase.
func (s Snapshot) Started() bool {
	return s.Phase != PhaseIdle
}

// Finished reports whether the target was typed exactly.
func (s Snapshot) Finished() bool {
	return s.Phase == PhaseCompleted && s.Typed == s.Target
}

// Engine owns a single typing session and its countdown.
type Engine struct {
	mu     sync.Mutex
	picker Picker
	clock  Clock
	onTick func(Snapshot)
	log    *slog.Logger
	every  time.Duration

	session   uint64
	phase     Phase
	target    string
	targetLen int
	typed     string
	startedAt time.Time
	remaining int

	timer      Timer
	generation uint64
}

// New returns an idle engine with a sentence drawn from picker.
func New(picker Picker, opts Options) *Engine {
	e := &Engine{
		picker: picker,
		clock:  opts.Clock,
		onTick: opts.OnTick,
		log:    opts.Logger,
		every:  opts.tickInterval,
	}
	if e.every <= 0 {
		e.every = defaultTickInterval
	}
	if e.clock == nil {
		e.clock = RealClock()
	}
	if e.log == nil {
		e.log = logging.Discard()
	}
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
	return e
}

// SubmitInput replaces the typed text with candidate. Input is ignored
// once the session is completed or when candidate is longer than the
// target.
func (e *Engine) SubmitInput(candidate string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase == PhaseCompleted {
		return e.snapshotLocked()
	}
	if utf8.RuneCountInString(candidate) > e.targetLen {
		e.log.Debug("input rejected", "reason", "too long", "session", e.session)
		return e.snapshotLocked()
	}
	if e.phase == PhaseIdle && candidate == "" {
		return e.snapshotLocked()
	}

	e.typed = candidate
	justStarted := false
	if e.phase == PhaseIdle {
		e.phase = PhaseActive
		e.startedAt = e.clock.Now()
		justStarted = true
		e.log.Debug("session started", "session", e.session)
	}
	if candidate == e.target {
		e.completeLocked("finished")
	} else if justStarted {
		e.armLocked()
	}
	return e.snapshotLocked()
}

// Tick advances the countdown by one second. It is a no-op unless the
// session is active.
func (e *Engine) Tick() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickLocked()
	return e.snapshotLocked()
}

// Reset discards the session and starts a new idle one.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	return e.snapshotLocked()
}

// Snapshot returns the current state and derived metrics.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close stops the countdown.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disarmLocked()
}

func (e *Engine) resetLocked() {
	e.disarmLocked()
	e.session++
	e.phase = PhaseIdle
	e.target = e.picker.Pick()
	e.targetLen = utf8.RuneCountInString(e.target)
	e.typed = ""
	e.startedAt = time.Time{}
	e.remaining = SessionSeconds
	e.log.Debug("session reset", "session", e.session, "target_len", e.targetLen)
}

func (e *Engine) tickLocked() bool {
	if e.phase != PhaseActive {
		return false
	}
	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.completeLocked("time up")
	}
	return true
}

func (e *Engine) completeLocked(reason string) {
	e.disarmLocked()
	e.phase = PhaseCompleted
	e.log.Info("session completed",
		"session", e.session,
		"reason", reason,
		"time_remaining", e.remaining,
	)
}

// armLocked replaces any previous timer. The callback is bound to the
// current generation so it goes inert after the next disarm.
func (e *Engine) armLocked() {
	e.disarmLocked()
	gen := e.generation
	e.timer = e.clock.Every(e.every, func() {
		e.timerFired(gen)
	})
}

func (e *Engine) disarmLocked() {
	e.generation++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) timerFired(gen uint64) {
	e.mu.Lock()
	if gen != e.generation || !e.tickLocked() {
		e.mu.Unlock()
		return
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if e.onTick != nil {
		e.onTick(snap)
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Session:       e.session,
		Phase:         e.phase,
		Target:        e.target,
		Typed:         e.typed,
		TimeRemaining: e.remaining,
		StartedAt:     e.startedAt,
		Metrics:       ComputeMetrics(e.target, e.typed, e.remaining, e.phase != PhaseIdle),
	}
}
