package quiz

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/timestables/internal/sessionid"
)

// DefaultRevealDelay is how long a revealed answer stays on screen before
// the engine advances to the next question.
const DefaultRevealDelay = 1500 * time.Millisecond

// EngineOptions configures an Engine. Zero values fall back to defaults.
type EngineOptions struct {
	// RevealDelay is the pause between a guess and the automatic advance.
	// A negative value disables automatic advancing.
	RevealDelay time.Duration
	Clock       quartz.Clock
	Rand        Rand
	Logger      *log.Logger
	IDs         *sessionid.Generator
}

// Engine is the controller presentation layers talk to. It owns the single
// live Game, applies one intent at a time, publishes a StateChangedEvent
// after every change and schedules the automatic advance after a guess.
type Engine struct {
	publishMu   sync.Mutex // held from apply through publish; taken before mu
	mu          sync.Mutex
	game        *Game
	bus         *SimpleEventBus
	clock       quartz.Clock
	ids         *sessionid.Generator
	logger      *log.Logger
	revealDelay time.Duration

	sessionID  string
	pending    *quartz.Timer
	generation uint64 // bumped whenever a pending advance is invalidated
	closed     bool
}

// NewEngine creates an engine in the setup phase.
func NewEngine(opts EngineOptions) *Engine {
	if opts.RevealDelay == 0 {
		opts.RevealDelay = DefaultRevealDelay
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.IDs == nil {
		opts.IDs = sessionid.NewGenerator(nil)
	}
	if opts.Rand == nil {
		panic("quiz: EngineOptions.Rand is required")
	}

	return &Engine{
		game:        NewGame(opts.Rand),
		bus:         NewEventBus(),
		clock:       opts.Clock,
		ids:         opts.IDs,
		logger:      opts.Logger.WithPrefix("engine"),
		revealDelay: opts.RevealDelay,
	}
}

// Subscribe registers s for every event the engine publishes.
func (e *Engine) Subscribe(s EventSubscriber) { e.bus.Subscribe(s) }

// Unsubscribe removes s.
func (e *Engine) Unsubscribe(s EventSubscriber) { e.bus.Unsubscribe(s) }

// RevealDelay returns the configured reveal delay.
func (e *Engine) RevealDelay() time.Duration { return e.revealDelay }

// Snapshot returns the current readouts.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// IsGameReady reports whether Start would begin a game.
func (e *Engine) IsGameReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.IsGameReady()
}

// ToggleTable flips the table at index during setup.
func (e *Engine) ToggleTable(index int) bool {
	return e.apply("toggle_table", func() bool {
		return e.game.ToggleTable(index)
	})
}

// SetTier selects the question-count tier during setup.
func (e *Engine) SetTier(t Tier) bool {
	return e.apply("set_tier", func() bool {
		return e.game.SetTier(t)
	})
}

// SetDefaultTier changes the tier selected after every reset.
func (e *Engine) SetDefaultTier(t Tier) bool {
	return e.apply("set_default_tier", func() bool {
		return e.game.SetDefaultTier(t)
	})
}

// Start begins a new game if one is ready, invalidating any pending advance.
func (e *Engine) Start() bool {
	return e.apply("start", func() bool {
		if !e.game.IsGameReady() {
			return false
		}
		e.cancelPendingLocked()
		e.sessionID = e.ids.New()
		e.game.Start()
		e.logger.Info("Game started",
			"session", e.sessionID,
			"tables", e.game.Selection().Count(),
			"tier", e.game.Tier(),
			"questions", e.game.TotalQuestions())
		return true
	})
}

// SubmitGuess answers the active question and schedules the advance.
func (e *Engine) SubmitGuess(position int) bool {
	return e.apply("submit_guess", func() bool {
		if !e.game.SubmitGuess(position) {
			return false
		}
		e.logger.Debug("Guess submitted",
			"session", e.sessionID,
			"question", e.game.QuestionNumber(),
			"position", position,
			"correct", e.game.LastGuessCorrect())
		e.scheduleAdvanceLocked()
		return true
	})
}

// Advance moves to the next question immediately.
func (e *Engine) Advance() bool {
	return e.apply("advance", e.advanceLocked)
}

// Reset abandons the current game and returns to a blank setup.
func (e *Engine) Reset() bool {
	return e.apply("reset", func() bool {
		e.cancelPendingLocked()
		e.game.Reset()
		e.sessionID = ""
		return true
	})
}

// Close stops any pending advance. Further intents are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	e.closed = true
}

func (e *Engine) advanceLocked() bool {
	e.cancelPendingLocked()
	return e.game.Advance()
}

func (e *Engine) scheduleAdvanceLocked() {
	e.cancelPendingLocked()
	if e.revealDelay < 0 {
		return
	}
	generation := e.generation
	e.pending = e.clock.AfterFunc(e.revealDelay, func() {
		e.autoAdvance(generation)
	}, "engine", "reveal")
}

// autoAdvance runs on the clock's goroutine. A timer that fired after it was
// invalidated sees a newer generation and does nothing.
func (e *Engine) autoAdvance(generation uint64) {
	e.apply("auto_advance", func() bool {
		if generation != e.generation {
			e.logger.Debug("Discarding stale advance", "session", e.sessionID)
			return false
		}
		e.pending = nil
		return e.advanceLocked()
	})
}

func (e *Engine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.generation++
}

// apply runs fn under the engine lock and publishes the resulting state
// after the lock is released, so subscribers may read the engine. Events are
// published in the order intents were applied. Subscribers must not issue
// intents synchronously from OnEvent.
func (e *Engine) apply(intent string, fn func() bool) bool {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}

	before := e.game.Phase()
	if !fn() {
		e.mu.Unlock()
		e.logger.Debug("Ignored intent", "intent", intent, "phase", before)
		return false
	}

	snapshot := e.snapshotLocked()
	var finished *GameFinishedEvent
	if before == PhaseRunning && snapshot.Phase == PhaseFinished {
		event := NewGameFinishedEvent(e.sessionID, *snapshot.Score)
		finished = &event
		e.logger.Info("Game finished",
			"session", e.sessionID,
			"correct", snapshot.NumberCorrect,
			"wrong", snapshot.NumberWrong,
			"total", snapshot.TotalQuestions)
	}
	e.mu.Unlock()

	e.bus.Publish(NewStateChangedEvent(intent, snapshot))
	if finished != nil {
		e.bus.Publish(*finished)
	}
	return true
}

func (e *Engine) snapshotLocked() Snapshot {
	s := e.game.Snapshot()
	s.SessionID = e.sessionID
	return s
}
