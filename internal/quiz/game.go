package quiz

import "fmt"

// Phase is the top-level state of a game.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "setup":
		*p = PhaseSetup
	case "running":
		*p = PhaseRunning
	case "finished":
		*p = PhaseFinished
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// ActiveQuestion is the question currently on screen, with the correct
// product placed among the wrong guesses.
type ActiveQuestion struct {
	Question     Question
	Guesses      []int
	CorrectIndex int
}

// Game is the quiz state machine. All mutable state for the setup, running
// and finished phases lives here so every transition happens in one place.
// Intents that are not legal in the current state are ignored and report
// false. Game is not safe for concurrent use; see Engine.
type Game struct {
	rng       Rand
	generator *Generator

	phase       Phase
	selection   TableSelection
	tier        Tier
	defaultTier Tier

	questions []Question
	index     int
	active    ActiveQuestion
	guess     int // -1 until the active question is answered
	answers   []Answer
	correct   int
	wrong     int
}

// NewGame returns a game in the setup phase.
func NewGame(rng Rand) *Game {
	g := &Game{
		rng:         rng,
		generator:   NewGenerator(rng),
		defaultTier: DefaultTier,
	}
	g.Reset()
	return g
}

// ToggleTable flips the selection of the table at index (0-based).
func (g *Game) ToggleTable(index int) bool {
	if g.phase != PhaseSetup {
		return false
	}
	return g.selection.Toggle(index)
}

// SetTier chooses how many questions the next game asks.
func (g *Game) SetTier(t Tier) bool {
	if g.phase != PhaseSetup || !t.Valid() || t == g.tier {
		return false
	}
	g.tier = t
	return true
}

// SetDefaultTier changes the tier a reset returns to. During setup it also
// becomes the selected tier.
func (g *Game) SetDefaultTier(t Tier) bool {
	if !t.Valid() {
		return false
	}
	g.defaultTier = t
	if g.phase == PhaseSetup {
		g.tier = t
	}
	return true
}

// IsGameReady reports whether a game can be started.
func (g *Game) IsGameReady() bool {
	return g.phase == PhaseSetup && g.selection.Any()
}

// Start generates the questions for the current selection and activates the
// first one.
func (g *Game) Start() bool {
	if !g.IsGameReady() {
		return false
	}

	tables := g.selection.Selected()
	g.rng.Shuffle(len(tables), func(i, j int) {
		tables[i], tables[j] = tables[j], tables[i]
	})

	g.questions = g.generator.Generate(tables, g.tier)
	g.answers = make([]Answer, 0, len(g.questions))
	g.correct = 0
	g.wrong = 0
	g.index = -1
	g.phase = PhaseRunning
	g.Advance()
	return true
}

// Advance moves to the next question, or to the finished phase after the
// last one. An unanswered question is skipped without scoring.
func (g *Game) Advance() bool {
	if g.phase != PhaseRunning {
		return false
	}

	g.index++
	g.guess = -1
	if g.index >= len(g.questions) {
		g.index = len(g.questions)
		g.active = ActiveQuestion{}
		g.phase = PhaseFinished
		return true
	}

	q := g.questions[g.index]
	guesses, correctIndex := PlaceCorrect(g.rng, q.wrong, q.Product())
	g.active = ActiveQuestion{
		Question:     q,
		Guesses:      guesses,
		CorrectIndex: correctIndex,
	}
	return true
}

// SubmitGuess scores position as the answer to the active question. Only the
// first guess per question counts.
func (g *Game) SubmitGuess(position int) bool {
	if g.phase != PhaseRunning || g.guess >= 0 {
		return false
	}
	if position < 0 || position >= len(g.active.Guesses) {
		return false
	}

	g.guess = position
	correct := position == g.active.CorrectIndex
	if correct {
		g.correct++
	} else {
		g.wrong++
	}
	g.answers = append(g.answers, Answer{
		Question: g.active.Question,
		Guess:    g.active.Guesses[position],
		Correct:  correct,
	})
	return true
}

// Reset discards any game in progress and returns to a blank setup.
func (g *Game) Reset() {
	g.phase = PhaseSetup
	g.selection = TableSelection{}
	g.tier = g.defaultTier
	g.questions = nil
	g.index = -1
	g.active = ActiveQuestion{}
	g.guess = -1
	g.answers = nil
	g.correct = 0
	g.wrong = 0
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Selection returns a copy of the table selection.
func (g *Game) Selection() TableSelection { return g.selection }

// Tier returns the selected tier.
func (g *Game) Tier() Tier { return g.tier }

// Current returns the active question while a game is running.
func (g *Game) Current() (ActiveQuestion, bool) {
	if g.phase != PhaseRunning || g.index < 0 || g.index >= len(g.questions) {
		return ActiveQuestion{}, false
	}
	active := g.active
	active.Guesses = append([]int(nil), g.active.Guesses...)
	return active, true
}

// QuestionNumber returns the 1-based number of the active question, or 0
// when no question is active.
func (g *Game) QuestionNumber() int {
	if g.phase != PhaseRunning {
		return 0
	}
	return g.index + 1
}

// TotalQuestions returns the length of the current game.
func (g *Game) TotalQuestions() int { return len(g.questions) }

// NumberCorrect returns the number of correct guesses so far.
func (g *Game) NumberCorrect() int { return g.correct }

// NumberWrong returns the number of wrong guesses so far.
func (g *Game) NumberWrong() int { return g.wrong }

// Answered reports whether the active question has been guessed.
func (g *Game) Answered() bool {
	return g.phase == PhaseRunning && g.guess >= 0
}

// GuessIndex returns the position guessed for the active question, or -1.
func (g *Game) GuessIndex() int { return g.guess }

// LastGuessCorrect reports whether the most recent guess was correct.
func (g *Game) LastGuessCorrect() bool {
	if len(g.answers) == 0 {
		return false
	}
	return g.answers[len(g.answers)-1].Correct
}

// Answers returns a copy of every answer given this game.
func (g *Game) Answers() []Answer {
	return append([]Answer(nil), g.answers...)
}

// Results tallies the game so far.
func (g *Game) Results() Score {
	return newScore(len(g.questions), g.answers)
}
