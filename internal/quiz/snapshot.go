package quiz

// Snapshot is a point-in-time copy of every readout a presentation layer
// needs. It shares no memory with the Game it was taken from.
type Snapshot struct {
	SessionID string         `json:"sessionId,omitempty"`
	Phase     Phase          `json:"phase"`
	Tables    TableSelection `json:"tables"`
	Tier      Tier           `json:"tier"`
	Ready     bool           `json:"ready"`

	QuestionNumber int   `json:"questionNumber"`
	TotalQuestions int   `json:"totalQuestions"`
	Multiplier     int   `json:"multiplier,omitempty"`
	Multiplicand   int   `json:"multiplicand,omitempty"`
	Guesses        []int `json:"guesses,omitempty"`

	// Answered is set while a guess is being revealed. CorrectIndex is -1
	// until then so remote clients cannot read the answer early.
	Answered         bool `json:"answered"`
	GuessIndex       int  `json:"guessIndex"`
	CorrectIndex     int  `json:"correctIndex"`
	LastGuessCorrect bool `json:"lastGuessCorrect"`

	NumberCorrect int    `json:"numberCorrect"`
	NumberWrong   int    `json:"numberWrong"`
	Score         *Score `json:"score,omitempty"`
}

// Snapshot captures the current readouts.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:            g.phase,
		Tables:           g.selection,
		Tier:             g.tier,
		Ready:            g.IsGameReady(),
		QuestionNumber:   g.QuestionNumber(),
		TotalQuestions:   g.TotalQuestions(),
		Answered:         g.Answered(),
		GuessIndex:       g.guess,
		CorrectIndex:     -1,
		LastGuessCorrect: g.LastGuessCorrect(),
		NumberCorrect:    g.correct,
		NumberWrong:      g.wrong,
	}

	if active, ok := g.Current(); ok {
		s.Multiplier = active.Question.Multiplier
		s.Multiplicand = active.Question.Multiplicand
		s.Guesses = active.Guesses
		if s.Answered {
			s.CorrectIndex = active.CorrectIndex
		}
	}

	if g.phase == PhaseFinished {
		score := g.Results()
		s.Score = &score
	}
	return s
}

// Product returns the correct answer for the snapshot's question.
func (s Snapshot) Product() int {
	return s.Multiplier * s.Multiplicand
}
