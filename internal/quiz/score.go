package quiz

import "sort"

// Answer records the player's response to one question.
type Answer struct {
	Question Question
	Guess    int
	Correct  bool
}

// TableScore tallies answers for one table.
type TableScore struct {
	Table   int `json:"table"` // 0-based
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Answered returns the number of answered questions for the table.
func (ts TableScore) Answered() int {
	return ts.Correct + ts.Wrong
}

// Score summarises a game.
type Score struct {
	Correct int          `json:"correct"`
	Wrong   int          `json:"wrong"`
	Total   int          `json:"total"`
	Tables  []TableScore `json:"tables"`
}

// Answered returns the number of questions that received a guess.
func (s Score) Answered() int {
	return s.Correct + s.Wrong
}

// Accuracy returns the percentage of answered questions that were correct.
func (s Score) Accuracy() float64 {
	if s.Answered() == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Answered())
}

// newScore tallies answers against a game of total questions.
func newScore(total int, answers []Answer) Score {
	score := Score{Total: total}

	byTable := make(map[int]*TableScore)
	for _, a := range answers {
		table := a.Question.Table()
		ts, ok := byTable[table]
		if !ok {
			ts = &TableScore{Table: table}
			byTable[table] = ts
		}
		if a.Correct {
			score.Correct++
			ts.Correct++
		} else {
			score.Wrong++
			ts.Wrong++
		}
	}

	for _, ts := range byTable {
		score.Tables = append(score.Tables, *ts)
	}
	sort.Slice(score.Tables, func(i, j int) bool {
		return score.Tables[i].Table < score.Tables[j].Table
	})
	return score
}
