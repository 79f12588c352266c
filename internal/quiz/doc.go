// Package quiz implements the core of the times tables quiz: splitting a
// question budget across the selected tables, generating questions with
// plausible wrong answers, and the setup → running → finished state machine
// that scores a game.
//
// # Basic Usage
//
// Drive a game directly through Game:
//
//	g := quiz.NewGame(randutil.New(42))
//	g.ToggleTable(2) // the 3 times table
//	g.SetTier(quiz.TierTen)
//	g.Start()
//	q, _ := g.Current()
//	g.SubmitGuess(q.CorrectIndex)
//	g.Advance()
//
// Presentation layers should use Engine instead, which serialises intents,
// publishes a Snapshot after every change and schedules the automatic
// advance once a guess has been revealed.
//
// # Deterministic Testing
//
// Every shuffle, multiplier draw and answer placement goes through the Rand
// passed to NewGame or NewGenerator. Seed it with randutil.New for
// reproducible games.
package quiz
