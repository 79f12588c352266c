package quiz

import (
	"encoding/json"
	"fmt"
)

// Question is a single multiplication question. It is a value type; the
// wrong-answer pool is copied in and out so a Question is never mutated
// after generation.
type Question struct {
	Multiplier   int
	Multiplicand int
	wrong        []int
}

// NewQuestion builds a question from its factors and wrong-answer pool.
func NewQuestion(multiplier, multiplicand int, wrong []int) Question {
	return Question{
		Multiplier:   multiplier,
		Multiplicand: multiplicand,
		wrong:        append([]int(nil), wrong...),
	}
}

// Product returns the correct answer.
func (q Question) Product() int {
	return q.Multiplier * q.Multiplicand
}

// Table returns the 0-based index of the table this question belongs to.
func (q Question) Table() int {
	return q.Multiplicand - 1
}

// WrongGuesses returns a copy of the wrong-answer pool.
func (q Question) WrongGuesses() []int {
	return append([]int(nil), q.wrong...)
}

func (q Question) String() string {
	return fmt.Sprintf("%d × %d", q.Multiplier, q.Multiplicand)
}

type questionJSON struct {
	Multiplier   int   `json:"multiplier"`
	Multiplicand int   `json:"multiplicand"`
	Product      int   `json:"product"`
	WrongGuesses []int `json:"wrongGuesses"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		Multiplier:   q.Multiplier,
		Multiplicand: q.Multiplicand,
		Product:      q.Product(),
		WrongGuesses: q.wrong,
	})
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*q = NewQuestion(raw.Multiplier, raw.Multiplicand, raw.WrongGuesses)
	return nil
}

// multiplierPool hands out the multipliers 1..MaxMultiplier in shuffled
// order without repeats, refilling with a fresh shuffle once drained.
type multiplierPool struct {
	rng    Rand
	values []int
}

func newMultiplierPool(rng Rand) *multiplierPool {
	return &multiplierPool{rng: rng}
}

func (p *multiplierPool) refill() {
	p.values = p.values[:0]
	for m := 1; m <= MaxMultiplier; m++ {
		p.values = append(p.values, m)
	}
	p.rng.Shuffle(len(p.values), func(i, j int) {
		p.values[i], p.values[j] = p.values[j], p.values[i]
	})
}

// Draw removes and returns the next multiplier.
func (p *multiplierPool) Draw() int {
	if len(p.values) == 0 {
		p.refill()
	}
	m := p.values[0]
	p.values = p.values[1:]
	return m
}

// Generator builds the question list for a game.
type Generator struct {
	rng Rand
}

// NewGenerator creates a generator drawing all randomness from rng.
func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns tier.Resolve(len(tables)) questions spread evenly over
// tables (0-based indices, taken in the order given), shuffled so the table
// order is not visible to the player.
func (g *Generator) Generate(tables []int, tier Tier) []Question {
	if len(tables) == 0 {
		return nil
	}

	numberOfQuestions := tier.Resolve(len(tables))
	distribution := Distribute(len(tables), numberOfQuestions)
	pool := newMultiplierPool(g.rng)

	questions := make([]Question, 0, numberOfQuestions)
	for i, table := range tables {
		multiplicand := table + 1
		for n := 0; n < distribution[i]; n++ {
			multiplier := pool.Draw()
			wrong := WrongGuesses(g.rng, multiplier, multiplicand, WrongGuessCount)
			questions = append(questions, Question{
				Multiplier:   multiplier,
				Multiplicand: multiplicand,
				wrong:        wrong,
			})
		}
	}

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}
