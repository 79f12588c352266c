package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/timestables/internal/fileutil"
	"github.com/lox/timestables/internal/quiz"
	"github.com/lox/timestables/internal/randutil"
)

// GenerateCmd prints the question set a game would ask.
type GenerateCmd struct {
	Tables []int  `short:"t" required:"" sep:"," help:"Tables to draw from, e.g. 2,5,10"`
	Tier   string `help:"Questions: 5, 10, 20 or all (default from config)"`
	Output string `short:"o" type:"path" help:"Write JSON to this file instead of printing"`
}

// questionSet is the exported JSON document.
type questionSet struct {
	Seed      int64           `json:"seed"`
	Tier      quiz.Tier       `json:"tier"`
	Tables    []int           `json:"tables"`
	Questions []quiz.Question `json:"questions"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	tier := cfg.Tier()
	if c.Tier != "" {
		if tier, err = quiz.ParseTier(c.Tier); err != nil {
			return err
		}
	}

	set, err := generateSet(c.Tables, tier, cfg.Quiz.Seed)
	if err != nil {
		return err
	}

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, set, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d questions to %s (seed %d)\n", len(set.Questions), c.Output, set.Seed)
		return nil
	}
	return writeText(os.Stdout, set)
}

// generateSet builds a question set for 1-based table numbers.
func generateSet(tables []int, tier quiz.Tier, seed int64) (questionSet, error) {
	indices := make([]int, 0, len(tables))
	numbers := make([]int, 0, len(tables))
	seen := make(map[int]bool)
	for _, table := range tables {
		if table < 1 || table > quiz.TableCount {
			return questionSet{}, fmt.Errorf("table %d out of range 1-%d", table, quiz.TableCount)
		}
		if seen[table] {
			continue
		}
		seen[table] = true
		indices = append(indices, table-1)
		numbers = append(numbers, table)
	}
	if len(indices) == 0 {
		return questionSet{}, fmt.Errorf("at least one table is required")
	}

	rng, seed := randutil.FromSeed(seed)
	return questionSet{
		Seed:      seed,
		Tier:      tier,
		Tables:    numbers,
		Questions: quiz.NewGenerator(rng).Generate(indices, tier),
	}, nil
}

func writeText(w io.Writer, set questionSet) error {
	if _, err := fmt.Fprintf(w, "# seed %d, tier %s, %d questions\n", set.Seed, set.Tier, len(set.Questions)); err != nil {
		return err
	}
	for i, q := range set.Questions {
		wrong := make([]string, 0, quiz.WrongGuessCount)
		for _, n := range q.WrongGuesses() {
			wrong = append(wrong, fmt.Sprint(n))
		}
		if _, err := fmt.Fprintf(w, "%3d. %s = %d  (wrong: %s)\n", i+1, q, q.Product(), strings.Join(wrong, " ")); err != nil {
			return err
		}
	}
	return nil
}
