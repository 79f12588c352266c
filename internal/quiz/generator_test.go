package quiz

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/lox/timestables/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplierPool(t *testing.T) {
	pool := newMultiplierPool(randutil.New(5))

	for block := 0; block < 3; block++ {
		var drawn []int
		for i := 0; i < MaxMultiplier; i++ {
			drawn = append(drawn, pool.Draw())
		}
		sort.Ints(drawn)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, drawn, "block %d", block)
		assert.Empty(t, pool.values, "a drained block refills on the next draw")
	}
}

func TestGenerateLengthMatchesTier(t *testing.T) {
	g := NewGenerator(randutil.New(11))

	tests := []struct {
		tables []int
		tier   Tier
		want   int
	}{
		{[]int{2, 6}, TierFive, 5},
		{[]int{0}, TierTen, 10},
		{[]int{0, 1, 2}, TierTwenty, 20},
		{[]int{3, 8}, TierAll, 24},
		{[]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, TierAll, 144},
		{[]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, TierFive, 5},
	}

	for _, tt := range tests {
		questions := g.Generate(tt.tables, tt.tier)
		assert.Len(t, questions, tt.want, "tables=%v tier=%s", tt.tables, tt.tier)
	}
}

func TestGenerateFollowsDistribution(t *testing.T) {
	g := NewGenerator(randutil.New(12))

	// Tables 3 and 7, in that order: the first table takes the extra question.
	questions := g.Generate([]int{2, 6}, TierFive)
	require.Len(t, questions, 5)

	perTable := make(map[int]int)
	for _, q := range questions {
		perTable[q.Multiplicand]++
	}
	assert.Equal(t, map[int]int{3: 3, 7: 2}, perTable)
}

func TestGenerateQuestionShape(t *testing.T) {
	g := NewGenerator(randutil.New(13))

	for _, q := range g.Generate([]int{0, 4, 11}, TierAll) {
		assert.GreaterOrEqual(t, q.Multiplier, 1)
		assert.LessOrEqual(t, q.Multiplier, MaxMultiplier)
		assert.Contains(t, []int{1, 5, 12}, q.Multiplicand)

		wrong := q.WrongGuesses()
		assert.Len(t, wrong, WrongGuessCount)
		assert.NotContains(t, wrong, q.Product())
	}
}

func TestGenerateAllCoversEveryMultiplierOnce(t *testing.T) {
	g := NewGenerator(randutil.New(14))

	// With "all", each table receives exactly 12 consecutive pool draws.
	questions := g.Generate([]int{6, 2}, TierAll)
	multipliers := make(map[int][]int)
	for _, q := range questions {
		multipliers[q.Multiplicand] = append(multipliers[q.Multiplicand], q.Multiplier)
	}

	for table, ms := range multipliers {
		sort.Ints(ms)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, ms, "table %d", table)
	}
}

func TestGenerateNoRepeatWithinPool(t *testing.T) {
	g := NewGenerator(randutil.New(15))

	questions := g.Generate([]int{4}, TierTen)
	seen := make(map[int]bool)
	for _, q := range questions {
		assert.False(t, seen[q.Multiplier], "multiplier %d repeated within one pool", q.Multiplier)
		seen[q.Multiplier] = true
	}
}

func TestGenerateShufflesTableOrder(t *testing.T) {
	g := NewGenerator(randutil.New(16))

	interleaved := false
	for i := 0; i < 10 && !interleaved; i++ {
		questions := g.Generate([]int{0, 1}, TierTwenty)
		// Without the final shuffle the first ten would all be table 1.
		for _, q := range questions[:10] {
			if q.Multiplicand != 1 {
				interleaved = true
				break
			}
		}
	}
	assert.True(t, interleaved, "question list should be shuffled across tables")
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := NewGenerator(randutil.New(99)).Generate([]int{1, 5, 9}, TierTwenty)
	b := NewGenerator(randutil.New(99)).Generate([]int{1, 5, 9}, TierTwenty)
	assert.Equal(t, a, b)
}

func TestGenerateNoTables(t *testing.T) {
	assert.Empty(t, NewGenerator(randutil.New(1)).Generate(nil, TierAll))
}

func TestQuestionIsImmutable(t *testing.T) {
	wrong := []int{1, 2, 3}
	q := NewQuestion(4, 5, wrong)
	wrong[0] = 100

	got := q.WrongGuesses()
	assert.Equal(t, []int{1, 2, 3}, got)

	got[1] = 200
	assert.Equal(t, []int{1, 2, 3}, q.WrongGuesses())
	assert.Equal(t, 20, q.Product())
	assert.Equal(t, 4, q.Table())
	assert.Equal(t, "4 × 5", q.String())
}

func TestQuestionJSON(t *testing.T) {
	q := NewQuestion(3, 7, []int{7, 14, 28})

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"multiplier":3,"multiplicand":7,"product":21,"wrongGuesses":[7,14,28]}`, string(data))

	var decoded Question
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, q, decoded)
}
