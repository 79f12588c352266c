package quiz

import (
	"testing"

	"github.com/lox/timestables/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrongGuesses(t *testing.T) {
	rng := randutil.New(42)

	for multiplicand := 1; multiplicand <= TableCount; multiplicand++ {
		for multiplier := 1; multiplier <= MaxMultiplier; multiplier++ {
			wrong := WrongGuesses(rng, multiplier, multiplicand, WrongGuessCount)
			require.Len(t, wrong, WrongGuessCount)

			seen := make(map[int]bool)
			for _, w := range wrong {
				assert.NotEqual(t, multiplier*multiplicand, w, "correct product among wrong guesses")
				assert.Zero(t, w%multiplicand, "%d is not in the %d times table", w, multiplicand)
				assert.False(t, seen[w], "duplicate wrong guess %d", w)
				seen[w] = true
			}
		}
	}
}

func TestWrongGuessesClampsCount(t *testing.T) {
	rng := randutil.New(1)

	assert.Len(t, WrongGuesses(rng, 3, 4, 50), MaxMultiplier-1)
	assert.Empty(t, WrongGuesses(rng, 3, 4, -1))
}

func TestWrongGuessesIsShuffled(t *testing.T) {
	rng := randutil.New(3)
	first := WrongGuesses(rng, 1, 2, WrongGuessCount)

	differs := false
	for i := 0; i < 10 && !differs; i++ {
		differs = !assert.ObjectsAreEqual(first, WrongGuesses(rng, 1, 2, WrongGuessCount))
	}
	assert.True(t, differs, "wrong guesses should vary between calls")
}

func TestPlaceCorrect(t *testing.T) {
	rng := randutil.New(9)
	pool := []int{2, 4, 6, 8, 10, 12, 14, 16}
	before := append([]int(nil), pool...)

	positions := make(map[int]bool)
	for i := 0; i < 500; i++ {
		guesses, correctIndex := PlaceCorrect(rng, pool, 18)
		require.Len(t, guesses, GuessCount)
		require.GreaterOrEqual(t, correctIndex, 0)
		require.Less(t, correctIndex, GuessCount)
		assert.Equal(t, 18, guesses[correctIndex])

		count := 0
		for _, g := range guesses {
			if g == 18 {
				count++
			}
		}
		assert.Equal(t, 1, count, "correct product must appear exactly once")
		positions[correctIndex] = true
	}

	assert.Equal(t, before, pool, "pool must not be modified")
	assert.Len(t, positions, GuessCount, "every position, including the last, should be reachable")
}
