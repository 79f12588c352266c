package quiz

// WrongGuesses returns count distinct wrong answers for multiplier ×
// multiplicand. Candidates are the other products of the same table, so
// every wrong answer is a plausible member of the table being practised.
// count is clamped to the MaxMultiplier-1 candidates that exist.
func WrongGuesses(rng Rand, multiplier, multiplicand, count int) []int {
	candidates := make([]int, 0, MaxMultiplier-1)
	for k := 1; k <= MaxMultiplier; k++ {
		if k == multiplier {
			continue
		}
		candidates = append(candidates, k*multiplicand)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if count < 0 {
		count = 0
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count:count]
}

// PlaceCorrect returns a copy of pool with product inserted at a uniformly
// random position in [0, len(pool)], along with that position.
func PlaceCorrect(rng Rand, pool []int, product int) ([]int, int) {
	position := rng.IntN(len(pool) + 1)

	guesses := make([]int, 0, len(pool)+1)
	guesses = append(guesses, pool[:position]...)
	guesses = append(guesses, product)
	guesses = append(guesses, pool[position:]...)
	return guesses, position
}
