package quiz

// Distribute splits numberOfQuestions across numberOfTables as evenly as
// possible. The first numberOfQuestions%numberOfTables entries receive one
// extra question, so every entry is either q/n or q/n+1 and the entries
// always sum to numberOfQuestions.
func Distribute(numberOfTables, numberOfQuestions int) []int {
	if numberOfTables < 1 {
		return nil
	}
	if numberOfQuestions < 0 {
		numberOfQuestions = 0
	}

	quotient := numberOfQuestions / numberOfTables
	remainder := numberOfQuestions % numberOfTables

	distribution := make([]int, numberOfTables)
	for i := range distribution {
		distribution[i] = quotient
		if i < remainder {
			distribution[i]++
		}
	}
	return distribution
}
