package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// TableCount is the number of selectable tables (1 through 12).
	TableCount = 12
	// MaxMultiplier is the largest multiplier asked for any table.
	MaxMultiplier = 12
	// WrongGuessCount is the number of wrong candidates shown per question.
	WrongGuessCount = 8
	// GuessCount is the total number of candidates shown per question.
	GuessCount = WrongGuessCount + 1
)

// Rand is the source of randomness used for every shuffle and draw.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// TableSelection holds one flag per table, indexed from 0 (the 1 times table).
type TableSelection [TableCount]bool

// Toggle flips the flag for index and reports whether index was valid.
func (s *TableSelection) Toggle(index int) bool {
	if index < 0 || index >= TableCount {
		return false
	}
	s[index] = !s[index]
	return true
}

// IsSelected reports whether the table at index is selected.
func (s TableSelection) IsSelected(index int) bool {
	return index >= 0 && index < TableCount && s[index]
}

// Selected returns the selected table indices in ascending order.
func (s TableSelection) Selected() []int {
	var tables []int
	for i, on := range s {
		if on {
			tables = append(tables, i)
		}
	}
	return tables
}

// Count returns the number of selected tables.
func (s TableSelection) Count() int {
	n := 0
	for _, on := range s {
		if on {
			n++
		}
	}
	return n
}

// Any reports whether at least one table is selected.
func (s TableSelection) Any() bool {
	for _, on := range s {
		if on {
			return true
		}
	}
	return false
}

var tablePalette = [...]string{"red", "green", "blue", "yellow", "orange", "pink", "purple"}

// TableColor returns the display colour name for the table at index.
func TableColor(index int) string {
	if index < 0 {
		index = -index
	}
	return tablePalette[index%len(tablePalette)]
}

// Tier is the question-count choice made during setup.
type Tier int

const (
	TierFive   Tier = 5
	TierTen    Tier = 10
	TierTwenty Tier = 20
	// TierAll asks every multiplier of every selected table.
	TierAll Tier = 0
)

// DefaultTier is the tier selected when a game is set up.
const DefaultTier = TierFive

// Tiers lists the tiers in the order they are offered.
var Tiers = []Tier{TierFive, TierTen, TierTwenty, TierAll}

// Valid reports whether t is one of Tiers.
func (t Tier) Valid() bool {
	for _, v := range Tiers {
		if v == t {
			return true
		}
	}
	return false
}

// Resolve returns the number of questions this tier asks for.
func (t Tier) Resolve(numberOfTables int) int {
	if t > 0 {
		return int(t)
	}
	return numberOfTables * MaxMultiplier
}

// Next returns the tier offered after t, wrapping around.
func (t Tier) Next() Tier {
	for i, v := range Tiers {
		if v == t {
			return Tiers[(i+1)%len(Tiers)]
		}
	}
	return DefaultTier
}

// String returns the label shown for the tier.
func (t Tier) String() string {
	if t == TierAll {
		return "all"
	}
	return strconv.Itoa(int(t))
}

// MarshalText encodes the tier as its label.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier label.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTier parses a tier label such as "10" or "all".
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return TierAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid tier %q: must be one of 5, 10, 20, all", s)
	}
	t := Tier(n)
	if t == TierAll || !t.Valid() {
		return 0, fmt.Errorf("invalid tier %q: must be one of 5, 10, 20, all", s)
	}
	return t, nil
}
