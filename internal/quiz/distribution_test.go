package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name      string
		tables    int
		questions int
		want      []int
	}{
		{"even split", 2, 10, []int{5, 5}},
		{"remainder spread from the front", 3, 5, []int{2, 2, 1}},
		{"two tables five questions", 2, 5, []int{3, 2}},
		{"fewer questions than tables", 5, 3, []int{1, 1, 1, 0, 0}},
		{"single table", 1, 20, []int{20}},
		{"all of twelve tables", 12, 144, []int{12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12}},
		{"twelve tables five questions", 12, 5, []int{1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribute(tt.tables, tt.questions))
		})
	}
}

func TestDistributeProperties(t *testing.T) {
	for tables := 1; tables <= TableCount; tables++ {
		for questions := 1; questions <= tables*MaxMultiplier; questions++ {
			got := Distribute(tables, questions)
			require.Len(t, got, tables)

			quotient := questions / tables
			sum := 0
			for _, n := range got {
				assert.Contains(t, []int{quotient, quotient + 1}, n,
					"tables=%d questions=%d entry out of range", tables, questions)
				sum += n
			}
			assert.Equal(t, questions, sum, "tables=%d questions=%d", tables, questions)
		}
	}
}

func TestDistributeNoTables(t *testing.T) {
	assert.Nil(t, Distribute(0, 5))
}
