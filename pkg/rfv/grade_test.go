package rfv

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeRecency(t *testing.T) {
	q := Quartiles{Q25: 10, Q50: 20, Q75: 30}

	tests := []struct {
		days     float64
		expected Grade
	}{
		{0, GradeA},
		{10, GradeA},
		{10.5, GradeB},
		{20, GradeB},
		{30, GradeC},
		{31, GradeD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GradeRecency(tt.days, q), "days=%v", tt.days)
	}
}

func TestGradeHigherBetter(t *testing.T) {
	q := Quartiles{Q25: 10, Q50: 20, Q75: 30}

	tests := []struct {
		x        float64
		expected Grade
	}{
		{1, GradeD},
		{10, GradeD},
		{11, GradeC},
		{20, GradeC},
		{30, GradeB},
		{30.01, GradeA},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GradeHigherBetter(tt.x, q), "x=%v", tt.x)
	}
}

func TestGrades_AreMonotonic(t *testing.T) {
	q := Quartiles{Q25: 3, Q50: 3, Q75: 8}

	for x := 0.0; x < 12; x += 0.5 {
		// A sorts before D, so better grades compare lower.
		assert.LessOrEqual(t, GradeRecency(x, q), GradeRecency(x+0.5, q))
		assert.GreaterOrEqual(t, GradeHigherBetter(x, q), GradeHigherBetter(x+0.5, q))
	}
}

func TestGrades_TiedQuartiles(t *testing.T) {
	q := Quartiles{Q25: 1, Q50: 1, Q75: 1}

	assert.Equal(t, GradeA, GradeRecency(1, q))
	assert.Equal(t, GradeD, GradeRecency(2, q))
	assert.Equal(t, GradeD, GradeHigherBetter(1, q))
	assert.Equal(t, GradeA, GradeHigherBetter(2, q))
}

func TestScore(t *testing.T) {
	assert.Equal(t, "ABC", Score(GradeA, GradeB, GradeC))
	assert.Equal(t, "DDD", Score(GradeD, GradeD, GradeD))
}

func TestClassify(t *testing.T) {
	customers := []Customer{
		{CustomerID: "best", RecencyDays: 1, Frequency: 10, Value: decimal.NewFromInt(500)},
		{CustomerID: "worst", RecencyDays: 90, Frequency: 1, Value: decimal.NewFromInt(5)},
	}
	table := QuartileTable{
		Recency:   Quartiles{Q25: 5, Q50: 20, Q75: 60},
		Frequency: Quartiles{Q25: 1, Q50: 2, Q75: 5},
		Value:     Quartiles{Q25: 10, Q50: 50, Q75: 200},
	}

	Classify(customers, table)

	require.Len(t, customers, 2)
	assert.Equal(t, "AAA", customers[0].Score)
	assert.Equal(t, ActionFor("AAA"), customers[0].Action)
	assert.Equal(t, "DDD", customers[1].Score)
	assert.Equal(t, GradeD, customers[1].RecencyGrade)
	assert.Equal(t, GradeD, customers[1].FrequencyGrade)
	assert.Equal(t, GradeD, customers[1].ValueGrade)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "Top customers! Reward them to build loyalty.", ActionFor("AAA"))
	assert.Equal(t, "Inactive. Re-engage or drop.", ActionFor("DDD"))
	assert.Equal(t, DefaultAction, ActionFor("BCD"))
	assert.Equal(t, DefaultAction, ActionFor(""))
}

func TestActions(t *testing.T) {
	entries := Actions()
	require.Len(t, entries, 9)

	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Score, entries[i].Score)
	}

	for _, e := range entries {
		assert.Len(t, e.Score, 3)
		assert.Equal(t, ActionFor(e.Score), e.Action)
		assert.NotEqual(t, DefaultAction, e.Action)
	}

	// Mutating the returned slice leaves the table intact.
	entries[0].Action = "changed"
	assert.NotEqual(t, "changed", ActionFor(entries[0].Score))
}
