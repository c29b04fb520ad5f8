package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

func defaultScale() []models.Grade {
	return []models.Grade{
		{Name: "A+", MinMarks: 90, MaxMarks: 100, Remark: "Excellent"},
		{Name: "A", MinMarks: 80, MaxMarks: 89, Remark: "Very Good"},
		{Name: "B", MinMarks: 70, MaxMarks: 79, Remark: "Good"},
		{Name: "C", MinMarks: 60, MaxMarks: 69, Remark: "Credit"},
		{Name: "D", MinMarks: 50, MaxMarks: 59, Remark: "Pass"},
		{Name: "E", MinMarks: 40, MaxMarks: 49, Remark: "Weak Pass"},
		{Name: "F", MinMarks: 0, MaxMarks: 39, Remark: "Fail"},
	}
}

func TestValidateScore(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		max     float64
		wantErr string
	}{
		{"zero is valid", 0, MaxCAScore, ""},
		{"max is valid", 40, MaxCAScore, ""},
		{"mid range", 25.5, MaxCAScore, ""},
		{"negative", -1, MaxCAScore, "score cannot be negative"},
		{"above max", 40.5, MaxCAScore, "score cannot be above 40"},
		{"above exam max", 60.01, MaxExamScore, "score cannot be above 60"},
		{"NaN", math.NaN(), MaxCAScore, "score must be a number"},
		{"positive infinity", math.Inf(1), MaxExamScore, "score must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScore(tt.score, tt.max, "ca_score")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "ca_score", vErr.Field)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 85.0, ComputeTotal(35, 50))
	assert.Equal(t, 35.0, ComputeTotal(20, 15))
	assert.Equal(t, 0.0, ComputeTotal())
	// rounds half-up at the cent boundary
	assert.Equal(t, 70.13, ComputeTotal(35.065, 35.065))
	assert.Equal(t, 55.56, ComputeTotal(30.555, 25.001))
}

func TestResolveGrade(t *testing.T) {
	scale := defaultScale()

	tests := []struct {
		total      float64
		wantLetter string
		wantRemark string
	}{
		{100, "A+", "Excellent"},
		{90, "A+", "Excellent"},
		{89, "A", "Very Good"},
		{85, "A", "Very Good"},
		{80, "A", "Very Good"},
		{79.99, "B", "Good"},
		{60, "C", "Credit"},
		{39, "F", "Fail"},
		{35, "F", "Fail"},
		{0, "F", "Fail"},
	}
	for _, tt := range tests {
		letter, remark := ResolveGrade(tt.total, scale)
		assert.Equal(t, tt.wantLetter, letter, "total %v", tt.total)
		assert.Equal(t, tt.wantRemark, remark, "total %v", tt.total)
	}
}

func TestResolveGradeClampsOutOfRangeTotals(t *testing.T) {
	scale := defaultScale()

	letter, _ := ResolveGrade(120, scale)
	assert.Equal(t, "A+", letter)

	letter, _ = ResolveGrade(-5, scale)
	assert.Equal(t, "F", letter)
}

func TestResolveGradeFallsBackOnGaps(t *testing.T) {
	// scale with a hole between 50 and 59
	scale := []models.Grade{
		{Name: "A", MinMarks: 60, MaxMarks: 100, Remark: "Good"},
		{Name: "F", MinMarks: 0, MaxMarks: 49, Remark: "Fail"},
	}

	letter, remark := ResolveGrade(55, scale)
	assert.Equal(t, FallbackGrade, letter)
	assert.Equal(t, FallbackRemark, remark)
}

func TestAggregateCGPA(t *testing.T) {
	assert.Equal(t, 0.0, AggregateCGPA(nil))
	assert.Equal(t, 0.0, AggregateCGPA([]WeightedTotal{}))

	// zero coefficient sum guards division by zero
	assert.Equal(t, 0.0, AggregateCGPA([]WeightedTotal{
		{Total: 80, Coefficient: 0},
		{Total: 60, Coefficient: 0},
	}))

	// round2((90*2 + 60*1) / 3) = 80
	assert.Equal(t, 80.0, AggregateCGPA([]WeightedTotal{
		{Total: 90, Coefficient: 2},
		{Total: 60, Coefficient: 1},
	}))

	// round2((75*3 + 80*2) / 5) = 77
	assert.Equal(t, 77.0, AggregateCGPA([]WeightedTotal{
		{Total: 75, Coefficient: 3},
		{Total: 80, Coefficient: 2},
	}))
}

func TestRankPosition(t *testing.T) {
	totals := []float64{70, 85, 92, 85, 60}

	assert.Equal(t, 1, RankPosition(92, totals))
	assert.Equal(t, 4, RankPosition(70, totals))
	assert.Equal(t, 5, RankPosition(60, totals))

	// tied totals share the first matching position
	assert.Equal(t, 2, RankPosition(85, totals))
}
