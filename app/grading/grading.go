// Package grading holds the pure score arithmetic used when compiling
// results: component validation, totalling, grade lookup, CGPA aggregation
// and class ranking. Nothing here touches the database.
package grading

import (
	"fmt"
	"math"
	"sort"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// Fixed component maxima: continuous assessment is marked out of 40 and the
// examination out of 60, so a full total is out of 100.
const (
	MaxCAScore   = 40.0
	MaxExamScore = 60.0
)

// Fallback grade returned when no band of the scale matches.
const (
	FallbackGrade  = "F"
	FallbackRemark = "Fail"
)

// ValidationError reports an out-of-range or malformed score component.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateScore checks a single component score against its maximum. Callers
// must validate every component before calling ComputeTotal, which trusts its
// input.
func ValidateScore(score, maxScore float64, field string) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return &ValidationError{Field: field, Reason: "score must be a number"}
	}
	if score < 0 {
		return &ValidationError{Field: field, Reason: "score cannot be negative"}
	}
	if score > maxScore {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("score cannot be above %g", maxScore)}
	}
	return nil
}

// ComputeTotal sums component scores rounded to 2 decimal places. No
// validation is performed here.
func ComputeTotal(scores ...float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return round2(sum)
}

// ResolveGrade maps a total to a letter grade and remark. The total is
// clamped into [0,100] before lookup, the scale is scanned in the order
// supplied and the first band containing the total wins. If no band matches,
// the lowest grade is returned.
func ResolveGrade(total float64, scale []models.Grade) (letter, remark string) {
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	for _, g := range scale {
		if total >= g.MinMarks && total <= g.MaxMarks {
			return g.Name, g.Remark
		}
	}
	return FallbackGrade, FallbackRemark
}

// WeightedTotal pairs a subject total with the subject's coefficient for CGPA
// aggregation.
type WeightedTotal struct {
	Total       float64
	Coefficient float64
}

// AggregateCGPA returns the coefficient-weighted mean of subject totals,
// rounded to 2 decimal places. Empty input or a zero coefficient sum yields 0
// rather than dividing by zero.
func AggregateCGPA(entries []WeightedTotal) float64 {
	if len(entries) == 0 {
		return 0
	}
	var weighted, coefSum float64
	for _, e := range entries {
		weighted += e.Total * e.Coefficient
		coefSum += e.Coefficient
	}
	if coefSum == 0 {
		return 0
	}
	return round2(weighted / coefSum)
}

// RankPosition returns the 1-based class position of studentTotal among
// allTotals, sorted descending. Tied students share the position of the first
// occurrence in sorted order.
func RankPosition(studentTotal float64, allTotals []float64) int {
	sorted := make([]float64, len(allTotals))
	copy(sorted, allTotals)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	for i, t := range sorted {
		if t == studentTotal {
			return i + 1
		}
	}
	return len(sorted) + 1
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
