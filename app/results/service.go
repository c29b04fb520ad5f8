package results

import (
	"context"
	"fmt"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/grading"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// CompileInput carries the raw component scores for one student/subject/term.
type CompileInput struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	TermID    string  `json:"term_id" validate:"required,uuid"`
	CAScore   float64 `json:"ca_score"`
	ExamScore float64 `json:"exam_score"`
}

// RowFailure records why one row of a batch compile was rejected.
type RowFailure struct {
	Index     int    `json:"index"`
	StudentID string `json:"student_id"`
	Error     string `json:"error"`
}

// BatchOutcome summarizes a batch compile: how many rows were saved and the
// full set of per-row failures. Processing never stops at the first error.
type BatchOutcome struct {
	Saved    int          `json:"saved"`
	Failures []RowFailure `json:"failures,omitempty"`
}

// ReportLine is one subject row of a student's report card.
type ReportLine struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	CAScore     float64 `json:"ca_score"`
	ExamScore   float64 `json:"exam_score"`
	Total       float64 `json:"total"`
	Grade       string  `json:"grade"`
	Remark      string  `json:"remark"`
	Position    int     `json:"position"`
	ClassSize   int     `json:"class_size"`
}

// ReportCard aggregates a student's term results into lines and a CGPA.
type ReportCard struct {
	StudentID string       `json:"student_id"`
	TermID    string       `json:"term_id"`
	Lines     []ReportLine `json:"lines"`
	CGPA      float64      `json:"cgpa"`
}

// Service compiles raw component scores into stored results.
type Service struct {
	store Store
}

// NewService returns a result compilation service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Compile validates the component scores, totals them, resolves the grade
// against the configured scale and upserts the result row. Recompiling the
// same (student, subject, term) replaces the stored scores in place.
func (s *Service) Compile(ctx context.Context, in CompileInput) (*models.Result, error) {
	if err := grading.ValidateScore(in.CAScore, grading.MaxCAScore, "ca_score"); err != nil {
		return nil, err
	}
	if err := grading.ValidateScore(in.ExamScore, grading.MaxExamScore, "exam_score"); err != nil {
		return nil, err
	}

	scale, err := s.store.GradeScale(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade scale: %w", err)
	}

	total := grading.ComputeTotal(in.CAScore, in.ExamScore)
	letter, remark := grading.ResolveGrade(total, scale)

	result := &models.Result{
		StudentID: in.StudentID,
		SubjectID: in.SubjectID,
		TermID:    in.TermID,
		CAScore:   in.CAScore,
		ExamScore: in.ExamScore,
		Total:     total,
		Grade:     letter,
		Remark:    remark,
	}
	if err := s.store.UpsertResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	return result, nil
}

// CompileBatch compiles every row, collecting all per-row failures instead of
// stopping at the first one.
func (s *Service) CompileBatch(ctx context.Context, rows []CompileInput) BatchOutcome {
	var outcome BatchOutcome
	for i, row := range rows {
		if _, err := s.Compile(ctx, row); err != nil {
			outcome.Failures = append(outcome.Failures, RowFailure{
				Index:     i,
				StudentID: row.StudentID,
				Error:     err.Error(),
			})
			continue
		}
		outcome.Saved++
	}
	return outcome
}

// ReportCard builds a student's term report: one line per compiled subject
// with the class position, plus the coefficient-weighted CGPA.
func (s *Service) ReportCard(ctx context.Context, studentID, termID string) (*ReportCard, error) {
	rs, err := s.store.ResultsForStudent(ctx, studentID, termID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}

	card := &ReportCard{StudentID: studentID, TermID: termID}
	var weighted []grading.WeightedTotal

	for _, r := range rs {
		line := ReportLine{
			SubjectID: r.SubjectID,
			CAScore:   r.CAScore,
			ExamScore: r.ExamScore,
			Total:     r.Total,
			Grade:     r.Grade,
			Remark:    r.Remark,
		}

		coefficient := 1
		if r.Subject != nil {
			line.SubjectName = r.Subject.Name
			coefficient = r.Subject.Coefficient
		}
		weighted = append(weighted, grading.WeightedTotal{
			Total:       r.Total,
			Coefficient: float64(coefficient),
		})

		totals, err := s.store.TotalsForSubject(ctx, r.SubjectID, termID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch subject totals: %w", err)
		}
		line.Position = grading.RankPosition(r.Total, totals)
		line.ClassSize = len(totals)

		card.Lines = append(card.Lines, line)
	}

	card.CGPA = grading.AggregateCGPA(weighted)
	return card, nil
}
