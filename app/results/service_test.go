package results

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/grading"
	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

func testScale() []models.Grade {
	return []models.Grade{
		{Name: "A+", MinMarks: 90, MaxMarks: 100, Remark: "Excellent"},
		{Name: "A", MinMarks: 80, MaxMarks: 89, Remark: "Very Good"},
		{Name: "B", MinMarks: 70, MaxMarks: 79, Remark: "Good"},
		{Name: "C", MinMarks: 60, MaxMarks: 69, Remark: "Credit"},
		{Name: "D", MinMarks: 50, MaxMarks: 59, Remark: "Pass"},
		{Name: "F", MinMarks: 0, MaxMarks: 49, Remark: "Fail"},
	}
}

const (
	studentAlice = "6a2f9b1e-0000-4000-8000-000000000001"
	studentBob   = "6a2f9b1e-0000-4000-8000-000000000002"
	subjectMath  = "6a2f9b1e-0000-4000-8000-00000000000a"
	subjectEng   = "6a2f9b1e-0000-4000-8000-00000000000b"
	termOne      = "6a2f9b1e-0000-4000-8000-0000000000f1"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore(testScale())
	store.AddSubject(&models.Subject{ID: subjectMath, Name: "Mathematics", Code: "MTH", Coefficient: 2})
	store.AddSubject(&models.Subject{ID: subjectEng, Name: "English", Code: "ENG", Coefficient: 1})
	return NewService(store), store
}

func TestCompileStoresTotalAndGrade(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	result, err := svc.Compile(ctx, CompileInput{
		StudentID: studentAlice,
		SubjectID: subjectMath,
		TermID:    termOne,
		CAScore:   35,
		ExamScore: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 85.0, result.Total)
	assert.Equal(t, "A", result.Grade)
	assert.Equal(t, "Very Good", result.Remark)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 1, store.ResultCount())
}

func TestCompileRejectsOutOfRangeComponents(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	tests := []struct {
		name  string
		ca    float64
		exam  float64
		field string
	}{
		{"ca above max", 41, 50, "ca_score"},
		{"ca negative", -1, 50, "ca_score"},
		{"exam above max", 30, 61, "exam_score"},
		{"exam negative", 30, -0.5, "exam_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compile(ctx, CompileInput{
				StudentID: studentAlice,
				SubjectID: subjectMath,
				TermID:    termOne,
				CAScore:   tt.ca,
				ExamScore: tt.exam,
			})
			require.Error(t, err)
			var vErr *grading.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	// validation failures must not write anything
	assert.Equal(t, 0, store.ResultCount())
}

func TestCompileIsIdempotentPerKey(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	in := CompileInput{
		StudentID: studentAlice,
		SubjectID: subjectMath,
		TermID:    termOne,
		CAScore:   20,
		ExamScore: 15,
	}

	first, err := svc.Compile(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 35.0, first.Total)
	assert.Equal(t, "F", first.Grade)

	second, err := svc.Compile(ctx, in)
	require.NoError(t, err)

	// second call overwrites the same row, no duplicate
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, 1, store.ResultCount())
}

func TestCompileReplacesScoresOnRecompile(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	in := CompileInput{
		StudentID: studentAlice,
		SubjectID: subjectMath,
		TermID:    termOne,
		CAScore:   20,
		ExamScore: 15,
	}
	first, err := svc.Compile(ctx, in)
	require.NoError(t, err)

	in.CAScore = 38
	in.ExamScore = 55
	second, err := svc.Compile(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 93.0, second.Total)
	assert.Equal(t, "A+", second.Grade)
	assert.Equal(t, 1, store.ResultCount())
}

func TestCompileBatchCollectsAllFailures(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	outcome := svc.CompileBatch(ctx, []CompileInput{
		{StudentID: studentAlice, SubjectID: subjectMath, TermID: termOne, CAScore: 35, ExamScore: 50},
		{StudentID: studentBob, SubjectID: subjectMath, TermID: termOne, CAScore: 45, ExamScore: 50},  // bad CA
		{StudentID: studentAlice, SubjectID: subjectEng, TermID: termOne, CAScore: 30, ExamScore: 40},
		{StudentID: studentBob, SubjectID: subjectEng, TermID: termOne, CAScore: 30, ExamScore: -2},   // bad exam
	})

	assert.Equal(t, 2, outcome.Saved)
	require.Len(t, outcome.Failures, 2)
	assert.Equal(t, 1, outcome.Failures[0].Index)
	assert.Equal(t, studentBob, outcome.Failures[0].StudentID)
	assert.Contains(t, outcome.Failures[0].Error, "ca_score")
	assert.Equal(t, 3, outcome.Failures[1].Index)
	assert.Contains(t, outcome.Failures[1].Error, "exam_score")

	// valid rows after a failure were still saved
	assert.Equal(t, 2, store.ResultCount())
}

func TestReportCard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Alice: Math 90 (coef 2), English 60 (coef 1). Bob: Math 85.
	outcome := svc.CompileBatch(ctx, []CompileInput{
		{StudentID: studentAlice, SubjectID: subjectMath, TermID: termOne, CAScore: 40, ExamScore: 50},
		{StudentID: studentAlice, SubjectID: subjectEng, TermID: termOne, CAScore: 25, ExamScore: 35},
		{StudentID: studentBob, SubjectID: subjectMath, TermID: termOne, CAScore: 35, ExamScore: 50},
	})
	require.Empty(t, outcome.Failures)

	card, err := svc.ReportCard(ctx, studentAlice, termOne)
	require.NoError(t, err)
	require.Len(t, card.Lines, 2)

	// round2((90*2 + 60*1) / 3) = 80
	assert.Equal(t, 80.0, card.CGPA)

	math := card.Lines[0]
	assert.Equal(t, "Mathematics", math.SubjectName)
	assert.Equal(t, 90.0, math.Total)
	assert.Equal(t, "A+", math.Grade)
	assert.Equal(t, 1, math.Position)
	assert.Equal(t, 2, math.ClassSize)

	eng := card.Lines[1]
	assert.Equal(t, "English", eng.SubjectName)
	assert.Equal(t, 60.0, eng.Total)
	assert.Equal(t, "C", eng.Grade)
	assert.Equal(t, 1, eng.Position)
	assert.Equal(t, 1, eng.ClassSize)
}

func TestReportCardEmptyTermHasZeroCGPA(t *testing.T) {
	svc, _ := newTestService()

	card, err := svc.ReportCard(context.Background(), studentAlice, termOne)
	require.NoError(t, err)
	assert.Empty(t, card.Lines)
	assert.Equal(t, 0.0, card.CGPA)
}
