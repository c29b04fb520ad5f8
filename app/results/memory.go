package results

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ProfHezzy/AdvancedSMS-sub002/app/models"
)

// MemoryStore is an in-memory Store used in tests.
type MemoryStore struct {
	mu       sync.Mutex
	scale    []models.Grade
	subjects map[string]*models.Subject
	rows     map[string]*models.Result // keyed by student|subject|term
}

// NewMemoryStore returns an empty in-memory result store using the given
// grade scale.
func NewMemoryStore(scale []models.Grade) *MemoryStore {
	return &MemoryStore{
		scale:    scale,
		subjects: make(map[string]*models.Subject),
		rows:     make(map[string]*models.Result),
	}
}

// AddSubject registers a subject so ResultsForStudent can populate the
// relation.
func (s *MemoryStore) AddSubject(subject *models.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[subject.ID] = subject
}

func resultKey(studentID, subjectID, termID string) string {
	return studentID + "|" + subjectID + "|" + termID
}

func (s *MemoryStore) GradeScale(ctx context.Context) ([]models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scale := make([]models.Grade, len(s.scale))
	copy(scale, s.scale)
	return scale, nil
}

func (s *MemoryStore) UpsertResult(ctx context.Context, result *models.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resultKey(result.StudentID, result.SubjectID, result.TermID)
	now := time.Now()

	if existing, ok := s.rows[key]; ok {
		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
		result.UpdatedAt = now
	} else {
		result.ID = uuid.New().String()
		result.CreatedAt = now
		result.UpdatedAt = now
	}

	stored := *result
	s.rows[key] = &stored
	return nil
}

func (s *MemoryStore) ResultsForStudent(ctx context.Context, studentID, termID string) ([]*models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Result
	for _, r := range s.rows {
		if r.StudentID == studentID && r.TermID == termID {
			row := *r
			if subject, ok := s.subjects[r.SubjectID]; ok {
				row.Subject = subject
			}
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}

func (s *MemoryStore) TotalsForSubject(ctx context.Context, subjectID, termID string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var totals []float64
	for _, r := range s.rows {
		if r.SubjectID == subjectID && r.TermID == termID {
			totals = append(totals, r.Total)
		}
	}
	return totals, nil
}

// ResultCount reports how many rows are stored, for idempotence assertions.
func (s *MemoryStore) ResultCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
