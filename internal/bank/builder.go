package bank

import (
	"math/rand"
	"slices"

	"github.com/google/uuid"

	"github.com/opteron-x86/exam-ace/internal/models"
)

// QuizFilters narrows the merged question pool before a quiz is assembled.
// Zero-value fields apply no filtering.
type QuizFilters struct {
	Count         int
	Domains       []string
	Difficulties  []string
	QuestionTypes []string
	Randomize     bool
}

// BuildQuiz assembles a quiz from the given banks: filter, optionally
// shuffle, then trim to the requested count. Returns a fresh session id and
// the selected questions in presentation order.
func (s *Store) BuildQuiz(bankFiles []string, filters QuizFilters) (string, []models.Question, error) {
	questions, err := s.LoadQuestions(bankFiles)
	if err != nil {
		return "", nil, err
	}

	filtered := questions[:0:0]
	for _, q := range questions {
		if len(filters.Domains) > 0 && !slices.Contains(filters.Domains, q.Domain) {
			continue
		}
		if len(filters.Difficulties) > 0 && !slices.Contains(filters.Difficulties, string(q.Difficulty)) {
			continue
		}
		if len(filters.QuestionTypes) > 0 && !slices.Contains(filters.QuestionTypes, string(q.Type)) {
			continue
		}
		filtered = append(filtered, q)
	}

	if filters.Randomize {
		rand.Shuffle(len(filtered), func(i, j int) {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		})
	}

	if filters.Count > 0 && filters.Count < len(filtered) {
		filtered = filtered[:filters.Count]
	}

	return NewSessionID(), filtered, nil
}

// NewSessionID returns a short 8-character session identifier.
func NewSessionID() string {
	return uuid.NewString()[:8]
}
