package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opteron-x86/exam-ace/internal/models"
)

func testScoring() models.ScoringConfig {
	return models.ScoringConfig{
		ScaleMin:     100,
		ScaleMax:     900,
		PassingScore: 710,
		DomainWeights: map[string]models.DomainInfo{
			"1": {Name: "Project Management Concepts", Weight: 0.33},
			"2": {Name: "Project Life Cycle Phases", Weight: 0.30},
		},
	}
}

func TestGradeQuiz_ScaledScore(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	questions := []models.Question{
		{ID: "q1", Type: models.MultipleChoice, Domain: "1", Correct: "A"},
		{ID: "q2", Type: models.MultipleChoice, Domain: "1", Correct: "B"},
		{ID: "q3", Type: models.MultipleChoice, Domain: "2", Correct: "C"},
		{ID: "q4", Type: models.MultipleChoice, Domain: "2", Correct: "D"},
	}
	answers := map[string]models.UserAnswer{
		"q1": models.ScalarAnswer("A"),
		"q2": models.ScalarAnswer("B"),
		"q3": models.ScalarAnswer("C"),
		"q4": models.ScalarAnswer("X"),
	}

	report := grader.GradeQuiz(questions, answers, 320)

	assert.Equal(t, 4, report.TotalQuestions)
	assert.Equal(t, 3, report.CorrectCount)
	assert.Equal(t, 3.0, report.EarnedPoints)
	assert.Equal(t, 75.0, report.ScorePercentage)
	// 100 + 0.75*800 = 700, one short of passing
	assert.Equal(t, 700, report.ScaledScore)
	assert.False(t, report.Passed)
	assert.Equal(t, 710, report.PassingScore)
	assert.Equal(t, 320, report.TimeSpentSeconds)
	assert.Len(t, report.Responses, 4)
}

func TestGradeQuiz_PartialCreditCountsTowardScale(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	questions := []models.Question{
		{ID: "q1", Type: models.MultipleChoice, Domain: "1", Correct: "A"},
		{ID: "q2", Type: models.Matching, Domain: "1", Pairs: []models.MatchPair{
			{Left: "a", Right: "1"}, {Left: "b", Right: "2"},
		}},
	}
	answers := map[string]models.UserAnswer{
		"q1": models.ScalarAnswer("A"),
		"q2": models.ScalarMappingAnswer(map[string]string{"a": "1", "b": "wrong"}),
	}

	report := grader.GradeQuiz(questions, answers, 0)

	assert.Equal(t, 1, report.CorrectCount)
	assert.Equal(t, 1.5, report.EarnedPoints)
	assert.Equal(t, 75.0, report.ScorePercentage)
	assert.Equal(t, 700, report.ScaledScore)
}

func TestGradeQuiz_RoundsScaledScore(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	// 15 of 19 correct: 78.947...% -> 100 + 0.78947*800 = 731.58 -> 732
	questions := make([]models.Question, 19)
	answers := map[string]models.UserAnswer{}
	for i := range questions {
		id := string(rune('a' + i))
		questions[i] = models.Question{ID: id, Type: models.MultipleChoice, Correct: "A"}
		if i < 15 {
			answers[id] = models.ScalarAnswer("A")
		}
	}

	report := grader.GradeQuiz(questions, answers, 0)
	assert.Equal(t, 78.9, report.ScorePercentage)
	assert.Equal(t, 732, report.ScaledScore)
	assert.True(t, report.Passed)
}

func TestScale(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	tests := []struct {
		pct  float64
		want int
	}{
		{0, 100},
		{50, 500},
		{78.9, 731},
		{100, 900},
		// Out-of-range percentages clamp to the scale bounds.
		{-5, 100},
		{110, 900},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, grader.scale(tt.pct), "pct=%v", tt.pct)
	}
}

func TestGradeQuiz_BoundaryScores(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	t.Run("all wrong hits the floor", func(t *testing.T) {
		questions := []models.Question{{ID: "q1", Type: models.MultipleChoice, Correct: "A"}}
		report := grader.GradeQuiz(questions, nil, 0)
		assert.Equal(t, 100, report.ScaledScore)
		assert.False(t, report.Passed)
	})

	t.Run("all right hits the ceiling", func(t *testing.T) {
		questions := []models.Question{{ID: "q1", Type: models.MultipleChoice, Correct: "A"}}
		answers := map[string]models.UserAnswer{"q1": models.ScalarAnswer("A")}
		report := grader.GradeQuiz(questions, answers, 0)
		assert.Equal(t, 900, report.ScaledScore)
		assert.True(t, report.Passed)
	})
}

func TestGradeQuiz_EmptyQuiz(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	report := grader.GradeQuiz(nil, nil, 0)

	assert.Equal(t, 0, report.TotalQuestions)
	assert.Equal(t, 0.0, report.ScorePercentage)
	assert.Equal(t, 100, report.ScaledScore)
	assert.False(t, report.Passed)
	assert.Empty(t, report.DomainResults)
}

func TestGradeQuiz_UnansweredGradedAbsent(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	questions := []models.Question{
		{ID: "q1", Type: models.MultipleChoice, Correct: "A"},
		{ID: "q2", Type: models.MultipleChoice, Correct: "B"},
	}
	answers := map[string]models.UserAnswer{"q1": models.ScalarAnswer("A")}

	report := grader.GradeQuiz(questions, answers, 0)

	assert.Equal(t, 1, report.CorrectCount)
	assert.Len(t, report.Responses, 2)
	assert.True(t, report.Responses[1].UserAnswer.IsAbsent())
	assert.False(t, report.Responses[1].IsCorrect)
}

func TestGradeQuiz_DomainBreakdown(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	questions := []models.Question{
		{ID: "q1", Type: models.MultipleChoice, Domain: "1", Correct: "A"},
		{ID: "q2", Type: models.MultipleChoice, Domain: "1", Correct: "B"},
		{ID: "q3", Type: models.MultipleChoice, Domain: "2", Correct: "C"},
		{ID: "q4", Type: models.MultipleChoice, Correct: "D"},
		{ID: "q5", Type: models.MultipleChoice, Domain: "9", Correct: "E"},
	}
	answers := map[string]models.UserAnswer{
		"q1": models.ScalarAnswer("A"),
		"q3": models.ScalarAnswer("C"),
		"q4": models.ScalarAnswer("D"),
	}

	report := grader.GradeQuiz(questions, answers, 0)

	d1 := report.DomainResults["1"]
	assert.Equal(t, 2, d1.Total)
	assert.Equal(t, 1, d1.Correct)
	assert.Equal(t, 50.0, d1.Percentage)
	assert.Equal(t, "Project Management Concepts", d1.Name)
	assert.Equal(t, 0.33, d1.Weight)

	d2 := report.DomainResults["2"]
	assert.Equal(t, 1, d2.Total)
	assert.Equal(t, 1, d2.Correct)
	assert.Equal(t, 100.0, d2.Percentage)

	// Domainless questions land in the sentinel bucket.
	unknown := report.DomainResults[UnknownDomain]
	assert.Equal(t, 1, unknown.Total)
	assert.Equal(t, 1, unknown.Correct)

	// Unconfigured domain codes get a placeholder name and zero weight.
	d9 := report.DomainResults["9"]
	assert.Equal(t, "Domain 9", d9.Name)
	assert.Equal(t, 0.0, d9.Weight)
}

func TestGradeQuiz_ResponsesKeepQuestionOrder(t *testing.T) {
	grader := NewQuizGrader(testScoring())

	questions := []models.Question{
		{ID: "z", Type: models.MultipleChoice, Correct: "A"},
		{ID: "a", Type: models.MultipleChoice, Correct: "A"},
		{ID: "m", Type: models.MultipleChoice, Correct: "A"},
	}

	report := grader.GradeQuiz(questions, nil, 0)

	ids := make([]string, len(report.Responses))
	for i, r := range report.Responses {
		ids[i] = r.QuestionID
	}
	assert.Equal(t, []string{"z", "a", "m"}, ids)
}
