package models

// GradeResult is the outcome of grading a single question.
// IsCorrect means an exact match against the reference answer; PartialScore
// is fractional credit in [0,1] and equals 1.0 whenever IsCorrect is true.
type GradeResult struct {
	IsCorrect     bool         `json:"is_correct"`
	PartialScore  float64      `json:"partial_score"`
	CorrectAnswer any          `json:"correct_answer"`
	Feedback      string       `json:"feedback"`
	PartResults   []PartResult `json:"part_results,omitempty"`
}

// PartResult is the grade of one scenario sub-part.
type PartResult struct {
	PartID string `json:"part_id"`
	GradeResult
}

// DomainResult is one group of the per-domain breakdown.
type DomainResult struct {
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Earned     float64 `json:"earned"`
	Percentage float64 `json:"percentage"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
}

// ResponseRecord pairs one question's metadata with the submitted answer and
// its grade, preserving quiz order.
type ResponseRecord struct {
	QuestionID       string       `json:"question_id"`
	QuestionType     QuestionType `json:"question_type"`
	Domain           string       `json:"domain,omitempty"`
	Objective        string       `json:"objective,omitempty"`
	UserAnswer       UserAnswer   `json:"user_answer"`
	CorrectAnswer    any          `json:"correct_answer"`
	IsCorrect        bool         `json:"is_correct"`
	PartialScore     float64      `json:"partial_score"`
	Feedback         string       `json:"feedback,omitempty"`
	PartResults      []PartResult `json:"part_results,omitempty"`
	TimeSpentSeconds int          `json:"time_spent_seconds"`
}

// QuizReport is the overall result of grading a full quiz submission.
type QuizReport struct {
	TotalQuestions   int                     `json:"total_questions"`
	CorrectCount     int                     `json:"correct_count"`
	EarnedPoints     float64                 `json:"earned_points"`
	TotalPoints      int                     `json:"total_points"`
	ScorePercentage  float64                 `json:"score_percentage"`
	ScaledScore      int                     `json:"scaled_score"`
	Passed           bool                    `json:"passed"`
	PassingScore     int                     `json:"passing_score"`
	TimeSpentSeconds int                     `json:"time_spent_seconds"`
	DomainResults    map[string]DomainResult `json:"domain_results"`
	Responses        []ResponseRecord        `json:"responses"`
}

// DomainInfo is the configured display name and exam weight of a domain code.
type DomainInfo struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// ScoringConfig fixes the scaled-score range, passing threshold and domain
// weight table for one grader instance. It is passed in at construction so
// alternative scoring schemes can coexist.
type ScoringConfig struct {
	ScaleMin      int
	ScaleMax      int
	PassingScore  int
	DomainWeights map[string]DomainInfo
}
