// Package repositories defines the persistence contracts consumed by the
// service layer. Implementations live in subpackages.
package repositories

import (
	"context"
	"errors"

	"github.com/opteron-x86/exam-ace/internal/models"
)

var ErrRecordNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// ===== FILTERS =====

type SessionFilters struct {
	Mode   *models.SessionMode
	Limit  int
	Offset int
}

// ===== STATISTICS STRUCTS =====

type SessionStats struct {
	TotalAttempts          int     `json:"total_attempts"`
	ExamAttempts           int     `json:"exam_attempts"`
	StudyAttempts          int     `json:"study_attempts"`
	AvgScore               float64 `json:"avg_score"`
	BestScore              float64 `json:"best_score"`
	PassCount              int     `json:"pass_count"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
}

type DomainStat struct {
	Domain     string  `json:"domain"`
	Total      int     `json:"total"`
	Correct    int     `json:"correct"`
	Percentage float64 `json:"pct"`
}

type RecentScore struct {
	ScaledScore int                `json:"scaled_score"`
	StartedAt   string             `json:"started_at"`
	Mode        models.SessionMode `json:"mode"`
}

type OverallStats struct {
	Sessions     SessionStats  `json:"sessions"`
	Domains      []DomainStat  `json:"domains"`
	RecentScores []RecentScore `json:"recent_scores"`
}

// ===== REPOSITORY INTERFACES =====

type SessionRepository interface {
	Create(ctx context.Context, session *models.QuizSession) error
	GetByID(ctx context.Context, id string) (*models.QuizSession, error)
	// Complete stamps the session with its scored results.
	Complete(ctx context.Context, id string, report *models.QuizReport) error
	List(ctx context.Context, filters SessionFilters) ([]*models.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

type ResponseRepository interface {
	SaveBatch(ctx context.Context, sessionID string, responses []models.ResponseRecord) error
	GetBySession(ctx context.Context, sessionID string) ([]*models.QuestionResponse, error)
	// DomainBreakdown aggregates one session's responses by domain code.
	DomainBreakdown(ctx context.Context, sessionID string) ([]DomainStat, error)
}

type FlagRepository interface {
	Flag(ctx context.Context, questionID, bankID, reason string) error
	Unflag(ctx context.Context, questionID, bankID string) error
	List(ctx context.Context) ([]*models.FlaggedQuestion, error)
}

type StatsRepository interface {
	Overall(ctx context.Context) (*OverallStats, error)
}

// Repository bundles all persistence contracts behind one access point.
type Repository interface {
	Session() SessionRepository
	Response() ResponseRepository
	Flag() FlagRepository
	Stats() StatsRepository
}
