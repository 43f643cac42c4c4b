// Package sqlstore implements the repository contracts on top of GORM.
// It works against the embedded SQLite database used for local runs and
// against PostgreSQL unchanged.
package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
)

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) repositories.SessionRepository {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, session *models.QuizSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (*models.QuizSession, error) {
	var session models.QuizSession
	if err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Complete(ctx context.Context, id string, report *models.QuizReport) error {
	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Model(&models.QuizSession{}).Where("id = ?", id).Updates(map[string]any{
		"completed_at":       &now,
		"time_spent_seconds": report.TimeSpentSeconds,
		"correct_count":      report.CorrectCount,
		"score_percentage":   report.ScorePercentage,
		"scaled_score":       report.ScaledScore,
		"passed":             report.Passed,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func (s *SessionStore) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.QuizSession, error) {
	var sessions []*models.QuizSession

	query := s.db.WithContext(ctx).Model(&models.QuizSession{})
	if filters.Mode != nil {
		query = query.Where("mode = ?", *filters.Mode)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("started_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.QuestionResponse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.QuizSession{}, "id = ?", id).Error
	})
}
