package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
)

type ResponseStore struct {
	db *gorm.DB
}

func NewResponseStore(db *gorm.DB) repositories.ResponseRepository {
	return &ResponseStore{db: db}
}

func (r *ResponseStore) SaveBatch(ctx context.Context, sessionID string, responses []models.ResponseRecord) error {
	if len(responses) == 0 {
		return nil
	}

	rows := make([]models.QuestionResponse, 0, len(responses))
	for _, resp := range responses {
		userJSON, err := json.Marshal(resp.UserAnswer)
		if err != nil {
			return fmt.Errorf("failed to encode user answer for %s: %w", resp.QuestionID, err)
		}
		correctJSON, err := json.Marshal(resp.CorrectAnswer)
		if err != nil {
			return fmt.Errorf("failed to encode correct answer for %s: %w", resp.QuestionID, err)
		}
		rows = append(rows, models.QuestionResponse{
			SessionID:        sessionID,
			QuestionID:       resp.QuestionID,
			QuestionType:     resp.QuestionType,
			Domain:           resp.Domain,
			Objective:        resp.Objective,
			UserAnswer:       datatypes.JSON(userJSON),
			CorrectAnswer:    datatypes.JSON(correctJSON),
			IsCorrect:        resp.IsCorrect,
			PartialScore:     resp.PartialScore,
			TimeSpentSeconds: resp.TimeSpentSeconds,
		})
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ResponseStore) GetBySession(ctx context.Context, sessionID string) ([]*models.QuestionResponse, error) {
	var responses []*models.QuestionResponse
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponseStore) DomainBreakdown(ctx context.Context, sessionID string) ([]repositories.DomainStat, error) {
	var stats []repositories.DomainStat
	err := r.db.WithContext(ctx).
		Model(&models.QuestionResponse{}).
		Select("domain, COUNT(*) AS total, SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) AS correct, ROUND(AVG(CASE WHEN is_correct THEN 1.0 ELSE 0.0 END) * 100, 1) AS percentage").
		Where("session_id = ? AND domain <> ''", sessionID).
		Group("domain").
		Order("domain").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
