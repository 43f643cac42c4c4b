package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
)

type StatsStore struct {
	db *gorm.DB
}

func NewStatsStore(db *gorm.DB) repositories.StatsRepository {
	return &StatsStore{db: db}
}

func (s *StatsStore) Overall(ctx context.Context) (*repositories.OverallStats, error) {
	stats := &repositories.OverallStats{
		Domains:      []repositories.DomainStat{},
		RecentScores: []repositories.RecentScore{},
	}

	// Only completed sessions count toward statistics.
	err := s.db.WithContext(ctx).
		Model(&models.QuizSession{}).
		Where("completed_at IS NOT NULL").
		Select(`COUNT(*) AS total_attempts,
			SUM(CASE WHEN mode = 'exam' THEN 1 ELSE 0 END) AS exam_attempts,
			SUM(CASE WHEN mode = 'study' THEN 1 ELSE 0 END) AS study_attempts,
			COALESCE(AVG(score_percentage), 0) AS avg_score,
			COALESCE(MAX(score_percentage), 0) AS best_score,
			SUM(CASE WHEN passed THEN 1 ELSE 0 END) AS pass_count,
			COALESCE(SUM(total_questions), 0) AS total_questions_answered`).
		Scan(&stats.Sessions).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(&models.QuestionResponse{}).
		Select("domain, COUNT(*) AS total, SUM(CASE WHEN is_correct THEN 1 ELSE 0 END) AS correct, ROUND(AVG(CASE WHEN is_correct THEN 1.0 ELSE 0.0 END) * 100, 1) AS percentage").
		Where("domain <> ''").
		Group("domain").
		Order("domain").
		Scan(&stats.Domains).Error
	if err != nil {
		return nil, err
	}

	var recent []models.QuizSession
	err = s.db.WithContext(ctx).
		Model(&models.QuizSession{}).
		Where("completed_at IS NOT NULL").
		Order("started_at DESC").
		Limit(10).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	for _, sess := range recent {
		stats.RecentScores = append(stats.RecentScores, repositories.RecentScore{
			ScaledScore: sess.ScaledScore,
			StartedAt:   sess.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Mode:        sess.Mode,
		})
	}

	return stats, nil
}
