package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
)

type FlagStore struct {
	db *gorm.DB
}

func NewFlagStore(db *gorm.DB) repositories.FlagRepository {
	return &FlagStore{db: db}
}

func (f *FlagStore) Flag(ctx context.Context, questionID, bankID, reason string) error {
	if reason == "" {
		reason = "review"
	}
	flag := models.FlaggedQuestion{
		QuestionID: questionID,
		BankID:     bankID,
		Reason:     reason,
		CreatedAt:  time.Now().UTC(),
	}
	// Re-flagging the same question refreshes the reason and timestamp.
	return f.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}, {Name: "bank_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason", "created_at"}),
	}).Create(&flag).Error
}

func (f *FlagStore) Unflag(ctx context.Context, questionID, bankID string) error {
	return f.db.WithContext(ctx).
		Where("question_id = ? AND bank_id = ?", questionID, bankID).
		Delete(&models.FlaggedQuestion{}).Error
}

func (f *FlagStore) List(ctx context.Context) ([]*models.FlaggedQuestion, error) {
	var flags []*models.FlaggedQuestion
	if err := f.db.WithContext(ctx).Order("created_at DESC").Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
