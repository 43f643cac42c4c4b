package sqlstore

import (
	"gorm.io/gorm"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
)

type store struct {
	session  repositories.SessionRepository
	response repositories.ResponseRepository
	flag     repositories.FlagRepository
	stats    repositories.StatsRepository
}

// New bundles the GORM-backed repositories.
func New(db *gorm.DB) repositories.Repository {
	return &store{
		session:  NewSessionStore(db),
		response: NewResponseStore(db),
		flag:     NewFlagStore(db),
		stats:    NewStatsStore(db),
	}
}

func (s *store) Session() repositories.SessionRepository   { return s.session }
func (s *store) Response() repositories.ResponseRepository { return s.response }
func (s *store) Flag() repositories.FlagRepository         { return s.flag }
func (s *store) Stats() repositories.StatsRepository       { return s.stats }

// Migrate creates or updates the history tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.QuizSession{},
		&models.QuestionResponse{},
		&models.FlaggedQuestion{},
	)
}
