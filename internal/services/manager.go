package services

import (
	"github.com/opteron-x86/exam-ace/internal/cache"
	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/grading"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// ServiceManager bundles the application services behind one access point.
type ServiceManager interface {
	Quiz() QuizService
	Bank() BankService
	History() HistoryService
	Stats() StatsService
	Export() ExportService
}

type serviceManager struct {
	quiz    QuizService
	bank    BankService
	history HistoryService
	stats   StatsService
	export  ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	banks BankLoader,
	scoring models.ScoringConfig,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) ServiceManager {
	grader := grading.NewQuizGrader(scoring)
	return &serviceManager{
		quiz:    NewQuizService(repo, banks, grader, publisher, logger, validator),
		bank:    NewBankService(banks, cacheService, logger),
		history: NewHistoryService(repo, publisher, logger),
		stats:   NewStatsService(repo, cacheService, logger),
		export:  NewExportService(repo, banks, logger),
	}
}

func (m *serviceManager) Quiz() QuizService       { return m.quiz }
func (m *serviceManager) Bank() BankService       { return m.bank }
func (m *serviceManager) History() HistoryService { return m.history }
func (m *serviceManager) Stats() StatsService     { return m.stats }
func (m *serviceManager) Export() ExportService   { return m.export }
