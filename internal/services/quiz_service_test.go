package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/opteron-x86/exam-ace/internal/bank"
	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/grading"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.QuizSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) Complete(ctx context.Context, id string, report *models.QuizReport) error {
	args := m.Called(ctx, id, report)
	return args.Error(0)
}

func (m *MockSessionRepository) List(ctx context.Context, filters repositories.SessionFilters) ([]*models.QuizSession, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) SaveBatch(ctx context.Context, sessionID string, responses []models.ResponseRecord) error {
	args := m.Called(ctx, sessionID, responses)
	return args.Error(0)
}

func (m *MockResponseRepository) GetBySession(ctx context.Context, sessionID string) ([]*models.QuestionResponse, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.QuestionResponse), args.Error(1)
}

func (m *MockResponseRepository) DomainBreakdown(ctx context.Context, sessionID string) ([]repositories.DomainStat, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]repositories.DomainStat), args.Error(1)
}

// MockRepository bundles the repository mocks behind the Repository interface
type MockRepository struct {
	sessionRepo  *MockSessionRepository
	responseRepo *MockResponseRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		sessionRepo:  &MockSessionRepository{},
		responseRepo: &MockResponseRepository{},
	}
}

func (m *MockRepository) Session() repositories.SessionRepository   { return m.sessionRepo }
func (m *MockRepository) Response() repositories.ResponseRepository { return m.responseRepo }
func (m *MockRepository) Flag() repositories.FlagRepository         { return nil }
func (m *MockRepository) Stats() repositories.StatsRepository       { return nil }

// MockBankLoader is a mock implementation of BankLoader
type MockBankLoader struct {
	mock.Mock
}

func (m *MockBankLoader) ListBanks() ([]models.BankSummary, error) {
	args := m.Called()
	return args.Get(0).([]models.BankSummary), args.Error(1)
}

func (m *MockBankLoader) LoadQuestions(bankFiles []string) ([]models.Question, error) {
	args := m.Called(bankFiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockBankLoader) BuildQuiz(bankFiles []string, filters bank.QuizFilters) (string, []models.Question, error) {
	args := m.Called(bankFiles, filters)
	return args.String(0), args.Get(1).([]models.Question), args.Error(2)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *events.QuizEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func testQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Type: models.MultipleChoice, Domain: "1", Correct: "A"},
		{ID: "q2", Type: models.MultipleChoice, Domain: "2", Correct: "B"},
	}
}

func newTestQuizService(repo *MockRepository, banks *MockBankLoader, publisher *MockEventPublisher) QuizService {
	grader := grading.NewQuizGrader(models.ScoringConfig{
		ScaleMin:     100,
		ScaleMax:     900,
		PassingScore: 710,
	})
	return NewQuizService(repo, banks, grader, publisher, utils.NewDevelopmentLogger(), utils.NewValidator())
}

func TestQuizService_Start(t *testing.T) {
	tests := []struct {
		name        string
		request     StartQuizRequest
		setupMocks  func(*MockRepository, *MockBankLoader, *MockEventPublisher)
		expectError error
		check       func(*testing.T, *StartQuizResult)
	}{
		{
			name: "study mode includes answers",
			request: StartQuizRequest{
				BankFiles: []string{"pk.json"},
			},
			setupMocks: func(repo *MockRepository, banks *MockBankLoader, publisher *MockEventPublisher) {
				banks.On("BuildQuiz", []string{"pk.json"}, mock.MatchedBy(func(f bank.QuizFilters) bool {
					return f.Randomize
				})).Return("abc12345", testQuestions(), nil)
				repo.sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.QuizSession) bool {
					return s.ID == "abc12345" && s.Mode == models.ModeStudy && s.TotalQuestions == 2
				})).Return(nil)
				publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *events.QuizEvent) bool {
					return e.Type == events.QuizStarted && e.SessionID == "abc12345"
				})).Return(nil)
			},
			check: func(t *testing.T, result *StartQuizResult) {
				assert.Equal(t, "abc12345", result.SessionID)
				assert.Equal(t, models.ModeStudy, result.Mode)
				require.Len(t, result.Questions, 2)
				assert.Equal(t, "A", result.Questions[0].Correct)
			},
		},
		{
			name: "exam mode strips answers",
			request: StartQuizRequest{
				BankFiles: []string{"pk.json"},
				Mode:      models.ModeExam,
			},
			setupMocks: func(repo *MockRepository, banks *MockBankLoader, publisher *MockEventPublisher) {
				banks.On("BuildQuiz", mock.Anything, mock.Anything).Return("def67890", testQuestions(), nil)
				repo.sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, result *StartQuizResult) {
				require.Len(t, result.Questions, 2)
				assert.Empty(t, result.Questions[0].Correct)
				assert.Empty(t, result.Questions[0].Explanation)
			},
		},
		{
			name: "no banks selected",
			request: StartQuizRequest{
				BankFiles: []string{},
			},
			setupMocks:  func(*MockRepository, *MockBankLoader, *MockEventPublisher) {},
			expectError: ErrValidationFailed,
		},
		{
			name: "no questions match filters",
			request: StartQuizRequest{
				BankFiles: []string{"pk.json"},
				Domains:   []string{"99"},
			},
			setupMocks: func(repo *MockRepository, banks *MockBankLoader, publisher *MockEventPublisher) {
				banks.On("BuildQuiz", mock.Anything, mock.Anything).Return("", []models.Question{}, nil)
			},
			expectError: ErrNoQuestionsMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			banks := &MockBankLoader{}
			publisher := &MockEventPublisher{}
			tt.setupMocks(repo, banks, publisher)

			service := newTestQuizService(repo, banks, publisher)
			result, err := service.Start(context.Background(), tt.request)

			if tt.expectError != nil {
				require.Error(t, err)
				if tt.expectError != ErrValidationFailed {
					assert.ErrorIs(t, err, tt.expectError)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, result)
			repo.sessionRepo.AssertExpectations(t)
			banks.AssertExpectations(t)
		})
	}
}

func TestQuizService_Submit(t *testing.T) {
	bankIDs, err := json.Marshal([]string{"pk.json"})
	require.NoError(t, err)

	openSession := func() *models.QuizSession {
		return &models.QuizSession{
			ID:             "abc12345",
			Mode:           models.ModeExam,
			BankIDs:        datatypes.JSON(bankIDs),
			StartedAt:      time.Now().UTC(),
			TotalQuestions: 2,
		}
	}

	t.Run("grades and persists", func(t *testing.T) {
		repo := newMockRepository()
		banks := &MockBankLoader{}
		publisher := &MockEventPublisher{}

		repo.sessionRepo.On("GetByID", mock.Anything, "abc12345").Return(openSession(), nil)
		banks.On("LoadQuestions", []string{"pk.json"}).Return(testQuestions(), nil)
		repo.sessionRepo.On("Complete", mock.Anything, "abc12345", mock.MatchedBy(func(r *models.QuizReport) bool {
			return r.CorrectCount == 1 && r.TotalQuestions == 2
		})).Return(nil)
		repo.responseRepo.On("SaveBatch", mock.Anything, "abc12345", mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *events.QuizEvent) bool {
			return e.Type == events.QuizCompleted && e.SessionID == "abc12345"
		})).Return(nil)

		service := newTestQuizService(repo, banks, publisher)
		result, err := service.Submit(context.Background(), "abc12345", SubmitQuizRequest{
			Answers: map[string]models.UserAnswer{
				"q1": models.ScalarAnswer("A"),
				"q2": models.ScalarAnswer("wrong"),
			},
			TimeSpentSeconds: 180,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Results.CorrectCount)
		assert.Equal(t, 50.0, result.Results.ScorePercentage)
		assert.Equal(t, 500, result.Results.ScaledScore)
		assert.False(t, result.Results.Passed)
		assert.Equal(t, 180, result.Results.TimeSpentSeconds)
		repo.sessionRepo.AssertExpectations(t)
		repo.responseRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("session not found", func(t *testing.T) {
		repo := newMockRepository()
		repo.sessionRepo.On("GetByID", mock.Anything, "missing").Return(nil, repositories.ErrRecordNotFound)

		service := newTestQuizService(repo, &MockBankLoader{}, &MockEventPublisher{})
		_, err := service.Submit(context.Background(), "missing", SubmitQuizRequest{
			Answers: map[string]models.UserAnswer{"q1": models.ScalarAnswer("A")},
		})

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		completed := openSession()
		now := time.Now().UTC()
		completed.CompletedAt = &now

		repo := newMockRepository()
		repo.sessionRepo.On("GetByID", mock.Anything, "abc12345").Return(completed, nil)

		service := newTestQuizService(repo, &MockBankLoader{}, &MockEventPublisher{})
		_, err := service.Submit(context.Background(), "abc12345", SubmitQuizRequest{
			Answers: map[string]models.UserAnswer{"q1": models.ScalarAnswer("A")},
		})

		assert.ErrorIs(t, err, ErrSessionAlreadyCompleted)
	})

	t.Run("only submitted questions are graded", func(t *testing.T) {
		repo := newMockRepository()
		banks := &MockBankLoader{}
		publisher := &MockEventPublisher{}

		repo.sessionRepo.On("GetByID", mock.Anything, "abc12345").Return(openSession(), nil)
		banks.On("LoadQuestions", []string{"pk.json"}).Return(testQuestions(), nil)
		repo.sessionRepo.On("Complete", mock.Anything, "abc12345", mock.MatchedBy(func(r *models.QuizReport) bool {
			return r.TotalQuestions == 1
		})).Return(nil)
		repo.responseRepo.On("SaveBatch", mock.Anything, "abc12345", mock.Anything).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		service := newTestQuizService(repo, banks, publisher)
		result, err := service.Submit(context.Background(), "abc12345", SubmitQuizRequest{
			Answers: map[string]models.UserAnswer{"q2": models.AbsentAnswer()},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Results.TotalQuestions)
		assert.Equal(t, 0, result.Results.CorrectCount)
	})
}

func TestQuizService_Check(t *testing.T) {
	service := newTestQuizService(newMockRepository(), &MockBankLoader{}, &MockEventPublisher{})

	q := models.Question{ID: "q1", Type: models.MultipleChoice, Correct: "A"}
	result := service.Check(context.Background(), q, models.ScalarAnswer("A"))
	assert.True(t, result.IsCorrect)

	result = service.Check(context.Background(), q, models.ScalarAnswer("B"))
	assert.False(t, result.IsCorrect)
}

func TestQuizService_Results(t *testing.T) {
	t.Run("returns session with responses", func(t *testing.T) {
		repo := newMockRepository()
		session := &models.QuizSession{ID: "abc12345", Mode: models.ModeExam}
		responses := []*models.QuestionResponse{{SessionID: "abc12345", QuestionID: "q1", IsCorrect: true}}
		domains := []repositories.DomainStat{{Domain: "1", Total: 1, Correct: 1, Percentage: 100}}

		repo.sessionRepo.On("GetByID", mock.Anything, "abc12345").Return(session, nil)
		repo.responseRepo.On("GetBySession", mock.Anything, "abc12345").Return(responses, nil)
		repo.responseRepo.On("DomainBreakdown", mock.Anything, "abc12345").Return(domains, nil)

		service := newTestQuizService(repo, &MockBankLoader{}, &MockEventPublisher{})
		result, err := service.Results(context.Background(), "abc12345")

		require.NoError(t, err)
		assert.Equal(t, session, result.Session)
		assert.Len(t, result.Responses, 1)
		assert.Len(t, result.Domains, 1)
	})

	t.Run("session not found", func(t *testing.T) {
		repo := newMockRepository()
		repo.sessionRepo.On("GetByID", mock.Anything, "missing").Return(nil, repositories.ErrRecordNotFound)

		service := newTestQuizService(repo, &MockBankLoader{}, &MockEventPublisher{})
		_, err := service.Results(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
