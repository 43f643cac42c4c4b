package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// MockFlagRepository is a mock implementation of FlagRepository
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Flag(ctx context.Context, questionID, bankID, reason string) error {
	args := m.Called(ctx, questionID, bankID, reason)
	return args.Error(0)
}

func (m *MockFlagRepository) Unflag(ctx context.Context, questionID, bankID string) error {
	args := m.Called(ctx, questionID, bankID)
	return args.Error(0)
}

func (m *MockFlagRepository) List(ctx context.Context) ([]*models.FlaggedQuestion, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.FlaggedQuestion), args.Error(1)
}

type mockFlagBundle struct {
	*MockRepository
	flagRepo *MockFlagRepository
}

func (m *mockFlagBundle) Flag() repositories.FlagRepository { return m.flagRepo }

func newTestHistoryService(repo repositories.Repository, publisher events.EventPublisher) HistoryService {
	return NewHistoryService(repo, publisher, utils.NewDevelopmentLogger())
}

func TestHistoryService_List(t *testing.T) {
	repo := newMockRepository()
	sessions := []*models.QuizSession{{ID: "abc12345"}}

	repo.sessionRepo.On("List", mock.Anything, mock.MatchedBy(func(f repositories.SessionFilters) bool {
		// Default limit applies when the caller passes zero.
		return f.Limit == 50 && f.Mode == nil
	})).Return(sessions, nil)

	service := newTestHistoryService(repo, &MockEventPublisher{})
	got, err := service.List(context.Background(), nil, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, sessions, got)
	repo.sessionRepo.AssertExpectations(t)
}

func TestHistoryService_Delete(t *testing.T) {
	repo := newMockRepository()
	publisher := &MockEventPublisher{}

	repo.sessionRepo.On("Delete", mock.Anything, "abc12345").Return(nil)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e *events.QuizEvent) bool {
		return e.Type == events.SessionDeleted && e.SessionID == "abc12345"
	})).Return(nil)

	service := newTestHistoryService(repo, publisher)
	err := service.Delete(context.Background(), "abc12345")

	require.NoError(t, err)
	repo.sessionRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestHistoryService_Flags(t *testing.T) {
	t.Run("flag requires identifiers", func(t *testing.T) {
		service := newTestHistoryService(newMockRepository(), &MockEventPublisher{})

		err := service.FlagQuestion(context.Background(), "", "pk.json", "typo")
		assert.ErrorIs(t, err, ErrBadRequest)

		err = service.FlagQuestion(context.Background(), "q1", "", "typo")
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("flag and unflag delegate to repository", func(t *testing.T) {
		flagRepo := &MockFlagRepository{}
		repo := &mockFlagBundle{MockRepository: newMockRepository(), flagRepo: flagRepo}

		flagRepo.On("Flag", mock.Anything, "q1", "pk.json", "ambiguous wording").Return(nil)
		flagRepo.On("Unflag", mock.Anything, "q1", "pk.json").Return(nil)

		service := newTestHistoryService(repo, &MockEventPublisher{})
		require.NoError(t, service.FlagQuestion(context.Background(), "q1", "pk.json", "ambiguous wording"))
		require.NoError(t, service.UnflagQuestion(context.Background(), "q1", "pk.json"))
		flagRepo.AssertExpectations(t)
	})

	t.Run("list flags", func(t *testing.T) {
		flagRepo := &MockFlagRepository{}
		repo := &mockFlagBundle{MockRepository: newMockRepository(), flagRepo: flagRepo}
		flags := []*models.FlaggedQuestion{{QuestionID: "q1", BankID: "pk.json"}}
		flagRepo.On("List", mock.Anything).Return(flags, nil)

		service := newTestHistoryService(repo, &MockEventPublisher{})
		got, err := service.ListFlagged(context.Background())

		require.NoError(t, err)
		assert.Equal(t, flags, got)
	})
}
