package services

import (
	"context"
	"fmt"

	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// HistoryService manages stored sessions and review flags.
type HistoryService interface {
	List(ctx context.Context, mode *models.SessionMode, limit, offset int) ([]*models.QuizSession, error)
	Delete(ctx context.Context, sessionID string) error
	FlagQuestion(ctx context.Context, questionID, bankID, reason string) error
	UnflagQuestion(ctx context.Context, questionID, bankID string) error
	ListFlagged(ctx context.Context) ([]*models.FlaggedQuestion, error)
}

type historyService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger
}

func NewHistoryService(repo repositories.Repository, publisher events.EventPublisher, logger utils.Logger) HistoryService {
	return &historyService{repo: repo, publisher: publisher, logger: logger}
}

func (s *historyService) List(ctx context.Context, mode *models.SessionMode, limit, offset int) ([]*models.QuizSession, error) {
	if limit <= 0 {
		limit = 50
	}
	sessions, err := s.repo.Session().List(ctx, repositories.SessionFilters{
		Mode:   mode,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (s *historyService) Delete(ctx context.Context, sessionID string) error {
	if err := s.repo.Session().Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.InfoContext(ctx, "session deleted", "session_id", sessionID)

	if err := s.publisher.Publish(ctx, &events.QuizEvent{
		Type:      events.SessionDeleted,
		SessionID: sessionID,
	}); err != nil {
		s.logger.Warn("failed to publish session deleted event", "session_id", sessionID, "error", err)
	}
	return nil
}

func (s *historyService) FlagQuestion(ctx context.Context, questionID, bankID, reason string) error {
	if questionID == "" || bankID == "" {
		return ErrBadRequest
	}
	return s.repo.Flag().Flag(ctx, questionID, bankID, reason)
}

func (s *historyService) UnflagQuestion(ctx context.Context, questionID, bankID string) error {
	if questionID == "" || bankID == "" {
		return ErrBadRequest
	}
	return s.repo.Flag().Unflag(ctx, questionID, bankID)
}

func (s *historyService) ListFlagged(ctx context.Context) ([]*models.FlaggedQuestion, error) {
	return s.repo.Flag().List(ctx)
}
