package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/opteron-x86/exam-ace/internal/bank"
	"github.com/opteron-x86/exam-ace/internal/events"
	"github.com/opteron-x86/exam-ace/internal/grading"
	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/repositories"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

// BankLoader is the slice of the bank store the quiz service depends on.
type BankLoader interface {
	ListBanks() ([]models.BankSummary, error)
	LoadQuestions(bankFiles []string) ([]models.Question, error)
	BuildQuiz(bankFiles []string, filters bank.QuizFilters) (string, []models.Question, error)
}

type StartQuizRequest struct {
	BankFiles     []string           `json:"bank_files" validate:"required,min=1"`
	Mode          models.SessionMode `json:"mode" validate:"omitempty,session_mode"`
	Count         int                `json:"count" validate:"omitempty,min=1"`
	Domains       []string           `json:"domains"`
	Difficulties  []string           `json:"difficulties" validate:"omitempty,dive,difficulty_level"`
	QuestionTypes []string           `json:"question_types" validate:"omitempty,dive,question_type"`
	TimeLimit     int                `json:"time_limit" validate:"omitempty,min=0"`
	Randomize     *bool              `json:"randomize"`
}

type StartQuizResult struct {
	SessionID      string                `json:"session_id"`
	Mode           models.SessionMode    `json:"mode"`
	TimeLimit      int                   `json:"time_limit"`
	TotalQuestions int                   `json:"total_questions"`
	Questions      []bank.ClientQuestion `json:"questions"`
}

type SubmitQuizRequest struct {
	Answers          map[string]models.UserAnswer `json:"answers" validate:"required"`
	TimeSpentSeconds int                          `json:"time_spent_seconds" validate:"omitempty,min=0"`
}

type SubmitQuizResult struct {
	SessionID string             `json:"session_id"`
	Results   *models.QuizReport `json:"results"`
}

type SessionResults struct {
	Session   *models.QuizSession        `json:"session"`
	Responses []*models.QuestionResponse `json:"responses"`
	Domains   []repositories.DomainStat  `json:"domains"`
}

// QuizService runs the quiz lifecycle: assemble, grade, persist.
type QuizService interface {
	Start(ctx context.Context, req StartQuizRequest) (*StartQuizResult, error)
	Submit(ctx context.Context, sessionID string, req SubmitQuizRequest) (*SubmitQuizResult, error)
	// Check grades a single question without touching any session state.
	Check(ctx context.Context, question models.Question, answer models.UserAnswer) models.GradeResult
	Results(ctx context.Context, sessionID string) (*SessionResults, error)
}

type quizService struct {
	repo      repositories.Repository
	banks     BankLoader
	grader    *grading.QuizGrader
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
}

func NewQuizService(
	repo repositories.Repository,
	banks BankLoader,
	grader *grading.QuizGrader,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		banks:     banks,
		grader:    grader,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *quizService) Start(ctx context.Context, req StartQuizRequest) (*StartQuizResult, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}
	if len(req.BankFiles) == 0 {
		return nil, ErrNoBanksSelected
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeStudy
	}
	randomize := true
	if req.Randomize != nil {
		randomize = *req.Randomize
	}

	sessionID, questions, err := s.banks.BuildQuiz(req.BankFiles, bank.QuizFilters{
		Count:         req.Count,
		Domains:       req.Domains,
		Difficulties:  req.Difficulties,
		QuestionTypes: req.QuestionTypes,
		Randomize:     randomize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble quiz: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsMatch
	}

	bankIDs, err := json.Marshal(req.BankFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bank list: %w", err)
	}
	config, err := json.Marshal(models.SessionConfig{
		TimeLimit:     req.TimeLimit,
		Count:         req.Count,
		Domains:       req.Domains,
		Difficulties:  req.Difficulties,
		QuestionTypes: req.QuestionTypes,
		Randomize:     randomize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session config: %w", err)
	}

	session := &models.QuizSession{
		ID:             sessionID,
		Mode:           mode,
		BankIDs:        datatypes.JSON(bankIDs),
		StartedAt:      time.Now().UTC(),
		TotalQuestions: len(questions),
		Config:         datatypes.JSON(config),
	}
	if err := s.repo.Session().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz session started",
		"session_id", sessionID,
		"mode", mode,
		"questions", len(questions),
		"banks", req.BankFiles)

	if err := s.publisher.Publish(ctx, &events.QuizEvent{
		Type:      events.QuizStarted,
		SessionID: sessionID,
	}); err != nil {
		s.logger.Warn("failed to publish quiz started event", "session_id", sessionID, "error", err)
	}

	// Study mode keeps answers and explanations in the payload so the
	// client can check as it goes; exam mode strips them.
	includeAnswers := mode == models.ModeStudy
	clientQuestions := make([]bank.ClientQuestion, 0, len(questions))
	for _, q := range questions {
		clientQuestions = append(clientQuestions, bank.PrepareClientQuestion(q, includeAnswers))
	}

	return &StartQuizResult{
		SessionID:      sessionID,
		Mode:           mode,
		TimeLimit:      req.TimeLimit,
		TotalQuestions: len(questions),
		Questions:      clientQuestions,
	}, nil
}

func (s *quizService) Submit(ctx context.Context, sessionID string, req SubmitQuizRequest) (*SubmitQuizResult, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.IsCompleted() {
		return nil, ErrSessionAlreadyCompleted
	}

	var bankFiles []string
	if err := json.Unmarshal(session.BankIDs, &bankFiles); err != nil {
		return nil, fmt.Errorf("failed to decode session bank list: %w", err)
	}

	// Reload the full questions: the client only ever saw the stripped
	// views, the reference answers live in the banks.
	allQuestions, err := s.banks.LoadQuestions(bankFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to reload questions: %w", err)
	}

	// Keep bank order and include every question the client answered or
	// deliberately left blank; the submission carries all question ids.
	questions := make([]models.Question, 0, len(req.Answers))
	for _, q := range allQuestions {
		if _, ok := req.Answers[q.ID]; ok {
			questions = append(questions, q)
		}
	}

	report := s.grader.GradeQuiz(questions, req.Answers, req.TimeSpentSeconds)

	if err := s.repo.Session().Complete(ctx, sessionID, &report); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}
	if err := s.repo.Response().SaveBatch(ctx, sessionID, report.Responses); err != nil {
		return nil, fmt.Errorf("failed to save responses: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz session submitted",
		"session_id", sessionID,
		"scaled_score", report.ScaledScore,
		"passed", report.Passed,
		"correct", report.CorrectCount,
		"total", report.TotalQuestions)

	if err := s.publisher.Publish(ctx, &events.QuizEvent{
		Type:        events.QuizCompleted,
		SessionID:   sessionID,
		ScaledScore: report.ScaledScore,
		Passed:      report.Passed,
	}); err != nil {
		s.logger.Warn("failed to publish quiz completed event", "session_id", sessionID, "error", err)
	}

	return &SubmitQuizResult{SessionID: sessionID, Results: &report}, nil
}

func (s *quizService) Check(ctx context.Context, question models.Question, answer models.UserAnswer) models.GradeResult {
	return grading.Grade(question, answer)
}

func (s *quizService) Results(ctx context.Context, sessionID string) (*SessionResults, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	responses, err := s.repo.Response().GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	domains, err := s.repo.Response().DomainBreakdown(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load domain breakdown: %w", err)
	}

	return &SessionResults{
		Session:   session,
		Responses: responses,
		Domains:   domains,
	}, nil
}
