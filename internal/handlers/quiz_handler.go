package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
	validator   *utils.Validator
}

// CheckAnswerRequest carries one question with its submitted answer for a
// study-mode spot check.
type CheckAnswerRequest struct {
	Question models.Question   `json:"question" validate:"required"`
	Answer   models.UserAnswer `json:"answer"`
}

func NewQuizHandler(quizService services.QuizService, validator *utils.Validator, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
		validator:   validator,
	}
}

// StartQuiz assembles a new quiz session from the selected banks.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req services.StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Starting quiz", "banks", req.BankFiles, "mode", req.Mode)

	result, err := h.quizService.Start(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SubmitQuiz scores a full submission and persists the results.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting quiz", "session_id", sessionID, "answers", len(req.Answers))

	result, err := h.quizService.Submit(c.Request.Context(), sessionID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckAnswer grades a single question for study mode without touching the
// session.
func (h *QuizHandler) CheckAnswer(c *gin.Context) {
	var req CheckAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}
	if req.Question.Type == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: "question.type is required",
		})
		return
	}

	result := h.quizService.Check(c.Request.Context(), req.Question, req.Answer)
	c.JSON(http.StatusOK, result)
}

// GetResults returns a stored session with its responses and domain
// breakdown.
func (h *QuizHandler) GetResults(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	results, err := h.quizService.Results(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
