package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/models"
	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

type HistoryHandler struct {
	BaseHandler
	historyService services.HistoryService
	statsService   services.StatsService
	validator      *utils.Validator
}

type FlagQuestionRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	BankID     string `json:"bank_id" validate:"required"`
	Reason     string `json:"reason"`
}

func NewHistoryHandler(
	historyService services.HistoryService,
	statsService services.StatsService,
	validator *utils.Validator,
	logger utils.Logger,
) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler:    NewBaseHandler(logger),
		historyService: historyService,
		statsService:   statsService,
		validator:      validator,
	}
}

// ListSessions returns session history, newest first, optionally filtered
// by mode.
func (h *HistoryHandler) ListSessions(c *gin.Context) {
	var mode *models.SessionMode
	if m := c.Query("mode"); m != "" {
		sm := models.SessionMode(m)
		if sm != models.ModeStudy && sm != models.ModeExam {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid mode",
				Details: "mode must be 'study' or 'exam'",
			})
			return
		}
		mode = &sm
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, err := h.historyService.List(c.Request.Context(), mode, limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// DeleteSession removes a session and its responses.
func (h *HistoryHandler) DeleteSession(c *gin.Context) {
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	h.LogRequest(c, "Deleting session", "session_id", sessionID)

	if err := h.historyService.Delete(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetStats returns aggregate statistics across all completed sessions.
func (h *HistoryHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Overall(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// FlagQuestion marks a question for later review.
func (h *HistoryHandler) FlagQuestion(c *gin.Context) {
	var req FlagQuestionRequest
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

	if err := h.historyService.FlagQuestion(c.Request.Context(), req.QuestionID, req.BankID, req.Reason); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flagged": true})
}

// UnflagQuestion removes a review flag.
func (h *HistoryHandler) UnflagQuestion(c *gin.Context) {
	questionID := c.Query("question_id")
	bankID := c.Query("bank_id")
	if questionID == "" || bankID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "question_id and bank_id are required",
		})
		return
	}

	if err := h.historyService.UnflagQuestion(c.Request.Context(), questionID, bankID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unflagged": true})
}

// ListFlagged returns every flagged question.
func (h *HistoryHandler) ListFlagged(c *gin.Context) {
	flags, err := h.historyService.ListFlagged(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, flags)
}
