package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

type HandlerManager struct {
	quizHandler    *QuizHandler
	bankHandler    *BankHandler
	historyHandler *HistoryHandler
	exportHandler  *ExportHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), validator, logger),
		bankHandler:    NewBankHandler(serviceManager.Bank(), logger),
		historyHandler: NewHistoryHandler(serviceManager.History(), serviceManager.Stats(), validator, logger),
		exportHandler:  NewExportHandler(serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Bank routes
		v1.GET("/banks", hm.bankHandler.ListBanks)

		// Quiz routes
		quiz := v1.Group("/quiz")
		{
			quiz.POST("/start", hm.quizHandler.StartQuiz)
			quiz.POST("/:id/submit", hm.quizHandler.SubmitQuiz)
			quiz.POST("/:id/check", hm.quizHandler.CheckAnswer)
		}

		// Results and history routes
		v1.GET("/results/:id", hm.quizHandler.GetResults)
		v1.GET("/history", hm.historyHandler.ListSessions)
		v1.DELETE("/history/:id", hm.historyHandler.DeleteSession)
		v1.GET("/stats", hm.historyHandler.GetStats)

		// Review flag routes
		flags := v1.Group("/flags")
		{
			flags.GET("", hm.historyHandler.ListFlagged)
			flags.POST("", hm.historyHandler.FlagQuestion)
			flags.DELETE("", hm.historyHandler.UnflagQuestion)
		}

		// Export routes
		export := v1.Group("/export")
		{
			export.GET("/history", hm.exportHandler.ExportHistory)
			export.GET("/banks/:file", hm.exportHandler.ExportBank)
		}
	}
}
