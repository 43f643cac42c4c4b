package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

type BankHandler struct {
	BaseHandler
	bankService services.BankService
}

func NewBankHandler(bankService services.BankService, logger utils.Logger) *BankHandler {
	return &BankHandler{
		BaseHandler: NewBaseHandler(logger),
		bankService: bankService,
	}
}

// ListBanks returns summaries of every loadable bank file.
func (h *BankHandler) ListBanks(c *gin.Context) {
	summaries, err := h.bankService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}
