package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opteron-x86/exam-ace/internal/services"
	"github.com/opteron-x86/exam-ace/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportHistory downloads all session history as an Excel workbook.
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	h.LogRequest(c, "Exporting session history")

	data, err := h.exportService.ExportHistory(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_history_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportBank downloads one bank's questions as an Excel workbook.
func (h *ExportHandler) ExportBank(c *gin.Context) {
	bankFile := ParseStringIDParam(c, "file")
	if bankFile == "" {
		return
	}

	h.LogRequest(c, "Exporting bank", "bank_file", bankFile)

	data, err := h.exportService.ExportBank(c.Request.Context(), bankFile)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", bankFile, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
