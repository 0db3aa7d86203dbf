// internal/api/handlers/transfer_handler.go
package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/service"
)

type TransferHandler struct {
	transferService *service.TransferService
	uploadDir       string
}

func NewTransferHandler(transferService *service.TransferService, uploadDir string) *TransferHandler {
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}
	return &TransferHandler{transferService: transferService, uploadDir: uploadDir}
}

// Analyze accepts an inventory workbook plus a mode and returns the
// recommendation list with its summary.
func (h *TransferHandler) Analyze(c *gin.Context) {
	result, _, ok := h.runAnalysis(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export runs the same analysis but responds with the XLSX report.
func (h *TransferHandler) Export(c *gin.Context) {
	result, _, ok := h.runAnalysis(c)
	if !ok {
		return
	}

	report, filename, err := h.transferService.ExportReport(c.Request.Context(), result)
	if err != nil {
		log.Error().Err(err).Msg("failed to render report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// GetModes lists the selectable transfer modes.
func (h *TransferHandler) GetModes(c *gin.Context) {
	modes := make([]gin.H, 0, len(domain.Modes))
	for _, mode := range domain.Modes {
		modes = append(modes, gin.H{"mode": mode, "name": mode.Name()})
	}
	c.JSON(http.StatusOK, modes)
}

// GetRuns returns recent analysis runs when run history is enabled.
func (h *TransferHandler) GetRuns(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 {
		limit = v
	}

	runs, err := h.transferService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// GetRun returns a single analysis run by id.
func (h *TransferHandler) GetRun(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.transferService.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// GetReports lists archived report files, when an archive is configured.
func (h *TransferHandler) GetReports(c *gin.Context) {
	reports, err := h.transferService.ListReports(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list archived reports")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archived reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *TransferHandler) runAnalysis(c *gin.Context) (*domain.AnalysisResult, domain.Mode, bool) {
	mode, err := domain.ParseMode(c.PostForm("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, "", false
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no dataset file provided"})
		return nil, "", false
	}

	path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return nil, "", false
	}

	result, err := h.transferService.AnalyzeFile(c.Request.Context(), path, file.Filename, mode)
	if err != nil {
		status := http.StatusInternalServerError
		var schemaErr *domain.SchemaError
		var typeErr *domain.DataTypeError
		if errors.As(err, &schemaErr) || errors.As(err, &typeErr) {
			status = http.StatusBadRequest
		}
		log.Error().Err(err).Str("filename", file.Filename).Msg("analysis failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, "", false
	}

	return result, mode, true
}
