package http

import (
	"bytes"
	"net/http"
	"time"

	"github.com/motohub/dealership_service/internal/core/ports"
	"github.com/motohub/dealership_service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
	logger        ports.LoggerPort
	metrics       ports.MetricsPort
}

func NewReportHandler(
	reportService *services.ReportService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
		metrics:       metrics,
	}
}

// @Summary Sales summary
// @Description Aggregated sales figures per branch for dashboards
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {array} domain.BranchSummary
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /reports/summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	branch := branchScope(payload, c.Query("branch"))

	summaries, err := h.reportService.SalesSummary(c.Request.Context(), branch)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

// @Summary Export sales CSV
// @Tags reports
// @Security BearerAuth
// @Produce text/csv
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {file} binary "CSV file"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /reports/sales.csv [get]
func (h *ReportHandler) ExportSalesCSV(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	branch := branchScope(payload, c.Query("branch"))

	// Exports are small (a handful of branches), so build the file in
	// memory first: a repository error must not leak a truncated 200.
	var buf bytes.Buffer
	if err := h.reportService.ExportSalesCSV(c.Request.Context(), branch, &buf); err != nil {
		h.logger.Error("Failed to export sales CSV", map[string]interface{}{
			"error":  err.Error(),
			"branch": branch,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to export sales")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sales.csv")
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// @Summary List motorcycle sales
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param branch query string false "Branch filter (head office only)"
// @Success 200 {array} domain.MotorcycleSale
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /motorcycle-sales [get]
func (h *ReportHandler) ListMotorcycleSales(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	branch := branchScope(payload, c.Query("branch"))

	sales, err := h.reportService.ListMotorcycleSales(c.Request.Context(), branch)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list motorcycle sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}
