package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finage-app/finage_core/internal/core/domain"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
	"github.com/finage-app/finage_core/internal/middleware"
)

// reportingHandler handles HTTP requests related to aggregated reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to aggregated reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/split", h.getIncomeExpenseSplit)
		reportingGroup.GET("/ranking", h.getRanking)
		reportingGroup.GET("/points", h.getPoints)
		reportingGroup.GET("/points/:method/history", h.getPointHistory)
		reportingGroup.GET("/months", h.getDistinctMonths)
		reportingGroup.GET("/daily", h.getDailyTotals)
		reportingGroup.GET("/daily/:method", h.getDailyMethodDetail)
	}
}

func (h *reportingHandler) getIncomeExpenseSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.WindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	split, err := h.reportingService.IncomeExpenseSplit(c.Request.Context(), params.ToWindow())
	if err != nil {
		logger.Error("Failed to compute income/expense split", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute split"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSplitResponse(split))
}

func (h *reportingHandler) getRanking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.RankingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	groupBy := domain.RankingGroup(params.GroupBy)
	if !groupBy.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be METHOD or CATEGORY"})
		return
	}

	ranking, err := h.reportingService.RankingByMethod(c.Request.Context(), params.ToWindow(), groupBy)
	if err != nil {
		logger.Error("Failed to compute ranking", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute ranking"})
		return
	}

	c.JSON(http.StatusOK, ranking)
}

func (h *reportingHandler) getPoints(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.WindowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	points, err := h.reportingService.PointsByMethod(c.Request.Context(), params.ToWindow())
	if err != nil {
		logger.Error("Failed to compute points", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute points"})
		return
	}

	// Stable output ordering for clients.
	res := make([]dto.PointsTotalResponse, 0, len(points))
	for method, total := range points {
		res = append(res, dto.PointsTotalResponse{Method: method, Points: total})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Method < res[j].Method })

	c.JSON(http.StatusOK, res)
}

func (h *reportingHandler) getPointHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	method := c.Param("method")

	history, err := h.reportingService.PointHistory(c.Request.Context(), method)
	if err != nil {
		logger.Error("Failed to load point history", slog.String("method", method), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load point history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordResponse(history))
}

func (h *reportingHandler) getDistinctMonths(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	months, err := h.reportingService.DistinctMonths(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list months", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list months"})
		return
	}

	c.JSON(http.StatusOK, months)
}

// getDailyTotals returns per-method totals for one calendar day and kind.
func (h *reportingHandler) getDailyTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DailyRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	day, err := time.Parse("2006-01-02", params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}
	kind := domain.RecordKind(params.Kind)
	if kind != domain.Expense && kind != domain.Income {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind"})
		return
	}

	totals, err := h.reportingService.TotalsByMethod(c.Request.Context(), day, kind)
	if err != nil {
		logger.Error("Failed to compute daily totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily totals"})
		return
	}

	res := make([]dto.MethodTotalResponse, 0, len(totals))
	for method, total := range totals {
		res = append(res, dto.MethodTotalResponse{Method: method, Total: total})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Method < res[j].Method })

	c.JSON(http.StatusOK, res)
}

// getDailyMethodDetail returns one method's spend and earned points on a
// single calendar day.
func (h *reportingHandler) getDailyMethodDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	method := c.Param("method")
	dateStr := c.Query("date")

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	total, err := h.reportingService.TotalForMethod(c.Request.Context(), method, day)
	if err != nil {
		logger.Error("Failed to compute method total", slog.String("method", method), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute method total"})
		return
	}
	points, err := h.reportingService.PointsForMethodOnDay(c.Request.Context(), method, day)
	if err != nil {
		logger.Error("Failed to compute method points", slog.String("method", method), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute method points"})
		return
	}

	c.JSON(http.StatusOK, dto.MethodDayDetailResponse{Method: method, Total: total, Points: points})
}
