package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finage-app/finage_core/internal/apperrors"
	"github.com/finage-app/finage_core/internal/core/domain"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
	"github.com/finage-app/finage_core/internal/middleware"
)

// recordHandler handles HTTP requests related to ledger records.
type recordHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newRecordHandler(ls portssvc.LedgerSvcFacade) *recordHandler {
	return &recordHandler{ledgerService: ls}
}

// registerRecordRoutes registers routes related to ledger records and the
// calendar markers derived from them.
func registerRecordRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newRecordHandler(ledgerService)

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/day", h.listRecordsForDay)
		records.DELETE("/:id", h.deleteRecord)
		records.DELETE("", h.deleteAllRecords)
	}

	rg.GET("/calendar/markers", h.monthMarkers)
}

func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.ledgerService.AppendRecord(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating record", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrStorage) {
			logger.Error("Storage failure creating record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure"})
		} else {
			logger.Error("Failed to create record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		}
		return
	}

	logger.Info("Record created", slog.String("record_id", created.RecordID), slog.String("method", created.Method))
	c.JSON(http.StatusCreated, dto.ToRecordResponse(created))
}

func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := params.ToFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day format, expected YYYY-MM-DD"})
		return
	}

	records, err := h.ledgerService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

// listRecordsForDay is the calendar drill-down: the records of one day for
// one kind, optionally narrowed to a single method.
func (h *recordHandler) listRecordsForDay(c *gin.Context) {
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

	filter := domain.NewRecordFilter()
	filter.Day = &day
	filter.Kind = &kind
	if params.Method != "" {
		method := params.Method
		filter.Method = &method
	}

	records, err := h.ledgerService.ListRecords(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list daily records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecordResponse(records))
}

func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("id")

	if err := h.ledgerService.DeleteRecord(c.Request.Context(), recordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		} else {
			logger.Error("Failed to delete record", slog.String("record_id", recordID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		}
		return
	}

	logger.Info("Record deleted", slog.String("record_id", recordID))
	c.Status(http.StatusNoContent)
}

func (h *recordHandler) deleteAllRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.ledgerService.DeleteAllRecords(c.Request.Context()); err != nil {
		logger.Error("Failed to delete all records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete records"})
		return
	}

	logger.Info("All records deleted")
	c.Status(http.StatusNoContent)
}

func (h *recordHandler) monthMarkers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MarkersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	markers, err := h.ledgerService.MonthMarkers(c.Request.Context(), params.Year, params.Month, params.Method)
	if err != nil {
		logger.Error("Failed to compute month markers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute markers"})
		return
	}

	c.JSON(http.StatusOK, markers)
}
