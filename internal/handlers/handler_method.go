package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finage-app/finage_core/internal/apperrors"
	portssvc "github.com/finage-app/finage_core/internal/core/ports/services"
	"github.com/finage-app/finage_core/internal/dto"
	"github.com/finage-app/finage_core/internal/middleware"
)

// methodHandler handles HTTP requests related to payment methods, income
// categories and the stored theme preference.
type methodHandler struct {
	registryService portssvc.RegistrySvcFacade
}

func newMethodHandler(rs portssvc.RegistrySvcFacade) *methodHandler {
	return &methodHandler{registryService: rs}
}

// registerMethodRoutes registers routes related to the method registry.
func registerMethodRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade) {
	h := newMethodHandler(registryService)

	methods := rg.Group("/methods")
	{
		methods.GET("", h.listMethods)
		methods.POST("", h.createMethod)
		methods.DELETE("/:name", h.deleteMethod)
		methods.PUT("/:name/base-fee", h.updateBaseFee)
	}

	incomeCategories := rg.Group("/income-categories")
	{
		incomeCategories.GET("", h.listIncomeCategories)
		incomeCategories.POST("", h.createIncomeCategory)
		incomeCategories.DELETE("/:name", h.deleteIncomeCategory)
	}

	settings := rg.Group("/settings")
	{
		settings.GET("/theme", h.getTheme)
		settings.PUT("/theme", h.setTheme)
	}
}

func (h *methodHandler) listMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	methods, err := h.registryService.SortedMethods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list methods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list methods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMethodResponse(methods))
}

func (h *methodHandler) createMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.registryService.AddPaymentMethod(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Method name already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create method", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create method"})
		}
		return
	}

	logger.Info("Method created", slog.String("method", created.Name))
	c.JSON(http.StatusCreated, dto.ToMethodResponse(created))
}

func (h *methodHandler) deleteMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.registryService.RemovePaymentMethod(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Method not found"})
		} else if errors.Is(err, apperrors.ErrProtected) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Built-in methods cannot be removed"})
		} else {
			logger.Error("Failed to delete method", slog.String("method", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete method"})
		}
		return
	}

	logger.Info("Method deleted with its records", slog.String("method", name))
	c.Status(http.StatusNoContent)
}

func (h *methodHandler) updateBaseFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateBaseFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.registryService.UpdateBaseFee(c.Request.Context(), name, req.BaseFee)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Method not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update base fee", slog.String("method", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update base fee"})
		}
		return
	}

	logger.Info("Base fee updated", slog.String("method", name), slog.Int64("base_fee", req.BaseFee))
	c.JSON(http.StatusOK, dto.ToMethodResponse(updated))
}

func (h *methodHandler) listIncomeCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categories, err := h.registryService.IncomeCategories(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list income categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list income categories"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListIncomeCategoryResponse(categories))
}

func (h *methodHandler) createIncomeCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateIncomeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.registryService.AddIncomeCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Income category already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create income category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create income category"})
		}
		return
	}

	logger.Info("Income category created", slog.String("category", created.Name))
	c.JSON(http.StatusCreated, dto.IncomeCategoryResponse{Name: created.Name, Protected: created.Protected})
}

func (h *methodHandler) deleteIncomeCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	if err := h.registryService.RemoveIncomeCategory(c.Request.Context(), name); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Income category not found"})
		} else if errors.Is(err, apperrors.ErrProtected) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Built-in income categories cannot be removed"})
		} else {
			logger.Error("Failed to delete income category", slog.String("category", name), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete income category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *methodHandler) getTheme(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	theme, err := h.registryService.Theme(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load theme", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load theme"})
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{Theme: theme})
}

func (h *methodHandler) setTheme(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.registryService.SetTheme(c.Request.Context(), req.Theme); err != nil {
		logger.Error("Failed to store theme", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store theme"})
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{Theme: req.Theme})
}
