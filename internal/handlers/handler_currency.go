package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack_backend/internal/dto"
	"github.com/fintrackhq/fintrack_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to the cached rate table.
type currencyHandler struct {
	rateService portssvc.RateSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(rs portssvc.RateSvcFacade) *currencyHandler {
	return &currencyHandler{
		rateService: rs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newCurrencyHandler(rateService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listRates)
		currencies.GET("/:code", h.getRateByCode)
		currencies.POST("/refresh", h.refreshRates)
	}
}

func (h *currencyHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

func (h *currencyHandler) getRateByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	logger = logger.With(slog.String("currency_code", code))

	rate, err := h.rateService.GetRate(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownCurrency) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Currency not found in rate table")
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid currency code", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// refreshRates triggers one refresh cycle outside the periodic schedule.
func (h *currencyHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to refresh rates")

	count, err := h.rateService.RefreshRates(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrRateSourceUnavailable) || errors.Is(err, apperrors.ErrRateSourceMalformed) {
			logger.Warn("Rate source failed during manual refresh", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Rate source unavailable"})
		} else {
			logger.Error("Failed to refresh rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		}
		return
	}

	logger.Info("Rates refreshed successfully", slog.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"refreshed": count})
}
