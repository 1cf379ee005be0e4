package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/SscSPs/vas_funding_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type merchantHandler struct {
	merchantService portssvc.MerchantSvc
}

func registerMerchantRoutes(rg *gin.RouterGroup, ms portssvc.MerchantSvc) {
	h := &merchantHandler{merchantService: ms}

	merchants := rg.Group("/merchants")
	{
		merchants.GET("/:merchantID/balance", h.getMerchantBalance)
	}
}

// getMerchantBalance godoc
// @Summary Get a merchant's live balance
// @Description Returns the current prepaid balance of a merchant
// @Tags merchants
// @Produce  json
// @Param   merchantID path int true "Merchant ID"
// @Success 200 {object} dto.MerchantBalanceResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid merchant ID"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Merchant not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve merchant balance"
// @Security BearerAuth
// @Router /merchants/{merchantID}/balance [get]
func (h *merchantHandler) getMerchantBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	merchantID, err := strconv.ParseInt(c.Param("merchantID"), 10, 64)
	if err != nil || merchantID <= 0 {
		logger.Warn("Invalid merchant ID", slog.String("merchant_id", c.Param("merchantID")))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid merchant ID", Code: "VALIDATION_FAILED"})
		return
	}

	merchant, err := h.merchantService.GetMerchantBalance(c.Request.Context(), merchantID)
	if err != nil {
		respondWithError(c, logger.With(slog.Int64("merchant_id", merchantID)), err, "Failed to retrieve merchant balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToMerchantBalanceResponse(merchant))
}
