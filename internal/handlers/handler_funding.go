package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/vas_funding_ledger/internal/core/ports/services"
	"github.com/SscSPs/vas_funding_ledger/internal/dto"
	"github.com/SscSPs/vas_funding_ledger/internal/idempotency"
	"github.com/SscSPs/vas_funding_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader makes CreateFunding safe to resubmit.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader is set when a response replays an earlier request.
	IdempotentReplayHeader = "Idempotent-Replayed"
)

// fundingHandler handles HTTP requests related to merchant funding requests.
type fundingHandler struct {
	fundingService portssvc.FundingSvcFacade
	queryService   portssvc.FundingQuerySvc
	idempotency    idempotency.Store
}

// newFundingHandler creates a new fundingHandler. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func newFundingHandler(fs portssvc.FundingSvcFacade, qs portssvc.FundingQuerySvc, idem idempotency.Store) *fundingHandler {
	return &fundingHandler{
		fundingService: fs,
		queryService:   qs,
		idempotency:    idem,
	}
}

// registerFundingRoutes registers routes related to funding requests.
func registerFundingRoutes(rg *gin.RouterGroup, fs portssvc.FundingSvcFacade, qs portssvc.FundingQuerySvc, idem idempotency.Store) {
	h := newFundingHandler(fs, qs, idem)

	fundings := rg.Group("/fundings")
	{
		fundings.POST("", h.createFunding)
		fundings.GET("", h.listFundings)
		fundings.GET("/:ref", h.getFunding)
		fundings.POST("/:ref/approve", h.approveFunding)
		fundings.POST("/:ref/reject", h.rejectFunding)
		fundings.PUT("/:ref/amount", h.amendFundingAmount)
	}
}

// operatorOrAbort returns the authenticated operator, writing 401 when absent.
func operatorOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return operatorID, ok
}

// createFunding godoc
// @Summary Create a funding request
// @Description Opens a pending credit for a merchant. With autoApprove the request is approved right after it is recorded.
// @Tags fundings
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client key that makes the request safe to retry"
// @Param   funding body dto.CreateFundingRequest true "Funding details"
// @Success 201 {object} dto.FundingResponse
// @Success 200 {object} dto.FundingResponse "Replay of an earlier request with the same Idempotency-Key"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Merchant not found"
// @Failure 409 {object} handlers.ErrorResponse "Request with the same Idempotency-Key in progress, or auto-approve lost"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create funding request"
// @Security BearerAuth
// @Router /fundings [post]
func (h *fundingHandler) createFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFunding", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_FAILED"})
		return
	}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create funding",
		slog.Int64("merchant_id", req.MerchantID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("auto_approve", req.AutoApprove))

	var reservation *idempotency.Reservation
	if key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)); key != "" && h.idempotency != nil {
		r, err := h.idempotency.Reserve(c.Request.Context(), operatorID, key)
		if err != nil {
			respondWithError(c, logger, err, "Failed to reserve idempotency key")
			return
		}
		if r.Replay {
			h.replayFunding(c, logger, r.FundingRef)
			return
		}
		reservation = r
	}

	funding, err := h.fundingService.CreateFunding(c.Request.Context(), req, operatorID)
	if reservation != nil {
		// A request that was recorded, even if auto-approve then failed, must replay rather than duplicate.
		if funding != nil {
			if cerr := h.idempotency.Complete(c.Request.Context(), reservation, funding.FundingRef); cerr != nil {
				logger.Error("Failed to complete idempotency key", slog.String("error", cerr.Error()))
			}
		} else if rerr := h.idempotency.Release(c.Request.Context(), reservation); rerr != nil {
			logger.Error("Failed to release idempotency key", slog.String("error", rerr.Error()))
		}
	}
	if err != nil {
		status, body := errorStatus(err, "Failed to create funding request")
		if funding != nil {
			body.FundingRef = funding.FundingRef
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to create funding request", slog.String("error", err.Error()))
		} else {
			logger.Warn("Funding request refused", slog.Int("status", status), slog.String("error", err.Error()))
		}
		c.JSON(status, body)
		return
	}

	logger.Info("Funding request created", slog.String("funding_ref", funding.FundingRef), slog.String("status", string(funding.Status)))
	c.JSON(http.StatusCreated, dto.ToFundingResponse(funding))
}

func (h *fundingHandler) replayFunding(c *gin.Context, logger *slog.Logger, fundingRef string) {
	logger.Info("Replaying idempotent create", slog.String("funding_ref", fundingRef))
	funding, err := h.queryService.GetFunding(c.Request.Context(), fundingRef)
	if err != nil {
		respondWithError(c, logger, err, "Failed to load funding request for replay")
		return
	}
	c.Header(IdempotentReplayHeader, "true")
	c.JSON(http.StatusOK, dto.ToFundingResponse(funding))
}

// getFunding godoc
// @Summary Get a funding request
// @Description Retrieves a funding request by its reference
// @Tags fundings
// @Produce  json
// @Param   ref path string true "Funding reference"
// @Success 200 {object} dto.FundingResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Funding request not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to retrieve funding request"
// @Security BearerAuth
// @Router /fundings/{ref} [get]
func (h *fundingHandler) getFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("funding_ref", c.Param("ref")))

	funding, err := h.queryService.GetFunding(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve funding request")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundingResponse(funding))
}

// listFundings godoc
// @Summary List funding requests
// @Description Lists funding requests newest first, filtered by merchant, status and free text
// @Tags fundings
// @Produce  json
// @Param   merchant_id query int false "Merchant ID"
// @Param   status query []string false "Statuses (PENDING, APPROVED, REJECTED)" collectionFormat(multi)
// @Param   q query string false "Search over reference, description and source"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListFundingResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to list funding requests"
// @Security BearerAuth
// @Router /fundings [get]
func (h *fundingHandler) listFundings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFundingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListFundings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Code: "VALIDATION_FAILED"})
		return
	}

	resp, err := h.queryService.ListFunding(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list funding requests")
		return
	}

	logger.Info("Funding requests listed", slog.Int("count", len(resp.Fundings)))
	c.JSON(http.StatusOK, resp)
}

// approveFunding godoc
// @Summary Approve a funding request
// @Description Approves a pending request and credits the merchant balance exactly once
// @Tags fundings
// @Produce  json
// @Param   ref path string true "Funding reference"
// @Success 200 {object} dto.FundingResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid reference"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Funding request not found"
// @Failure 409 {object} handlers.ErrorResponse "Already approved, rejected, or concurrently modified"
// @Failure 500 {object} handlers.ErrorResponse "Failed to approve funding request"
// @Security BearerAuth
// @Router /fundings/{ref}/approve [post]
func (h *fundingHandler) approveFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("funding_ref", c.Param("ref")))
	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	funding, err := h.fundingService.ApproveFunding(c.Request.Context(), dto.ApproveFundingRequest{FundingRef: c.Param("ref")}, operatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to approve funding request")
		return
	}

	logger.Info("Funding request approved")
	c.JSON(http.StatusOK, dto.ToFundingResponse(funding))
}

// rejectFunding godoc
// @Summary Reject a funding request
// @Description Rejects a pending request. The merchant balance is not touched.
// @Tags fundings
// @Produce  json
// @Param   ref path string true "Funding reference"
// @Success 200 {object} dto.FundingResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid reference"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Funding request not found"
// @Failure 409 {object} handlers.ErrorResponse "Already approved, rejected, or concurrently modified"
// @Failure 500 {object} handlers.ErrorResponse "Failed to reject funding request"
// @Security BearerAuth
// @Router /fundings/{ref}/reject [post]
func (h *fundingHandler) rejectFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("funding_ref", c.Param("ref")))
	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	funding, err := h.fundingService.RejectFunding(c.Request.Context(), dto.RejectFundingRequest{FundingRef: c.Param("ref")}, operatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reject funding request")
		return
	}

	logger.Info("Funding request rejected")
	c.JSON(http.StatusOK, dto.ToFundingResponse(funding))
}

// amendFundingAmount godoc
// @Summary Amend the amount of a funding request
// @Description Replaces the amount of a pending request. balanceBefore keeps its creation value.
// @Tags fundings
// @Accept  json
// @Produce  json
// @Param   ref path string true "Funding reference"
// @Param   amount body dto.AmendFundingAmountBody true "New amount"
// @Success 200 {object} dto.FundingResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Funding request not found"
// @Failure 409 {object} handlers.ErrorResponse "Already approved, credited, rejected, or concurrently modified"
// @Failure 500 {object} handlers.ErrorResponse "Failed to amend funding request"
// @Security BearerAuth
// @Router /fundings/{ref}/amount [put]
func (h *fundingHandler) amendFundingAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("funding_ref", c.Param("ref")))

	var body dto.AmendFundingAmountBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("Failed to bind JSON for AmendFundingAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_FAILED"})
		return
	}
	req := dto.AmendFundingAmountRequest{FundingRef: c.Param("ref"), NewAmount: body.NewAmount}

	operatorID, ok := operatorOrAbort(c, logger)
	if !ok {
		return
	}

	funding, err := h.fundingService.AmendFundingAmount(c.Request.Context(), req, operatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to amend funding request")
		return
	}

	logger.Info("Funding amount amended", slog.String("amount", funding.Amount.String()))
	c.JSON(http.StatusOK, dto.ToFundingResponse(funding))
}
