package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shivkr/transfer-service/internal/apperrors"
	portssvc "github.com/shivkr/transfer-service/internal/core/ports/services"
	"github.com/shivkr/transfer-service/internal/dto"
	"github.com/shivkr/transfer-service/internal/middleware"
)

// transferHandler handles HTTP requests for money transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(transferService portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: transferService,
	}
}

// transfer moves an amount between two accounts. Business failures (unknown
// account, insufficient funds, lost version race) are reported with HTTP 200
// and a populated errorCode; only malformed input and infrastructure faults
// map to non-200 statuses.
func (h *transferHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.TransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error executing transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to execute transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(result))
}
