package restapi

import (
	"errors"
	"net/http"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/app/service"
	"wallet_connector/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APITransactionResponse is the envelope of the prepare endpoint.
type APITransactionResponse struct {
	Data struct {
		Transaction entity.TransactionRequest `json:"transaction"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// TransactionHandler handles HTTP requests for transaction preparation.
type TransactionHandler struct {
	assembler *service.TransactionAssembler
	logger    port.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(assembler *service.TransactionAssembler, logger port.Logger) *TransactionHandler {
	return &TransactionHandler{assembler: assembler, logger: logger}
}

// PrepareTransactionHandler completes a partial transaction request with
// chain id, fee parameters and nonce. Unlike the account surface this path
// never degrades: any unresolved field is an error status.
func (h *TransactionHandler) PrepareTransactionHandler(c *gin.Context) {
	var request entity.TransactionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "invalid transaction payload: " + err.Error()})
		return
	}
	if request.From == "" || request.To == "" {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "from and to are required"})
		return
	}

	assembled, err := h.assembler.Assemble(c.Request.Context(), request)
	if err != nil {
		var feeErr *entity.FeeEstimationError
		if errors.As(err, &feeErr) && feeErr.ChainID == 0 {
			c.JSON(http.StatusBadRequest, APIErrorResponse{Error: err.Error(), Code: "CHAIN_ID_UNRESOLVED"})
			return
		}
		h.logger.Error("Transaction preparation failed", "error", err)
		c.JSON(http.StatusBadGateway, APIErrorResponse{Error: "failed to prepare transaction"})
		return
	}

	response := APITransactionResponse{StatusMessage: "Transaction prepared successfully."}
	response.Data.Transaction = assembled
	c.JSON(http.StatusOK, response)
}
