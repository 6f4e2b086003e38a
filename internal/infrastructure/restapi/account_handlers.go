package restapi

import (
	"errors"
	"net/http"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/app/service"
	"wallet_connector/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIAccountsResponse is the envelope of the account list endpoint.
type APIAccountsResponse struct {
	Data struct {
		Accounts []entity.Account `json:"accounts"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APISelectedAccountResponse is the envelope of the selected account
// endpoint.
type APISelectedAccountResponse struct {
	Data struct {
		Account *entity.DetailedAccount `json:"account"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIErrorResponse is the envelope of every error status.
type APIErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AccountHandler handles HTTP requests for the account surface.
type AccountHandler struct {
	enricher        *service.ProgressiveAccountEnricher
	selected        *service.SelectedAccountAssembler
	defaultCurrency string
	logger          port.Logger
}

// NewAccountHandler creates a new AccountHandler. defaultCurrency is the
// fiat currency used when the request does not name one.
func NewAccountHandler(
	enricher *service.ProgressiveAccountEnricher,
	selected *service.SelectedAccountAssembler,
	defaultCurrency string,
	logger port.Logger,
) *AccountHandler {
	return &AccountHandler{
		enricher:        enricher,
		selected:        selected,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// ListAccountsHandler returns the account list with balances hydrated. The
// enrichment is progressive internally; the HTTP surface waits for the final
// snapshot so the response is a single complete array.
func (h *AccountHandler) ListAccountsHandler(c *gin.Context) {
	snapshots, err := h.enricher.Enrich(c.Request.Context())
	if err != nil {
		h.logger.Error("Account listing failed", "error", err)
		c.JSON(http.StatusBadGateway, APIErrorResponse{Error: "failed to list accounts"})
		return
	}

	var final []entity.Account
	for snapshot := range snapshots {
		final = snapshot
	}

	response := APIAccountsResponse{StatusMessage: "Accounts retrieved successfully."}
	response.Data.Accounts = final
	if len(final) == 0 {
		response.StatusMessage = "No synced accounts found."
	}
	c.JSON(http.StatusOK, response)
}

// SelectedAccountHandler returns the fully enriched selected account. The
// optional "currency" query parameter selects the fiat conversion target.
func (h *AccountHandler) SelectedAccountHandler(c *gin.Context) {
	currency := c.DefaultQuery("currency", h.defaultCurrency)

	account, err := h.selected.Assemble(c.Request.Context(), currency)
	if err != nil {
		var noSelection *entity.NoSelectedAccountError
		var notFound *entity.AccountNotFoundError
		switch {
		case errors.As(err, &noSelection):
			c.JSON(http.StatusConflict, APIErrorResponse{Error: err.Error(), Code: "NO_SELECTED_ACCOUNT"})
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, APIErrorResponse{Error: err.Error(), Code: "ACCOUNT_NOT_FOUND"})
		default:
			h.logger.Error("Selected account assembly failed", "error", err)
			c.JSON(http.StatusBadGateway, APIErrorResponse{Error: "failed to assemble selected account"})
		}
		return
	}

	response := APISelectedAccountResponse{StatusMessage: "Selected account retrieved successfully."}
	response.Data.Account = account
	c.JSON(http.StatusOK, response)
}
