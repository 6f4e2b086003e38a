package restapi

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API v1 routes onto a bare engine. Middleware
// (CORS, logging, recovery) is attached by the caller so tests can mount
// handlers without it.
func SetupRouter(router *gin.Engine, accounts *AccountHandler, transactions *TransactionHandler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/accounts", accounts.ListAccountsHandler)
		v1.GET("/accounts/selected", accounts.SelectedAccountHandler)
		v1.POST("/transaction/prepare", transactions.PrepareTransactionHandler)
	}
}
