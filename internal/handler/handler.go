package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/ledger-service/internal/service"
)

// Register mounts probes and the v1 API on r. xmlRoot names the root element of
// XML list responses; empty keeps the converter default.
func Register(r *gin.Engine, db Pinger, accountSvc service.AccountService, txnSvc service.TransactionService, xmlRoot string) {
	h := NewHealthHandler(db)

	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewAccountHandler(accountSvc, xmlRoot).Register(api)
		NewTransactionHandler(txnSvc, xmlRoot).Register(api)
	}
}
