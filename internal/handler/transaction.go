package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/ledger-service/internal/service"
	"github.com/maxviazov/ledger-service/pkg/response"
)

type TransactionHandler struct {
	svc     service.TransactionService
	xmlRoot string
}

func NewTransactionHandler(svc service.TransactionService, xmlRoot string) *TransactionHandler {
	return &TransactionHandler{svc: svc, xmlRoot: xmlRoot}
}

func (h *TransactionHandler) Register(r *gin.RouterGroup) {
	r.POST("/accounts/:account_id/transactions", h.record)
	r.GET("/accounts/:account_id/transactions", h.listByAccount)
	r.GET("/transactions/:id", h.getByID)
}

type recordTransactionRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (h *TransactionHandler) record(c *gin.Context) {
	accountID, err := parseID(c, "account_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	txn, err := h.svc.RecordTransaction(c.Request.Context(), service.RecordTransactionInput{
		AccountID:   accountID,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, txn)
}

func (h *TransactionHandler) getByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	txn, err := h.svc.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, txn)
}

func (h *TransactionHandler) listByAccount(c *gin.Context) {
	accountID, err := parseID(c, "account_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	req, err := pageRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, req, err := h.svc.ListTransactions(c.Request.Context(), accountID, c.Query(StatusParam), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writePage(c, res, req, h.xmlRoot)
}
