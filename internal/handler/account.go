package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/ledger-service/internal/service"
	"github.com/maxviazov/ledger-service/pkg/response"
)

type AccountHandler struct {
	svc     service.AccountService
	xmlRoot string
}

func NewAccountHandler(svc service.AccountService, xmlRoot string) *AccountHandler {
	return &AccountHandler{svc: svc, xmlRoot: xmlRoot}
}

func (h *AccountHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/accounts")
	{
		g.POST("", h.create)
		// account_id is shared with the nested transactions routes; gin requires one wildcard name per segment.
		g.GET("/:account_id", h.getByID)
		g.GET("", h.list)
	}
}

type createAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (h *AccountHandler) create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	acc, err := h.svc.CreateAccount(c.Request.Context(), req.Name, req.Currency)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, acc)
}

func (h *AccountHandler) getByID(c *gin.Context) {
	id, err := parseID(c, "account_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	acc, err := h.svc.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, acc)
}

func (h *AccountHandler) list(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, req, err := h.svc.ListAccounts(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writePage(c, res, req, h.xmlRoot)
}
