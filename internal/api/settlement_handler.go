package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/service"
)

// SettlementHandler serves debt settlement and the settlement log.
type SettlementHandler struct {
	settlementSvc *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementSvc *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementSvc: settlementSvc}
}

// Create handles POST /api/v1/groups/:id/settlements. The authenticated
// caller is the debtor.
func (h *SettlementHandler) Create(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	settlement, err := h.settlementSvc.Settle(c.Request.Context(), CallerAddress(c), id, req.Creditor, req.Amount, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSettlementResponse(settlement))
}

// List handles GET /api/v1/groups/:id/settlements, newest first.
func (h *SettlementHandler) List(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	settlements, err := h.settlementSvc.ListSettlements(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		resp[i] = toSettlementResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"settlements": resp})
}
