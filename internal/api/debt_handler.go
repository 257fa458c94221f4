package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/service"
)

// DebtHandler serves the derived debt graph: point lookups, per-member
// totals, edge lists and balance summaries.
type DebtHandler struct {
	ledgerSvc *service.LedgerService
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(ledgerSvc *service.LedgerService) *DebtHandler {
	return &DebtHandler{ledgerSvc: ledgerSvc}
}

// Get handles GET /api/v1/groups/:id/debt?debtor=&creditor=.
func (h *DebtHandler) Get(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	debtor := c.Query("debtor")
	creditor := c.Query("creditor")
	if debtor == "" || creditor == "" {
		badRequest(c, "debtor and creditor query parameters required")
		return
	}

	amount, err := h.ledgerSvc.Debt(c.Request.Context(), id, debtor, creditor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, debtResponse{Debtor: debtor, Creditor: creditor, Amount: amount})
}

// List handles GET /api/v1/groups/:id/debts: all nonzero edges.
func (h *DebtHandler) List(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	debts, err := h.ledgerSvc.ListDebts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]debtResponse, len(debts))
	for i, d := range debts {
		resp[i] = debtResponse{Debtor: d.Debtor, Creditor: d.Creditor, Amount: d.Amount}
	}
	c.JSON(http.StatusOK, gin.H{"debts": resp})
}

// Totals handles GET /api/v1/groups/:id/totals?member=.
func (h *DebtHandler) Totals(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	member := c.Query("member")
	if member == "" {
		badRequest(c, "member query parameter required")
		return
	}

	owed, err := h.ledgerSvc.TotalOwedBy(c.Request.Context(), id, member)
	if err != nil {
		respondError(c, err)
		return
	}
	owedByOthers, err := h.ledgerSvc.TotalOwedTo(c.Request.Context(), id, member)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, totalsResponse{
		Member:       member,
		TotalOwed:    owed,
		OwedByOthers: owedByOthers,
	})
}

// Balances handles GET /api/v1/groups/:id/balances.
func (h *DebtHandler) Balances(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	balances, err := h.ledgerSvc.Balances(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]balanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = balanceResponse{
			Address:      b.Address,
			TotalOwed:    b.TotalOwed,
			OwedByOthers: b.TotalOwedByOthers,
			Net:          b.Net,
		}
	}
	c.JSON(http.StatusOK, gin.H{"balances": resp})
}
