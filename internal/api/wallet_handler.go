package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/payments"
)

// WalletHandler serves the in-process rail: funding, allowance grants and
// balance reads. Mounted only when the rail is enabled.
type WalletHandler struct {
	rail *payments.LocalRail
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(rail *payments.LocalRail) *WalletHandler {
	return &WalletHandler{rail: rail}
}

// Deposit handles POST /api/v1/wallet/deposit, crediting the caller.
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := CallerAddress(c)
	if err := h.rail.Deposit(req.Token, caller, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, walletBalanceResponse{
		Token:   req.Token,
		Address: caller,
		Balance: h.rail.Balance(req.Token, caller),
	})
}

// Approve handles POST /api/v1/wallet/approve, granting the settlement
// engine an allowance over the caller's balance.
func (h *WalletHandler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	caller := CallerAddress(c)
	if err := h.rail.Approve(c.Request.Context(), req.Token, caller, payments.EngineSpender, req.Amount); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     req.Token,
		"owner":     caller,
		"spender":   payments.EngineSpender,
		"allowance": req.Amount,
	})
}

// Balance handles GET /api/v1/wallet/balance?token=.
func (h *WalletHandler) Balance(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		badRequest(c, "token query parameter required")
		return
	}

	caller := CallerAddress(c)
	c.JSON(http.StatusOK, walletBalanceResponse{
		Token:   token,
		Address: caller,
		Balance: h.rail.Balance(token, caller),
	})
}
