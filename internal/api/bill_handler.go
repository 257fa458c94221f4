package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/divvly/divvly/internal/service"
)

// BillHandler serves bill recording and reads.
type BillHandler struct {
	ledgerSvc *service.LedgerService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(ledgerSvc *service.LedgerService) *BillHandler {
	return &BillHandler{ledgerSvc: ledgerSvc}
}

// Create handles POST /api/v1/groups/:id/bills. The authenticated caller
// is the bill creator.
func (h *BillHandler) Create(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	var req addBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	bill, err := h.ledgerSvc.AddBill(c.Request.Context(), CallerAddress(c), id, req.Description, req.Amount, req.Participants)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBillResponse(bill))
}

// List handles GET /api/v1/groups/:id/bills.
func (h *BillHandler) List(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	bills, err := h.ledgerSvc.ListBills(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toBillResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"bills": resp})
}

// Get handles GET /api/v1/groups/:id/bills/:index.
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		badRequest(c, "invalid bill index")
		return
	}

	bill, err := h.ledgerSvc.GetBill(c.Request.Context(), id, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBillResponse(bill))
}

// Participant handles GET /api/v1/groups/:id/bills/:index/participants/:pindex.
func (h *BillHandler) Participant(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil {
		badRequest(c, "invalid bill index")
		return
	}
	pindex, err := strconv.Atoi(c.Param("pindex"))
	if err != nil {
		badRequest(c, "invalid participant index")
		return
	}

	address, err := h.ledgerSvc.BillParticipant(c.Request.Context(), id, index, pindex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": address})
}
