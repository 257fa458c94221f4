package api

import "github.com/divvly/divvly/internal/models"

// Request bodies. Binding tags cover shape only; domain validation
// (member counts, amounts, membership) stays in the services.

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createGroupRequest struct {
	Name            string   `json:"name" binding:"required"`
	Token           string   `json:"token" binding:"required"`
	MemberNames     []string `json:"member_names" binding:"required"`
	MemberAddresses []string `json:"member_addresses" binding:"required"`
}

type addBillRequest struct {
	Description  string   `json:"description"`
	Amount       int64    `json:"amount"`
	Participants []string `json:"participants" binding:"required"`
}

type settleRequest struct {
	Creditor string `json:"creditor" binding:"required"`
	Amount   int64  `json:"amount"`
	Note     string `json:"note"`
}

type depositRequest struct {
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount"`
}

type approveRequest struct {
	Token  string `json:"token" binding:"required"`
	Amount int64  `json:"amount"`
}

// Response bodies.

type authResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

type memberResponse struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type groupResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Token   string           `json:"token"`
	Members []memberResponse `json:"members"`
}

type groupInfoResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Token       string `json:"token"`
	MemberCount int    `json:"member_count"`
	BillCount   int64  `json:"bill_count"`
}

type billResponse struct {
	GroupID      int64    `json:"group_id"`
	Index        int64    `json:"index"`
	Creator      string   `json:"creator"`
	Description  string   `json:"description"`
	Amount       int64    `json:"amount"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"created_at"`
}

type debtResponse struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   int64  `json:"amount"`
}

type totalsResponse struct {
	Member       string `json:"member"`
	TotalOwed    int64  `json:"total_owed"`
	OwedByOthers int64  `json:"owed_by_others"`
}

type balanceResponse struct {
	Address      string `json:"address"`
	TotalOwed    int64  `json:"total_owed"`
	OwedByOthers int64  `json:"owed_by_others"`
	Net          int64  `json:"net"`
}

type settlementResponse struct {
	ID        string `json:"id"`
	GroupID   int64  `json:"group_id"`
	Debtor    string `json:"debtor"`
	Creditor  string `json:"creditor"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type walletBalanceResponse struct {
	Token   string `json:"token"`
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

func toGroupResponse(g *models.Group) groupResponse {
	resp := groupResponse{ID: g.ID, Name: g.Name, Token: g.Token}
	for _, m := range g.Members {
		resp.Members = append(resp.Members, memberResponse{Address: m.Address, Name: m.Name})
	}
	return resp
}

func toBillResponse(b *models.Bill) billResponse {
	return billResponse{
		GroupID:      b.GroupID,
		Index:        b.Index,
		Creator:      b.Creator,
		Description:  b.Description,
		Amount:       b.Amount,
		Participants: b.Participants,
		CreatedAt:    b.CreatedAt,
	}
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Debtor:    s.Debtor,
		Creditor:  s.Creditor,
		Amount:    s.Amount,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}
