package models

// Bill represents a recorded expense paid by one member and split equally
// across a chosen subset of group members. Bills are append-only: once
// recorded they are never edited; settlements reduce the pairwise debts
// they induced, not the bill itself.
type Bill struct {
	// GroupID is the owning group.
	GroupID int64

	// Index is the bill's position in the group's bill sequence (0-based).
	Index int64

	// Creator is the address of the member who paid and is owed
	// reimbursement.
	Creator string

	// Description is free text (e.g., "lunch").
	Description string

	// Amount is the total value in the group token's smallest unit.
	Amount int64

	// Participants are the member addresses the amount is split across,
	// in the order given at creation. The creator may be included; their
	// own share nets against themselves and creates no debt.
	Participants []string

	// CreatedAt is the Unix timestamp when the bill was recorded.
	CreatedAt int64
}
