package models

// Settlement records a payment between group members that reduced an
// existing debt. The ledger only needs the resulting debt value, but the
// settlement log is kept append-only for auditability.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID int64

	// Debtor is the address that paid (the caller settling up).
	Debtor string

	// Creditor is the address that received the payment.
	Creditor string

	// Amount is the payment amount in the group token's smallest unit.
	Amount int64

	// CreatedAt is the Unix timestamp when the settlement was applied.
	CreatedAt int64

	// Note is an optional description for the settlement.
	Note string
}
