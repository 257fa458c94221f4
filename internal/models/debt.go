package models

// Debt is the net non-negative amount one member owes another within a
// group, keyed by the ordered (debtor, creditor) pair. Two members can
// simultaneously owe each other from different bills; the pairs are not
// auto-netted.
type Debt struct {
	GroupID  int64
	Debtor   string
	Creditor string

	// Amount is non-negative, in the group token's smallest unit.
	Amount int64
}

// MemberBalance is the derived balance summary for one group member.
type MemberBalance struct {
	// Address identifies the member.
	Address string

	// TotalOwed is the sum this member owes to all others.
	TotalOwed int64

	// TotalOwedByOthers is the sum others owe this member.
	TotalOwedByOthers int64

	// Net is TotalOwedByOthers - TotalOwed. Positive = owed money.
	Net int64
}
