// Package ledger implements the pure accounting core: equal-split
// arithmetic over integer amounts and the derived balance computations.
// It has no storage or transport concerns; the service layer applies the
// deltas it produces inside a single transaction.
package ledger

// MinMembers is the smallest member list a group can be created with.
const MinMembers = 2

// DebtDelta is one pairwise debt increase induced by a bill.
type DebtDelta struct {
	Debtor   string
	Creditor string
	Amount   int64
}

// SplitBill computes the debt deltas a bill induces.
//
// The amount is split equally across the participants: each participant's
// share is floor(amount / participantCount). Non-creator participants each
// owe their share to the creator; the creator's own share (if the creator
// is listed) nets against themselves and creates no debt. Any integer
// division remainder is absorbed by the creator, so nobody is overcharged.
//
// Duplicate participant addresses are counted once, preserving first
// occurrence order.
func SplitBill(creator string, amount int64, participants []string) ([]DebtDelta, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	participants = Dedup(participants)
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	share := amount / int64(len(participants))
	if share == 0 {
		return nil, nil
	}

	deltas := make([]DebtDelta, 0, len(participants))
	for _, p := range participants {
		if p == creator {
			continue
		}
		deltas = append(deltas, DebtDelta{
			Debtor:   p,
			Creditor: creator,
			Amount:   share,
		})
	}
	return deltas, nil
}

// Dedup returns the slice with duplicates removed, preserving the order of
// first occurrence. The input is not modified.
func Dedup(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// ValidateMembers checks the parallel name/address inputs for group
// creation against the membership invariants: equal lengths, between
// minMembers and maxMembers entries, no duplicate addresses.
func ValidateMembers(names, addresses []string, minMembers, maxMembers int) error {
	if len(names) != len(addresses) {
		return ErrMismatchedInput
	}
	if len(addresses) < minMembers {
		return ErrInsufficientMembers
	}
	if maxMembers > 0 && len(addresses) > maxMembers {
		return ErrTooManyMembers
	}
	seen := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		if seen[a] {
			return ErrDuplicateMember
		}
		seen[a] = true
	}
	return nil
}
