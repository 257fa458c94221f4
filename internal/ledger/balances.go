package ledger

import "github.com/divvly/divvly/internal/models"

// Balances derives the per-member balance summary from the current debt
// table. Members with no debts in either direction get a zero entry, so
// the result always covers the full member list in join order.
func Balances(memberAddresses []string, debts []models.Debt) []models.MemberBalance {
	byAddress := make(map[string]*models.MemberBalance, len(memberAddresses))
	out := make([]models.MemberBalance, len(memberAddresses))
	for i, addr := range memberAddresses {
		out[i] = models.MemberBalance{Address: addr}
		byAddress[addr] = &out[i]
	}

	for _, d := range debts {
		if b, ok := byAddress[d.Debtor]; ok {
			b.TotalOwed += d.Amount
		}
		if b, ok := byAddress[d.Creditor]; ok {
			b.TotalOwedByOthers += d.Amount
		}
	}

	for i := range out {
		out[i].Net = out[i].TotalOwedByOthers - out[i].TotalOwed
	}
	return out
}
