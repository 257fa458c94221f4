package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/divvly/divvly/internal/ledger"
)

// EngineSpender is the spender identity the settlement engine transfers
// under. Debtors approve it before settling, mirroring the approve/
// transferFrom flow of token rails.
const EngineSpender = "settlement-engine"

// LocalRail is an in-process token rail holding balances and allowances
// per token. It stands in for an external payment system in single-node
// deployments and tests.
type LocalRail struct {
	mu         sync.Mutex
	balances   map[string]map[string]int64            // token -> account -> balance
	allowances map[string]map[string]map[string]int64 // token -> owner -> spender -> allowance
}

// NewLocalRail creates an empty in-process rail.
func NewLocalRail() *LocalRail {
	return &LocalRail{
		balances:   make(map[string]map[string]int64),
		allowances: make(map[string]map[string]map[string]int64),
	}
}

// Deposit credits an account's token balance. Funding entry point; in a
// real deployment this is where external on-ramps land.
func (r *LocalRail) Deposit(token, account string, amount int64) error {
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[token] == nil {
		r.balances[token] = make(map[string]int64)
	}
	r.balances[token][account] += amount
	return nil
}

// Balance returns the account's current token balance.
func (r *LocalRail) Balance(token, account string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[token][account]
}

// Approve sets the spender's allowance over the owner's token balance.
func (r *LocalRail) Approve(_ context.Context, token, owner, spender string, amount int64) error {
	if amount < 0 {
		return ledger.ErrInvalidAmount
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.allowances[token] == nil {
		r.allowances[token] = make(map[string]map[string]int64)
	}
	if r.allowances[token][owner] == nil {
		r.allowances[token][owner] = make(map[string]int64)
	}
	r.allowances[token][owner][spender] = amount
	return nil
}

// Transfer moves amount of token from one account to another, consuming
// allowance when the spender is not the owner. Balance and allowance are
// checked and updated under one lock, so a transfer either fully applies
// or leaves no trace.
func (r *LocalRail) Transfer(_ context.Context, token, spender, from, to string, amount int64) error {
	if amount <= 0 {
		return ledger.ErrInvalidAmount
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if spender != from {
		if r.allowances[token][from][spender] < amount {
			return fmt.Errorf("%w: %s over %s/%s", ledger.ErrInsufficientAllowance, spender, from, token)
		}
	}
	if r.balances[token][from] < amount {
		return fmt.Errorf("%w: insufficient funds for %s/%s", ledger.ErrTransferFailed, from, token)
	}

	if spender != from {
		r.allowances[token][from][spender] -= amount
	}
	r.balances[token][from] -= amount
	r.balances[token][to] += amount
	return nil
}
