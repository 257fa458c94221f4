// Package payments models the external value-transfer collaborator the
// settlement engine depends on. The ledger never reduces recorded debt
// without a confirmed transfer on the rail.
package payments

import "context"

// Rail is the value-transfer boundary. Implementations move real value
// (a token contract, a payment processor, the in-process rail below);
// the settlement engine only cares that Transfer either confirms or
// returns a typed failure.
type Rail interface {
	// Approve grants spender permission to move up to amount of the
	// owner's token balance.
	Approve(ctx context.Context, token, owner, spender string, amount int64) error

	// Transfer moves amount of token from one account to another on
	// behalf of spender, consuming allowance when spender != from.
	// Returns ledger.ErrInsufficientAllowance or ledger.ErrTransferFailed
	// on rejection; on a nil return the transfer is confirmed.
	Transfer(ctx context.Context, token, spender, from, to string, amount int64) error
}
