package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/divvly/divvly/internal/ledger"
)

func TestLocalRail(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer with allowance", func(t *testing.T) {
		rail := NewLocalRail()
		rail.Deposit("USDC", "bob", 100)
		rail.Approve(ctx, "USDC", "bob", EngineSpender, 80)

		if err := rail.Transfer(ctx, "USDC", EngineSpender, "bob", "alice", 50); err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}
		if got := rail.Balance("USDC", "alice"); got != 50 {
			t.Errorf("alice balance = %d, want 50", got)
		}
		if got := rail.Balance("USDC", "bob"); got != 50 {
			t.Errorf("bob balance = %d, want 50", got)
		}

		// Allowance was consumed: 80 - 50 = 30 left, 40 must fail.
		err := rail.Transfer(ctx, "USDC", EngineSpender, "bob", "alice", 40)
		if !errors.Is(err, ledger.ErrInsufficientAllowance) {
			t.Errorf("error = %v, want ErrInsufficientAllowance", err)
		}
	})

	t.Run("missing allowance", func(t *testing.T) {
		rail := NewLocalRail()
		rail.Deposit("USDC", "bob", 100)

		err := rail.Transfer(ctx, "USDC", EngineSpender, "bob", "alice", 10)
		if !errors.Is(err, ledger.ErrInsufficientAllowance) {
			t.Errorf("error = %v, want ErrInsufficientAllowance", err)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		rail := NewLocalRail()
		rail.Deposit("USDC", "bob", 20)
		rail.Approve(ctx, "USDC", "bob", EngineSpender, 100)

		err := rail.Transfer(ctx, "USDC", EngineSpender, "bob", "alice", 50)
		if !errors.Is(err, ledger.ErrTransferFailed) {
			t.Errorf("error = %v, want ErrTransferFailed", err)
		}
		// Nothing moved and no allowance consumed.
		if got := rail.Balance("USDC", "bob"); got != 20 {
			t.Errorf("bob balance = %d, want 20", got)
		}
		if err := rail.Transfer(ctx, "USDC", EngineSpender, "bob", "alice", 20); err != nil {
			t.Errorf("follow-up transfer failed: %v", err)
		}
	})

	t.Run("owner spends own balance without allowance", func(t *testing.T) {
		rail := NewLocalRail()
		rail.Deposit("DAI", "bob", 30)

		if err := rail.Transfer(ctx, "DAI", "bob", "bob", "alice", 30); err != nil {
			t.Fatalf("Transfer failed: %v", err)
		}
		if got := rail.Balance("DAI", "alice"); got != 30 {
			t.Errorf("alice balance = %d, want 30", got)
		}
	})

	t.Run("tokens are isolated", func(t *testing.T) {
		rail := NewLocalRail()
		rail.Deposit("USDC", "bob", 100)

		if got := rail.Balance("DAI", "bob"); got != 0 {
			t.Errorf("DAI balance = %d, want 0", got)
		}
	})
}
