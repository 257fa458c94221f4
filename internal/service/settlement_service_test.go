package service

import (
	"context"
	"errors"
	"testing"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
	"github.com/divvly/divvly/internal/payments"
	"github.com/divvly/divvly/internal/storage"
)

// setupDebt creates the standard group and a 300 lunch bill paid by A,
// leaving B and C each owing A 100.
func setupDebt(t *testing.T, store storage.Store) *models.Group {
	t.Helper()
	group := createTestGroup(t, store)
	if _, err := NewLedgerService(store).AddBill(context.Background(), "A", group.ID, "lunch", 300, []string{"A", "B", "C"}); err != nil {
		t.Fatalf("AddBill failed: %v", err)
	}
	return group
}

func fundedRail(t *testing.T, token string, debtors ...string) *payments.LocalRail {
	t.Helper()
	rail := payments.NewLocalRail()
	for _, d := range debtors {
		if err := rail.Deposit(token, d, 1000); err != nil {
			t.Fatalf("Deposit failed: %v", err)
		}
		if err := rail.Approve(context.Background(), token, d, payments.EngineSpender, 1000); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
	}
	return rail
}

func TestSettleReducesDebt(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	rail := fundedRail(t, "USDC", "B", "C")
	svc := NewSettlementService(store, rail)
	ledgerSvc := NewLedgerService(store)
	ctx := context.Background()

	// B settles their full 100 with A.
	settlement, err := svc.Settle(ctx, "B", group.ID, "A", 100, "lunch repaid")
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("expected settlement ID to be generated")
	}

	if debt, _ := ledgerSvc.Debt(ctx, group.ID, "B", "A"); debt != 0 {
		t.Errorf("debt B->A = %d, want 0", debt)
	}
	// Only C's 100 remains owed to A.
	if owed, _ := ledgerSvc.TotalOwedTo(ctx, group.ID, "A"); owed != 100 {
		t.Errorf("total owed to A = %d, want 100", owed)
	}

	// Value actually moved on the rail.
	if got := rail.Balance("USDC", "A"); got != 100 {
		t.Errorf("A rail balance = %d, want 100", got)
	}
	if got := rail.Balance("USDC", "B"); got != 900 {
		t.Errorf("B rail balance = %d, want 900", got)
	}
}

func TestPartialSettleThenOverpay(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	svc := NewSettlementService(store, fundedRail(t, "USDC", "B", "C"))
	ledgerSvc := NewLedgerService(store)
	ctx := context.Background()

	// C owes 100, settles 50.
	if _, err := svc.Settle(ctx, "C", group.ID, "A", 50, ""); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if debt, _ := ledgerSvc.Debt(ctx, group.ID, "C", "A"); debt != 50 {
		t.Errorf("debt C->A = %d, want 50", debt)
	}

	// A second settle of 100 exceeds the remaining 50 and must not
	// change anything.
	_, err := svc.Settle(ctx, "C", group.ID, "A", 100, "")
	if !errors.Is(err, ledger.ErrInsufficientDebt) {
		t.Fatalf("error = %v, want ErrInsufficientDebt", err)
	}
	if debt, _ := ledgerSvc.Debt(ctx, group.ID, "C", "A"); debt != 50 {
		t.Errorf("debt C->A = %d, want 50 (unchanged)", debt)
	}
}

func TestSettleValidation(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	svc := NewSettlementService(store, fundedRail(t, "USDC", "A", "B", "C"))
	ctx := context.Background()

	tests := []struct {
		name     string
		caller   string
		groupID  int64
		creditor string
		amount   int64
		wantErr  error
	}{
		{"unknown group", "B", 404, "A", 10, ledger.ErrGroupNotFound},
		{"debtor not a member", "Z", group.ID, "A", 10, ledger.ErrNotGroupMember},
		{"creditor not a member", "B", group.ID, "Z", 10, ledger.ErrNotGroupMember},
		{"zero amount", "B", group.ID, "A", 0, ledger.ErrInvalidAmount},
		{"negative amount", "B", group.ID, "A", -10, ledger.ErrInvalidAmount},
		{"no debt in that direction", "A", group.ID, "B", 10, ledger.ErrNoDebt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Settle(ctx, tt.caller, tt.groupID, tt.creditor, tt.amount, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Settle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettleRequiresConfirmedTransfer(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	ledgerSvc := NewLedgerService(store)
	ctx := context.Background()

	t.Run("no allowance blocks settlement", func(t *testing.T) {
		rail := payments.NewLocalRail()
		rail.Deposit("USDC", "B", 1000)

		svc := NewSettlementService(store, rail)
		_, err := svc.Settle(ctx, "B", group.ID, "A", 100, "")
		if !errors.Is(err, ledger.ErrInsufficientAllowance) {
			t.Fatalf("error = %v, want ErrInsufficientAllowance", err)
		}
		if debt, _ := ledgerSvc.Debt(ctx, group.ID, "B", "A"); debt != 100 {
			t.Errorf("debt = %d, want 100 (unchanged)", debt)
		}
	})

	t.Run("failed transfer leaves debt unchanged", func(t *testing.T) {
		rail := payments.NewLocalRail()
		rail.Approve(ctx, "USDC", "B", payments.EngineSpender, 1000)
		// No deposit: the transfer itself fails.

		svc := NewSettlementService(store, rail)
		_, err := svc.Settle(ctx, "B", group.ID, "A", 100, "")
		if !errors.Is(err, ledger.ErrTransferFailed) {
			t.Fatalf("error = %v, want ErrTransferFailed", err)
		}
		if debt, _ := ledgerSvc.Debt(ctx, group.ID, "B", "A"); debt != 100 {
			t.Errorf("debt = %d, want 100 (unchanged)", debt)
		}

		// The failed attempt is not in the audit log.
		log, err := NewSettlementService(store, nil).ListSettlements(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(log) != 0 {
			t.Errorf("settlement log = %d entries, want 0", len(log))
		}
	})
}

func TestSettleRecordOnlyWithoutRail(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	svc := NewSettlementService(store, nil)
	ledgerSvc := NewLedgerService(store)
	ctx := context.Background()

	if _, err := svc.Settle(ctx, "B", group.ID, "A", 100, "paid in cash"); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if debt, _ := ledgerSvc.Debt(ctx, group.ID, "B", "A"); debt != 0 {
		t.Errorf("debt = %d, want 0", debt)
	}

	log, err := svc.ListSettlements(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(log) != 1 || log[0].Note != "paid in cash" {
		t.Errorf("log = %+v", log)
	}
}

// commitFailStore makes the settlement commit fail after the transfer has
// been confirmed, exercising the compensating refund.
type commitFailStore struct {
	storage.Store
}

func (s *commitFailStore) ApplySettlement(ctx context.Context, settlement *models.Settlement) error {
	return errors.New("simulated commit failure")
}

func TestSettleRefundsOnCommitFailure(t *testing.T) {
	store := newTestStore(t)
	group := setupDebt(t, store)
	rail := fundedRail(t, "USDC", "B")
	svc := NewSettlementService(&commitFailStore{Store: store}, rail)
	ctx := context.Background()

	_, err := svc.Settle(ctx, "B", group.ID, "A", 100, "")
	if err == nil {
		t.Fatal("expected error from failing commit")
	}

	// The transfer was compensated: balances are back where they started.
	if got := rail.Balance("USDC", "B"); got != 1000 {
		t.Errorf("B rail balance = %d, want 1000", got)
	}
	if got := rail.Balance("USDC", "A"); got != 0 {
		t.Errorf("A rail balance = %d, want 0", got)
	}

	// And the debt is untouched.
	if debt, _ := NewLedgerService(store).Debt(ctx, group.ID, "B", "A"); debt != 100 {
		t.Errorf("debt = %d, want 100", debt)
	}
}
