package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
	"github.com/divvly/divvly/internal/payments"
	"github.com/divvly/divvly/internal/storage"
)

// SettlementService applies debt-reducing payments. Debt is only reduced
// after the value transfer is confirmed on the rail; the two steps form a
// saga with a compensating refund if the ledger commit loses a race.
type SettlementService struct {
	store storage.Store
	rail  payments.Rail // nil = record-only settlements
}

// NewSettlementService creates a new SettlementService. A nil rail makes
// settlements record-only (payment handled off-platform).
func NewSettlementService(store storage.Store, rail payments.Rail) *SettlementService {
	return &SettlementService{store: store, rail: rail}
}

// Settle applies a payment from the caller (the debtor) to the creditor,
// reducing the pairwise debt by amount. Fully applied or no state change:
// the transfer is confirmed first, then the debt decrement commits
// atomically; if the decrement fails after a confirmed transfer the
// transfer is compensated with a reverse payment.
func (s *SettlementService) Settle(ctx context.Context, caller string, groupID int64, creditor string, amount int64, note string) (*models.Settlement, error) {
	slog.Info("Settle request received",
		"group_id", groupID,
		"debtor", caller,
		"creditor", creditor,
		"amount", amount,
	)

	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("Settle failed", "group_id", groupID, "error", err)
		return nil, err
	}
	if !isMember(group, caller) {
		return nil, fmt.Errorf("%w: debtor %s", ledger.ErrNotGroupMember, caller)
	}
	if !isMember(group, creditor) {
		return nil, fmt.Errorf("%w: creditor %s", ledger.ErrNotGroupMember, creditor)
	}

	// Fail fast before moving any value.
	current, err := s.store.GetDebt(ctx, groupID, caller, creditor)
	if err != nil {
		return nil, err
	}
	if current == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", ledger.ErrNoDebt, caller, creditor)
	}
	if amount > current {
		return nil, fmt.Errorf("%w: have %d, settling %d", ledger.ErrInsufficientDebt, current, amount)
	}

	if s.rail != nil {
		if err := s.rail.Transfer(ctx, group.Token, payments.EngineSpender, caller, creditor, amount); err != nil {
			slog.Warn("Settle transfer rejected",
				"group_id", groupID,
				"debtor", caller,
				"creditor", creditor,
				"error", err,
			)
			return nil, err
		}
	}

	settlement := &models.Settlement{
		GroupID:  groupID,
		Debtor:   caller,
		Creditor: creditor,
		Amount:   amount,
		Note:     note,
	}
	if err := s.store.ApplySettlement(ctx, settlement); err != nil {
		// Value already moved; compensate with a reverse transfer. The
		// creditor pays it back out of their own balance, no allowance
		// involved.
		if s.rail != nil {
			if refundErr := s.rail.Transfer(ctx, group.Token, creditor, creditor, caller, amount); refundErr != nil {
				slog.Error("Settle refund failed, manual reconciliation needed",
					"group_id", groupID,
					"debtor", caller,
					"creditor", creditor,
					"amount", amount,
					"error", refundErr,
				)
			}
		}
		slog.Error("Settle failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Settlement applied",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"remaining", current-amount,
	)
	return settlement, nil
}

// ListSettlements returns the group's settlement log, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, groupID int64) ([]*models.Settlement, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
