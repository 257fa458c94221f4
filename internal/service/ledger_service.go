package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
	"github.com/divvly/divvly/internal/storage"
)

// LedgerService records bills and serves the derived debt graph.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage
// backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// isMember checks if the address is in the group's member set.
func isMember(group *models.Group, address string) bool {
	return group.HasMember(address)
}

// AddBill records a bill paid by the caller and applies the debt deltas
// it induces in one atomic step. The caller and every participant must be
// group members.
func (s *LedgerService) AddBill(ctx context.Context, caller string, groupID int64, description string, amount int64, participants []string) (*models.Bill, error) {
	slog.Info("AddBill request received",
		"group_id", groupID,
		"creator", caller,
		"amount", amount,
		"participants_count", len(participants),
	)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("AddBill failed", "group_id", groupID, "error", err)
		return nil, err
	}

	if !isMember(group, caller) {
		return nil, fmt.Errorf("%w: creator %s", ledger.ErrNotGroupMember, caller)
	}
	for _, p := range participants {
		if !isMember(group, p) {
			return nil, fmt.Errorf("%w: participant %s", ledger.ErrNotGroupMember, p)
		}
	}

	deltas, err := ledger.SplitBill(caller, amount, participants)
	if err != nil {
		slog.Warn("AddBill split failed", "group_id", groupID, "error", err)
		return nil, err
	}

	bill := &models.Bill{
		GroupID:      groupID,
		Creator:      caller,
		Description:  description,
		Amount:       amount,
		Participants: ledger.Dedup(participants),
	}
	if err := s.store.AppendBill(ctx, bill, deltas); err != nil {
		slog.Error("AddBill failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Bill recorded", "group_id", groupID, "bill_index", bill.Index)
	return bill, nil
}

// GetBill retrieves a bill by its index in the group's bill sequence.
func (s *LedgerService) GetBill(ctx context.Context, groupID, index int64) (*models.Bill, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.GetBill(ctx, groupID, index)
}

// ListBills retrieves all bills of a group in index order.
func (s *LedgerService) ListBills(ctx context.Context, groupID int64) ([]*models.Bill, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListBillsByGroup(ctx, groupID)
}

// BillParticipant returns the participant at the given position of a bill.
func (s *LedgerService) BillParticipant(ctx context.Context, groupID, index int64, participantIndex int) (string, error) {
	bill, err := s.GetBill(ctx, groupID, index)
	if err != nil {
		return "", err
	}
	if participantIndex < 0 || participantIndex >= len(bill.Participants) {
		return "", fmt.Errorf("%w: participant %d of %d", ledger.ErrIndexOutOfRange, participantIndex, len(bill.Participants))
	}
	return bill.Participants[participantIndex], nil
}

// Debt returns the current debt the debtor owes the creditor. 0 for an
// unknown pair and for self-pairs; never negative.
func (s *LedgerService) Debt(ctx context.Context, groupID int64, debtor, creditor string) (int64, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return 0, err
	}
	if debtor == creditor {
		return 0, nil
	}
	return s.store.GetDebt(ctx, groupID, debtor, creditor)
}

// TotalOwedBy sums everything the member owes across all creditors.
func (s *LedgerService) TotalOwedBy(ctx context.Context, groupID int64, member string) (int64, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return 0, err
	}
	return s.store.TotalOwedBy(ctx, groupID, member)
}

// TotalOwedTo sums everything others owe the member.
func (s *LedgerService) TotalOwedTo(ctx context.Context, groupID int64, member string) (int64, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return 0, err
	}
	return s.store.TotalOwedTo(ctx, groupID, member)
}

// ListDebts returns all nonzero pairwise debts of a group.
func (s *LedgerService) ListDebts(ctx context.Context, groupID int64) ([]models.Debt, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListDebtsByGroup(ctx, groupID)
}

// Balances derives the per-member balance summary for the whole group.
func (s *LedgerService) Balances(ctx context.Context, groupID int64) ([]models.MemberBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	debts, err := s.store.ListDebtsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.Balances(group.MemberAddresses(), debts), nil
}
