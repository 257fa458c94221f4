package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
)

// AppendBill records a bill at the next index in the group's sequence and
// applies the induced debt deltas, all in one transaction. The bill's
// Index and CreatedAt fields are populated on success.
func (s *SQLiteStore) AppendBill(ctx context.Context, bill *models.Bill, deltas []ledger.DebtDelta) error {
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(bill_index)+1, 0) FROM bills WHERE group_id = ?",
		bill.GroupID,
	).Scan(&bill.Index)
	if err != nil {
		return fmt.Errorf("failed to allocate bill index: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (group_id, bill_index, creator, description, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		bill.GroupID, bill.Index, bill.Creator, bill.Description, bill.Amount, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i, addr := range bill.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO bill_participants (group_id, bill_index, ordinal, address) VALUES (?, ?, ?, ?)",
			bill.GroupID, bill.Index, i, addr,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for _, d := range deltas {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO debts (group_id, debtor, creditor, amount) VALUES (?, ?, ?, ?)
			 ON CONFLICT (group_id, debtor, creditor) DO UPDATE SET amount = amount + excluded.amount`,
			bill.GroupID, d.Debtor, d.Creditor, d.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to apply debt delta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBill retrieves a bill by (group, index), including its participants
// in creation order.
func (s *SQLiteStore) GetBill(ctx context.Context, groupID, index int64) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT group_id, bill_index, creator, description, amount, created_at FROM bills WHERE group_id = ? AND bill_index = ?",
		groupID, index,
	).Scan(&bill.GroupID, &bill.Index, &bill.Creator, &bill.Description, &bill.Amount, &bill.CreatedAt)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: group %d bill %d", ledger.ErrBillNotFound, groupID, index)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	participants, err := s.billParticipants(ctx, groupID, index)
	if err != nil {
		return nil, err
	}
	bill.Participants = participants

	return bill, nil
}

// CountBills returns the number of bills recorded for the group.
func (s *SQLiteStore) CountBills(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bills WHERE group_id = ?",
		groupID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return count, nil
}

// ListBillsByGroup retrieves all bills of a group in index order.
func (s *SQLiteStore) ListBillsByGroup(ctx context.Context, groupID int64) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, bill_index, creator, description, amount, created_at FROM bills WHERE group_id = ? ORDER BY bill_index",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.GroupID, &bill.Index, &bill.Creator, &bill.Description, &bill.Amount, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for _, bill := range bills {
		participants, err := s.billParticipants(ctx, groupID, bill.Index)
		if err != nil {
			return nil, err
		}
		bill.Participants = participants
	}

	return bills, nil
}

func (s *SQLiteStore) billParticipants(ctx context.Context, groupID, index int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT address FROM bill_participants WHERE group_id = ? AND bill_index = ? ORDER BY ordinal",
		groupID, index,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
