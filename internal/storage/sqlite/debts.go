package sqlite

import (
	"context"
	"fmt"

	"github.com/divvly/divvly/internal/models"
)

// GetDebt returns the current debt for the ordered (debtor, creditor)
// pair, 0 if no row exists.
func (s *SQLiteStore) GetDebt(ctx context.Context, groupID int64, debtor, creditor string) (int64, error) {
	var amount int64
	err := s.db.QueryRowContext(ctx,
		"SELECT amount FROM debts WHERE group_id = ? AND debtor = ? AND creditor = ?",
		groupID, debtor, creditor,
	).Scan(&amount)
	if isNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get debt: %w", err)
	}
	return amount, nil
}

// TotalOwedBy sums everything the member owes across all creditors.
func (s *SQLiteStore) TotalOwedBy(ctx context.Context, groupID int64, member string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM debts WHERE group_id = ? AND debtor = ?",
		groupID, member,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum owed by member: %w", err)
	}
	return total, nil
}

// TotalOwedTo sums everything others owe the member.
func (s *SQLiteStore) TotalOwedTo(ctx context.Context, groupID int64, member string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM debts WHERE group_id = ? AND creditor = ?",
		groupID, member,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum owed to member: %w", err)
	}
	return total, nil
}

// ListDebtsByGroup returns all nonzero debts of a group, ordered by
// debtor then creditor.
func (s *SQLiteStore) ListDebtsByGroup(ctx context.Context, groupID int64) ([]models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, debtor, creditor, amount FROM debts WHERE group_id = ? AND amount > 0 ORDER BY debtor, creditor",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.GroupID, &d.Debtor, &d.Creditor, &d.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return debts, nil
}
