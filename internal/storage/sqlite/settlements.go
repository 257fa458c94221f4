package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
)

// ApplySettlement atomically decreases the (debtor, creditor) debt and
// appends the settlement to the audit log. The debt is re-read inside the
// transaction and the decrement carries an amount >= ? guard, so a
// concurrent settlement cannot drive the debt negative.
func (s *SQLiteStore) ApplySettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Amount <= 0 {
		return ledger.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx,
		"SELECT amount FROM debts WHERE group_id = ? AND debtor = ? AND creditor = ?",
		settlement.GroupID, settlement.Debtor, settlement.Creditor,
	).Scan(&current)
	if isNoRows(err) || (err == nil && current == 0) {
		return fmt.Errorf("%w: %s -> %s", ledger.ErrNoDebt, settlement.Debtor, settlement.Creditor)
	}
	if err != nil {
		return fmt.Errorf("failed to read debt: %w", err)
	}
	if settlement.Amount > current {
		return fmt.Errorf("%w: have %d, settling %d", ledger.ErrInsufficientDebt, current, settlement.Amount)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE debts SET amount = amount - ? WHERE group_id = ? AND debtor = ? AND creditor = ? AND amount >= ?",
		settlement.Amount, settlement.GroupID, settlement.Debtor, settlement.Creditor, settlement.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement debt: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return fmt.Errorf("%w: debt changed concurrently", ledger.ErrInsufficientDebt)
	}

	var note interface{}
	if settlement.Note != "" {
		note = settlement.Note
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, debtor, creditor, amount, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, settlement.Debtor, settlement.Creditor,
		settlement.Amount, note, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSettlementsByGroup retrieves the group's settlement log, newest
// first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID int64) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, debtor, creditor, amount, note, created_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &settlement.Debtor, &settlement.Creditor,
			&settlement.Amount, &note, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		if note.Valid {
			settlement.Note = note.String
		}

		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
