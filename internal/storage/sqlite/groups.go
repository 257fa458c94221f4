package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
)

// CreateGroup persists a new group and its members in one transaction.
// The group id is allocated as MAX(id)+1 starting at 0 inside the
// transaction, so a rolled-back creation never consumes an id.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id)+1, 0) FROM groups",
	).Scan(&group.ID)
	if err != nil {
		return fmt.Errorf("failed to allocate group id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, token, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.Token, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, m := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, member_index, address, name) VALUES (?, ?, ?, ?)",
			group.ID, i, m.Address, m.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by id, including its members in join order.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, token, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Token, &group.CreatedAt)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: %d", ledger.ErrGroupNotFound, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT address, name FROM group_members WHERE group_id = ? ORDER BY member_index",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.Address, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		group.Members = append(group.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return group, nil
}

// ListGroupsByMember returns the ids of all groups the address belongs to,
// in ascending id order.
func (s *SQLiteStore) ListGroupsByMember(ctx context.Context, address string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id FROM group_members WHERE address = ? ORDER BY group_id",
		address,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group ids: %w", err)
	}

	return ids, nil
}
