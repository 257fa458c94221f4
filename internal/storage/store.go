// Package storage provides abstractions for persistent ledger state.
package storage

import (
	"context"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
)

// Store defines the interface for ledger state persistence. It owns the
// four logical relations (groups, members, bills with participants,
// pairwise debts) plus the settlement audit log and user accounts.
//
// Every mutating method is a single atomic unit: it either fully applies
// or leaves no trace. Two concurrent mutations on the same group must
// never lose an update, and reads only ever observe fully-applied
// mutations.
type Store interface {
	// CreateGroup persists a new group and assigns the next sequential
	// id (starting at 0). A failed creation never consumes an id.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in join order.
	// Returns ledger.ErrGroupNotFound for an unknown id.
	GetGroup(ctx context.Context, groupID int64) (*models.Group, error)

	// ListGroupsByMember returns the ids of all groups the address
	// belongs to, via the membership reverse index.
	ListGroupsByMember(ctx context.Context, address string) ([]int64, error)

	// CountBills returns the number of bills recorded for the group.
	CountBills(ctx context.Context, groupID int64) (int64, error)

	// AppendBill records a bill at the next index in the group's bill
	// sequence and applies the induced debt deltas, all in one
	// transaction. The bill's Index and CreatedAt are populated.
	AppendBill(ctx context.Context, bill *models.Bill, deltas []ledger.DebtDelta) error

	// GetBill retrieves a bill with its participant list.
	// Returns ledger.ErrBillNotFound for an unknown index.
	GetBill(ctx context.Context, groupID, index int64) (*models.Bill, error)

	// ListBillsByGroup retrieves all bills of a group in index order.
	ListBillsByGroup(ctx context.Context, groupID int64) ([]*models.Bill, error)

	// GetDebt returns the current debt for the ordered (debtor, creditor)
	// pair; 0 if none exists. Never negative.
	GetDebt(ctx context.Context, groupID int64, debtor, creditor string) (int64, error)

	// TotalOwedBy sums everything the member owes across all creditors.
	TotalOwedBy(ctx context.Context, groupID int64, member string) (int64, error)

	// TotalOwedTo sums everything others owe the member.
	TotalOwedTo(ctx context.Context, groupID int64, member string) (int64, error)

	// ListDebtsByGroup returns all nonzero debts of a group.
	ListDebtsByGroup(ctx context.Context, groupID int64) ([]models.Debt, error)

	// ApplySettlement atomically decreases the (debtor, creditor) debt by
	// the settlement amount and appends the settlement to the audit log.
	// Returns ledger.ErrNoDebt when the pair debt is 0 and
	// ledger.ErrInsufficientDebt when the amount exceeds it; in both
	// cases no state changes.
	ApplySettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup returns the group's settlement log, newest
	// first.
	ListSettlementsByGroup(ctx context.Context, groupID int64) ([]*models.Settlement, error)

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when
	// no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id. Returns (nil, nil) when no
	// such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
