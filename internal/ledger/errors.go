package ledger

import "errors"

// Failure kinds for ledger operations. Mutating operations return exactly
// one of these (possibly wrapped); callers classify with errors.Is and are
// responsible for user-facing messaging.
var (
	// ErrGroupNotFound: operation references a nonexistent group id.
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotGroupMember: a bill or settlement references an address
	// outside the group's member set.
	ErrNotGroupMember = errors.New("address is not a group member")

	// ErrInsufficientMembers: group creation with fewer than MinMembers.
	ErrInsufficientMembers = errors.New("group needs at least two members")

	// ErrTooManyMembers: group creation above the configured cap.
	ErrTooManyMembers = errors.New("too many members")

	// ErrMismatchedInput: parallel input slices differ in length.
	ErrMismatchedInput = errors.New("member names and addresses differ in length")

	// ErrDuplicateMember: the same address given twice at group creation.
	ErrDuplicateMember = errors.New("duplicate member address")

	// ErrBillNotFound: query references a nonexistent bill index.
	ErrBillNotFound = errors.New("bill not found")

	// ErrIndexOutOfRange: member or participant index out of bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoParticipants: a bill with an empty participant list.
	ErrNoParticipants = errors.New("bill needs at least one participant")

	// ErrNegativeAmount: a bill with a negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidAmount: a settlement with a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrNoDebt: settlement attempted where no debt exists for the pair.
	ErrNoDebt = errors.New("no debt between pair")

	// ErrInsufficientDebt: settlement amount exceeds the existing debt.
	// Debt never goes negative and never flips direction.
	ErrInsufficientDebt = errors.New("settlement exceeds outstanding debt")

	// ErrInsufficientAllowance: the value-transfer rail refused the
	// payment because the debtor has not approved enough spend.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrTransferFailed: the value-transfer rail rejected the payment.
	// Recorded debt is never reduced when this occurs.
	ErrTransferFailed = errors.New("value transfer failed")
)
