package service

import (
	"context"
	"errors"
	"testing"

	"github.com/divvly/divvly/internal/ledger"
)

func TestCreateGroupValidation(t *testing.T) {
	tests := []struct {
		name      string
		names     []string
		addresses []string
		wantErr   error
	}{
		{
			name:      "single member rejected",
			names:     []string{"Alice"},
			addresses: []string{"A"},
			wantErr:   ledger.ErrInsufficientMembers,
		},
		{
			name:      "mismatched arrays rejected",
			names:     []string{"Alice", "Bob", "Carol"},
			addresses: []string{"A", "B"},
			wantErr:   ledger.ErrMismatchedInput,
		},
		{
			name:      "duplicate address rejected",
			names:     []string{"Alice", "Bob"},
			addresses: []string{"A", "A"},
			wantErr:   ledger.ErrDuplicateMember,
		},
	}

	store := newTestStore(t)
	svc := NewGroupService(store, 10)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGroup(ctx, "Trip", "USDC", tt.names, tt.addresses)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("member cap enforced", func(t *testing.T) {
		capped := NewGroupService(store, 2)
		_, err := capped.CreateGroup(ctx, "Trip", "USDC",
			[]string{"Alice", "Bob", "Carol"},
			[]string{"A", "B", "C"},
		)
		if !errors.Is(err, ledger.ErrTooManyMembers) {
			t.Errorf("CreateGroup() error = %v, want ErrTooManyMembers", err)
		}
	})
}

func TestFailedCreateDoesNotConsumeID(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store, 10)
	ctx := context.Background()

	// A failed creation must not allocate an id: the next valid call
	// gets the id it would have gotten had the failure never happened.
	_, err := svc.CreateGroup(ctx, "Solo", "USDC", []string{"Alice"}, []string{"A"})
	if !errors.Is(err, ledger.ErrInsufficientMembers) {
		t.Fatalf("error = %v, want ErrInsufficientMembers", err)
	}

	group, err := svc.CreateGroup(ctx, "Trip", "USDC",
		[]string{"Alice", "Bob"}, []string{"A", "B"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID != 0 {
		t.Errorf("group id = %d, want 0", group.ID)
	}
}

func TestGroupAccessors(t *testing.T) {
	store := newTestStore(t)
	group := createTestGroup(t, store)
	svc := NewGroupService(store, 10)
	ctx := context.Background()

	t.Run("GroupInfo", func(t *testing.T) {
		info, err := svc.GroupInfo(ctx, group.ID)
		if err != nil {
			t.Fatalf("GroupInfo failed: %v", err)
		}
		if info.Name != "Trip" || info.Token != "USDC" || info.MemberCount != 3 || info.BillCount != 0 {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("GroupInfo unknown group", func(t *testing.T) {
		_, err := svc.GroupInfo(ctx, 404)
		if !errors.Is(err, ledger.ErrGroupNotFound) {
			t.Errorf("error = %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("Member by index", func(t *testing.T) {
		m, err := svc.Member(ctx, group.ID, 0)
		if err != nil {
			t.Fatalf("Member failed: %v", err)
		}
		if m.Address != "A" || m.Name != "Alice" {
			t.Errorf("member 0 = %+v", m)
		}
	})

	t.Run("Member index out of range", func(t *testing.T) {
		if _, err := svc.Member(ctx, group.ID, 3); !errors.Is(err, ledger.ErrIndexOutOfRange) {
			t.Errorf("error = %v, want ErrIndexOutOfRange", err)
		}
		if _, err := svc.Member(ctx, group.ID, -1); !errors.Is(err, ledger.ErrIndexOutOfRange) {
			t.Errorf("error = %v, want ErrIndexOutOfRange", err)
		}
	})

	t.Run("MemberCount", func(t *testing.T) {
		count, err := svc.MemberCount(ctx, group.ID)
		if err != nil {
			t.Fatalf("MemberCount failed: %v", err)
		}
		if count != 3 {
			t.Errorf("count = %d, want 3", count)
		}
	})

	t.Run("GroupsForMember", func(t *testing.T) {
		ids, err := svc.GroupsForMember(ctx, "B")
		if err != nil {
			t.Fatalf("GroupsForMember failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != group.ID {
			t.Errorf("ids = %v, want [%d]", ids, group.ID)
		}
	})
}
