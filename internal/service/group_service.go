package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/divvly/divvly/internal/ledger"
	"github.com/divvly/divvly/internal/models"
	"github.com/divvly/divvly/internal/storage"
)

// GroupService owns group identity and membership invariants.
type GroupService struct {
	store      storage.Store
	maxMembers int
}

// NewGroupService creates a new GroupService with the given storage
// backend. maxMembers bounds group size at creation; 0 disables the cap.
func NewGroupService(store storage.Store, maxMembers int) *GroupService {
	return &GroupService{store: store, maxMembers: maxMembers}
}

// GroupInfo is the summary view of a group.
type GroupInfo struct {
	ID          int64
	Name        string
	Token       string
	MemberCount int
	BillCount   int64
}

// CreateGroup validates the parallel name/address lists and persists a
// new group. By caller convention the creator is member 0; the registry
// itself does not enforce it.
func (s *GroupService) CreateGroup(ctx context.Context, name, token string, memberNames, memberAddresses []string) (*models.Group, error) {
	slog.Info("CreateGroup request received",
		"name", name,
		"token", token,
		"members_count", len(memberAddresses),
	)

	if err := ledger.ValidateMembers(memberNames, memberAddresses, ledger.MinMembers, s.maxMembers); err != nil {
		slog.Warn("CreateGroup validation failed", "error", err)
		return nil, err
	}

	group := &models.Group{
		Name:  name,
		Token: token,
	}
	for i := range memberAddresses {
		group.Members = append(group.Members, models.Member{
			Address: memberAddresses[i],
			Name:    memberNames[i],
		})
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// GetGroup retrieves a group with its full member list.
func (s *GroupService) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// GroupInfo returns the summary view: name, token, member and bill counts.
func (s *GroupService) GroupInfo(ctx context.Context, groupID int64) (*GroupInfo, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	billCount, err := s.store.CountBills(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupInfo{
		ID:          group.ID,
		Name:        group.Name,
		Token:       group.Token,
		MemberCount: len(group.Members),
		BillCount:   billCount,
	}, nil
}

// MemberCount returns the number of members in the group.
func (s *GroupService) MemberCount(ctx context.Context, groupID int64) (int, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	return len(group.Members), nil
}

// Member returns the member at the given join-order index.
func (s *GroupService) Member(ctx context.Context, groupID int64, index int) (*models.Member, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(group.Members) {
		return nil, fmt.Errorf("%w: member %d of %d", ledger.ErrIndexOutOfRange, index, len(group.Members))
	}
	m := group.Members[index]
	return &m, nil
}

// GroupsForMember returns the ids of all groups the address belongs to.
// This is a real membership index; candidate ids are never probed.
func (s *GroupService) GroupsForMember(ctx context.Context, address string) ([]int64, error) {
	return s.store.ListGroupsByMember(ctx, address)
}
