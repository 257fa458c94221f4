package models

// Member is an identified participant in a group.
type Member struct {
	// Address uniquely identifies the member within the group.
	// It is the authoritative identity; Name is display-only.
	Address string

	// Name is the display label for the member.
	Name string
}

// Group represents a named set of members sharing one settlement token
// and a bill history.
type Group struct {
	// ID is the sequential group identifier, assigned starting at 0.
	ID int64

	// Name is the display name of the group (e.g., "Roommates").
	Name string

	// Token identifies the settlement currency/unit used by every bill
	// in this group. Immutable after creation.
	Token string

	// Members in join order. Index 0 is the group creator by caller
	// convention. A member's index is stable and never reused.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberAddresses returns the addresses of all members in join order.
func (g *Group) MemberAddresses() []string {
	addrs := make([]string, len(g.Members))
	for i, m := range g.Members {
		addrs[i] = m.Address
	}
	return addrs
}

// HasMember reports whether the given address belongs to the group.
func (g *Group) HasMember(address string) bool {
	for _, m := range g.Members {
		if m.Address == address {
			return true
		}
	}
	return false
}
