package entity

import "github.com/google/uuid"

// Group is a named category users can be linked to. Groups and their
// memberships are maintained outside this plugin and only read here.
type Group struct {
	ID   uuid.UUID
	Name *string // nil when the store holds no name.
}

// GroupNames returns the names of groups in order. A group without a name
// keeps its position as a nil entry.
func GroupNames(groups []Group) []*string {
	names := make([]*string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}

	return names
}
