// Package category derives the depth of every category from its parent links.
package category

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCycleDetected    = errors.New("category cycle detected")
	ErrCategoryNotFound = errors.New("category not found")
)

type Node struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Level    int
}

// Snapshot maps a category id to its parent id (nil for roots).
type Snapshot map[uuid.UUID]*uuid.UUID

func NewSnapshot(nodes []Node) Snapshot {
	s := make(Snapshot, len(nodes))
	for _, n := range nodes {
		s[n.ID] = n.ParentID
	}
	return s
}

// ComputeLevel returns 0 for a root, 1 + level(parent) otherwise. A parent id
// that does not resolve counts as a root one level up, so the child gets 1.
func ComputeLevel(id uuid.UUID, snap Snapshot) (int, error) {
	parent, ok := snap[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	visited := map[uuid.UUID]struct{}{id: {}}
	level := 0
	for parent != nil {
		pid := *parent
		next, ok := snap[pid]
		if !ok {
			return level + 1, nil
		}
		if _, seen := visited[pid]; seen {
			return 0, fmt.Errorf("%w: %s reaches %s twice", ErrCycleDetected, id, pid)
		}
		visited[pid] = struct{}{}
		level++
		parent = next
	}
	return level, nil
}
