package model

// Model is the arena holding every element and relationship of a workspace.
// Cross references are ids, never pointers, so the parent/child and
// relationship structure has no ownership cycles.
//
// Insertion order is preserved for both elements and relationships. It
// determines default diagram order and must be reproducible, so the zero
// value is not usable: create models with [New].
//
// Model is not safe for concurrent use. A workspace is built by one caller.
type Model struct {
	seq int

	elements map[ElementID]*Element
	order    []ElementID
	names    map[scopeKey]ElementID

	relationships map[RelationshipID]*Relationship
	relOrder      []RelationshipID
}

// New creates an empty model.
func New() *Model {
	return &Model{
		elements:      make(map[ElementID]*Element),
		names:         make(map[scopeKey]ElementID),
		relationships: make(map[RelationshipID]*Relationship),
	}
}

// Len returns the number of elements.
func (m *Model) Len() int { return len(m.order) }

// RelationshipCount returns the number of relationships, implicit included.
func (m *Model) RelationshipCount() int { return len(m.relOrder) }
