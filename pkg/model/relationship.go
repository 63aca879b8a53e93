package model

import (
	"slices"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// RelationshipID identifies a relationship. It is drawn from the same sequence
// as [ElementID].
type RelationshipID string

// Interaction describes how the source of a relationship acts on its
// destination.
type Interaction string

const (
	// InteractionUses is the common case: the source uses the destination
	// ("User uses Notes").
	InteractionUses Interaction = "Uses"
	// InteractionDelivers is a system delivering something to a person
	// ("Calendar delivers updated calendar to User"). The edge still runs
	// source to destination; only the reading direction differs.
	InteractionDelivers Interaction = "Delivers"
)

// TagRelationship is the tag every relationship carries.
const TagRelationship = "Relationship"

// Relationship is a directed, described connection between two elements.
type Relationship struct {
	ID          RelationshipID
	Source      ElementID
	Destination ElementID
	Description string
	Technology  string
	Interaction Interaction
	Implicit    bool // Derived by DeriveImplicitRelationships
	Tags        []string
}

func (r Relationship) clone() Relationship {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// Uses adds an explicit "uses" relationship from src to dst.
func (m *Model) Uses(src, dst ElementID, description, technology string) (RelationshipID, error) {
	return m.AddRelationship(Relationship{
		Source:      src,
		Destination: dst,
		Description: description,
		Technology:  technology,
		Interaction: InteractionUses,
	})
}

// Delivers adds an explicit "delivers" relationship from src to dst.
func (m *Model) Delivers(src, dst ElementID, description, technology string) (RelationshipID, error) {
	return m.AddRelationship(Relationship{
		Source:      src,
		Destination: dst,
		Description: description,
		Technology:  technology,
		Interaction: InteractionDelivers,
	})
}

// AddRelationship adds r to the graph and returns its id. The ID field of r is
// ignored; Interaction defaults to [InteractionUses].
//
// Returns UNKNOWN_ELEMENT if either endpoint does not exist. Adding a
// relationship whose (source, destination, description) already exists
// returns the existing id; if that relationship was implicit it becomes
// explicit.
func (m *Model) AddRelationship(r Relationship) (RelationshipID, error) {
	if !m.Has(r.Source) {
		return "", errors.New(errors.ErrCodeUnknownElement, "relationship source %q does not exist", r.Source)
	}
	if !m.Has(r.Destination) {
		return "", errors.New(errors.ErrCodeUnknownElement, "relationship destination %q does not exist", r.Destination)
	}

	if existing := m.find(r.Source, r.Destination, r.Description); existing != nil {
		if !r.Implicit {
			existing.Implicit = false
		}
		return existing.ID, nil
	}

	if r.Interaction == "" {
		r.Interaction = InteractionUses
	}
	tags := []string{TagRelationship}
	for _, t := range r.Tags {
		if t != "" && !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	r.Tags = tags

	r.ID = RelationshipID(m.nextID())
	m.commit()
	m.relationships[r.ID] = &r
	m.relOrder = append(m.relOrder, r.ID)
	return r.ID, nil
}

// Relationship returns the relationship with the given id.
func (m *Model) Relationship(id RelationshipID) (Relationship, bool) {
	r, ok := m.relationships[id]
	if !ok {
		return Relationship{}, false
	}
	return r.clone(), true
}

// Relationships returns every relationship, explicit and implicit, in
// insertion order.
func (m *Model) Relationships() []Relationship {
	out := make([]Relationship, 0, len(m.relOrder))
	for _, id := range m.relOrder {
		out = append(out, m.relationships[id].clone())
	}
	return out
}

// RelationshipsOf returns the relationships with id as source or destination.
func (m *Model) RelationshipsOf(id ElementID) []Relationship {
	var out []Relationship
	for _, rid := range m.relOrder {
		r := m.relationships[rid]
		if r.Source == id || r.Destination == id {
			out = append(out, r.clone())
		}
	}
	return out
}

// Neighbours returns the elements connected to id by exactly one relationship
// in either direction, in relationship order and without duplicates. The
// element itself is only included if it has a relationship to itself.
func (m *Model) Neighbours(id ElementID) []ElementID {
	var out []ElementID
	for _, rid := range m.relOrder {
		r := m.relationships[rid]
		var other ElementID
		switch id {
		case r.Source:
			other = r.Destination
		case r.Destination:
			other = r.Source
		default:
			continue
		}
		if !slices.Contains(out, other) {
			out = append(out, other)
		}
	}
	return out
}

// HasRelationship reports whether a relationship from src to dst with the
// given description exists.
func (m *Model) HasRelationship(src, dst ElementID, description string) bool {
	return m.find(src, dst, description) != nil
}

func (m *Model) find(src, dst ElementID, description string) *Relationship {
	for _, rid := range m.relOrder {
		r := m.relationships[rid]
		if r.Source == src && r.Destination == dst && r.Description == description {
			return r
		}
	}
	return nil
}
