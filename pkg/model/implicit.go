package model

// DeriveImplicitRelationships adds the relationships implied by containment.
//
// For every explicit relationship, in insertion order, it walks the cross
// product of the source's chain (the source and its ancestors, nearest first)
// and the destination's chain. Each pair gets an implicit relationship with
// the same description, technology and interaction, except:
//
//   - the explicit pair itself
//   - pairs of the same element
//   - pairs where one element contains the other
//   - pairs already connected with the same description
//
// A component "Wizard" in container "Web app" of system "Notes" that uses the
// "Accounts" system therefore yields implicit "Web app uses Accounts" and
// "Notes uses Accounts". Top-level elements have no ancestors, so a model
// without containers never gains edges.
//
// Derivation is idempotent: a second call finds every pair connected and
// returns nil. The returned ids are those added by this call, in order.
func (m *Model) DeriveImplicitRelationships() []RelationshipID {
	explicit := make([]Relationship, 0, len(m.relOrder))
	for _, id := range m.relOrder {
		if r := m.relationships[id]; !r.Implicit {
			explicit = append(explicit, *r)
		}
	}

	var added []RelationshipID
	for _, r := range explicit {
		srcChain := append([]ElementID{r.Source}, m.Ancestors(r.Source)...)
		dstChain := append([]ElementID{r.Destination}, m.Ancestors(r.Destination)...)

		for _, s := range srcChain {
			for _, d := range dstChain {
				if s == r.Source && d == r.Destination {
					continue
				}
				if s == d || m.IsAncestor(s, d) || m.IsAncestor(d, s) {
					continue
				}
				if m.HasRelationship(s, d, r.Description) {
					continue
				}
				// Both endpoints come from existing ancestor chains, so
				// AddRelationship cannot fail here.
				id, _ := m.AddRelationship(Relationship{
					Source:      s,
					Destination: d,
					Description: r.Description,
					Technology:  r.Technology,
					Interaction: r.Interaction,
					Implicit:    true,
				})
				added = append(added, id)
			}
		}
	}
	return added
}

// ImplicitRelationships returns only the derived relationships.
func (m *Model) ImplicitRelationships() []Relationship {
	var out []Relationship
	for _, id := range m.relOrder {
		if r := m.relationships[id]; r.Implicit {
			out = append(out, r.clone())
		}
	}
	return out
}
