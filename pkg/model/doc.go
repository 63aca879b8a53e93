// Package model holds the element registry and relationship graph of an
// architecture workspace.
//
// # Overview
//
// A [Model] is an arena of C4 elements (people, software systems, containers
// and components) and the directed relationships between them. Everything is
// addressed by id:
//
//	m := model.New()
//	user, _ := m.AddPerson("User", "Me, a user of my software system.")
//	notes, _ := m.AddSoftwareSystem("Notes", "Notes app.")
//	web, _ := m.AddContainer(notes, "Web app", "Main UI for notes app", "Python")
//	m.Uses(user, web, "Uses", "")
//
// # Invariants
//
// Names are unique per kind-scope: two containers of the same system cannot
// share a name, but containers of different systems can. A parent must exist,
// and be of the right kind, before a child is added. Relationships require
// both endpoints to exist. Every violation is reported by the call that
// causes it, using the codes in [github.com/matzehuels/archmodel/pkg/errors],
// and a failed call leaves the model untouched.
//
// # Implicit Relationships
//
// [Model.DeriveImplicitRelationships] lifts relationships between nested
// elements to their ancestors, so a container-level "uses" also appears on
// context diagrams. The derivation is explicit rather than automatic: call it
// once after the explicit relationships are in place.
package model
