package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDeriveImplicitFlatModelAddsNothing(t *testing.T) {
	m := New()
	user := must(m.AddPerson("User", ""))
	notes := must(m.AddSoftwareSystem("Notes", ""))
	must(m.Uses(user, notes, "Uses", ""))
	api := must(m.AddSoftwareSystem("API", ""))
	must(m.Uses(notes, api, "Gets / Sends", ""))

	added := m.DeriveImplicitRelationships()

	require.Empty(t, added)
	for _, r := range m.Relationships() {
		require.False(t, r.Source == user && r.Destination == api, "unexpected User -> API edge")
	}
}

func TestDeriveImplicitLiftsToAncestors(t *testing.T) {
	m := New()
	notes := must(m.AddSoftwareSystem("Notes", ""))
	accounts := must(m.AddSoftwareSystem("Accounts", ""))
	web := must(m.AddContainer(notes, "Web app", "", "Python"))
	wizard := must(m.AddComponent(web, "Wizard", "", "Django"))
	ledger := must(m.AddContainer(accounts, "Ledger", "", ""))

	explicit := must(m.Uses(wizard, ledger, "Read / write", "JDBC"))
	added := m.DeriveImplicitRelationships()

	type pair struct{ src, dst ElementID }
	var got []pair
	for _, id := range added {
		r, ok := m.Relationship(id)
		require.True(t, ok)
		require.True(t, r.Implicit)
		require.Equal(t, "Read / write", r.Description)
		require.Equal(t, "JDBC", r.Technology)
		got = append(got, pair{r.Source, r.Destination})
	}

	// Source chain outer, destination chain inner, explicit pair skipped.
	want := []pair{
		{wizard, accounts},
		{web, ledger},
		{web, accounts},
		{notes, ledger},
		{notes, accounts},
	}
	require.Equal(t, want, got)

	r, _ := m.Relationship(explicit)
	require.False(t, r.Implicit)
	require.Len(t, m.ImplicitRelationships(), 5)
}

func TestDeriveImplicitSkipsContainment(t *testing.T) {
	m := New()
	notes := must(m.AddSoftwareSystem("Notes", ""))
	web := must(m.AddContainer(notes, "Web app", "", ""))
	db := must(m.AddContainer(notes, "Database", "", ""))
	wizard := must(m.AddComponent(web, "Wizard", "", ""))

	must(m.Uses(web, db, "Read / write", "PEP"))
	must(m.Uses(wizard, db, "Read / write", "JDBC"))

	// Wizard -> Notes and Notes -> Database cross containment; Web app ->
	// Database already exists with the same description.
	require.Empty(t, m.DeriveImplicitRelationships())
}

func TestDeriveImplicitKeepsInteraction(t *testing.T) {
	m := New()
	user := must(m.AddPerson("User", ""))
	cal := must(m.AddSoftwareSystem("Calendar", ""))
	api := must(m.AddContainer(cal, "API", "", ""))
	must(m.Delivers(api, user, "Updated calendar", ""))

	added := m.DeriveImplicitRelationships()
	require.Len(t, added, 1)
	r, _ := m.Relationship(added[0])
	require.Equal(t, cal, r.Source)
	require.Equal(t, user, r.Destination)
	require.Equal(t, InteractionDelivers, r.Interaction)
}

func TestDeriveImplicitOnlyFromExplicit(t *testing.T) {
	m := New()
	a := must(m.AddSoftwareSystem("A", ""))
	b := must(m.AddSoftwareSystem("B", ""))
	ac := must(m.AddContainer(a, "c", "", ""))
	bc := must(m.AddContainer(b, "c", "", ""))
	must(m.Uses(ac, bc, "calls", ""))

	first := m.DeriveImplicitRelationships()
	require.Len(t, first, 3)

	// Promoting an implicit edge to explicit keeps its id.
	promoted := must(m.Uses(a, b, "calls", ""))
	require.Equal(t, first[2], promoted)
	r, _ := m.Relationship(promoted)
	require.False(t, r.Implicit)

	require.Empty(t, m.DeriveImplicitRelationships())
}

// genModel draws a random hierarchy with random relationships between any
// elements.
func genModel(rt *rapid.T) *Model {
	m := New()
	var all []ElementID

	people := rapid.IntRange(0, 3).Draw(rt, "people")
	for i := range people {
		id, err := m.AddPerson(fmt.Sprintf("P%d", i), "")
		if err != nil {
			rt.Fatalf("AddPerson: %v", err)
		}
		all = append(all, id)
	}

	systems := rapid.IntRange(1, 3).Draw(rt, "systems")
	for i := range systems {
		sys, err := m.AddSoftwareSystem(fmt.Sprintf("S%d", i), "")
		if err != nil {
			rt.Fatalf("AddSoftwareSystem: %v", err)
		}
		all = append(all, sys)
		for j := range rapid.IntRange(0, 2).Draw(rt, "containers") {
			c, err := m.AddContainer(sys, fmt.Sprintf("C%d", j), "", "")
			if err != nil {
				rt.Fatalf("AddContainer: %v", err)
			}
			all = append(all, c)
			for k := range rapid.IntRange(0, 2).Draw(rt, "components") {
				cmp, err := m.AddComponent(c, fmt.Sprintf("K%d", k), "", "")
				if err != nil {
					rt.Fatalf("AddComponent: %v", err)
				}
				all = append(all, cmp)
			}
		}
	}

	rels := rapid.IntRange(0, 8).Draw(rt, "relationships")
	for range rels {
		src := rapid.SampledFrom(all).Draw(rt, "src")
		dst := rapid.SampledFrom(all).Draw(rt, "dst")
		desc := rapid.SampledFrom([]string{"Uses", "Reads"}).Draw(rt, "desc")
		if _, err := m.Uses(src, dst, desc, ""); err != nil {
			rt.Fatalf("Uses: %v", err)
		}
	}
	return m
}

func TestDeriveImplicitIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := genModel(rt)

		m.DeriveImplicitRelationships()
		once := m.Relationships()

		n := rapid.IntRange(1, 4).Draw(rt, "repeat")
		for range n {
			if added := m.DeriveImplicitRelationships(); len(added) != 0 {
				rt.Fatalf("repeat derivation added %d relationships", len(added))
			}
		}
		require.Equal(rt, once, m.Relationships())
	})
}

func TestDeriveImplicitNoDuplicateEdges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := genModel(rt)
		m.DeriveImplicitRelationships()

		type key struct {
			src, dst ElementID
			desc     string
		}
		seen := make(map[key]bool)
		for _, r := range m.Relationships() {
			k := key{r.Source, r.Destination, r.Description}
			if seen[k] {
				rt.Fatalf("duplicate relationship %v", k)
			}
			seen[k] = true
			if r.Implicit && (r.Source == r.Destination || m.IsAncestor(r.Source, r.Destination) || m.IsAncestor(r.Destination, r.Source)) {
				rt.Fatalf("implicit relationship crosses containment: %+v", r)
			}
		}
	})
}
