package model

import (
	"slices"
	"testing"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// must unwraps a builder result, panicking on error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestAddElementsAssignsSequentialIDs(t *testing.T) {
	m := New()

	user := must(m.AddPerson("User", "Me"))
	notes := must(m.AddSoftwareSystem("Notes", "Notes app."))
	rel := must(m.Uses(user, notes, "Uses", ""))
	web := must(m.AddContainer(notes, "Web app", "Main UI", "Python"))

	if user != "1" || notes != "2" || rel != "3" || web != "4" {
		t.Errorf("ids = %s %s %s %s, want 1 2 3 4", user, notes, rel, web)
	}
}

func TestAddElementDefaults(t *testing.T) {
	m := New()
	notes := must(m.AddSoftwareSystem("Notes", "Notes app."))
	db := must(m.AddContainer(notes, "Database", "All data for notes", "PostgreSQL"))

	sys, _ := m.Element(notes)
	if sys.Location != LocationUnspecified {
		t.Errorf("system location = %q, want %q", sys.Location, LocationUnspecified)
	}
	if !slices.Equal(sys.Tags, []string{"Element", "Software System"}) {
		t.Errorf("system tags = %v", sys.Tags)
	}

	c, ok := m.Element(db)
	if !ok {
		t.Fatal("container not found")
	}
	if c.Parent != notes || c.Technology != "PostgreSQL" || c.Kind != KindContainer {
		t.Errorf("container = %+v", c)
	}
	if c.Location != "" {
		t.Errorf("container location = %q, want empty", c.Location)
	}
}

func TestDuplicateName(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Model) error
	}{
		{"person", func(m *Model) error {
			m.AddPerson("User", "")
			_, err := m.AddPerson("User", "again")
			return err
		}},
		{"software system", func(m *Model) error {
			m.AddSoftwareSystem("Notes", "")
			_, err := m.AddSoftwareSystem("Notes", "")
			return err
		}},
		{"container in same system", func(m *Model) error {
			s, _ := m.AddSoftwareSystem("Notes", "")
			m.AddContainer(s, "Database", "", "")
			_, err := m.AddContainer(s, "Database", "", "")
			return err
		}},
		{"component in same container", func(m *Model) error {
			s, _ := m.AddSoftwareSystem("Notes", "")
			c, _ := m.AddContainer(s, "Web app", "", "")
			m.AddComponent(c, "Calendar", "", "")
			_, err := m.AddComponent(c, "Calendar", "", "")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			err := tt.build(m)
			if !errors.Is(err, errors.ErrCodeDuplicateName) {
				t.Fatalf("err = %v, want DUPLICATE_NAME", err)
			}
		})
	}
}

func TestDuplicateNameLeavesRegistryUnchanged(t *testing.T) {
	m := New()
	must(m.AddPerson("User", "first"))

	if _, err := m.AddPerson("User", "second"); err == nil {
		t.Fatal("expected error")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	p, _ := m.PersonNamed("User")
	if p.Description != "first" {
		t.Errorf("description = %q, want first", p.Description)
	}

	// The failed call must not consume an id.
	next := must(m.AddSoftwareSystem("Notes", ""))
	if next != "2" {
		t.Errorf("next id = %s, want 2", next)
	}
}

func TestSameNameDifferentScopes(t *testing.T) {
	m := New()
	notes := must(m.AddSoftwareSystem("Notes", ""))
	media := must(m.AddSoftwareSystem("Multimedia", ""))

	must(m.AddContainer(notes, "Database", "", ""))
	must(m.AddContainer(media, "Database", "", ""))

	// A person and a system may share a name.
	must(m.AddPerson("Notes", ""))

	// A component may share its container's name.
	web := must(m.AddContainer(notes, "Calendar", "", ""))
	must(m.AddComponent(web, "Calendar", "", ""))
}

func TestUnknownParent(t *testing.T) {
	m := New()
	user := must(m.AddPerson("User", ""))
	notes := must(m.AddSoftwareSystem("Notes", ""))

	tests := []struct {
		name string
		add  func() (ElementID, error)
	}{
		{"container of missing system", func() (ElementID, error) { return m.AddContainer("99", "Web app", "", "") }},
		{"container of person", func() (ElementID, error) { return m.AddContainer(user, "Web app", "", "") }},
		{"component of system", func() (ElementID, error) { return m.AddComponent(notes, "Auth", "", "") }},
		{"component of missing container", func() (ElementID, error) { return m.AddComponent("", "Auth", "", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.Len()
			id, err := tt.add()
			if !errors.Is(err, errors.ErrCodeUnknownParent) {
				t.Fatalf("err = %v, want UNKNOWN_PARENT", err)
			}
			if id != "" {
				t.Errorf("id = %q, want empty", id)
			}
			if m.Len() != before {
				t.Errorf("element added despite error")
			}
		})
	}
}

func TestEmptyName(t *testing.T) {
	m := New()
	if _, err := m.AddPerson("  ", ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestLookups(t *testing.T) {
	m := New()
	user := must(m.AddPerson("User", ""))
	notes := must(m.AddSoftwareSystem("Notes", ""))
	api := must(m.AddSoftwareSystem("API", ""))
	web := must(m.AddContainer(notes, "Web app", "", ""))
	db := must(m.AddContainer(notes, "Database", "", ""))
	auth := must(m.AddComponent(web, "Authentication", "", ""))

	if got := ids(m.People()); !slices.Equal(got, []ElementID{user}) {
		t.Errorf("People() = %v", got)
	}
	if got := ids(m.SoftwareSystems()); !slices.Equal(got, []ElementID{notes, api}) {
		t.Errorf("SoftwareSystems() = %v", got)
	}
	if got := ids(m.Containers(notes)); !slices.Equal(got, []ElementID{web, db}) {
		t.Errorf("Containers() = %v", got)
	}
	if got := ids(m.Components(web)); !slices.Equal(got, []ElementID{auth}) {
		t.Errorf("Components() = %v", got)
	}
	if got := ids(m.Elements()); !slices.Equal(got, []ElementID{user, notes, api, web, db, auth}) {
		t.Errorf("Elements() = %v", got)
	}

	if e, ok := m.ChildNamed(notes, "Database"); !ok || e.ID != db {
		t.Errorf("ChildNamed(notes, Database) = %v, %v", e.ID, ok)
	}
	if e, ok := m.ChildNamed(web, "Authentication"); !ok || e.ID != auth {
		t.Errorf("ChildNamed(web, Authentication) = %v, %v", e.ID, ok)
	}
	if _, ok := m.ChildNamed(user, "x"); ok {
		t.Error("ChildNamed on a person should fail")
	}
	if e, ok := m.SoftwareSystemNamed("API"); !ok || e.ID != api {
		t.Errorf("SoftwareSystemNamed(API) = %v, %v", e.ID, ok)
	}

	if got := m.Ancestors(auth); !slices.Equal(got, []ElementID{web, notes}) {
		t.Errorf("Ancestors(auth) = %v", got)
	}
	if !m.IsAncestor(notes, auth) || m.IsAncestor(auth, notes) {
		t.Error("IsAncestor mismatch")
	}
}

func TestElementReturnsCopy(t *testing.T) {
	m := New()
	id := must(m.AddPerson("User", ""))

	e, _ := m.Element(id)
	e.Tags[0] = "mutated"
	e.Name = "mutated"

	again, _ := m.Element(id)
	if again.Name != "User" || again.Tags[0] != "Element" {
		t.Errorf("model mutated through copy: %+v", again)
	}
}

func TestAddTagsAndLocation(t *testing.T) {
	m := New()
	user := must(m.AddPerson("User", ""))
	notes := must(m.AddSoftwareSystem("Notes", ""))
	web := must(m.AddContainer(notes, "Web app", "", ""))

	if err := m.AddTags(user, "Owner", "Owner", "Element"); err != nil {
		t.Fatal(err)
	}
	e, _ := m.Element(user)
	if !slices.Equal(e.Tags, []string{"Element", "Person", "Owner"}) {
		t.Errorf("tags = %v", e.Tags)
	}

	if err := m.SetLocation(notes, LocationInternal); err != nil {
		t.Fatal(err)
	}
	if err := m.SetLocation(web, LocationInternal); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetLocation(container) err = %v", err)
	}
	if err := m.SetLocation("42", LocationInternal); !errors.Is(err, errors.ErrCodeUnknownElement) {
		t.Errorf("SetLocation(missing) err = %v", err)
	}
	if err := m.AddTags("42", "x"); !errors.Is(err, errors.ErrCodeUnknownElement) {
		t.Errorf("AddTags(missing) err = %v", err)
	}
}

func ids(es []Element) []ElementID {
	out := make([]ElementID, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}
