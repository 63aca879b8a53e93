package model

import (
	"slices"
	"strconv"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// ElementID identifies an element within a [Model]. IDs are assigned from a
// single increasing sequence shared with relationships ("1", "2", ...), so a
// replayed build sequence always produces the same identifiers.
type ElementID string

// Kind is the C4 abstraction level of an element.
type Kind string

const (
	// KindPerson is a human user of one or more software systems.
	KindPerson Kind = "Person"
	// KindSoftwareSystem is the highest level of abstraction: something that
	// delivers value to its users.
	KindSoftwareSystem Kind = "SoftwareSystem"
	// KindContainer is a separately deployable unit inside a software system
	// (web app, database, mobile app). Its parent is a software system.
	KindContainer Kind = "Container"
	// KindComponent is a grouping of functionality inside a container.
	// Its parent is a container.
	KindComponent Kind = "Component"
)

// Tag returns the default style tag carried by elements of this kind, matching
// the selectors used by style sheets ("Person", "Software System", ...).
func (k Kind) Tag() string {
	switch k {
	case KindSoftwareSystem:
		return "Software System"
	default:
		return string(k)
	}
}

// parentKind returns the kind an element of kind k must be nested in, or ""
// for top-level kinds.
func (k Kind) parentKind() Kind {
	switch k {
	case KindContainer:
		return KindSoftwareSystem
	case KindComponent:
		return KindContainer
	default:
		return ""
	}
}

// Location places people and software systems relative to the enterprise
// boundary.
type Location string

const (
	LocationUnspecified Location = "Unspecified"
	LocationInternal    Location = "Internal"
	LocationExternal    Location = "External"
)

// TagElement is the tag every element carries.
const TagElement = "Element"

// Element is a named node in the architecture model.
//
// Elements are values: lookups return copies, and all mutation goes through
// [Model] methods so invariants stay enforced.
type Element struct {
	ID          ElementID
	Kind        Kind
	Name        string
	Description string
	Technology  string    // Containers and components only
	Parent      ElementID // Empty for people and software systems
	Location    Location  // People and software systems only
	Tags        []string
}

func (e Element) clone() Element {
	e.Tags = slices.Clone(e.Tags)
	return e
}

// scopeKey identifies a kind-scope: names are unique per (kind, parent).
type scopeKey struct {
	kind   Kind
	parent ElementID
	name   string
}

// nextID returns the next identifier in the shared sequence without
// consuming it. Call commit once the insert is known to succeed.
func (m *Model) nextID() string {
	return strconv.Itoa(m.seq + 1)
}

func (m *Model) commit() {
	m.seq++
}

// =============================================================================
// Element Registry
// =============================================================================

// AddPerson registers a person.
//
// Returns an error with code DUPLICATE_NAME if a person with the same name
// already exists, or INVALID_INPUT if the name is empty.
func (m *Model) AddPerson(name, description string) (ElementID, error) {
	return m.addElement(KindPerson, "", name, description, "")
}

// AddSoftwareSystem registers a top-level software system.
func (m *Model) AddSoftwareSystem(name, description string) (ElementID, error) {
	return m.addElement(KindSoftwareSystem, "", name, description, "")
}

// AddContainer registers a container inside the software system systemID.
//
// Returns UNKNOWN_PARENT if systemID does not name a software system, and
// DUPLICATE_NAME if the system already has a container with this name.
func (m *Model) AddContainer(systemID ElementID, name, description, technology string) (ElementID, error) {
	return m.addElement(KindContainer, systemID, name, description, technology)
}

// AddComponent registers a component inside the container containerID.
func (m *Model) AddComponent(containerID ElementID, name, description, technology string) (ElementID, error) {
	return m.addElement(KindComponent, containerID, name, description, technology)
}

func (m *Model) addElement(kind Kind, parent ElementID, name, description, technology string) (ElementID, error) {
	if err := errors.ValidateName(string(kind), name); err != nil {
		return "", err
	}

	if want := kind.parentKind(); want != "" {
		p, ok := m.elements[parent]
		if !ok {
			return "", errors.New(errors.ErrCodeUnknownParent, "%s %q: parent %q does not exist", kind, name, parent)
		}
		if p.Kind != want {
			return "", errors.New(errors.ErrCodeUnknownParent, "%s %q: parent %q is a %s, want %s", kind, name, parent, p.Kind, want)
		}
	}

	key := scopeKey{kind: kind, parent: parent, name: name}
	if _, dup := m.names[key]; dup {
		return "", errors.New(errors.ErrCodeDuplicateName, "%s %q already exists", kind, name)
	}

	id := ElementID(m.nextID())
	e := &Element{
		ID:          id,
		Kind:        kind,
		Name:        name,
		Description: description,
		Technology:  technology,
		Parent:      parent,
		Tags:        []string{TagElement, kind.Tag()},
	}
	if kind == KindPerson || kind == KindSoftwareSystem {
		e.Location = LocationUnspecified
	}

	m.commit()
	m.elements[id] = e
	m.order = append(m.order, id)
	m.names[key] = id
	return id, nil
}

// AddTags appends extra style tags to an element. Tags already present are
// ignored.
func (m *Model) AddTags(id ElementID, tags ...string) error {
	e, ok := m.elements[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownElement, "element %q does not exist", id)
	}
	for _, t := range tags {
		if t != "" && !slices.Contains(e.Tags, t) {
			e.Tags = append(e.Tags, t)
		}
	}
	return nil
}

// SetLocation marks a person or software system as internal or external to
// the enterprise.
func (m *Model) SetLocation(id ElementID, loc Location) error {
	e, ok := m.elements[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownElement, "element %q does not exist", id)
	}
	if e.Kind != KindPerson && e.Kind != KindSoftwareSystem {
		return errors.New(errors.ErrCodeInvalidInput, "%s %q has no location", e.Kind, e.Name)
	}
	switch loc {
	case LocationInternal, LocationExternal, LocationUnspecified:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown location %q", loc)
	}
	e.Location = loc
	return nil
}

// =============================================================================
// Lookups
// =============================================================================

// Element returns the element with the given id.
func (m *Model) Element(id ElementID) (Element, bool) {
	e, ok := m.elements[id]
	if !ok {
		return Element{}, false
	}
	return e.clone(), true
}

// Has reports whether an element with the given id exists.
func (m *Model) Has(id ElementID) bool {
	_, ok := m.elements[id]
	return ok
}

// Elements returns every element in insertion order.
func (m *Model) Elements() []Element {
	return m.filter(func(*Element) bool { return true })
}

// People returns all people in insertion order.
func (m *Model) People() []Element {
	return m.ofKind(KindPerson)
}

// SoftwareSystems returns all software systems in insertion order.
func (m *Model) SoftwareSystems() []Element {
	return m.ofKind(KindSoftwareSystem)
}

// Containers returns the containers of a software system in insertion order.
func (m *Model) Containers(systemID ElementID) []Element {
	return m.childrenOfKind(systemID, KindContainer)
}

// Components returns the components of a container in insertion order.
func (m *Model) Components(containerID ElementID) []Element {
	return m.childrenOfKind(containerID, KindComponent)
}

// PersonNamed looks up a person by name.
func (m *Model) PersonNamed(name string) (Element, bool) {
	return m.lookup(scopeKey{kind: KindPerson, name: name})
}

// SoftwareSystemNamed looks up a software system by name.
func (m *Model) SoftwareSystemNamed(name string) (Element, bool) {
	return m.lookup(scopeKey{kind: KindSoftwareSystem, name: name})
}

// ChildNamed looks up a direct child (container or component) of parent by name.
func (m *Model) ChildNamed(parent ElementID, name string) (Element, bool) {
	p, ok := m.elements[parent]
	if !ok {
		return Element{}, false
	}
	switch p.Kind {
	case KindSoftwareSystem:
		return m.lookup(scopeKey{kind: KindContainer, parent: parent, name: name})
	case KindContainer:
		return m.lookup(scopeKey{kind: KindComponent, parent: parent, name: name})
	}
	return Element{}, false
}

// Parent returns the parent id of an element, or "" for top-level elements
// and unknown ids.
func (m *Model) Parent(id ElementID) ElementID {
	if e, ok := m.elements[id]; ok {
		return e.Parent
	}
	return ""
}

// Ancestors returns the parent chain of id, nearest first, excluding id
// itself. A component yields [container, system].
func (m *Model) Ancestors(id ElementID) []ElementID {
	var chain []ElementID
	for p := m.Parent(id); p != ""; p = m.Parent(p) {
		chain = append(chain, p)
	}
	return chain
}

// IsAncestor reports whether a is a (transitive) parent of b.
func (m *Model) IsAncestor(a, b ElementID) bool {
	return slices.Contains(m.Ancestors(b), a)
}

func (m *Model) lookup(key scopeKey) (Element, bool) {
	id, ok := m.names[key]
	if !ok {
		return Element{}, false
	}
	return m.elements[id].clone(), true
}

func (m *Model) ofKind(kind Kind) []Element {
	return m.filter(func(e *Element) bool { return e.Kind == kind })
}

func (m *Model) childrenOfKind(parent ElementID, kind Kind) []Element {
	return m.filter(func(e *Element) bool { return e.Kind == kind && e.Parent == parent })
}

func (m *Model) filter(keep func(*Element) bool) []Element {
	var out []Element
	for _, id := range m.order {
		if e := m.elements[id]; keep(e) {
			out = append(out, e.clone())
		}
	}
	return out
}
