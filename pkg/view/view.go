package view

import (
	"slices"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/model"
)

// Kind is the C4 level a view is drawn at.
type Kind string

const (
	// KindSystemContext shows a software system with the people and systems
	// around it. Scoped to a software system.
	KindSystemContext Kind = "SystemContext"
	// KindContainer zooms into a software system. Scoped to a software system.
	KindContainer Kind = "Container"
	// KindComponent zooms into a container. Scoped to a container.
	KindComponent Kind = "Component"
)

// scopeKind returns the element kind a view of kind k must be scoped to.
func (k Kind) scopeKind() model.Kind {
	if k == KindComponent {
		return model.KindContainer
	}
	return model.KindSoftwareSystem
}

// PaperSize is a layout hint passed through to the consuming tool.
type PaperSize string

const (
	PaperSizeUnset           PaperSize = ""
	PaperSizeA6Portrait      PaperSize = "A6_Portrait"
	PaperSizeA6Landscape     PaperSize = "A6_Landscape"
	PaperSizeA5Portrait      PaperSize = "A5_Portrait"
	PaperSizeA5Landscape     PaperSize = "A5_Landscape"
	PaperSizeA4Portrait      PaperSize = "A4_Portrait"
	PaperSizeA4Landscape     PaperSize = "A4_Landscape"
	PaperSizeA3Portrait      PaperSize = "A3_Portrait"
	PaperSizeA3Landscape     PaperSize = "A3_Landscape"
	PaperSizeLetterPortrait  PaperSize = "Letter_Portrait"
	PaperSizeLetterLandscape PaperSize = "Letter_Landscape"
	PaperSizeSlide16x9       PaperSize = "Slide_16_9"
)

// Animation is one step of a view's reveal sequence. Order starts at 1.
type Animation struct {
	Order    int
	Elements []model.ElementID
}

// View is a named, scoped selection of elements representing one diagram.
//
// A view holds element ids only; it never copies element data, so names and
// descriptions are always read from the model at export time. Elements keep
// the order in which they were first added.
type View struct {
	m *model.Model

	kind        Kind
	key         string
	description string
	scope       model.ElementID
	paperSize   PaperSize

	elements   []model.ElementID
	animations []Animation
}

// Kind returns the view kind.
func (v *View) Kind() Kind { return v.kind }

// Key returns the workspace-unique view key.
func (v *View) Key() string { return v.key }

// Description returns the view description.
func (v *View) Description() string { return v.description }

// Scope returns the software system or container the view is about.
func (v *View) Scope() model.ElementID { return v.scope }

// PaperSize returns the layout hint, or [PaperSizeUnset].
func (v *View) PaperSize() PaperSize { return v.paperSize }

// SetPaperSize stores a layout hint. Sizes are not checked against content.
func (v *View) SetPaperSize(size PaperSize) { v.paperSize = size }

// Elements returns the included element ids in insertion order.
func (v *View) Elements() []model.ElementID { return slices.Clone(v.elements) }

// Contains reports whether the element is included in the view.
func (v *View) Contains(id model.ElementID) bool { return slices.Contains(v.elements, id) }

// Animations returns the animation steps in call order.
func (v *View) Animations() []Animation {
	out := make([]Animation, len(v.animations))
	for i, a := range v.animations {
		out[i] = Animation{Order: a.Order, Elements: slices.Clone(a.Elements)}
	}
	return out
}

// Relationships returns the ids of relationships whose endpoints are both in
// the view, in model order.
func (v *View) Relationships() []model.RelationshipID {
	var out []model.RelationshipID
	for _, r := range v.m.Relationships() {
		if v.Contains(r.Source) && v.Contains(r.Destination) {
			out = append(out, r.ID)
		}
	}
	return out
}

// =============================================================================
// Population
// =============================================================================

// Add includes a single element.
//
// Returns UNKNOWN_ELEMENT if the element does not exist. Adding an element
// twice is a no-op.
func (v *View) Add(id model.ElementID) error {
	if !v.m.Has(id) {
		return errors.New(errors.ErrCodeUnknownElement, "view %q: element %q does not exist", v.key, id)
	}
	v.include(id)
	return nil
}

// Remove excludes an element. It reports whether the element was present.
// Animation steps are left as they are.
func (v *View) Remove(id model.ElementID) bool {
	i := slices.Index(v.elements, id)
	if i < 0 {
		return false
	}
	v.elements = slices.Delete(v.elements, i, i+1)
	return true
}

// AddAllSoftwareSystems includes every software system in the model.
func (v *View) AddAllSoftwareSystems() {
	v.includeAll(v.m.SoftwareSystems())
}

// AddAllPeople includes every person in the model.
func (v *View) AddAllPeople() {
	v.includeAll(v.m.People())
}

// AddAllContainers includes the containers of the view's software system.
// For component views that is the system owning the scoped container.
//
// System context views show no containers and return INVALID_INPUT.
func (v *View) AddAllContainers() error {
	switch v.kind {
	case KindContainer:
		v.includeAll(v.m.Containers(v.scope))
	case KindComponent:
		v.includeAll(v.m.Containers(v.m.Parent(v.scope)))
	default:
		return errors.New(errors.ErrCodeInvalidInput, "view %q: %s views have no containers", v.key, v.kind)
	}
	return nil
}

// AddAllComponents includes the components of the scoped container. Only
// component views accept it.
func (v *View) AddAllComponents() error {
	if v.kind != KindComponent {
		return errors.New(errors.ErrCodeInvalidInput, "view %q: %s views have no components", v.key, v.kind)
	}
	v.includeAll(v.m.Components(v.scope))
	return nil
}

// AddAllElements includes everything a view of its kind normally shows:
// people and software systems, plus containers for container views, plus the
// scope's components for component views.
func (v *View) AddAllElements() {
	v.AddAllSoftwareSystems()
	v.AddAllPeople()
	switch v.kind {
	case KindContainer:
		v.includeAll(v.m.Containers(v.scope))
	case KindComponent:
		v.includeAll(v.m.Containers(v.m.Parent(v.scope)))
		v.includeAll(v.m.Components(v.scope))
	}
}

// AddNearestNeighbours includes the element and every element connected to it
// by one relationship in either direction. Elements two or more hops away are
// not added.
func (v *View) AddNearestNeighbours(id model.ElementID) error {
	if err := v.Add(id); err != nil {
		return err
	}
	for _, n := range v.m.Neighbours(id) {
		v.include(n)
	}
	return nil
}

// AddAnimation appends an animation step revealing the given elements
// together. Steps are revealed in call order.
//
// Every id must exist in the model (UNKNOWN_ELEMENT); an empty step is
// rejected with INVALID_INPUT.
func (v *View) AddAnimation(ids ...model.ElementID) error {
	if len(ids) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "view %q: animation step needs at least one element", v.key)
	}
	var step []model.ElementID
	for _, id := range ids {
		if !v.m.Has(id) {
			return errors.New(errors.ErrCodeUnknownElement, "view %q: animation element %q does not exist", v.key, id)
		}
		if !slices.Contains(step, id) {
			step = append(step, id)
		}
	}
	v.animations = append(v.animations, Animation{Order: len(v.animations) + 1, Elements: step})
	return nil
}

func (v *View) include(id model.ElementID) {
	if !slices.Contains(v.elements, id) {
		v.elements = append(v.elements, id)
	}
}

func (v *View) includeAll(es []model.Element) {
	for _, e := range es {
		v.include(e.ID)
	}
}
