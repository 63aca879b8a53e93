package view

import (
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/model"
)

// Set holds every view of a workspace. View keys are unique across the set,
// regardless of view kind.
type Set struct {
	m     *model.Model
	views []*View
	byKey map[string]*View
}

// NewSet creates an empty view set over m.
func NewSet(m *model.Model) *Set {
	return &Set{m: m, byKey: make(map[string]*View)}
}

// CreateSystemContextView creates a system context view of a software system.
func (s *Set) CreateSystemContextView(systemID model.ElementID, key, description string) (*View, error) {
	return s.create(KindSystemContext, systemID, key, description)
}

// CreateContainerView creates a container view of a software system.
func (s *Set) CreateContainerView(systemID model.ElementID, key, description string) (*View, error) {
	return s.create(KindContainer, systemID, key, description)
}

// CreateComponentView creates a component view of a container.
func (s *Set) CreateComponentView(containerID model.ElementID, key, description string) (*View, error) {
	return s.create(KindComponent, containerID, key, description)
}

func (s *Set) create(kind Kind, scope model.ElementID, key, description string) (*View, error) {
	if err := errors.ValidateName("view key", key); err != nil {
		return nil, err
	}
	if _, dup := s.byKey[key]; dup {
		return nil, errors.New(errors.ErrCodeDuplicateViewKey, "view key %q already exists", key)
	}

	e, ok := s.m.Element(scope)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownElement, "%s view %q: scope %q does not exist", kind, key, scope)
	}
	if want := kind.scopeKind(); e.Kind != want {
		return nil, errors.New(errors.ErrCodeUnknownElement, "%s view %q: scope %q is a %s, want %s", kind, key, e.Name, e.Kind, want)
	}

	v := &View{
		m:           s.m,
		kind:        kind,
		key:         key,
		description: description,
		scope:       scope,
	}
	s.views = append(s.views, v)
	s.byKey[key] = v
	return v, nil
}

// View returns the view with the given key.
func (s *Set) View(key string) (*View, bool) {
	v, ok := s.byKey[key]
	return v, ok
}

// Views returns every view in creation order.
func (s *Set) Views() []*View {
	return append([]*View(nil), s.views...)
}

// OfKind returns the views of one kind in creation order.
func (s *Set) OfKind(kind Kind) []*View {
	var out []*View
	for _, v := range s.views {
		if v.kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of views.
func (s *Set) Len() int { return len(s.views) }
