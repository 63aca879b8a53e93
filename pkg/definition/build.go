package definition

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/archmodel/pkg/docs"
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/model"
	"github.com/matzehuels/archmodel/pkg/style"
	"github.com/matzehuels/archmodel/pkg/view"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

// Build constructs a workspace from a parsed definition.
func Build(f *File, opts Options) (*workspace.Workspace, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "empty definition")
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, errors.New(errors.ErrCodeInvalidDefinition, "workspace name required")
	}

	ws := workspace.New(f.Name, f.Description)
	ws.SetEnterprise(f.Enterprise)
	b := &builder{ws: ws, m: ws.Model(), log: opts.logger()}

	steps := []func(*File) error{
		b.people,
		b.systems,
		b.relationships,
		b.implicit,
		b.views,
		b.documentation,
		b.styles,
	}
	for _, step := range steps {
		if err := step(f); err != nil {
			return nil, err
		}
	}
	b.log.Debug("built workspace", "elements", b.m.Len(), "relationships", b.m.RelationshipCount(), "views", ws.Views().Len())
	return ws, nil
}

type builder struct {
	ws  *workspace.Workspace
	m   *model.Model
	log *log.Logger
}

func (b *builder) people(f *File) error {
	for i, p := range f.People {
		entry := fmt.Sprintf("people[%d] %q", i, p.Name)
		id, err := b.m.AddPerson(p.Name, p.Description)
		if err != nil {
			return entryError(entry, err)
		}
		if err := b.decorate(id, p.Location, p.Tags); err != nil {
			return entryError(entry, err)
		}
		b.log.Debug("person", "id", id, "name", p.Name)
	}
	return nil
}

func (b *builder) systems(f *File) error {
	for i, s := range f.SoftwareSystems {
		entry := fmt.Sprintf("softwareSystems[%d] %q", i, s.Name)
		sys, err := b.m.AddSoftwareSystem(s.Name, s.Description)
		if err != nil {
			return entryError(entry, err)
		}
		if err := b.decorate(sys, s.Location, s.Tags); err != nil {
			return entryError(entry, err)
		}
		b.log.Debug("software system", "id", sys, "name", s.Name)

		for j, c := range s.Containers {
			entry := fmt.Sprintf("%s containers[%d] %q", entry, j, c.Name)
			cont, err := b.m.AddContainer(sys, c.Name, c.Description, c.Technology)
			if err != nil {
				return entryError(entry, err)
			}
			if err := b.decorate(cont, "", c.Tags); err != nil {
				return entryError(entry, err)
			}

			for k, comp := range c.Components {
				entry := fmt.Sprintf("%s components[%d] %q", entry, k, comp.Name)
				id, err := b.m.AddComponent(cont, comp.Name, comp.Description, comp.Technology)
				if err != nil {
					return entryError(entry, err)
				}
				if err := b.decorate(id, "", comp.Tags); err != nil {
					return entryError(entry, err)
				}
			}
		}
	}
	return nil
}

func (b *builder) decorate(id model.ElementID, location string, tags []string) error {
	if location != "" {
		if err := b.m.SetLocation(id, model.Location(location)); err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		return b.m.AddTags(id, tags...)
	}
	return nil
}

func (b *builder) relationships(f *File) error {
	for i, r := range f.Relationships {
		entry := fmt.Sprintf("relationships[%d] %s -> %s", i, r.Source, r.Destination)
		src, err := b.resolve(r.Source)
		if err != nil {
			return entryError(entry, err)
		}
		dst, err := b.resolve(r.Destination)
		if err != nil {
			return entryError(entry, err)
		}

		var id model.RelationshipID
		switch strings.ToLower(r.Interaction) {
		case "", "uses":
			id, err = b.m.Uses(src, dst, r.Description, r.Technology)
		case "delivers":
			id, err = b.m.Delivers(src, dst, r.Description, r.Technology)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unknown interaction %q (want uses or delivers)", r.Interaction)
		}
		if err != nil {
			return entryError(entry, err)
		}
		b.log.Debug("relationship", "id", id, "source", src, "destination", dst)
	}
	return nil
}

func (b *builder) implicit(f *File) error {
	if f.ImplicitRelationships {
		added := b.m.DeriveImplicitRelationships()
		b.log.Debug("implicit relationships", "added", len(added))
	}
	return nil
}

func (b *builder) views(f *File) error {
	set := b.ws.Views()
	for i, v := range f.Views {
		entry := fmt.Sprintf("views[%d] %q", i, v.Key)
		scope, err := b.resolve(v.Scope)
		if err != nil {
			return entryError(entry, err)
		}

		var created *view.View
		switch strings.ToLower(v.Kind) {
		case "systemcontext", "system_context":
			created, err = set.CreateSystemContextView(scope, v.Key, v.Description)
		case "container":
			created, err = set.CreateContainerView(scope, v.Key, v.Description)
		case "component":
			created, err = set.CreateComponentView(scope, v.Key, v.Description)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unknown view kind %q (want systemContext, container or component)", v.Kind)
		}
		if err != nil {
			return entryError(entry, err)
		}
		if err := b.populate(created, v); err != nil {
			return entryError(entry, err)
		}
		b.log.Debug("view", "key", v.Key, "kind", created.Kind(), "elements", len(created.Elements()))
	}
	return nil
}

func (b *builder) populate(v *view.View, def View) error {
	v.SetPaperSize(view.PaperSize(def.PaperSize))

	if def.AllElements {
		v.AddAllElements()
	}
	if def.AllSoftwareSystems {
		v.AddAllSoftwareSystems()
	}
	if def.AllPeople {
		v.AddAllPeople()
	}
	if def.AllContainers {
		if err := v.AddAllContainers(); err != nil {
			return err
		}
	}
	if def.AllComponents {
		if err := v.AddAllComponents(); err != nil {
			return err
		}
	}
	for _, path := range def.Elements {
		id, err := b.resolve(path)
		if err != nil {
			return err
		}
		if err := v.Add(id); err != nil {
			return err
		}
	}
	for _, path := range def.NearestNeighbours {
		id, err := b.resolve(path)
		if err != nil {
			return err
		}
		if err := v.AddNearestNeighbours(id); err != nil {
			return err
		}
	}
	for _, path := range def.Exclude {
		id, err := b.resolve(path)
		if err != nil {
			return err
		}
		v.Remove(id)
	}
	for _, step := range def.Animations {
		ids := make([]model.ElementID, 0, len(step))
		for _, path := range step {
			id, err := b.resolve(path)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		if err := v.AddAnimation(ids...); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) documentation(f *File) error {
	d := b.ws.Documentation()
	for i, s := range f.Documentation {
		entry := sectionEntry(i, s)
		if s.File != "" {
			return entryError(entry, errors.New(errors.ErrCodeInvalidInput, "section file %q was not read; use Load", s.File))
		}
		sys, err := b.resolve(s.System)
		if err != nil {
			return entryError(entry, err)
		}
		format := docs.Format(s.Format)
		if format == "" {
			format = docs.FormatMarkdown
		}
		title := s.Title
		if title == "" {
			title = docs.TitleContext
		}
		if _, err := d.AddSection(sys, title, format, s.Content); err != nil {
			return entryError(entry, err)
		}
	}
	return nil
}

func (b *builder) styles(f *File) error {
	sheet := b.ws.Styles()
	for i, s := range f.Styles.Elements {
		if strings.TrimSpace(s.Tag) == "" {
			return entryError(fmt.Sprintf("styles.elements[%d]", i), errors.New(errors.ErrCodeInvalidInput, "tag required"))
		}
		st := sheet.AddElementStyle(s.Tag)
		if s.Background != "" {
			st.Background(s.Background)
		}
		if s.Color != "" {
			st.Color(s.Color)
		}
		if s.Shape != "" {
			st.Shape(style.Shape(s.Shape))
		}
		if s.Stroke != "" {
			st.Stroke(s.Stroke)
		}
		if s.FontSize != 0 {
			st.FontSize(s.FontSize)
		}
		if s.Opacity != nil {
			st.Opacity(*s.Opacity)
		}
	}
	for i, s := range f.Styles.Relationships {
		if strings.TrimSpace(s.Tag) == "" {
			return entryError(fmt.Sprintf("styles.relationships[%d]", i), errors.New(errors.ErrCodeInvalidInput, "tag required"))
		}
		st := sheet.AddRelationshipStyle(s.Tag)
		if s.Color != "" {
			st.Color(s.Color)
		}
		if s.Dashed != nil {
			st.Dashed(*s.Dashed)
		}
		if s.Thickness != 0 {
			st.Thickness(s.Thickness)
		}
	}
	return nil
}

// resolve maps a path such as "Notes/Web app/Wizard" to an element id.
// The first segment names a person or a software system.
func (b *builder) resolve(path string) (model.ElementID, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrCodeUnknownElement, "empty element reference")
	}
	segments := strings.Split(path, "/")

	person, isPerson := b.m.PersonNamed(segments[0])
	system, isSystem := b.m.SoftwareSystemNamed(segments[0])
	var cur model.Element
	switch {
	case isPerson && isSystem && len(segments) == 1:
		return "", errors.New(errors.ErrCodeInvalidInput, "%q names both a person and a software system", path)
	case isSystem:
		cur = system
	case isPerson && len(segments) == 1:
		return person.ID, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownElement, "no person or software system named %q", segments[0])
	}

	for _, name := range segments[1:] {
		child, ok := b.m.ChildNamed(cur.ID, name)
		if !ok {
			return "", errors.New(errors.ErrCodeUnknownElement, "%q has no child named %q", cur.Name, name)
		}
		cur = child
	}
	return cur.ID, nil
}

func sectionEntry(i int, s Section) string {
	return fmt.Sprintf("documentation[%d] %s %q", i, s.System, s.Title)
}

// entryError reports err at a definition entry. The result matches both
// INVALID_DEFINITION and the structural code of err under [errors.Is].
func entryError(entry string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "%s", entry)
}
