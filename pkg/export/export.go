package export

import (
	"slices"

	"github.com/matzehuels/archmodel/pkg/view"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

// Export builds the snapshot of ws.
//
// Export is pure: it reads the workspace and never modifies it, so exporting
// an unchanged workspace twice yields documents that marshal to identical
// bytes. Implicit relationships are included only if
// [github.com/matzehuels/archmodel/pkg/model.Model.DeriveImplicitRelationships] was called beforehand.
func Export(ws *workspace.Workspace) *Document {
	m := ws.Model()
	doc := &Document{
		Name:        ws.Name(),
		Description: ws.Description(),
		Enterprise:  ws.Enterprise(),
		Model: Model{
			People:          make([]Person, 0),
			SoftwareSystems: make([]SoftwareSystem, 0),
			Relationships:   make([]Relationship, 0, m.RelationshipCount()),
		},
		Views: Views{
			SystemContextViews: exportViews(ws.Views().OfKind(view.KindSystemContext)),
			ContainerViews:     exportViews(ws.Views().OfKind(view.KindContainer)),
			ComponentViews:     exportViews(ws.Views().OfKind(view.KindComponent)),
			Styles:             exportStyles(ws),
		},
		Documentation: Documentation{Sections: make([]Section, 0)},
	}

	for _, p := range m.People() {
		doc.Model.People = append(doc.Model.People, Person{
			ID:          string(p.ID),
			Name:        p.Name,
			Description: p.Description,
			Location:    string(p.Location),
			Tags:        tags(p.Tags),
		})
	}

	for _, s := range m.SoftwareSystems() {
		sys := SoftwareSystem{
			ID:          string(s.ID),
			Name:        s.Name,
			Description: s.Description,
			Location:    string(s.Location),
			Tags:        tags(s.Tags),
			Containers:  make([]Container, 0),
		}
		for _, c := range m.Containers(s.ID) {
			con := Container{
				ID:          string(c.ID),
				Name:        c.Name,
				Description: c.Description,
				Technology:  c.Technology,
				Tags:        tags(c.Tags),
				Components:  make([]Component, 0),
			}
			for _, k := range m.Components(c.ID) {
				con.Components = append(con.Components, Component{
					ID:          string(k.ID),
					Name:        k.Name,
					Description: k.Description,
					Technology:  k.Technology,
					Tags:        tags(k.Tags),
				})
			}
			sys.Containers = append(sys.Containers, con)
		}
		doc.Model.SoftwareSystems = append(doc.Model.SoftwareSystems, sys)
	}

	for _, r := range m.Relationships() {
		doc.Model.Relationships = append(doc.Model.Relationships, Relationship{
			ID:            string(r.ID),
			SourceID:      string(r.Source),
			DestinationID: string(r.Destination),
			Description:   r.Description,
			Technology:    r.Technology,
			Interaction:   string(r.Interaction),
			Implicit:      r.Implicit,
			Tags:          tags(r.Tags),
		})
	}

	for _, s := range ws.Documentation().Sections() {
		doc.Documentation.Sections = append(doc.Documentation.Sections, Section{
			ElementID: string(s.Element),
			Title:     s.Title,
			Format:    string(s.Format),
			Order:     s.Order,
			Content:   s.Body,
		})
	}

	return doc
}

func exportViews(views []*view.View) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		ev := View{
			Key:           v.Key(),
			Scope:         string(v.Scope()),
			Description:   v.Description(),
			PaperSize:     string(v.PaperSize()),
			Elements:      strs(v.Elements()),
			Relationships: strs(v.Relationships()),
			Animations:    make([]Animation, 0),
		}
		for _, a := range v.Animations() {
			ev.Animations = append(ev.Animations, Animation{Order: a.Order, Elements: strs(a.Elements)})
		}
		out = append(out, ev)
	}
	return out
}

func exportStyles(ws *workspace.Workspace) Styles {
	s := Styles{
		Elements:      make([]ElementStyle, 0),
		Relationships: make([]RelationshipStyle, 0),
	}
	for _, e := range ws.Styles().ElementStyles() {
		a := e.Attributes()
		s.Elements = append(s.Elements, ElementStyle{
			Tag:        e.Tag,
			Background: a.Background,
			Color:      a.Color,
			Shape:      string(a.Shape),
			Stroke:     a.Stroke,
			FontSize:   a.FontSize,
			Opacity:    a.Opacity,
		})
	}
	for _, r := range ws.Styles().RelationshipStyles() {
		a := r.Attributes()
		s.Relationships = append(s.Relationships, RelationshipStyle{
			Tag:       r.Tag,
			Color:     a.Color,
			Dashed:    a.Dashed,
			Thickness: a.Thickness,
		})
	}
	return s
}

func tags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return slices.Clone(t)
}

func strs[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
