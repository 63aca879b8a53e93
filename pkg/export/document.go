package export

// =============================================================================
// Document - Serialized Workspace
// =============================================================================

// Document is the complete, self-describing snapshot of a workspace.
//
// A document never refers back to the builder: every name, description and
// style a sink could need is copied in. Slices are always non-nil so the JSON
// form carries explicit empty lists.
type Document struct {
	Name          string        `json:"name" bson:"name"`
	Description   string        `json:"description" bson:"description"`
	Enterprise    string        `json:"enterprise,omitempty" bson:"enterprise,omitempty"`
	Model         Model         `json:"model" bson:"model"`
	Views         Views         `json:"views" bson:"views"`
	Documentation Documentation `json:"documentation" bson:"documentation"`
}

// Model is the element tree and relationship list.
type Model struct {
	People          []Person         `json:"people" bson:"people"`
	SoftwareSystems []SoftwareSystem `json:"softwareSystems" bson:"softwareSystems"`
	Relationships   []Relationship   `json:"relationships" bson:"relationships"`
}

// Person is a serialized person.
type Person struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Location    string   `json:"location" bson:"location"`
	Tags        []string `json:"tags" bson:"tags"`
}

// SoftwareSystem is a serialized software system with its containers.
type SoftwareSystem struct {
	ID          string      `json:"id" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Location    string      `json:"location" bson:"location"`
	Tags        []string    `json:"tags" bson:"tags"`
	Containers  []Container `json:"containers" bson:"containers"`
}

// Container is a serialized container with its components.
type Container struct {
	ID          string      `json:"id" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Description string      `json:"description" bson:"description"`
	Technology  string      `json:"technology,omitempty" bson:"technology,omitempty"`
	Tags        []string    `json:"tags" bson:"tags"`
	Components  []Component `json:"components" bson:"components"`
}

// Component is a serialized component.
type Component struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Technology  string   `json:"technology,omitempty" bson:"technology,omitempty"`
	Tags        []string `json:"tags" bson:"tags"`
}

// Relationship is a serialized relationship, explicit or implicit.
type Relationship struct {
	ID            string   `json:"id" bson:"id"`
	SourceID      string   `json:"sourceId" bson:"sourceId"`
	DestinationID string   `json:"destinationId" bson:"destinationId"`
	Description   string   `json:"description" bson:"description"`
	Technology    string   `json:"technology,omitempty" bson:"technology,omitempty"`
	Interaction   string   `json:"interaction" bson:"interaction"` // "Uses" or "Delivers"
	Implicit      bool     `json:"implicit" bson:"implicit"`
	Tags          []string `json:"tags" bson:"tags"`
}

// Views groups views by kind and carries the style sheet.
type Views struct {
	SystemContextViews []View `json:"systemContextViews" bson:"systemContextViews"`
	ContainerViews     []View `json:"containerViews" bson:"containerViews"`
	ComponentViews     []View `json:"componentViews" bson:"componentViews"`
	Styles             Styles `json:"styles" bson:"styles"`
}

// View is a serialized diagram specification.
type View struct {
	Key           string      `json:"key" bson:"key"`
	Scope         string      `json:"scope" bson:"scope"` // Software system or container id
	Description   string      `json:"description" bson:"description"`
	PaperSize     string      `json:"paperSize,omitempty" bson:"paperSize,omitempty"`
	Elements      []string    `json:"elements" bson:"elements"`
	Relationships []string    `json:"relationships" bson:"relationships"`
	Animations    []Animation `json:"animations" bson:"animations"`
}

// Animation is one ordered reveal step.
type Animation struct {
	Order    int      `json:"order" bson:"order"`
	Elements []string `json:"elements" bson:"elements"`
}

// Styles is the serialized style sheet.
type Styles struct {
	Elements      []ElementStyle      `json:"elements" bson:"elements"`
	Relationships []RelationshipStyle `json:"relationships" bson:"relationships"`
}

// ElementStyle is a serialized element style rule.
type ElementStyle struct {
	Tag        string `json:"tag" bson:"tag"`
	Background string `json:"background,omitempty" bson:"background,omitempty"`
	Color      string `json:"color,omitempty" bson:"color,omitempty"`
	Shape      string `json:"shape,omitempty" bson:"shape,omitempty"`
	Stroke     string `json:"stroke,omitempty" bson:"stroke,omitempty"`
	FontSize   int    `json:"fontSize,omitempty" bson:"fontSize,omitempty"`
	Opacity    *int   `json:"opacity,omitempty" bson:"opacity,omitempty"`
}

// RelationshipStyle is a serialized relationship style rule.
type RelationshipStyle struct {
	Tag       string `json:"tag" bson:"tag"`
	Color     string `json:"color,omitempty" bson:"color,omitempty"`
	Dashed    *bool  `json:"dashed,omitempty" bson:"dashed,omitempty"`
	Thickness int    `json:"thickness,omitempty" bson:"thickness,omitempty"`
}

// Documentation holds the serialized sections.
type Documentation struct {
	Sections []Section `json:"sections" bson:"sections"`
}

// Section is a serialized documentation section.
type Section struct {
	ElementID string `json:"elementId" bson:"elementId"`
	Title     string `json:"title" bson:"title"`
	Format    string `json:"format" bson:"format"`
	Order     int    `json:"order" bson:"order"`
	Content   string `json:"content" bson:"content"`
}

// ElementIDs returns the ids of every element in the document, people first,
// then each software system followed by its containers and components.
func (d *Document) ElementIDs() []string {
	var ids []string
	for _, p := range d.Model.People {
		ids = append(ids, p.ID)
	}
	for _, s := range d.Model.SoftwareSystems {
		ids = append(ids, s.ID)
		for _, c := range s.Containers {
			ids = append(ids, c.ID)
			for _, k := range c.Components {
				ids = append(ids, k.ID)
			}
		}
	}
	return ids
}

// AllViews returns every view, context views first.
func (d *Document) AllViews() []View {
	var all []View
	all = append(all, d.Views.SystemContextViews...)
	all = append(all, d.Views.ContainerViews...)
	all = append(all, d.Views.ComponentViews...)
	return all
}
