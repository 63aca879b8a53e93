// Package style maps element and relationship tags to visual attributes.
//
// Rules are stored, never evaluated: the consuming tool matches each rule's
// tag against the tags of the elements it draws. Adding a rule for a tag that
// already has one returns the existing rule, so the last write to an
// attribute wins.
//
//	s := style.New()
//	s.AddElementStyle(style.TagSoftwareSystem).Background("#1168bd").Color("#ffffff")
//	s.AddElementStyle(style.TagPerson).Background("#ff6600").Color("#ffffff").Shape(style.ShapePerson)
package style

// Default tags carried by model elements and relationships.
const (
	TagElement        = "Element"
	TagPerson         = "Person"
	TagSoftwareSystem = "Software System"
	TagContainer      = "Container"
	TagComponent      = "Component"
	TagRelationship   = "Relationship"
)

// Shape is the outline a renderer draws for an element.
type Shape string

const (
	ShapeBox           Shape = "Box"
	ShapeRoundedBox    Shape = "RoundedBox"
	ShapeCircle        Shape = "Circle"
	ShapeEllipse       Shape = "Ellipse"
	ShapeHexagon       Shape = "Hexagon"
	ShapeCylinder      Shape = "Cylinder"
	ShapePipe          Shape = "Pipe"
	ShapePerson        Shape = "Person"
	ShapeRobot         Shape = "Robot"
	ShapeFolder        Shape = "Folder"
	ShapeWebBrowser    Shape = "WebBrowser"
	ShapeMobileDevice  Shape = "MobileDevicePortrait"
	ShapeComponentIcon Shape = "Component"
)

// ElementStyle is the rule for one element tag. Zero fields are unset and
// left to the renderer's defaults.
type ElementStyle struct {
	Tag string

	background string
	color      string
	shape      Shape
	stroke     string
	fontSize   int
	opacity    int
	opacitySet bool
}

// Background sets the fill color (e.g. "#1168bd").
func (s *ElementStyle) Background(color string) *ElementStyle {
	s.background = color
	return s
}

// Color sets the text color.
func (s *ElementStyle) Color(color string) *ElementStyle {
	s.color = color
	return s
}

// Shape sets the outline shape.
func (s *ElementStyle) Shape(shape Shape) *ElementStyle {
	s.shape = shape
	return s
}

// Stroke sets the border color.
func (s *ElementStyle) Stroke(color string) *ElementStyle {
	s.stroke = color
	return s
}

// FontSize sets the font size in pixels.
func (s *ElementStyle) FontSize(px int) *ElementStyle {
	s.fontSize = px
	return s
}

// Opacity sets the opacity as a percentage, clamped to 0..100.
func (s *ElementStyle) Opacity(percent int) *ElementStyle {
	s.opacity = min(max(percent, 0), 100)
	s.opacitySet = true
	return s
}

// Attributes returns the rule's attribute values.
func (s *ElementStyle) Attributes() ElementAttributes {
	a := ElementAttributes{
		Background: s.background,
		Color:      s.color,
		Shape:      s.shape,
		Stroke:     s.stroke,
		FontSize:   s.fontSize,
	}
	if s.opacitySet {
		o := s.opacity
		a.Opacity = &o
	}
	return a
}

// ElementAttributes is a read-only snapshot of an [ElementStyle].
type ElementAttributes struct {
	Background string
	Color      string
	Shape      Shape
	Stroke     string
	FontSize   int
	Opacity    *int // nil when unset, since 0 is a valid opacity
}

// RelationshipStyle is the rule for one relationship tag.
type RelationshipStyle struct {
	Tag string

	color     string
	dashed    *bool
	thickness int
}

// Color sets the line and label color.
func (s *RelationshipStyle) Color(color string) *RelationshipStyle {
	s.color = color
	return s
}

// Dashed sets whether the line is dashed.
func (s *RelationshipStyle) Dashed(dashed bool) *RelationshipStyle {
	s.dashed = &dashed
	return s
}

// Thickness sets the line thickness in pixels.
func (s *RelationshipStyle) Thickness(px int) *RelationshipStyle {
	s.thickness = px
	return s
}

// Attributes returns the rule's attribute values.
func (s *RelationshipStyle) Attributes() RelationshipAttributes {
	a := RelationshipAttributes{Color: s.color, Thickness: s.thickness}
	if s.dashed != nil {
		d := *s.dashed
		a.Dashed = &d
	}
	return a
}

// RelationshipAttributes is a read-only snapshot of a [RelationshipStyle].
type RelationshipAttributes struct {
	Color     string
	Dashed    *bool
	Thickness int
}

// Sheet holds the style rules of a workspace in the order they were first
// added.
type Sheet struct {
	elements      []*ElementStyle
	relationships []*RelationshipStyle
}

// New creates an empty style sheet.
func New() *Sheet {
	return &Sheet{}
}

// AddElementStyle returns the rule for tag, creating it if needed.
func (s *Sheet) AddElementStyle(tag string) *ElementStyle {
	for _, e := range s.elements {
		if e.Tag == tag {
			return e
		}
	}
	e := &ElementStyle{Tag: tag}
	s.elements = append(s.elements, e)
	return e
}

// AddRelationshipStyle returns the relationship rule for tag, creating it if
// needed.
func (s *Sheet) AddRelationshipStyle(tag string) *RelationshipStyle {
	for _, r := range s.relationships {
		if r.Tag == tag {
			return r
		}
	}
	r := &RelationshipStyle{Tag: tag}
	s.relationships = append(s.relationships, r)
	return r
}

// ElementStyles returns the element rules in insertion order.
func (s *Sheet) ElementStyles() []*ElementStyle {
	return append([]*ElementStyle(nil), s.elements...)
}

// RelationshipStyles returns the relationship rules in insertion order.
func (s *Sheet) RelationshipStyles() []*RelationshipStyle {
	return append([]*RelationshipStyle(nil), s.relationships...)
}
