package export

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// MarshalHCL renders a document as HCL for human review:
//
//	name        = "Private apps"
//	enterprise  = "Sebastian Czech"
//
//	person "1" {
//	  name = "User"
//	  ...
//	}
//
//	software_system "2" {
//	  container "7" {
//	    component "9" { ... }
//	  }
//	}
//
// Blocks appear in document order. The HCL form is write-only; sinks and the
// receiver exchange JSON.
func MarshalHCL(doc *Document) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	setString(body, "name", doc.Name)
	setString(body, "description", doc.Description)
	setString(body, "enterprise", doc.Enterprise)

	for _, p := range doc.Model.People {
		body.AppendNewline()
		b := body.AppendNewBlock("person", []string{p.ID}).Body()
		setString(b, "name", p.Name)
		setString(b, "description", p.Description)
		setString(b, "location", p.Location)
		setList(b, "tags", p.Tags)
	}

	for _, s := range doc.Model.SoftwareSystems {
		body.AppendNewline()
		b := body.AppendNewBlock("software_system", []string{s.ID}).Body()
		setString(b, "name", s.Name)
		setString(b, "description", s.Description)
		setString(b, "location", s.Location)
		setList(b, "tags", s.Tags)
		for _, c := range s.Containers {
			cb := b.AppendNewBlock("container", []string{c.ID}).Body()
			setString(cb, "name", c.Name)
			setString(cb, "description", c.Description)
			setString(cb, "technology", c.Technology)
			setList(cb, "tags", c.Tags)
			for _, k := range c.Components {
				kb := cb.AppendNewBlock("component", []string{k.ID}).Body()
				setString(kb, "name", k.Name)
				setString(kb, "description", k.Description)
				setString(kb, "technology", k.Technology)
				setList(kb, "tags", k.Tags)
			}
		}
	}

	for _, r := range doc.Model.Relationships {
		body.AppendNewline()
		b := body.AppendNewBlock("relationship", []string{r.ID}).Body()
		setString(b, "source", r.SourceID)
		setString(b, "destination", r.DestinationID)
		setString(b, "description", r.Description)
		setString(b, "technology", r.Technology)
		setString(b, "interaction", r.Interaction)
		b.SetAttributeValue("implicit", cty.BoolVal(r.Implicit))
	}

	appendViews(body, "system_context_view", doc.Views.SystemContextViews)
	appendViews(body, "container_view", doc.Views.ContainerViews)
	appendViews(body, "component_view", doc.Views.ComponentViews)

	for _, s := range doc.Views.Styles.Elements {
		body.AppendNewline()
		b := body.AppendNewBlock("element_style", []string{s.Tag}).Body()
		setString(b, "background", s.Background)
		setString(b, "color", s.Color)
		setString(b, "shape", s.Shape)
		setString(b, "stroke", s.Stroke)
		setInt(b, "font_size", s.FontSize)
		if s.Opacity != nil {
			b.SetAttributeValue("opacity", cty.NumberIntVal(int64(*s.Opacity)))
		}
	}
	for _, s := range doc.Views.Styles.Relationships {
		body.AppendNewline()
		b := body.AppendNewBlock("relationship_style", []string{s.Tag}).Body()
		setString(b, "color", s.Color)
		if s.Dashed != nil {
			b.SetAttributeValue("dashed", cty.BoolVal(*s.Dashed))
		}
		setInt(b, "thickness", s.Thickness)
	}

	for _, s := range doc.Documentation.Sections {
		body.AppendNewline()
		b := body.AppendNewBlock("section", []string{s.ElementID, s.Title}).Body()
		setString(b, "format", s.Format)
		b.SetAttributeValue("order", cty.NumberIntVal(int64(s.Order)))
		setString(b, "content", s.Content)
	}

	return f.Bytes()
}

func appendViews(body *hclwrite.Body, blockType string, views []View) {
	for _, v := range views {
		body.AppendNewline()
		b := body.AppendNewBlock(blockType, []string{v.Key}).Body()
		setString(b, "scope", v.Scope)
		setString(b, "description", v.Description)
		setString(b, "paper_size", v.PaperSize)
		setList(b, "elements", v.Elements)
		setList(b, "relationships", v.Relationships)
		for _, a := range v.Animations {
			ab := b.AppendNewBlock("animation", nil).Body()
			ab.SetAttributeValue("order", cty.NumberIntVal(int64(a.Order)))
			setList(ab, "elements", a.Elements)
		}
	}
}

func setString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setInt(body *hclwrite.Body, name string, value int) {
	if value != 0 {
		body.SetAttributeValue(name, cty.NumberIntVal(int64(value)))
	}
}

func setList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		body.SetAttributeValue(name, cty.ListValEmpty(cty.String))
		return
	}
	list := make([]cty.Value, len(values))
	for i, v := range values {
		list[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(list))
}
