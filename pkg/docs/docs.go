// Package docs attaches free-text documentation sections to software systems.
//
// Sections follow the usual software guidebook layout: a "Context" section
// followed by functional overview, quality attributes and so on. Each
// (software system, title) pair holds at most one section; a second
// AddSection for the same pair fails with DUPLICATE_SECTION and leaves the
// first section in place.
package docs

import (
	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/model"
)

// Format is the markup language of a section body.
type Format string

const (
	FormatMarkdown  Format = "Markdown"
	FormatPlainText Format = "PlainText"
	FormatAsciiDoc  Format = "AsciiDoc"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatPlainText, FormatAsciiDoc:
		return true
	}
	return false
}

// Guidebook section titles.
const (
	TitleContext                    = "Context"
	TitleFunctionalOverview         = "Functional Overview"
	TitleQualityAttributes          = "Quality Attributes"
	TitleConstraints                = "Constraints"
	TitlePrinciples                 = "Principles"
	TitleSoftwareArchitecture       = "Software Architecture"
	TitleData                       = "Data"
	TitleInfrastructureArchitecture = "Infrastructure Architecture"
	TitleDeployment                 = "Deployment"
	TitleDevelopmentEnvironment     = "Development Environment"
	TitleOperationAndSupport        = "Operation and Support"
	TitleDecisionLog                = "Decision Log"
)

// Section is one documentation section.
type Section struct {
	Element model.ElementID // Owning software system
	Title   string
	Format  Format
	Body    string
	Order   int // 1-based position in the documentation
}

// Documentation holds the sections of a workspace in insertion order.
type Documentation struct {
	m        *model.Model
	sections []Section
}

// New creates empty documentation over m.
func New(m *model.Model) *Documentation {
	return &Documentation{m: m}
}

// AddContextSection adds the "Context" section for a software system.
func (d *Documentation) AddContextSection(systemID model.ElementID, format Format, body string) (Section, error) {
	return d.AddSection(systemID, TitleContext, format, body)
}

// AddSection adds a titled section for a software system.
//
// Returns UNKNOWN_ELEMENT if systemID is not a software system,
// DUPLICATE_SECTION if the system already has a section with this title, and
// INVALID_INPUT for an unknown format or empty title.
func (d *Documentation) AddSection(systemID model.ElementID, title string, format Format, body string) (Section, error) {
	e, ok := d.m.Element(systemID)
	if !ok || e.Kind != model.KindSoftwareSystem {
		return Section{}, errors.New(errors.ErrCodeUnknownElement, "section %q: software system %q does not exist", title, systemID)
	}
	if err := errors.ValidateName("section", title); err != nil {
		return Section{}, err
	}
	if !format.Valid() {
		return Section{}, errors.New(errors.ErrCodeInvalidInput, "section %q: unknown format %q", title, format)
	}
	if _, exists := d.Section(systemID, title); exists {
		return Section{}, errors.New(errors.ErrCodeDuplicateSection, "%s already has a %q section", e.Name, title)
	}

	s := Section{
		Element: systemID,
		Title:   title,
		Format:  format,
		Body:    body,
		Order:   len(d.sections) + 1,
	}
	d.sections = append(d.sections, s)
	return s, nil
}

// Section returns the section of a system with the given title.
func (d *Documentation) Section(systemID model.ElementID, title string) (Section, bool) {
	for _, s := range d.sections {
		if s.Element == systemID && s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Sections returns every section in insertion order.
func (d *Documentation) Sections() []Section {
	return append([]Section(nil), d.sections...)
}
