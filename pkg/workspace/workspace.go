// Package workspace provides the aggregate root of an architecture model.
//
// A [Workspace] owns one model, its views, its style sheet and its
// documentation. It is built by a single caller, then handed whole to
// [github.com/matzehuels/archmodel/pkg/export.Export]:
//
//	ws := workspace.New("Private apps", "This is a model of my private systems built from many apps")
//	ws.SetEnterprise("Sebastian Czech")
//	m := ws.Model()
//	user, _ := m.AddPerson("User", "Me, a user of my software system.")
//
// Workspace is not safe for concurrent use.
package workspace

import (
	"github.com/matzehuels/archmodel/pkg/docs"
	"github.com/matzehuels/archmodel/pkg/model"
	"github.com/matzehuels/archmodel/pkg/style"
	"github.com/matzehuels/archmodel/pkg/view"
)

// Workspace is a named architecture model with its presentation metadata.
type Workspace struct {
	name        string
	description string
	enterprise  string

	model  *model.Model
	views  *view.Set
	styles *style.Sheet
	docs   *docs.Documentation
}

// New creates an empty workspace.
func New(name, description string) *Workspace {
	m := model.New()
	return &Workspace{
		name:        name,
		description: description,
		model:       m,
		views:       view.NewSet(m),
		styles:      style.New(),
		docs:        docs.New(m),
	}
}

// Name returns the workspace name.
func (w *Workspace) Name() string { return w.name }

// Description returns the workspace description.
func (w *Workspace) Description() string { return w.description }

// Enterprise returns the owning organization label, or "".
func (w *Workspace) Enterprise() string { return w.enterprise }

// SetEnterprise sets the owning organization label.
func (w *Workspace) SetEnterprise(name string) { w.enterprise = name }

// Model returns the element registry and relationship graph.
func (w *Workspace) Model() *model.Model { return w.model }

// Views returns the view set.
func (w *Workspace) Views() *view.Set { return w.views }

// Styles returns the style sheet.
func (w *Workspace) Styles() *style.Sheet { return w.styles }

// Documentation returns the documentation sections.
func (w *Workspace) Documentation() *docs.Documentation { return w.docs }
