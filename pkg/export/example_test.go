package export_test

import (
	"fmt"

	"github.com/matzehuels/archmodel/pkg/docs"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/style"
	"github.com/matzehuels/archmodel/pkg/view"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// privateApps builds the "Private apps" workspace: four systems used by one
// person, the Notes system broken down into containers and the web app into
// components.
func privateApps() *workspace.Workspace {
	ws := workspace.New("Private apps", "This is a model of my private systems built from many apps")
	ws.SetEnterprise("Sebastian Czech")
	m := ws.Model()

	user := must(m.AddPerson("User", "Me, a user of my software system."))
	notes := must(m.AddSoftwareSystem("Notes", "Notes app."))
	multimedia := must(m.AddSoftwareSystem("Multimedia", "Multimedia app."))
	api := must(m.AddSoftwareSystem("API", "REST API."))
	calendar := must(m.AddSoftwareSystem("Calendar", "Google Calendar."))

	must(m.Uses(user, notes, "Uses", ""))
	must(m.Uses(user, multimedia, "Uses", ""))
	must(m.Uses(notes, api, "Gets / Sends", ""))
	must(m.Uses(multimedia, api, "Gets / Sends", ""))
	must(m.Uses(notes, calendar, "Gets / Sends", ""))
	must(m.Delivers(calendar, user, "Updated calendar", ""))

	ctx := must(ws.Views().CreateSystemContextView(notes, "SystemContext", "System Context diagram."))
	ctx.SetPaperSize(view.PaperSizeA5Landscape)
	ctx.AddAllSoftwareSystems()
	ctx.AddAllPeople()

	webApp := must(m.AddContainer(notes, "Web app", "Main UI for notes app", "Python"))
	database := must(m.AddContainer(notes, "Database", "All data for notes", "PostgreSQL"))
	must(m.Uses(user, webApp, "Uses", ""))
	must(m.Uses(webApp, database, "Read / write", "PEP"))

	must(m.AddComponent(webApp, "Authentication", "Allow to authentication access to web app", "Google OAuth client"))
	must(m.AddComponent(webApp, "Calendar", "Insert event into calendar for reminder", "Google Calendar API client"))
	wizard := must(m.AddComponent(webApp, "Wizard for financial operations",
		"Allow in one step to update multiples financial objects e.g. for shoping operation", "Django"))
	must(m.Uses(wizard, database, "Read / write", "JDBC"))

	m.DeriveImplicitRelationships()

	must(ws.Documentation().AddContextSection(notes, docs.FormatMarkdown,
		"# Documentation\n\n## Notes\n\n## Multimedia\n\n## API\n\n"))

	ws.Styles().AddElementStyle(style.TagSoftwareSystem).Background("#1168bd").Color("#ffffff")
	ws.Styles().AddElementStyle(style.TagPerson).Background("#ff6600").Color("#ffffff").Shape(style.ShapePerson)

	return ws
}

func ExampleExport() {
	doc := export.Export(privateApps())

	fmt.Println(doc.Name, "/", doc.Enterprise)
	for _, s := range doc.Model.SoftwareSystems {
		fmt.Printf("%s: %d containers\n", s.Name, len(s.Containers))
	}
	fmt.Println("relationships:", len(doc.Model.Relationships))

	v := doc.Views.SystemContextViews[0]
	fmt.Println(v.Key, v.PaperSize, len(v.Elements), "elements")
	// Output:
	// Private apps / Sebastian Czech
	// Notes: 2 containers
	// Multimedia: 0 containers
	// API: 0 containers
	// Calendar: 0 containers
	// relationships: 9
	// SystemContext A5_Landscape 5 elements
}

func ExampleDiff() {
	before := []byte("{\n  \"name\": \"Private apps\"\n}\n")
	after := []byte("{\n  \"name\": \"Public apps\"\n}\n")

	for _, line := range export.Diff(before, after) {
		if line.Op != export.DiffEqual {
			fmt.Println(line)
		}
	}
	// Output:
	// -  "name": "Private apps"
	// +  "name": "Public apps"
}
