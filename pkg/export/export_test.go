package export_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
	"github.com/matzehuels/archmodel/pkg/workspace"
)

func TestExportIsDeterministic(t *testing.T) {
	ws := privateApps()

	first, err := export.Marshal(export.Export(ws))
	require.NoError(t, err)
	second, err := export.Marshal(export.Export(ws))
	require.NoError(t, err)
	require.Equal(t, first, second)

	// A separately built identical workspace yields the same bytes.
	third, err := export.Marshal(export.Export(privateApps()))
	require.NoError(t, err)
	require.Equal(t, first, third)
	require.Equal(t, export.Digest(first), export.Digest(third))
}

func TestExportDoesNotDerive(t *testing.T) {
	ws := workspace.New("w", "")
	m := ws.Model()
	a := must(m.AddSoftwareSystem("A", ""))
	b := must(m.AddSoftwareSystem("B", ""))
	ac := must(m.AddContainer(a, "app", "", ""))
	must(m.Uses(ac, b, "calls", ""))

	doc := export.Export(ws)
	require.Len(t, doc.Model.Relationships, 1)
	require.Equal(t, 1, m.RelationshipCount(), "export must not mutate the model")

	m.DeriveImplicitRelationships()
	doc = export.Export(ws)
	require.Len(t, doc.Model.Relationships, 2)
	require.True(t, doc.Model.Relationships[1].Implicit)
	require.Equal(t, string(a), doc.Model.Relationships[1].SourceID)
}

func TestExportShape(t *testing.T) {
	data, err := export.Marshal(export.Export(privateApps()))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Equal(t, "Private apps", raw["name"])
	require.Equal(t, "Sebastian Czech", raw["enterprise"])

	model := raw["model"].(map[string]any)
	for _, key := range []string{"people", "softwareSystems", "relationships"} {
		require.Contains(t, model, key)
	}
	views := raw["views"].(map[string]any)
	for _, key := range []string{"systemContextViews", "containerViews", "componentViews", "styles"} {
		require.Contains(t, views, key)
	}
	require.Empty(t, views["containerViews"], "empty lists are explicit, not null")

	notes := model["softwareSystems"].([]any)[0].(map[string]any)
	require.Equal(t, "Notes", notes["name"])
	web := notes["containers"].([]any)[0].(map[string]any)
	require.Len(t, web["components"], 3)

	rel := model["relationships"].([]any)[0].(map[string]any)
	require.Equal(t, false, rel["implicit"])
	require.Equal(t, "Uses", rel["interaction"])

	sections := raw["documentation"].(map[string]any)["sections"].([]any)
	require.Len(t, sections, 1)
	require.Equal(t, "Context", sections[0].(map[string]any)["title"])

	require.True(t, bytes.HasSuffix(data, []byte("}\n")))
}

func TestExportViewRelationships(t *testing.T) {
	doc := export.Export(privateApps())
	v := doc.Views.SystemContextViews[0]

	// Every relationship between the five context elements, none involving
	// containers.
	require.Len(t, v.Relationships, 6)
	require.Empty(t, v.Animations)
}

func TestDecodeRoundTrip(t *testing.T) {
	doc := export.Export(privateApps())
	data, err := export.Marshal(doc)
	require.NoError(t, err)

	got, err := export.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestDecodeRejects(t *testing.T) {
	valid := export.Export(privateApps())

	tests := []struct {
		name   string
		mutate func(d *export.Document)
	}{
		{"missing name", func(d *export.Document) { d.Name = "" }},
		{"dangling relationship", func(d *export.Document) { d.Model.Relationships[0].DestinationID = "404" }},
		{"dangling view element", func(d *export.Document) {
			d.Views.SystemContextViews[0].Elements = append(d.Views.SystemContextViews[0].Elements, "404")
		}},
		{"dangling scope", func(d *export.Document) { d.Views.SystemContextViews[0].Scope = "404" }},
		{"dangling section", func(d *export.Document) { d.Documentation.Sections[0].ElementID = "404" }},
		{"duplicate view key", func(d *export.Document) {
			d.Views.ContainerViews = append(d.Views.ContainerViews, d.Views.SystemContextViews[0])
		}},
		{"duplicate element id", func(d *export.Document) { d.Model.People[0].ID = d.Model.SoftwareSystems[0].ID }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := export.Marshal(valid)
			require.NoError(t, err)
			d, err := export.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			tt.mutate(d)
			data, err = export.Marshal(d)
			require.NoError(t, err)

			_, err = export.Decode(bytes.NewReader(data))
			require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "err = %v", err)
		})
	}

	_, err := export.Decode(strings.NewReader(`{"name": "x", "bogus": 1}`))
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "unknown field: err = %v", err)
}

func TestWriteAndReadFile(t *testing.T) {
	doc := export.Export(privateApps())
	path := filepath.Join(t.TempDir(), "ws.json")

	require.NoError(t, export.WriteFile(doc, path, export.FormatJSON))
	got, err := export.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, doc, got)

	_, err = export.ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestMarshalHCL(t *testing.T) {
	// Collapse hclwrite's attribute alignment.
	out := strings.Join(strings.Fields(string(export.MarshalHCL(export.Export(privateApps())))), " ")

	for _, want := range []string{
		`name = "Private apps"`,
		`enterprise = "Sebastian Czech"`,
		`person "1" {`,
		`software_system "2" {`,
		`container "`,
		`component "`,
		`technology = "Django"`,
		`system_context_view "SystemContext" {`,
		`paper_size = "A5_Landscape"`,
		`element_style "Person" {`,
		`shape = "Person"`,
		`section "2" "Context" {`,
	} {
		require.Contains(t, out, want)
	}
}

func TestEncodeFormats(t *testing.T) {
	doc := export.Export(privateApps())

	j, err := export.Encode(doc, export.FormatJSON)
	require.NoError(t, err)
	require.True(t, json.Valid(j))

	h, err := export.Encode(doc, export.FormatHCL)
	require.NoError(t, err)
	require.Contains(t, string(h), "software_system")

	_, err = export.Encode(doc, "yaml")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	f, err := export.ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, export.FormatJSON, f)
	require.Equal(t, ".hcl", export.FormatHCL.Extension())
	_, err = export.ParseFormat("xml")
	require.Error(t, err)
}

func TestDiff(t *testing.T) {
	ws := privateApps()
	before, err := export.Marshal(export.Export(ws))
	require.NoError(t, err)

	require.False(t, export.Changed(export.Diff(before, before)))

	must(ws.Model().AddPerson("Guest", "Visitor"))
	after, err := export.Marshal(export.Export(ws))
	require.NoError(t, err)

	lines := export.Diff(before, after)
	require.True(t, export.Changed(lines))

	var inserted []string
	for _, l := range lines {
		if l.Op == export.DiffInsert {
			inserted = append(inserted, l.Text)
		}
	}
	require.Contains(t, strings.Join(inserted, "\n"), `"name": "Guest"`)
}
