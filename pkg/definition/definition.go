// Package definition loads workspaces from declarative files.
//
// A definition lists people, software systems with their containers and
// components, relationships, views, styles and documentation. Files may be
// YAML (.yaml, .yml), TOML (.toml) or JSON (.json); all three share the same
// camelCase keys:
//
//	name: Private apps
//	enterprise: Sebastian Czech
//	people:
//	  - name: User
//	softwareSystems:
//	  - name: Notes
//	    containers:
//	      - name: Web app
//	        technology: Python
//	relationships:
//	  - source: User
//	    destination: Notes/Web app
//	    description: Uses
//	implicitRelationships: true
//	views:
//	  - kind: systemContext
//	    key: SystemContext
//	    scope: Notes
//	    allSoftwareSystems: true
//	    allPeople: true
//
// Elements are referenced by path: "System", "System/Container" or
// "System/Container/Component". A person is referenced by its name.
//
// [Build] replays the builder calls in a fixed order (people, systems,
// relationships, implicit relationships, views, documentation, styles), so a
// structural error is reported at the entry that caused it, wrapped as
// INVALID_DEFINITION.
package definition

// File is the decoded form of a definition.
type File struct {
	Name                  string         `yaml:"name" toml:"name" json:"name"`
	Description           string         `yaml:"description" toml:"description" json:"description"`
	Enterprise            string         `yaml:"enterprise" toml:"enterprise" json:"enterprise"`
	People                []Person       `yaml:"people" toml:"people" json:"people"`
	SoftwareSystems       []System       `yaml:"softwareSystems" toml:"softwareSystems" json:"softwareSystems"`
	Relationships         []Relationship `yaml:"relationships" toml:"relationships" json:"relationships"`
	ImplicitRelationships bool           `yaml:"implicitRelationships" toml:"implicitRelationships" json:"implicitRelationships"`
	Views                 []View         `yaml:"views" toml:"views" json:"views"`
	Styles                Styles         `yaml:"styles" toml:"styles" json:"styles"`
	Documentation         []Section      `yaml:"documentation" toml:"documentation" json:"documentation"`
}

type Person struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Location    string   `yaml:"location" toml:"location" json:"location"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
}

type System struct {
	Name        string      `yaml:"name" toml:"name" json:"name"`
	Description string      `yaml:"description" toml:"description" json:"description"`
	Location    string      `yaml:"location" toml:"location" json:"location"`
	Tags        []string    `yaml:"tags" toml:"tags" json:"tags"`
	Containers  []Container `yaml:"containers" toml:"containers" json:"containers"`
}

type Container struct {
	Name        string      `yaml:"name" toml:"name" json:"name"`
	Description string      `yaml:"description" toml:"description" json:"description"`
	Technology  string      `yaml:"technology" toml:"technology" json:"technology"`
	Tags        []string    `yaml:"tags" toml:"tags" json:"tags"`
	Components  []Component `yaml:"components" toml:"components" json:"components"`
}

type Component struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Technology  string   `yaml:"technology" toml:"technology" json:"technology"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Relationship connects two element paths. Interaction is "uses" (default)
// or "delivers".
type Relationship struct {
	Source      string `yaml:"source" toml:"source" json:"source"`
	Destination string `yaml:"destination" toml:"destination" json:"destination"`
	Description string `yaml:"description" toml:"description" json:"description"`
	Technology  string `yaml:"technology" toml:"technology" json:"technology"`
	Interaction string `yaml:"interaction" toml:"interaction" json:"interaction"`
}

// View declares a diagram. Kind is "systemContext", "container" or
// "component"; Scope is a system path for the first two and a container path
// for the last.
type View struct {
	Kind        string `yaml:"kind" toml:"kind" json:"kind"`
	Key         string `yaml:"key" toml:"key" json:"key"`
	Scope       string `yaml:"scope" toml:"scope" json:"scope"`
	Description string `yaml:"description" toml:"description" json:"description"`
	PaperSize   string `yaml:"paperSize" toml:"paperSize" json:"paperSize"`

	AllPeople          bool `yaml:"allPeople" toml:"allPeople" json:"allPeople"`
	AllSoftwareSystems bool `yaml:"allSoftwareSystems" toml:"allSoftwareSystems" json:"allSoftwareSystems"`
	AllContainers      bool `yaml:"allContainers" toml:"allContainers" json:"allContainers"`
	AllComponents      bool `yaml:"allComponents" toml:"allComponents" json:"allComponents"`
	AllElements        bool `yaml:"allElements" toml:"allElements" json:"allElements"`

	Elements          []string   `yaml:"elements" toml:"elements" json:"elements"`
	NearestNeighbours []string   `yaml:"nearestNeighbours" toml:"nearestNeighbours" json:"nearestNeighbours"`
	Exclude           []string   `yaml:"exclude" toml:"exclude" json:"exclude"`
	Animations        [][]string `yaml:"animations" toml:"animations" json:"animations"`
}

type Styles struct {
	Elements      []ElementStyle      `yaml:"elements" toml:"elements" json:"elements"`
	Relationships []RelationshipStyle `yaml:"relationships" toml:"relationships" json:"relationships"`
}

type ElementStyle struct {
	Tag        string `yaml:"tag" toml:"tag" json:"tag"`
	Background string `yaml:"background" toml:"background" json:"background"`
	Color      string `yaml:"color" toml:"color" json:"color"`
	Shape      string `yaml:"shape" toml:"shape" json:"shape"`
	Stroke     string `yaml:"stroke" toml:"stroke" json:"stroke"`
	FontSize   int    `yaml:"fontSize" toml:"fontSize" json:"fontSize"`
	Opacity    *int   `yaml:"opacity" toml:"opacity" json:"opacity"`
}

type RelationshipStyle struct {
	Tag       string `yaml:"tag" toml:"tag" json:"tag"`
	Color     string `yaml:"color" toml:"color" json:"color"`
	Dashed    *bool  `yaml:"dashed" toml:"dashed" json:"dashed"`
	Thickness int    `yaml:"thickness" toml:"thickness" json:"thickness"`
}

// Section is a documentation section of a software system. The body is
// given inline as Content or read by [Load] from File, relative to the
// definition.
type Section struct {
	System  string `yaml:"system" toml:"system" json:"system"`
	Title   string `yaml:"title" toml:"title" json:"title"`
	Format  string `yaml:"format" toml:"format" json:"format"`
	Content string `yaml:"content" toml:"content" json:"content"`
	File    string `yaml:"file" toml:"file" json:"file"`
}
