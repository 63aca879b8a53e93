// Package pkg provides the core libraries for archmodel.
//
// # Overview
//
// archmodel builds C4 software architecture models (people, software
// systems, containers and components joined by relationships), arranges
// them into views, attaches documentation and styles, and exports the
// resulting workspace to pluggable sinks. The pkg directory is organized
// into three areas:
//
//  1. Model - [model], [view], [style], [docs] and [workspace]
//  2. Exchange - [definition] (input), [export] (snapshot and publish) and [sink]
//  3. Infrastructure - [config], [cache], [httputil], [observability], [server]
//     and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	definition file (YAML, TOML, JSON)
//	         ↓
//	    [definition] package (parse + build)
//	         ↓
//	    [workspace] package (model, views, documentation, styles)
//	         ↓
//	    [export] package (immutable snapshot, canonical JSON or HCL)
//	         ↓
//	    [sink] package (HTTP API, file, writer, Redis, MongoDB)
//
// # Quick Start
//
//	ws := workspace.New("Shop", "")
//	m := ws.Model()
//	customer, _ := m.AddPerson("Customer", "")
//	store, _ := m.AddSoftwareSystem("Store", "")
//	m.Uses(customer, store, "Buys from", "")
//
//	v, _ := ws.Views().CreateSystemContextView(store, "context", "")
//	v.AddAllElements()
//
//	doc := export.Export(ws)
//	s, _ := sink.NewFileSink("out", export.FormatJSON)
//	err := export.Publish(ctx, doc, s, export.Target{WorkspaceID: "shop"}, export.PublishOptions{})
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/model/...    # Specific package
//	go test -run Example       # Examples only
//
// [model]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/model
// [view]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/view
// [style]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/style
// [docs]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/docs
// [workspace]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/workspace
// [definition]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/definition
// [export]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/export
// [sink]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/sink
// [config]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/archmodel/pkg/errors
package pkg
