// Package view builds diagram specifications over a model.
//
// A [View] selects elements from a [model.Model] for one diagram at one C4
// level: system context, container or component. Views are created through a
// [Set], which enforces workspace-wide key uniqueness:
//
//	views := view.NewSet(m)
//	ctx, err := views.CreateSystemContextView(notes, "SystemContext", "System Context diagram.")
//	ctx.SetPaperSize(view.PaperSizeA5Landscape)
//	ctx.AddAllSoftwareSystems()
//	ctx.AddAllPeople()
//
// Population methods only check that elements exist. Which kinds are sensible
// on which diagram is left to the author, so [View.AddNearestNeighbours]
// always yields exactly the element and its one-hop neighbours.
//
// Animation steps, added with [View.AddAnimation], are kept in call order and
// revealed in that order by the consuming tool.
package view
