// Package export turns a workspace into a self-describing snapshot and hands
// it to a sink.
//
// # Overview
//
// Exporting is a two-step process:
//
//  1. [Export] converts a [workspace.Workspace] into a [Document]. It is pure
//     and deterministic: exporting an unchanged workspace twice produces
//     documents that [Marshal] to identical bytes.
//  2. [Publish] delegates a document to a [Sink] in one call, bounded by an
//     optional timeout, and returns the sink's error unchanged.
//
// # Encodings
//
// [Marshal] writes canonical JSON, the interchange format every sink and the
// receiver understand. [MarshalHCL] writes an HCL rendition for review, and
// [Diff] compares two encoded snapshots line by line. [Digest] is the SHA-256
// of the encoded bytes, used for integrity headers and change detection.
//
// # Document Shape
//
//	{
//	  "name": "...", "description": "...", "enterprise": "...",
//	  "model": {
//	    "people": [...],
//	    "softwareSystems": [{"containers": [{"components": [...]}]}],
//	    "relationships": [{"implicit": false, ...}]
//	  },
//	  "views": {
//	    "systemContextViews": [...], "containerViews": [...], "componentViews": [...],
//	    "styles": {"elements": [...], "relationships": [...]}
//	  },
//	  "documentation": {"sections": [...]}
//	}
//
// [workspace.Workspace]: github.com/matzehuels/archmodel/pkg/workspace.Workspace
package export
