// Package sink provides [export.Sink] implementations.
//
// A sink receives one serialized workspace per call and either stores all of
// it or fails:
//
//   - [HTTPSink] uploads to a remote workspace API with HMAC-signed requests
//   - [FileSink] writes {dir}/{workspace}.json (or .hcl) atomically
//   - [WriterSink] encodes to an io.Writer such as stdout
//   - [RedisSink] stores the JSON and its digest under a key prefix
//   - [MongoSink] upserts one document per workspace
//
// Errors carry codes from pkg/errors: UNAUTHORIZED and SINK_REJECTED for
// refusals, NETWORK_ERROR for transport failures, TIMEOUT when the context
// deadline expired and SINK_ERROR for everything else.
//
// [Sign] and [Verify] implement the request signature shared by [HTTPSink]
// and the receiver in pkg/server.
package sink
