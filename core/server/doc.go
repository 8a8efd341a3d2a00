// Package server wires the protocol server to its transports.
//
// New creates the protocol server that features register their tools on.
// Two transports serve it:
//
//   - Stdio: ServeStdio reads requests from stdin and writes responses to
//     stdout. Selected with --stdio or NODE_ENV=cli.
//   - HTTP: NewApp builds a Fiber application around an SSETransport.
//
// # HTTP Endpoints
//
//   - GET /sse : Opens the event stream. The first event announces the message
//     endpoint; responses and log notifications follow as "message" events.
//   - POST /messages : Dispatches one client message to the active stream.
//     Answers 202 on success, 400 when no stream is active and 500 when
//     dispatch fails.
//
// Only one stream is active at a time. A new connection replaces the previous
// one, which is closed.
package server
