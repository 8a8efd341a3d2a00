// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
// Output always goes to stderr: in stdio mode stdout belongs to the protocol stream.
//
// # Protocol Forwarding
//
// WithProtocol tees a logger into a core that turns each entry into a
// "notifications/message" notification delivered to every connected protocol
// client. The logger is built once at startup and injected into every
// component, so the forwarding decision is never changed at runtime.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, ensuring that all logs related to a specific HTTP request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithProtocol(log, mcpServer, "oss-mcp")
//	log.Info("Server started")
package logger
