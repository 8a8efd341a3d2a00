package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"oss-mcp/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	// SSEPath opens the event stream.
	SSEPath = "/sse"
	// MessagePath receives client messages for the active stream.
	MessagePath = "/messages"

	defaultKeepAlive = 15 * time.Second
	outboundBuffer   = 64
)

var errSessionClosed = errors.New("sse session closed")

// sseSession is one event stream. It implements mcpserver.ClientSession.
type sseSession struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	outbound      chan []byte
	initialized   atomic.Bool
	done          chan struct{}
	closeOnce     sync.Once
}

func newSSESession() *sseSession {
	return &sseSession{
		id:            uuid.NewString(),
		notifications: make(chan mcp.JSONRPCNotification, outboundBuffer),
		outbound:      make(chan []byte, outboundBuffer),
		done:          make(chan struct{}),
	}
}

func (s *sseSession) SessionID() string { return s.id }

func (s *sseSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifications
}

func (s *sseSession) Initialize() { s.initialized.Store(true) }

func (s *sseSession) Initialized() bool { return s.initialized.Load() }

func (s *sseSession) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// send queues a message for the stream.
func (s *sseSession) send(data []byte) error {
	select {
	case <-s.done:
		return errSessionClosed
	default:
	}
	select {
	case s.outbound <- data:
		return nil
	case <-s.done:
		return errSessionClosed
	}
}

// SSETransport serves the protocol over a server-sent event stream plus a POST endpoint.
// Only one stream is active at a time; a new connection replaces and closes the previous one.
type SSETransport struct {
	server    *mcpserver.MCPServer
	logger    *zap.Logger
	keepAlive time.Duration

	mu     sync.Mutex
	active *sseSession
}

// NewSSETransport creates a transport dispatching messages to srv.
func NewSSETransport(srv *mcpserver.MCPServer, logger *zap.Logger) *SSETransport {
	return &SSETransport{
		server:    srv,
		logger:    logger,
		keepAlive: defaultKeepAlive,
	}
}

// RegisterRoutes registers the stream and message endpoints.
func (t *SSETransport) RegisterRoutes(app fiber.Router) {
	app.Get(SSEPath, t.HandleSSE)
	app.Post(MessagePath, t.HandleMessage)
}

// connected reports whether a stream is active.
func (t *SSETransport) connected() bool {
	return t.current() != nil
}

func (t *SSETransport) current() *sseSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *SSETransport) activate(sess *sseSession) error {
	t.mu.Lock()
	prev := t.active
	t.active = sess
	t.mu.Unlock()

	if prev != nil {
		t.logger.Info("Replacing active SSE connection", zap.String("previous", prev.id), zap.String("session", sess.id))
		prev.close()
	}
	return t.server.RegisterSession(context.Background(), sess)
}

func (t *SSETransport) deactivate(sess *sseSession) {
	t.mu.Lock()
	if t.active == sess {
		t.active = nil
	}
	t.mu.Unlock()

	sess.close()
	t.server.UnregisterSession(context.Background(), sess.id)
}

// HandleSSE opens the event stream and makes it the active connection.
func (t *SSETransport) HandleSSE(c *fiber.Ctx) error {
	l := logger.WithRayID(t.logger, c)

	sess := newSSESession()
	if err := t.activate(sess); err != nil {
		l.Error("Failed to register SSE session", zap.Error(err))
		t.deactivate(sess)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("SSE client connected", zap.String("session", sess.id))

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		t.stream(w, sess)
		l.Info("SSE client disconnected", zap.String("session", sess.id))
	})
	return nil
}

// stream writes events for sess until it is closed or the client goes away.
func (t *SSETransport) stream(w *bufio.Writer, sess *sseSession) {
	defer t.deactivate(sess)

	if err := writeEvent(w, "endpoint", fmt.Sprintf("%s?sessionId=%s", MessagePath, sess.id)); err != nil {
		return
	}

	ticker := time.NewTicker(t.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-sess.outbound:
			if err := writeEvent(w, "message", string(data)); err != nil {
				return
			}
		case n := <-sess.notifications:
			data, err := json.Marshal(n)
			if err != nil {
				continue
			}
			if err := writeEvent(w, "message", string(data)); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		case <-sess.done:
			// Deliver responses queued before the close.
			for {
				select {
				case data := <-sess.outbound:
					if err := writeEvent(w, "message", string(data)); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func writeEvent(w *bufio.Writer, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return w.Flush()
}

// HandleMessage dispatches a client message to the active stream's session.
// It answers 400 without an active stream and 500 when dispatch fails.
func (t *SSETransport) HandleMessage(c *fiber.Ctx) (err error) {
	l := logger.WithRayID(t.logger, c)

	sess := t.current()
	if sess == nil {
		l.Warn("Message received but no SSE connection is active")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "SSE connection not established",
			"message": "Connect to " + SSEPath + " first",
		})
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error("Message dispatch panicked", zap.Any("panic", r))
			err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Internal server error",
				"message": fmt.Sprint(r),
			})
		}
	}()

	body := append([]byte(nil), c.Body()...)
	ctx := t.server.WithContext(c.UserContext(), sess)

	resp := t.server.HandleMessage(ctx, json.RawMessage(body))
	if resp != nil {
		data, mErr := json.Marshal(resp)
		if mErr == nil {
			mErr = sess.send(data)
		}
		if mErr != nil {
			l.Error("Failed to deliver response", zap.String("session", sess.id), zap.Error(mErr))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Internal server error",
				"message": mErr.Error(),
			})
		}
	}

	return c.Status(fiber.StatusAccepted).SendString("Accepted")
}
