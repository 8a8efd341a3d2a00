package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogMethod is the protocol notification method carrying log messages.
const LogMethod = "notifications/message"

// Notifier delivers a notification to every connected protocol client.
type Notifier interface {
	SendNotificationToAllClients(method string, params map[string]any)
}

// WithProtocol tees l into a core that forwards every enabled entry to the notifier.
func WithProtocol(l *zap.Logger, n Notifier, name string) *zap.Logger {
	return l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, NewProtocolCore(n, c, name))
	}))
}

type protocolCore struct {
	zapcore.LevelEnabler
	notifier Notifier
	name     string
	fields   []zapcore.Field
}

// NewProtocolCore returns a core that sends log entries as protocol logging notifications.
func NewProtocolCore(n Notifier, enab zapcore.LevelEnabler, name string) zapcore.Core {
	return &protocolCore{LevelEnabler: enab, notifier: n, name: name}
}

func (c *protocolCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *protocolCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *protocolCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	data := make(map[string]any, len(enc.Fields)+1)
	for k, v := range enc.Fields {
		data[k] = v
	}
	data["message"] = ent.Message

	name := ent.LoggerName
	if name == "" {
		name = c.name
	}

	c.notifier.SendNotificationToAllClients(LogMethod, map[string]any{
		"level":  ProtocolLevel(ent.Level),
		"logger": name,
		"data":   data,
	})
	return nil
}

func (c *protocolCore) Sync() error {
	return nil
}

// ProtocolLevel maps a zap level to the protocol's syslog-style level names.
func ProtocolLevel(l zapcore.Level) string {
	switch l {
	case zapcore.DebugLevel:
		return "debug"
	case zapcore.InfoLevel:
		return "info"
	case zapcore.WarnLevel:
		return "warning"
	case zapcore.ErrorLevel:
		return "error"
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return "critical"
	default:
		return "emergency"
	}
}
