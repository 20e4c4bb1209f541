package bootstrap

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// AuditLog is one lifecycle event of the process.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// ZapAuditLogger writes lifecycle events to the "audit" logger, one field
// per Meta key.
type ZapAuditLogger struct {
	logger *zap.Logger
	env    string
	now    func() time.Time
}

func NewZapAuditLogger(logger *zap.Logger, env string) *ZapAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapAuditLogger{logger: logger.Named("audit"), env: env, now: time.Now}
}

func (l *ZapAuditLogger) Log(_ context.Context, entry AuditLog) {
	fields := make([]zap.Field, 0, len(entry.Meta)+4)
	fields = append(fields,
		zap.String("action", entry.Action),
		zap.String("env", l.env),
		zap.Time("occurred_at", l.now().UTC()),
	)

	keys := make([]string, 0, len(entry.Meta))
	for k := range entry.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, entry.Meta[k]))
	}

	l.logger.Info(entry.Message, fields...)
}
