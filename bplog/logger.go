// Package bplog provides the small structured-logging wrapper used across
// the bundle-space planner. It mirrors the teacher's pattern of one named
// logger per long-lived component, backed directly by zap rather than a
// full multi-process logger registry, since the planner is a library with
// no server process to route logs for.
package bplog

import (
	"go.uber.org/zap"
)

// Logger is the logging capability consumed by every planner component.
// Components hold a Logger, never a *zap.Logger directly, so the backing
// implementation can be swapped (e.g. for a silent logger in tests).
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New returns a production-configured Logger with the given root name.
func New(name string) Logger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return &zapLogger{s: l.Named(name).Sugar()}
}

// NewNop returns a Logger that discards everything, for use in tests and
// benchmarks where log volume would otherwise dominate output.
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func (z *zapLogger) Debugw(msg string, kv ...interface{}) { z.s.Debugw(msg, kv...) }
func (z *zapLogger) Infow(msg string, kv ...interface{})  { z.s.Infow(msg, kv...) }
func (z *zapLogger) Warnw(msg string, kv ...interface{})  { z.s.Warnw(msg, kv...) }
func (z *zapLogger) Errorw(msg string, kv ...interface{}) { z.s.Errorw(msg, kv...) }

func (z *zapLogger) Named(name string) Logger {
	return &zapLogger{s: z.s.Named(name)}
}
