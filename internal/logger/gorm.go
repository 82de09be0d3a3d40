package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration above which a statement is logged at warn.
const SlowQueryThreshold = 200 * time.Millisecond

// Gorm adapts a [log.Logger] to gorm's logger interface.
type Gorm struct {
	l          *log.Logger
	level      gormlogger.LogLevel
	// withValues keeps bound values in logged SQL. Off unless l is at debug.
	withValues bool
}

var (
	_ gormlogger.Interface = (*Gorm)(nil)
	_ gorm.ParamsFilter    = (*Gorm)(nil)
)

// NewGorm returns a gorm logger whose verbosity follows l's level: SQL traces
// only appear when l is at debug.
func NewGorm(l *log.Logger) *Gorm {
	debug := l.GetLevel() <= log.DebugLevel
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &Gorm{l: l.WithPrefix("gorm"), level: level, withValues: debug}
}

// ParamsFilter drops bound values from logged statements so that failed and
// slow queries show placeholders instead of user data.
func (g *Gorm) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	if g.withValues {
		return sql, params
	}
	return sql, nil
}

func (g *Gorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *Gorm) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.l.Info(fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.l.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.l.Error(fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.l.Error("query failed", "err", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > SlowQueryThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		g.l.Warn("slow query", "elapsed", elapsed, "rows", rows, "sql", sql)
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		g.l.Debug("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
