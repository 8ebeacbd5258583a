package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// DBLogConfig configures the gorm-to-zerolog bridge.
type DBLogConfig struct {
	SlowThreshold             time.Duration
	LogLevel                  logger.LogLevel
	IgnoreRecordNotFoundError bool
	zeroLogger                zerolog.Logger
}

// NewDBLogger returns a gorm logger that writes structured zerolog
// events instead of gorm's printf-style output, so SQL tracing shares
// the service log stream.
func NewDBLogger(config DBLogConfig) logger.Interface {
	return &dbLogger{DBLogConfig: config}
}

func zeroLogToGormLevel(level zerolog.Level) logger.LogLevel {
	switch {
	case level <= zerolog.InfoLevel:
		return logger.Info
	case level == zerolog.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

type dbLogger struct {
	DBLogConfig
}

func (l *dbLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.LogLevel = level
	return &clone
}

func (l *dbLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		l.zeroLogger.Info().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *dbLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		l.zeroLogger.Warn().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *dbLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		l.zeroLogger.Error().Ctx(ctx).Msgf(msg, data...)
	}
}

func (l *dbLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= logger.Error && (!errors.Is(err, gorm.ErrRecordNotFound) || !l.IgnoreRecordNotFoundError):
		sql, rows := fc()
		l.traceEvent(ctx, l.zeroLogger.Error().Err(err), elapsed, rows, sql)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= logger.Warn:
		sql, rows := fc()
		l.traceEvent(ctx, l.zeroLogger.Warn().Dur("slow_threshold", l.SlowThreshold), elapsed, rows, sql)
	case l.LogLevel == logger.Info:
		sql, rows := fc()
		l.traceEvent(ctx, l.zeroLogger.Info(), elapsed, rows, sql)
	}
}

func (l *dbLogger) traceEvent(ctx context.Context, e *zerolog.Event, elapsed time.Duration, rows int64, sql string) {
	e = e.Ctx(ctx).
		Str("caller", utils.FileWithLineNum()).
		Dur("elapsed", elapsed).
		Str("sql", sql)
	// rows is -1 when the statement reports no row count
	if rows >= 0 {
		e = e.Int64("rows", rows)
	}
	e.Msg("sql trace")
}
