package logger

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's SQL trace through the request logger found in
// the statement context.
type GormLogger struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger maps the logrus level onto gorm's levels.
func NewGormLogger(slow time.Duration) *GormLogger {
	level := gormlogger.Warn
	switch logrus.GetLevel() {
	case logrus.TraceLevel:
		level = gormlogger.Info
	case logrus.PanicLevel, logrus.FatalLevel:
		level = gormlogger.Silent
	case logrus.ErrorLevel:
		level = gormlogger.Error
	}
	return &GormLogger{Level: level, SlowThreshold: slow}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.Level = level
	return &n
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		FromContext(ctx).Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		FromContext(ctx).Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		FromContext(ctx).Errorf(msg, args...)
	}
}

// Trace logs failed statements at error, slow ones at warn and the rest at
// trace. Missing rows are not failures.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		FromContext(ctx).WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql}).
			WithError(err).Error("query failed")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		FromContext(ctx).WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql}).
			Warn("slow query")
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		FromContext(ctx).WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows, "sql": sql}).
			Trace("query")
	}
}
