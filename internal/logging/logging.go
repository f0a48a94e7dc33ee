// Package logging builds the process logger. Logs go to stderr only;
// stdout belongs to the report.
package logging

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a production zap logger at the given level ("debug", "info",
// "warn", "error"), stamped with a fresh run_id.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return WithRunID(logger), nil
}

// WithRunID tags every entry of log with a new uuid, so lines from one
// report run can be told apart in aggregated logs.
func WithRunID(log *zap.Logger) *zap.Logger {
	return log.With(zap.String("run_id", uuid.NewString()))
}

// gormWriter feeds GORM's printf-style SQL trace into zap at debug level.
type gormWriter struct{ s *zap.SugaredLogger }

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.s.Debugf(format, args...)
}

// Gorm returns a GORM logger. Disabled, it discards everything; enabled, it
// traces every statement through log at debug level, and warns when log
// would drop those entries.
func Gorm(log *zap.Logger, enabled bool) gormlogger.Interface {
	if !enabled {
		return gormlogger.Discard
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		log.Warn("sql_log is on but log_level is above debug; set log_level=debug to see statements")
	}
	return gormlogger.New(gormWriter{s: log.Named("sql").Sugar()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Info,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
