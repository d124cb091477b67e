package database

import (
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

type zapWriter struct {
	log *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

// NewGormLogger routes gorm's SQL log through zap. Statements are traced only
// when level is debug; otherwise gorm emits slow queries and errors.
func NewGormLogger(log *zap.Logger, level string) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	switch level {
	case "debug":
		gormLevel = gormlogger.Info
	case "error":
		gormLevel = gormlogger.Error
	}

	return gormlogger.New(
		zapWriter{log: log.Named("gorm").Sugar()},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
