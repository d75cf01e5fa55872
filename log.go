package playbulb

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface the adapter writes to. Hosts that
// embed the adapter can install their own implementation with
// SetLogger; the default is logrus backed.
type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Warn(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})

	ChildLogger(tags map[string]interface{}) Logger
}

var logger Logger
var loggerMu sync.Mutex

// SetLogger replaces the package logger. Call before constructing an
// adapter; components capture their child loggers at construction.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// GetLogger ...
func GetLogger() Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if logger == nil {
		logger = buildDefaultLogger()
	}

	return logger
}

// SetDebug raises the default logger to debug level. It has no effect
// on a host-installed logger, which owns its own level.
func SetDebug(on bool) {
	l := GetLogger()

	lg, ok := l.(*defaultLogger)
	if !ok {
		return
	}

	if on {
		lg.Entry.Logger.SetLevel(logrus.DebugLevel)
	} else {
		lg.Entry.Logger.SetLevel(logrus.InfoLevel)
	}
}

// componentLogger returns a child of the package logger tagged with
// the component name.
func componentLogger(name string) Logger {
	return GetLogger().ChildLogger(map[string]interface{}{"component": name})
}

type defaultLogger struct {
	*logrus.Entry
}

func buildDefaultLogger() Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}

	return &defaultLogger{Entry: l.WithFields(map[string]interface{}{})}
}

func (d *defaultLogger) ChildLogger(ff map[string]interface{}) Logger {
	return &defaultLogger{d.Entry.WithFields(ff)}
}
