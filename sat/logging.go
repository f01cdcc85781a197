package sat

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Component logging built on logrus. Every solver pass owns a named Logger;
// verbosity can be raised globally or per component, so a single pass can be
// traced without drowning in output from the rest of the solver.
//
// Intended usage:
//
//	SetLogLevel(logrus.InfoLevel)
//	SetComponentLogLevel("probing", logrus.DebugLevel)
//	log := NewLogger("probing")
//	log.Infof("found %d units", n)

var (
	logMu           sync.Mutex
	logDefaultLevel = logrus.InfoLevel
	logCustomLevel  = map[string]logrus.Level{}
	logOutput       = newSolverLogger()
)

func newSolverLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.TraceLevel) // Logger gates levels itself
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		SortingFunc: func(keys []string) {
			// keep the component first so lines line up
			for i, k := range keys {
				if k == "mod" && i != 0 {
					keys[0], keys[i] = keys[i], keys[0]
				}
			}
		},
	})
	return l
}

// SetLogLevel sets the default verbosity of all components and drops any
// per-component overrides.
func SetLogLevel(level logrus.Level) {
	logMu.Lock()
	defer logMu.Unlock()
	logDefaultLevel = level
	logCustomLevel = map[string]logrus.Level{}
}

// SetComponentLogLevel overrides the verbosity of a single component.
func SetComponentLogLevel(name string, level logrus.Level) {
	logMu.Lock()
	defer logMu.Unlock()
	logCustomLevel[name] = level
}

// Logger is a component-scoped logger. Construction snapshots the component's
// level and start time, so reusing a Logger across a pass is cheap and log
// lines report seconds elapsed within that pass.
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
	start time.Time
}

// NewLogger creates a logger for the named component.
func NewLogger(name string) Logger {
	logMu.Lock()
	level, ok := logCustomLevel[name]
	if !ok {
		level = logDefaultLevel
	}
	logMu.Unlock()
	return Logger{
		entry: logOutput.WithField("mod", name),
		level: level,
		start: time.Now(),
	}
}

func (l Logger) elapsed() *logrus.Entry {
	return l.entry.WithField("secs", float64(time.Since(l.start).Milliseconds())/1000)
}

// Tracef logs at trace level.
func (l Logger) Tracef(format string, args ...interface{}) {
	if l.level >= logrus.TraceLevel {
		l.elapsed().Tracef(format, args...)
	}
}

// Debugf logs at debug level.
func (l Logger) Debugf(format string, args ...interface{}) {
	if l.level >= logrus.DebugLevel {
		l.elapsed().Debugf(format, args...)
	}
}

// Infof logs at info level.
func (l Logger) Infof(format string, args ...interface{}) {
	if l.level >= logrus.InfoLevel {
		l.elapsed().Infof(format, args...)
	}
}

// Warnf logs at warning level.
func (l Logger) Warnf(format string, args ...interface{}) {
	if l.level >= logrus.WarnLevel {
		l.elapsed().Warnf(format, args...)
	}
}
