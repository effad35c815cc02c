// Package logging owns the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *logrus.Logger
	once sync.Once
)

// Init configures the logger. Unknown levels fall back to info.
//
// Parameters:
//   - level: logrus level name (debug, info, warn, error)
//   - logFile: optional file path to append to, empty disables file output
//   - console: whether to also write to stderr
//
// Returns:
//   - error: error if the log file could not be opened
func Init(level, logFile string, console bool) error {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	once.Do(func() {})
	log = l
	return nil
}

// Get returns the logger, creating an info-level stderr logger on first use
// if Init was never called.
func Get() *logrus.Logger {
	once.Do(func() {
		if log == nil {
			log = logrus.New()
			log.SetLevel(logrus.InfoLevel)
		}
	})
	return log
}
