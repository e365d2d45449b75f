package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the global logrus logger: JSON lines at the given
// level, written to logFilePath or stdout when the file cannot be opened.
// The returned closer releases the log file.
func InitLogger(level, logFilePath string) io.Closer {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	var closer io.Closer = nopCloser{}
	logrus.SetOutput(os.Stdout)
	if logFilePath != "" {
		logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file (%s), using stdout: %v", logFilePath, err)
		} else {
			logrus.SetOutput(logFile)
			closer = logFile
		}
	}

	logrus.Info("Logger initialized")
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
