package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Shared logger instances used across the service.
var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	InitLoggers()
}

// InitLoggers configures the shared loggers. Log output goes to stdout and a
// size-rotated file under logs/.
func InitLoggers() {
	rotator := &lumberjack.Logger{
		Filename:   "logs/app.log",
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, rotator)

	InfoLogger = newLogger(out, logrus.InfoLevel)
	WarnLogger = newLogger(out, logrus.WarnLevel)
	ErrorLogger = newLogger(out, logrus.ErrorLevel)
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}
