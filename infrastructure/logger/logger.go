package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	env := os.Getenv("ENV")
	logger.Out = os.Stdout

	// LOG_TO_FILE=true writes to logs/<date><env>.log in the working directory
	if os.Getenv("LOG_TO_FILE") == "true" {
		if f, err := openLogFile(env); err != nil {
			log.Warnf("Failed to open log file: %v, falling back to stdout", err)
		} else {
			logger.Out = f
		}
	}

	logger.Formatter = formatter(os.Getenv("LOG_FORMAT"))
	logger.SetLevel(level(os.Getenv("LOG_LEVEL")))
}

func openLogFile(env string) (*os.File, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	logsDir := filepath.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, err
	}
	filePath := filepath.Join(logsDir, fmt.Sprintf("%s%s.log", time.Now().Format("2006-01-02"), env))
	return os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
}

func formatter(format string) log.Formatter {
	if strings.EqualFold(format, "text") {
		return &log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano}
	}
	return &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

func level(s string) log.Level {
	if s == "" {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.DebugLevel
	}
	return lvl
}

// Configure overrides level and format after configuration has been loaded
func Configure(levelName, format string) {
	if levelName != "" {
		logger.SetLevel(level(levelName))
	}
	if format != "" {
		logger.Formatter = formatter(format)
	}
}

// SetOutput redirects log output, returning the previous writer
func SetOutput(w io.Writer) io.Writer {
	prev := logger.Out
	logger.SetOutput(w)
	return prev
}

func GetLogger() *log.Entry {
	function, file, line, _ := runtime.Caller(1)

	functionObject := runtime.FuncForPC(function)
	entry := logger.WithFields(log.Fields{
		"requestId": time.Now().UnixNano() / int64(time.Millisecond),
		"function":  functionObject.Name(),
		"file":      file,
		"line":      line,
	})

	return entry
}
