// Package logging configures the launcher's diagnostic log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the diagnostic log file name inside the state directory.
const LogFile = "launcher.log"

// Init routes launcher diagnostics to a size-rotated file under dir
// and, when console is true, additionally to a console writer on
// stderr. Game output lines are not written here; they go through the
// per-launch log sink.
func Init(dir string, console bool) (zerolog.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), fmt.Errorf("creating log directory: %w", err)
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFile),
		MaxSize:    5, // MB
		MaxBackups: 2,
	}}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logger := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	return logger, nil
}
