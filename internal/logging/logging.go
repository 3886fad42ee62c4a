package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/wod-timer/internal/config"
)

// Flags are the standard logger flags used for every application log line
const Flags = log.LstdFlags | log.Lmicroseconds

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the application logger. Lines go to the rotating file in cfg and to
// every extra writer. With no file and no extra writer they go to stderr.
// The returned Closer releases the log file.
func New(cfg config.LogConfig, extra ...io.Writer) (*log.Logger, io.Closer) {
	writers := append([]io.Writer(nil), extra...)
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writers = append(writers, file)
		closer = file
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer = writers[0]
	if len(writers) > 1 {
		out = io.MultiWriter(writers...)
	}
	return log.New(out, "", Flags), closer
}
