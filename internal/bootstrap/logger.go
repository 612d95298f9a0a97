package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/GregMSThompson/widget-dashboard/internal/config"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// TerminalLogger returns the logger for terminal surfaces. Records go to
// cfg.LogFile, or nowhere when it is empty, so they never reach the screen.
func TerminalLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logger.NewDiscard(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logger.New(cfg.LogLevel, logger.NewWriterHandler(f)), f, nil
}
