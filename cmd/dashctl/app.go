package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/widget-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/widget-dashboard/internal/config"
	"github.com/GregMSThompson/widget-dashboard/internal/presentation"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

// app carries what every subcommand shares: the loaded dashboard and the
// clients behind it.
type app struct {
	cfgPath string
	uid     string

	ctx     context.Context
	bs      *bootstrap.Bootstrap
	logFile io.Closer
	dash    *presentation.Adapter
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	log, logFile, err := bootstrap.TerminalLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = logFile
	log = log.With("session_id", uuid.NewString(), "command", cmd.Name())

	a.bs, err = bootstrap.Run(cfg, log)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.ctx = logger.ToContext(ctx, log)
	a.dash = a.bs.Factory.New(a.ctx, a.uid)
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	var errList []error
	if a.bs != nil {
		errList = append(errList, a.bs.Close())
	}
	if a.logFile != nil {
		errList = append(errList, a.logFile.Close())
	}
	return errors.Join(errList...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
