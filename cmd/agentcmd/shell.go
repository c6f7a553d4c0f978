// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/shayne/agentcmd/internal/clipboard"
	"github.com/shayne/agentcmd/internal/config"
	"github.com/shayne/agentcmd/internal/dispatch"
	"github.com/shayne/agentcmd/internal/logging"
	"github.com/shayne/agentcmd/internal/ui/model"
	"github.com/shayne/agentcmd/internal/ui/styles"
)

type shellOptions struct {
	endpoint  string
	altScreen bool
}

// agentRuntime bundles what every command needs to talk to the agent.
type agentRuntime struct {
	cfg    config.Config
	client *dispatch.Client
	log    *zap.Logger
}

func newRuntime(endpointOverride string) (*agentRuntime, error) {
	cfg, _, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newRuntimeFromConfig(cfg, endpointOverride)
}

func newRuntimeFromConfig(cfg config.Config, endpointOverride string) (*agentRuntime, error) {
	if endpoint := strings.TrimSpace(endpointOverride); endpoint != "" {
		if err := config.ValidateEndpoint(endpoint); err != nil {
			return nil, newUsageError(fmt.Sprintf("invalid --endpoint: %v", err))
		}
		cfg.Endpoint = endpoint
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	client := dispatch.NewClient(cfg.Endpoint,
		dispatch.WithTimeout(cfg.Timeout()),
		dispatch.WithLogger(log),
	)
	return &agentRuntime{cfg: cfg, client: client, log: log}, nil
}

func (r *agentRuntime) close() {
	_ = r.log.Sync()
}

func runShell(opts shellOptions) error {
	rt, err := newRuntime(opts.endpoint)
	if err != nil {
		return err
	}
	defer rt.close()
	rt.log.Info("shell started", zap.String("endpoint", rt.cfg.Endpoint))

	m := model.NewShellModel(rt.client, model.Options{
		Endpoint: rt.cfg.Endpoint,
		Styles:   styles.DefaultStyles(),
		Copy:     clipboard.CopyText,
	})
	var programOpts []tea.ProgramOption
	if opts.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return err
	}
	rt.log.Info("shell exited")
	return nil
}
