// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/shayne/yargs"
	"golang.org/x/term"

	"github.com/shayne/agentcmd/internal/config"
	"github.com/shayne/agentcmd/internal/tui"
)

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		reportCLIError(err)
		os.Exit(1)
	}
}

type usageError struct {
	message string
}

func (e usageError) Error() string {
	return e.message
}

type silentError struct {
	err error
}

func (e silentError) Error() string {
	return e.err.Error()
}

func (e silentError) Unwrap() error {
	return e.err
}

func reportCLIError(err error) {
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.message)
		return
	}
	var quietErr silentError
	if errors.As(err, &quietErr) {
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func newUsageError(message string) error {
	return usageError{message: message}
}

func newSilentError(err error) error {
	if err == nil {
		return nil
	}
	return silentError{err: err}
}

var (
	version = "dev"
	commit  = ""
)

func runCLI(argv []string) error {
	if shouldStartShell(argv) {
		return runShell(shellOptions{})
	}
	args := normalizeArgs(argv)
	handlers := map[string]yargs.SubcommandHandler{
		"shell":   handleShellCommand,
		"send":    handleSendCommand,
		"config":  handleConfigCommand,
		"setup":   handleSetupCommand,
		"version": handleVersionCommand,
	}
	if err := yargs.RunSubcommands(context.Background(), args, helpConfig, struct{}{}, handlers); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return nil
		}
		return err
	}
	return nil
}

type shellFlags struct {
	Endpoint  string `flag:"endpoint" help:"agent endpoint URL (overrides config)"`
	AltScreen bool   `flag:"alt-screen" help:"run the shell in the alternate screen"`
}

type sendFlags struct {
	Endpoint string `flag:"endpoint" help:"agent endpoint URL (overrides config)"`
	Quiet    bool   `flag:"quiet" short:"q" help:"do not show a spinner while waiting"`
}

type configFlags struct {
	Endpoint string `flag:"endpoint" help:"set the agent endpoint URL"`
	Timeout  int    `flag:"timeout" help:"set the request timeout in seconds"`
	LogFile  string `flag:"log-file" help:"set the log file path (use \"default\" for the state dir)"`
	LogLevel string `flag:"log-level" help:"set the log level (debug, info, warn, error)"`
	Reset    bool   `flag:"reset" help:"remove the config file and return to defaults"`
}

var helpConfig = yargs.HelpConfig{
	Command: yargs.CommandInfo{
		Name:        "agentcmd",
		Description: "Send commands to a remote agent from the terminal",
		Examples: []string{
			"agentcmd",
			"agentcmd send Text John saying hello",
			"agentcmd send --endpoint https://agent.example.com/execute list my open tasks",
			"agentcmd config --endpoint http://localhost:10000/execute",
			"agentcmd setup",
			"agentcmd --version",
		},
	},
	SubCommands: map[string]yargs.SubCommandInfo{
		"shell": {
			Name:        "shell",
			Description: "Start the interactive command shell",
		},
		"send": {
			Name:        "send",
			Description: "Send one command and print the agent's response",
			Examples: []string{
				"agentcmd send Text John saying hello",
				"echo 'summarize my inbox' | agentcmd send -",
			},
		},
		"config": {
			Name:        "config",
			Description: "Show or update the local configuration",
		},
		"setup": {
			Name:        "setup",
			Description: "Interactively configure the agent endpoint",
		},
		"version": {
			Name:        "version",
			Description: "Show CLI version",
		},
	},
}

func shouldStartShell(argv []string) bool {
	if os.Getenv("AGENTCMD_NO_SHELL") != "" {
		return false
	}
	if len(argv) > 0 {
		return false
	}
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return stdinTTY && stdoutTTY
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"--help"}
	}
	if args[0] == "--version" {
		return append([]string{"version"}, args[1:]...)
	}
	if args[0] == "help" {
		return rewriteHelpArgs(args[1:])
	}
	return args
}

func rewriteHelpArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"--help"}
	}
	helpFlag := "--help"
	for _, arg := range args {
		if arg == "--help-llm" {
			helpFlag = "--help-llm"
			break
		}
	}
	if isHelpFlag(args[0]) || args[0] == "--help-llm" {
		return []string{helpFlag}
	}
	if isKnownCommand(args[0]) {
		return []string{args[0], helpFlag}
	}
	return []string{helpFlag}
}

func isKnownCommand(value string) bool {
	switch value {
	case "shell", "send", "config", "setup", "version":
		return true
	default:
		return false
	}
}

func isHelpFlag(value string) bool {
	switch strings.TrimSpace(value) {
	case "-h", "--help", "--help-llm":
		return true
	default:
		return false
	}
}

func handleShellCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, shellFlags, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive shell requires a TTY (use agentcmd send instead)")
	}
	return runShell(shellOptions{
		endpoint:  result.SubCommandFlags.Endpoint,
		altScreen: result.SubCommandFlags.AltScreen,
	})
}

func handleVersionCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, versionString())
	return nil
}

func handleConfigCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, configFlags, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return applyConfigFlags(os.Stdout, result.SubCommandFlags)
}

func applyConfigFlags(out io.Writer, flags configFlags) error {
	if flags.Reset {
		if err := config.RemoveConfigFile(); err != nil {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Fprintln(out, "config reset to defaults")
		return nil
	}

	cfg, path, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	updated := false
	if endpoint := strings.TrimSpace(flags.Endpoint); endpoint != "" {
		if err := config.ValidateEndpoint(endpoint); err != nil {
			return newUsageError(fmt.Sprintf("invalid --endpoint: %v", err))
		}
		cfg.Endpoint = endpoint
		updated = true
	}
	if flags.Timeout != 0 {
		if flags.Timeout < 0 {
			return newUsageError("--timeout must be a positive number of seconds")
		}
		cfg.TimeoutSeconds = flags.Timeout
		updated = true
	}
	if logFile := strings.TrimSpace(flags.LogFile); logFile != "" {
		if logFile == "default" {
			logFile, err = config.DefaultLogPath()
			if err != nil {
				return fmt.Errorf("failed to resolve log path: %w", err)
			}
		}
		cfg.LogFile = logFile
		updated = true
	}
	if level := strings.TrimSpace(flags.LogLevel); level != "" {
		if err := config.ValidateLogLevel(level); err != nil {
			return newUsageError(fmt.Sprintf("invalid --log-level: %v", err))
		}
		cfg.LogLevel = level
		updated = true
	}
	if !updated {
		return showConfig(out, cfg, path)
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "wrote config to %s\n", path)
	return nil
}

func showConfig(out io.Writer, cfg config.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	fmt.Fprintf(out, "Config path: %s\n%s\n", path, string(data))
	return nil
}

func handleSetupCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	return runSetup(os.Stdin, os.Stdout)
}

func runSetup(in io.Reader, out io.Writer) error {
	cfg, path, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	endpoint, err := tui.PromptEndpoint(in, out, cfg.Endpoint, config.ValidateEndpoint)
	if errors.Is(err, huh.ErrUserAborted) {
		return newSilentError(err)
	}
	if err != nil {
		return fmt.Errorf("failed to read endpoint: %w", err)
	}
	cfg.Endpoint = endpoint
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(out, "wrote config to %s\n", path)
	return nil
}

func versionString() string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		trimmed = "dev"
	}
	if strings.TrimSpace(commit) == "" {
		return trimmed
	}
	return fmt.Sprintf("%s (%s)", trimmed, strings.TrimSpace(commit))
}
