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
	"os/signal"
	"strings"

	"github.com/shayne/yargs"
	"golang.org/x/term"

	"github.com/shayne/agentcmd/internal/dispatch"
	"github.com/shayne/agentcmd/internal/display"
	"github.com/shayne/agentcmd/internal/tui"
)

type dispatcher interface {
	Dispatch(ctx context.Context, cmd dispatch.Command) (dispatch.Result, error)
}

type sendArgs struct {
	Text []string `pos:"0+" help:"command text, or - for stdin"`
}

func handleSendCommand(ctx context.Context, args []string) error {
	flags, words, err := parseSendArgs(args)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	text, err := sendText(words, os.Stdin)
	if err != nil {
		return err
	}

	rt, err := newRuntime(flags.Endpoint)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	showSpinner := !flags.Quiet && term.IsTerminal(int(os.Stderr.Fd()))
	return runSend(ctx, rt.client, text, os.Stdout, os.Stderr, showSpinner)
}

// parseSendArgs returns the send flags and the command words. Words after
// "--" are kept verbatim so text may start with a dash.
func parseSendArgs(args []string) (sendFlags, []string, error) {
	result, err := yargs.ParseAndHandleHelp[struct{}, sendFlags, sendArgs](args, helpConfig)
	if err != nil {
		return sendFlags{}, nil, err
	}
	words := append([]string{}, result.Args.Text...)
	words = append(words, result.RemainingArgs...)
	return result.SubCommandFlags, words, nil
}

// sendText joins the words into one command. A lone "-" reads the command
// from in.
func sendText(words []string, in io.Reader) (string, error) {
	if len(words) == 1 && words[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if len(words) == 0 {
		return "", newUsageError("Usage: agentcmd send <text...>")
	}
	return strings.Join(words, " "), nil
}

// runSend drives one dispatch through a display controller and prints the
// resolved text. Failures go to errOut and are reported as silent errors so
// the process exits non-zero without printing twice.
func runSend(ctx context.Context, backend dispatcher, raw string, out, errOut io.Writer, showSpinner bool) error {
	ctrl := display.NewController()
	cmd, err := dispatch.NewCommand(raw)
	if errors.Is(err, dispatch.ErrEmptyCommand) {
		ctrl.SetWarning()
		fmt.Fprintln(errOut, ctrl.Text())
		return newSilentError(err)
	}
	if err != nil {
		fmt.Fprintln(errOut, display.ErrorText(err))
		return newSilentError(err)
	}

	gen := ctrl.SetPending()
	var spin *tui.Spinner
	if showSpinner {
		spin = tui.NewSpinner(errOut)
		spin.Start(ctrl.Text())
	}
	result, err := backend.Dispatch(ctx, cmd)
	if spin != nil {
		spin.Stop(true)
	}
	if err != nil {
		ctrl.SetError(gen, err)
		fmt.Fprintln(errOut, ctrl.Text())
		return newSilentError(err)
	}
	ctrl.SetResult(gen, result.Pretty())
	fmt.Fprintln(out, ctrl.Text())
	return nil
}
