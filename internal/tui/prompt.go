// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// PromptEndpoint asks for the agent endpoint URL, offering current as the
// default. validate rejects unusable values before they are returned.
func PromptEndpoint(in io.Reader, out io.Writer, current string, validate func(string) error) (string, error) {
	return promptInputWithDefault(in, out,
		"Agent endpoint",
		"Commands are sent as JSON POST requests to this URL.",
		"https://agent.example.com/execute",
		current,
		validate,
	)
}

func promptInputWithDefault(in io.Reader, out io.Writer, title, description, placeholder, defaultValue string, validate func(string) error) (string, error) {
	if useDialogPrompts(in, out) {
		return promptInputForm(in, out, title, description, placeholder, defaultValue, validate)
	}
	reader := bufio.NewReader(in)
	printPromptHeader(out, title, description, defaultValue)
	for {
		fmt.Fprint(out, "> ")
		line, err := readLine(reader)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && defaultValue != "" {
			line = defaultValue
		}
		if validate != nil {
			if err := validate(line); err != nil {
				fmt.Fprintln(out, err.Error())
				continue
			}
		}
		return line, nil
	}
}

func promptInputForm(in io.Reader, out io.Writer, title, description, placeholder, defaultValue string, validate func(string) error) (string, error) {
	value := defaultValue
	field := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(placeholder).
		Prompt("> ").
		Value(&value)
	if validate != nil {
		field = field.Validate(func(input string) error {
			return validate(strings.TrimSpace(input))
		})
	}
	form := huh.NewForm(huh.NewGroup(field))
	form.WithInput(in).WithOutput(out).WithTheme(promptTheme())
	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func useDialogPrompts(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(inFile.Fd())) {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return false
	}
	return true
}

func printPromptHeader(out io.Writer, title, description, defaultValue string) {
	if strings.TrimSpace(title) != "" {
		fmt.Fprintln(out, title)
	}
	if strings.TrimSpace(description) != "" {
		fmt.Fprintln(out, description)
	}
	if strings.TrimSpace(defaultValue) != "" {
		fmt.Fprintf(out, "(enter keeps %s)\n", defaultValue)
	}
}

// readLine returns io.EOF only when the reader is exhausted with no data.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
