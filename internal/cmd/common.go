// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

var (
	// errInvalidFlagValue marks errors caused by a wrong combination or value of flags.
	errInvalidFlagValue = errors.New("invalid flag value")
	// errWatchWithoutInput is returned when watch mode has no file to watch.
	errWatchWithoutInput = errors.New("--watch requires an input file")
	// errUnknownOutputFormat is returned when the output path does not tell which format to use.
	errUnknownOutputFormat = errors.New("cannot infer the output format")
)

// reportedError wraps an error already printed on the command error stream.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// Reported tells if err has already been printed for the user by a command.
func Reported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// UsageError prints err followed by the command usage.
func UsageError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	_ = cmd.Usage() // do not check error as we cannot do much about it
	return &reportedError{err: err}
}

// handleError will do custom print error handling based on the type of error received.
// Errors caused by the user invocation are followed by the command usage.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errInvalidFlagValue),
		errors.Is(err, qr.ErrUnknownLevel),
		errors.Is(err, render.ErrUnknownFormat):
		return UsageError(cmd, err)
	default:
		cmd.PrintErrln(err)
		return &reportedError{err: err}
	}
}

// noArgs rejects positional arguments.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return UsageError(cmd, err)
	}

	return nil
}

// levelCompletion completes the values of the error correction flag.
func levelCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	comps := make([]string, 0, len(qr.AllLevels))
	for _, level := range qr.AllLevels {
		name := level.String()
		if strings.HasPrefix(name, strings.ToLower(toComplete)) {
			comps = append(comps, name)
		}
	}

	return comps, cobra.ShellCompDirectiveNoFileComp
}

// formatCompletion completes the values of the format flag.
func formatCompletion(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	comps := make([]string, 0, len(render.AllFormats))
	for _, format := range render.AllFormats {
		if strings.HasPrefix(format.String(), strings.ToLower(toComplete)) {
			comps = append(comps, format.String())
		}
	}

	return comps, cobra.ShellCompDirectiveNoFileComp
}
