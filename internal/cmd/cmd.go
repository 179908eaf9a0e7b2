// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	generateCmdUsage = "generate"
	generateCmdShort = "encode data as a QR code"
	generateCmdLong  = `Encode data as a QR code.
	The data is read from the input file or from the standard input, without the
	surrounding whitespace. The smallest symbol that fits the data at the requested
	error correction level is used, and the code is written to the output file in
	the format matching its extension or to the standard output as text.

	Codes printed as text on the standard output are drawn for a dark terminal,
	set --foreground and --background to print them for a light one.

	Default values for the generation flags can be stored in a YAML file passed
	with --config, flags set on the command line always take precedence.`

	generateCmdExample = `# Print the code for a URL on the terminal
	echo "https://example.com" | qrgen generate

	# Print the code on a terminal with a light background
	echo "https://example.com" | qrgen generate --foreground "#000000" --background "#ffffff"

	# Write a high error correction PNG with bigger modules
	qrgen generate -i data.txt -e high -o code.png --scale 8

	# Regenerate an SVG every time the input file changes
	qrgen generate -i data.txt -o code.svg --watch`

	serveCmdUsage = "serve"
	serveCmdShort = "start the HTTP server generating QR codes on demand"
	serveCmdLong  = `Start the HTTP server generating QR codes on demand.
	The server is configured through environment variables:
	- HTTP_HOST and HTTP_PORT: the listening address, default :3000
	- MAX_PAYLOAD_BYTES: the longest payload accepted, default 4096
	- DEFAULT_LEVEL and DEFAULT_FORMAT: used when a request does not set them

	Codes are served by GET /api/qr?data=... and POST /api/qr with the data as body.`

	serveCmdExample = `# Start the server on port 8080
	HTTP_PORT=8080 qrgen serve`
)

// GenerateCmd returns the Cobra command that encodes data as a QR code.
func GenerateCmd() *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:     generateCmdUsage,
		Short:   heredoc.Doc(generateCmdShort),
		Long:    heredoc.Doc(generateCmdLong),
		Example: heredoc.Doc(generateCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions(cmd)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// ServeCmd returns the Cobra command that starts the HTTP server.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := newServeOptions()
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	return cmd
}
