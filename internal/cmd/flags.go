// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithaler/qrust/internal/config"
	"github.com/mithaler/qrust/internal/pipeline"
	"github.com/mithaler/qrust/internal/qr"
	"github.com/mithaler/qrust/internal/render"
)

const (
	inputFlagName  = "input"
	inputFlagShort = "i"
	inputFlagUsage = "file containing the data to encode, the standard input is read when not set"

	levelFlagName  = "error-correction"
	levelFlagShort = "e"
	levelFlagUsage = "error correction level of the code (low, medium, quartile, high)"

	outputFlagName  = "output"
	outputFlagShort = "o"
	outputFlagUsage = "file where the code is written, the standard output is used when not set"

	formatFlagName  = "format"
	formatFlagShort = "f"
	formatFlagUsage = "output format (png, svg, text, ascii), inferred from the output file extension when not set"

	scaleFlagName  = "scale"
	scaleFlagUsage = "size in pixels of a module in png and svg output"

	borderFlagName  = "border"
	borderFlagUsage = "width in modules of the quiet zone around the code"

	maskFlagName  = "mask"
	maskFlagUsage = "force the data mask pattern (0-7), -1 selects the pattern with the lowest penalty"

	minVersionFlagName  = "min-version"
	minVersionFlagUsage = "smallest symbol version (1-40) to use"

	foregroundFlagName  = "foreground"
	foregroundFlagUsage = "colour of the dark modules as #rrggbb"

	backgroundFlagName  = "background"
	backgroundFlagUsage = "colour of the light modules as #rrggbb"

	configFlagName  = "config"
	configFlagUsage = "YAML file with default values for the generation flags"

	watchFlagName  = "watch"
	watchFlagUsage = "keep running and regenerate the code every time the input file changes"
)

// generateFlags collects the CLI options of the generate command.
type generateFlags struct {
	input      string
	level      string
	output     string
	format     string
	scale      int
	border     int
	mask       int
	minVersion int
	foreground string
	background string
	configPath string
	watch      bool
}

// addFlags registers the CLI flags on cmd.
func (f *generateFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, inputFlagName, inputFlagShort, "", inputFlagUsage)
	flags.StringVarP(&f.level, levelFlagName, levelFlagShort, qr.DefaultLevel.String(), levelFlagUsage)
	flags.StringVarP(&f.output, outputFlagName, outputFlagShort, "", outputFlagUsage)
	flags.StringVarP(&f.format, formatFlagName, formatFlagShort, "", formatFlagUsage)
	flags.IntVar(&f.scale, scaleFlagName, render.DefaultScale, scaleFlagUsage)
	flags.IntVar(&f.border, borderFlagName, render.DefaultBorder, borderFlagUsage)
	flags.IntVar(&f.mask, maskFlagName, qr.AutoMask, maskFlagUsage)
	flags.IntVar(&f.minVersion, minVersionFlagName, qr.MinVersion, minVersionFlagUsage)
	flags.StringVar(&f.foreground, foregroundFlagName, render.DefaultForeground, foregroundFlagUsage)
	flags.StringVar(&f.background, backgroundFlagName, render.DefaultBackground, backgroundFlagUsage)
	flags.StringVar(&f.configPath, configFlagName, "", configFlagUsage)
	flags.BoolVar(&f.watch, watchFlagName, false, watchFlagUsage)

	_ = cmd.MarkFlagFilename(inputFlagName)
	_ = cmd.MarkFlagFilename(outputFlagName, "png", "svg", "txt")
	_ = cmd.MarkFlagFilename(configFlagName, "yaml", "yml")
	_ = cmd.RegisterFlagCompletionFunc(levelFlagName, levelCompletion)
	_ = cmd.RegisterFlagCompletionFunc(formatFlagName, formatCompletion)
}

// toOptions builds an options instance from the parsed flags.
// Values come from the flags set on the command line first, then from the defaults file, and
// finally from the flag defaults.
func (f *generateFlags) toOptions(cmd *cobra.Command) (*generateOptions, error) {
	defaults := new(config.Defaults)
	if f.configPath != "" {
		var err error
		if defaults, err = config.NewDefaultsFromPath(f.configPath); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	encoder := pipeline.DefaultEncoder()
	encoder.Mask = f.mask
	encoder.Options = render.Options{
		Scale:      f.scale,
		Border:     f.border,
		Foreground: f.foreground,
		Background: f.background,
	}

	fileOptions := defaults.RenderOptions(encoder.Options)
	if !changed(scaleFlagName) {
		encoder.Options.Scale = fileOptions.Scale
	}
	if !changed(borderFlagName) {
		encoder.Options.Border = fileOptions.Border
	}
	if !changed(foregroundFlagName) {
		encoder.Options.Foreground = fileOptions.Foreground
	}
	if !changed(backgroundFlagName) {
		encoder.Options.Background = fileOptions.Background
	}

	encoder.MinVersion = f.minVersion
	if !changed(minVersionFlagName) && defaults.MinVersion != nil {
		encoder.MinVersion = *defaults.MinVersion
	}

	var err error
	switch {
	case !changed(levelFlagName) && defaults.Level != nil:
		encoder.Level = *defaults.Level
	default:
		if encoder.Level, err = qr.ParseLevel(f.level); err != nil {
			return nil, err
		}
	}

	if encoder.Format, err = f.resolveFormat(changed(formatFlagName), defaults); err != nil {
		return nil, err
	}

	coloursSet := changed(foregroundFlagName) || changed(backgroundFlagName) ||
		defaults.Foreground != "" || defaults.Background != ""
	if f.output == "" && isTerminalFormat(encoder.Format) && !coloursSet {
		// terminals usually have a dark background, so print the light modules
		encoder.Options.Foreground = render.DefaultBackground
		encoder.Options.Background = render.DefaultForeground
	}

	return &generateOptions{
		input:   f.input,
		output:  f.output,
		watch:   f.watch,
		encoder: encoder,
		stdin:   cmd.InOrStdin(),
		stdout:  cmd.OutOrStdout(),
	}, nil
}

func isTerminalFormat(format render.Format) bool {
	return format == render.Text || format == render.ASCII
}

// resolveFormat picks the output format: an explicit flag wins over the output file
// extension, which wins over the defaults file. Standard output defaults to text.
func (f *generateFlags) resolveFormat(explicit bool, defaults *config.Defaults) (render.Format, error) {
	if explicit {
		return render.ParseFormat(f.format)
	}

	if f.output != "" {
		if format, ok := render.FormatFromPath(f.output); ok {
			return format, nil
		}
	}

	if defaults.Format != "" {
		return defaults.Format, nil
	}

	if f.output != "" {
		return "", fmt.Errorf("%w: %w of %q, set it with --%s", errInvalidFlagValue, errUnknownOutputFormat, f.output, formatFlagName)
	}
	return render.Text, nil
}
