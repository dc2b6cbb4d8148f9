package main

import "github.com/urfave/cli/v3"

var (
	configFile      string
	logLevel        string
	logFormat       string
	debug           bool
	allowDuplicates bool
	customFieldArgs []string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default $VOXEL_CONFIG or ~/.config/voxel/config.yaml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text); pretty when stderr is a terminal",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.BoolFlag{
			Name:        "allow-duplicate-fields",
			Usage:       "keep the last value of a repeated header field instead of failing",
			Destination: &allowDuplicates,
		},
		&cli.StringSliceFlag{
			Name:        "custom-field",
			Usage:       "parse a non-standard field as the given kind, e.g. \"my field=int list\"",
			Destination: &customFieldArgs,
		},
	}
}

func orderFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "order",
		Usage:       "index order of the in-memory array (F or C)",
		Destination: dst,
	}
}
