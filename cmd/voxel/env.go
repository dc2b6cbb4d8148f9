package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samcharles93/voxel/internal/config"
	"github.com/samcharles93/voxel/internal/logger"
	"github.com/samcharles93/voxel/pkg/nrrd"
	"github.com/urfave/cli/v3"
)

// env is what every subcommand needs after the global flags and the config
// file have been merged.
type env struct {
	cfg    config.Config
	fields nrrd.FieldMap
	opts   []nrrd.Option
	log    logger.Logger
}

type envKey struct{}

// stderrIsTTY is a small seam for tests.
var stderrIsTTY = func() bool { return isTerminal(os.Stderr) }

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := configFile
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	format, err := resolveLogFormat(logFormat, cfg.LogFormat, stderrIsTTY())
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	level := logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if debug {
		level = "debug"
	}
	log := logger.Open(os.Stderr, format, logger.ParseLevel(level))

	e, err := newEnv(cfg, customFieldArgs, log)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	if cmd.IsSet("allow-duplicate-fields") {
		e.opts = append(e.opts, nrrd.WithAllowDuplicateFields(allowDuplicates))
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	ctx = logger.WithContext(ctx, log)
	return context.WithValue(ctx, envKey{}, e), nil
}

func newEnv(cfg config.Config, fieldArgs []string, log logger.Logger) (*env, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	fields, err := cfg.FieldMap()
	if err != nil {
		return nil, err
	}
	flagFields, err := parseCustomFields(fieldArgs)
	if err != nil {
		return nil, err
	}
	if len(flagFields) > 0 && fields == nil {
		fields = make(nrrd.FieldMap, len(flagFields))
	}
	for name, k := range flagFields {
		fields[name] = k
	}
	if fields != nil {
		opts = append(opts, nrrd.WithCustomFieldMap(fields))
	}
	opts = append(opts, nrrd.WithLogger(log))
	return &env{cfg: cfg, fields: fields, opts: opts, log: log}, nil
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	log := logger.FromContext(ctx)
	return &env{opts: []nrrd.Option{nrrd.WithLogger(log)}, log: log}
}

// parseCustomFields parses "name=kind" pairs. The kind follows the last '='
// so field names may contain one.
func parseCustomFields(args []string) (nrrd.FieldMap, error) {
	if len(args) == 0 {
		return nil, nil
	}
	m := make(nrrd.FieldMap, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return nil, fmt.Errorf("custom field %q: want name=kind", arg)
		}
		name := strings.TrimSpace(arg[:i])
		if name == "" {
			return nil, fmt.Errorf("custom field %q: empty name", arg)
		}
		k, err := nrrd.ParseKind(arg[i+1:])
		if err != nil {
			return nil, fmt.Errorf("custom field %q: %w", name, err)
		}
		m[name] = k
	}
	return m, nil
}

// resolveLogFormat prefers the flag, then the config file, then pretty output
// for terminals and text otherwise.
func resolveLogFormat(flag, configured string, tty bool) (logger.Format, error) {
	switch {
	case flag != "":
		return logger.ParseFormat(flag)
	case configured != "":
		return logger.ParseFormat(configured)
	case tty:
		return logger.FormatPretty, nil
	default:
		return logger.FormatText, nil
	}
}

// resolveOrder picks the flag value, then the config default, then F.
func resolveOrder(flag string, cfg config.Config) (nrrd.Order, error) {
	switch {
	case flag != "":
		return nrrd.ParseOrder(strings.ToUpper(flag))
	case cfg.IndexOrder != "":
		return nrrd.ParseOrder(cfg.IndexOrder)
	default:
		return nrrd.OrderF, nil
	}
}
