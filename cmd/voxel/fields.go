package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/samcharles93/voxel/pkg/nrrd"
	"github.com/urfave/cli/v3"
)

func fieldsCmd() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "List the header fields voxel understands and how their values are parsed",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e := envFromContext(ctx)
			return writeFieldTable(os.Stdout, nrrd.BuiltinFields(), e.fields)
		},
	}
}

func writeFieldTable(w io.Writer, builtin, custom nrrd.FieldMap) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tKIND\tSOURCE")
	for _, name := range slices.Sorted(maps.Keys(builtin)) {
		fmt.Fprintf(tw, "%s\t%s\tbuiltin\n", name, builtin[name])
	}
	for _, name := range slices.Sorted(maps.Keys(custom)) {
		if _, ok := builtin[name]; ok {
			// Builtin kinds always win when parsing.
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\tcustom\n", name, custom[name])
	}
	return tw.Flush()
}
