package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/samcharles93/voxel/pkg/nrrd"
	"github.com/urfave/cli/v3"
)

func convertCmd() *cli.Command {
	var (
		encoding     string
		detached     bool
		absolutePath bool
		level        int
		order        string
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-encode an NRRD file, optionally splitting header and data",
		ArgsUsage: "<in> <out>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "encoding",
				Aliases:     []string{"e"},
				Usage:       "output encoding (raw, ascii, gzip, bzip2); default: config encoding, else the input's",
				Destination: &encoding,
			},
			&cli.BoolFlag{
				Name:        "detached",
				Usage:       "write a .nrrd output as a .nhdr header next to the data file",
				Destination: &detached,
			},
			&cli.BoolFlag{
				Name:        "absolute-data-path",
				Usage:       "record the data file of a detached header as an absolute path",
				Destination: &absolutePath,
			},
			&cli.IntFlag{
				Name:        "level",
				Usage:       "compression level for gzip and bzip2 (1-9)",
				Value:       nrrd.DefaultCompressionLevel,
				Destination: &level,
			},
			orderFlag(&order),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return cli.Exit("error: convert takes an input and an output file", 1)
			}
			e := envFromContext(ctx)
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			o, err := resolveOrder(order, e.cfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			readOpts := append(slices.Clone(e.opts), nrrd.WithIndexOrder(o))
			a, h, err := nrrd.Read(in, readOpts...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read %s: %v", in, err), 1)
			}

			enc := encoding
			if enc == "" {
				enc = e.cfg.Encoding
			}
			if enc != "" {
				parsed, err := nrrd.ParseEncoding(enc)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				h.Set("encoding", nrrd.StringValue(string(parsed)))
			}
			// The output names its own data file.
			h.Delete("data file")
			h.Delete("datafile")

			writeOpts := append(readOpts,
				nrrd.WithDetachedHeader(detached),
				nrrd.WithRelativeDataPath(!absolutePath),
			)
			if cmd.IsSet("level") || e.cfg.CompressionLevel == nil {
				writeOpts = append(writeOpts, nrrd.WithCompressionLevel(level))
			}
			if err := nrrd.Write(out, a, h, writeOpts...); err != nil {
				return cli.Exit(fmt.Sprintf("error: write %s: %v", out, err), 1)
			}
			enc, _ = h.Text("encoding")
			e.log.Info("converted volume", "in", in, "out", out, "encoding", enc, "shape", a.Shape())
			return nil
		},
	}
}
