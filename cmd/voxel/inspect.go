package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/samcharles93/voxel/pkg/nrrd"
	"github.com/urfave/cli/v3"
)

// summary is what inspect reports about one file.
type summary struct {
	File     string       `json:"file"`
	Header   *nrrd.Header `json:"header"`
	Elements int64        `json:"elements"`
	Bytes    int64        `json:"bytes,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
	Stats    *dataStats   `json:"stats,omitempty"`
	Shape    []int        `json:"shape,omitempty"`
	Order    string       `json:"order,omitempty"`
}

// dataStats is nrrd.Stats with non-finite values dropped so it always
// encodes as JSON.
type dataStats struct {
	Count int      `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Mean  *float64 `json:"mean"`
	NaNs  int      `json:"nans"`
}

func newDataStats(st nrrd.Stats) *dataStats {
	return &dataStats{
		Count: st.Count,
		Min:   finite(st.Min),
		Max:   finite(st.Max),
		Mean:  finite(st.Mean),
		NaNs:  st.NaNs,
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatStat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func inspectCmd() *cli.Command {
	var (
		asJSON   bool
		withData bool
		order    string
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header of an NRRD file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "data", Usage: "also decode the payload and report min, max and mean", Destination: &withData},
			orderFlag(&order),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return cli.Exit("error: inspect takes exactly one file", 1)
			}
			e := envFromContext(ctx)
			path := cmd.Args().First()

			h, _, err := nrrd.ReadHeaderFile(path, e.opts...)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: read header: %v", err), 1)
			}
			sum := summarize(path, h)

			if withData {
				o, err := resolveOrder(order, e.cfg)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				a, _, err := nrrd.Read(path, append(slices.Clone(e.opts), nrrd.WithIndexOrder(o))...)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: read data: %v", err), 1)
				}
				sum.Stats = newDataStats(a.Stats())
				sum.Shape = a.Shape()
				sum.Order = string(o)
			}

			if asJSON {
				return printSummaryJSON(os.Stdout, sum)
			}
			return printSummary(os.Stdout, sum)
		},
	}
}

// summarize derives the element count and payload size a header describes.
// Either is left zero when the header does not determine it.
func summarize(path string, h *nrrd.Header) summary {
	sum := summary{File: path, Header: h, Warnings: h.Warnings}
	sizes, ok := h.Ints("sizes")
	if !ok {
		return sum
	}
	sum.Elements = 1
	for _, s := range sizes {
		sum.Elements *= s
	}

	name, _ := h.Text("type")
	dt, ok := nrrd.LookupDType(name)
	if !ok {
		return sum
	}
	elem := int64(dt.Size())
	if dt == nrrd.Block {
		elem, ok = h.Int("block size")
		if !ok {
			elem, _ = h.Int("blocksize")
		}
	}
	sum.Bytes = sum.Elements * elem
	return sum
}

func printSummary(w io.Writer, sum summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file:\t%s\n", sum.File)
	for _, name := range sum.Header.Fields() {
		v, _ := sum.Header.Get(name)
		text, err := nrrd.FormatValue(v, v.Kind)
		if err != nil {
			return fmt.Errorf("format %q: %w", name, err)
		}
		fmt.Fprintf(tw, "%s:\t%s\n", name, text)
	}
	fmt.Fprintf(tw, "elements:\t%d\n", sum.Elements)
	if sum.Bytes > 0 {
		fmt.Fprintf(tw, "bytes:\t%d\n", sum.Bytes)
	}
	if sum.Stats != nil {
		fmt.Fprintf(tw, "shape (%s):\t%v\n", sum.Order, sum.Shape)
		fmt.Fprintf(tw, "min:\t%s\n", formatStat(sum.Stats.Min))
		fmt.Fprintf(tw, "max:\t%s\n", formatStat(sum.Stats.Max))
		fmt.Fprintf(tw, "mean:\t%s\n", formatStat(sum.Stats.Mean))
		if sum.Stats.NaNs > 0 {
			fmt.Fprintf(tw, "nans:\t%d\n", sum.Stats.NaNs)
		}
	}
	for _, warn := range sum.Warnings {
		fmt.Fprintf(tw, "warning:\t%s\n", warn)
	}
	return tw.Flush()
}

func printSummaryJSON(w io.Writer, sum summary) error {
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
