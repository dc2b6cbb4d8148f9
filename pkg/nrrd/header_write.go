package nrrd

import (
	"bufio"
	"fmt"
	"io"
	"slices"
)

// Generator is named in the comment block of every written header.
const Generator = "voxel"

// WriteHeader writes h in canonical field order, followed by the fields the
// format does not order using the custom ":=" separator, and a terminating
// blank line.
func WriteHeader(w io.Writer, h *Header, opts ...Option) error {
	return writeHeader(w, h, newOptions(opts))
}

func writeHeader(w io.Writer, h *Header, o *options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", magicLine)
	fmt.Fprintf(bw, "# This NRRD file was generated by %s\n", Generator)
	fmt.Fprintf(bw, "# on %s(GMT).\n", o.now().UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(bw, "# Complete NRRD file format specification at:\n")
	fmt.Fprintf(bw, "# http://teem.sourceforge.net/nrrd/format.html\n")

	for _, name := range fieldOrder {
		v, ok := h.Get(name)
		if !ok {
			continue
		}
		text, err := formatField(name, v, o)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s: %s\n", name, text)
	}
	for _, f := range h.fields {
		if slices.Contains(fieldOrder, f.name) {
			continue
		}
		text, err := formatField(f.name, f.value, o)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s:=%s\n", f.name, text)
	}
	bw.WriteString("\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func formatField(name string, v Value, o *options) (string, error) {
	text, err := FormatValue(v, ResolveKind(name, o.customFields))
	if err != nil {
		return "", fmt.Errorf("nrrd: field %q: %w", name, err)
	}
	return text, nil
}
