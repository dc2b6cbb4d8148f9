package nrrd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadHeader parses an NRRD header from r and returns it with the number of
// bytes the header occupies, blank terminator line included.
//
// When r is a *bufio.Reader it is read directly and is left positioned at the
// first payload byte. Any other reader is wrapped, so payload bytes may be
// buffered past the returned offset; seek to the offset before reading data.
func ReadHeader(r io.Reader, opts ...Option) (*Header, int64, error) {
	o := newOptions(opts)
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return readHeader(br, o)
}

// ReadHeaderFile parses the header of the file at path.
func ReadHeaderFile(path string, opts ...Option) (*Header, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open header: %w", err)
	}
	defer f.Close()
	return ReadHeader(f, opts...)
}

func readHeader(br *bufio.Reader, o *options) (*Header, int64, error) {
	var consumed int64

	line, err := br.ReadString('\n')
	consumed += int64(len(line))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, consumed, fmt.Errorf("read magic line: %w", err)
	}
	if err := checkMagic(strings.TrimRight(line, " \t\r\n")); err != nil {
		return nil, consumed, err
	}

	h := NewHeader()
	for {
		line, err := br.ReadString('\n')
		consumed += int64(len(line))
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, consumed, fmt.Errorf("read header line: %w", err)
		}
		eof := err != nil

		line = strings.TrimRight(line, " \t\r\n")
		switch {
		case line == "":
			return h, consumed, nil
		case strings.HasPrefix(line, "#"):
		default:
			if err := parseHeaderLine(h, line, o); err != nil {
				return nil, consumed, err
			}
		}
		if eof {
			return h, consumed, nil
		}
	}
}

func checkMagic(line string) error {
	if !strings.HasPrefix(line, Magic) {
		return formatErrorf("invalid NRRD magic line: %q", line)
	}
	version, err := strconv.Atoi(line[len(Magic):])
	if err != nil {
		return wrapFormatError(err, "invalid NRRD magic line: %q", line)
	}
	if version > MaxVersion {
		return formatErrorf("unsupported NRRD file version (version: %d), this library only supports up to version %d", version, MaxVersion)
	}
	return nil
}

// parseHeaderLine handles "field: value" and the custom "field:= value".
func parseHeaderLine(h *Header, line string, o *options) error {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return formatErrorf("invalid header line: %q", line)
	}
	name := strings.TrimSpace(line[:i])
	text := strings.TrimSpace(strings.TrimPrefix(line[i+1:], "="))

	if h.Has(name) {
		if !o.allowDuplicates {
			return &DuplicateFieldError{Field: name}
		}
		msg := fmt.Sprintf("duplicate header field %q, keeping the last value", name)
		h.Warnings = append(h.Warnings, msg)
		o.log.Warn("duplicate header field", "field", name)
	}

	v, err := ParseValue(text, ResolveKind(name, o.customFields))
	if err != nil {
		return fmt.Errorf("nrrd: field %q: %w", name, err)
	}
	h.Set(name, v)
	return nil
}
