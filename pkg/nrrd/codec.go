package nrrd

import (
	"bufio"
	"io"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Encoding is the payload encoding named by the "encoding" field.
type Encoding string

// Canonical encodings. Aliases are resolved by ParseEncoding.
const (
	EncodingRaw   Encoding = "raw"
	EncodingASCII Encoding = "ascii"
	EncodingGzip  Encoding = "gzip"
	EncodingBzip2 Encoding = "bzip2"
)

var encodingAliases = map[string]Encoding{
	"raw":   EncodingRaw,
	"ascii": EncodingASCII,
	"text":  EncodingASCII,
	"txt":   EncodingASCII,
	"gzip":  EncodingGzip,
	"gz":    EncodingGzip,
	"bzip2": EncodingBzip2,
	"bz2":   EncodingBzip2,
}

// ParseEncoding resolves an encoding name, case-insensitively.
func ParseEncoding(s string) (Encoding, error) {
	if e, ok := encodingAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return e, nil
	}
	return "", formatErrorf("unsupported encoding: %q", s)
}

func (e Encoding) isText() bool { return e == EncodingASCII }

func (e Encoding) isCompressed() bool { return e == EncodingGzip || e == EncodingBzip2 }

// dataFileExt is the extension of a detached data file for e.
func (e Encoding) dataFileExt() string {
	switch e {
	case EncodingASCII:
		return ".txt"
	case EncodingGzip:
		return ".raw.gz"
	case EncodingBzip2:
		return ".raw.bz2"
	default:
		return ".raw"
	}
}

// newDecompressor wraps r in the decompressor for e. Reads from r are capped
// at chunk bytes each. A gzip payload may also be a bare zlib stream.
func (e Encoding) newDecompressor(r io.Reader, chunk int) (io.ReadCloser, error) {
	cr := &chunkReader{r: r, n: chunk}
	switch e {
	case EncodingGzip:
		br := bufio.NewReader(cr)
		if magic, err := br.Peek(2); err == nil && (magic[0] != 0x1f || magic[1] != 0x8b) {
			zr, err := zlib.NewReader(br)
			if err != nil {
				return nil, wrapFormatError(err, "zlib stream")
			}
			return zr, nil
		}
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, wrapFormatError(err, "gzip stream")
		}
		return zr, nil
	case EncodingBzip2:
		zr, err := bzip2.NewReader(cr, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, wrapFormatError(err, "bzip2 stream")
		}
		return zr, nil
	default:
		return nil, formatErrorf("encoding %q is not compressed", string(e))
	}
}

// newCompressor wraps w in the compressor for e at level.
func (e Encoding) newCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level < 1 || level > 9 {
		return nil, formatErrorf("invalid compression level %d, must be 1-9", level)
	}
	switch e {
	case EncodingGzip:
		zw, err := gzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, wrapFormatError(err, "gzip writer")
		}
		return zw, nil
	case EncodingBzip2:
		zw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
		if err != nil {
			return nil, wrapFormatError(err, "bzip2 writer")
		}
		return zw, nil
	default:
		return nil, formatErrorf("encoding %q is not compressed", string(e))
	}
}

// chunkReader caps each Read at n bytes so a decompressor never sees more
// than one chunk of input at a time.
type chunkReader struct {
	r io.Reader
	n int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.n > 0 && len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

// writeChunks writes b to w in pieces of at most n bytes.
func writeChunks(w io.Writer, b []byte, n int) error {
	for len(b) > 0 {
		k := min(len(b), n)
		if _, err := w.Write(b[:k]); err != nil {
			return err
		}
		b = b[k:]
	}
	return nil
}
