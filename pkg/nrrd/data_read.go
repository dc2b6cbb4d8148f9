package nrrd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// payload describes how the data section of a file is laid out.
type payload struct {
	dtype    DType
	elemSize int
	order    binary.ByteOrder
	encoding Encoding
	sizes    []int
	count    int
}

func (p payload) byteLen() int { return p.count * p.elemSize }

// ReadData decodes the payload described by h from r. For detached headers
// the data file is opened relative to the directory of filename and r is
// ignored. r must be positioned at the first payload byte.
func ReadData(h *Header, r io.Reader, filename string, opts ...Option) (*Array, error) {
	o := newOptions(opts)
	if err := o.order.validate(); err != nil {
		return nil, err
	}
	p, err := describePayload(h)
	if err != nil {
		return nil, err
	}

	lineSkip, byteSkip, err := skips(h)
	if err != nil {
		return nil, err
	}

	if v, _, ok := h.lookup("datafile", "data file"); ok {
		path, err := resolveDataFile(v.text(), filename)
		if err != nil {
			return nil, err
		}
		o.log.Debug("reading detached data file", "path", path)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open data file: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return nil, formatErrorf("no data source for attached payload")
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for range lineSkip {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("skip lines: %w", err)
		}
	}

	var buf []byte
	switch {
	case p.encoding.isCompressed():
		buf, err = decodeCompressed(br, p, byteSkip, o)
	default:
		if byteSkip == -1 {
			s, ok := r.(io.Seeker)
			if !ok {
				return nil, formatErrorf("byte skip of -1 needs a seekable source")
			}
			if _, err := s.Seek(-int64(p.byteLen()), io.SeekEnd); err != nil {
				return nil, fmt.Errorf("seek to payload: %w", err)
			}
			br = bufio.NewReader(r)
		} else if byteSkip > 0 {
			if _, err := io.CopyN(io.Discard, br, byteSkip); err != nil {
				if errors.Is(err, io.EOF) {
					return nil, &SizeMismatchError{Expected: int64(p.count)}
				}
				return nil, fmt.Errorf("skip bytes: %w", err)
			}
		}
		if p.encoding.isText() {
			buf, err = decodeText(br, p)
		} else {
			buf, err = decodeRaw(br, p)
		}
	}
	if err != nil {
		return nil, err
	}

	a, err := FromBytes(p.dtype, p.elemSize, shapeFromSizes(p.sizes, OrderC), OrderC, p.order, buf)
	if err != nil {
		return nil, err
	}
	if o.order == OrderF {
		a = a.Transpose()
	}
	return a, nil
}

// describePayload validates the fields needed to decode the payload.
func describePayload(h *Header) (payload, error) {
	for _, f := range requiredFields {
		if !h.Has(f) {
			return payload{}, &MissingFieldError{Field: f}
		}
	}
	dim, ok := h.Int("dimension")
	if !ok {
		return payload{}, formatErrorf("dimension must be an integer")
	}
	sizes, ok := h.Ints("sizes")
	if !ok {
		return payload{}, formatErrorf("sizes must be a list of integers")
	}
	if int(dim) != len(sizes) {
		return payload{}, formatErrorf("number of elements in sizes does not match dimension. Dimension: %d, len(sizes): %d", dim, len(sizes))
	}

	p := payload{sizes: make([]int, len(sizes)), order: binary.LittleEndian}
	for i, s := range sizes {
		if s < 0 {
			return payload{}, formatErrorf("negative size %d on axis %d", s, i)
		}
		if s > math.MaxInt {
			return payload{}, formatErrorf("size %d on axis %d is too large", s, i)
		}
		p.sizes[i] = int(s)
	}

	typeName, _ := h.Text("type")
	dt, ok := LookupDType(typeName)
	if !ok {
		return payload{}, formatErrorf("invalid data type in header: %q", typeName)
	}
	encName, _ := h.Text("encoding")
	enc, err := ParseEncoding(encName)
	if err != nil {
		return payload{}, err
	}
	p.dtype, p.encoding, p.elemSize = dt, enc, dt.Size()

	if dt == Block {
		if enc.isText() {
			return payload{}, formatErrorf("block type cannot be stored with %s encoding", enc)
		}
		v, _, ok := h.lookup("block size", "blocksize")
		if !ok {
			return payload{}, &MissingFieldError{Field: "block size"}
		}
		if v.Kind != KindInt || v.Int <= 0 || v.Int > math.MaxInt {
			return payload{}, formatErrorf("invalid block size: %s", v.text())
		}
		p.elemSize = int(v.Int)
		return p, p.checkLen()
	}

	if p.elemSize > 1 && !enc.isText() {
		endian, ok := h.Text("endian")
		if !ok {
			return payload{}, &MissingFieldError{Field: "endian"}
		}
		if p.order, err = parseEndian(endian); err != nil {
			return payload{}, err
		}
	}
	return p, p.checkLen()
}

func (p *payload) checkLen() error {
	n, _, err := elementCount(p.sizes, p.elemSize)
	p.count = n
	return err
}

func skips(h *Header) (lineSkip, byteSkip int64, err error) {
	if v, _, ok := h.lookup("lineskip", "line skip"); ok {
		lineSkip = v.Int
	}
	if lineSkip < 0 {
		return 0, 0, formatErrorf("invalid lineskip %d, allowed values are greater than or equal to 0", lineSkip)
	}
	if v, _, ok := h.lookup("byteskip", "byte skip"); ok {
		byteSkip = v.Int
	}
	if byteSkip < -1 {
		return 0, 0, formatErrorf("invalid byteskip %d, allowed values are greater than or equal to -1", byteSkip)
	}
	return lineSkip, byteSkip, nil
}

func resolveDataFile(name, headerFile string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	if headerFile == "" {
		return "", &MissingContextError{DataFile: name}
	}
	return filepath.Join(filepath.Dir(headerFile), name), nil
}

func decodeRaw(r io.Reader, p payload) ([]byte, error) {
	// The buffer grows with the bytes actually present so a header that
	// claims a huge payload cannot force one large allocation.
	need := p.byteLen()
	buf, err := io.ReadAll(io.LimitReader(r, int64(need)))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if len(buf) != need {
		return nil, &SizeMismatchError{Expected: int64(p.count), Actual: int64(len(buf) / max(p.elemSize, 1))}
	}
	return buf, nil
}

// decodeText parses whitespace separated numbers into little-endian elements.
func decodeText(r io.Reader, p payload) ([]byte, error) {
	var zero [8]byte
	buf := make([]byte, 0, min(p.byteLen(), 1<<20))
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	n := 0
	for sc.Scan() {
		if n < p.count {
			off := len(buf)
			buf = append(buf, zero[:p.elemSize]...)
			if err := parseElem(p.dtype, buf[off:], sc.Text()); err != nil {
				return nil, err
			}
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read text payload: %w", err)
	}
	if n != p.count {
		return nil, &SizeMismatchError{Expected: int64(p.count), Actual: int64(n)}
	}
	return buf, nil
}

// decodeCompressed inflates the whole stream and then applies byteSkip to
// the decompressed bytes. A skip of -1 keeps the trailing payload.
func decodeCompressed(r io.Reader, p payload, byteSkip int64, o *options) ([]byte, error) {
	zr, err := p.encoding.newDecompressor(r, o.readChunkSize)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, wrapFormatError(err, "decompress %s payload", p.encoding)
	}
	o.log.Debug("decompressed payload", "encoding", string(p.encoding), "bytes", len(data), "chunk", o.readChunkSize)

	start := min(int(byteSkip), len(data))
	if byteSkip == -1 {
		start = max(len(data)-p.byteLen(), 0)
	}
	data = data[start:]
	if len(data) != p.byteLen() {
		return nil, &SizeMismatchError{Expected: int64(p.count), Actual: int64(len(data) / p.elemSize)}
	}
	return data, nil
}
