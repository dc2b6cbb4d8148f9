package nrrd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Write stores a at path with the fields of h. A nil h writes the derived
// fields only.
//
// The fields describing a (type, dimension, sizes, endian, block size) are
// derived from the array and overwrite the values in h, which is modified in
// place. The default encoding is gzip.
//
// A .nhdr path writes a detached header with the payload in a data file
// named after the encoding unless h names one. A .nrrd path with
// WithDetachedHeader(true) writes the payload to path and the header to the
// matching .nhdr path. Anything else writes a single attached file.
func Write(path string, a *Array, h *Header, opts ...Option) error {
	o := newOptions(opts)
	if err := o.order.validate(); err != nil {
		return err
	}
	if o.compressionLevel < 1 || o.compressionLevel > 9 {
		return formatErrorf("invalid compression level %d, must be 1-9", o.compressionLevel)
	}
	if h == nil {
		h = NewHeader()
	}

	enc, err := deriveFields(h, a, o)
	if err != nil {
		return err
	}

	headerPath, dataPath, err := planFiles(path, h, enc, o)
	if err != nil {
		return err
	}
	o.log.Debug("writing nrrd", "header", headerPath, "data", dataPath, "encoding", string(enc))

	bo := a.ByteOrder()
	if dataPath == "" {
		return replaceFile(headerPath, func(w io.Writer) error {
			if err := writeHeader(w, h, o); err != nil {
				return err
			}
			return writeData(w, a, enc, bo, o)
		})
	}
	if err := replaceFile(dataPath, func(w io.Writer) error {
		return writeData(w, a, enc, bo, o)
	}); err != nil {
		return err
	}
	return replaceFile(headerPath, func(w io.Writer) error {
		return writeHeader(w, h, o)
	})
}

// deriveFields sets the fields that describe the array and returns the
// payload encoding.
func deriveFields(h *Header, a *Array, o *options) (Encoding, error) {
	if !h.Has("encoding") {
		h.Set("encoding", StringValue(string(EncodingGzip)))
	}
	encName, _ := h.Text("encoding")
	enc, err := ParseEncoding(encName)
	if err != nil {
		return "", err
	}

	h.Set("type", StringValue(a.DType().Name()))
	h.Delete("blocksize")
	if a.DType() == Block {
		if enc.isText() {
			return "", formatErrorf("block type cannot be stored with %s encoding", enc)
		}
		h.Set("block size", IntValue(int64(a.ElemSize())))
	} else {
		h.Delete("block size")
	}

	if a.ElemSize() > 1 && a.DType() != Block && !enc.isText() {
		h.Set("endian", StringValue(endianName(a.ByteOrder())))
	} else {
		h.Delete("endian")
	}

	if h.Has("space") {
		h.Delete("space dimension")
	}

	h.Set("dimension", IntValue(int64(a.NDim())))
	h.Set("sizes", IntListValue(sizesFromShape(a.shape, o.order)...))

	// The payload is written densely from the first byte.
	for _, f := range []string{"lineskip", "line skip", "byteskip", "byte skip"} {
		h.Delete(f)
	}
	return enc, nil
}

// planFiles picks the header and data file paths. An empty data path means
// the payload is attached to the header.
func planFiles(path string, h *Header, enc Encoding, o *options) (headerPath, dataPath string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	base := strings.TrimSuffix(path, filepath.Ext(path))

	switch {
	case ext == ".nhdr":
		if v, _, ok := h.lookup("data file", "datafile"); ok {
			dataPath, err = resolveDataFile(v.text(), path)
			if err != nil {
				return "", "", err
			}
			return path, dataPath, nil
		}
		dataPath = base + enc.dataFileExt()
		if err := setDataFile(h, dataPath, o); err != nil {
			return "", "", err
		}
		return path, dataPath, nil
	case ext == ".nrrd" && o.detachedHeader:
		if err := setDataFile(h, path, o); err != nil {
			return "", "", err
		}
		return base + ".nhdr", path, nil
	default:
		h.Delete("data file")
		h.Delete("datafile")
		return path, "", nil
	}
}

func setDataFile(h *Header, dataPath string, o *options) error {
	name := filepath.Base(dataPath)
	if !o.relativeDataPath {
		abs, err := filepath.Abs(dataPath)
		if err != nil {
			return fmt.Errorf("resolve data file: %w", err)
		}
		name = abs
	}
	h.Delete("datafile")
	h.Set("data file", StringValue(name))
	return nil
}
