package nrrd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// writeData encodes the elements of a in file order, fastest axis first.
func writeData(w io.Writer, a *Array, enc Encoding, bo binary.ByteOrder, o *options) error {
	switch {
	case enc.isText():
		return writeText(w, a, o.order)
	case enc.isCompressed():
		zw, err := enc.newCompressor(w, o.compressionLevel)
		if err != nil {
			return err
		}
		raw := a.bytesInOrder(o.order, bo)
		o.log.Debug("compressing payload", "encoding", string(enc), "bytes", len(raw), "chunk", o.writeChunkSize)
		if err := writeChunks(zw, raw, o.writeChunkSize); err != nil {
			zw.Close()
			return fmt.Errorf("compress payload: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress payload: %w", err)
		}
		return nil
	default:
		if _, err := w.Write(a.bytesInOrder(o.order, bo)); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		return nil
	}
}

// writeText writes one value per line, except 2-D arrays which are written
// as rows of the fastest axis.
func writeText(w io.Writer, a *Array, order Order) error {
	if a.dtype == Block {
		return formatErrorf("block type cannot be stored with %s encoding", EncodingASCII)
	}
	width := 1
	if a.NDim() == 2 {
		width = a.shape[0]
		if order == OrderC {
			width = a.shape[1]
		}
	}

	bw := bufio.NewWriter(w)
	col := 0
	a.each(order, func(b []byte) {
		if col > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(formatElem(a.dtype, a.order, b))
		col++
		if col == width {
			bw.WriteByte('\n')
			col = 0
		}
	})
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text payload: %w", err)
	}
	return nil
}
