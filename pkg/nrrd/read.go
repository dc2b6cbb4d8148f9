package nrrd

import (
	"fmt"
	"io"
	"os"
)

// Read loads the header and array stored at path. For a detached header the
// data file is resolved relative to path.
func Read(path string, opts ...Option) (*Array, *Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open nrrd: %w", err)
	}
	defer f.Close()

	h, offset, err := ReadHeader(f, opts...)
	if err != nil {
		return nil, nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek to payload: %w", err)
	}
	a, err := ReadData(h, f, path, opts...)
	if err != nil {
		return nil, h, err
	}
	return a, h, nil
}
