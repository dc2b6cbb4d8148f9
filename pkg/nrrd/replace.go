package nrrd

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// replacer writes to a temp file next to its target and renames it into
// place on commit, so a failed write never leaves a truncated target.
type replacer struct {
	f      *os.File
	bw     *bufio.Writer
	target string
	err    error
}

func newReplacer(target string) (*replacer, error) {
	target, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(target), ".tmp-"+filepath.Base(target))
	if err != nil {
		return nil, err
	}
	return &replacer{f: f, bw: bufio.NewWriter(f), target: target}, nil
}

func (r *replacer) Write(b []byte) (int, error) {
	n, err := r.bw.Write(b)
	if err != nil {
		r.err = err
	}
	return n, err
}

func (r *replacer) abort() {
	r.err = errors.New("write aborted")
	_ = r.commit()
}

func (r *replacer) commit() (err error) {
	defer func() {
		if err != nil || r.err != nil {
			os.Remove(r.f.Name())
		}
	}()
	if r.err == nil {
		r.err = r.bw.Flush()
	}
	if err := r.f.Close(); err != nil {
		return err
	}
	if r.err != nil {
		return r.err
	}
	if err := os.Chmod(r.f.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(r.f.Name(), r.target)
}

// replaceFile writes name through fn atomically.
func replaceFile(name string, fn func(w io.Writer) error) error {
	r, err := newReplacer(name)
	if err != nil {
		return err
	}
	if err := fn(r); err != nil {
		r.abort()
		return err
	}
	return r.commit()
}
