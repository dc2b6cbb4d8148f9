package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samcharles93/voxel/pkg/nrrd"
)

// VolumeStore serves the NRRD files of one directory and caches parsed
// headers until the file on disk changes.
type VolumeStore struct {
	root string
	opts []nrrd.Option

	mu      sync.Mutex
	headers map[string]headerRecord
}

type headerRecord struct {
	modTime time.Time
	size    int64
	header  *nrrd.Header
}

func NewVolumeStore(root string, opts ...nrrd.Option) *VolumeStore {
	return &VolumeStore{
		root:    root,
		opts:    opts,
		headers: make(map[string]headerRecord),
	}
}

func isVolume(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".nrrd", ".nhdr":
		return true
	}
	return false
}

// Path resolves a volume name to a file under the root. Names must be a
// single path element.
func (s *VolumeStore) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", newInvalidRequest(fmt.Sprintf("invalid volume name %q", name))
	}
	if !isVolume(name) {
		return "", fmt.Errorf("volume %q: %w", name, os.ErrNotExist)
	}
	return filepath.Join(s.root, name), nil
}

func (s *VolumeStore) List() ([]VolumeInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	out := make([]VolumeInfo, 0, len(entries))
	for _, ent := range entries {
		if ent.IsDir() || !isVolume(ent.Name()) {
			continue
		}
		fi, err := ent.Info()
		if err != nil {
			continue
		}
		out = append(out, VolumeInfo{
			Name:     ent.Name(),
			Size:     fi.Size(),
			Modified: fi.ModTime().UTC(),
			Detached: strings.EqualFold(filepath.Ext(ent.Name()), ".nhdr"),
		})
	}
	slices.SortFunc(out, func(a, b VolumeInfo) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Header returns a copy of the parsed header of the named volume.
func (s *VolumeStore) Header(name string) (*nrrd.Header, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, s.volumeErr(name, err)
	}

	s.mu.Lock()
	rec, ok := s.headers[path]
	s.mu.Unlock()
	if ok && rec.modTime.Equal(fi.ModTime()) && rec.size == fi.Size() {
		return rec.header.Clone(), nil
	}

	h, _, err := nrrd.ReadHeaderFile(path, s.opts...)
	if err != nil {
		return nil, s.volumeErr(name, err)
	}
	s.mu.Lock()
	s.headers[path] = headerRecord{modTime: fi.ModTime(), size: fi.Size(), header: h}
	s.mu.Unlock()
	return h.Clone(), nil
}

// Read decodes the named volume in the given axis order.
func (s *VolumeStore) Read(name string, order nrrd.Order) (*nrrd.Array, *nrrd.Header, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, nil, err
	}
	opts := append(slices.Clone(s.opts), nrrd.WithIndexOrder(order))
	a, h, err := nrrd.Read(path, opts...)
	if err != nil {
		return nil, nil, s.volumeErr(name, err)
	}
	return a, h, nil
}

// volumeError reports a failure on a named volume without the server's
// directory layout. Unwrap keeps the cause for classification.
type volumeError struct {
	name string
	msg  string
	err  error
}

func (e *volumeError) Error() string {
	return fmt.Sprintf("volume %q: %s", e.name, e.msg)
}

func (e *volumeError) Unwrap() error { return e.err }

func (s *VolumeStore) volumeErr(name string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) && errors.Is(err, fs.ErrNotExist) {
		if filepath.Base(pe.Path) == name {
			return &volumeError{name: name, msg: "not found", err: err}
		}
		return &volumeError{name: name, msg: "data file " + filepath.Base(pe.Path) + " not found", err: err}
	}
	return &volumeError{name: name, msg: s.redact(err.Error()), err: err}
}

// redact strips the volumes root from msg.
func (s *VolumeStore) redact(msg string) string {
	roots := []string{filepath.Clean(s.root)}
	if abs, err := filepath.Abs(s.root); err == nil {
		roots = append(roots, abs)
	}
	for _, root := range roots {
		if root == "." || root == string(filepath.Separator) {
			continue
		}
		msg = strings.ReplaceAll(msg, root+string(filepath.Separator), "")
		msg = strings.ReplaceAll(msg, root, ".")
	}
	return msg
}
