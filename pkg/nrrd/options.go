package nrrd

import (
	"time"

	"github.com/samcharles93/voxel/internal/logger"
)

// Option configures Read, Write and the lower level header and data calls.
type Option func(*options)

type options struct {
	customFields     FieldMap
	order            Order
	allowDuplicates  bool
	log              logger.Logger
	detachedHeader   bool
	relativeDataPath bool
	compressionLevel int
	readChunkSize    int
	writeChunkSize   int
	now              func() time.Time
}

func defaultOptions() *options {
	return &options{
		order:            OrderF,
		log:              logger.Discard(),
		relativeDataPath: true,
		compressionLevel: DefaultCompressionLevel,
		readChunkSize:    DefaultReadChunkSize,
		writeChunkSize:   DefaultWriteChunkSize,
		now:              time.Now,
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCustomFieldMap sets the kinds used for fields the format does not
// define.
func WithCustomFieldMap(m FieldMap) Option {
	return func(o *options) {
		o.customFields = m
	}
}

// WithIndexOrder sets the axis order of arrays returned by Read and accepted
// by Write. The default is OrderF.
func WithIndexOrder(order Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithAllowDuplicateFields makes a repeated header field a warning instead of
// an error; the later value wins.
func WithAllowDuplicateFields(allow bool) Option {
	return func(o *options) {
		o.allowDuplicates = allow
	}
}

// WithLogger sets the logger for warnings and debug output.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithDetachedHeader writes the header and data to separate files when the
// target has a .nrrd extension. A .nhdr target is always detached.
func WithDetachedHeader(detached bool) Option {
	return func(o *options) {
		o.detachedHeader = detached
	}
}

// WithRelativeDataPath controls whether a detached header records the data
// file by base name (default) or by absolute path.
func WithRelativeDataPath(relative bool) Option {
	return func(o *options) {
		o.relativeDataPath = relative
	}
}

// WithCompressionLevel sets the gzip/bzip2 level (1-9).
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.compressionLevel = level
	}
}

// WithReadChunkSize bounds the compressed bytes handed to a decompressor per
// read. Values <= 0 are ignored.
func WithReadChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readChunkSize = n
		}
	}
}

// WithWriteChunkSize bounds the raw bytes handed to a compressor per write.
// Values <= 0 are ignored.
func WithWriteChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.writeChunkSize = n
		}
	}
}

// WithClock sets the time source for the generated header comment.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
