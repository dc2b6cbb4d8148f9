// Package nrrd implements the NRRD (Nearly Raw Raster Data) file format.
//
// An NRRD file is a text header describing an N-dimensional array (shape,
// element type, geometry, encoding) followed by the array payload. The
// payload is either attached to the header or stored in a separate file
// referenced by the "data file" field (a detached header, usually .nhdr).
//
// The header lists sizes fastest-varying axis first. Read and Write take an
// index order (OrderC or OrderF) that decides how the in-memory Array axes
// map onto that convention; the same order must be used on both sides.
package nrrd

// Format constants.
const (
	// Magic is the tag every NRRD magic line starts with.
	Magic = "NRRD"

	// MaxVersion is the newest format version this package reads.
	MaxVersion = 5

	// magicLine is written at the top of every header.
	magicLine = "NRRD0005"

	// DefaultReadChunkSize bounds how many compressed bytes are handed to a
	// decompressor per read.
	DefaultReadChunkSize = 1 << 30

	// DefaultWriteChunkSize bounds how many raw bytes are handed to a
	// compressor per write.
	DefaultWriteChunkSize = 1 << 20

	// DefaultCompressionLevel is used for gzip and bzip2 output.
	DefaultCompressionLevel = 9
)

// requiredFields must be present before any payload can be decoded.
var requiredFields = []string{"dimension", "type", "encoding", "sizes"}

// fieldOrder is the canonical order fields are written in. Anything not
// listed is a custom field and is written afterwards with ":=".
var fieldOrder = []string{
	"type",
	"block size",
	"dimension",
	"space dimension",
	"space",
	"sizes",
	"space directions",
	"kinds",
	"endian",
	"encoding",
	"min",
	"max",
	"oldmin",
	"old min",
	"oldmax",
	"old max",
	"content",
	"sample units",
	"spacings",
	"thicknesses",
	"axis mins",
	"axismins",
	"axis maxs",
	"axismaxs",
	"centerings",
	"labels",
	"units",
	"space units",
	"space origin",
	"measurement frame",
	"data file",
}
