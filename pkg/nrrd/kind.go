package nrrd

import (
	"fmt"
	"maps"
	"strings"
)

// Kind identifies how a header field value is encoded.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindDouble
	KindIntList
	KindDoubleList
	KindStringList
	KindIntVector
	KindDoubleVector
	KindIntMatrix
	KindDoubleMatrix
	KindOptionalDoubleVector
	KindOptionalDoubleMatrix
)

var kindNames = [...]string{
	KindString:               "string",
	KindInt:                  "int",
	KindDouble:               "double",
	KindIntList:              "int list",
	KindDoubleList:           "double list",
	KindStringList:           "string list",
	KindIntVector:            "int vector",
	KindDoubleVector:         "double vector",
	KindIntMatrix:            "int matrix",
	KindDoubleMatrix:         "double matrix",
	KindOptionalDoubleVector: "optional double vector",
	KindOptionalDoubleMatrix: "optional double matrix",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name ("int", "double list", ...) to a Kind. The
// names "double vector" and "double matrix" select the optional kinds, so a
// custom field accepts "none" the way builtin direction fields do. The strict
// kinds remain available as constants.
func ParseKind(s string) (Kind, error) {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for k, name := range kindNames {
		if name == s {
			switch Kind(k) {
			case KindDoubleVector:
				return KindOptionalDoubleVector, nil
			case KindDoubleMatrix:
				return KindOptionalDoubleMatrix, nil
			}
			return Kind(k), nil
		}
	}
	return 0, formatErrorf("invalid field type given: %s", s)
}

// FieldMap assigns kinds to fields the format does not define.
type FieldMap map[string]Kind

// builtinKinds holds the kinds of every field the format defines.
var builtinKinds = map[string]Kind{
	"dimension":       KindInt,
	"lineskip":        KindInt,
	"line skip":       KindInt,
	"byteskip":        KindInt,
	"byte skip":       KindInt,
	"space dimension": KindInt,
	"block size":      KindInt,
	"blocksize":       KindInt,

	"min":     KindDouble,
	"max":     KindDouble,
	"oldmin":  KindDouble,
	"old min": KindDouble,
	"oldmax":  KindDouble,
	"old max": KindDouble,

	"endian":       KindString,
	"encoding":     KindString,
	"content":      KindString,
	"sample units": KindString,
	"datafile":     KindString,
	"data file":    KindString,
	"space":        KindString,
	"type":         KindString,
	"number":       KindString,

	"sizes": KindIntList,

	"spacings":    KindDoubleList,
	"thicknesses": KindDoubleList,
	"axismins":    KindDoubleList,
	"axis mins":   KindDoubleList,
	"axismaxs":    KindDoubleList,
	"axis maxs":   KindDoubleList,

	"kinds":       KindStringList,
	"labels":      KindStringList,
	"units":       KindStringList,
	"space units": KindStringList,
	"centerings":  KindStringList,

	"space origin": KindDoubleVector,

	// Rows of these may be "none", which is only expressible for doubles.
	"space directions":  KindOptionalDoubleMatrix,
	"measurement frame": KindOptionalDoubleMatrix,
}

// ResolveKind returns the kind of field. Fields the format does not define
// are looked up in custom and default to KindString.
func ResolveKind(field string, custom FieldMap) Kind {
	if k, ok := builtinKinds[field]; ok {
		return k
	}
	if k, ok := custom[field]; ok {
		return k
	}
	return KindString
}

// BuiltinFields returns the field names the format defines with their kinds.
func BuiltinFields() map[string]Kind {
	return maps.Clone(builtinKinds)
}
