package nrrd

import (
	"slices"
)

type headerField struct {
	name  string
	value Value
}

// Header is an ordered set of header fields. Field names are case-sensitive
// and unique; insertion order is kept so a header re-serializes the same way.
type Header struct {
	fields []headerField
	index  map[string]int

	// Warnings collects non-fatal problems found while parsing, such as
	// duplicate fields when duplicates are allowed.
	Warnings []string
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{index: make(map[string]int)}
}

// Len returns the number of fields.
func (h *Header) Len() int { return len(h.fields) }

// Fields returns the field names in order.
func (h *Header) Fields() []string {
	names := make([]string, len(h.fields))
	for i, f := range h.fields {
		names[i] = f.name
	}
	return names
}

// Has reports whether field is set.
func (h *Header) Has(field string) bool {
	_, ok := h.index[field]
	return ok
}

// Get returns the value of field.
func (h *Header) Get(field string) (Value, bool) {
	i, ok := h.index[field]
	if !ok {
		return Value{}, false
	}
	return h.fields[i].value, true
}

// Set stores v under field. An existing field keeps its position.
func (h *Header) Set(field string, v Value) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[field]; ok {
		h.fields[i].value = v
		return
	}
	h.index[field] = len(h.fields)
	h.fields = append(h.fields, headerField{name: field, value: v})
}

// Delete removes field if present.
func (h *Header) Delete(field string) {
	i, ok := h.index[field]
	if !ok {
		return
	}
	h.fields = slices.Delete(h.fields, i, i+1)
	delete(h.index, field)
	for j := i; j < len(h.fields); j++ {
		h.index[h.fields[j].name] = j
	}
}

// Clone returns a deep enough copy that Set and Delete on it do not affect h.
func (h *Header) Clone() *Header {
	c := &Header{
		fields:   slices.Clone(h.fields),
		index:    make(map[string]int, len(h.fields)),
		Warnings: slices.Clone(h.Warnings),
	}
	for i, f := range c.fields {
		c.index[f.name] = i
	}
	return c
}

// Equal reports whether both headers hold the same fields in the same order.
func (h *Header) Equal(o *Header) bool {
	if h.Len() != o.Len() {
		return false
	}
	for i, f := range h.fields {
		g := o.fields[i]
		if f.name != g.name || !f.value.Equal(g.value) {
			return false
		}
	}
	return true
}

// Int returns an integer field.
func (h *Header) Int(field string) (int64, bool) {
	v, ok := h.Get(field)
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case KindInt:
		return v.Int, true
	case KindDouble:
		if i, ok := exactInt(v.Float); ok {
			return i, true
		}
	}
	return 0, false
}

// Float returns a numeric field as float64.
func (h *Header) Float(field string) (float64, bool) {
	v, ok := h.Get(field)
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case KindDouble:
		return v.Float, true
	case KindInt:
		return float64(v.Int), true
	}
	return 0, false
}

// Text returns the text of a field. Non-string values are formatted in
// their own kind.
func (h *Header) Text(field string) (string, bool) {
	v, ok := h.Get(field)
	if !ok {
		return "", false
	}
	return v.text(), true
}

// Ints returns an integer list or vector field.
func (h *Header) Ints(field string) ([]int64, bool) {
	v, ok := h.Get(field)
	if !ok {
		return nil, false
	}
	switch v.Kind {
	case KindIntList, KindIntVector:
		return v.Ints, true
	case KindDoubleList, KindDoubleVector:
		out := make([]int64, len(v.Floats))
		for i, f := range v.Floats {
			n, ok := exactInt(f)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

// Floats returns a numeric list or vector field as float64.
func (h *Header) Floats(field string) ([]float64, bool) {
	v, ok := h.Get(field)
	if !ok {
		return nil, false
	}
	out := v.AsFloats()
	return out, out != nil
}

// Strings returns a string list field.
func (h *Header) Strings(field string) ([]string, bool) {
	v, ok := h.Get(field)
	if !ok || v.Kind != KindStringList {
		return nil, false
	}
	return v.Strs, true
}

// Matrix returns a matrix field as float64 rows.
func (h *Header) Matrix(field string) ([][]float64, bool) {
	v, ok := h.Get(field)
	if !ok {
		return nil, false
	}
	switch v.Kind {
	case KindDoubleMatrix, KindOptionalDoubleMatrix:
		return v.FloatRows, true
	case KindIntMatrix:
		rows := make([][]float64, len(v.IntRows))
		for i, r := range v.IntRows {
			rows[i] = make([]float64, len(r))
			for j, x := range r {
				rows[i][j] = float64(x)
			}
		}
		return rows, true
	}
	return nil, false
}

// lookup returns the first present field among names, for fields the format
// allows to be spelled with or without a space.
func (h *Header) lookup(names ...string) (Value, string, bool) {
	for _, n := range names {
		if v, ok := h.Get(n); ok {
			return v, n, true
		}
	}
	return Value{}, "", false
}
