package card

// Kind classifies how a field's characters decode.
type Kind uint8

const (
	KindText         Kind = iota // Aw: copy w characters verbatim
	KindInteger                  // Iw: signed integer, blanks read as zero
	KindReal                     // Ew.d / Fw.d: real, implicit point, scale aware
	KindSkip                     // nX: consume columns, no value
	KindDecimalShift             // kP: set the decimal scale factor
	KindLineBreak                // /: advance to the next physical line
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindSkip:
		return "skip"
	case KindDecimalShift:
		return "decimal-shift"
	case KindLineBreak:
		return "line-break"
	default:
		return "unknown"
	}
}

// Ref points at a scalar (or integer list) in an earlier card's decoded
// result, addressed by card label and field key.
type Ref struct {
	Label string
	Key   string
}

func (r Ref) String() string { return r.Label + "." + r.Key }

// Descriptor describes one field of a card: its decode kind, value
// count, character width and, optionally, a reference to a count that
// must be resolved from a previously decoded card.
//
// An empty Key marks a filler field that produces no output. A
// descriptor with CountFrom set must not also carry a literal Count:
// the count is unknown until Resolve binds it.
type Descriptor struct {
	Key      string
	Kind     Kind
	Count    int // values per repetition; 0 means 1 for value fields
	Width    int // characters per value
	Decimals int // implicit fraction digits for Real fields
	Shift    int // scale factor, DecimalShift only

	CountFrom *Ref // deferred value count, mutually exclusive with Count

	// TableRows tags the field as part of a table group replicated
	// row-wise; TableRowsFrom defers the row count to an earlier card.
	TableRows     int
	TableRowsFrom *Ref

	// Array marks a field whose values accumulate into a list even when
	// a single value is decoded. Deferred-count and table fields are
	// always arrays.
	Array bool
}

// TextField returns a w-character text descriptor (Aw).
func TextField(key string, w int) Descriptor {
	return Descriptor{Key: key, Kind: KindText, Width: w}
}

// IntField returns a w-character integer descriptor (Iw).
func IntField(key string, w int) Descriptor {
	return Descriptor{Key: key, Kind: KindInteger, Width: w}
}

// RealField returns a real descriptor with d implicit fraction digits
// (Ew.d).
func RealField(key string, w, d int) Descriptor {
	return Descriptor{Key: key, Kind: KindReal, Width: w, Decimals: d}
}

// SkipField returns a filler descriptor consuming n columns (nX).
func SkipField(n int) Descriptor {
	return Descriptor{Kind: KindSkip, Count: n, Width: 1}
}

// ShiftField returns a decimal-scale descriptor (kP). It consumes no
// characters and produces no value.
func ShiftField(k int) Descriptor {
	return Descriptor{Kind: KindDecimalShift, Count: 1, Shift: k}
}

// BreakField returns an explicit line-continuation descriptor (/).
func BreakField() Descriptor {
	return Descriptor{Kind: KindLineBreak}
}

// producesValues reports whether the descriptor yields decoded values.
func (d Descriptor) producesValues() bool {
	switch d.Kind {
	case KindText, KindInteger, KindReal:
		return true
	default:
		return false
	}
}

// isTable reports whether the field belongs to a table group.
func (d Descriptor) isTable() bool {
	return d.TableRows > 0 || d.TableRowsFrom != nil
}

// ValueCount returns the number of values the descriptor yields. It
// fails with ErrUnresolvedCount while the count is still deferred.
func (d Descriptor) ValueCount() (int, error) {
	if d.CountFrom != nil {
		return 0, cardErr("", d.Key, -1, ErrUnresolvedCount, "count deferred to %s", d.CountFrom)
	}
	if d.Kind == KindLineBreak {
		return 0, nil
	}
	if d.Count == 0 {
		return 1, nil
	}
	return d.Count, nil
}

// FieldWidth returns the characters consumed per value. It fails with
// ErrMissingWidth when the descriptor's literal form does not determine
// a width.
func (d Descriptor) FieldWidth() (int, error) {
	switch d.Kind {
	case KindLineBreak, KindDecimalShift:
		return 0, nil
	case KindSkip:
		if d.Width == 0 {
			return 1, nil
		}
		return d.Width, nil
	}
	if d.Width == 0 {
		return 0, cardErr("", d.Key, -1, ErrMissingWidth, "%s field", d.Kind)
	}
	return d.Width, nil
}

// totalWidth returns count × width, the columns the descriptor spans.
func (d Descriptor) totalWidth() (int, error) {
	n, err := d.ValueCount()
	if err != nil {
		return 0, err
	}
	w, err := d.FieldWidth()
	if err != nil {
		return 0, err
	}
	return n * w, nil
}
