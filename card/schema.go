package card

// Form is the closed set of card schema variants.
type Form uint8

const (
	// FormBasic decodes to a single record.
	FormBasic Form = iota
	// FormRepeated replicates the whole field sequence a resolved number
	// of times and decodes to one record per repetition.
	FormRepeated
)

// String returns the form name.
func (f Form) String() string {
	switch f {
	case FormBasic:
		return "basic"
	case FormRepeated:
		return "repeated"
	default:
		return "unknown"
	}
}

// Schema is the layout of one card type: an ordered field sequence plus
// optional expected-value self-checks.
//
// For FormRepeated, RepeatFrom references an integer list in an earlier
// card's result; the schema is replicated once per list element.
// MarkerKey names the field that starts each repetition and PerRepeatKey
// names the field whose count is the corresponding list element.
type Schema struct {
	Form     Form
	Fields   []Descriptor
	Expected map[string]Value

	RepeatFrom   Ref
	MarkerKey    string
	PerRepeatKey string
}

// Validate checks the schema's structural invariants. Violations are
// schema errors (ErrSchemaInvalid), not data errors.
func (s Schema) Validate() error {
	for _, d := range s.Fields {
		switch d.Kind {
		case KindLineBreak:
			if d.Key != "" {
				return cardErr("", d.Key, -1, ErrSchemaInvalid, "line break must not carry a key")
			}
		case KindDecimalShift:
			if d.Key != "" {
				return cardErr("", d.Key, -1, ErrSchemaInvalid, "decimal shift must not carry a key")
			}
			if d.Count > 1 {
				return cardErr("", "", -1, ErrSchemaInvalid, "decimal shift count must be 1, got %d", d.Count)
			}
		}
		if d.CountFrom != nil {
			if d.Count != 0 {
				return cardErr("", d.Key, -1, ErrSchemaInvalid,
					"deferred count and literal count %d both set", d.Count)
			}
			if !d.producesValues() {
				return cardErr("", d.Key, -1, ErrSchemaInvalid,
					"deferred count on non-value %s field", d.Kind)
			}
		}
		if d.isTable() {
			if !d.producesValues() {
				return cardErr("", d.Key, -1, ErrSchemaInvalid, "table tag on %s field", d.Kind)
			}
			if d.Count > 1 {
				return cardErr("", d.Key, -1, ErrSchemaInvalid,
					"table field count must be 1, got %d", d.Count)
			}
			if d.CountFrom != nil {
				return cardErr("", d.Key, -1, ErrSchemaInvalid, "table field with deferred count")
			}
		}
		if d.producesValues() && d.Key == "" && d.Kind != KindText {
			// Keyless numeric fields decode to nowhere; fillers use nX.
			return cardErr("", "", -1, ErrSchemaInvalid, "keyless %s field", d.Kind)
		}
	}

	switch s.Form {
	case FormBasic:
		if s.MarkerKey != "" || s.PerRepeatKey != "" || s.RepeatFrom != (Ref{}) {
			return cardErr("", "", -1, ErrSchemaInvalid, "repetition metadata on basic schema")
		}
	case FormRepeated:
		if s.MarkerKey == "" || s.PerRepeatKey == "" {
			return cardErr("", "", -1, ErrSchemaInvalid,
				"repeated schema requires marker and per-repetition keys")
		}
		if s.RepeatFrom == (Ref{}) {
			return cardErr("", "", -1, ErrSchemaInvalid, "repeated schema requires a repeat reference")
		}
		var marker, perRepeat *Descriptor
		for i := range s.Fields {
			switch s.Fields[i].Key {
			case s.MarkerKey:
				marker = &s.Fields[i]
			case s.PerRepeatKey:
				perRepeat = &s.Fields[i]
			}
		}
		if marker == nil {
			return cardErr("", s.MarkerKey, -1, ErrSchemaInvalid, "marker field not in schema")
		}
		if perRepeat == nil {
			return cardErr("", s.PerRepeatKey, -1, ErrSchemaInvalid, "per-repetition field not in schema")
		}
		if perRepeat.Count != 0 || perRepeat.CountFrom != nil {
			return cardErr("", s.PerRepeatKey, -1, ErrSchemaInvalid,
				"per-repetition field must leave its count open")
		}
	default:
		return cardErr("", "", -1, ErrSchemaInvalid, "unknown schema form %d", s.Form)
	}
	return nil
}

// clone returns a deep-enough copy: the field slice is fresh, so passes
// that rewrite fields never alias the input schema.
func (s Schema) clone() Schema {
	out := s
	out.Fields = make([]Descriptor, len(s.Fields))
	copy(out.Fields, s.Fields)
	return out
}
