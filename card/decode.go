package card

import (
	"math"
	"strconv"
	"strings"
)

// Decode decodes the raw lines of one card against a resolved, reflowed
// schema. For a basic schema the result holds one record; for a repeated
// schema it holds one record per repetition, split at the marker field.
//
// A card either decodes fully or fails: the declared and decoded value
// counts must agree (ErrFieldCountMismatch) and every expected-value
// self-check must pass (ErrExpectedValueMismatch) before a result is
// returned.
func Decode(s Schema, rc RawCard) (Result, error) {
	dec := decoder{
		label:  rc.Label,
		lines:  rc.Lines,
		schema: s,
	}
	return dec.run()
}

// decoder walks a descriptor sequence over the card's lines, keeping a
// line/column cursor and the active decimal scale factor. The scale
// resets at card boundaries, so each Decode call starts at zero.
type decoder struct {
	label  string
	lines  []string
	schema Schema

	line  int
	col   int
	scale int

	declared int
	decoded  int
	missing  bool

	records []Record
	current Record
}

func (d *decoder) run() (Result, error) {
	if d.schema.Form == FormBasic {
		d.current = Record{}
		d.records = append(d.records, d.current)
	}

	for _, f := range d.schema.Fields {
		if err := d.step(f); err != nil {
			return Result{}, err
		}
	}

	if d.missing || d.decoded != d.declared {
		return Result{}, cardErr(d.label, "", d.line, ErrFieldCountMismatch,
			"decoded %d of %d declared values", d.decoded, d.declared)
	}
	if err := d.checkTrailing(); err != nil {
		return Result{}, err
	}
	for _, rec := range d.records {
		if err := d.checkExpected(rec); err != nil {
			return Result{}, err
		}
	}
	return Result{Records: d.records}, nil
}

// step consumes one descriptor.
func (d *decoder) step(f Descriptor) error {
	switch f.Kind {
	case KindLineBreak:
		d.line++
		d.col = 0
		return nil
	case KindDecimalShift:
		d.scale = f.Shift
		return nil
	}

	n, err := f.ValueCount()
	if err != nil {
		return cardErr(d.label, f.Key, d.line, ErrUnresolvedCount, "schema not resolved")
	}
	w, err := f.FieldWidth()
	if err != nil {
		return err
	}

	if f.Kind == KindSkip || f.Key == "" {
		d.col += n * w
		return nil
	}

	if d.schema.Form == FormRepeated && f.Key == d.schema.MarkerKey {
		d.current = Record{}
		d.records = append(d.records, d.current)
	}
	if d.current == nil {
		return cardErr(d.label, f.Key, d.line, ErrSchemaInvalid,
			"value field before repetition marker %q", d.schema.MarkerKey)
	}

	d.declared += n
	for i := 0; i < n; i++ {
		raw, ok := d.take(w)
		if !ok {
			d.missing = true
			continue
		}
		v, err := d.decodeValue(f, raw)
		if err != nil {
			return err
		}
		if f.Array || f.isTable() {
			d.current[f.Key] = d.current[f.Key].append(v)
		} else {
			d.current[f.Key] = v
		}
		d.decoded++
	}
	return nil
}

// take slices the next w columns off the current line, blank-padding a
// short tail. It reports false when the cursor is already past the end
// of the line: the value is missing, not blank.
func (d *decoder) take(w int) (string, bool) {
	if d.line >= len(d.lines) {
		return "", false
	}
	ln := d.lines[d.line]
	if d.col >= len(ln) {
		d.col += w
		return "", false
	}
	end := d.col + w
	raw := ln[d.col:min(end, len(ln))]
	if len(raw) < w {
		raw += strings.Repeat(" ", w-len(raw))
	}
	d.col = end
	return raw, true
}

func (d *decoder) decodeValue(f Descriptor, raw string) (Value, error) {
	switch f.Kind {
	case KindText:
		return Str(raw), nil
	case KindInteger:
		i, err := parseInteger(raw)
		if err != nil {
			return Value{}, cardErr(d.label, f.Key, d.line, ErrMalformedNumericField, "%q", raw)
		}
		return Int(i), nil
	case KindReal:
		r, err := parseReal(raw, f.Decimals, d.scale)
		if err != nil {
			return Value{}, cardErr(d.label, f.Key, d.line, ErrMalformedNumericField, "%q", raw)
		}
		return Real(r), nil
	}
	return Value{}, cardErr(d.label, f.Key, d.line, ErrSchemaInvalid, "%s field yields no value", f.Kind)
}

// checkTrailing verifies that no non-blank text remains after the last
// descriptor: leftover characters mean the card carried more values
// than the schema declared.
func (d *decoder) checkTrailing() error {
	line, col := d.line, d.col
	for ; line < len(d.lines); line, col = line+1, 0 {
		ln := d.lines[line]
		if col < len(ln) && strings.TrimSpace(ln[col:]) != "" {
			return cardErr(d.label, "", line, ErrFieldCountMismatch,
				"unconsumed text %q", strings.TrimSpace(ln[col:]))
		}
	}
	return nil
}

func (d *decoder) checkExpected(rec Record) error {
	for key, want := range d.schema.Expected {
		got, ok := rec[key]
		if !ok {
			return cardErr(d.label, key, -1, ErrExpectedValueMismatch, "field not decoded")
		}
		if !got.Equal(want) {
			return cardErr(d.label, key, -1, ErrExpectedValueMismatch, "want %s, got %s", want, got)
		}
	}
	return nil
}

// parseInteger reads a fixed-width integer field. Blanks read as zero,
// embedded blanks are ignored, and a leading sign is allowed; anything
// else is malformed.
func parseInteger(raw string) (int64, error) {
	t := strings.ReplaceAll(raw, " ", "")
	if t == "" {
		return 0, nil
	}
	return strconv.ParseInt(t, 10, 64)
}

// parseReal reads a fixed-width real field under FORTRAN input rules.
// The exponent may be spelled E, e, D or d, or appear as a bare sign
// ("1.23456+5"). Without a decimal point the rightmost `decimals`
// digits are the fraction. An active scale factor k divides the value
// by 10^k unless the field carries an explicit exponent.
func parseReal(raw string, decimals, scale int) (float64, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return 0, nil
	}

	mant := t
	exp := 0
	explicit := false
	for i := 1; i < len(t); i++ {
		c := t[i]
		if c == 'E' || c == 'e' || c == 'D' || c == 'd' {
			e, err := strconv.Atoi(strings.TrimPrefix(t[i+1:], "+"))
			if err != nil {
				return 0, err
			}
			mant, exp, explicit = t[:i], e, true
			break
		}
		if (c == '+' || c == '-') && !isExpLetter(t[i-1]) {
			e, err := strconv.Atoi(strings.TrimPrefix(t[i:], "+"))
			if err != nil {
				return 0, err
			}
			mant, exp, explicit = t[:i], e, true
			break
		}
	}

	var v float64
	if strings.Contains(mant, ".") {
		f, err := strconv.ParseFloat(mant, 64)
		if err != nil {
			return 0, err
		}
		v = f
	} else {
		i, err := strconv.ParseInt(mant, 10, 64)
		if err != nil {
			return 0, err
		}
		v = float64(i) / math.Pow(10, float64(decimals))
	}

	if explicit {
		return v * math.Pow(10, float64(exp)), nil
	}
	return v / math.Pow(10, float64(scale)), nil
}

func isExpLetter(c byte) bool {
	return c == 'E' || c == 'e' || c == 'D' || c == 'd'
}
