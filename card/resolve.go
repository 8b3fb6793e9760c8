package card

// Resolve binds every deferred size in a schema against the results
// decoded so far and expands its repetition groups, producing a new
// schema whose fields all carry concrete counts.
//
// The pass runs in three steps, in order:
//
//  1. card-group expansion (FormRepeated): the field sequence is
//     replicated once per element of the referenced integer list, the
//     per-repetition field's count is bound to the matching element,
//     and a line break separates consecutive repetitions;
//  2. deferred-count binding: each CountFrom reference is looked up in
//     the store and replaced by the referenced integer;
//  3. table-group expansion: the contiguous run of table-tagged fields
//     is replicated row-count times in row-major order.
//
// References are strictly backward: a label not yet in the store fails
// with ErrUnknownReference, which also rules out reference cycles.
// The input schema is never mutated.
func Resolve(s Schema, store *ResultStore) (Schema, error) {
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	out := s.clone()

	if out.Form == FormRepeated {
		fields, err := expandRepetitions(out, store)
		if err != nil {
			return Schema{}, err
		}
		out.Fields = fields
	}

	for i, d := range out.Fields {
		if d.CountFrom == nil {
			continue
		}
		n, err := store.Int(*d.CountFrom)
		if err != nil {
			return Schema{}, err
		}
		if n < 0 {
			return Schema{}, cardErr("", d.Key, -1, ErrUnresolvedCount,
				"%s resolves to negative count %d", d.CountFrom, n)
		}
		d.Count = int(n)
		d.CountFrom = nil
		d.Array = true
		out.Fields[i] = d
	}

	fields, err := expandTables(out.Fields, store)
	if err != nil {
		return Schema{}, err
	}
	out.Fields = fields

	return out, nil
}

// expandRepetitions replicates a repeated schema's fields once per
// element of the referenced count list.
func expandRepetitions(s Schema, store *ResultStore) ([]Descriptor, error) {
	counts, err := store.IntList(s.RepeatFrom)
	if err != nil {
		return nil, err
	}

	var fields []Descriptor
	for i, n := range counts {
		if n < 0 {
			return nil, cardErr("", s.PerRepeatKey, -1, ErrUnresolvedCount,
				"%s element %d resolves to negative count %d", s.RepeatFrom, i, n)
		}
		if i > 0 {
			fields = append(fields, BreakField())
		}
		for _, d := range s.Fields {
			if d.Key == s.PerRepeatKey {
				d.Count = int(n)
				d.Array = true
			}
			fields = append(fields, d)
		}
	}
	return fields, nil
}

// expandTables replicates the contiguous run of table-tagged fields
// row-count times, row-major: row 1 carries every table field once,
// then row 2, and so on. Decoding appends each row's values under the
// original keys.
func expandTables(fields []Descriptor, store *ResultStore) ([]Descriptor, error) {
	var tableIdx []int
	for i, d := range fields {
		if d.isTable() {
			tableIdx = append(tableIdx, i)
		}
	}
	if len(tableIdx) == 0 {
		return fields, nil
	}

	for i := 1; i < len(tableIdx); i++ {
		if tableIdx[i] != tableIdx[i-1]+1 {
			return nil, cardErr("", fields[tableIdx[i]].Key, -1, ErrInconsistentTableShape,
				"table fields must be contiguous")
		}
	}

	rows := -1
	run := make([]Descriptor, 0, len(tableIdx))
	for _, i := range tableIdx {
		d := fields[i]
		if d.TableRowsFrom != nil {
			n, err := store.Int(*d.TableRowsFrom)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, cardErr("", d.Key, -1, ErrUnresolvedCount,
					"%s resolves to negative row count %d", d.TableRowsFrom, n)
			}
			d.TableRows = int(n)
			d.TableRowsFrom = nil
		}
		if rows == -1 {
			rows = d.TableRows
		} else if d.TableRows != rows {
			return nil, cardErr("", d.Key, -1, ErrInconsistentTableShape,
				"row count %d conflicts with %d", d.TableRows, rows)
		}
		d.Count = 1
		d.Array = true
		run = append(run, d)
	}

	out := make([]Descriptor, 0, len(fields)+len(run)*rows)
	out = append(out, fields[:tableIdx[0]]...)
	for r := 0; r < rows; r++ {
		out = append(out, run...)
	}
	out = append(out, fields[tableIdx[len(tableIdx)-1]+1:]...)
	return out, nil
}
