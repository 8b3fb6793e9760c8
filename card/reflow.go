package card

// DefaultLineWidth is the physical line limit of classic card images.
const DefaultLineWidth = 72

// Reflow inserts explicit line-break descriptors into a resolved field
// sequence so that the characters between any two consecutive breaks
// never exceed limit columns.
//
// The pass is a deterministic, greedy, single scan: a field whose total
// width fits the remaining columns is kept whole; one that does not is
// exploded into single-value units, each keeping the original key so
// decoded values reassemble under it, with a break emitted whenever the
// next unit would overflow. Reflowing an already-reflowed sequence is a
// no-op.
//
// Fields must be resolved first; a still-deferred count fails with
// ErrUnresolvedCount.
func Reflow(fields []Descriptor, limit int) ([]Descriptor, error) {
	if limit <= 0 {
		limit = DefaultLineWidth
	}

	out := make([]Descriptor, 0, len(fields))
	col := 0
	for _, d := range fields {
		if d.Kind == KindLineBreak {
			out = append(out, d)
			col = 0
			continue
		}

		n, err := d.ValueCount()
		if err != nil {
			return nil, err
		}
		w, err := d.FieldWidth()
		if err != nil {
			return nil, err
		}

		if col+n*w <= limit {
			out = append(out, d)
			col += n * w
			continue
		}

		unit := d
		unit.Count = 1
		for i := 0; i < n; i++ {
			if col > 0 && col+w > limit {
				out = append(out, BreakField())
				col = 0
			}
			out = append(out, unit)
			col += w
		}
	}
	return out, nil
}
