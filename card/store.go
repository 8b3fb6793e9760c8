package card

// ResultStore is the growing, append-only record of all cards decoded
// so far in one file. Deferred-count resolution and schema construction
// for later cards read earlier scalars out of it.
//
// A store belongs to exactly one assembly pass; it is not safe for
// concurrent use.
type ResultStore struct {
	order   []string
	results map[string]Result
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{results: make(map[string]Result)}
}

// Put records the decoded result for a label. A label is written at
// most once per file; a second write fails with ErrDuplicateLabel.
func (st *ResultStore) Put(label string, res Result) error {
	if _, ok := st.results[label]; ok {
		return cardErr(label, "", -1, ErrDuplicateLabel, "")
	}
	st.order = append(st.order, label)
	st.results[label] = res
	return nil
}

// Get returns the result stored for a label.
func (st *ResultStore) Get(label string) (Result, bool) {
	res, ok := st.results[label]
	return res, ok
}

// Labels returns the stored labels in insertion order.
func (st *ResultStore) Labels() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// Len returns the number of stored results.
func (st *ResultStore) Len() int { return len(st.order) }

// Lookup resolves a reference to a value in an earlier card's first
// record. A missing label or key fails with ErrUnknownReference;
// references are strictly backward, so a forward reference is simply
// not found yet.
func (st *ResultStore) Lookup(ref Ref) (Value, error) {
	res, ok := st.results[ref.Label]
	if !ok {
		return Value{}, cardErr(ref.Label, ref.Key, -1, ErrUnknownReference, "card not decoded")
	}
	rec := res.First()
	v, ok := rec[ref.Key]
	if !ok {
		return Value{}, cardErr(ref.Label, ref.Key, -1, ErrUnknownReference, "key not in result")
	}
	return v, nil
}

// Int resolves a reference that must name an integer scalar.
func (st *ResultStore) Int(ref Ref) (int64, error) {
	v, err := st.Lookup(ref)
	if err != nil {
		return 0, err
	}
	if v.Type() != TypeInt {
		return 0, cardErr(ref.Label, ref.Key, -1, ErrUnknownReference, "want integer, got %s", v.Type())
	}
	return v.Int(), nil
}

// IntList resolves a reference that must name a list of integers.
func (st *ResultStore) IntList(ref Ref) ([]int64, error) {
	v, err := st.Lookup(ref)
	if err != nil {
		return nil, err
	}
	if v.Type() != TypeList {
		return nil, cardErr(ref.Label, ref.Key, -1, ErrUnknownReference, "want integer list, got %s", v.Type())
	}
	out := make([]int64, 0, len(v.List()))
	for _, e := range v.List() {
		if e.Type() != TypeInt {
			return nil, cardErr(ref.Label, ref.Key, -1, ErrUnknownReference,
				"want integer list, got %s element", e.Type())
		}
		out = append(out, e.Int())
	}
	return out, nil
}
