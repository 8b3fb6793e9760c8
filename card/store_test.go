package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultStore_PutGet(t *testing.T) {
	st := NewResultStore()
	require.NoError(t, st.Put("0v", Result{Records: []Record{{"ivers": Int(5)}}}))
	require.NoError(t, st.Put("1d", Result{Records: []Record{{"npart": Int(2)}}}))

	res, ok := st.Get("0v")
	require.True(t, ok)
	assert.Equal(t, Int(5), res.First()["ivers"])

	assert.Equal(t, []string{"0v", "1d"}, st.Labels())
	assert.Equal(t, 2, st.Len())
}

func TestResultStore_DuplicateLabel(t *testing.T) {
	st := NewResultStore()
	require.NoError(t, st.Put("0v", Result{}))
	err := st.Put("0v", Result{})
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestResultStore_Lookup(t *testing.T) {
	st := NewResultStore()
	require.NoError(t, st.Put("1d", Result{Records: []Record{{
		"npart": Int(2),
		"hname": Str("lib"),
		"ngrp":  ListOf(Int(3), Int(2)),
	}}}))

	t.Run("int", func(t *testing.T) {
		n, err := st.Int(Ref{Label: "1d", Key: "npart"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
	t.Run("int list", func(t *testing.T) {
		ns, err := st.IntList(Ref{Label: "1d", Key: "ngrp"})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2}, ns)
	})
	t.Run("missing label", func(t *testing.T) {
		_, err := st.Lookup(Ref{Label: "3d", Key: "ngrp"})
		require.ErrorIs(t, err, ErrUnknownReference)
	})
	t.Run("missing key", func(t *testing.T) {
		_, err := st.Lookup(Ref{Label: "1d", Key: "nowhere"})
		require.ErrorIs(t, err, ErrUnknownReference)
	})
	t.Run("wrong type for int", func(t *testing.T) {
		_, err := st.Int(Ref{Label: "1d", Key: "hname"})
		require.ErrorIs(t, err, ErrUnknownReference)
	})
	t.Run("wrong type for int list", func(t *testing.T) {
		_, err := st.IntList(Ref{Label: "1d", Key: "npart"})
		require.ErrorIs(t, err, ErrUnknownReference)
	})
}

func TestValue_Basics(t *testing.T) {
	assert.Equal(t, "str", Str("x").Type().String())
	assert.True(t, Int(3).Equal(Int(3)))
	assert.False(t, Int(3).Equal(Real(3)))
	assert.True(t, ListOf(Int(1), Int(2)).Equal(ListOf(Int(1), Int(2))))
	assert.False(t, ListOf(Int(1)).Equal(ListOf(Int(2))))
	assert.Equal(t, 2, ListOf(Int(1), Int(2)).Len())
	assert.Equal(t, 3.0, Int(3).Real(), "integers widen to real")
}

func TestValue_Interface(t *testing.T) {
	v := ListOf(Str("a"), Int(2), Real(1.5))
	assert.Equal(t, []any{"a", int64(2), 1.5}, v.Interface())
}
