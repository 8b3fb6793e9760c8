package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_CutsAtLabels(t *testing.T) {
	lines := []string{
		" 0v file id",
		" 1d   control",
		" 2d hollerith",
		"continuation of 2d",
		"another 2d line",
		" 3d file data",
	}
	stream, err := Segment(lines, 72)
	require.NoError(t, err)
	require.Equal(t, 4, stream.Len())

	rc, ok := stream.Pop()
	require.True(t, ok)
	assert.Equal(t, "0v", rc.Label)
	assert.Equal(t, 0, rc.Level)
	assert.Equal(t, []string{" 0v file id"}, rc.Lines)
	assert.Equal(t, 0, rc.Start)
	assert.Equal(t, 1, rc.Stop)

	rc, _ = stream.Pop()
	assert.Equal(t, "1d", rc.Label)
	assert.Equal(t, 1, rc.Level)

	rc, _ = stream.Pop()
	assert.Equal(t, "2d", rc.Label)
	assert.Len(t, rc.Lines, 3, "continuation lines belong to the card")
	assert.Equal(t, 2, rc.Start)
	assert.Equal(t, 5, rc.Stop)

	rc, _ = stream.Pop()
	assert.Equal(t, "3d", rc.Label)
	assert.Equal(t, 6, rc.Stop, "last card runs to end of input")
}

func TestSegment_TwoDigitLabel(t *testing.T) {
	stream, err := Segment([]string{"10d constant data"}, 72)
	require.NoError(t, err)
	rc, ok := stream.Peek()
	require.True(t, ok)
	assert.Equal(t, "10d", rc.Label)
	assert.Equal(t, 10, rc.Level)
}

func TestSegment_EmptyInput(t *testing.T) {
	_, err := Segment(nil, 72)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestSegment_LineTooWide(t *testing.T) {
	_, err := Segment([]string{" 0v " + strings.Repeat("x", 70)}, 72)
	require.ErrorIs(t, err, ErrLineTooWide)

	var ce *CardError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, ce.Line)
}

func TestSegment_NonLabelLinesIgnoredBeforeFirstCard(t *testing.T) {
	stream, err := Segment([]string{"header junk", " 0v file id"}, 72)
	require.NoError(t, err)
	require.Equal(t, 1, stream.Len())
	rc, _ := stream.Peek()
	assert.Equal(t, 1, rc.Start)
}

func TestStream_PopFront(t *testing.T) {
	stream, err := Segment([]string{" 0v a", " 1d   b"}, 72)
	require.NoError(t, err)

	first, ok := stream.Peek()
	require.True(t, ok)
	popped, ok := stream.Pop()
	require.True(t, ok)
	assert.Equal(t, first, popped, "peek does not consume")

	_, ok = stream.Pop()
	require.True(t, ok)
	_, ok = stream.Pop()
	assert.False(t, ok, "drained stream stays empty")
	assert.Equal(t, 0, stream.Len())
}
