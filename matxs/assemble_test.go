package matxs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neutronics/cardimage/card"
)

// testLines is a synthetic MATXS file: 2 particles (3 and 2 groups),
// 1 material with 2 submaterials. The 3d and 5d cards spill onto
// continuation lines exactly where a 72-column reflow puts them.
func testLines() []string {
	return []string{
		" 0v " + "tstlib  " + " " + "user1   " + "user2   " + " " + "     1",
		" 1d   " + "     2" + "     1" + "     3" + "     1" + "   100" + "   500",
		" 2d " + "testset " + "matxs   " + "lib     ",
		" 3d " + "    " + "neut    " + "gamma   " + "nscat   " + "u235    " +
			"     3" + "     2" + "     1" + "     1" + "     2",
		"     7",
		" 4d " + "        " + "  2.00000+07" + "  1.00000+06" + "  1.00000+03" + "  1.00000-05",
		" 4d " + "        " + "  1.50000+07" + "  1.00000+04" + "  1.00000-04",
		" 5d " + "u235    " + "  2.33025+02" + "  2.93000+02" + "  1.00000+10" +
			"     1" + "     5" + "     2" + "     1",
		"  6.00000+02" + "  1.00000+02" + "     1" + "     5" + "     2" + "    11",
	}
}

func TestAssemble_FullFile(t *testing.T) {
	doc, store, err := Parse(testLines(), Options{})
	require.NoError(t, err)
	require.NotNil(t, doc)

	t.Run("file identification", func(t *testing.T) {
		assert.Equal(t, "tstlib  ", doc.FileIdentification.HName())
		assert.Equal(t, int64(1), doc.FileIdentification.IVers())
	})

	t.Run("file control", func(t *testing.T) {
		assert.Equal(t, int64(2), doc.FileControl.NPart())
		assert.Equal(t, int64(1), doc.FileControl.NType())
		assert.Equal(t, int64(3), doc.FileControl.NHoll())
		assert.Equal(t, int64(1), doc.FileControl.NMat())
		assert.Equal(t, int64(100), doc.FileControl.MaxW())
		assert.Equal(t, int64(500), doc.FileControl.Length())
	})

	t.Run("hollerith identification", func(t *testing.T) {
		assert.Equal(t, []string{"testset ", "matxs   ", "lib     "}, doc.Hollerith.HSetID())
	})

	t.Run("file data", func(t *testing.T) {
		assert.Equal(t, []string{"neut    ", "gamma   "}, doc.FileData.HPrt())
		assert.Equal(t, []string{"nscat   "}, doc.FileData.HType())
		assert.Equal(t, []string{"u235    "}, doc.FileData.HMatN())
		assert.Equal(t, []int64{3, 2}, doc.FileData.NGrp())
		assert.Equal(t, []int64{2}, doc.FileData.NSubm())
		assert.Equal(t, []int64{7}, doc.FileData.LocM())
	})

	t.Run("particles", func(t *testing.T) {
		require.Len(t, doc.Particles, 2)

		g0 := doc.Particles[0].GroupStructure
		require.Len(t, g0.GroupBounds(), 3)
		assert.InEpsilon(t, 2.0e7, g0.GroupBounds()[0], 1e-9)
		assert.InEpsilon(t, 1.0e6, g0.GroupBounds()[1], 1e-9)
		assert.InEpsilon(t, 1.0e3, g0.GroupBounds()[2], 1e-9)
		assert.InEpsilon(t, 1.0e-5, g0.EMin(), 1e-9)

		g1 := doc.Particles[1].GroupStructure
		require.Len(t, g1.GroupBounds(), 2)
		assert.InEpsilon(t, 1.0e-4, g1.EMin(), 1e-9)
	})

	t.Run("materials", func(t *testing.T) {
		require.Len(t, doc.Materials, 1)
		mc := doc.Materials[0].MaterialControl
		assert.Equal(t, "u235    ", mc.HMat())
		assert.InEpsilon(t, 233.025, mc.AMass(), 1e-9)
		require.Len(t, mc.Temp(), 2)
		assert.InEpsilon(t, 293.0, mc.Temp()[0], 1e-9)
		assert.InEpsilon(t, 600.0, mc.Temp()[1], 1e-9)
		assert.Equal(t, []int64{1, 1}, mc.IType())
		assert.Equal(t, []int64{5, 5}, mc.N1D())
		assert.Equal(t, []int64{2, 2}, mc.N2D())
		assert.Equal(t, []int64{1, 11}, mc.LocS())
		assert.Len(t, doc.Materials[0].Submaterials, 2)
	})

	t.Run("result store", func(t *testing.T) {
		assert.Equal(t, []string{"0v", "1d", "2d", "3d", "4d", "4d#2", "5d"}, store.Labels())
		n, err := store.Int(card.Ref{Label: "1d", Key: "npart"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestAssemble_CachedResult(t *testing.T) {
	stream, err := card.Segment(testLines(), 0)
	require.NoError(t, err)
	a := NewAssembler(stream, Options{})

	first, err := a.Assemble()
	require.NoError(t, err)
	second, err := a.Assemble()
	require.NoError(t, err)
	assert.Same(t, first, second, "completed assembler returns the cached tree")
	assert.Equal(t, 0, stream.Len())
}

func TestAssemble_UnexpectedCardLabel(t *testing.T) {
	lines := testLines()
	// Swap the 1d and 2d cards.
	lines[1], lines[2] = lines[2], lines[1]
	_, _, err := Parse(lines, Options{})
	require.ErrorIs(t, err, card.ErrUnexpectedCardLabel)
}

// A repeatable section's card may not appear before the card carrying
// its repetition count.
func TestAssemble_GroupStructureBeforeFileData(t *testing.T) {
	lines := testLines()
	lines = append(lines[:3], lines[5:]...) // drop 3d and its continuation
	_, _, err := Parse(lines, Options{})
	require.ErrorIs(t, err, card.ErrUnexpectedCardLabel)
}

func TestAssemble_TruncatedStream(t *testing.T) {
	t.Run("after file data", func(t *testing.T) {
		doc, _, err := Parse(testLines()[:5], Options{})
		require.NoError(t, err)
		assert.Empty(t, doc.Particles)
		assert.Empty(t, doc.Materials)
	})
	t.Run("after first particle", func(t *testing.T) {
		doc, _, err := Parse(testLines()[:6], Options{})
		require.NoError(t, err)
		assert.Len(t, doc.Particles, 1)
		assert.Empty(t, doc.Materials)
	})
}

// A grammar card left over after the material section is a sequencing
// error, not an unsupported card type.
func TestAssemble_TrailingGrammarCard(t *testing.T) {
	lines := append(testLines(), " 4d "+"        "+"  1.00000+07"+"  1.00000-05")
	_, _, err := Parse(lines, Options{})
	require.ErrorIs(t, err, card.ErrUnexpectedCardLabel)
	assert.NotErrorIs(t, err, card.ErrUnsupportedCardType)
}

func TestAssemble_UnsupportedBlockCard(t *testing.T) {
	lines := append(testLines(), " 6d vector control")
	_, _, err := Parse(lines, Options{})
	require.ErrorIs(t, err, card.ErrUnsupportedCardType)
}

func TestAssemble_TitleSelfCheck(t *testing.T) {
	lines := testLines()
	lines[0] = " 0x " + lines[0][4:]
	_, _, err := Parse(lines, Options{})
	// The mangled label no longer segments as a card, so the grammar
	// sees 1d where 0v is required.
	require.ErrorIs(t, err, card.ErrUnexpectedCardLabel)
}

func TestAssemble_ExpectedValueMismatch(t *testing.T) {
	lines := testLines()
	// A 1d card whose title field reads back wrong.
	lines[1] = " 1d x " + lines[1][6:]
	_, _, err := Parse(lines, Options{})
	require.ErrorIs(t, err, card.ErrExpectedValueMismatch)
}

func TestParse_EmptyInput(t *testing.T) {
	_, _, err := Parse(nil, Options{})
	require.ErrorIs(t, err, card.ErrEmptyInput)
}
