// Package matxs decodes MATXS-format multigroup cross-section files
// into a document tree, using the card-image engine in package card.
//
// File structure, in card order:
//
//	0v   file identification
//	1d   file control
//	2d   set hollerith identification
//	3d   file data
//	particles:
//	  4d group structure
//	materials:
//	  5d material control
//	  submaterials:
//	    6d vector control, 7d vector blocks
//	    8d matrix control, 9d matrix data, 10d constant data
//
// The 6d-10d block schemas are not finalized; their labels decode to
// ErrUnsupportedCardType until their catalogue entries land.
package matxs

import "github.com/neutronics/cardimage/card"

// Parse segments the input lines and assembles the document tree. It
// returns both the tree and the result store keyed by card label; the
// store is the diagnostic view and the input to schema resolution for
// the block sections.
//
// Lines are already split on file line boundaries, without trailing
// terminators, and none may exceed the configured line width.
func Parse(lines []string, opts Options) (*Document, *card.ResultStore, error) {
	stream, err := card.Segment(lines, opts.LineWidth)
	if err != nil {
		return nil, nil, err
	}
	a := NewAssembler(stream, opts)
	doc, err := a.Assemble()
	if err != nil {
		return nil, a.Store(), err
	}
	return doc, a.Store(), nil
}
