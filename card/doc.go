// Package card implements a decoding engine for self-describing,
// line-oriented, fixed-width-field card-image files in the classic
// FORTRAN conventions used by nuclear data exchange formats
// (MATXS/GENDF).
//
// A file is a stream of "cards": labeled logical records, each spanning
// one or more physical lines. A card's layout is described by a Schema,
// an ordered list of field Descriptors. Part of the layout is only known
// at decode time: a field's value count may be deferred to a scalar
// decoded from an earlier card in the same file.
//
// The engine is a sequence of pure passes over raw text:
//
//	lines  → Segment  → Stream of RawCards
//	schema → Resolve  → schema with deferred counts bound (ResultStore)
//	schema → Reflow   → schema with explicit line breaks (72-column limit)
//	card   → Decode   → Result (field key → typed Value)
//
// Each pass produces a new value and never mutates its input, so passes
// are independently testable and repeatable. The grammar that strings
// cards into a document tree lives outside this package (see the matxs
// package for the MATXS file grammar).
//
// The supported edit descriptors are the closed set needed for
// fixed-width text/integer/real fields, column skips (nX), decimal-scale
// shifts (kP) and line continuation (/). This is not a general
// FORMAT-statement interpreter.
package card
