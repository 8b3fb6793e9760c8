package matxs

import (
	"fmt"

	"github.com/neutronics/cardimage/card"
)

// Card labels in grammar order.
const (
	LabelFileIdentification = "0v"
	LabelFileControl        = "1d"
	LabelHollerith          = "2d"
	LabelFileData           = "3d"
	LabelGroupStructure     = "4d"
	LabelMaterialControl    = "5d"
	LabelVectorControl      = "6d"
	LabelVectorBlock        = "7d"
	LabelMatrixControl      = "8d"
	LabelMatrixData         = "9d"
	LabelConstantData       = "10d"
)

// SchemaFunc builds the schema for one occurrence of a card. For cards
// repeated per particle or per material, index is the zero-based
// occurrence; fixed header cards ignore it. Construction may read
// earlier results out of the store (e.g. the 4d group count comes from
// the 3d ngrp array).
type SchemaFunc func(store *card.ResultStore, index int) (card.Schema, error)

// catalogue is the static table from card label to its schema
// constructor. The 6d-10d vector/matrix/constant block layouts are not
// finalized; their entries fail with ErrUnsupportedCardType so the
// assembler can tell a declared-but-unresolved card from an unknown
// label.
var catalogue = map[string]SchemaFunc{
	LabelFileIdentification: fileIdentificationSchema,
	LabelFileControl:        fileControlSchema,
	LabelHollerith:          hollerithSchema,
	LabelFileData:           fileDataSchema,
	LabelGroupStructure:     groupStructureSchema,
	LabelMaterialControl:    materialControlSchema,
	LabelVectorControl:      unsupportedSchema(LabelVectorControl),
	LabelVectorBlock:        unsupportedSchema(LabelVectorBlock),
	LabelMatrixControl:      unsupportedSchema(LabelMatrixControl),
	LabelMatrixData:         unsupportedSchema(LabelMatrixData),
	LabelConstantData:       unsupportedSchema(LabelConstantData),
}

// format(a4,a8,1x,2a8,1x,i6)
func fileIdentificationSchema(*card.ResultStore, int) (card.Schema, error) {
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 4),
			card.TextField("hname", 8),
			card.SkipField(1),
			{Key: "huse", Kind: card.KindText, Width: 8, Count: 2, Array: true},
			card.SkipField(1),
			card.IntField("ivers", 6),
		},
		Expected: map[string]card.Value{"title": card.Str(" 0v ")},
	}, nil
}

// format(a6,6i6)
func fileControlSchema(*card.ResultStore, int) (card.Schema, error) {
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 6),
			card.IntField("npart", 6),
			card.IntField("ntype", 6),
			card.IntField("nholl", 6),
			card.IntField("nmat", 6),
			card.IntField("maxw", 6),
			card.IntField("length", 6),
		},
		Expected: map[string]card.Value{"title": card.Str(" 1d   ")},
	}, nil
}

// format(a4,9a8), nholl words of hollerith text
func hollerithSchema(*card.ResultStore, int) (card.Schema, error) {
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 4),
			{Key: "hsetid", Kind: card.KindText, Width: 8,
				CountFrom: &card.Ref{Label: LabelFileControl, Key: "nholl"}},
		},
		Expected: map[string]card.Value{"title": card.Str(" 2d ")},
	}, nil
}

// format(a4,4x,...) with every array count deferred to the 1d card
func fileDataSchema(*card.ResultStore, int) (card.Schema, error) {
	npart := &card.Ref{Label: LabelFileControl, Key: "npart"}
	ntype := &card.Ref{Label: LabelFileControl, Key: "ntype"}
	nmat := &card.Ref{Label: LabelFileControl, Key: "nmat"}
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 4),
			card.SkipField(4),
			{Key: "hprt", Kind: card.KindText, Width: 8, CountFrom: npart},
			{Key: "htype", Kind: card.KindText, Width: 8, CountFrom: ntype},
			{Key: "hmatn", Kind: card.KindText, Width: 8, CountFrom: nmat},
			{Key: "ngrp", Kind: card.KindInteger, Width: 6, CountFrom: npart},
			{Key: "jinp", Kind: card.KindInteger, Width: 6, CountFrom: ntype},
			{Key: "joutp", Kind: card.KindInteger, Width: 6, CountFrom: ntype},
			{Key: "nsubm", Kind: card.KindInteger, Width: 6, CountFrom: nmat},
			{Key: "locm", Kind: card.KindInteger, Width: 6, CountFrom: nmat},
		},
		Expected: map[string]card.Value{"title": card.Str(" 3d ")},
	}, nil
}

// format(4h 4d ,8x,1p,5e12.5/(6e12.5)): ngrp(index) group bounds plus
// the minimum energy for one particle
func groupStructureSchema(store *card.ResultStore, index int) (card.Schema, error) {
	ngrp, err := store.IntList(card.Ref{Label: LabelFileData, Key: "ngrp"})
	if err != nil {
		return card.Schema{}, err
	}
	if index >= len(ngrp) {
		return card.Schema{}, errOccurrence(LabelGroupStructure, index, len(ngrp))
	}
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 4),
			card.SkipField(8),
			card.ShiftField(1),
			{Key: "gpb", Kind: card.KindReal, Width: 12, Decimals: 5,
				Count: int(ngrp[index]), Array: true},
			card.RealField("emin", 12, 5),
		},
		Expected: map[string]card.Value{"title": card.Str(" 4d ")},
	}, nil
}

// format(4h 5d ,a8,1p,e12.5/...) with one table row per submaterial
func materialControlSchema(store *card.ResultStore, index int) (card.Schema, error) {
	nsubm, err := store.IntList(card.Ref{Label: LabelFileData, Key: "nsubm"})
	if err != nil {
		return card.Schema{}, err
	}
	if index >= len(nsubm) {
		return card.Schema{}, errOccurrence(LabelMaterialControl, index, len(nsubm))
	}
	rows := int(nsubm[index])
	return card.Schema{
		Fields: []card.Descriptor{
			card.TextField("title", 4),
			card.TextField("hmat", 8),
			card.ShiftField(1),
			card.RealField("amass", 12, 5),
			{Key: "temp", Kind: card.KindReal, Width: 12, Decimals: 5, TableRows: rows},
			{Key: "sigz", Kind: card.KindReal, Width: 12, Decimals: 5, TableRows: rows},
			{Key: "itype", Kind: card.KindInteger, Width: 6, TableRows: rows},
			{Key: "n1d", Kind: card.KindInteger, Width: 6, TableRows: rows},
			{Key: "n2d", Kind: card.KindInteger, Width: 6, TableRows: rows},
			{Key: "locs", Kind: card.KindInteger, Width: 6, TableRows: rows},
		},
		Expected: map[string]card.Value{"title": card.Str(" 5d ")},
	}, nil
}

func unsupportedSchema(label string) SchemaFunc {
	return func(*card.ResultStore, int) (card.Schema, error) {
		return card.Schema{}, &card.CardError{
			Label: label,
			Line:  -1,
			Msg:   "schema not finalized",
			Err:   card.ErrUnsupportedCardType,
		}
	}
}

func errOccurrence(label string, index, have int) error {
	return &card.CardError{
		Label: label,
		Line:  -1,
		Msg:   fmt.Sprintf("occurrence %d but only %d declared", index+1, have),
		Err:   card.ErrUnexpectedCardLabel,
	}
}
