package matxs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/neutronics/cardimage/card"
)

// Options configures an assembly pass.
type Options struct {
	// LineWidth is the physical line limit; zero selects the classic
	// 72-column card width.
	LineWidth int
	// Logger receives per-card debug events; nil disables logging.
	Logger *zap.Logger
}

// Assembler consumes a raw-card stream in grammar order and builds the
// document tree:
//
//	Start → FileIdentification → FileControl → HollerithIdentification
//	      → FileData → {Particle}* → {Material}* → End
//
// Each transition peeks the next pending card's label, resolves the
// card's schema against the results decoded so far, reflows it to the
// line width, decodes the card and threads its result back into the
// store. The particle and material repetition counts come out of the
// store (npart, nmat); running out of cards closes an open repeatable
// section with the repetitions consumed so far.
//
// An assembler owns its stream and store exclusively and is not safe
// for concurrent use. Once Assemble succeeds, re-invoking it returns
// the completed tree without reprocessing.
type Assembler struct {
	stream *card.Stream
	store  *card.ResultStore
	width  int
	log    *zap.Logger

	doc *Document
}

// NewAssembler creates an assembler over a segmented card stream.
func NewAssembler(stream *card.Stream, opts Options) *Assembler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	width := opts.LineWidth
	if width <= 0 {
		width = card.DefaultLineWidth
	}
	return &Assembler{
		stream: stream,
		store:  card.NewResultStore(),
		width:  width,
		log:    log,
	}
}

// Store exposes the result store keyed by card label. Downstream schema
// resolution for the not-yet-finalized block sections reads the same
// store the assembler filled.
func (a *Assembler) Store() *card.ResultStore { return a.store }

// Assemble runs the grammar to stream exhaustion and returns the
// document tree.
func (a *Assembler) Assemble() (*Document, error) {
	if a.doc != nil {
		return a.doc, nil
	}
	doc := &Document{}

	header := []struct {
		label  string
		assign func(card.Record)
	}{
		{LabelFileIdentification, func(r card.Record) { doc.FileIdentification = FileIdentification(r) }},
		{LabelFileControl, func(r card.Record) { doc.FileControl = FileControl(r) }},
		{LabelHollerith, func(r card.Record) { doc.Hollerith = Hollerith(r) }},
		{LabelFileData, func(r card.Record) { doc.FileData = FileData(r) }},
	}
	for _, h := range header {
		rc, ok := a.stream.Peek()
		if !ok {
			a.doc = doc
			return doc, nil
		}
		if rc.Label != h.label {
			return nil, unexpectedLabel(rc, h.label)
		}
		res, err := a.consume(h.label, 0)
		if err != nil {
			return nil, err
		}
		h.assign(res.First())
	}

	if err := a.particles(doc); err != nil {
		return nil, err
	}
	if err := a.materials(doc); err != nil {
		return nil, err
	}

	if rc, ok := a.stream.Peek(); ok {
		if rc.Level >= 6 {
			return nil, &card.CardError{
				Label: rc.Label, Line: rc.Start,
				Msg: "schema not finalized",
				Err: card.ErrUnsupportedCardType,
			}
		}
		return nil, unexpectedLabel(rc, "end of stream")
	}

	a.doc = doc
	return doc, nil
}

// particles consumes one 4d card per declared particle.
func (a *Assembler) particles(doc *Document) error {
	npart, err := a.store.Int(card.Ref{Label: LabelFileControl, Key: "npart"})
	if err != nil {
		return err
	}
	for i := 0; i < int(npart); i++ {
		rc, ok := a.stream.Peek()
		if !ok {
			return nil
		}
		if rc.Label != LabelGroupStructure {
			return unexpectedLabel(rc, LabelGroupStructure)
		}
		res, err := a.consume(LabelGroupStructure, i)
		if err != nil {
			return err
		}
		doc.Particles = append(doc.Particles, Particle{
			GroupStructure: GroupStructure(res.First()),
		})
	}
	return nil
}

// materials consumes one 5d card per declared material, with one
// placeholder submaterial node per declared submaterial. A 6d-10d
// block card inside a material surfaces the unsupported card type.
func (a *Assembler) materials(doc *Document) error {
	nmat, err := a.store.Int(card.Ref{Label: LabelFileControl, Key: "nmat"})
	if err != nil {
		return err
	}
	nsubm, err := a.store.IntList(card.Ref{Label: LabelFileData, Key: "nsubm"})
	if err != nil {
		return err
	}
	for i := 0; i < int(nmat); i++ {
		rc, ok := a.stream.Peek()
		if !ok {
			return nil
		}
		if rc.Label != LabelMaterialControl {
			return unexpectedLabel(rc, LabelMaterialControl)
		}
		res, err := a.consume(LabelMaterialControl, i)
		if err != nil {
			return err
		}
		mat := Material{
			MaterialControl: MaterialControl(res.First()),
			Submaterials:    make([]Submaterial, nsubm[i]),
		}

		// Block cards belong to this material's submaterials; their
		// schemas are future catalogue entries.
		if rc, ok := a.stream.Peek(); ok && rc.Level >= 6 {
			if _, err := a.consume(rc.Label, 0); err != nil {
				return err
			}
		}

		doc.Materials = append(doc.Materials, mat)
	}
	return nil
}

// consume pops the next card, builds and resolves its schema, reflows
// it to the line width, decodes the body and records the result. For
// repeated per-particle/per-material cards the store key carries the
// occurrence ("4d", "4d#2", ...), so every occurrence stays addressable
// while references like ("3d","ngrp") stay stable.
func (a *Assembler) consume(label string, occurrence int) (card.Result, error) {
	rc, ok := a.stream.Pop()
	if !ok {
		return card.Result{}, &card.CardError{Label: label, Line: -1, Msg: "stream drained", Err: card.ErrUnexpectedCardLabel}
	}

	build, ok := catalogue[label]
	if !ok {
		return card.Result{}, unexpectedLabel(rc, "known card label")
	}
	schema, err := build(a.store, occurrence)
	if err != nil {
		return card.Result{}, err
	}
	resolved, err := card.Resolve(schema, a.store)
	if err != nil {
		return card.Result{}, err
	}
	resolved.Fields, err = card.Reflow(resolved.Fields, a.width)
	if err != nil {
		return card.Result{}, err
	}
	res, err := card.Decode(resolved, rc)
	if err != nil {
		return card.Result{}, err
	}

	key := label
	if occurrence > 0 {
		key = fmt.Sprintf("%s#%d", label, occurrence+1)
	}
	if err := a.store.Put(key, res); err != nil {
		return card.Result{}, err
	}

	a.log.Debug("card decoded",
		zap.String("label", label),
		zap.Int("occurrence", occurrence),
		zap.Int("lines", len(rc.Lines)),
		zap.Int("records", len(res.Records)))
	return res, nil
}

func unexpectedLabel(rc card.RawCard, want string) error {
	return &card.CardError{
		Label: rc.Label,
		Line:  rc.Start,
		Msg:   fmt.Sprintf("want %s", want),
		Err:   card.ErrUnexpectedCardLabel,
	}
}
