package matxs

import "github.com/neutronics/cardimage/card"

// Document is the decoded tree of one MATXS file.
//
// The assembler owns the tree during construction; once Assemble
// returns, the document is handed to the caller and no longer written.
type Document struct {
	FileIdentification FileIdentification `json:"file_identification" yaml:"file_identification"`
	FileControl        FileControl        `json:"file_control" yaml:"file_control"`
	Hollerith          Hollerith          `json:"hollerith_identification" yaml:"hollerith_identification"`
	FileData           FileData           `json:"file_data" yaml:"file_data"`
	Particles          []Particle         `json:"particles" yaml:"particles"`
	Materials          []Material         `json:"materials" yaml:"materials"`
}

// FileIdentification is the decoded 0v card.
type FileIdentification card.Record

// HName returns the hollerith file name.
func (f FileIdentification) HName() string { return f["hname"].Str() }

// IVers returns the file version number.
func (f FileIdentification) IVers() int64 { return f["ivers"].Int() }

// FileControl is the decoded 1d card.
type FileControl card.Record

func (f FileControl) NPart() int64 { return f["npart"].Int() }
func (f FileControl) NType() int64 { return f["ntype"].Int() }
func (f FileControl) NHoll() int64 { return f["nholl"].Int() }
func (f FileControl) NMat() int64 { return f["nmat"].Int() }
func (f FileControl) MaxW() int64 { return f["maxw"].Int() }
func (f FileControl) Length() int64 { return f["length"].Int() }

// Hollerith is the decoded 2d set hollerith identification card.
type Hollerith card.Record

// HSetID returns the hollerith identification words.
func (h Hollerith) HSetID() []string {
	return strList(card.Record(h), "hsetid")
}

// FileData is the decoded 3d card.
type FileData card.Record

// HPrt returns the hollerith particle names.
func (f FileData) HPrt() []string { return strList(card.Record(f), "hprt") }

// HType returns the hollerith data-type names.
func (f FileData) HType() []string { return strList(card.Record(f), "htype") }

// HMatN returns the hollerith material names.
func (f FileData) HMatN() []string { return strList(card.Record(f), "hmatn") }

// NGrp returns the group count per particle.
func (f FileData) NGrp() []int64 { return intList(card.Record(f), "ngrp") }

// NSubm returns the submaterial count per material.
func (f FileData) NSubm() []int64 { return intList(card.Record(f), "nsubm") }

// LocM returns the material location words.
func (f FileData) LocM() []int64 { return intList(card.Record(f), "locm") }

// Particle holds the per-particle nodes of the tree.
type Particle struct {
	GroupStructure GroupStructure `json:"group_structure" yaml:"group_structure"`
}

// GroupStructure is a decoded 4d card: the energy group boundaries and
// minimum energy for one particle.
type GroupStructure card.Record

// GroupBounds returns the maximum energy bound per group.
func (g GroupStructure) GroupBounds() []float64 { return realList(card.Record(g), "gpb") }

// EMin returns the minimum energy bound.
func (g GroupStructure) EMin() float64 { return g["emin"].Real() }

// Material holds one per-material node: its control card and the
// ordered submaterial subtrees.
type Material struct {
	MaterialControl MaterialControl `json:"material_control" yaml:"material_control"`
	Submaterials    []Submaterial   `json:"submaterials" yaml:"submaterials"`
}

// MaterialControl is a decoded 5d card. The table columns (temp, sigz,
// itype, n1d, n2d, locs) carry one entry per submaterial.
type MaterialControl card.Record

func (m MaterialControl) HMat() string { return m["hmat"].Str() }
func (m MaterialControl) AMass() float64 { return m["amass"].Real() }
func (m MaterialControl) Temp() []float64 { return realList(card.Record(m), "temp") }
func (m MaterialControl) SigZ() []float64 { return realList(card.Record(m), "sigz") }
func (m MaterialControl) IType() []int64 { return intList(card.Record(m), "itype") }
func (m MaterialControl) N1D() []int64 { return intList(card.Record(m), "n1d") }
func (m MaterialControl) N2D() []int64 { return intList(card.Record(m), "n2d") }
func (m MaterialControl) LocS() []int64 { return intList(card.Record(m), "locs") }

// Submaterial is the vector-control / matrix-control subtree of one
// submaterial. The 6d-10d block schemas are not finalized; the nodes
// exist so the tree shape is stable once they are.
type Submaterial struct {
	VectorControl *VectorControl `json:"vector_control,omitempty" yaml:"vector_control,omitempty"`
	MatrixControl *MatrixControl `json:"matrix_control,omitempty" yaml:"matrix_control,omitempty"`
}

// VectorControl is the 6d subtree.
type VectorControl struct {
	VectorBlocks []VectorBlock `json:"vector_blocks" yaml:"vector_blocks"`
}

// VectorBlock is a 7d block.
type VectorBlock struct{}

// MatrixControl is the 8d subtree.
type MatrixControl struct {
	SubBlocks        []MatrixSubBlock  `json:"sub_blocks" yaml:"sub_blocks"`
	ConstantSubBlock *ConstantSubBlock `json:"constant_sub_block,omitempty" yaml:"constant_sub_block,omitempty"`
}

// MatrixSubBlock is a 9d block.
type MatrixSubBlock struct{}

// ConstantSubBlock is a 10d block.
type ConstantSubBlock struct{}

func strList(rec card.Record, key string) []string {
	vs := rec[key].List()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Str()
	}
	return out
}

func intList(rec card.Record, key string) []int64 {
	vs := rec[key].List()
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.Int()
	}
	return out
}

func realList(rec card.Record, key string) []float64 {
	vs := rec[key].List()
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Real()
	}
	return out
}
