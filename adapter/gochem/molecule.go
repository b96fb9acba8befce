// Package gochem is a concrete wln.MolBuilder adapted from the teacher's
// src/molecule/molecule.go arena (Atom/Bond/Vertex slices addressed by
// dense int indices). Where the teacher's Molecule additionally carries
// 3D/2D coordinates, stereochemistry, and template/pseudo-atom fields for
// a general-purpose cheminformatics engine, this adapter keeps only what
// a WLN reader's output needs: atomic number, charge, implicit hydrogens,
// aromaticity, bond order, and ring membership.
package gochem

import "github.com/pkg/errors"

// Atom mirrors the teacher's molecule.Atom, trimmed to the fields a WLN
// read populates.
type Atom struct {
	Number            int
	Charge            int
	ImplicitHydrogens int
	Aromatic          bool
}

// Bond mirrors the teacher's molecule.Bond.
type Bond struct {
	Beg, End int
	Order    int
	Aromatic bool
}

// Vertex mirrors the teacher's molecule.Vertex: the incident bond indices
// for one atom, rebuilt as bonds are added instead of kept as a reverse
// pointer array.
type Vertex struct {
	Edges []int
}

// Ring records one ring system's member atom indices in locant order.
type Ring struct {
	AtomIndices []int
	Aromatic    bool
}

// Molecule is the adapter's concrete output structure: a pure-Go,
// dependency-free molecular graph implementing wln.MolBuilder.
type Molecule struct {
	Atoms    []Atom
	Bonds    []Bond
	Vertices []Vertex
	Rings    []Ring

	finished bool
}

// NewMolecule returns an empty builder target.
func NewMolecule() *Molecule {
	return &Molecule{}
}

// AddAtom implements wln.MolBuilder, mirroring the teacher's
// Molecule.AddAtom: append the record, grow Vertices in lockstep.
func (m *Molecule) AddAtom(atomicNumber, charge, implicitHydrogens int, aromatic bool) int {
	idx := len(m.Atoms)
	m.Atoms = append(m.Atoms, Atom{
		Number:            atomicNumber,
		Charge:            charge,
		ImplicitHydrogens: implicitHydrogens,
		Aromatic:          aromatic,
	})
	m.Vertices = append(m.Vertices, Vertex{})
	return idx
}

// AddBond implements wln.MolBuilder, mirroring Molecule.AddBond: append
// the record and cross-link both vertices' edge lists.
func (m *Molecule) AddBond(fromIndex, toIndex, order int, aromatic bool) error {
	if fromIndex < 0 || fromIndex >= len(m.Atoms) || toIndex < 0 || toIndex >= len(m.Atoms) {
		return errors.Errorf("AddBond: atom index out of range (%d, %d) of %d atoms", fromIndex, toIndex, len(m.Atoms))
	}
	idx := len(m.Bonds)
	m.Bonds = append(m.Bonds, Bond{Beg: fromIndex, End: toIndex, Order: order, Aromatic: aromatic})
	m.Vertices[fromIndex].Edges = append(m.Vertices[fromIndex].Edges, idx)
	m.Vertices[toIndex].Edges = append(m.Vertices[toIndex].Edges, idx)
	return nil
}

// AddRing implements wln.MolBuilder.
func (m *Molecule) AddRing(atomIndices []int, aromatic bool) error {
	if len(atomIndices) == 0 {
		return errors.New("AddRing: empty ring")
	}
	m.Rings = append(m.Rings, Ring{AtomIndices: append([]int(nil), atomIndices...), Aromatic: aromatic})
	return nil
}

// Finish implements wln.MolBuilder; this adapter has no deferred work,
// it only sets the unexported finished flag. GrossFormula and
// MolecularWeight do not check that flag.
func (m *Molecule) Finish() error {
	m.finished = true
	return nil
}

// AtomCount and BondCount mirror the teacher's same-named accessors.
func (m *Molecule) AtomCount() int { return len(m.Atoms) }
func (m *Molecule) BondCount() int { return len(m.Bonds) }

// GetNeighbors mirrors Molecule.GetNeighbors.
func (m *Molecule) GetNeighbors(atomIdx int) []int {
	neighbors := make([]int, 0, len(m.Vertices[atomIdx].Edges))
	for _, eidx := range m.Vertices[atomIdx].Edges {
		b := m.Bonds[eidx]
		if b.Beg == atomIdx {
			neighbors = append(neighbors, b.End)
		} else {
			neighbors = append(neighbors, b.Beg)
		}
	}
	return neighbors
}
