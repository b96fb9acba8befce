package gochem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMILESEmptyMoleculeIsEmptyString(t *testing.T) {
	m := NewMolecule()
	s, err := SMILES(m)
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestSMILESLinearChainHasNoRingDigitsOrBranches(t *testing.T) {
	m := NewMolecule()
	c1 := m.AddAtom(6, 0, 0, false)
	c2 := m.AddAtom(6, 0, 0, false)
	o := m.AddAtom(8, 0, 0, false)
	require.NoError(t, m.AddBond(c1, c2, 1, false))
	require.NoError(t, m.AddBond(c2, o, 1, false))

	s, err := SMILES(m)
	require.NoError(t, err)
	require.Equal(t, "CCO", s)
}

func TestSMILESTriangleOpensAndClosesRingDigit(t *testing.T) {
	m := NewMolecule()
	a := m.AddAtom(6, 0, 0, false)
	b := m.AddAtom(6, 0, 0, false)
	c := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(a, b, 1, false))
	require.NoError(t, m.AddBond(b, c, 1, false))
	require.NoError(t, m.AddBond(c, a, 1, false))

	s, err := SMILES(m)
	require.NoError(t, err)
	require.Equal(t, "C1CC1", s)
}

func TestSMILESDisconnectedFragmentsJoinedByDot(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(6, 0, 0, false)
	m.AddAtom(6, 0, 0, false)

	s, err := SMILES(m)
	require.NoError(t, err)
	require.Equal(t, "C.C", s)
}

func TestSMILESDoubleAndTripleBondSymbols(t *testing.T) {
	m := NewMolecule()
	a := m.AddAtom(6, 0, 0, false)
	b := m.AddAtom(6, 0, 0, false)
	c := m.AddAtom(7, 0, 0, false)
	require.NoError(t, m.AddBond(a, b, 2, false))
	require.NoError(t, m.AddBond(b, c, 3, false))

	s, err := SMILES(m)
	require.NoError(t, err)
	require.Equal(t, "C=C#N", s)
}

func TestWriteAtomLowercasesAromaticOrganicAtoms(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(6, 0, 0, true)
	s := &smilesWriter{mol: m}
	require.Equal(t, "c", s.writeAtom(0))
}

func TestWriteAtomBracketsChargedAtoms(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(7, 1, 0, false)
	s := &smilesWriter{mol: m}
	require.Equal(t, "[N+]", s.writeAtom(0))
}

func TestWriteAtomBracketsMultiplyChargedAtoms(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(8, -2, 0, false)
	s := &smilesWriter{mol: m}
	require.Equal(t, "[O-2]", s.writeAtom(0))
}

func TestWriteAtomBracketsNonOrganicElements(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(26, 0, 0, false)
	s := &smilesWriter{mol: m}
	require.Equal(t, "[Fe]", s.writeAtom(0))
}

func TestWriteAtomIncludesImplicitHydrogenCountInBrackets(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(7, 1, 2, false)
	s := &smilesWriter{mol: m}
	require.Equal(t, "[NH2+]", s.writeAtom(0))
}

func TestRingKeyIsOrderIndependent(t *testing.T) {
	require.Equal(t, ringKey(3, 1), ringKey(1, 3))
}
