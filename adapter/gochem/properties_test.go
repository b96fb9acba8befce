package gochem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMolecularWeightSumsMassesAndImplicitHydrogens(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(6, 0, 4, false) // methane: C + 4 implicit H

	weight := MolecularWeight(m)
	require.InDelta(t, 12.01+4*1.008, weight, 1e-9)
}

func TestNumHydrogenBondAcceptorsCountsUnchargedLowConnectivityOAndN(t *testing.T) {
	m := NewMolecule()
	o := m.AddAtom(8, 0, 0, false)
	n := m.AddAtom(7, 0, 0, false)
	nPlus := m.AddAtom(7, 1, 0, false)
	c := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(o, c, 1, false))
	require.NoError(t, m.AddBond(n, c, 1, false))
	require.NoError(t, m.AddBond(nPlus, c, 1, false))

	require.Equal(t, 2, NumHydrogenBondAcceptors(m))
}

func TestNumHydrogenBondDonorsRequiresImplicitHydrogens(t *testing.T) {
	m := NewMolecule()
	m.AddAtom(8, 0, 1, false) // -OH
	m.AddAtom(7, 0, 0, false) // tertiary N, no H
	m.AddAtom(6, 0, 3, false) // carbon, doesn't count even with H

	require.Equal(t, 1, NumHydrogenBondDonors(m))
}

func TestNumRotatableBondsExcludesTerminalAndRingEdges(t *testing.T) {
	m := NewMolecule()
	// Open chain: a-b-c-d, all single bonds. The middle bond b-c is the
	// only one with a non-terminal atom on both ends.
	a := m.AddAtom(6, 0, 0, false)
	b := m.AddAtom(6, 0, 0, false)
	c := m.AddAtom(6, 0, 0, false)
	d := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(a, b, 1, false))
	require.NoError(t, m.AddBond(b, c, 1, false))
	require.NoError(t, m.AddBond(c, d, 1, false))

	require.Equal(t, 1, NumRotatableBonds(m))
}

func TestNumRotatableBondsExcludesDoubleBonds(t *testing.T) {
	m := NewMolecule()
	a := m.AddAtom(6, 0, 0, false)
	b := m.AddAtom(6, 0, 0, false)
	c := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(a, b, 2, false))
	require.NoError(t, m.AddBond(b, c, 1, false))

	require.Equal(t, 0, NumRotatableBonds(m))
}

func TestIsLikelyRingEdgeRequiresTwoSharedNeighbors(t *testing.T) {
	// A plain triangle only shares one neighbour per edge (the third
	// vertex), which is below this heuristic's threshold.
	m := NewMolecule()
	a := m.AddAtom(6, 0, 0, false)
	b := m.AddAtom(6, 0, 0, false)
	c := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(a, b, 1, false))
	require.NoError(t, m.AddBond(b, c, 1, false))
	require.NoError(t, m.AddBond(c, a, 1, false))

	require.False(t, isLikelyRingEdge(m, a, b))
}

func TestIsLikelyRingEdgeDetectsTwoSharedNeighbors(t *testing.T) {
	m := NewMolecule()
	u := m.AddAtom(6, 0, 0, false)
	v := m.AddAtom(6, 0, 0, false)
	x := m.AddAtom(6, 0, 0, false)
	y := m.AddAtom(6, 0, 0, false)
	require.NoError(t, m.AddBond(u, v, 1, false))
	require.NoError(t, m.AddBond(u, x, 1, false))
	require.NoError(t, m.AddBond(u, y, 1, false))
	require.NoError(t, m.AddBond(v, x, 1, false))
	require.NoError(t, m.AddBond(v, y, 1, false))

	require.True(t, isLikelyRingEdge(m, u, v))
}
