package wln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveMultiplierCarbonsPrefersForwardTripleBond(t *testing.T) {
	p := NewParser()
	g, _, err := p.Parse("BCB")
	require.NoError(t, err)
	require.Len(t, g.Atoms, 3)

	c := g.Atoms[1]
	require.Equal(t, byte('C'), c.Code)
	require.Equal(t, 4, c.NumEdges) // fully saturated: single back, triple forward
	require.Equal(t, 1, g.Bonds[0].Order)
	require.Equal(t, 3, g.Bonds[1].Order)
}

func TestResolveMultiplierCarbonsSplitsWhenForwardHasOneSpareSlot(t *testing.T) {
	p := NewParser()
	g, _, err := p.Parse("BCQ")
	require.NoError(t, err)

	c := g.Atoms[1]
	require.Equal(t, 4, c.NumEdges)
	require.Equal(t, 2, g.Bonds[0].Order) // back bond bumped too
	require.Equal(t, 2, g.Bonds[1].Order) // forward bond to Q
}

func TestResolveMultiplierCarbonsSingleBumpWhenOnlyOneEdge(t *testing.T) {
	p := NewParser()
	g, _, err := p.Parse("CQ")
	require.NoError(t, err)

	c := g.Atoms[0]
	require.Equal(t, 2, c.NumEdges)
	require.Equal(t, 2, g.Bonds[0].Order)
}

func TestExpandDioxoWidensAllowedEdgesByFour(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	anchor, _ := g.AllocateAtom('W', "N", 3, 1)
	other, _ := g.AllocateAtom('C', "C", 4, 2)
	_, err := g.AllocateEdge(anchor, other, 0)
	require.NoError(t, err)

	require.NoError(t, expandDioxo(g, []AtomID{anchor}))
	a := g.Atom(anchor)
	require.Equal(t, 5, a.AllowedEdges) // 1 existing bond + 4 for two double bonds
	require.Equal(t, 5, a.NumEdges)
	require.Len(t, a.Edges, 3)
}

func TestExpandCarboxylWidensToFourAndAddsCarbonylOxygen(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	anchor, _ := g.AllocateAtom('V', "C", 2, 1)

	require.NoError(t, expandCarboxyl(g, []AtomID{anchor}))
	a := g.Atom(anchor)
	require.Equal(t, 4, a.AllowedEdges)
	require.Equal(t, 2, a.NumEdges) // one new double bond = 2 valence units
	require.Len(t, a.Edges, 1)
	require.Equal(t, 2, g.Bonds[0].Order)
}

func TestFillDefaultMethylsFillsXToValenceAndYToThreeChildren(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	x, _ := g.AllocateAtom('X', "C", 4, 1)
	y, _ := g.AllocateAtom('Y', "C", 4, 2)

	require.NoError(t, fillDefaultMethyls(g, []AtomID{x}, []AtomID{y}))
	require.Equal(t, 4, g.Atom(x).NumEdges)
	require.Len(t, g.Atom(y).Edges, 3)
}

func TestApplyChargesUsesSourcePosition(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	a, _ := g.AllocateAtom('N', "N", 3, 5)

	err := applyCharges(g, []ChargeAssignment{{Index: 5, Delta: +1}})
	require.NoError(t, err)
	require.Equal(t, 1, g.Atom(a).Charge)
}

func TestApplyChargesUnknownIndexFails(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	err := applyCharges(g, []ChargeAssignment{{Index: 99, Delta: +1}})
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, ChargeIndex, pe.Kind)
}

func TestApplyChargesIgnoresZeroIndex(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	require.NoError(t, applyCharges(g, []ChargeAssignment{{Index: 0, Delta: +1}}))
}
