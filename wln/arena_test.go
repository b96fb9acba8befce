package wln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T) *AtomGraph {
	t.Helper()
	return NewAtomGraph(DefaultOptions())
}

func TestAllocateEdgeUpdatesBothEndpoints(t *testing.T) {
	g := newTestGraph(t)
	a, err := g.AllocateAtom('C', "C", 4, 1)
	require.NoError(t, err)
	b, err := g.AllocateAtom('C', "C", 4, 2)
	require.NoError(t, err)

	bond, err := g.AllocateEdge(a, b, 0)
	require.NoError(t, err)
	require.Equal(t, 1, g.Atom(a).NumEdges)
	require.Equal(t, 1, g.Atom(b).NumEdges)
	require.Equal(t, 1, g.Bonds[bond].Order)
}

func TestAllocateEdgeRejectsSelfLoop(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('C', "C", 4, 1)
	_, err := g.AllocateEdge(a, a, 0)
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, InvalidState, pe.Kind)
}

func TestAllocateEdgeRejectsDuplicateBond(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('C', "C", 4, 1)
	b, _ := g.AllocateAtom('C', "C", 4, 2)
	_, err := g.AllocateEdge(a, b, 0)
	require.NoError(t, err)
	_, err = g.AllocateEdge(a, b, 0)
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, InvalidState, pe.Kind)
}

func TestAllocateEdgeRollsBackOnValenceExceeded(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('F', "F", 1, 1) // allowed_edges = 1
	b, _ := g.AllocateAtom('C', "C", 4, 2)
	c, _ := g.AllocateAtom('C', "C", 4, 3)

	_, err := g.AllocateEdge(a, b, 0)
	require.NoError(t, err)

	_, err = g.AllocateEdge(a, c, 0)
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, ValenceExceeded, pe.Kind)

	// rollback must leave the first bond and both bookkeeping fields intact
	require.Equal(t, 1, g.Atom(a).NumEdges)
	require.Len(t, g.Atom(a).Edges, 1)
	require.Equal(t, 0, g.Atom(c).NumEdges)
	require.Len(t, g.Bonds, 1)
}

func TestUnsaturateRaisesOrderOnBothEndpoints(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('C', "C", 4, 1)
	b, _ := g.AllocateAtom('C', "C", 4, 2)
	bond, _ := g.AllocateEdge(a, b, 0)

	require.NoError(t, g.Unsaturate(bond, 1, 0))
	require.Equal(t, 2, g.Bonds[bond].Order)
	require.Equal(t, 2, g.Atom(a).NumEdges)
	require.Equal(t, 2, g.Atom(b).NumEdges)
}

func TestUnsaturateFailsPastValenceCeiling(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('F', "F", 1, 1)
	b, _ := g.AllocateAtom('C', "C", 4, 2)
	bond, _ := g.AllocateEdge(a, b, 0)

	err := g.Unsaturate(bond, 1, 0)
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, ValenceExceeded, pe.Kind)
	require.Equal(t, 1, g.Bonds[bond].Order) // untouched on failure
}

func TestSaturateFloorsAtOrderOne(t *testing.T) {
	g := newTestGraph(t)
	a, _ := g.AllocateAtom('C', "C", 4, 1)
	b, _ := g.AllocateAtom('C', "C", 4, 2)
	bond, _ := g.AllocateEdge(a, b, 0)
	require.NoError(t, g.Unsaturate(bond, 2, 0))
	require.Equal(t, 3, g.Bonds[bond].Order)

	g.Saturate(bond, 10)
	require.Equal(t, 1, g.Bonds[bond].Order)
	require.Equal(t, 1, g.Atom(a).NumEdges)
	require.Equal(t, 1, g.Atom(b).NumEdges)
}

func TestAtomPoolExhaustion(t *testing.T) {
	g := NewAtomGraph(DefaultOptions())
	g.opts.MaxAtoms = 1
	_, err := g.AllocateAtom('C', "C", 4, 1)
	require.NoError(t, err)
	_, err = g.AllocateAtom('C', "C", 4, 2)
	require.Error(t, err)
	pe := err.(*ParseError)
	require.Equal(t, CapacityExceeded, pe.Kind)
}

func TestPlaceInRingRecordsLocant(t *testing.T) {
	g := newTestGraph(t)
	ringID, err := g.AllocateRing(0)
	require.NoError(t, err)
	a, _ := g.AllocateAtom('C', "C", 4, 1)
	g.PlaceInRing(a, ringID, 1)
	require.Equal(t, ringID, g.Atom(a).InRing)
	require.Equal(t, 1, g.Atom(a).RingLocant)
	require.Equal(t, a, g.Ring(ringID).Locants[1])
}

func TestParseStackPushPopAndPopToRing(t *testing.T) {
	var s ParseStack
	require.True(t, s.Empty())
	s.PushRing(0)
	s.PushBranch(1)
	s.PushBranch(2)
	require.False(t, s.Empty())

	top, ok := s.Top()
	require.True(t, ok)
	require.Equal(t, FrameBranch, top.Kind)
	require.Equal(t, AtomID(2), top.Atom)

	s.PopToRing()
	top, ok = s.Top()
	require.True(t, ok)
	require.Equal(t, FrameRing, top.Kind)

	f, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, RingID(0), f.Ring)
	require.True(t, s.Empty())
}
