package wln

// Arena-owned atom/bond/ring pools with small-integer ids.
//
// Grounded on the teacher's src/molecule/molecule.go Molecule type
// (Atoms/Bonds/Vertices slices, AddAtom/AddBond, edit-revision
// invalidation) but re-architected per spec.md's DESIGN NOTES: the
// source's raw-pointer pools and parallel barr/parr reverse-pointer
// arrays become one owning AtomGraph with growable slices and
// small-integer AtomID/BondID/RingID indices; the "reverse pointer"
// relationship becomes endpoint symmetry (both endpoints list the same
// BondID) instead of a second hand-maintained array.

// AtomID, BondID, RingID are stable small-integer identifiers into their
// respective AtomGraph pools, assigned densely from 0 in allocation order;
// NoAtom/NoRing/NoBond (-1) are the explicit "absent" sentinels.
type AtomID int
type BondID int
type RingID int

const (
	NoAtom AtomID = -1
	NoRing RingID = -1
	NoBond BondID = -1
)

// Atom is one molecular-graph vertex. See spec.md section 3 for the
// invariants: NumEdges never exceeds AllowedEdges after a mutation, and an
// atom with InRing set appears in exactly one Ring's locant map.
type Atom struct {
	ID              AtomID
	Code            byte   // WLN letter, '*' for a periodic element, '#' for a packed chain
	Symbol          string // element-string payload for '*'/'#' atoms
	AllowedEdges    int
	NumEdges        int
	Charge          int
	InRing          RingID
	RingLocant      int // 0 if InRing == NoRing
	Aromatic        bool
	SourcePosition  int // 1-based index into the original string
	PackedChainLen  int // '#' atoms only: the run length collapsed into this atom
	Edges           []BondID
}

// Bond is one edge in the central bond vector. Parent/Child is the
// direction the parser created it in (parent = the earlier-bound atom);
// traversal treats the two ends symmetrically everywhere except where
// spec.md explicitly calls out parent/child ordering (fusion, dioxo).
type Bond struct {
	ID       BondID
	Parent   AtomID
	Child    AtomID
	Order    int
	Aromatic bool
}

// Other returns the endpoint of b that is not atom.
func (b Bond) Other(atom AtomID) AtomID {
	if b.Parent == atom {
		return b.Child
	}
	return b.Parent
}

// RingComponent is one fused sub-ring's declared size and starting locant.
type RingComponent struct {
	Size        int
	StartLocant int
	Aromatic    bool
}

// Ring is a fully-built cyclic block: its locant->atom map, the fused
// components that produced it, and the bookkeeping Kekulé needs.
type Ring struct {
	ID                RingID
	Size              int
	AromaticCount     int
	Locants           map[int]AtomID // 1-based WLN locant index -> atom
	Components        []RingComponent
	MultiCyclicCount  int
	BridgeCount       int
	PseudoCount       int
	BrokenCount       int
	Heterocyclic      bool
	// adjacency is built lazily by Kekulize; nil until first use.
	adjacency map[AtomID][]AtomID
}

// AtomIDs returns the ring's atoms in locant order, for deterministic
// traversal (Kekulé, sink ring-record emission).
func (r *Ring) AtomIDs() []AtomID {
	locants := make([]int, 0, len(r.Locants))
	for l := range r.Locants {
		locants = append(locants, l)
	}
	sortInts(locants)
	out := make([]AtomID, 0, len(locants))
	for _, l := range locants {
		out = append(out, r.Locants[l])
	}
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// AtomGraph owns every atom, bond, and ring created while parsing one WLN
// string. Locant maps and the ParseStack hold only AtomID/RingID
// references into this pool; nothing is freed until the whole arena is
// dropped by the caller.
type AtomGraph struct {
	opts Options

	Atoms []Atom
	Bonds []Bond
	Rings []Ring

	bySourcePos map[int]AtomID
}

// NewAtomGraph creates an empty arena bounded by opts.
func NewAtomGraph(opts Options) *AtomGraph {
	return &AtomGraph{
		opts:        opts,
		bySourcePos: make(map[int]AtomID),
	}
}

// AllocateAtom creates a fresh atom with the given element code and
// valence ceiling, zero edges/charge, aromatic=false, in_ring=None.
func (g *AtomGraph) AllocateAtom(code byte, symbol string, allowedEdges, sourcePosition int) (AtomID, error) {
	if len(g.Atoms) >= g.opts.MaxAtoms {
		return NoAtom, newParseError(CapacityExceeded, sourcePosition, "atom pool exhausted (max %d)", g.opts.MaxAtoms)
	}
	id := AtomID(len(g.Atoms))
	g.Atoms = append(g.Atoms, Atom{
		ID:             id,
		Code:           code,
		Symbol:         symbol,
		AllowedEdges:   allowedEdges,
		InRing:         NoRing,
		SourcePosition: sourcePosition,
	})
	if sourcePosition > 0 {
		// Post-processing atoms reuse their anchor's position; keep the
		// first atom recorded there so charge lookups hit the parsed one.
		if _, taken := g.bySourcePos[sourcePosition]; !taken {
			g.bySourcePos[sourcePosition] = id
		}
	}
	return id, nil
}

// Atom returns a pointer to the atom record for in-place mutation.
func (g *AtomGraph) Atom(id AtomID) *Atom {
	return &g.Atoms[id]
}

// Ring returns a pointer to the ring record for in-place mutation.
func (g *AtomGraph) Ring(id RingID) *Ring {
	return &g.Rings[id]
}

// AtomBySourcePosition looks up the atom created at a given 1-based
// position, used by the ionic/charge post-pass (spec.md section 4.2).
func (g *AtomGraph) AtomBySourcePosition(pos int) (AtomID, bool) {
	id, ok := g.bySourcePos[pos]
	return id, ok
}

// AllocateRing reserves a new ring id.
func (g *AtomGraph) AllocateRing(offset int) (RingID, error) {
	if len(g.Rings) >= g.opts.MaxRings {
		return NoRing, newParseError(CapacityExceeded, offset, "ring pool exhausted (max %d)", g.opts.MaxRings)
	}
	id := RingID(len(g.Rings))
	g.Rings = append(g.Rings, Ring{ID: id, Locants: make(map[int]AtomID)})
	return id, nil
}

// AllocateEdge appends a new single bond between parent and child to both
// atoms' incident-edge lists. Per spec.md section 4.3, each atom's edge
// array is capped at 8 slots.
func (g *AtomGraph) AllocateEdge(parent, child AtomID, offset int) (BondID, error) {
	if parent == child {
		return NoBond, newParseError(InvalidState, offset, "self-loop forbidden (atom %d)", parent)
	}
	if g.hasBond(parent, child) {
		return NoBond, newParseError(InvalidState, offset, "duplicate bond between %d and %d", parent, child)
	}
	if len(g.Atoms[parent].Edges) >= g.opts.MaxEdgesPerAtom || len(g.Atoms[child].Edges) >= g.opts.MaxEdgesPerAtom {
		return NoBond, newParseError(CapacityExceeded, offset, "edge array full for atom %d or %d", parent, child)
	}
	id := BondID(len(g.Bonds))
	g.Bonds = append(g.Bonds, Bond{ID: id, Parent: parent, Child: child, Order: 1})
	g.Atoms[parent].Edges = append(g.Atoms[parent].Edges, id)
	g.Atoms[child].Edges = append(g.Atoms[child].Edges, id)

	g.Atoms[parent].NumEdges++
	g.Atoms[child].NumEdges++
	if g.Atoms[parent].NumEdges > g.Atoms[parent].AllowedEdges || g.Atoms[child].NumEdges > g.Atoms[child].AllowedEdges {
		// Roll back: the caller decides strict-fail vs lenient-rewrite.
		g.Atoms[parent].NumEdges--
		g.Atoms[child].NumEdges--
		g.Atoms[parent].Edges = g.Atoms[parent].Edges[:len(g.Atoms[parent].Edges)-1]
		g.Atoms[child].Edges = g.Atoms[child].Edges[:len(g.Atoms[child].Edges)-1]
		g.Bonds = g.Bonds[:len(g.Bonds)-1]
		return NoBond, newParseError(ValenceExceeded, offset, "bond %d-%d exceeds valence", parent, child)
	}
	return id, nil
}

func (g *AtomGraph) hasBond(a, b AtomID) bool {
	for _, eid := range g.Atoms[a].Edges {
		e := g.Bonds[eid]
		if (e.Parent == a && e.Child == b) || (e.Parent == b && e.Child == a) {
			return true
		}
	}
	return false
}

// Unsaturate raises a bond's order by n, mirrored on both endpoints'
// NumEdges bookkeeping; fails if either endpoint would exceed its
// allowed_edges ceiling.
func (g *AtomGraph) Unsaturate(bond BondID, n int, offset int) error {
	b := &g.Bonds[bond]
	parent := &g.Atoms[b.Parent]
	child := &g.Atoms[b.Child]
	if parent.NumEdges+n > parent.AllowedEdges || child.NumEdges+n > child.AllowedEdges {
		return newParseError(ValenceExceeded, offset, "unsaturate bond %d by %d exceeds valence", bond, n)
	}
	b.Order += n
	parent.NumEdges += n
	child.NumEdges += n
	return nil
}

// Saturate lowers a bond's order by n (no-op floor at order 1).
func (g *AtomGraph) Saturate(bond BondID, n int) {
	b := &g.Bonds[bond]
	if b.Order <= 1 {
		return
	}
	drop := n
	if b.Order-drop < 1 {
		drop = b.Order - 1
	}
	b.Order -= drop
	g.Atoms[b.Parent].NumEdges -= drop
	g.Atoms[b.Child].NumEdges -= drop
}

// PlaceInRing records that atom occupies locant in ring. It does not check
// the "exactly once in exactly one ring" invariant; callers place each
// atom once.
func (g *AtomGraph) PlaceInRing(atom AtomID, ring RingID, locant int) {
	a := &g.Atoms[atom]
	a.InRing = ring
	a.RingLocant = locant
	g.Rings[ring].Locants[locant] = atom
}

// FrameKind tags a ParseStack entry as either an open ring or an open
// branching atom — spec.md DESIGN NOTES replaces the source's
// pair-with-nullptr encoding with this explicit tagged variant.
type FrameKind int

const (
	FrameRing FrameKind = iota
	FrameBranch
)

// Frame is one ParseStack entry: exactly one of Ring/Atom is meaningful,
// selected by Kind.
type Frame struct {
	Kind   FrameKind
	Ring   RingID
	Atom   AtomID
}

// ParseStack tracks open rings and open branching atoms during a parse.
type ParseStack struct {
	frames []Frame
}

func (s *ParseStack) PushRing(r RingID) { s.frames = append(s.frames, Frame{Kind: FrameRing, Ring: r}) }
func (s *ParseStack) PushBranch(a AtomID) {
	s.frames = append(s.frames, Frame{Kind: FrameBranch, Atom: a})
}

func (s *ParseStack) Empty() bool { return len(s.frames) == 0 }

func (s *ParseStack) Top() (Frame, bool) {
	if s.Empty() {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

func (s *ParseStack) Pop() (Frame, bool) {
	if s.Empty() {
		return Frame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

// PopToRing pops branch frames until the top is a ring (or the stack is
// empty), used by the ` ` (space) handler in the main parser.
func (s *ParseStack) PopToRing() {
	for {
		f, ok := s.Top()
		if !ok || f.Kind == FrameRing {
			return
		}
		s.Pop()
	}
}
