package wln

// RingBuilder materialises one fused/bridged ring system (no spiro joins) from a
// tokenized RingSpec into the shared AtomGraph. Grounded on spec.md
// section 4.4's eight-step algorithm; the "strict vs lazy" duplicate
// builder spec.md's DESIGN NOTES calls out in the source collapses here
// into this single entry point, with applyUnsaturations/applySaturations
// gated by a flag instead of a second code path.
type RingBuilder struct {
	g    *AtomGraph
	opts Options
}

func NewRingBuilder(g *AtomGraph, opts Options) *RingBuilder {
	return &RingBuilder{g: g, opts: opts}
}

// locantState is the per-position bookkeeping the fusion loop consumes:
// which atom occupies a locant, and how many more fusion bonds that
// position may still accept.
type locantState struct {
	atom   AtomID
	budget int
}

// Build runs the full eight-step algorithm and returns the finished ring.
// offset is the 0-based position of the ring block's first character, for
// diagnostics; applyPostBonds controls whether step 8 (unsaturations then
// saturations) runs — callers building a lazily-finished ring (e.g. one
// that will be further modified before Kekulé) may defer it.
func (rb *RingBuilder) Build(spec *RingSpec, offset int, applyPostBonds bool) (RingID, error) {
	totalSize := spec.SizeOverride
	if totalSize == 0 {
		sum := 0
		for _, c := range spec.Components {
			sum += c.Size
		}
		totalSize = sum - 2*(len(spec.Components)-1) - len(spec.BridgeLocants) - len(spec.BrokenLocants)
	}
	if totalSize <= 0 {
		return NoRing, newParseError(RingClosure, offset, "computed ring size %d is not positive", totalSize)
	}

	ringID, err := rb.g.AllocateRing(offset)
	if err != nil {
		return NoRing, err
	}
	ring := rb.g.Ring(ringID)
	ring.Components = spec.Components
	ring.Heterocyclic = spec.Heterocyclic
	ring.BridgeCount = len(spec.BridgeLocants)
	ring.BrokenCount = len(spec.BrokenLocants)
	ring.PseudoCount = len(spec.PseudoLocants)
	ring.MultiCyclicCount = len(spec.MultiCyclicLocants)

	// aromaticAtoms dedups atoms shared across a fusion edge: a component
	// walk's first and last locant are the bond it shares with whatever it
	// fused onto, so summing each component's path length double-counts
	// those shared atoms. Counting distinct IDs here instead gives the
	// correct aromatic-atom count for fused systems.
	aromaticAtoms := make(map[AtomID]bool)

	states := make(map[int]*locantState, totalSize)
	heteroByLocant := make(map[int]HeteroSpec, len(spec.Heteroatoms))
	for _, h := range spec.Heteroatoms {
		heteroByLocant[h.Locant] = h
	}
	bridgeSet := make(map[int]bool, len(spec.BridgeLocants))
	for _, l := range spec.BridgeLocants {
		bridgeSet[l] = true
	}

	// Step 1: skeleton. Materialise atoms 1..totalSize as carbons (or the
	// declared heteroatom), chained by single bonds.
	var prevAtom AtomID = NoAtom
	for loc := 1; loc <= totalSize; loc++ {
		code := byte('C')
		symbol := "C"
		allowed := 4
		if h, ok := heteroByLocant[loc]; ok {
			spec2, ok := LookupLetter(h.Letter)
			if !ok {
				return NoRing, newParseError(InvalidCharacter, offset, "unknown ring heteroatom letter %q", h.Letter)
			}
			code = h.Letter
			symbol = spec2.Symbol
			allowed = spec2.AllowedEdges
		}
		atomID, err := rb.g.AllocateAtom(code, symbol, allowed, offset)
		if err != nil {
			return NoRing, err
		}
		rb.g.PlaceInRing(atomID, ringID, loc)

		budget := 1
		if loc == 1 || loc == totalSize {
			budget = 2
		}
		if bridgeSet[loc] {
			budget--
		}
		states[loc] = &locantState{atom: atomID, budget: budget}

		if prevAtom != NoAtom {
			if _, err := rb.g.AllocateEdge(prevAtom, atomID, offset); err != nil {
				return NoRing, err
			}
		}
		prevAtom = atomID
	}
	// Close the first component into its own cycle.
	firstSize := spec.Components[0].Size
	if firstSize >= 1 && firstSize <= totalSize {
		if _, err := rb.g.AllocateEdge(states[firstSize].atom, states[1].atom, offset); err == nil {
			states[firstSize].budget--
			states[1].budget--
		}
		// The fusion loop below only marks aromaticity for components
		// after the first, so the first component's own flag is applied
		// here, right after its ring-closing bond exists.
		if spec.Components[0].Aromatic {
			for loc := 1; loc <= firstSize; loc++ {
				aromaticAtoms[states[loc].atom] = true
				rb.g.Atom(states[loc].atom).Aromatic = true
			}
			for loc := 1; loc <= firstSize; loc++ {
				next := loc + 1
				if next > firstSize {
					next = 1
				}
				if bond := rb.findBond(states[loc].atom, states[next].atom); bond != NoBond {
					rb.g.Bonds[bond].Aromatic = true
				}
			}
		}
	}

	// Step 2: broken locants. Each gets a fresh carbon attached to its
	// parent by a single bond, at a relative-position index derived from
	// the parent's locant.
	usedRelative := make(map[int]bool)
	for _, b := range spec.BrokenLocants {
		parentState, ok := states[b.ParentLocant]
		if !ok {
			return NoRing, newParseError(LocantOutOfRange, offset, "broken locant parent %d not in ring", b.ParentLocant)
		}
		rel := createRelativePosition(b.ParentLocant)
		for usedRelative[rel] && rel < MaxLocant {
			rel = breakFurther(rel)
		}
		usedRelative[rel] = true

		atomID, err := rb.g.AllocateAtom('C', "C", 4, offset)
		if err != nil {
			return NoRing, err
		}
		rb.g.PlaceInRing(atomID, ringID, rel)
		states[rel] = &locantState{atom: atomID, budget: 3}
		if _, err := rb.g.AllocateEdge(parentState.atom, atomID, offset); err != nil {
			return NoRing, err
		}
		parentState.budget--
	}

	// Step 3: pseudo locants are tracked for the catch-fuse step below (the
	// fusion loop does not consult them); no atoms are created here.
	pseudoUsed := make(map[LocantPair]bool, len(spec.PseudoLocants))

	// Steps 4-6: fusion loop for every component after the first.
	for ci := 1; ci < len(spec.Components); ci++ {
		comp := spec.Components[ci]
		bind1, ok := states[comp.StartLocant]
		if !ok || comp.StartLocant < 1 || comp.StartLocant > totalSize {
			return NoRing, newParseError(RingClosure, offset, "component %d start locant %s outside ring", ci, locantLabel(comp.StartLocant))
		}

		path := []int{comp.StartLocant}
		current := comp.StartLocant
		visited := map[int]bool{comp.StartLocant: true}
		steps := comp.Size - 1
		for s := 0; s < steps; s++ {
			next := highestUnvisitedNeighbor(rb.g, states, current, visited)
			if next == 0 {
				break // walk exhausted: the path ends early, at current
			}
			path = append(path, next)
			visited[next] = true
			current = next
		}
		// Overshoot guard: the walk takes at most Size-1 steps, so this
		// only trims the tail if the path ever grew past the declared size.
		for len(path) > comp.Size {
			path = path[:len(path)-1]
		}
		bind2Loc := path[len(path)-1]
		bind2 := states[bind2Loc]

		if bind1.budget > 0 && bind2.budget > 0 {
			if _, err := rb.g.AllocateEdge(bind1.atom, bind2.atom, offset); err == nil {
				bind1.budget--
				bind2.budget--
			}
		}

		if comp.Aromatic {
			for _, loc := range path {
				aromaticAtoms[states[loc].atom] = true
				rb.g.Atom(states[loc].atom).Aromatic = true
			}
			for i := 0; i < len(path); i++ {
				u, v := states[path[i]].atom, states[path[(i+1)%len(path)]].atom
				if bond := rb.findBond(u, v); bond != NoBond {
					rb.g.Bonds[bond].Aromatic = true
				}
			}
		}
	}

	// Step 7: catch-fuse any unused pseudo-locant pair.
	for _, p := range spec.PseudoLocants {
		if pseudoUsed[p] {
			continue
		}
		a, okA := states[p.A]
		b, okB := states[p.B]
		if !okA || !okB {
			continue
		}
		if rb.findBond(a.atom, b.atom) != NoBond {
			continue
		}
		if _, err := rb.g.AllocateEdge(a.atom, b.atom, offset); err == nil {
			pseudoUsed[p] = true
		}
	}

	ring.AromaticCount = len(aromaticAtoms)
	ring.Size = len(ring.Locants)

	if applyPostBonds {
		if err := rb.applyUnsaturations(ring, states, spec.Unsaturations, offset); err != nil {
			return NoRing, err
		}
		rb.applySaturations(ring, states, spec.Saturations)
	}

	return ringID, nil
}

// highestUnvisitedNeighbor implements the highest-locant-first tie-break
// from spec.md section 4.4: walk to the bonded neighbour with the highest
// locant that is not already on this walk's path. Broken-locant children
// get no special treatment; they are chosen like any other neighbour.
func highestUnvisitedNeighbor(g *AtomGraph, states map[int]*locantState, from int, visited map[int]bool) int {
	fromAtom := states[from].atom
	best := 0
	for loc, st := range states {
		if visited[loc] {
			continue
		}
		if g.hasBond(fromAtom, st.atom) && loc > best {
			best = loc
		}
	}
	return best
}

func (rb *RingBuilder) findBond(a, b AtomID) BondID {
	for _, eid := range rb.g.Atoms[a].Edges {
		e := rb.g.Bonds[eid]
		if (e.Parent == a && e.Child == b) || (e.Parent == b && e.Child == a) {
			return eid
		}
	}
	return NoBond
}

// applyUnsaturations upgrades bond orders between named locant pairs and
// clears the aromatic flag on both the bond and its endpoints, per
// spec.md section 4.4 step 8.
func (rb *RingBuilder) applyUnsaturations(ring *Ring, states map[int]*locantState, pairs []LocantPair, offset int) error {
	for _, p := range pairs {
		aState, okA := states[p.A]
		bState, okB := states[p.B]
		if !okA || !okB {
			return newParseError(LocantOutOfRange, offset, "unsaturation references unknown locant %s/%s", locantLabel(p.A), locantLabel(p.B))
		}
		bond := rb.findBond(aState.atom, bState.atom)
		if bond == NoBond {
			var err error
			bond, err = rb.g.AllocateEdge(aState.atom, bState.atom, offset)
			if err != nil {
				return err
			}
		}
		if err := rb.g.Unsaturate(bond, 1, offset); err != nil {
			return err
		}
		rb.g.Bonds[bond].Aromatic = false
		rb.g.Atom(aState.atom).Aromatic = false
		rb.g.Atom(bState.atom).Aromatic = false
	}
	return nil
}

// applySaturations clears the aromatic flag at the named locants without
// touching bond order.
func (rb *RingBuilder) applySaturations(ring *Ring, states map[int]*locantState, locants []LocantPair) {
	for _, p := range locants {
		if st, ok := states[p.A]; ok {
			rb.g.Atom(st.atom).Aromatic = false
		}
	}
}
