package wln

import "fmt"

// runPostProcessors runs the spec.md section 4.6 passes in their
// documented order: dioxo expansion, multiplier-carbon resolution,
// default-methyl filling, carboxyl expansion, hanging-valence
// resolution, charge application, then Kekulé per aromatic ring.
func runPostProcessors(g *AtomGraph, r *ParseResult, opts Options) error {
	if err := expandDioxo(g, r.dioxoAnchors); err != nil {
		return err
	}
	if err := resolveMultiplierCarbons(g, r.multiplierCarbons); err != nil {
		return err
	}
	if err := fillDefaultMethyls(g, r.defaultFillX, r.defaultFillY); err != nil {
		return err
	}
	if err := expandCarboxyl(g, r.carboxylAnchors); err != nil {
		return err
	}
	resolveHangingValence(g)
	if err := applyCharges(g, r.ionic.Assignments); err != nil {
		return err
	}
	for i := range g.Rings {
		ring := &g.Rings[i]
		if ring.AromaticCount == 0 {
			continue
		}
		if err := Kekulize(g, ring); err != nil {
			return wrapParseError(RingClosure, 0, err, fmt.Sprintf("ring %d", i))
		}
	}
	return nil
}

// expandDioxo keeps each 'W' atom's own identity (its fixed element from
// wlnLetterTable) and attaches two fresh, double-bonded oxygens to it
// (spec.md section 4.6.1), widening the anchor's valence ceiling by
// exactly the four valence units the two double bonds consume.
func expandDioxo(g *AtomGraph, anchors []AtomID) error {
	for _, anchorID := range anchors {
		anchor := g.Atom(anchorID)
		anchor.AllowedEdges = anchor.NumEdges + 4

		for i := 0; i < 2; i++ {
			o, err := g.AllocateAtom('O', "O", 2, anchor.SourcePosition)
			if err != nil {
				return err
			}
			bond, err := g.AllocateEdge(anchorID, o, anchor.SourcePosition)
			if err != nil {
				return err
			}
			if err := g.Unsaturate(bond, 1, anchor.SourcePosition); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveMultiplierCarbons implements spec.md section 4.6.2: bump an
// acyclic 'C' atom's bonds to a higher order, preferring a triple bond
// forward (to the neighbour created after it); if that neighbour only has
// one spare valence slot, split the bump into a forward+back single-order
// raise instead. Ties resolve in creation order — the Open Question
// decision recorded in DESIGN.md.
func resolveMultiplierCarbons(g *AtomGraph, carbons []AtomID) error {
	for _, cid := range carbons {
		atom := g.Atom(cid)
		if len(atom.Edges) == 0 {
			continue
		}
		forward := atom.Edges[len(atom.Edges)-1]
		target := g.Bonds[forward].Other(cid)
		targetAtom := g.Atom(target)
		spare := targetAtom.AllowedEdges - targetAtom.NumEdges

		if spare >= 2 {
			if err := g.Unsaturate(forward, 2, atom.SourcePosition); err != nil {
				return err
			}
			continue
		}
		if spare == 1 && len(atom.Edges) >= 2 {
			back := atom.Edges[0]
			if err := g.Unsaturate(forward, 1, atom.SourcePosition); err != nil {
				return err
			}
			if err := g.Unsaturate(back, 1, atom.SourcePosition); err != nil {
				return err
			}
			continue
		}
		if spare == 1 {
			if err := g.Unsaturate(forward, 1, atom.SourcePosition); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillDefaultMethyls fills X/K atoms up to their valence ceiling, and Y
// atoms up to 3 children, with implicit methyl groups (spec.md section
// 4.6.3).
func fillDefaultMethyls(g *AtomGraph, xk, y []AtomID) error {
	for _, id := range xk {
		atom := g.Atom(id)
		for atom.NumEdges < atom.AllowedEdges {
			methyl, err := g.AllocateAtom('1', "C", 4, atom.SourcePosition)
			if err != nil {
				return err
			}
			if _, err := g.AllocateEdge(id, methyl, atom.SourcePosition); err != nil {
				return err
			}
		}
	}
	for _, id := range y {
		atom := g.Atom(id)
		for len(atom.Edges) < 3 {
			methyl, err := g.AllocateAtom('1', "C", 4, atom.SourcePosition)
			if err != nil {
				return err
			}
			if _, err := g.AllocateEdge(id, methyl, atom.SourcePosition); err != nil {
				return err
			}
		}
	}
	return nil
}

// expandCarboxyl turns a 'V' (valence-2 placeholder) atom into a
// valence-4 carbon plus a double-bonded oxygen neighbour (spec.md section
// 4.6.4).
func expandCarboxyl(g *AtomGraph, anchors []AtomID) error {
	for _, id := range anchors {
		atom := g.Atom(id)
		atom.AllowedEdges = 4
		o, err := g.AllocateAtom('O', "O", 2, atom.SourcePosition)
		if err != nil {
			return err
		}
		bond, err := g.AllocateEdge(id, o, atom.SourcePosition)
		if err != nil {
			return err
		}
		if err := g.Unsaturate(bond, 1, atom.SourcePosition); err != nil {
			return err
		}
	}
	return nil
}

// resolveHangingValence raises the bond order on a terminal, uncharged
// bare 'O' atom until either endpoint reaches its valence ceiling
// (spec.md section 4.6.5). Only the plain 'O' letter qualifies: 'Q' and
// 'Z' are WLN's explicit -OH/-NH2 terminators (their spare valence is
// meant to stay an implicit hydrogen, not become a double bond), and
// that distinction lives in the atom's original Code, not its resolved
// element Symbol (both 'O' and 'Q' resolve to the same oxygen symbol).
func resolveHangingValence(g *AtomGraph) {
	for i := range g.Atoms {
		atom := &g.Atoms[i]
		if atom.Code != 'O' || atom.Charge != 0 || len(atom.Edges) != 1 {
			continue
		}
		bond := &g.Bonds[atom.Edges[0]]
		other := g.Atom(bond.Other(atom.ID))
		for atom.NumEdges < atom.AllowedEdges && other.NumEdges < other.AllowedEdges {
			bond.Order++
			atom.NumEdges++
			other.NumEdges++
		}
	}
}

// applyCharges applies the ionic splitter's (and any trailing) charge
// assignments keyed by each atom's recorded source position (spec.md
// section 4.6.6). A delta with no matching atom is a ChargeIndex error.
func applyCharges(g *AtomGraph, assignments []ChargeAssignment) error {
	for _, a := range assignments {
		if a.Index == 0 {
			continue
		}
		id, ok := g.AtomBySourcePosition(a.Index)
		if !ok {
			return newParseError(ChargeIndex, a.Index, "no atom at source position %d", a.Index)
		}
		g.Atom(id).Charge += a.Delta
	}
	return nil
}
