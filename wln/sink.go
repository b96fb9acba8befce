package wln

// MolBuilder is the output-side seam spec.md section 4.7 describes: the
// reader never constructs a caller-facing molecule type directly, it
// drives a MolBuilder the same way the teacher's loaders drive a
// Molecule through AddAtom/AddBond rather than touching a final
// structure's fields. A concrete adapter (see adapter/gochem) owns the
// actual output type.
type MolBuilder interface {
	AddAtom(atomicNumber int, charge int, implicitHydrogens int, aromatic bool) int
	AddBond(fromIndex, toIndex int, order int, aromatic bool) error
	AddRing(atomIndices []int, aromatic bool) error
	Finish() error
}

// AtomRecord and BondRecord are the translated, builder-agnostic records
// WriteGraph emits, computed from the parser's internal Atom/Bond before
// handing them to a MolBuilder. Exported so callers that want the raw
// translation without a MolBuilder (e.g. a test assertion) can call
// TranslateGraph directly.
type AtomRecord struct {
	AtomicNumber      int
	Charge            int
	ImplicitHydrogens int
	Aromatic          bool
	SourcePosition    int
}

type BondRecord struct {
	From, To int // indices into the AtomRecord slice, not AtomIDs
	Order    int
	Aromatic bool
}

type RingRecord struct {
	AtomIndices []int
	Aromatic    bool
}

// TranslateGraph performs spec.md section 4.7's atomic-number translation
// and implicit-hydrogen computation, and renumbers AtomID/BondID into
// dense 0-based indices suitable for a MolBuilder or any other
// downstream consumer. Grounded on the teacher's molecule.go AddAtom /
// CalcImplicitHCount pairing: every atom's implicit hydrogen count is
// derived once, here, from allowedEdges - numEdges - abs(charge) clamped
// at zero, rather than recomputed ad hoc by each adapter.
func TranslateGraph(g *AtomGraph) ([]AtomRecord, []BondRecord, []RingRecord) {
	index := make(map[AtomID]int, len(g.Atoms))
	atoms := make([]AtomRecord, 0, len(g.Atoms))
	for _, a := range g.Atoms {
		index[a.ID] = len(atoms)
		atoms = append(atoms, AtomRecord{
			AtomicNumber:      atomicNumberFor(a),
			Charge:            a.Charge,
			ImplicitHydrogens: implicitHydrogenCount(a),
			Aromatic:          a.Aromatic,
			SourcePosition:    a.SourcePosition,
		})
	}

	bonds := make([]BondRecord, 0, len(g.Bonds))
	for _, b := range g.Bonds {
		bonds = append(bonds, BondRecord{
			From:     index[b.Parent],
			To:       index[b.Child],
			Order:    b.Order,
			Aromatic: b.Aromatic,
		})
	}

	rings := make([]RingRecord, 0, len(g.Rings))
	for _, r := range g.Rings {
		ids := r.AtomIDs()
		indices := make([]int, len(ids))
		for i, id := range ids {
			indices[i] = index[id]
		}
		rings = append(rings, RingRecord{AtomIndices: indices, Aromatic: r.AromaticCount > 0})
	}

	return atoms, bonds, rings
}

// WriteGraph drives a MolBuilder through the translated atom/bond/ring
// records in creation order, atoms first so bond/ring indices always
// resolve (spec.md section 6).
func WriteGraph(g *AtomGraph, b MolBuilder) error {
	atoms, bonds, rings := TranslateGraph(g)

	for _, a := range atoms {
		b.AddAtom(a.AtomicNumber, a.Charge, a.ImplicitHydrogens, a.Aromatic)
	}
	for _, bd := range bonds {
		if err := b.AddBond(bd.From, bd.To, bd.Order, bd.Aromatic); err != nil {
			return err
		}
	}
	for _, r := range rings {
		if err := b.AddRing(r.AtomIndices, r.Aromatic); err != nil {
			return err
		}
	}
	return b.Finish()
}

// atomicNumberFor resolves an Atom's final element to its atomic number.
// '*' atoms already carry a resolved Symbol from a hypervalent bracket;
// everything else maps through the fixed WLN letter table or hard-coded
// hydrogen/carbon fallbacks for post-processing-created atoms ('1' methyl
// filler, bare 'O'/'C' from dioxo/carboxyl expansion).
func atomicNumberFor(a Atom) int {
	if n, _, ok := ResolveElementSymbol(a.Symbol); ok {
		return n
	}
	switch a.Symbol {
	case "C":
		return 6
	case "N":
		return 7
	case "O":
		return 8
	case "H":
		return 1
	}
	if spec, ok := LookupLetter(a.Code); ok {
		return spec.AtomicNumber
	}
	return 0
}

// implicitHydrogenCount fills the remaining valence slots not already
// consumed by explicit bonds or formal charge, per spec.md section 4.7.
func implicitHydrogenCount(a Atom) int {
	remaining := a.AllowedEdges - a.NumEdges
	if a.Charge > 0 {
		remaining -= a.Charge
	} else if a.Charge < 0 {
		remaining += a.Charge
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}
