package gochem

// atomicMasses mirrors the teacher's getAtomicMass approximate table,
// indexed the same way (index == atomic number).
var atomicMasses = []float64{
	0, 1.008, 4.003, 6.941, 9.012, 10.81, 12.01, 14.01, 16.00, 19.00, 20.18,
	22.99, 24.31, 26.98, 28.09, 30.97, 32.07, 35.45, 39.95, 39.10, 40.08,
	44.96, 47.87, 50.94, 52.00, 54.94, 55.85, 58.93, 58.69, 63.55, 65.38,
	69.72, 72.63, 74.92, 78.96, 79.90, 83.80, 85.47, 87.62, 88.91, 91.22,
	92.91, 95.95, 98, 101.1, 102.9, 106.4, 107.9, 112.4, 114.8, 118.7,
	121.8, 127.6, 126.9, 131.3,
}

// MolecularWeight sums atomic masses plus implicit-hydrogen weight, per
// the teacher's CalcMolecularWeight. A WLN read never carries isotopes,
// so this adapter drops that branch entirely rather than carry a dead
// Isotope field.
func MolecularWeight(m *Molecule) float64 {
	weight := 0.0
	for _, a := range m.Atoms {
		if a.Number > 0 && a.Number < len(atomicMasses) {
			weight += atomicMasses[a.Number]
		}
		weight += float64(a.ImplicitHydrogens) * 1.008
	}
	return weight
}

// NumHydrogenBondAcceptors mirrors the teacher's lipinski.go proxy
// definition: O/N atoms without a positive charge, under a low
// connectivity threshold.
func NumHydrogenBondAcceptors(m *Molecule) int {
	count := 0
	for i, a := range m.Atoms {
		if a.Number != 7 && a.Number != 8 {
			continue
		}
		if a.Charge > 0 {
			continue
		}
		conn := len(m.Vertices[i].Edges)
		if (a.Number == 8 && conn <= 2) || (a.Number == 7 && conn <= 3) {
			count++
		}
	}
	return count
}

// NumHydrogenBondDonors mirrors the teacher's lipinski.go style: O/N
// atoms that still carry at least one implicit hydrogen.
func NumHydrogenBondDonors(m *Molecule) int {
	count := 0
	for _, a := range m.Atoms {
		if (a.Number == 7 || a.Number == 8) && a.ImplicitHydrogens > 0 {
			count++
		}
	}
	return count
}

// NumRotatableBonds mirrors the teacher's lipinski.go naive definition:
// non-terminal single bonds between atoms that do not share two or more
// neighbours (the teacher's rough ring-edge exclusion heuristic).
func NumRotatableBonds(m *Molecule) int {
	count := 0
	for _, b := range m.Bonds {
		if b.Order != 1 {
			continue
		}
		if len(m.Vertices[b.Beg].Edges) <= 1 || len(m.Vertices[b.End].Edges) <= 1 {
			continue
		}
		if isLikelyRingEdge(m, b.Beg, b.End) {
			continue
		}
		count++
	}
	return count
}

func isLikelyRingEdge(m *Molecule, u, v int) bool {
	seen := make(map[int]bool, len(m.Vertices[u].Edges))
	for _, n := range m.GetNeighbors(u) {
		seen[n] = true
	}
	inter := 0
	for _, n := range m.GetNeighbors(v) {
		if seen[n] {
			inter++
		}
	}
	return inter >= 2
}
