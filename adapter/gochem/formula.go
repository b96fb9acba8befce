package gochem

import (
	"fmt"
	"sort"
	"strings"
)

var elementSymbols = map[int]string{
	1: "H", 5: "B", 6: "C", 7: "N", 8: "O", 9: "F", 15: "P", 16: "S",
	17: "Cl", 35: "Br", 53: "I", 3: "Li", 11: "Na", 12: "Mg", 13: "Al",
	14: "Si", 19: "K", 20: "Ca", 26: "Fe", 29: "Cu", 30: "Zn", 47: "Ag",
	50: "Sn", 56: "Ba", 78: "Pt", 79: "Au", 80: "Hg", 82: "Pb", 83: "Bi", 92: "U",
}

// GrossFormula renders the Hill-system gross formula: carbon first, then
// hydrogen (the implicit hydrogens of every atom), then every other
// element alphabetically by symbol; with no carbon, hydrogen sorts
// alphabetically with the rest. Grounded on the teacher's
// gross_formula.go CollectGross/GrossToString pair, adapted from the
// teacher's isotope-aware map to a plain atomic-number tally since a WLN
// read never carries isotope information.
func GrossFormula(m *Molecule) string {
	counts := make(map[int]int)
	for _, a := range m.Atoms {
		counts[a.Number]++
		if a.ImplicitHydrogens > 0 {
			counts[1] += a.ImplicitHydrogens
		}
	}

	var parts []string
	if c, ok := counts[6]; ok {
		parts = append(parts, formatCount("C", c))
		delete(counts, 6)
		if h, ok := counts[1]; ok {
			parts = append(parts, formatCount("H", h))
			delete(counts, 1)
		}
	}

	type entry struct {
		symbol string
		count  int
	}
	var rest []entry
	for number, count := range counts {
		rest = append(rest, entry{symbolFor(number), count})
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].symbol < rest[j].symbol })
	for _, e := range rest {
		parts = append(parts, formatCount(e.symbol, e.count))
	}

	return strings.Join(parts, "")
}

func formatCount(symbol string, count int) string {
	if count == 1 {
		return symbol
	}
	return fmt.Sprintf("%s%d", symbol, count)
}

func symbolFor(number int) string {
	if s, ok := elementSymbols[number]; ok {
		return s
	}
	return fmt.Sprintf("[%d]", number)
}
