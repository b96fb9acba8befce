package wln

// Element codes and valence ceilings.
//
// Grounded on the teacher's molecule/elements.go periodic table (element
// constants + atomic-number lookup), generalized here to the WLN
// single-letter alphabet: each WLN letter maps to a fixed atomic number and
// a default valence ceiling (allowed_edges). `*` atoms carry an explicit
// element-string payload resolved through the same periodic table instead
// of a fixed letter; `#` atoms are packed alkyl chains with no fixed
// element identity until the sink assigns atomic number 6 (carbon).

// AtomRole records how a WLN letter participates in the branch stack:
// terminal atoms cause `return_object_symbol`-style pop-back, branching
// atoms are pushed and stay open for further attachment.
type AtomRole int

const (
	RoleTerminal AtomRole = iota
	RoleBranching
	RoleSpecial // V, W, C, # — resolved entirely in post-processing
)

// ElementSpec is the fixed per-letter data the main parser consults when
// allocating an atom.
type ElementSpec struct {
	Symbol       string
	AtomicNumber int
	AllowedEdges int
	Role         AtomRole
}

// wlnLetterTable is the fixed single-letter alphabet from spec.md section
// 4.5. Only the letters spec.md names are present; anything else is an
// InvalidCharacter in the acyclic (non-ring) parser state.
var wlnLetterTable = map[byte]ElementSpec{
	'B': {"B", 5, 3, RoleBranching},
	'C': {"C", 6, 4, RoleSpecial}, // multiplier carbon, resolved in post-processing
	'F': {"F", 9, 1, RoleTerminal},
	'G': {"Cl", 17, 1, RoleTerminal},
	'I': {"I", 53, 1, RoleTerminal},
	'K': {"N", 7, 4, RoleBranching}, // ammonium nitrogen (charged)
	'M': {"N", 7, 3, RoleBranching}, // >NH
	'N': {"N", 7, 3, RoleBranching},
	'O': {"O", 8, 2, RoleTerminal},
	'P': {"P", 15, 5, RoleBranching},
	'Q': {"O", 8, 2, RoleTerminal}, // -OH, terminator
	'S': {"S", 16, 6, RoleBranching},
	'V': {"C", 6, 2, RoleSpecial}, // carboxyl placeholder, expands to C=O
	'W': {"N", 7, 3, RoleSpecial}, // dioxo anchor placeholder; anchor element is resolved by caller
	'X': {"C", 6, 4, RoleBranching},
	'Y': {"C", 6, 4, RoleBranching},
	'Z': {"N", 7, 3, RoleTerminal}, // -NH2, terminator
	'H': {"H", 1, 1, RoleTerminal},
}

// LookupLetter returns the fixed element spec for a WLN acyclic letter.
func LookupLetter(b byte) (ElementSpec, bool) {
	spec, ok := wlnLetterTable[b]
	return spec, ok
}

// periodicSymbols maps two-letter (and the handful of one-letter)
// hypervalent-bracket element names, `-XX-`, to atomic number. Grounded on
// the teacher's molecule/elements.go ELEM_* table.
var periodicSymbols = map[string]int{
	"H": 1, "HE": 2, "LI": 3, "BE": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"NE": 10, "NA": 11, "MG": 12, "AL": 13, "SI": 14, "P": 15, "S": 16,
	"CL": 17, "AR": 18, "K": 19, "CA": 20, "SC": 21, "TI": 22, "V": 23,
	"CR": 24, "MN": 25, "FE": 26, "CO": 27, "NI": 28, "CU": 29, "ZN": 30,
	"GA": 31, "GE": 32, "AS": 33, "SE": 34, "BR": 35, "KR": 36, "RB": 37,
	"SR": 38, "Y": 39, "ZR": 40, "NB": 41, "MO": 42, "TC": 43, "RU": 44,
	"RH": 45, "PD": 46, "AG": 47, "CD": 48, "IN": 49, "SN": 50, "SB": 51,
	"TE": 52, "I": 53, "XE": 54, "CS": 55, "BA": 56, "PT": 78, "AU": 79,
	"HG": 80, "PB": 82, "BI": 83, "U": 92,
}

// defaultValenceFor returns the conventional valence ceiling for an
// element looked up by atomic number, used when a hypervalent bracket
// names an element absent from wlnLetterTable (e.g. -FE-, -NA-).
func defaultValenceFor(atomicNumber int) int {
	switch atomicNumber {
	case 1: // H
		return 1
	case 6: // C
		return 4
	case 7: // N
		return 3
	case 8: // O
		return 2
	case 15: // P
		return 5
	case 16: // S
		return 6
	case 9, 17, 35, 53: // F, Cl, Br, I
		return 1
	default:
		return 6 // metals and unmodeled elements: generous ceiling, lenient-mode territory
	}
}

// ResolveElementSymbol looks up a bracketed element name (`-FE-`, `-NA-`,
// a single hypervalent letter) against the periodic table.
func ResolveElementSymbol(symbol string) (atomicNumber int, valence int, ok bool) {
	n, found := periodicSymbols[symbol]
	if !found {
		return 0, 0, false
	}
	return n, defaultValenceFor(n), true
}
