package wln

// Ring-block token grammar.
//
// The main parser hands the ring builder the raw substring between an
// opening L/T/D and its closing J, plus the 0-based offset of the first
// character of that substring (for diagnostics). Tokens are
// space-separated, mirroring spec.md section 4.5's description of space
// as the ring-locant sub-field separator:
//
//	<sizes>[ <fusion-or-modifier-token>]*
//
//   - <sizes>      a run of digits, one digit per fused component, e.g.
//     "555" declares three 5-membered components.
//   - <locant>H    a heteroatom replacement: the position at <locant>
//     is built with the named WLN letter instead of a default carbon
//     (e.g. "AM" places an M atom, >NH, at locant A).
//   - <locant>&    widens the preceding locant by +23 (spec.md 4.1).
//   - -<locant>-   a bridge locant: that position's connection budget is
//     pre-decremented by one.
//   - <locant>-    a broken (relative) locant: a new atom is attached
//     off <locant> at a relative position, not on the main backbone.
//   - /<l1><l2>    a pseudo-locant pair: <l1> and <l2> must bond out of
//     fusion-walk turn.
//   - U<l1><l2>    a post-ring unsaturation between two locants.
//   - H<l1>        a post-ring saturation (clears an aromatic flag)
//     at one locant.
//   - T            marks one component non-aromatic: the one at the
//     component cursor, which starts at the first component and moves on
//     by one after each broken-locant token and each locant token that
//     names no heteroatom (T itself does not move it).
//   - <n>ABC…      a multi-cyclic declaration: the n locants at which
//     three or more components fuse (GLOSSARY "Multi-cyclic"), recorded
//     on the built Ring as MultiCyclicCount without changing how the
//     fusion loop itself walks.
//
// This is the simplified, internally-consistent subset of real WLN ring
// notation that exercises every structural feature spec.md section 4.4
// names (fusion, bridges, pseudo locants, broken locants, per-component
// aromaticity, post-ring unsaturation/saturation) without claiming
// byte-for-byte parity with every historical WLN ring idiom.

// BrokenLocantSpec is one broken-position declaration: a new atom hung
// off parentLocant at a relative position.
type BrokenLocantSpec struct {
	ParentLocant int
}

// LocantPair names two ring positions for a pseudo bond, or a post-ring
// unsaturation/saturation target.
type LocantPair struct {
	A, B int // B == 0 for single-locant saturations
}

// HeteroSpec places a non-default WLN letter at a backbone locant.
type HeteroSpec struct {
	Locant int
	Letter byte
}

// RingSpec is the ring builder's fully-tokenized input, assembled by
// parseRingSpec from the L/T/D...J substring.
type RingSpec struct {
	Opener             byte // 'L', 'T', or 'D'
	Components         []RingComponent
	Heteroatoms        []HeteroSpec
	BridgeLocants      []int
	BrokenLocants      []BrokenLocantSpec
	PseudoLocants      []LocantPair
	Unsaturations      []LocantPair
	Saturations        []LocantPair
	SizeOverride       int // 0 = compute from components
	Heterocyclic       bool
	MultiCyclicLocants []int // locants named by a <n>ABC… declaration
}

// parseRingSpec tokenizes the ring-block body. offset is the 0-based
// position of body[0] in the original string, used for diagnostics.
func parseRingSpec(opener byte, body string, offset int) (*RingSpec, error) {
	spec := &RingSpec{
		Opener:       opener,
		Heterocyclic: opener == 'T' || opener == 'D',
	}
	defaultAromatic := opener == 'L'

	fields := splitFields(body)
	if len(fields) == 0 {
		return nil, newParseError(RingClosure, offset, "empty ring block")
	}

	// First field: run of digits, one component size per digit.
	sizesField := fields[0]
	for _, ch := range []byte(sizesField) {
		if !isDigit(ch) {
			return nil, newParseError(RingClosure, offset, "expected component size digits, got %q", sizesField)
		}
		spec.Components = append(spec.Components, RingComponent{
			Size:     int(ch - '0'),
			Aromatic: defaultAromatic,
		})
	}
	if len(spec.Components) == 0 {
		return nil, newParseError(RingClosure, offset, "ring block declares no components")
	}

	// Assign each fused component's start locant along the flat 1..totalSize
	// chain `RingBuilder.Build` lays down in its skeleton step. Component i
	// (i>=1) shares one edge (two atoms) with the structure built so far:
	// it starts one atom back from where the previous component's walk
	// ended, so its own closing chord lands exactly `Size` atoms later.
	// This is what keeps Build's totalSize formula (sum(sizes) -
	// 2*(components-1)) consistent with the atoms each component actually
	// walks over.
	cumulativeEnd := spec.Components[0].Size
	for i := 1; i < len(spec.Components); i++ {
		spec.Components[i].StartLocant = cumulativeEnd - 1
		cumulativeEnd = spec.Components[i].StartLocant + spec.Components[i].Size - 1
	}

	componentCursor := 0
	for _, tok := range fields[1:] {
		if tok == "" {
			continue
		}
		switch {
		case tok == "T":
			if componentCursor < len(spec.Components) {
				spec.Components[componentCursor].Aromatic = false
			}
		case tok[0] == '/':
			pair, err := readLocantPair(tok[1:], offset)
			if err != nil {
				return nil, err
			}
			spec.PseudoLocants = append(spec.PseudoLocants, pair)
		case tok[0] == 'U':
			pair, err := readLocantPair(tok[1:], offset)
			if err != nil {
				return nil, err
			}
			spec.Unsaturations = append(spec.Unsaturations, pair)
		case tok[0] == 'H' && len(tok) >= 2:
			loc, _, err := readLocant(tok[1:], offset)
			if err != nil {
				return nil, err
			}
			spec.Saturations = append(spec.Saturations, LocantPair{A: loc})
		case tok[0] == '-' && len(tok) >= 3 && tok[len(tok)-1] == '-':
			loc, _, err := readLocant(tok[1:len(tok)-1], offset)
			if err != nil {
				return nil, err
			}
			spec.BridgeLocants = append(spec.BridgeLocants, loc)
		case tok[len(tok)-1] == '-':
			loc, _, err := readLocant(tok[:len(tok)-1], offset)
			if err != nil {
				return nil, err
			}
			spec.BrokenLocants = append(spec.BrokenLocants, BrokenLocantSpec{ParentLocant: loc})
			componentCursor++
		case isDigit(tok[0]) && len(tok) > 1:
			// <n>ABC…: n is a count of the locants listed right after it,
			// not a component size (those only ever appear in fields[0]).
			n := int(tok[0] - '0')
			letters := tok[1:]
			if len(letters) != n {
				return nil, newParseError(RingClosure, offset, "multi-cyclic declaration %q names %d locants, want %d", tok, len(letters), n)
			}
			for i := 0; i < len(letters); i++ {
				loc, ok := locantToInt(letters[i])
				if !ok {
					return nil, newParseError(LocantOutOfRange, offset, "invalid multi-cyclic locant letter %q", letters[i])
				}
				spec.MultiCyclicLocants = append(spec.MultiCyclicLocants, loc)
			}
		default:
			// <locant><letter>: heteroatom replacement, possibly trailed by '&'.
			loc, rest, err := readLocant(tok, offset)
			if err != nil {
				return nil, err
			}
			for len(rest) > 0 && rest[0] == '&' {
				loc = applyAmpersand(loc)
				rest = rest[1:]
			}
			if len(rest) == 1 {
				spec.Heteroatoms = append(spec.Heteroatoms, HeteroSpec{Locant: loc, Letter: rest[0]})
			} else {
				componentCursor++
			}
		}
	}
	return spec, nil
}

func splitFields(s string) []string {
	var fields []string
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			if start >= 0 {
				fields = append(fields, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, s[start:])
	}
	return fields
}

// readLocant reads one locant letter, applying any trailing '&'
// modifiers, and returns the remainder of the token.
func readLocant(s string, offset int) (locant int, rest string, err error) {
	if len(s) == 0 {
		return 0, "", newParseError(LocantOutOfRange, offset, "empty locant token")
	}
	n, ok := locantToInt(s[0])
	if !ok {
		return 0, "", newParseError(LocantOutOfRange, offset, "invalid locant letter %q", s[0])
	}
	i := 1
	for i < len(s) && s[i] == '&' {
		n = applyAmpersand(n)
		i++
	}
	if n > MaxLocant {
		return 0, "", newParseError(LocantOutOfRange, offset, "locant %s exceeds %s", locantLabel(n), locantLabel(MaxLocant))
	}
	return n, s[i:], nil
}

func readLocantPair(s string, offset int) (LocantPair, error) {
	if len(s) < 2 {
		return LocantPair{}, newParseError(LocantOutOfRange, offset, "expected locant pair, got %q", s)
	}
	a, ok := locantToInt(s[0])
	if !ok {
		return LocantPair{}, newParseError(LocantOutOfRange, offset, "invalid locant letter %q", s[0])
	}
	b, ok := locantToInt(s[1])
	if !ok {
		return LocantPair{}, newParseError(LocantOutOfRange, offset, "invalid locant letter %q", s[1])
	}
	return LocantPair{A: a, B: b}, nil
}
