package wln

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// parserState is the explicit state enum spec.md's DESIGN NOTES asks for,
// replacing the source's pending-flag thicket. runMachine dispatches on
// (state, char): stateRoot is the ordinary top-level scan, stateInBracket
// drives the multi-character bracketed-atom lookahead one character at a
// time instead of a nested scan, and stateAfterDash resumes ordinary
// dispatch on the character right after an unmatched '-' (an inline-ring
// marker with no structural effect of its own). pendingUnsaturate and the
// digit run stay counters, not state — they compose with whichever
// parserState is active rather than selecting it.
type parserState int

const (
	stateRoot parserState = iota
	stateAfterDash
	stateInBracket
)

// ParseResult bundles the finished arena with the bookkeeping the
// post-processing passes need: which atoms came from which WLN
// shorthand, so postprocess.go never has to re-infer intent from an
// atom's resolved element code.
type ParseResult struct {
	Graph *AtomGraph

	multiplierCarbons []AtomID // acyclic 'C' atoms awaiting the multiplier-carbon resolver
	dioxoAnchors      []AtomID // 'W' atoms awaiting dioxo expansion
	carboxylAnchors   []AtomID // 'V' atoms awaiting carboxyl expansion
	defaultFillX      []AtomID // 'X'/'K' atoms awaiting methyl fill-to-valence
	defaultFillY      []AtomID // 'Y' atoms awaiting fill-to-3-children

	ionic ionicSplit
}

// Parser is the character-driven state machine from spec.md section 4.5.
type Parser struct {
	opts   Options
	logger *zap.Logger

	g     *AtomGraph
	stack ParseStack

	prev  AtomID
	ring  RingID
	state parserState

	pendingUnsaturate int
	bracketStart      int // body offset of the first char inside an open '-'...'-' lookahead

	result ParseResult
	warns  error
}

// NewParser creates a Parser bounded by opts (DefaultOptions() if none given).
func NewParser(opts ...Option) *Parser {
	o := newOptions(opts...)
	return &Parser{
		opts:   o,
		logger: o.Logger,
		prev:   NoAtom,
		ring:   NoRing,
		state:  stateRoot,
	}
}

// Parse runs the full pipeline: ionic split, main state machine, then the
// spec.md section 4.6 post-processors in order. On failure no partial
// graph is returned (spec.md section 4.8).
func (p *Parser) Parse(raw string) (*AtomGraph, []Warning, error) {
	p.g = NewAtomGraph(p.opts)
	p.result = ParseResult{Graph: p.g}
	p.result.ionic = splitIonic(raw)

	body := raw[:p.result.ionic.Offset]
	if err := p.runMachine(raw, body); err != nil {
		return nil, nil, err
	}

	if err := runPostProcessors(p.g, &p.result, p.opts); err != nil {
		return nil, nil, err
	}

	return p.g, warningsOf(p.warns), nil
}

func warningsOf(err error) []Warning {
	if err == nil {
		return nil
	}
	var out []Warning
	for _, e := range multierr.Errors(err) {
		if w, ok := e.(Warning); ok {
			out = append(out, w)
		}
	}
	return out
}

func (p *Parser) log(msg string, pos int, ch byte) {
	if ce := p.logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(
			zap.Int("pos", pos),
			zap.String("char", string(ch)),
			zap.Int("prev", int(p.prev)),
			zap.Int("ring", int(p.ring)),
		)
	}
}

// runMachine is the left-to-right scan over the acyclic/ring-delegating
// portion of the string (everything before the ionic tail). Dispatch is
// driven by (p.state, ch): stateRoot runs the ordinary per-character
// switch below, while stateInBracket and stateAfterDash divert to their
// own single-character steps before falling back to it.
func (p *Parser) runMachine(raw, body string) error {
	i := 0
	for {
		if i >= len(body) {
			if p.state != stateInBracket {
				break
			}
			// Running off the end mid-lookahead is the same as never
			// finding the closing '-': reprocess the window after the '-'
			// as ordinary characters.
			p.state = stateAfterDash
			i = p.bracketStart
			continue
		}
		ch := body[i]
		p.log("step", i, ch)

		switch p.state {
		case stateInBracket:
			next, err := p.stepBracket(body, i)
			if err != nil {
				return err
			}
			i = next
			continue
		case stateAfterDash:
			// An unmatched '-' opens an inline ring with no structural
			// effect of its own (spec.md section 4.5): resume ordinary
			// dispatch on this same character.
			p.state = stateRoot
		}

		switch {
		case isDigit(ch):
			j := i
			for j < len(body) && isDigit(body[j]) {
				j++
			}
			if err := p.flushDigits(body[i:j], i); err != nil {
				return err
			}
			i = j
			continue

		case ch == 'L' || ch == 'T' || ch == 'D':
			next, err := p.openRing(body, i)
			if err != nil {
				return err
			}
			i = next
			continue

		case ch == 'R':
			if err := p.openBenzeneShorthand(i); err != nil {
				return err
			}
			i++
			continue

		case ch == ' ':
			p.stack.PopToRing()
			i++
			continue

		case ch == '&':
			if err := p.handleAmpersand(i); err != nil {
				return err
			}
			i++
			continue

		case ch == '-':
			p.state = stateInBracket
			p.bracketStart = i + 1
			i++
			continue

		case ch == 'U':
			p.pendingUnsaturate++
			i++
			continue

		case ch == 'A':
			return newParseError(InvalidState, i, "locant letter 'A' outside a ring block")

		default:
			if err := p.handleLetter(ch, i); err != nil {
				return err
			}
			i++
			continue
		}
	}
	p.state = stateRoot
	return nil
}

// flushDigits resolves a run of digits into a single packed alkyl-chain
// atom (element code '#', PackedChainLen=len), bonded to prev with any pending
// unsaturation applied (spec.md section 4.5).
func (p *Parser) flushDigits(run string, offset int) error {
	if len(run) > p.opts.MaxCarbonChain {
		return newParseError(CapacityExceeded, offset, "carbon chain length %d exceeds max %d", len(run), p.opts.MaxCarbonChain)
	}
	atomID, err := p.g.AllocateAtom('#', "C", 4, offset+1)
	if err != nil {
		return err
	}
	p.g.Atom(atomID).PackedChainLen = len(run)
	if err := p.bondToPrev(atomID, offset); err != nil {
		return err
	}
	p.prev = atomID
	return nil
}

// bondToPrev links atomID to p.prev (if any), consuming and applying
// pendingUnsaturate.
func (p *Parser) bondToPrev(atomID AtomID, offset int) error {
	if p.prev == NoAtom {
		return nil
	}
	bond, err := p.g.AllocateEdge(p.prev, atomID, offset)
	if err != nil {
		if p.opts.Lenient {
			p.warns = multierr.Append(p.warns, Warning{Offset: offset, Message: err.Error()})
			return nil
		}
		return err
	}
	if p.pendingUnsaturate > 0 {
		if err := p.g.Unsaturate(bond, p.pendingUnsaturate, offset); err != nil {
			return err
		}
	}
	p.pendingUnsaturate = 0
	return nil
}

// handleLetter allocates an atom for one of the fixed WLN letters and
// applies its branch-stack role.
func (p *Parser) handleLetter(ch byte, offset int) error {
	spec, ok := LookupLetter(ch)
	if !ok {
		return newParseError(InvalidCharacter, offset, "unknown character %q", ch)
	}

	atomID, err := p.g.AllocateAtom(ch, spec.Symbol, spec.AllowedEdges, offset+1)
	if err != nil {
		return err
	}
	if err := p.bondToPrev(atomID, offset); err != nil {
		return err
	}

	switch ch {
	case 'W':
		p.result.dioxoAnchors = append(p.result.dioxoAnchors, atomID)
	case 'V':
		p.result.carboxylAnchors = append(p.result.carboxylAnchors, atomID)
	case 'X', 'K':
		p.result.defaultFillX = append(p.result.defaultFillX, atomID)
	case 'Y':
		p.result.defaultFillY = append(p.result.defaultFillY, atomID)
	case 'C':
		p.result.multiplierCarbons = append(p.result.multiplierCarbons, atomID)
	}

	switch spec.Role {
	case RoleBranching:
		p.stack.PushBranch(atomID)
		p.prev = atomID
	case RoleSpecial:
		p.stack.PushBranch(atomID)
		p.prev = atomID
	case RoleTerminal:
		if back := p.returnObjectSymbol(); back != NoAtom {
			p.prev = back
		} else {
			// Nothing open to return to: stay on this atom so a
			// straight-chain continuation ("QY") still bonds in sequence.
			p.prev = atomID
		}
	}
	return nil
}

// returnObjectSymbol pops the branch stack back to the next branching
// atom that still has free valence, per spec.md section 4.5's
// description of Q/Z/H as terminators.
func (p *Parser) returnObjectSymbol() AtomID {
	for {
		f, ok := p.stack.Top()
		if !ok {
			return NoAtom
		}
		if f.Kind == FrameRing {
			return NoAtom
		}
		a := p.g.Atom(f.Atom)
		if a.NumEdges < a.AllowedEdges {
			return f.Atom
		}
		p.stack.Pop()
	}
}

// handleAmpersand implements the context-dependent `&` rules from
// spec.md section 4.5: inside a branch it pops one frame (filling a
// dangling X/Y/K valence with an implicit methyl first); there is no
// ionic-break handling here because splitIonic already consumed that
// occurrence before the main scan started.
func (p *Parser) handleAmpersand(offset int) error {
	f, ok := p.stack.Pop()
	if !ok {
		return nil
	}
	if f.Kind != FrameBranch {
		p.stack.PushRing(f.Ring) // put back; '&' on a ring frame is a no-op here
		return nil
	}
	a := p.g.Atom(f.Atom)
	if (a.Code == 'Y' || a.Code == 'X' || a.Code == 'K') && a.NumEdges < a.AllowedEdges {
		methyl, err := p.g.AllocateAtom('1', "C", 4, offset+1)
		if err != nil {
			return err
		}
		if _, err := p.g.AllocateEdge(f.Atom, methyl, offset); err != nil {
			return err
		}
	}
	if top, ok := p.stack.Top(); ok {
		if top.Kind == FrameRing {
			p.ring = top.Ring
		} else {
			p.prev = top.Atom
		}
	} else {
		p.prev = NoAtom
	}
	return nil
}

// stepBracket advances the bracketed-atom lookahead one character at a
// time: either a single hypervalent letter or a two-letter periodic
// element between two dashes. Bracketed elements are 1-2 letters, so the
// window closes (falls back to stateAfterDash) once 3 characters have
// been seen without a closing '-'. An unmatched '-' opens an inline ring
// attachment, which in this implementation is equivalent to an ordinary
// top-level ring occurrence — see DESIGN.md for the spiro/macro-ring
// simplification this implies.
func (p *Parser) stepBracket(body string, i int) (int, error) {
	offset := p.bracketStart - 1
	length := i - p.bracketStart

	if length >= 3 {
		p.state = stateAfterDash
		return p.bracketStart, nil
	}

	if body[i] != '-' {
		return i + 1, nil
	}
	if length == 0 {
		// "--" with nothing between: not a valid bracket, reprocess the
		// second '-' itself as an ordinary character.
		p.state = stateAfterDash
		return p.bracketStart, nil
	}

	symbol := body[p.bracketStart:i]
	atomID, err := p.allocateBracketed(symbol, offset)
	if err != nil {
		return 0, err
	}
	if err := p.bondToPrev(atomID, offset); err != nil {
		return 0, err
	}
	p.stack.PushBranch(atomID)
	p.prev = atomID
	p.state = stateRoot
	return i + 1, nil
}

func (p *Parser) allocateBracketed(symbol string, offset int) (AtomID, error) {
	if len(symbol) == 1 {
		base, ok := LookupLetter(symbol[0])
		if !ok {
			return NoAtom, newParseError(InvalidCharacter, offset, "unknown hypervalent letter %q", symbol)
		}
		widened := base.AllowedEdges + 2
		return p.g.AllocateAtom('*', base.Symbol, widened, offset+1)
	}
	atomicNumber, valence, ok := ResolveElementSymbol(symbol)
	if !ok {
		return NoAtom, newParseError(InvalidCharacter, offset, "unknown periodic element %q", symbol)
	}
	return p.g.AllocateAtom('*', symbolForAtomicNumber(atomicNumber, symbol), valence, offset+1)
}

func symbolForAtomicNumber(n int, fallback string) string {
	for sym, num := range periodicSymbols {
		if num == n && len(sym) > 1 {
			return sym
		}
	}
	return fallback
}

// openBenzeneShorthand expands `R` to an immediate `L6J` ring and bonds
// its locant-A atom to prev.
func (p *Parser) openBenzeneShorthand(offset int) error {
	spec, err := parseRingSpec('L', "6", offset)
	if err != nil {
		return err
	}
	rb := NewRingBuilder(p.g, p.opts)
	ringID, err := rb.Build(spec, offset, true)
	if err != nil {
		return err
	}
	ring := p.g.Ring(ringID)
	locantAtom := ring.Locants[1]
	if err := p.bondToPrev(locantAtom, offset); err != nil {
		return err
	}
	p.stack.PushRing(ringID)
	p.ring = ringID
	p.prev = locantAtom
	return nil
}

// openRing delegates the substring between the opener and its matching J
// to the ring builder, then attaches the result at p.prev.
func (p *Parser) openRing(body string, offset int) (int, error) {
	opener := body[offset]
	closeIdx := -1
	for j := offset + 1; j < len(body); j++ {
		if body[j] == 'J' {
			closeIdx = j
			break
		}
	}
	if closeIdx == -1 {
		return 0, newParseError(RingClosure, offset, "ring block opened with %q has no closing J", opener)
	}
	blockBody := body[offset+1 : closeIdx]

	spec, err := parseRingSpec(opener, blockBody, offset+1)
	if err != nil {
		return 0, err
	}
	rb := NewRingBuilder(p.g, p.opts)
	ringID, err := rb.Build(spec, offset+1, true)
	if err != nil {
		return 0, err
	}
	ring := p.g.Ring(ringID)
	locantAtom := ring.Locants[1]
	if err := p.bondToPrev(locantAtom, offset); err != nil {
		return 0, err
	}
	p.stack.PushRing(ringID)
	p.ring = ringID
	p.prev = locantAtom
	return closeIdx + 1, nil
}
