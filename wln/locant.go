package wln

import "fmt"

// Locant alphabet.
//
// WLN locants run A..Z encoded 1..26. The `&` modifier adds 23 to the
// previous locant (A&=24, A&&=47, ...). Positions above 128 are "broken"
// (relative) locants: createRelativePosition(parent) = 128 + locantToInt(parent),
// and a further break adds 46, capped at 252. The ring builder treats this
// numeric space as a single linear index; intToLocant and locantToInt are
// the only conversions in or out of it.

const (
	// MaxLocant is the highest representable broken-locant value.
	MaxLocant = 252
	// brokenBase is where the relative-position space begins.
	brokenBase = 128
	// brokenStep is added per further break beyond the first.
	brokenStep = 46
	// ampersandStep is added by each trailing `&` on a plain locant letter.
	ampersandStep = 23
)

// locantToInt converts a WLN locant letter (A..Z) to its 1-based index.
// Returns 0 and false if r is not an uppercase letter.
func locantToInt(r byte) (int, bool) {
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return int(r-'A') + 1, true
}

// intToLocant converts a 1..26 index back to its WLN locant letter. Values
// outside that range have no single-letter representation (expanded or
// broken locants are numeric-only).
func intToLocant(n int) (byte, bool) {
	if n < 1 || n > 26 {
		return 0, false
	}
	return byte('A' + n - 1), true
}

// applyAmpersand widens a locant by the `&` modifier step. Called once per
// trailing `&` seen after a locant letter.
func applyAmpersand(locant int) int {
	return locant + ampersandStep
}

// createRelativePosition computes the broken-locant index attached to a
// backbone parent. The first break off `parent` lands at 128+parent;
// chained breaks (a side chain hanging off an already-broken position)
// add brokenStep each further step, capped at MaxLocant.
func createRelativePosition(parent int) int {
	pos := brokenBase + parent
	if pos > MaxLocant {
		pos = MaxLocant
	}
	return pos
}

// breakFurther advances an already-broken locant by one more relative step.
func breakFurther(locant int) int {
	next := locant + brokenStep
	if next > MaxLocant {
		next = MaxLocant
	}
	return next
}

// isBroken reports whether a locant index lies in the relative-position
// space rather than the plain A..Z (+ &-expanded) space.
func isBroken(locant int) bool {
	return locant >= brokenBase
}

// locantLabel renders a locant index the way a diagnostic should show it
// to a reader: the plain letter for the unexpanded A..Z range, or a
// numeric broken-locant index (there is no letter form once `&`-widening
// or a relative break pushes the index past 26).
func locantLabel(n int) string {
	if !isBroken(n) {
		if letter, ok := intToLocant(n); ok {
			return string(letter)
		}
	}
	return fmt.Sprintf("#%d", n)
}
