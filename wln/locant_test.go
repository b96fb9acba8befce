package wln

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocantToIntRoundTrip(t *testing.T) {
	for n := 1; n <= 26; n++ {
		letter, ok := intToLocant(n)
		require.True(t, ok)
		back, ok := locantToInt(letter)
		require.True(t, ok)
		require.Equal(t, n, back)
	}
}

func TestLocantToIntRejectsNonLetters(t *testing.T) {
	_, ok := locantToInt('1')
	require.False(t, ok)
	_, ok = locantToInt('a')
	require.False(t, ok)
}

func TestIntToLocantOutOfRange(t *testing.T) {
	_, ok := intToLocant(0)
	require.False(t, ok)
	_, ok = intToLocant(27)
	require.False(t, ok)
}

func TestApplyAmpersand(t *testing.T) {
	require.Equal(t, 24, applyAmpersand(1))
	require.Equal(t, 47, applyAmpersand(applyAmpersand(1)))
}

func TestCreateRelativePositionCapsAtMaxLocant(t *testing.T) {
	require.Equal(t, 128+5, createRelativePosition(5))
	require.Equal(t, MaxLocant, createRelativePosition(200))
}

func TestBreakFurtherCapsAtMaxLocant(t *testing.T) {
	require.Equal(t, MaxLocant, breakFurther(MaxLocant-10))
	require.Less(t, breakFurther(130), MaxLocant+1)
}

func TestIsBroken(t *testing.T) {
	require.False(t, isBroken(26))
	require.True(t, isBroken(brokenBase))
	require.True(t, isBroken(brokenBase+1))
}

func TestLocantLabelRendersLetterInPlainRange(t *testing.T) {
	require.Equal(t, "A", locantLabel(1))
	require.Equal(t, "Z", locantLabel(26))
}

func TestLocantLabelRendersNumericOnceBroken(t *testing.T) {
	require.Equal(t, "#128", locantLabel(brokenBase))
	require.Equal(t, "#300", locantLabel(300))
}
