package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	format, debug, lenient = "", false, false
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunDefaultFormatPrintsGrossFormula(t *testing.T) {
	// QY is isopropanol: Q (-OH) on Y, a branching carbon WLN fills out
	// to three explicit neighbours, i.e. (CH3)2CHOH.
	out, err := execute(t, "QY")
	require.NoError(t, err)
	require.Equal(t, "C3H8O\n", out)
}

func TestRunSmiFormatPrintsSmiles(t *testing.T) {
	out, err := execute(t, "--format", "smi", "QY")
	require.NoError(t, err)
	require.Equal(t, "OC(C)C\n", out)
}

func TestRunWeightFormatPrintsTwoDecimalPlaces(t *testing.T) {
	out, err := execute(t, "--format", "weight", "QY")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "\n"))
	require.Contains(t, out, ".")
}

func TestRunUnknownFormatFails(t *testing.T) {
	_, err := execute(t, "--format", "bogus", "QY")
	require.Error(t, err)
}

func TestRunInvalidNotationPrintsDiagnosticAndIsSilent(t *testing.T) {
	out, err := execute(t, "Q!")
	require.Error(t, err)
	require.Equal(t, "", err.Error())
	require.Contains(t, out, "Fatal:")
}

func TestRunLenientPrintsWarnings(t *testing.T) {
	out, err := execute(t, "--lenient", "BFFFF")
	require.NoError(t, err)
	require.Contains(t, out, "warning at")
}
