// Command wlnread parses a Wiswesser Line Notation string and prints its
// structure, grounded on the cobra command layout the pack's
// turtacn-KeyIP-Intelligence CLI uses (package-level flag vars bound with
// Flags().*Var, a RunE closure that drives the actual work).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cx-luo/go-wln/adapter/gochem"
	"github.com/cx-luo/go-wln/wln"
)

var (
	format  string
	debug   bool
	lenient bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if _, silent := err.(errSilent); !silent {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wlnread <notation>",
		Short:         "Parse a Wiswesser Line Notation string into a molecular graph",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Emit the parsed molecule as: smi (SMILES), formula, or weight")
	cmd.Flags().BoolVar(&debug, "debug", false, "Trace every state-machine transition to stderr")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Skip bonds that would exceed a valence ceiling and report each as a warning instead of failing")
	return cmd
}

func run(cmd *cobra.Command, raw string) error {
	opts := []wln.Option{wln.WithLenient(lenient)}
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts = append(opts, wln.WithLogger(logger))
	}

	parser := wln.NewParser(opts...)
	graph, warnings, err := parser.Parse(raw)
	if err != nil {
		if pe, ok := err.(*wln.ParseError); ok {
			fmt.Fprintln(cmd.OutOrStderr(), wln.FormatDiagnostic(raw, pe))
			return errSilent{}
		}
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(cmd.OutOrStderr(), "warning at %d: %s\n", w.Offset, w.Message)
	}

	mol := gochem.NewMolecule()
	if err := wln.WriteGraph(graph, mol); err != nil {
		return err
	}

	switch format {
	case "", "formula":
		fmt.Fprintln(cmd.OutOrStdout(), gochem.GrossFormula(mol))
	case "smi":
		s, err := gochem.SMILES(mol)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
	case "weight":
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", gochem.MolecularWeight(mol))
	default:
		return fmt.Errorf("unknown --format %q (want smi, formula, or weight)", format)
	}
	return nil
}

// errSilent signals a diagnostic was already printed; cobra's default
// error handler would otherwise print it a second time.
type errSilent struct{}

func (errSilent) Error() string { return "" }
