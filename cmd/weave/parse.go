package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"weave/internal/diag"
	"weave/internal/diagfmt"
	"weave/internal/lexer"
	"weave/internal/parser"
	"weave/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.wv>",
	Short: "Parse a weave source file and output its AST",
	Long:  `Parse analyzes a weave source file, such as a snippet library file, and outputs its abstract syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.IOReadFailed.Title(), err)
	}

	bag := diag.NewBag(maxDiagnostics)
	rep := &diag.BagReporter{Bag: bag}
	maxErrors, convErr := safecast.Conv[uint](bag.Cap())
	if convErr != nil {
		maxErrors = 0
	}

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: rep})
	parseRes := parser.ParseFile(fs, lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	bag.Sort()

	if bag.HasErrors() || bag.HasWarnings() {
		colorFlag, colorErr := cmd.Root().PersistentFlags().GetString("color")
		if colorErr != nil {
			return colorErr
		}
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
	}

	switch format {
	case "pretty":
		if err := diagfmt.FormatASTPretty(os.Stdout, parseRes.File, fs); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatASTJSON(os.Stdout, parseRes.File); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}
