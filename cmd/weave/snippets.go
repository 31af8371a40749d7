package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weave/internal/diag"
	"weave/internal/docscan"
	"weave/internal/engine"
	"weave/internal/instrument"
	"weave/internal/project"
	"weave/internal/source"
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets [flags] <doc.md>",
	Short: "List the runnable snippets of a markdown document",
	Long:  `Snippets shows what the scanner would extract from a document: fence index, mode, body span and statement count. Nothing is compiled or run.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSnippets,
}

func init() {
	snippetsCmd.Flags().String("format", "text", "output format (text|json)")
	snippetsCmd.Flags().String("fence", "", "fence info word marking runnable snippets (default \"weave\")")
}

type snippetJSON struct {
	Index      int         `json:"index"`
	Mode       string      `json:"mode"`
	Info       string      `json:"info"`
	Body       source.Span `json:"body"`
	Statements int         `json:"statements"`
}

func runSnippets(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	fence, err := cmd.Flags().GetString("fence")
	if err != nil {
		return fmt.Errorf("failed to get fence flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	if !cmd.Flags().Changed("fence") {
		manifest, manifestFound, manifestErr := project.LoadNearest(".")
		if manifestErr != nil {
			return manifestErr
		}
		if manifestFound && manifest.Fence != "" {
			fence = manifest.Fence
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", diag.IOReadFailed.Title(), err)
	}
	input := source.NewFileInput(path, string(data))

	bag := diag.NewBag(maxDiagnostics)
	doc, err := docscan.Scan(input, docscan.Options{
		Label:    fence,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	if err != nil {
		return err
	}

	// Диагностики сканера идут в stderr, список сниппетов — в stdout.
	log := &engine.ConsoleLogger{Out: os.Stderr, Err: os.Stderr}
	for _, d := range bag.Items() {
		loc := source.Loc{Input: input, Start: d.Primary.Start, End: d.Primary.End}
		switch d.Severity {
		case diag.SevError:
			log.ErrorAt(loc, errors.New(d.Message))
		case diag.SevWarning:
			log.Warning(fmt.Sprintf("%s: %s", loc, d.Message))
		default:
			log.Info(fmt.Sprintf("%s: %s", loc, d.Message))
		}
	}

	switch format {
	case "text":
		for _, b := range doc.Blocks {
			start := input.LineColAt(b.Body.Start)
			end := input.LineColAt(b.Body.End)
			stmts := len(instrument.SplitFragment(b.Input).Stmts)
			fmt.Fprintf(os.Stdout, "%3d: %-8s %q at %d:%d-%d:%d, %d statement(s)\n",
				b.Index, b.Mode, b.Info, start.Line, start.Col, end.Line, end.Col, stmts)
		}
	case "json":
		output := make([]snippetJSON, 0, len(doc.Blocks))
		for _, b := range doc.Blocks {
			output = append(output, snippetJSON{
				Index:      b.Index,
				Mode:       b.Mode.String(),
				Info:       b.Info,
				Body:       b.Body,
				Statements: len(instrument.SplitFragment(b.Input).Stmts),
			})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
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
