package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weave/internal/diag"
	"weave/internal/diagfmt"
	"weave/internal/lexer"
	"weave/internal/source"
	"weave/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] <file.wv>",
	Short: "Tokenize a weave source file",
	Long:  `Tokens breaks down a weave source file into its constituent tokens, leading trivia included`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
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
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	// Выводим диагностику в stderr, если есть
	if bag.HasErrors() || bag.HasWarnings() {
		bag.Sort()
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
