package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"weave/internal/diag"
	"weave/internal/pipeline"
	"weave/internal/project"
	"weave/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <doc.md|directory> [more...]",
	Short: "Run document snippets and weave their results back in",
	Long: `Render executes the fenced weave snippets of each markdown document and
replaces every fence body with the rendered statements, binders and output.
Documents whose snippets fail to compile or run are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Bool("write", false, "rewrite documents in place")
	renderCmd.Flags().String("out", "", "write rendered copies into this directory")
	renderCmd.Flags().Bool("check", false, "report stale documents without writing anything")
	renderCmd.Flags().String("lib", "", "directory of *.wv files compiled ahead of the first snippet")
	renderCmd.Flags().String("fence", "", "fence info word marking runnable snippets (default \"weave\")")
	renderCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	renderCmd.Flags().String("ui", "auto", "progress interface (auto|on|off)")
	renderCmd.Flags().String("emit-doc", "", "export the render outcome to this msgpack file")
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	libDir, err := cmd.Flags().GetString("lib")
	if err != nil {
		return err
	}
	fence, err := cmd.Flags().GetString("fence")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	emitDoc, err := cmd.Flags().GetString("emit-doc")
	if err != nil {
		return err
	}

	if write && outDir != "" {
		return fmt.Errorf("render: --write and --out are mutually exclusive")
	}
	if check && write {
		return fmt.Errorf("render: --check cannot be used with --write")
	}
	if check && outDir != "" {
		return fmt.Errorf("render: --check cannot be used with --out")
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))

	// Манифест задаёт значения по умолчанию, явные флаги всегда сильнее.
	manifest, manifestFound, err := project.LoadNearest(".")
	if err != nil {
		return err
	}
	if manifestFound {
		if !cmd.Flags().Changed("fence") && manifest.Fence != "" {
			fence = manifest.Fence
		}
		if !cmd.Flags().Changed("lib") && manifest.Lib != "" {
			libDir = manifest.Lib
		}
		if !cmd.Flags().Changed("jobs") && manifest.Jobs > 0 {
			jobs = manifest.Jobs
		}
		if !write && !check && outDir == "" && manifest.Out != "" {
			outDir = manifest.Out
		}
	}

	files, err := collectDocumentFiles(cmd.Context(), args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("render: no documents found")
	}

	// Без места назначения отрендеренный текст уходит в stdout; TUI
	// рисует туда же, так что вместе они не живут.
	stdoutMode := !write && !check && outDir == ""
	if stdoutMode && uiModeValue == uiModeOn {
		return fmt.Errorf("render: --ui on requires --write, --out or --check")
	}
	useTUI := !stdoutMode && shouldUseTUI(uiModeValue)

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	req := pipeline.RenderRequest{
		Paths:          files,
		Label:          fence,
		LibDir:         libDir,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Color:          useColor,
		Quiet:          quiet,
		EnableTimings:  showTimings,
	}

	var result *pipeline.RenderResult
	if useTUI {
		result, err = runRenderWithUI(cmd.Context(), "weave render", files, &req)
	} else {
		result, err = pipeline.Render(cmd.Context(), &req)
	}
	if result == nil {
		return err
	}

	// Буферизованные логи движка печатаются в исходном порядке файлов,
	// даже когда рендер шёл параллельно или под TUI.
	for _, f := range result.Files {
		if f.Log != "" {
			fmt.Fprint(os.Stderr, f.Log)
		}
	}
	if err != nil {
		if showTimings {
			printStageTimings(os.Stdout, aggregateTimings(result.Files))
		}
		return err
	}

	var hasErrors bool
	var stale int
	switch {
	case stdoutMode:
		for _, f := range result.Files {
			_, _ = os.Stdout.WriteString(f.Output)
		}
	case check:
		for _, f := range result.Files {
			if !f.Changed {
				continue
			}
			stale++
			if !quiet {
				_, printErr := fmt.Fprintln(os.Stdout, f.Path)
				if printErr != nil {
					panic(printErr)
				}
			}
		}
	case write:
		for _, f := range result.Files {
			if !f.Rendered || !f.Changed {
				continue
			}
			if writeErr := writeDocument(f.Path, f.Output); writeErr != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "render: %s: %v\n", f.Path, writeErr)
				continue
			}
			if !quiet {
				_, printErr := fmt.Fprintf(os.Stdout, "rendered %s\n", f.Path)
				if printErr != nil {
					panic(printErr)
				}
			}
		}
	default: // --out
		if mkErr := os.MkdirAll(outDir, 0o755); mkErr != nil {
			return fmt.Errorf("render: %v", mkErr)
		}
		for _, f := range result.Files {
			if f.Failed {
				continue
			}
			target := filepath.Join(outDir, filepath.Base(f.Path))
			if writeErr := writeDocument(target, f.Output); writeErr != nil {
				hasErrors = true
				fmt.Fprintf(os.Stderr, "render: %s: %v\n", target, writeErr)
				continue
			}
			if !quiet {
				_, printErr := fmt.Fprintf(os.Stdout, "rendered %s\n", target)
				if printErr != nil {
					panic(printErr)
				}
			}
		}
	}

	if emitDoc != "" {
		if exportErr := report.Write(emitDoc, report.Build("weave", result.Files)); exportErr != nil {
			return fmt.Errorf("render: export failed: %w", exportErr)
		}
	}

	if showTimings {
		if !quiet {
			printFileTimings(os.Stdout, result.Files)
		}
		printStageTimings(os.Stdout, aggregateTimings(result.Files))
	}

	if hasErrors {
		return fmt.Errorf("render: failed to write some files")
	}
	if result.Failed > 0 {
		return fmt.Errorf("render: failed to render %d of %d files", result.Failed, len(result.Files))
	}
	if check && stale > 0 {
		return fmt.Errorf("render: %s in %d file(s)", diag.DocStale.Title(), stale)
	}
	return nil
}

// writeDocument rewrites a rendered document, keeping the permissions
// of an existing file.
func writeDocument(path, text string) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, []byte(text), mode.Perm())
}

// collectDocumentFiles expands directories into their markdown files.
// Explicitly named files are taken as-is regardless of extension.
func collectDocumentFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			switch filepath.Ext(path) {
			case ".md", ".markdown":
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
