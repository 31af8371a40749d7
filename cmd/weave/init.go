package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new weave project",
	Long: `Initialize a new weave project by creating a project manifest (weave.toml),
a snippet library directory and a starter document. If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit scaffolds a weave project at the target path: manifest,
// library directory with one shared definition, and a starter document
// whose snippet uses it. Refuses to run when weave.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "weave-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "weave.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest()), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create the library directory with a shared definition
	libDir := filepath.Join(target, "lib")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}
	libPath := filepath.Join(libDir, "greeting.wv")
	createdLib := false
	if _, err := os.Stat(libPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(libPath, []byte(defaultLibrary()), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", libPath, err)
		}
		createdLib = true
	}

	// Create the starter document if not exists
	docPath := filepath.Join(target, "guide.md")
	createdDoc := false
	if _, err := os.Stat(docPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(docPath, []byte(defaultDocument(name)), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", docPath, err)
		}
		createdDoc = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized weave project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - weave.toml\n")
	if createdLib {
		fmt.Fprintf(os.Stdout, "  - lib/greeting.wv\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - lib/greeting.wv (existing)\n")
	}
	if createdDoc {
		fmt.Fprintf(os.Stdout, "  - guide.md\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - guide.md (existing)\n")
	}
	return nil
}

// defaultManifest returns the minimal TOML manifest used as a project
// marker: the fence label and the library directory.
func defaultManifest() string {
	return `# Weave project manifest
[weave]
fence = "weave"
lib = "lib"
`
}

// defaultLibrary returns the starter shared definition compiled ahead
// of every snippet in the project.
func defaultLibrary() string {
	return `// Shared definitions, compiled ahead of the first snippet.
fn greet(name: String) -> String = "Hello, " + name + "!"
`
}

// defaultDocument returns the starter document with one runnable fence.
func defaultDocument(name string) string {
	return fmt.Sprintf("# %s\n\nRun `weave render --write guide.md` to weave results into the snippet below.\n\n```weave\nval greeting = greet(\"weave\")\nprintln(greeting)\n```\n", name)
}
