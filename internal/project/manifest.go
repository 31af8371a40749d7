// Package project locates and loads the weave.toml manifest.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest holds the [weave] section of weave.toml. Zero values mean
// "not set"; command-line flags always win over manifest values.
type Manifest struct {
	// Fence is the info word marking runnable fences.
	Fence string
	// Lib is the snippet library directory, resolved against the
	// manifest's own directory when relative.
	Lib string
	// Out is the output directory for rendered copies, resolved the
	// same way.
	Out string
	// Jobs bounds the render worker count.
	Jobs int
	// Dir is the directory containing the manifest.
	Dir string
}

var (
	// ErrWeaveSectionMissing indicates that [weave] is missing in the manifest.
	ErrWeaveSectionMissing = errors.New("missing [weave]")
	// ErrBadFenceLabel indicates an unusable fence info word.
	ErrBadFenceLabel = errors.New("fence label must be a single word without backticks")
)

type manifestFile struct {
	Weave struct {
		Fence string `toml:"fence"`
		Lib   string `toml:"lib"`
		Out   string `toml:"out"`
		Jobs  int    `toml:"jobs"`
	} `toml:"weave"`
}

// Load parses a weave.toml manifest.
func Load(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("weave") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrWeaveSectionMissing)
	}

	m := Manifest{
		Fence: strings.TrimSpace(cfg.Weave.Fence),
		Lib:   strings.TrimSpace(cfg.Weave.Lib),
		Out:   strings.TrimSpace(cfg.Weave.Out),
		Jobs:  cfg.Weave.Jobs,
		Dir:   filepath.Dir(path),
	}
	if m.Fence != "" && strings.ContainsAny(m.Fence, " \t`") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrBadFenceLabel)
	}
	if m.Jobs < 0 {
		return Manifest{}, fmt.Errorf("%s: jobs must not be negative", path)
	}
	if m.Lib != "" && !filepath.IsAbs(m.Lib) {
		m.Lib = filepath.Join(m.Dir, m.Lib)
	}
	if m.Out != "" && !filepath.IsAbs(m.Out) {
		m.Out = filepath.Join(m.Dir, m.Out)
	}
	return m, nil
}

// LoadNearest walks up from startDir and loads the first weave.toml
// found. ok is false when no manifest exists, which is not an error.
func LoadNearest(startDir string) (Manifest, bool, error) {
	path, ok, err := FindWeaveToml(startDir)
	if err != nil || !ok {
		return Manifest{}, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return m, true, nil
}
