// Package runner checks many files concurrently.
package runner

import "github.com/yaklabco/csvdoc/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) to check.
	// Defaults to Config.EffectiveExtensions(), or DefaultExtensions()
	// without a config.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// VerifyUnchanged marks results whose file changed during the run.
	VerifyUnchanged bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions checked when nothing is configured.
func DefaultExtensions() []string {
	return config.DefaultExtensions()
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	if o.Config != nil {
		return o.Config.EffectiveExtensions()
	}
	return DefaultExtensions()
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
