package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// LayerKind names where a config file was found. Later kinds override
// earlier ones.
type LayerKind string

// Config layers, lowest precedence first.
const (
	LayerSystem   LayerKind = "system"
	LayerUser     LayerKind = "user"
	LayerProject  LayerKind = "project"
	LayerExplicit LayerKind = "explicit"
)

// Layer is one config file taking part in a load.
type Layer struct {
	Kind LayerKind
	Path string
}

// ConfigPaths holds the config files found for a run. Empty fields mean no
// file was found at that level.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Layers returns the non-empty paths in precedence order, lowest first.
func (p *ConfigPaths) Layers() []Layer {
	all := []Layer{
		{LayerSystem, p.System},
		{LayerUser, p.User},
		{LayerProject, p.Project},
		{LayerExplicit, p.Explicit},
	}
	layers := all[:0]
	for _, layer := range all {
		if layer.Path != "" {
			layers = append(layers, layer)
		}
	}
	return layers
}

// ProjectConfigFiles are the names searched for in each directory walking up
// from the working directory, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{".csvdoc.yml", ".csvdoc.yaml", "csvdoc.yml", "csvdoc.yaml"}

//nolint:gochecknoglobals // Read-only lookup table.
var (
	dirConfigFiles = []string{"config.yaml", "config.yml"}
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project config files for workDir.
// A missing file is not an error.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), dirConfigFiles...),
		Project: project,
	}
	if dir, err := UserConfigDir(); err == nil {
		paths.User = firstFile(dir, dirConfigFiles...)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/csvdoc"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "csvdoc")
}

// UserConfigDir returns $XDG_CONFIG_HOME/csvdoc, falling back to
// ~/.config/csvdoc.
func UserConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "csvdoc"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "csvdoc"), nil
}

// FindProjectConfig walks up from startDir and returns the first project
// config file, or "" when there is none. The walk ends after a VCS root, the
// home directory or the filesystem root has been checked.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, ProjectConfigFiles...); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names ...string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
