package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// discoverer collects the files of one Discover call.
type discoverer struct {
	workDir    string
	extensions []string
	include    *Matcher
	exclude    *Matcher
	follow     bool

	files   map[string]struct{}
	visited map[string]struct{} // real paths of walked directories
}

// Discover expands opts.Paths into the sorted, deduplicated absolute paths of
// the files to check. A named file is kept when its extension matches and no
// exclude pattern applies. Directories are walked recursively, skipping
// hidden entries; symlinked directories are walked only with FollowSymlinks.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		workDir = "."
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		follow:     opts.FollowSymlinks,
		files:      make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}
	if d.include, err = NewMatcher(opts.IncludeGlobs); err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if d.exclude, err = NewMatcher(opts.ExcludeGlobs); err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := d.add(ctx, arg); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(d.files))
	for path := range d.files {
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// add handles one user-supplied path.
func (d *discoverer) add(ctx context.Context, arg string) error {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.workDir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", arg, err)
	}
	if info.IsDir() {
		return d.walk(ctx, path)
	}
	d.keep(path)
	return nil
}

// keep records path when it passes the extension and glob filters.
func (d *discoverer) keep(path string) {
	if !slices.ContainsFunc(d.extensions, func(ext string) bool {
		return strings.EqualFold(ext, filepath.Ext(path))
	}) {
		return
	}

	rel := d.rel(path)
	if d.exclude.Match(rel) || (!d.include.Empty() && !d.include.Match(rel)) {
		return
	}
	d.files[path] = struct{}{}
}

func (d *discoverer) rel(path string) string {
	if rel, err := filepath.Rel(d.workDir, path); err == nil {
		return rel
	}
	return path
}

// walk visits root recursively. A directory reached twice through symlinks
// is walked once.
func (d *discoverer) walk(ctx context.Context, root string) error {
	target, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}
	if _, seen := d.visited[target]; seen {
		return nil
	}
	d.visited[target] = struct{}{}

	// WalkDir does not descend into a symlinked root, so walk its target.
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		root = target
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		switch {
		case entry.IsDir():
			if hidden || (path != root && d.exclude.Match(d.rel(path))) {
				return filepath.SkipDir
			}
		case hidden:
		case entry.Type()&fs.ModeSymlink != 0:
			return d.link(ctx, path)
		default:
			d.keep(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// link handles a symlink met during a walk. Broken links are skipped.
func (d *discoverer) link(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // Broken or inaccessible links are skipped.
	}
	if !info.IsDir() {
		d.keep(path)
		return nil
	}
	if !d.follow {
		return nil
	}
	return d.walk(ctx, path)
}
