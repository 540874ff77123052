package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher matches slash-separated relative paths against glob patterns.
//
// "*" stays within one path segment and "**" crosses segments. A pattern
// without a slash also matches a path's base name, "**/x" also matches a
// top-level "x", and "dir/**" also matches "dir" itself so whole directories
// can be skipped.
type Matcher struct {
	globs []compiledGlob
}

type compiledGlob struct {
	glob glob.Glob
	base bool
}

// NewMatcher compiles patterns.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
			variants = append(variants, rest)
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
			variants = append(variants, dir)
		}

		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			m.globs = append(m.globs, compiledGlob{
				glob: g,
				base: !strings.Contains(variant, "/"),
			})
		}
	}

	return m, nil
}

// Match reports whether relPath matches any pattern.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}

	p := filepath.ToSlash(relPath)
	base := path.Base(p)
	for _, g := range m.globs {
		if g.glob.Match(p) || (g.base && g.glob.Match(base)) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.globs) == 0
}
