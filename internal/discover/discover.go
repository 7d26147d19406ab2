// Package discover expands the file/directory arguments on the command
// line into a concrete file list: recursive directory walk filtered by
// extension, --exclude glob matching, and the --repository/--root path
// rewriting rules described in SPEC_FULL.md §6.2, grounded on the reference
// tool's _ExpandDirectories/_FilterExcludedFiles/_IsParentOrSame.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Expand replaces every directory in paths with the files found by
// recursively walking it (only when recursive is true; a directory passed
// without --recursive is left as-is and will fail to open as a file later,
// matching the reference tool's behavior of only walking when asked).
// Extensions filters the walk; a bare file argument is never filtered by
// extension, only directory members are.
func Expand(paths []string, recursive bool, extensions map[string]bool) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		if p == "-" {
			add(p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		if !recursive {
			add(p)
			continue
		}
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if extensions[strings.TrimPrefix(filepath.Ext(path), ".")] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}

// FilterExcluded drops any path matching one of the --exclude glob patterns,
// or falling inside a directory one of them expands to, mirroring
// _FilterExcludedFiles/_IsParentOrSame: an exclude entry that names a
// directory excludes every file beneath it, not just an exact path match.
func FilterExcluded(paths []string, excludes []string) ([]string, error) {
	if len(excludes) == 0 {
		return paths, nil
	}

	var excludeAbs []string
	for _, e := range excludes {
		g, err := glob.Compile(e)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if g.Match(p) {
				if abs, err := filepath.Abs(p); err == nil {
					excludeAbs = append(excludeAbs, abs)
				}
			}
		}
		if abs, err := filepath.Abs(e); err == nil {
			excludeAbs = append(excludeAbs, abs)
		}
	}

	var out []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			out = append(out, p)
			continue
		}
		excluded := false
		for _, e := range excludeAbs {
			if isParentOrSame(e, abs) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, p)
		}
	}
	return out, nil
}

// isParentOrSame reports whether child is parent itself or a descendant of
// it, both already absolute and lexically clean.
func isParentOrSame(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	if parent == child {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}

// RepositoryRelative rewrites path to be relative to repository, falling
// back to path unchanged if repository is empty or not a prefix of path,
// matching the --repository flag's documented "best effort" behavior.
func RepositoryRelative(path, repository string) string {
	if repository == "" {
		return path
	}
	absRepo, err := filepath.Abs(repository)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRepo, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// StripRoot removes a leading root path component from path (used by the
// entity/filename-match rule so a project layout like
// "src/<lib>/<entity>.vhd" still matches after the library subdirectory is
// stripped), falling back to path unchanged if root is empty or not a
// prefix.
func StripRoot(path, root string) string {
	if root == "" {
		return path
	}
	cleanRoot := filepath.Clean(root) + string(filepath.Separator)
	if strings.HasPrefix(path, cleanRoot) {
		return strings.TrimPrefix(path, cleanRoot)
	}
	return path
}
