// Package discovery walks the paths given to dupscan and returns the
// source file list the extractor stage should parse, after extension and
// exclude-glob filtering.
package discovery

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures file discovery.
type Options struct {
	Extensions []string // e.g. [".go"]; matched case-sensitively against filepath.Ext.
	Exclude    []string // doublestar glob patterns matched against slash-separated relative paths.

	// Logger receives a warning for each root that can't be stat'd, per
	// the "Input-not-found: logged, skipped" error-kind contract. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// Find walks roots (files or directories) and returns the sorted,
// deduplicated list of files matching Extensions and not matching any
// Exclude pattern. A root that is neither a file nor a directory (e.g. it
// doesn't exist) is logged and skipped; the scan continues with the
// remaining roots rather than aborting.
func Find(roots []string, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ext := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		ext[e] = true
	}

	seen := make(map[string]bool)

	var out []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			logger.Warn("skipping root that could not be stat'd", "root", root, "error", err)
			continue
		}

		if !info.IsDir() {
			if accept(root, root, ext, opts.Exclude) && !seen[root] {
				seen[root] = true
				out = append(out, root)
			}

			continue
		}

		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			if accept(path, root, ext, opts.Exclude) && !seen[path] {
				seen[path] = true
				out = append(out, path)
			}

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("discovery: walk %s: %w", root, walkErr)
		}
	}

	sort.Strings(out)

	return out, nil
}

func accept(path, root string, ext map[string]bool, exclude []string) bool {
	if len(ext) > 0 && !ext[filepath.Ext(path)] {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range exclude {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}

	return true
}
