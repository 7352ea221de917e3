package inspect

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// dbSuffix is the file extension the discovery step recognizes.
const dbSuffix = ".mtga"

// Discover expands a mix of explicit files, directories, and glob patterns
// into a de-duplicated, sorted list of absolute database file paths.
//
// Explicit files and glob matches are filtered by suffix case-insensitively;
// directory scans match the lowercase suffix only, mirroring a plain
// *.mtga glob. The recursive flag widens directory scans to the whole tree.
func Discover(targets []string, recursive bool) ([]string, error) {
	seen := make(map[string]struct{})

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errs.Wrap(errs.ErrKindInvalidInput, "resolve "+path, err)
		}
		seen[abs] = struct{}{}
		return nil
	}

	for _, target := range targets {
		st, err := os.Stat(target)
		switch {
		case err == nil && st.Mode().IsRegular():
			if hasDBSuffix(target) {
				if err := add(target); err != nil {
					return nil, err
				}
			}

		case err == nil && st.IsDir():
			if err := discoverDir(target, recursive, add); err != nil {
				return nil, err
			}

		default:
			// Anything else is treated as a glob pattern.
			matches, err := filepath.Glob(target)
			if err != nil {
				return nil, errs.Wrap(errs.ErrKindInvalidInput, "bad pattern "+target, err)
			}
			for _, m := range matches {
				info, err := os.Stat(m)
				if err != nil || !info.Mode().IsRegular() || !hasDBSuffix(m) {
					continue
				}
				if err := add(m); err != nil {
					return nil, err
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func discoverDir(dir string, recursive bool, add func(string) error) error {
	if !recursive {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+dbSuffix))
		if err != nil {
			return errs.Wrap(errs.ErrKindInvalidInput, "scan "+dir, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if err := add(m); err != nil {
				return err
			}
		}
		return nil
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errs.Wrap(errs.ErrKindQueryFailed, "walk "+dir, err)
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), dbSuffix) {
			return add(path)
		}
		return nil
	})
}

func hasDBSuffix(path string) bool {
	return strings.EqualFold(filepath.Ext(path), dbSuffix)
}
