package mtga

import (
	"os"
	"path/filepath"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

// latestRawFile resolves the logical database name to the most recently
// modified Raw_<name>_*.mtga file under dir. The client leaves older
// generations of each database behind, so several files usually match.
func latestRawFile(dir, name string) (string, error) {
	pattern := filepath.Join(dir, "Raw_"+name+"_*.mtga")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "bad pattern "+pattern, err)
	}
	if len(matches) == 0 {
		return "", errs.Newf(errs.ErrKindNotFound, "no %s database matches %s", name, pattern)
	}

	best := ""
	var bestMod int64
	for _, m := range matches {
		st, err := os.Stat(m)
		if err != nil {
			return "", errs.Wrap(errs.ErrKindNotFound, "stat "+m, err)
		}
		if mod := st.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = m, mod
		}
	}
	return best, nil
}
