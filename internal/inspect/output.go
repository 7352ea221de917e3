package inspect

import (
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Render marshals reports as pretty-printed JSON with an indent of the
// given width in spaces.
func Render(reports []*Report, indent int) ([]byte, error) {
	if indent < 0 {
		indent = 0
	}
	payload, err := json.MarshalIndent(reports, "", strings.Repeat(" ", indent))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindQueryFailed, "marshal reports", err)
	}
	return payload, nil
}

// WriteFile writes data to path through a temp file and rename, so readers
// never observe a half-written report.
func WriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "write "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "rename "+tmp, err)
	}
	return nil
}
