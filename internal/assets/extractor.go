package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Drasnov/mtga-reader/internal/logger"
)

const bundleSuffix = ".mtga"

// Extractor resolves a card art identifier to the decoded images carried
// by its bundle files.
type Extractor struct {
	dir string
	up  Unpacker
	log *logger.Logger
}

// NewExtractor returns an Extractor over the given bundle directory.
// A nil unpacker selects the zip reader, a nil logger the process default.
func NewExtractor(dir string, up Unpacker, log *logger.Logger) *Extractor {
	if up == nil {
		up = ZipUnpacker{}
	}
	if log == nil {
		log = logger.Global()
	}
	return &Extractor{dir: dir, up: up, log: log}
}

// Extract unpacks every bundle whose file name starts with the
// zero-padded identifier and labels each decoded image by role:
//
//   - a container path containing "Util" labels the image "util";
//   - a container path containing "<id>_AIF." labels it "image";
//   - anything else is labeled by the last underscore-delimited token
//     of the path before its first dot.
//
// The "util" check is independent of the other two, so one asset can
// land under two labels. Assets mapping to the same label overwrite
// earlier ones in bundle order. No matching bundles yields an empty,
// non-nil result.
func (e *Extractor) Extract(id int64) (ArtResult, error) {
	pattern := filepath.Join(e.dir, fmt.Sprintf("%06d*%s", id, bundleSuffix))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scan bundles: %w", err)
	}

	out := make(ArtResult)
	aifMarker := fmt.Sprintf("%d_AIF.", id)
	for _, p := range matches {
		if err := e.extractBundle(p, aifMarker, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Extractor) extractBundle(p, aifMarker string, out ArtResult) error {
	bundle, err := e.up.Open(p)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", filepath.Base(p), err)
	}
	defer bundle.Close()

	assets := bundle.Assets()
	for _, a := range assets {
		img, err := a.Image()
		if err != nil {
			return fmt.Errorf("unpack %s: %w", filepath.Base(p), err)
		}

		ap := a.Path()
		if strings.Contains(ap, "Util") {
			out["util"] = img
		}
		if strings.Contains(ap, aifMarker) {
			out["image"] = img
		} else {
			out[suffixLabel(ap)] = img
		}
	}

	e.log.With().
		Str("bundle", filepath.Base(p)).
		Int("assets", len(assets)).
		Logger().
		Debug("bundle unpacked")
	return nil
}

// suffixLabel is the fallback role: the token after the last underscore
// of everything before the path's first dot.
func suffixLabel(p string) string {
	head, _, _ := strings.Cut(p, ".")
	if i := strings.LastIndexByte(head, '_'); i >= 0 {
		return head[i+1:]
	}
	return head
}
