package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/logger"
)

// prefixes are the bucket subtrees a reader needs locally.
var prefixes = []string{"Raw/", "AssetBundle/"}

// Stats reports what one Sync pass did.
type Stats struct {
	Checked    int   `json:"checked"`
	Downloaded int   `json:"downloaded"`
	Skipped    int   `json:"skipped"`
	Bytes      int64 `json:"bytes"`
}

// Syncer materializes the mirrored Downloads tree under a local install
// root.
type Syncer struct {
	store Store
	root  string
	log   *logger.Logger
}

// NewSyncer returns a Syncer writing under root. A nil logger selects
// the process default.
func NewSyncer(store Store, root string, log *logger.Logger) *Syncer {
	if log == nil {
		log = logger.Global()
	}
	return &Syncer{store: store, root: root, log: log}
}

// Sync pulls every object under the Raw/ and AssetBundle/ prefixes into
// root/MTGA_Data/Downloads, skipping files whose local size already
// matches the stored one.
func (s *Syncer) Sync(ctx context.Context) (Stats, error) {
	var st Stats
	base := filepath.Join(s.root, "MTGA_Data", "Downloads")

	for _, prefix := range prefixes {
		objects, err := s.store.List(ctx, prefix)
		if err != nil {
			return st, fmt.Errorf("list %s: %w", prefix, err)
		}

		for _, obj := range objects {
			if strings.HasSuffix(obj.Key, "/") {
				// Directory marker, nothing to materialize.
				continue
			}
			st.Checked++

			local, err := localPath(base, obj.Key)
			if err != nil {
				return st, err
			}
			if fi, err := os.Stat(local); err == nil && fi.Size() == obj.Size {
				st.Skipped++
				continue
			}

			n, err := s.download(ctx, obj.Key, local)
			if err != nil {
				return st, err
			}
			st.Downloaded++
			st.Bytes += n
			s.log.With().Str("key", obj.Key).Int64("bytes", n).Logger().Info("object downloaded")
		}
	}
	return st, nil
}

// download streams one object into an atomically renamed local file.
func (s *Syncer) download(ctx context.Context, key, local string) (int64, error) {
	body, err := s.store.Fetch(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return 0, fmt.Errorf("create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(local), ".sync-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file for %s: %w", key, err)
	}
	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("place %s: %w", key, err)
	}
	return n, nil
}

// localPath maps an object key onto the local tree, rejecting keys that
// would escape it.
func localPath(base, key string) (string, error) {
	local := filepath.Join(base, filepath.FromSlash(key))
	if !strings.HasPrefix(local, base+string(filepath.Separator)) {
		return "", errs.New(errs.ErrKindInvalidInput, "object key escapes local root: "+key)
	}
	return local, nil
}
