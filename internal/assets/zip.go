package assets

import (
	"archive/zip"
	"fmt"
	"image"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ZipUnpacker reads bundles stored as zip containers. Entries are
// filtered to image types by extension and decoded lazily on access.
type ZipUnpacker struct{}

func (ZipUnpacker) Open(p string) (Bundle, error) {
	rc, err := zip.OpenReader(p)
	if err != nil {
		return nil, err
	}
	b := &zipBundle{rc: rc}
	for _, f := range rc.File {
		if isImageEntry(f.Name) {
			b.assets = append(b.assets, &zipAsset{file: f})
		}
	}
	return b, nil
}

type zipBundle struct {
	rc     *zip.ReadCloser
	assets []Asset
}

func (b *zipBundle) Assets() []Asset { return b.assets }

func (b *zipBundle) Close() error { return b.rc.Close() }

type zipAsset struct {
	file *zip.File
}

func (a *zipAsset) Path() string { return a.file.Name }

func (a *zipAsset) Image() (image.Image, error) {
	r, err := a.file.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", a.file.Name, err)
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", a.file.Name, err)
	}
	return img, nil
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

func isImageEntry(name string) bool {
	return imageExts[strings.ToLower(path.Ext(name))]
}
