package assets

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bundleEntry struct {
	name string
	data []byte
}

func writeBundle(t *testing.T, path string, entries []bundleEntry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func pngBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func redAt(t *testing.T, img image.Image) uint8 {
	t.Helper()
	require.NotNil(t, img)
	r, _, _, _ := img.At(0, 0).RGBA()
	return uint8(r >> 8)
}

func TestExtract_RoleLabels(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "512456_CardArt.mtga"), []bundleEntry{
		{"assets/512456_AIF.png", pngBytes(t, color.NRGBA{R: 10, A: 255})},
		{"assets/512456_Util_Mask.png", pngBytes(t, color.NRGBA{R: 20, A: 255})},
		{"assets/512456_CardArt_Variant.png", pngBytes(t, color.NRGBA{R: 30, A: 255})},
	})

	e := NewExtractor(dir, nil, nil)
	art, err := e.Extract(512456)
	require.NoError(t, err)

	require.Len(t, art, 4)
	assert.Equal(t, uint8(10), redAt(t, art["image"]))
	assert.Equal(t, uint8(20), redAt(t, art["util"]))
	assert.Equal(t, uint8(20), redAt(t, art["Mask"]))
	assert.Equal(t, uint8(30), redAt(t, art["Variant"]))
}

func TestExtract_OverwriteOnDuplicateLabel(t *testing.T) {
	dir := t.TempDir()

	// Bundles extract in sorted file order, entries in container order.
	// Both layers of overwrite resolve to the later asset.
	writeBundle(t, filepath.Join(dir, "512456_a.mtga"), []bundleEntry{
		{"x/512456_Piece_Variant.png", pngBytes(t, color.NRGBA{R: 1, A: 255})},
		{"y/512456_Other_Variant.png", pngBytes(t, color.NRGBA{R: 2, A: 255})},
	})
	writeBundle(t, filepath.Join(dir, "512456_b.mtga"), []bundleEntry{
		{"z/512456_Late_Variant.png", pngBytes(t, color.NRGBA{R: 3, A: 255})},
	})

	e := NewExtractor(dir, nil, nil)
	art, err := e.Extract(512456)
	require.NoError(t, err)

	require.Len(t, art, 1)
	assert.Equal(t, uint8(3), redAt(t, art["Variant"]))
}

func TestExtract_ZeroPaddedFileMatch(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "001234_art.mtga"), []bundleEntry{
		{"a/001234_AIF.png", pngBytes(t, color.NRGBA{R: 42, A: 255})},
	})
	// Unpadded and foreign identifiers must not match the glob.
	writeBundle(t, filepath.Join(dir, "1234_art.mtga"), []bundleEntry{
		{"a/1234_Stray.png", pngBytes(t, color.NRGBA{R: 99, A: 255})},
	})
	writeBundle(t, filepath.Join(dir, "005678_art.mtga"), []bundleEntry{
		{"a/005678_Foreign.png", pngBytes(t, color.NRGBA{R: 99, A: 255})},
	})

	e := NewExtractor(dir, nil, nil)
	art, err := e.Extract(1234)
	require.NoError(t, err)

	require.Len(t, art, 1)
	assert.Equal(t, uint8(42), redAt(t, art["image"]))
}

func TestExtract_NonImageEntriesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "777777_art.mtga"), []bundleEntry{
		{"data/777777_meta.json", []byte(`{"k":1}`)},
		{"data/777777_Art_Frame.png", pngBytes(t, color.NRGBA{R: 5, A: 255})},
	})

	e := NewExtractor(dir, nil, nil)
	art, err := e.Extract(777777)
	require.NoError(t, err)

	require.Len(t, art, 1)
	assert.Contains(t, art, "Frame")
}

func TestExtract_NoBundles(t *testing.T) {
	e := NewExtractor(t.TempDir(), nil, nil)

	art, err := e.Extract(424242)
	require.NoError(t, err)
	assert.NotNil(t, art)
	assert.Empty(t, art)
}

func TestExtract_CorruptBundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "999999_bad.mtga"), []byte("not a bundle"), 0o644))

	e := NewExtractor(dir, nil, nil)
	_, err := e.Extract(999999)
	assert.Error(t, err)
}

func TestExtract_UndecodableImage(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, filepath.Join(dir, "888888_art.mtga"), []bundleEntry{
		{"a/888888_Broken.png", []byte("not a png")},
	})

	e := NewExtractor(dir, nil, nil)
	_, err := e.Extract(888888)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestSuffixLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"assets/512456_CardArt_Variant.png", "Variant"},
		{"512456_AIF.png", "AIF"},
		{"noseparator.png", "noseparator"},
		{"a/b_c.d.e.png", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, suffixLabel(tt.path))
		})
	}
}

func TestIsImageEntry(t *testing.T) {
	assert.True(t, isImageEntry("a/b.PNG"))
	assert.True(t, isImageEntry("a/b.webp"))
	assert.False(t, isImageEntry("a/b.json"))
	assert.False(t, isImageEntry("a/b"))
}
