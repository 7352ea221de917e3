package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/nfnt/resize"
	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/assets"
	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/mtga"
)

var artCmd = &cobra.Command{
	Use:   "art",
	Short: "Extract a card's art bundles to PNG files",
	Long: `Art looks up a card, follows its art reference into the AssetBundle
directory, and writes every extracted image as <card-id>_<role>.png.
--width scales images to the given width, preserving aspect ratio.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetInt64("id")
		out, _ := cmd.Flags().GetString("out")
		width, _ := cmd.Flags().GetUint("width")

		if id == 0 {
			return errs.New(errs.ErrKindInvalidInput, "--id is required")
		}

		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		art, err := cardArtByCardID(cmd.Context(), reader, id)
		if err != nil {
			return err
		}
		if len(art) == 0 {
			return errs.Newf(errs.ErrKindNotFound, "no art bundles for card %d", id)
		}
		return saveArt(out, id, art, width)
	},
}

func init() {
	RootCmd.AddCommand(artCmd)

	artCmd.Flags().Int64("id", 0, "Card id (GrpId) whose art to extract")
	artCmd.Flags().String("out", ".", "Directory to write PNG files into")
	artCmd.Flags().Uint("width", 0, "Resize images to this width, 0 keeps the original size")
}

// cardArtByCardID follows a card's art reference and extracts its bundles.
func cardArtByCardID(ctx context.Context, r *mtga.Reader, cardID int64) (assets.ArtResult, error) {
	card, err := r.CardByID(ctx, cardID, false)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errs.Newf(errs.ErrKindNotFound, "no card with id %d", cardID)
	}
	artID, ok := card["art"].(int64)
	if !ok {
		return nil, errs.Newf(errs.ErrKindNotFound, "card %d has no art reference", cardID)
	}
	return r.CardArt(artID)
}

// saveArt writes one PNG per role into dir, resizing when width > 0.
func saveArt(dir string, cardID int64, art assets.ArtResult, width uint) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	roles := make([]string, 0, len(art))
	for role := range art {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		img := art[role]
		if width > 0 {
			img = resize.Resize(width, 0, img, resize.Lanczos3)
		}
		path := filepath.Join(dir, fmt.Sprintf("%d_%s.png", cardID, role))
		if err := writePNG(path, img); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", path)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
