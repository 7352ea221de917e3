package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/mtga"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Look up cards by id or localized name",
	Long: `Card resolves flattened card records: localization references become
text in the active language, ability references become the ability rows,
and the art reference stays numeric. --id prints one record, --name
searches the localization table with a SQL LIKE pattern and prints an
array. With --art the matched cards' art is extracted to PNG files.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetInt64("id")
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		withArt, _ := cmd.Flags().GetBool("art")
		out, _ := cmd.Flags().GetString("out")

		if (id == 0) == (name == "") {
			return errs.New(errs.ErrKindInvalidInput, "exactly one of --id and --name is required")
		}

		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		var cards []mtga.Record
		var payload any
		if id != 0 {
			card, err := reader.CardByID(cmd.Context(), id, false)
			if err != nil {
				return err
			}
			if card == nil {
				return errs.Newf(errs.ErrKindNotFound, "no card with id %d", id)
			}
			cards = []mtga.Record{card}
			payload = card
		} else {
			cards, err = reader.CardsByName(cmd.Context(), name, limit, false)
			if err != nil {
				return err
			}
			payload = cards
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

		if !withArt {
			return nil
		}
		for _, card := range cards {
			grpID, ok := card["GrpId"].(int64)
			if !ok {
				continue
			}
			artID, ok := card["art"].(int64)
			if !ok {
				continue
			}
			art, err := reader.CardArt(artID)
			if err != nil {
				return err
			}
			if err := saveArt(out, grpID, art, 0); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardCmd)

	cardCmd.Flags().Int64("id", 0, "Card id (GrpId) to resolve")
	cardCmd.Flags().StringP("name", "n", "", "Localized name pattern, SQL LIKE syntax")
	cardCmd.Flags().Int("limit", 0, "Maximum matches for --name, 0 returns all")
	cardCmd.Flags().Bool("art", false, "Also extract the matched cards' art to PNG files")
	cardCmd.Flags().String("out", ".", "Directory to write PNG files into")
}
