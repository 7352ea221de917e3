package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/errs"
)

var enumsCmd = &cobra.Command{
	Use:   "enums [TYPE]",
	Short: "Show enum categories, or one category's value-to-text map",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		if len(args) == 0 {
			names := make([]string, 0, len(reader.Enums()))
			for name := range reader.Enums() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		values, ok := reader.Enum(args[0])
		if !ok {
			return errs.Newf(errs.ErrKindNotFound, "no enum category %q", args[0])
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(enumsCmd)
}
