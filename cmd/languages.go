package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the localization languages in the card database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		fmt.Println(colorize.CyanString("Active:    ") + colorize.HiWhiteString(reader.ActiveLanguage()))
		fmt.Println(colorize.CyanString("Default:   ") + colorize.HiWhiteString(reader.DefaultLanguage()))
		fmt.Println(colorize.CyanString("Available: ") + colorize.HiWhiteString(strings.Join(reader.AvailableLanguages(), ", ")))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(languagesCmd)
}
