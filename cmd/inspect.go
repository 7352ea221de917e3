package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect TARGET...",
	Short: "Summarize .mtga SQLite databases as JSON",
	Long: `Inspect opens each matching database read-only and reports its schema:
pragma metadata, tables with columns, indexes and foreign keys, and views.
Targets may be .mtga files, directories containing them, or glob patterns.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")
		rowCount, _ := cmd.Flags().GetBool("include-row-count")
		output, _ := cmd.Flags().GetString("output")
		indent, _ := cmd.Flags().GetInt("indent")

		files, err := inspect.Discover(args, recursive)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errs.New(errs.ErrKindNotFound, "no .mtga database files found for the given targets")
		}

		reports := make([]*inspect.Report, 0, len(files))
		for _, file := range files {
			report, err := inspect.File(cmd.Context(), file, inspect.Options{IncludeRowCount: rowCount})
			if err != nil {
				return fmt.Errorf("inspect %s: %w", file, err)
			}
			reports = append(reports, report)
		}

		data, err := inspect.Render(reports, indent)
		if err != nil {
			return err
		}
		if output != "" {
			return inspect.WriteFile(output, data)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolP("recursive", "r", false, "Search directories recursively for .mtga files")
	inspectCmd.Flags().Bool("include-row-count", false, "Include a row count for each table (can be slow)")
	inspectCmd.Flags().StringP("output", "o", "", "Write the JSON summary to a file instead of stdout")
	inspectCmd.Flags().Int("indent", 2, "Indent level for JSON output")
}
