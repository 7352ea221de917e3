package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve card lookups as a read-only JSON API",
	Long: `Serve opens one reader over the configured install root and exposes
it over HTTP: health, languages, enums, card lookups, and card art.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		reader, err := openReader(cmd.Context())
		if err != nil {
			return err
		}
		defer reader.Close()

		return server.New(reader, nil).ListenAndServe(addr)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address, overrides the configured server.addr")
}
