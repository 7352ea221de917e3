package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Drasnov/mtga-reader/internal/errs"
	"github.com/Drasnov/mtga-reader/internal/mirror"
	"github.com/Drasnov/mtga-reader/internal/mirror/minio"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror game data files from an object store into the local root",
	Long: `Sync lists the Raw/ and AssetBundle/ prefixes of an S3-compatible
bucket and downloads objects into <root>/MTGA_Data/Downloads, skipping
files whose size already matches. Store settings come from the config
file's mirror section; flags override individual values.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mcfg := cfg.Mirror
		if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
			mcfg.Endpoint = v
		}
		if v, _ := cmd.Flags().GetString("bucket"); v != "" {
			mcfg.Bucket = v
		}
		if v, _ := cmd.Flags().GetString("access-key"); v != "" {
			mcfg.AccessKey = v
		}
		if v, _ := cmd.Flags().GetString("secret-key"); v != "" {
			mcfg.SecretKey = v
		}
		if cmd.Flags().Changed("ssl") {
			mcfg.UseSSL, _ = cmd.Flags().GetBool("ssl")
		}

		if cfg.Root == "" {
			return errs.New(errs.ErrKindInvalidInput, "install root directory required, set --root or root in the config file")
		}
		if mcfg.Endpoint == "" {
			return errs.New(errs.ErrKindInvalidInput, "mirror endpoint required")
		}

		store, err := minio.New(cmd.Context(), mirror.Config{
			Endpoint:  mcfg.Endpoint,
			AccessKey: mcfg.AccessKey,
			SecretKey: mcfg.SecretKey,
			Bucket:    mcfg.Bucket,
			UseSSL:    mcfg.UseSSL,
			Region:    mcfg.Region,
		})
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := mirror.NewSyncer(store, cfg.Root, nil).Sync(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("checked %d objects: downloaded %d, skipped %d, %d bytes transferred\n",
			stats.Checked, stats.Downloaded, stats.Skipped, stats.Bytes)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("endpoint", "", "Object store endpoint, host:port")
	syncCmd.Flags().String("bucket", "", "Bucket holding the mirrored Downloads tree")
	syncCmd.Flags().String("access-key", "", "Object store access key")
	syncCmd.Flags().String("secret-key", "", "Object store secret key")
	syncCmd.Flags().Bool("ssl", false, "Use TLS when talking to the object store")
}
