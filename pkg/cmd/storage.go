package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/storage"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/db"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/kv"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/mq"
	"github.com/yeisme/genomeinsight/pkg/log"
)

var (
	storageCmd = &cobra.Command{
		Use:   "storage",
		Short: "Storage backend related commands",
	}

	storageListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all supported backends",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "db:")
			for _, t := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(out, "   - "+string(t))
			}

			fmt.Fprintln(out, "blob:")
			for _, t := range []configs.StorageType{configs.StorageLocal, configs.StorageS3} {
				fmt.Fprintln(out, "   - "+string(t))
			}

			fmt.Fprintln(out, "kv:")
			for _, t := range kv.GetRegisteredKVTypes() {
				fmt.Fprintln(out, "   - "+string(t))
			}

			fmt.Fprintln(out, "mq:")
			for _, t := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(out, "   - "+string(t))
			}
		},
	}

	storageCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "connect to the configured backends and ping the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := configs.Load(configPath)
			if err != nil {
				return err
			}

			log.Init(cfg.Log, debug)

			mgr, err := storage.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer mgr.Close()

			if err := mgr.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("database unreachable: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: db=%s blob=%s kv=%s mq=%s\n",
				cfg.DB.GetDBType(), mgr.Blob.Kind(), cfg.KV.Type, mgr.MQ.Kind())

			return nil
		},
	}
)

// registerStorageCommands 注册存储相关命令.
func registerStorageCommands() {
	rootCmd.AddCommand(storageCmd)

	storageCmd.AddCommand(storageListCmd)
	storageCmd.AddCommand(storageCheckCmd)
}
