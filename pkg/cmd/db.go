package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/db"
	"github.com/yeisme/genomeinsight/pkg/log"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered database types",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")

			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType))
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "create or update the uploaded_files table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := configs.Load(configPath)
			if err != nil {
				return err
			}

			log.Init(cfg.Log, debug)

			client, err := db.New(cmd.Context(), cfg.DB, db.Options{Debug: debug})
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Migrate(cmd.Context(), model.AllModels()...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DB.GetDBType())

			return nil
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
