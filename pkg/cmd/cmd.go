// Package cmd contains the command line applications for the project.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yeisme/genomeinsight/pkg/app"
	"github.com/yeisme/genomeinsight/pkg/configs"
)

var (
	// configPath 配置文件或所在目录.
	configPath string
	// debug 输出更多调试信息.
	debug bool

	rootCmd = &cobra.Command{
		Use:          "genomeinsight",
		Short:        "Genomics file intake and validation service",
		Version:      configs.AppVersion,
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.NewApp(ctx, configPath)
			if err != nil {
				return err
			}

			return a.Run(ctx)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug information")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerStorageCommands()
	registerEventsCommands()
	registerFileCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
