package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yeisme/genomeinsight/pkg/configs"
	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/storage/blob"
	"github.com/yeisme/genomeinsight/pkg/internal/validate"
)

var (
	classifyCmd = &cobra.Command{
		Use:   "classify <filename>...",
		Short: "print the extension and category detected for each filename",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range args {
				ext, cat := genomics.Classify(name)
				if ext == "" {
					ext = "(none)"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, ext, cat)
			}
		},
	}

	// validate 对本地文件执行与上传相同的校验，不写入任何存储.
	validateCmd = &cobra.Command{
		Use:   "validate <file>",
		Short: "validate a local genomics file without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := configs.Load(configPath)
			if err != nil {
				return err
			}

			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(abs)
			if err != nil {
				return err
			}

			if !info.Mode().IsRegular() {
				return fmt.Errorf("%s is not a regular file", args[0])
			}

			src, err := blob.NewLocal(filepath.Dir(abs))
			if err != nil {
				return err
			}

			verdict := validate.NewFromConfig(cfg.Upload).Validate(cmd.Context(), validate.Input{
				Filename: filepath.Base(abs),
				Size:     info.Size(),
				Path:     filepath.Base(abs),
				Source:   src,
			})

			b, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			if !verdict.IsValid {
				return fmt.Errorf("%s is not valid", args[0])
			}

			return nil
		},
	}
)

// registerFileCommands 注册文件校验相关命令.
func registerFileCommands() {
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(validateCmd)
}
