package commands

import (
	"fmt"

	"github.com/livp123/edjournal/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Remember the journal directory in the config file",
		// Short: 在配置文件中保存日志目录
		Long: `Validate a journal directory and store it as journal.directory, so later
commands work without --dir.
校验日志目录并保存为 journal.directory，之后的命令无需再指定 --dir。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath()
			cm := config.NewConfigManager(path)
			if err := cm.LoadConfig(); err != nil {
				return err
			}
			if err := cm.SetJournalDirectory(dir); err != nil {
				return err
			}
			if err := cm.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save config %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Journal directory set to %s (saved to %s)\n",
				cm.GetJournalConfig().Directory, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Journal directory to remember")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
