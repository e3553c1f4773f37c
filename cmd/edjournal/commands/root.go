package commands

import (
	"fmt"
	"os"

	"github.com/livp123/edjournal/internal/config"
	"github.com/livp123/edjournal/internal/runtime"
	"github.com/livp123/edjournal/internal/utils/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
// NewRootCmd 构建命令树，每次调用都返回独立的标志状态。
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "edjournal",
		Short: "Live reader for Elite Dangerous journal files",
		// Short: Elite Dangerous 日志文件的实时读取器
		Long: `edjournal tails the newest Elite Dangerous journal, follows the game to
each new journal file and turns exploration records into typed events.
edjournal 跟踪最新的 Elite Dangerous 日志，跟随游戏切换到新日志文件，
并将探索记录转换为类型化事件。`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration to get logging settings
			// 加载配置以获取日志设置
			cfg, err := config.LoadOrDefault(config.GetConfigPath())
			if err != nil {
				// If config fails to load, use default logging config (console only)
				// 如果加载配置失败，使用默认日志配置（仅控制台）
				logger.Init(logger.DefaultLoggingConfig())
				logger.Get(nil).Warnf("⚠️  Failed to load config from %s: %v, using defaults", config.GetConfigPath(), err)
			} else {
				logger.Init(cfg.Logging)
			}

			// Inject logger into context
			// 将 Logger 注入 Context
			ctx := logger.WithContext(cmd.Context(), logger.Get(nil))
			cmd.SetContext(ctx)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Config file path
	// 配置文件路径
	root.PersistentFlags().StringVarP(&runtime.ConfigPath, "config", "c", "",
		fmt.Sprintf("Path to configuration file (default: $%s or %s)", config.EnvConfigPath, config.GetDefaultConfigPath()))

	root.AddCommand(newWatchCmd())
	root.AddCommand(newBackfillCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	// Disable powershell completion descriptions
	// 禁用补全描述
	root.CompletionOptions.DisableDescriptions = true
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
