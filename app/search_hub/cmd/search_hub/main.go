package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/config"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/profile"
)

const defaultConfigPath = "configs/config.yaml"

var (
	cfgFile    string
	jsonOutput bool

	cfg  *config.Config
	prof *profile.Profile
)

var rootCmd = &cobra.Command{
	Use:   "search_hub",
	Short: "聚合网页 / 图片 / 新闻搜索",
	Long: `search_hub 把网页、图片、新闻三类搜索聚合在一起，
结果在本地缓存 30 分钟，并保存最近搜索、收藏和搜索偏好。`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if prof != nil {
			return prof.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(recentCmd())
	rootCmd.AddCommand(savedCmd())
	rootCmd.AddCommand(prefsCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(resetCmd())
}

// setup 加载配置、初始化日志并打开本地存储
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		// 未显式指定且默认配置不存在时使用内置默认值
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return fmt.Errorf("无法加载配置文件: %w", err)
		}
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}

	prof, err = profile.Open(cfg)
	if err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
