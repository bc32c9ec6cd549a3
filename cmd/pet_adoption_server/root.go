package main

import (
	"fmt"
	"os"

	"pet_adoption_server/internal/config"

	"github.com/spf13/cobra"
)

// 全局参数
var cfgFile string

// rootCmd 根命令，不带子命令时等同于 serve
var rootCmd = &cobra.Command{
	Use:   "pet_adoption_server",
	Short: "Pet adoption marketplace API server",
	Long: `Pet adoption marketplace API server.

Subcommands:
  serve    - Run the HTTP API server
  migrate  - Create or update database tables and exit`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the TOML config file (default: search configs/)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// 未指定 --config 时依次查找
var configCandidates = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// loadConfig 显式指定的文件必须存在；搜索不到时使用默认配置
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadConfig(cfgFile)
	}
	for _, path := range configCandidates {
		if _, err := os.Stat(path); err == nil {
			return config.LoadConfig(path)
		}
	}
	fmt.Fprintln(os.Stderr, "no config file found, using defaults")
	conf := config.Default()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
