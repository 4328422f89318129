package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showboard/internal/config"
	"showboard/internal/logging"
)

// cli 命令行共享状态
type cli struct {
	configPath string
	verbose    bool
	dataDir    string
	workbook   string

	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "showboard",
		Short: "Showboard - production schedule dashboard",
		Long: `Showboard answers shipping and overlap questions about a trade-show
production schedule kept in a spreadsheet.

Import the workbook once with "showboard import", then query it from the
command line or through the dashboard started by "showboard serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config.toml 路径（默认位于可执行文件同目录）")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "输出 debug 日志")
	flags.StringVar(&c.dataDir, "data-dir", "", "数据目录（覆盖配置文件）")
	flags.StringVar(&c.workbook, "workbook", "", "直接读取的 xlsx 工作簿（覆盖配置文件）")

	root.AddCommand(
		newServeCmd(c),
		newImportCmd(c),
		newOverlapCmd(c),
		newIdentifierCmd(c),
		newShipDateCmd(c),
	)
	return root
}

// init 加载配置并创建 logger；命令行参数优先于配置文件与环境变量
func (c *cli) init() error {
	cfg, info, err := config.LoadConfigWithInfo(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.dataDir != "" {
		cfg.Data.DataDir = c.dataDir
	}
	if c.workbook != "" {
		cfg.Data.Workbook = c.workbook
	}

	logger, err := logging.New(cfg.Log, c.verbose)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.cfgInfo = info
	c.logger = logger
	logger.Debug("config loaded",
		zap.String("path", info.Path),
		zap.Bool("found", info.FileFound),
		zap.String("dataDir", cfg.Data.DataDir),
		zap.String("workbook", cfg.Data.Workbook))
	return nil
}
