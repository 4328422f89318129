package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "showboard/internal/api/v1"
	"showboard/internal/importer"
	"showboard/internal/search"
	"showboard/internal/server"
	"showboard/internal/util"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		port      int
		devMode   bool
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 Web 服务与 API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				c.cfg.Server.Port = port
			}
			if cmd.Flags().Changed("dev") {
				c.cfg.Server.DevMode = devMode
			}
			if noBrowser {
				c.cfg.Server.OpenBrowser = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "监听端口")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式（未匹配路由重定向到前端开发服务器）")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "启动后不自动打开浏览器")
	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	st, dataDir, err := c.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	svc := c.newService(c.scheduleSource(st))
	coord := importer.NewCoordinator(st, svc.Tables(), c.logger)
	hl := search.NewHighlighter(c.cfg.Search.OpenTag, c.cfg.Search.CloseTag)
	api := v1.NewHandler(st, svc, coord, hl, c.logger, filepath.Join(dataDir, "uploads"))
	api.SetExportDir(filepath.Join(dataDir, "exports"))

	srv := server.NewServer(api, c.cfg.Server.DevMode, c.logger)
	addr := fmt.Sprintf(":%d", c.cfg.Server.Port)
	url := util.DashboardURL(c.cfg.Server.Port)
	c.logger.Info("showboard listening", zap.String("url", url), zap.String("dataDir", dataDir))

	if c.cfg.Server.OpenBrowser && !c.cfg.Server.DevMode {
		go func() {
			if err := util.OpenBrowser(url); err != nil {
				c.logger.Warn("failed to open browser", zap.Error(err))
			}
		}()
	}

	return srv.Run(ctx, addr)
}
