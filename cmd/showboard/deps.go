package main

import (
	"fmt"

	"go.uber.org/zap"

	"showboard/internal/config"
	"showboard/internal/fuzzy"
	"showboard/internal/schedule"
	"showboard/internal/source"
	"showboard/internal/store"
)

func tablesFromConfig(cfg *config.AppConfig) schedule.Tables {
	t := schedule.DefaultTables()
	if cfg.Sheets.Schedule != "" {
		t.Schedule = cfg.Sheets.Schedule
	}
	if cfg.Sheets.Clients != "" {
		t.Clients = cfg.Sheets.Clients
	}
	if cfg.Sheets.Shows != "" {
		t.Shows = cfg.Sheets.Shows
	}
	return t
}

// openStore 打开数据目录下的 SQLite 数据库
func (c *cli) openStore() (*store.Store, string, error) {
	dataDir, err := config.EnsureDataDir(c.cfg)
	if err != nil {
		return nil, "", fmt.Errorf("prepare data dir: %w", err)
	}
	st, err := store.New(config.DatabasePath(c.cfg), c.logger)
	if err != nil {
		return nil, "", err
	}
	return st, dataDir, nil
}

// scheduleSource 配置了工作簿时直接读取工作簿，否则读取数据库
func (c *cli) scheduleSource(st *store.Store) source.Source {
	var src source.Source = st
	if c.cfg.Data.Workbook != "" {
		src = source.NewWorkbook(c.cfg.Data.Workbook, c.logger)
		c.logger.Info("reading schedule from workbook", zap.String("path", c.cfg.Data.Workbook))
	}
	return source.Track(src, c.logger)
}

func (c *cli) newService(src source.Source) *schedule.Service {
	return schedule.NewService(src, fuzzy.NewMatcher(),
		schedule.WithLogger(c.logger),
		schedule.WithTables(tablesFromConfig(c.cfg)),
		schedule.WithThresholds(c.cfg.Matching.ClientThreshold, c.cfg.Matching.ShowThreshold),
	)
}

// queryService 查询类命令使用的服务；返回的 closer 负责关闭数据库
func (c *cli) queryService() (*schedule.Service, func(), error) {
	if c.cfg.Data.Workbook != "" {
		return c.newService(c.scheduleSource(nil)), func() {}, nil
	}
	st, _, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}
	return c.newService(c.scheduleSource(st)), func() { _ = st.Close() }, nil
}
