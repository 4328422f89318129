// Package source 排期核心读取的数据源：xlsx 工作簿、SQLite 存储（见 internal/store）以及内存数据
package source

import (
	"context"
	"errors"

	"showboard/internal/model"
)

// ErrUnknownTable 表（sheet）不存在
var ErrUnknownTable = errors.New("unknown table")

// Source 按 Sheet 顺序返回指定表的行，以表头为键
type Source interface {
	Rows(ctx context.Context, table string) ([]model.Row, error)
}

// Static 内存数据源
type Static map[string][]model.Row

// Rows 返回表数据的副本
func (s Static) Rows(ctx context.Context, table string) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, ok := s[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	out := make([]model.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out, nil
}
