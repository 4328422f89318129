package source

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"showboard/internal/model"
)

// Tracked 包装 Source，记录每次调用并按表计数
type Tracked struct {
	next   Source
	logger *zap.Logger

	mu    sync.Mutex
	calls map[string]int
}

// Track 包装数据源
func Track(next Source, logger *zap.Logger) *Tracked {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracked{
		next:   next,
		logger: logger,
		calls:  make(map[string]int),
	}
}

// Rows 转发调用并记录
func (t *Tracked) Rows(ctx context.Context, table string) ([]model.Row, error) {
	start := time.Now()
	rows, err := t.next.Rows(ctx, table)

	t.mu.Lock()
	t.calls[table]++
	t.mu.Unlock()

	fields := []zap.Field{
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.logger.Warn("source call failed", append(fields, zap.Error(err))...)
		return rows, err
	}
	t.logger.Debug("source call", fields...)
	return rows, nil
}

// Calls 某张表被读取的次数
func (t *Tracked) Calls(table string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[table]
}

// Snapshot 所有表的调用次数
func (t *Tracked) Snapshot() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.calls))
	for k, v := range t.calls {
		out[k] = v
	}
	return out
}
