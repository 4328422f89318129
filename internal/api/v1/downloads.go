package v1

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 导出文件的下载有效期
const downloadTTL = 10 * time.Minute

type pendingDownload struct {
	filePath  string
	filename  string
	expiresAt time.Time
}

// downloadStore 一次性下载令牌
type downloadStore struct {
	mu    sync.Mutex
	items map[string]pendingDownload
	now   func() time.Time
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]pendingDownload),
		now:   time.Now,
	}
}

func (s *downloadStore) put(filePath, filename string, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	token := uuid.NewString()
	s.items[token] = pendingDownload{
		filePath:  filePath,
		filename:  filename,
		expiresAt: s.now().Add(ttl),
	}
	return token
}

// take 取出并作废令牌
func (s *downloadStore) take(token string) (pendingDownload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	v, ok := s.items[token]
	if ok {
		delete(s.items, token)
	}
	return v, ok
}

// purgeExpiredLocked 删除过期令牌及其临时文件
func (s *downloadStore) purgeExpiredLocked() {
	now := s.now()
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			_ = os.Remove(v.filePath)
		}
	}
}
