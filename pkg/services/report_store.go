package services

import (
	"sync"
	"time"

	"biosecure-api/pkg/models"

	"github.com/google/uuid"
)

// ReportStore は直近に生成したレポートを取得・エクスポート用に保持します。
// 上限に達すると最も古いレポートから破棄されます。
type ReportStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	items    map[string]models.ReportEnvelope
}

// NewReportStore は最大capacity件を保持するReportStoreを生成します。
func NewReportStore(capacity int) *ReportStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &ReportStore{
		capacity: capacity,
		items:    make(map[string]models.ReportEnvelope),
	}
}

// Save は新しいIDでレポートを保存し、エンベロープを返します。
func (s *ReportStore) Save(snapshot models.LivestockSnapshot, report models.AIReport, generatedAt time.Time) models.ReportEnvelope {
	env := models.ReportEnvelope{
		ID:          uuid.New().String(),
		GeneratedAt: generatedAt,
		Snapshot:    snapshot,
		Report:      report,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[env.ID] = env
	s.order = append(s.order, env.ID)
	for len(s.order) > s.capacity {
		delete(s.items, s.order[0])
		s.order = s.order[1:]
	}
	return env
}

// Get はidのエンベロープを返します。
func (s *ReportStore) Get(id string) (models.ReportEnvelope, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	env, ok := s.items[id]
	return env, ok
}

// Len は保持しているレポート数を返します。
func (s *ReportStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
