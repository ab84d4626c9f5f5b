package memory

import (
	"EconSim/internal/simulation/entity"
	"context"
	"sync"
)

const defaultCapacity = 1024

// TurnArchive keeps the most recent records in process memory. The oldest
// record is evicted once capacity is reached.
type TurnArchive struct {
	mu       sync.RWMutex
	capacity int
	records  []*entity.TurnRecord
}

func NewTurnArchive(capacity int) *TurnArchive {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &TurnArchive{capacity: capacity}
}

func (a *TurnArchive) Save(ctx context.Context, records []*entity.TurnRecord) error {
	_ = ctx
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range records {
		if r == nil {
			continue
		}
		cp := *r
		a.records = append(a.records, &cp)
	}
	if over := len(a.records) - a.capacity; over > 0 {
		a.records = append(a.records[:0:0], a.records[over:]...)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (a *TurnArchive) Recent(ctx context.Context, limit int) ([]*entity.TurnRecord, error) {
	_ = ctx
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := min(limit, len(a.records))
	out := make([]*entity.TurnRecord, 0, max(n, 0))
	for i := len(a.records) - 1; i >= 0 && len(out) < n; i-- {
		cp := *a.records[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (a *TurnArchive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}
