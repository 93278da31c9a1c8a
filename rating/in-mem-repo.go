package rating

import (
	"context"
	"sync"
)

// InMemRatingRepo keeps rating records in a process-local map. It mirrors
// the DynamoDB table's version check so that the optimistic-locking path
// behaves the same in tests and local development.
type InMemRatingRepo struct {
	lock sync.Mutex
	recs map[string]*Record
}

func NewInMemRatingRepo() *InMemRatingRepo {
	return &InMemRatingRepo{
		recs: make(map[string]*Record),
	}
}

func (m *InMemRatingRepo) Get(ctx context.Context, email string) (*Record, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rec, ok := m.recs[email]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (m *InMemRatingRepo) Save(ctx context.Context, rec *Record) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	stored, ok := m.recs[rec.Email]
	if ok && stored.Version != rec.Version {
		return ErrRatingConflict()
	}
	cp := copyRecord(rec)
	cp.Version++
	m.recs[rec.Email] = cp
	rec.Version = cp.Version
	return nil
}

func (m *InMemRatingRepo) List(ctx context.Context) ([]*Record, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	recs := make([]*Record, 0, len(m.recs))
	for _, rec := range m.recs {
		recs = append(recs, copyRecord(rec))
	}
	return recs, nil
}

func copyRecord(rec *Record) *Record {
	cp := *rec
	cp.RatingHistory = make([]HistoryEntry, len(rec.RatingHistory))
	copy(cp.RatingHistory, rec.RatingHistory)
	cp.ContestStats = make(map[string]*ModeStats, len(rec.ContestStats))
	for mode, stats := range rec.ContestStats {
		s := *stats
		cp.ContestStats[mode] = &s
	}
	return &cp
}
