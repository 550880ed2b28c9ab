// Package memory implements store.Store with in-process maps. Used when
// no database URL is configured; gate state does not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/groblegark/gatewarden/internal/model"
	"github.com/groblegark/gatewarden/internal/store"
)

// MemoryStore implements store.Store backed by mutex-guarded maps.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[model.Key]model.GateRecord
	events  map[model.Key][]model.GateEvent
	nextID  int64
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New creates an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{
		records: make(map[model.Key]model.GateRecord),
		events:  make(map[model.Key][]model.GateEvent),
	}
}

// SaveRecord inserts or replaces the record for its key.
func (s *MemoryStore) SaveRecord(ctx context.Context, rec *model.GateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key()] = *rec
	return nil
}

// GetRecord returns the record for the key, or model.ErrNotFound.
func (s *MemoryStore) GetRecord(ctx context.Context, key model.Key) (*model.GateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := rec
	return &out, nil
}

// DeleteRecord removes the record for the key. Deleting an absent key is
// a no-op, matching the idempotent terminal transitions of the gate.
func (s *MemoryStore) DeleteRecord(ctx context.Context, key model.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// ListRecords returns a snapshot of all active records.
func (s *MemoryStore) ListRecords(ctx context.Context) ([]*model.GateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.GateRecord, 0, len(s.records))
	for _, rec := range s.records {
		r := rec
		out = append(out, &r)
	}
	return out, nil
}

// RecordEvent appends an audit event for the key.
func (s *MemoryStore) RecordEvent(ctx context.Context, event *model.GateEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	ev := *event
	ev.ID = s.nextID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	key := model.Key{GroupID: ev.GroupID, MemberID: ev.MemberID}
	s.events[key] = append(s.events[key], ev)
	return nil
}

// GetEvents returns the audit events recorded for the key, oldest first.
func (s *MemoryStore) GetEvents(ctx context.Context, key model.Key) ([]*model.GateEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	evs := s.events[key]
	out := make([]*model.GateEvent, 0, len(evs))
	for _, ev := range evs {
		e := ev
		out = append(out, &e)
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
