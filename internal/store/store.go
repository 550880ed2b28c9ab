package store

import (
	"context"

	"github.com/groblegark/gatewarden/internal/model"
)

// Store defines the persistence interface for gate state. Postgres gives
// gates durability across restarts; the memory implementation is the
// degraded mode used when no database is configured (in-flight gates are
// lost on restart).
type Store interface {
	// Gate records
	SaveRecord(ctx context.Context, rec *model.GateRecord) error
	GetRecord(ctx context.Context, key model.Key) (*model.GateRecord, error)
	DeleteRecord(ctx context.Context, key model.Key) error
	ListRecords(ctx context.Context) ([]*model.GateRecord, error)

	// Audit events
	RecordEvent(ctx context.Context, event *model.GateEvent) error
	GetEvents(ctx context.Context, key model.Key) ([]*model.GateEvent, error)

	// Lifecycle
	Close() error
}
