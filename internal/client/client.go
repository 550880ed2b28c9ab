// Package client provides a transport-agnostic interface for the gatewarden
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/groblegark/gatewarden/internal/model"
)

// GateClient is the interface that all gatewarden CLI commands use to
// communicate with the server. It is implemented by HTTPClient.
type GateClient interface {
	// Inbound events
	ReportJoin(ctx context.Context, key model.Key) (*model.GateRecord, error)
	ReportMessage(ctx context.Context, key model.Key, text string) error

	// Gates
	ListGates(ctx context.Context) ([]*model.GateRecord, error)
	GetGate(ctx context.Context, key model.Key) (*model.GateRecord, error)
	ResolveGate(ctx context.Context, key model.Key, approve bool) error
	KickGate(ctx context.Context, key model.Key) error
	GetGateEvents(ctx context.Context, key model.Key) ([]*model.GateEvent, error)

	// Questions
	ReloadQuestions(ctx context.Context) (int, error)

	// Health and stats
	Health(ctx context.Context) (string, error)
	Stats(ctx context.Context) (*Stats, error)

	// Lifecycle
	Close() error
}

// Stats is the server's aggregate gate report.
type Stats struct {
	Gates     int            `json:"gates"`
	ByPhase   map[string]int `json:"by_phase"`
	Timers    int            `json:"timers"`
	Questions int            `json:"questions"`
}
