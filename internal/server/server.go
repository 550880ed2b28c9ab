// Package server exposes the admission gate over HTTP. Chat frontends
// post join and message events to it, and operators use the same API to
// inspect and resolve gates.
package server

import (
	"log/slog"

	"github.com/groblegark/gatewarden/internal/events"
	"github.com/groblegark/gatewarden/internal/gate"
	"github.com/groblegark/gatewarden/internal/questions"
	"github.com/groblegark/gatewarden/internal/store"
)

// GateServer handles HTTP requests against the gate engine.
type GateServer struct {
	engine    *gate.Engine
	store     store.Store
	bank      *questions.Bank
	source    questions.Source
	publisher events.Publisher
	logger    *slog.Logger
}

// NewGateServer returns a GateServer backed by the given engine and store.
// source may be nil, in which case POST /v1/questions/reload is rejected.
func NewGateServer(e *gate.Engine, s store.Store, bank *questions.Bank, src questions.Source, pub events.Publisher, logger *slog.Logger) *GateServer {
	if logger == nil {
		logger = slog.Default()
	}
	if pub == nil {
		pub = &events.NoopPublisher{}
	}
	return &GateServer{
		engine:    e,
		store:     s,
		bank:      bank,
		source:    src,
		publisher: pub,
		logger:    logger,
	}
}
