package server

import (
	"net/http"

	"github.com/groblegark/gatewarden/internal/events"
	"github.com/groblegark/gatewarden/internal/model"
)

// handleReloadQuestions handles POST /v1/questions/reload.
// Re-fetches the question bank from its configured source. Members whose
// assigned question disappears in the reload are removed the next time
// they answer.
func (s *GateServer) handleReloadQuestions(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		writeError(w, http.StatusConflict, "no question source configured")
		return
	}
	if err := s.bank.Reload(r.Context(), s.source); err != nil {
		writeError(w, http.StatusBadGateway, "reload questions: "+err.Error())
		return
	}
	n := s.bank.Len()
	if err := s.publisher.Publish(r.Context(), events.TopicBankReloaded, events.BankReloaded{Questions: n}); err != nil {
		s.logger.Warn("server: publish reload event failed", "error", err)
	}
	s.logger.Info("server: question bank reloaded", "questions", n)
	writeJSON(w, http.StatusOK, map[string]int{"questions": n})
}

// statsResponse is the body of GET /v1/stats.
type statsResponse struct {
	Gates     int            `json:"gates"`
	ByPhase   map[string]int `json:"by_phase"`
	Timers    int            `json:"timers"`
	Questions int            `json:"questions"`
}

// handleGetStats handles GET /v1/stats.
func (s *GateServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byPhase := map[string]int{
		model.PhasePending.String():   0,
		model.PhaseAnswering.String(): 0,
	}
	for _, rec := range recs {
		byPhase[rec.Phase.String()]++
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Gates:     len(recs),
		ByPhase:   byPhase,
		Timers:    s.engine.PendingTimers(),
		Questions: s.bank.Len(),
	})
}
