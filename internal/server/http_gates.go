package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/gatewarden/internal/model"
)

// handleListGates handles GET /v1/gates.
// Returns all open gate records.
func (s *GateServer) handleListGates(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recs == nil {
		recs = []*model.GateRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleGetGate handles GET /v1/gates/{group}/{member}.
func (s *GateServer) handleGetGate(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "group and member must be integers")
		return
	}
	rec, err := s.store.GetRecord(r.Context(), key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gate not found: "+key.String())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// resolveRequest is the body of POST /v1/gates/{group}/{member}/resolve.
type resolveRequest struct {
	Approve bool `json:"approve"`
}

// handleResolveGate handles POST /v1/gates/{group}/{member}/resolve.
// Manually closes a gate: approve restores the member's privileges,
// deny removes them from the group.
func (s *GateServer) handleResolveGate(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "group and member must be integers")
		return
	}
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.engine.Resolve(r.Context(), key, req.Approve); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gate not found: "+key.String())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := "removed"
	if req.Approve {
		status = "passed"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// handleKickGate handles DELETE /v1/gates/{group}/{member}.
// Shorthand for a deny resolution.
func (s *GateServer) handleKickGate(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "group and member must be integers")
		return
	}
	if err := s.engine.Resolve(r.Context(), key, false); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "gate not found: "+key.String())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleGetGateEvents handles GET /v1/gates/{group}/{member}/events.
// Returns the audit trail for a gate, including closed ones.
func (s *GateServer) handleGetGateEvents(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "group and member must be integers")
		return
	}
	evs, err := s.store.GetEvents(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if evs == nil {
		evs = []*model.GateEvent{}
	}
	writeJSON(w, http.StatusOK, evs)
}
