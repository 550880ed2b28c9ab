package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/gatewarden/internal/model"
)

// joinRequest is the body of POST /v1/events/join.
type joinRequest struct {
	GroupID  int64 `json:"group_id"`
	MemberID int64 `json:"member_id"`
}

// messageRequest is the body of POST /v1/events/message.
type messageRequest struct {
	GroupID  int64  `json:"group_id"`
	MemberID int64  `json:"member_id"`
	Text     string `json:"text"`
}

// handleJoinEvent handles POST /v1/events/join.
// Reports a member joining a group; a gate record is created and the
// member is restricted until they answer. Duplicate joins are no-ops.
func (s *GateServer) handleJoinEvent(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.GroupID == 0 || req.MemberID == 0 {
		writeError(w, http.StatusBadRequest, "group_id and member_id are required")
		return
	}
	key := model.Key{GroupID: req.GroupID, MemberID: req.MemberID}
	if err := s.engine.HandleJoin(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rec, err := s.store.GetRecord(r.Context(), key)
	if err != nil {
		// Record may already be gone if the transition resolved immediately.
		if errors.Is(err, model.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "resolved"})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleMessageEvent handles POST /v1/events/message.
// Reports a message from a member; when the member is gated the text is
// judged as an answer, otherwise the event is ignored.
func (s *GateServer) handleMessageEvent(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.GroupID == 0 || req.MemberID == 0 {
		writeError(w, http.StatusBadRequest, "group_id and member_id are required")
		return
	}
	key := model.Key{GroupID: req.GroupID, MemberID: req.MemberID}
	if err := s.engine.HandleMessage(r.Context(), key, req.Text); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}
