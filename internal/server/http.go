package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/groblegark/gatewarden/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *GateServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("POST /v1/events/join", s.handleJoinEvent)
	mux.HandleFunc("POST /v1/events/message", s.handleMessageEvent)
	mux.HandleFunc("GET /v1/gates", s.handleListGates)
	mux.HandleFunc("GET /v1/gates/{group}/{member}", s.handleGetGate)
	mux.HandleFunc("POST /v1/gates/{group}/{member}/resolve", s.handleResolveGate)
	mux.HandleFunc("DELETE /v1/gates/{group}/{member}", s.handleKickGate)
	mux.HandleFunc("GET /v1/gates/{group}/{member}/events", s.handleGetGateEvents)
	mux.HandleFunc("POST /v1/questions/reload", s.handleReloadQuestions)
	mux.HandleFunc("GET /v1/stats", s.handleGetStats)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *GateServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathKey parses the {group} and {member} path segments into a model.Key.
func pathKey(r *http.Request) (model.Key, error) {
	group, err := strconv.ParseInt(r.PathValue("group"), 10, 64)
	if err != nil {
		return model.Key{}, err
	}
	member, err := strconv.ParseInt(r.PathValue("member"), 10, 64)
	if err != nil {
		return model.Key{}, err
	}
	return model.Key{GroupID: group, MemberID: member}, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
