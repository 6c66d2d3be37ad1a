package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.version,
	})
}

// handleParse handles one-shot parse requests
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxSourceSize)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "source too large", "")
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lines, diags := parser.ParseString(req.Source)
	s.writeJSON(w, http.StatusOK, ToParseResponse(lines, diags))
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	s.writeJSON(w, status, ErrorResponse{
		Error:   errMsg,
		Message: detail,
		Code:    status,
	})
}
