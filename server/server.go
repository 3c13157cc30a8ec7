// Package server exposes the pitch workflow over HTTP. It is a thin
// adapter: every handler maps one request onto one engine operation
// and writes back a state snapshot.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"pitch_agent_service/workflow"
)

// Server routes session lifecycle requests to the workflow engine.
type Server struct {
	engine *workflow.Engine
	logger *slog.Logger
}

// New creates the HTTP adapter.
func New(engine *workflow.Engine, logger *slog.Logger) (*Server, error) {
	if engine == nil {
		return nil, errors.New("server: workflow engine required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, logger: logger}, nil
}

// Routes builds the request mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/pitch/start", s.handleStart)
	mux.HandleFunc("POST /api/pitch/approve/{id}", s.handleApprove)
	mux.HandleFunc("GET /api/pitch/status/{id}", s.handleStatus)
	mux.HandleFunc("GET /api/pitch/final/{id}", s.handleFinal)
	mux.HandleFunc("GET /api/pitch/preview/{id}", s.handlePreview)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("DELETE /api/pitch/session/{id}", s.handleDelete)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return s.logMiddleware(mux)
}

// --- Request/response shapes ---

type startReq struct {
	Description string `json:"mvp_description"`
}

type approvalReq struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback,omitempty"`
}

type snapshotResp struct {
	SessionID       string                 `json:"session_id"`
	Status          workflow.Phase         `json:"status"`
	Pitch           string                 `json:"pitch,omitempty"`
	Critique        *workflow.Critique     `json:"critique,omitempty"`
	CriticDecision  workflow.Decision      `json:"critic_decision,omitempty"`
	AutoRefineCount int                    `json:"auto_refine_count"`
	IterationCount  int                    `json:"iteration_count"`
	FinalPackage    *workflow.FinalPackage `json:"final_pitch_package,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Message         string                 `json:"message,omitempty"`
}

type sessionSummary struct {
	SessionID      string         `json:"session_id"`
	Status         workflow.Phase `json:"status"`
	IterationCount int            `json:"iteration_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func snapshot(sess *workflow.Session) snapshotResp {
	st := sess.State
	resp := snapshotResp{
		SessionID:       sess.ID,
		Status:          st.Phase,
		Pitch:           st.Pitch,
		CriticDecision:  st.Critique.Decision,
		AutoRefineCount: st.AutoRefineCount,
		IterationCount:  st.TotalIterationCount,
		FinalPackage:    st.FinalPackage,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
		Message:         phaseMessage(st),
	}
	if st.Critique.Decision != "" {
		critique := st.Critique
		resp.Critique = &critique
	}
	return resp
}

func phaseMessage(st workflow.PitchState) string {
	switch st.Phase {
	case workflow.PhaseAwaitingApproval:
		if st.Critique.Decision == workflow.DecisionPass {
			return fmt.Sprintf("Pitch passed critic review (iteration %d). Please review and approve.", st.TotalIterationCount)
		}
		return fmt.Sprintf("Auto-refinement complete after %d failed reviews. Please review and decide.", st.AutoRefineCount)
	case workflow.PhaseDone:
		return "Pitch approved. Final package ready."
	case workflow.PhaseCapped:
		return fmt.Sprintf("Maximum %d total iterations reached. A best-effort final package was produced from the last pitch.", workflow.MaxTotalIterations)
	default:
		return ""
	}
}

// --- Handlers ---

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	sess, err := s.engine.Start(r.Context(), req.Description)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req approvalReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	sess, err := s.engine.SubmitApproval(r.Context(), r.PathValue("id"), req.Approved, req.Feedback)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.Status(r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleFinal(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.Status(r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if !sess.State.Phase.Terminal() || sess.State.FinalPackage == nil {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("final package not ready; current status: %s", sess.State.Phase))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":          sess.ID,
		"final_pitch_package": sess.State.FinalPackage,
		"total_iterations":    sess.State.TotalIterationCount,
		"metadata": map[string]any{
			"mvp_description":      sess.State.Description,
			"created_at":           sess.CreatedAt,
			"final_critique_score": sess.State.Critique.Overall,
		},
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.Status(r.PathValue("id"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if sess.State.Pitch == "" {
		writeError(w, http.StatusBadRequest, "no pitch generated yet")
		return
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(sess.State.Pitch), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, "render pitch: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := s.engine.Sessions()
	summaries := make([]sessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, sessionSummary{
			SessionID:      sess.ID,
			Status:         sess.State.Phase,
			IterationCount: sess.State.TotalIterationCount,
			CreatedAt:      sess.CreatedAt,
			UpdatedAt:      sess.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_sessions": len(summaries),
		"sessions":       summaries,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	// Idempotent: deleting an unknown id is still a success.
	s.engine.Drop(r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]string{"message": "session deleted"})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Pitch Generation Agent API",
		"workflow": map[string]string{
			"step_1": "POST /api/pitch/start - submit an MVP description, get pitch + critique",
			"step_2": "POST /api/pitch/approve/{session_id} - approve (get final package) or reject (refine)",
			"step_3": "GET /api/pitch/final/{session_id} - fetch the final pitch package",
		},
		"endpoints": map[string]string{
			"start":          "POST /api/pitch/start",
			"approve_reject": "POST /api/pitch/approve/{session_id}",
			"status":         "GET /api/pitch/status/{session_id}",
			"final":          "GET /api/pitch/final/{session_id}",
			"preview":        "GET /api/pitch/preview/{session_id}",
			"sessions":       "GET /api/sessions",
			"delete":         "DELETE /api/pitch/session/{session_id}",
		},
	})
}

// --- Helpers ---

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, workflow.ErrSessionBusy):
		writeError(w, http.StatusConflict, "session is mid-transition; retry shortly")
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrEmptyDescription):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("engine operation failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "workflow did not complete; session state is unchanged")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
