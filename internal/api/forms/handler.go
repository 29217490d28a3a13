// Package forms exposes the form lifecycle over HTTP: generate from a
// prompt, view, autosave, submit, export, reset.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/promptform/promptform/pkg/classify"
	"github.com/promptform/promptform/pkg/present"
	"github.com/promptform/promptform/pkg/render"
	"github.com/promptform/promptform/pkg/renderers/vanilla"
	"github.com/promptform/promptform/pkg/session"
)

// Handler serves the form endpoints.
type Handler struct {
	classifier  Classifier
	sessions    SessionStore
	renderer    render.Renderer
	useExternal bool
	logger      *zap.Logger
}

// NewHandler wires the form endpoints. useExternal controls whether
// generation may delegate to the external generator.
func NewHandler(classifier Classifier, sessions SessionStore, renderer render.Renderer, useExternal bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		classifier:  classifier,
		sessions:    sessions,
		renderer:    renderer,
		useExternal: useExternal,
		logger:      logger,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	SessionID string `json:"session_id"`
	FormTitle string `json:"form_title"`
	ViewURL   string `json:"view_url"`
}

// Generate handles POST /forms.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	spec, err := h.classifier.Classify(r.Context(), req.Prompt, h.useExternal)
	if err != nil {
		if errors.Is(err, classify.ErrEmptyPrompt) {
			h.respondError(w, http.StatusUnprocessableEntity, "Please describe what form you need.")
			return
		}
		h.logger.Error("classify prompt", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "could not generate a form")
		return
	}

	sess, err := h.sessions.Create(spec)
	if err != nil {
		h.logger.Error("create session", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "could not create a session")
		return
	}

	h.logger.Info("form generated",
		zap.String("session_id", sess.ID()),
		zap.String("form_title", spec.Title),
	)
	h.respondJSON(w, http.StatusCreated, generateResponse{
		SessionID: sess.ID(),
		FormTitle: spec.Title,
		ViewURL:   "/forms/" + sess.ID(),
	})
}

// View handles GET /forms/{id}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	page, err := h.renderer.Render(r.Context(), sess.Spec(), render.Options{
		Values:    sess.State(),
		Action:    "/forms/" + sess.ID() + "/submit",
		SessionID: sess.ID(),
	})
	if err != nil {
		h.logger.Error("render form", zap.Error(err), zap.String("session_id", sess.ID()))
		h.respondError(w, http.StatusInternalServerError, "could not render the form")
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// SaveValues handles POST /forms/{id}/values. It merges posted values into
// the session without submitting.
func (h *Handler) SaveValues(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	state := vanilla.DecodeSubmission(sess.Spec(), r.PostForm)
	if err := sess.SetValues(state); err != nil {
		h.respondError(w, http.StatusConflict, "form already submitted")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitResponse struct {
	Status    string `json:"status"`
	Summary   string `json:"summary"`
	ExportURL string `json:"export_url"`
}

// Submit handles POST /forms/{id}/submit. Posted values, if any, are merged
// before the snapshot is taken.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	if len(r.PostForm) > 0 {
		state := vanilla.DecodeSubmission(sess.Spec(), r.PostForm)
		if err := sess.SetValues(state); err != nil {
			h.respondError(w, http.StatusConflict, "form already submitted")
			return
		}
	}

	record, err := sess.Submit(time.Now())
	if err != nil {
		h.logger.Error("submit form", zap.Error(err), zap.String("session_id", sess.ID()))
		h.respondError(w, http.StatusInternalServerError, "could not submit the form")
		return
	}

	h.logger.Info("form submitted", zap.String("session_id", sess.ID()))
	h.respondJSON(w, http.StatusOK, submitResponse{
		Status:    "submitted",
		Summary:   present.HumanView(record),
		ExportURL: "/forms/" + sess.ID() + "/export",
	})
}

// Export handles GET /forms/{id}/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	record, submitted := sess.Submission()
	if !submitted {
		h.respondError(w, http.StatusConflict, "form has not been submitted")
		return
	}

	payload, err := present.ExportJSON(record)
	if err != nil {
		h.logger.Error("export submission", zap.Error(err), zap.String("session_id", sess.ID()))
		h.respondError(w, http.StatusInternalServerError, "could not export the submission")
		return
	}

	w.Header().Set("Content-Type", present.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", present.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// Reset handles POST /forms/{id}/reset. The session survives with the same
// spec; values and any submission snapshot are cleared.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	sess, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "unknown or expired form session")
			return nil, false
		}
		h.logger.Error("load session", zap.Error(err), zap.String("session_id", id))
		h.respondError(w, http.StatusInternalServerError, "could not load the session")
		return nil, false
	}
	return sess, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
