package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"idea-portal/internal/metrics"
	"idea-portal/internal/models"
	"idea-portal/internal/notify"
	"idea-portal/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

type IdeaHandler struct {
	ideaRepo *repository.IdeaRepo
	notifier notify.Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewIdeaHandler(ideaRepo *repository.IdeaRepo, notifier notify.Notifier, m *metrics.Metrics, logger *zap.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideaRepo: ideaRepo,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// Routes mounts the idea endpoints, typically under /ideas.
func (h *IdeaHandler) Routes(r chi.Router) {
	r.Get("/", h.ListIdeas)
	r.Post("/", h.CreateIdea)
	r.Get("/{id}", h.GetIdea)
	r.Delete("/{id}", h.DeleteIdea)
	r.Patch("/{id}/vote", h.VoteIdea)
}

type CreateIdeaRequest struct {
	Summary     string `json:"summary" validate:"required"`
	Description string `json:"description" validate:"required"`
	EmployeeID  string `json:"employeeId" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

type VoteRequest struct {
	VoteType string `json:"voteType"`
}

// --- GET /ideas ---

func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := positiveIntParam(query.Get("page"), defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := positiveIntParam(query.Get("limit"), defaultLimit)
	if err != nil || limit > maxLimit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must be an integer between 1 and %d", maxLimit))
		return
	}

	result, err := h.ideaRepo.List(r.Context(), models.ListParams{
		Page:   page,
		Limit:  limit,
		Search: query.Get("search"),
	})
	if err != nil {
		h.logger.Error("failed to fetch ideas", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch ideas")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- POST /ideas ---

func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req CreateIdeaRequest
	if err := decodeFields(r.Body, &req, "summary", "description", "employeeId", "priority"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	idea, err := h.ideaRepo.Create(r.Context(), models.CreateIdeaInput{
		Summary:     req.Summary,
		Description: req.Description,
		EmployeeID:  req.EmployeeID,
		Priority:    models.Priority(req.Priority),
	})
	if err != nil {
		// Unknown employees are reported as a server error, like any other
		// failure to create.
		h.logger.Error("failed to create idea",
			zap.String("employeeId", req.EmployeeID),
			zap.Bool("employeeNotFound", errors.Is(err, repository.ErrEmployeeNotFound)),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to create idea")
		return
	}
	h.metrics.IdeasCreated.Inc()

	// Announce in the background; the response does not wait for delivery.
	go func(message string) {
		if err := h.notifier.Publish(context.Background(), message); err != nil {
			h.logger.Warn("failed to publish new idea", zap.String("ideaId", idea.ID), zap.Error(err))
		}
	}(formatIdeaMessage(idea))

	writeJSON(w, http.StatusCreated, idea)
}

// --- GET /ideas/{id} ---

func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	idea, err := h.ideaRepo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to fetch idea", zap.String("ideaId", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch idea")
		return
	}
	if idea == nil {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

// --- DELETE /ideas/{id} ---

func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.ideaRepo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete idea", zap.String("ideaId", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete idea")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	h.metrics.IdeasDeleted.Inc()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- PATCH /ideas/{id}/vote ---

func (h *IdeaHandler) VoteIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req VoteRequest
	if err := decodeFields(r.Body, &req, "voteType"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	voteType := models.VoteType(req.VoteType)
	if voteType != models.VoteUp && voteType != models.VoteDown {
		writeError(w, http.StatusBadRequest, `invalid vote type, must be "upvote" or "downvote"`)
		return
	}

	idea, err := h.ideaRepo.Vote(r.Context(), id, voteType)
	if err != nil {
		h.logger.Error("failed to vote on idea", zap.String("ideaId", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to vote on idea")
		return
	}
	if idea == nil {
		writeError(w, http.StatusNotFound, "idea not found")
		return
	}
	h.metrics.Votes.WithLabelValues(string(voteType)).Inc()

	writeJSON(w, http.StatusOK, idea)
}

func positiveIntParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("value %d is not positive", n)
	}
	return n, nil
}

func formatIdeaMessage(idea *models.Idea) string {
	return fmt.Sprintf("New idea from %s [%s]\n%s\n\n%s",
		idea.EmployeeName, idea.Priority, idea.Summary, idea.Description)
}
