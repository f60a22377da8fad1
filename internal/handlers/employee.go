package handlers

import (
	"net/http"

	"idea-portal/internal/repository"

	"go.uber.org/zap"
)

type EmployeeHandler struct {
	employeeRepo *repository.EmployeeRepo
	logger       *zap.Logger
}

func NewEmployeeHandler(employeeRepo *repository.EmployeeRepo, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// --- GET /employees ---

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeRepo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch employees", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch employees")
		return
	}
	writeJSON(w, http.StatusOK, employees)
}
