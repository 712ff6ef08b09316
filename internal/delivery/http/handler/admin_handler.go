package handler

import (
	"net/http"
	"strconv"

	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// Dashboard returns system-wide counters
// @Summary Admin dashboard
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminUsecase.Dashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// AuditLogs returns the most recent audit trail entries
// @Summary Recent audit logs
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.adminUsecase.RecentAuditLogs(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
