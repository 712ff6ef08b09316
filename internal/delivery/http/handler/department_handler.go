package handler

import (
	"net/http"
	"strconv"

	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"

	"github.com/gorilla/mux"
)

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase) *DepartmentHandler {
	return &DepartmentHandler{departmentUsecase: departmentUsecase}
}

// List returns all departments
// @Summary List departments
// @Tags Departments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

// Get returns one department with its doctors
// @Summary Get department
// @Tags Departments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [get]
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	department, err := h.departmentUsecase.GetDepartment(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound:
			response.NotFound(w, "Department not found")
		default:
			response.InternalServerError(w, "Failed to get department")
		}
		return
	}

	response.Success(w, http.StatusOK, "Department retrieved successfully", department)
}
