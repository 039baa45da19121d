package api

import (
	"net/http"
)

// =============================================================================
// DEPARTMENTS
// =============================================================================

// ListDepartments handles GET /api/departments. Each row carries its
// employee count and manager name.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.ListDepartments(r.Context())
	respond(w, http.StatusOK, departments, err)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Department", h.store.GetDepartment)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateDepartment)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateDepartment)
}

// DeleteDepartment refuses with 409 while positions or employees point at
// the department.
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.store.DeleteDepartment)
}

// =============================================================================
// POSITIONS
// =============================================================================

func (h *Handler) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.store.ListPositions(r.Context())
	respond(w, http.StatusOK, positions, err)
}

func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Position", h.store.GetPosition)
}

func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreatePosition)
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// ListEmployees handles GET /api/employees (the directory view).
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.ListEmployees(r.Context())
	respond(w, http.StatusOK, employees, err)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Employee", h.store.GetEmployee)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateEmployee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateEmployee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	deleteWith(w, r, h.store.DeleteEmployee)
}
