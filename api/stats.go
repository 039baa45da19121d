package api

import "net/http"

// DashboardStats handles GET /api/dashboard/stats: the four headline counts.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context())
	respond(w, http.StatusOK, stats, err)
}

// Dashboard handles GET /api/dashboard: counts, headcount per department
// and the leave status breakdown with percentages.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.reports.Dashboard(r.Context())
	respond(w, http.StatusOK, d, err)
}
