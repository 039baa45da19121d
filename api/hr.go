package api

import (
	"net/http"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// ATTENDANCE
// =============================================================================

// ListAttendance handles GET /api/attendance?date=YYYY-MM-DD. Without a
// date every day is listed.
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	var date model.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		date = d
	}
	records, err := h.store.ListAttendance(r.Context(), date)
	respond(w, http.StatusOK, records, err)
}

func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Attendance record", h.store.GetAttendance)
}

// ClockIn handles POST /api/attendance. A second record for the same
// employee and day is a 409.
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateAttendance)
}

// ClockOut handles PUT /api/attendance/{id}; totalHours is recomputed.
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateAttendance)
}

// =============================================================================
// LEAVE
// =============================================================================

func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListLeaveTypes(r.Context())
	respond(w, http.StatusOK, types, err)
}

func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateLeaveType)
}

func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.store.ListLeaveRequests(r.Context())
	respond(w, http.StatusOK, requests, err)
}

func (h *Handler) GetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Leave request", h.store.GetLeaveRequest)
}

func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateLeaveRequest)
}

func (h *Handler) UpdateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateLeaveRequest)
}

// ApproveLeaveRequest handles POST /api/leave-requests/{id}/approve
func (h *Handler) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, model.LeaveApproved)
}

// RejectLeaveRequest handles POST /api/leave-requests/{id}/reject
func (h *Handler) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideLeave(w, r, model.LeaveRejected)
}

// decideLeave moves a pending request to status and stamps the approver
// and time. Only pending requests can be decided.
func (h *Handler) decideLeave(w http.ResponseWriter, r *http.Request, status model.LeaveStatus) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req LeaveDecisionRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	ctx := r.Context()
	current, err := h.store.GetLeaveRequest(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if current == nil {
		writeError(w, http.StatusNotFound, "Leave request not found", nil)
		return
	}
	if current.Status != model.LeavePending {
		writeError(w, http.StatusConflict, "Leave request is not pending", nil)
		return
	}

	now := h.clock.Now()
	updated, err := h.store.UpdateLeaveRequest(ctx, id, storage.LeaveRequestPatch{
		Status:     &status,
		ApprovedBy: req.ApproverID,
		ApprovedAt: &now,
	})
	respond(w, http.StatusOK, updated, err)
}

// =============================================================================
// PAYROLL
// =============================================================================

// ListPayroll handles GET /api/payroll?year=&month=. Either filter may be
// omitted.
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	year, ok := queryInt(w, r, "year", 0)
	if !ok {
		return
	}
	month, ok := queryInt(w, r, "month", 0)
	if !ok {
		return
	}
	if month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", nil)
		return
	}
	rows, err := h.store.ListPayroll(r.Context(), year, month)
	respond(w, http.StatusOK, rows, err)
}

func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Payroll", h.store.GetPayroll)
}

// CreatePayroll handles POST /api/payroll. netSalary is always computed.
func (h *Handler) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreatePayroll)
}

func (h *Handler) UpdatePayroll(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdatePayroll)
}

// =============================================================================
// PERFORMANCE REVIEWS
// =============================================================================

func (h *Handler) ListPerformanceReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.store.ListPerformanceReviews(r.Context())
	respond(w, http.StatusOK, reviews, err)
}

func (h *Handler) GetPerformanceReview(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Performance review", h.store.GetPerformanceReview)
}

func (h *Handler) CreatePerformanceReview(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreatePerformanceReview)
}

func (h *Handler) UpdatePerformanceReview(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdatePerformanceReview)
}

// =============================================================================
// TRAINING
// =============================================================================

func (h *Handler) ListTrainingPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.ListTrainingPrograms(r.Context())
	respond(w, http.StatusOK, programs, err)
}

func (h *Handler) GetTrainingProgram(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Training program", h.store.GetTrainingProgram)
}

func (h *Handler) CreateTrainingProgram(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateTrainingProgram)
}

func (h *Handler) ListEmployeeTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.store.ListEmployeeTrainings(r.Context())
	respond(w, http.StatusOK, trainings, err)
}

func (h *Handler) GetEmployeeTraining(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Employee training", h.store.GetEmployeeTraining)
}

func (h *Handler) EnrollEmployee(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateEmployeeTraining)
}

func (h *Handler) UpdateEmployeeTraining(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateEmployeeTraining)
}

// =============================================================================
// RECRUITMENT
// =============================================================================

func (h *Handler) ListJobPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := h.store.ListJobPostings(r.Context())
	respond(w, http.StatusOK, postings, err)
}

func (h *Handler) GetJobPosting(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Job posting", h.store.GetJobPosting)
}

func (h *Handler) CreateJobPosting(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateJobPosting)
}

func (h *Handler) UpdateJobPosting(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateJobPosting)
}

func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.store.ListJobApplications(r.Context())
	respond(w, http.StatusOK, applications, err)
}

func (h *Handler) GetJobApplication(w http.ResponseWriter, r *http.Request) {
	getWith(w, r, "Job application", h.store.GetJobApplication)
}

func (h *Handler) CreateJobApplication(w http.ResponseWriter, r *http.Request) {
	createWith(w, r, h.store.CreateJobApplication)
}

func (h *Handler) UpdateJobApplication(w http.ResponseWriter, r *http.Request) {
	updateWith(w, r, h.store.UpdateJobApplication)
}
