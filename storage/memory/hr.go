package memory

import (
	"context"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// newestFirst orders by date descending, then id descending.
func newestFirst(da, db model.Date, ida, idb int64) bool {
	if da != db {
		return da.After(db)
	}
	return ida > idb
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func (s *Store) ListAttendance(_ context.Context, date model.Date) ([]model.AttendanceView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.attendance.sorted(func(a, b model.Attendance) bool {
		if a.Date != b.Date {
			return a.Date.After(b.Date)
		}
		return s.byEmployee(a.EmployeeID, b.EmployeeID, a.ID, b.ID)
	})
	out := make([]model.AttendanceView, 0, len(rows))
	for _, a := range rows {
		if !date.IsZero() && a.Date != date {
			continue
		}
		out = append(out, model.AttendanceView{Attendance: a, EmployeeName: s.employeeName(a.EmployeeID)})
	}
	return out, nil
}

func (s *Store) GetAttendance(_ context.Context, id int64) (*model.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attendance.get(id), nil
}

func (s *Store) CreateAttendance(_ context.Context, a model.Attendance) (model.Attendance, error) {
	if err := storage.PrepareAttendance(&a, s.clock); err != nil {
		return model.Attendance{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employees.has(a.EmployeeID) {
		return model.Attendance{}, storage.MissingParent("attendance", "employeeId", a.EmployeeID)
	}
	key := attendanceKey{EmployeeID: a.EmployeeID, Date: a.Date}
	if _, taken := s.attendanceDays[key]; taken {
		return model.Attendance{}, storage.Conflict("attendance", "employeeId,date")
	}
	a.ID = s.attendance.nextID()
	s.attendance.put(a.ID, a)
	s.attendanceDays[key] = a.ID
	return a, nil
}

func (s *Store) UpdateAttendance(_ context.Context, id int64, p storage.AttendancePatch) (model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attendance.rows[id]
	if !ok {
		return model.Attendance{}, storage.NotFound("attendance", id)
	}
	p.Apply(&a)
	storage.DeriveAttendance(&a)
	if err := storage.Validate("attendance", a); err != nil {
		return model.Attendance{}, err
	}
	s.attendance.put(id, a)
	return a, nil
}

// =============================================================================
// LEAVE
// =============================================================================

func (s *Store) ListLeaveTypes(_ context.Context) ([]model.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaveTypes.sorted(func(a, b model.LeaveType) bool { return a.ID < b.ID }), nil
}

func (s *Store) GetLeaveType(_ context.Context, id int64) (*model.LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaveTypes.get(id), nil
}

func (s *Store) CreateLeaveType(_ context.Context, t model.LeaveType) (model.LeaveType, error) {
	if err := storage.PrepareLeaveType(&t); err != nil {
		return model.LeaveType{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.leaveTypes.nextID()
	s.leaveTypes.put(t.ID, t)
	return t, nil
}

func (s *Store) ListLeaveRequests(_ context.Context) ([]model.LeaveRequestView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.leaveRequests.sorted(func(a, b model.LeaveRequest) bool {
		return newestFirst(a.StartDate, b.StartDate, a.ID, b.ID)
	})
	out := make([]model.LeaveRequestView, 0, len(rows))
	for _, r := range rows {
		view := model.LeaveRequestView{LeaveRequest: r, EmployeeName: s.employeeName(r.EmployeeID)}
		if t, ok := s.leaveTypes.rows[r.LeaveTypeID]; ok {
			view.LeaveTypeName = t.Name
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Store) GetLeaveRequest(_ context.Context, id int64) (*model.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaveRequests.get(id), nil
}

func (s *Store) CreateLeaveRequest(_ context.Context, r model.LeaveRequest) (model.LeaveRequest, error) {
	if err := storage.PrepareLeaveRequest(&r); err != nil {
		return model.LeaveRequest{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLeaveRequest(r); err != nil {
		return model.LeaveRequest{}, err
	}
	r.ID = s.leaveRequests.nextID()
	s.leaveRequests.put(r.ID, r)
	return r, nil
}

func (s *Store) UpdateLeaveRequest(_ context.Context, id int64, p storage.LeaveRequestPatch) (model.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.leaveRequests.rows[id]
	if !ok {
		return model.LeaveRequest{}, storage.NotFound("leave request", id)
	}
	p.Apply(&r)
	storage.DeriveLeaveRequest(&r)
	if err := storage.Validate("leave request", r); err != nil {
		return model.LeaveRequest{}, err
	}
	if err := s.checkLeaveRequest(r); err != nil {
		return model.LeaveRequest{}, err
	}
	s.leaveRequests.put(id, r)
	return r, nil
}

func (s *Store) checkLeaveRequest(r model.LeaveRequest) error {
	if !s.employees.has(r.EmployeeID) {
		return storage.MissingParent("leave request", "employeeId", r.EmployeeID)
	}
	if !s.leaveTypes.has(r.LeaveTypeID) {
		return storage.MissingParent("leave request", "leaveTypeId", r.LeaveTypeID)
	}
	if r.ApprovedBy != nil && !s.employees.has(*r.ApprovedBy) {
		return storage.MissingParent("leave request", "approvedBy", *r.ApprovedBy)
	}
	return nil
}

// =============================================================================
// PAYROLL
// =============================================================================

func (s *Store) ListPayroll(_ context.Context, year, month int) ([]model.PayrollView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.payroll.sorted(func(a, b model.Payroll) bool {
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return s.byEmployee(a.EmployeeID, b.EmployeeID, a.ID, b.ID)
	})
	out := make([]model.PayrollView, 0, len(rows))
	for _, p := range rows {
		if (year > 0 && p.Year != year) || (month > 0 && p.Month != month) {
			continue
		}
		out = append(out, model.PayrollView{Payroll: p, EmployeeName: s.employeeName(p.EmployeeID)})
	}
	return out, nil
}

func (s *Store) GetPayroll(_ context.Context, id int64) (*model.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payroll.get(id), nil
}

func (s *Store) CreatePayroll(_ context.Context, p model.Payroll) (model.Payroll, error) {
	if err := storage.PreparePayroll(&p); err != nil {
		return model.Payroll{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employees.has(p.EmployeeID) {
		return model.Payroll{}, storage.MissingParent("payroll", "employeeId", p.EmployeeID)
	}
	key := payrollKey{EmployeeID: p.EmployeeID, Month: p.Month, Year: p.Year}
	if _, taken := s.payrollPeriods[key]; taken {
		return model.Payroll{}, storage.Conflict("payroll", "employeeId,month,year")
	}
	p.ID = s.payroll.nextID()
	s.payroll.put(p.ID, p)
	s.payrollPeriods[key] = p.ID
	return p, nil
}

func (s *Store) UpdatePayroll(_ context.Context, id int64, patch storage.PayrollPatch) (model.Payroll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payroll.rows[id]
	if !ok {
		return model.Payroll{}, storage.NotFound("payroll", id)
	}
	patch.Apply(&p)
	storage.DerivePayroll(&p)
	if err := storage.Validate("payroll", p); err != nil {
		return model.Payroll{}, err
	}
	s.payroll.put(id, p)
	return p, nil
}

// =============================================================================
// PERFORMANCE REVIEWS
// =============================================================================

func (s *Store) ListPerformanceReviews(_ context.Context) ([]model.PerformanceReviewView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.reviews.sorted(func(a, b model.PerformanceReview) bool {
		return newestFirst(a.ReviewDate, b.ReviewDate, a.ID, b.ID)
	})
	out := make([]model.PerformanceReviewView, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.PerformanceReviewView{
			PerformanceReview: r,
			EmployeeName:      s.employeeName(r.EmployeeID),
			ReviewerName:      s.employeeName(r.ReviewerID),
		})
	}
	return out, nil
}

func (s *Store) GetPerformanceReview(_ context.Context, id int64) (*model.PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews.get(id), nil
}

func (s *Store) CreatePerformanceReview(_ context.Context, r model.PerformanceReview) (model.PerformanceReview, error) {
	if err := storage.PreparePerformanceReview(&r); err != nil {
		return model.PerformanceReview{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employees.has(r.EmployeeID) {
		return model.PerformanceReview{}, storage.MissingParent("performance review", "employeeId", r.EmployeeID)
	}
	if !s.employees.has(r.ReviewerID) {
		return model.PerformanceReview{}, storage.MissingParent("performance review", "reviewerId", r.ReviewerID)
	}
	r.ID = s.reviews.nextID()
	s.reviews.put(r.ID, r)
	return r, nil
}

func (s *Store) UpdatePerformanceReview(_ context.Context, id int64, p storage.PerformanceReviewPatch) (model.PerformanceReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews.rows[id]
	if !ok {
		return model.PerformanceReview{}, storage.NotFound("performance review", id)
	}
	p.Apply(&r)
	if err := storage.Validate("performance review", r); err != nil {
		return model.PerformanceReview{}, err
	}
	s.reviews.put(id, r)
	return r, nil
}

// =============================================================================
// TRAINING
// =============================================================================

func (s *Store) ListTrainingPrograms(_ context.Context) ([]model.TrainingProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programs.sorted(func(a, b model.TrainingProgram) bool { return a.ID < b.ID }), nil
}

func (s *Store) GetTrainingProgram(_ context.Context, id int64) (*model.TrainingProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programs.get(id), nil
}

func (s *Store) CreateTrainingProgram(_ context.Context, p model.TrainingProgram) (model.TrainingProgram, error) {
	if err := storage.PrepareTrainingProgram(&p); err != nil {
		return model.TrainingProgram{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.programs.nextID()
	s.programs.put(p.ID, p)
	return p, nil
}

func (s *Store) ListEmployeeTrainings(_ context.Context) ([]model.EmployeeTrainingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.employeeTrainings.sorted(func(a, b model.EmployeeTraining) bool {
		return newestFirst(a.EnrollmentDate, b.EnrollmentDate, a.ID, b.ID)
	})
	out := make([]model.EmployeeTrainingView, 0, len(rows))
	for _, t := range rows {
		view := model.EmployeeTrainingView{EmployeeTraining: t, EmployeeName: s.employeeName(t.EmployeeID)}
		if p, ok := s.programs.rows[t.TrainingProgramID]; ok {
			view.ProgramTitle = p.Title
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Store) GetEmployeeTraining(_ context.Context, id int64) (*model.EmployeeTraining, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employeeTrainings.get(id), nil
}

func (s *Store) CreateEmployeeTraining(_ context.Context, t model.EmployeeTraining) (model.EmployeeTraining, error) {
	if err := storage.PrepareEmployeeTraining(&t, s.clock); err != nil {
		return model.EmployeeTraining{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.employees.has(t.EmployeeID) {
		return model.EmployeeTraining{}, storage.MissingParent("employee training", "employeeId", t.EmployeeID)
	}
	if !s.programs.has(t.TrainingProgramID) {
		return model.EmployeeTraining{}, storage.MissingParent("employee training", "trainingProgramId", t.TrainingProgramID)
	}
	t.ID = s.employeeTrainings.nextID()
	s.employeeTrainings.put(t.ID, t)
	return t, nil
}

func (s *Store) UpdateEmployeeTraining(_ context.Context, id int64, p storage.EmployeeTrainingPatch) (model.EmployeeTraining, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.employeeTrainings.rows[id]
	if !ok {
		return model.EmployeeTraining{}, storage.NotFound("employee training", id)
	}
	p.Apply(&t)
	if err := storage.Validate("employee training", t); err != nil {
		return model.EmployeeTraining{}, err
	}
	s.employeeTrainings.put(id, t)
	return t, nil
}

// =============================================================================
// RECRUITMENT
// =============================================================================

func (s *Store) ListJobPostings(_ context.Context) ([]model.JobPostingView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.jobPostings.sorted(func(a, b model.JobPosting) bool {
		return newestFirst(a.PostedDate, b.PostedDate, a.ID, b.ID)
	})
	out := make([]model.JobPostingView, 0, len(rows))
	for _, j := range rows {
		view := model.JobPostingView{JobPosting: j}
		if d, ok := s.departments.rows[j.DepartmentID]; ok {
			view.Department = d.Name
		}
		if p, ok := s.positions.rows[j.PositionID]; ok {
			view.PositionTitle = p.Title
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Store) GetJobPosting(_ context.Context, id int64) (*model.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobPostings.get(id), nil
}

func (s *Store) CreateJobPosting(_ context.Context, j model.JobPosting) (model.JobPosting, error) {
	if err := storage.PrepareJobPosting(&j, s.clock); err != nil {
		return model.JobPosting{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.departments.has(j.DepartmentID) {
		return model.JobPosting{}, storage.MissingParent("job posting", "departmentId", j.DepartmentID)
	}
	if !s.positions.has(j.PositionID) {
		return model.JobPosting{}, storage.MissingParent("job posting", "positionId", j.PositionID)
	}
	j.ID = s.jobPostings.nextID()
	s.jobPostings.put(j.ID, j)
	return j, nil
}

func (s *Store) UpdateJobPosting(_ context.Context, id int64, p storage.JobPostingPatch) (model.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobPostings.rows[id]
	if !ok {
		return model.JobPosting{}, storage.NotFound("job posting", id)
	}
	p.Apply(&j)
	if err := storage.Validate("job posting", j); err != nil {
		return model.JobPosting{}, err
	}
	s.jobPostings.put(id, j)
	return j, nil
}

func (s *Store) ListJobApplications(_ context.Context) ([]model.JobApplicationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.jobApplications.sorted(func(a, b model.JobApplication) bool {
		return newestFirst(a.AppliedDate, b.AppliedDate, a.ID, b.ID)
	})
	out := make([]model.JobApplicationView, 0, len(rows))
	for _, a := range rows {
		view := model.JobApplicationView{JobApplication: a}
		if j, ok := s.jobPostings.rows[a.JobPostingID]; ok {
			view.JobTitle = j.Title
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Store) GetJobApplication(_ context.Context, id int64) (*model.JobApplication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobApplications.get(id), nil
}

func (s *Store) CreateJobApplication(_ context.Context, a model.JobApplication) (model.JobApplication, error) {
	if err := storage.PrepareJobApplication(&a, s.clock); err != nil {
		return model.JobApplication{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.jobPostings.has(a.JobPostingID) {
		return model.JobApplication{}, storage.MissingParent("job application", "jobPostingId", a.JobPostingID)
	}
	a.ID = s.jobApplications.nextID()
	s.jobApplications.put(a.ID, a)
	return a, nil
}

func (s *Store) UpdateJobApplication(_ context.Context, id int64, p storage.JobApplicationPatch) (model.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.jobApplications.rows[id]
	if !ok {
		return model.JobApplication{}, storage.NotFound("job application", id)
	}
	p.Apply(&a)
	if err := storage.Validate("job application", a); err != nil {
		return model.JobApplication{}, err
	}
	s.jobApplications.put(id, a)
	return a, nil
}
