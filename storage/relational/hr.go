package relational

import (
	"context"
	"strings"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// ATTENDANCE
// =============================================================================

const attendanceColumns = `id, employee_id, date, clock_in, clock_out, total_hours, status, notes`

func attendanceFields(a *model.Attendance) []any {
	return []any{&a.ID, &a.EmployeeID, &a.Date, &a.ClockIn, &a.ClockOut, &a.TotalHours, &a.Status, &a.Notes}
}

func scanAttendance(sc scanner) (model.Attendance, error) {
	var a model.Attendance
	err := sc.Scan(attendanceFields(&a)...)
	a.ClockIn, a.ClockOut = utcPtr(a.ClockIn), utcPtr(a.ClockOut)
	return a, err
}

// ListAttendance returns one day when date is set, every day otherwise.
func (s *Store) ListAttendance(ctx context.Context, date model.Date) ([]model.AttendanceView, error) {
	query := `
		SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.total_hours, a.status, a.notes,
		       e.first_name || ' ' || e.last_name
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id`
	var args []any
	if !date.IsZero() {
		query += ` WHERE a.date = ?`
		args = append(args, date)
	}
	query += ` ORDER BY a.date DESC, e.last_name, e.first_name, a.id`

	rows, err := s.query(ctx, query, args...)
	return collect(rows, err, func(sc scanner) (model.AttendanceView, error) {
		var v model.AttendanceView
		err := sc.Scan(append(attendanceFields(&v.Attendance), &v.EmployeeName)...)
		v.ClockIn, v.ClockOut = utcPtr(v.ClockIn), utcPtr(v.ClockOut)
		return v, err
	})
}

func (s *Store) GetAttendance(ctx context.Context, id int64) (*model.Attendance, error) {
	return s.getAttendance(ctx, id)
}

func (r runner) getAttendance(ctx context.Context, id int64) (*model.Attendance, error) {
	return one(r.queryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE id = ?`, id), scanAttendance)
}

// CreateAttendance is clock-in. UNIQUE (employee_id, date) turns a repeat
// into storage.ErrConflict.
func (s *Store) CreateAttendance(ctx context.Context, a model.Attendance) (model.Attendance, error) {
	if err := storage.PrepareAttendance(&a, s.clock); err != nil {
		return model.Attendance{}, err
	}
	id, err := s.insert(ctx, "attendance", `
		INSERT INTO attendance (employee_id, date, clock_in, clock_out, total_hours, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.EmployeeID, a.Date, a.ClockIn, a.ClockOut, a.TotalHours, a.Status, a.Notes,
	)
	if err != nil {
		return model.Attendance{}, err
	}
	a.ID = id
	return a, nil
}

func (s *Store) UpdateAttendance(ctx context.Context, id int64, p storage.AttendancePatch) (model.Attendance, error) {
	var out model.Attendance
	err := s.inTx(ctx, func(r runner) error {
		a, err := r.getAttendance(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return storage.NotFound("attendance", id)
		}
		p.Apply(a)
		storage.DeriveAttendance(a)
		if err := storage.Validate("attendance", a); err != nil {
			return err
		}
		out = *a
		return r.update(ctx, "attendance", `
			UPDATE attendance SET clock_in = ?, clock_out = ?, total_hours = ?, status = ?, notes = ?
			WHERE id = ?`,
			a.ClockIn, a.ClockOut, a.TotalHours, a.Status, a.Notes, id,
		)
	})
	if err != nil {
		return model.Attendance{}, err
	}
	return out, nil
}

// =============================================================================
// LEAVE
// =============================================================================

const leaveTypeColumns = `id, name, default_days, is_paid`

func scanLeaveType(sc scanner) (model.LeaveType, error) {
	var t model.LeaveType
	err := sc.Scan(&t.ID, &t.Name, &t.DefaultDays, &t.IsPaid)
	return t, err
}

func (s *Store) ListLeaveTypes(ctx context.Context) ([]model.LeaveType, error) {
	rows, err := s.query(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types ORDER BY id`)
	return collect(rows, err, scanLeaveType)
}

func (s *Store) GetLeaveType(ctx context.Context, id int64) (*model.LeaveType, error) {
	return one(s.queryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = ?`, id), scanLeaveType)
}

func (s *Store) CreateLeaveType(ctx context.Context, t model.LeaveType) (model.LeaveType, error) {
	if err := storage.PrepareLeaveType(&t); err != nil {
		return model.LeaveType{}, err
	}
	id, err := s.insert(ctx, "leave type", `
		INSERT INTO leave_types (name, default_days, is_paid) VALUES (?, ?, ?)`,
		t.Name, t.DefaultDays, t.IsPaid,
	)
	if err != nil {
		return model.LeaveType{}, err
	}
	t.ID = id
	return t, nil
}

const leaveRequestColumns = `id, employee_id, leave_type_id, start_date, end_date, days_requested, reason,
	status, approved_by, approved_at`

func leaveRequestFields(r *model.LeaveRequest) []any {
	return []any{&r.ID, &r.EmployeeID, &r.LeaveTypeID, &r.StartDate, &r.EndDate, &r.DaysRequested, &r.Reason,
		&r.Status, &r.ApprovedBy, &r.ApprovedAt}
}

func scanLeaveRequest(sc scanner) (model.LeaveRequest, error) {
	var r model.LeaveRequest
	err := sc.Scan(leaveRequestFields(&r)...)
	r.ApprovedAt = utcPtr(r.ApprovedAt)
	return r, err
}

func (s *Store) ListLeaveRequests(ctx context.Context) ([]model.LeaveRequestView, error) {
	rows, err := s.query(ctx, `
		SELECT `+prefixed("r", leaveRequestColumns)+`,
		       e.first_name || ' ' || e.last_name, t.name
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types t ON t.id = r.leave_type_id
		ORDER BY r.start_date DESC, r.id DESC`)
	return collect(rows, err, func(sc scanner) (model.LeaveRequestView, error) {
		var v model.LeaveRequestView
		err := sc.Scan(append(leaveRequestFields(&v.LeaveRequest), &v.EmployeeName, &v.LeaveTypeName)...)
		v.ApprovedAt = utcPtr(v.ApprovedAt)
		return v, err
	})
}

func (s *Store) GetLeaveRequest(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	return s.getLeaveRequest(ctx, id)
}

func (r runner) getLeaveRequest(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	return one(r.queryRow(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests WHERE id = ?`, id), scanLeaveRequest)
}

func (s *Store) CreateLeaveRequest(ctx context.Context, lr model.LeaveRequest) (model.LeaveRequest, error) {
	if err := storage.PrepareLeaveRequest(&lr); err != nil {
		return model.LeaveRequest{}, err
	}
	id, err := s.insert(ctx, "leave request", `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, days_requested, reason,
			status, approved_by, approved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lr.EmployeeID, lr.LeaveTypeID, lr.StartDate, lr.EndDate, lr.DaysRequested, lr.Reason,
		lr.Status, lr.ApprovedBy, lr.ApprovedAt,
	)
	if err != nil {
		return model.LeaveRequest{}, err
	}
	lr.ID = id
	return lr, nil
}

func (s *Store) UpdateLeaveRequest(ctx context.Context, id int64, p storage.LeaveRequestPatch) (model.LeaveRequest, error) {
	var out model.LeaveRequest
	err := s.inTx(ctx, func(r runner) error {
		lr, err := r.getLeaveRequest(ctx, id)
		if err != nil {
			return err
		}
		if lr == nil {
			return storage.NotFound("leave request", id)
		}
		p.Apply(lr)
		storage.DeriveLeaveRequest(lr)
		if err := storage.Validate("leave request", lr); err != nil {
			return err
		}
		out = *lr
		return r.update(ctx, "leave request", `
			UPDATE leave_requests SET leave_type_id = ?, start_date = ?, end_date = ?, days_requested = ?,
				reason = ?, status = ?, approved_by = ?, approved_at = ?
			WHERE id = ?`,
			lr.LeaveTypeID, lr.StartDate, lr.EndDate, lr.DaysRequested,
			lr.Reason, lr.Status, lr.ApprovedBy, lr.ApprovedAt, id,
		)
	})
	if err != nil {
		return model.LeaveRequest{}, err
	}
	return out, nil
}

// =============================================================================
// PAYROLL
// =============================================================================

const payrollColumns = `id, employee_id, month, year, basic_salary, allowances, deductions, net_salary,
	status, payment_date`

func payrollFields(p *model.Payroll) []any {
	return []any{&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances, &p.Deductions,
		&p.NetSalary, &p.Status, &p.PaymentDate}
}

func scanPayroll(sc scanner) (model.Payroll, error) {
	var p model.Payroll
	err := sc.Scan(payrollFields(&p)...)
	return p, err
}

// ListPayroll narrows to a year and/or month when they are > 0.
func (s *Store) ListPayroll(ctx context.Context, year, month int) ([]model.PayrollView, error) {
	var (
		where []string
		args  []any
	)
	if year > 0 {
		where = append(where, "p.year = ?")
		args = append(args, year)
	}
	if month > 0 {
		where = append(where, "p.month = ?")
		args = append(args, month)
	}

	query := `
		SELECT ` + prefixed("p", payrollColumns) + `,
		       e.first_name || ' ' || e.last_name
		FROM payroll p
		JOIN employees e ON e.id = p.employee_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY p.year DESC, p.month DESC, e.last_name, e.first_name, p.id`

	rows, err := s.query(ctx, query, args...)
	return collect(rows, err, func(sc scanner) (model.PayrollView, error) {
		var v model.PayrollView
		err := sc.Scan(append(payrollFields(&v.Payroll), &v.EmployeeName)...)
		return v, err
	})
}

func (s *Store) GetPayroll(ctx context.Context, id int64) (*model.Payroll, error) {
	return s.getPayroll(ctx, id)
}

func (r runner) getPayroll(ctx context.Context, id int64) (*model.Payroll, error) {
	return one(r.queryRow(ctx, `SELECT `+payrollColumns+` FROM payroll WHERE id = ?`, id), scanPayroll)
}

// CreatePayroll stores the computed net salary. UNIQUE (employee_id, month,
// year) rejects a second run for the same period.
func (s *Store) CreatePayroll(ctx context.Context, p model.Payroll) (model.Payroll, error) {
	if err := storage.PreparePayroll(&p); err != nil {
		return model.Payroll{}, err
	}
	id, err := s.insert(ctx, "payroll", `
		INSERT INTO payroll (employee_id, month, year, basic_salary, allowances, deductions, net_salary,
			status, payment_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.EmployeeID, p.Month, p.Year, p.BasicSalary, p.Allowances, p.Deductions, p.NetSalary,
		p.Status, p.PaymentDate,
	)
	if err != nil {
		return model.Payroll{}, err
	}
	p.ID = id
	return p, nil
}

func (s *Store) UpdatePayroll(ctx context.Context, id int64, patch storage.PayrollPatch) (model.Payroll, error) {
	var out model.Payroll
	err := s.inTx(ctx, func(r runner) error {
		p, err := r.getPayroll(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return storage.NotFound("payroll", id)
		}
		patch.Apply(p)
		storage.DerivePayroll(p)
		if err := storage.Validate("payroll", p); err != nil {
			return err
		}
		out = *p
		return r.update(ctx, "payroll", `
			UPDATE payroll SET basic_salary = ?, allowances = ?, deductions = ?, net_salary = ?,
				status = ?, payment_date = ?
			WHERE id = ?`,
			p.BasicSalary, p.Allowances, p.Deductions, p.NetSalary, p.Status, p.PaymentDate, id,
		)
	})
	if err != nil {
		return model.Payroll{}, err
	}
	return out, nil
}

// =============================================================================
// PERFORMANCE REVIEWS
// =============================================================================

const reviewColumns = `id, employee_id, reviewer_id, review_period, review_date, rating, status`

func reviewFields(r *model.PerformanceReview) []any {
	return []any{&r.ID, &r.EmployeeID, &r.ReviewerID, &r.ReviewPeriod, &r.ReviewDate, &r.Rating, &r.Status}
}

func scanReview(sc scanner) (model.PerformanceReview, error) {
	var r model.PerformanceReview
	err := sc.Scan(reviewFields(&r)...)
	return r, err
}

func (s *Store) ListPerformanceReviews(ctx context.Context) ([]model.PerformanceReviewView, error) {
	rows, err := s.query(ctx, `
		SELECT `+prefixed("r", reviewColumns)+`,
		       e.first_name || ' ' || e.last_name,
		       rv.first_name || ' ' || rv.last_name
		FROM performance_reviews r
		JOIN employees e ON e.id = r.employee_id
		JOIN employees rv ON rv.id = r.reviewer_id
		ORDER BY r.review_date DESC, r.id DESC`)
	return collect(rows, err, func(sc scanner) (model.PerformanceReviewView, error) {
		var v model.PerformanceReviewView
		err := sc.Scan(append(reviewFields(&v.PerformanceReview), &v.EmployeeName, &v.ReviewerName)...)
		return v, err
	})
}

func (s *Store) GetPerformanceReview(ctx context.Context, id int64) (*model.PerformanceReview, error) {
	return s.getReview(ctx, id)
}

func (r runner) getReview(ctx context.Context, id int64) (*model.PerformanceReview, error) {
	return one(r.queryRow(ctx, `SELECT `+reviewColumns+` FROM performance_reviews WHERE id = ?`, id), scanReview)
}

func (s *Store) CreatePerformanceReview(ctx context.Context, pr model.PerformanceReview) (model.PerformanceReview, error) {
	if err := storage.PreparePerformanceReview(&pr); err != nil {
		return model.PerformanceReview{}, err
	}
	id, err := s.insert(ctx, "performance review", `
		INSERT INTO performance_reviews (employee_id, reviewer_id, review_period, review_date, rating, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pr.EmployeeID, pr.ReviewerID, pr.ReviewPeriod, pr.ReviewDate, pr.Rating, pr.Status,
	)
	if err != nil {
		return model.PerformanceReview{}, err
	}
	pr.ID = id
	return pr, nil
}

func (s *Store) UpdatePerformanceReview(ctx context.Context, id int64, p storage.PerformanceReviewPatch) (model.PerformanceReview, error) {
	var out model.PerformanceReview
	err := s.inTx(ctx, func(r runner) error {
		pr, err := r.getReview(ctx, id)
		if err != nil {
			return err
		}
		if pr == nil {
			return storage.NotFound("performance review", id)
		}
		p.Apply(pr)
		if err := storage.Validate("performance review", pr); err != nil {
			return err
		}
		out = *pr
		return r.update(ctx, "performance review", `
			UPDATE performance_reviews SET review_period = ?, review_date = ?, rating = ?, status = ?
			WHERE id = ?`,
			pr.ReviewPeriod, pr.ReviewDate, pr.Rating, pr.Status, id,
		)
	})
	if err != nil {
		return model.PerformanceReview{}, err
	}
	return out, nil
}

// =============================================================================
// TRAINING
// =============================================================================

const programColumns = `id, title, description, duration, cost, is_mandatory, is_active`

func scanProgram(sc scanner) (model.TrainingProgram, error) {
	var p model.TrainingProgram
	err := sc.Scan(&p.ID, &p.Title, &p.Description, &p.Duration, &p.Cost, &p.IsMandatory, &p.IsActive)
	return p, err
}

func (s *Store) ListTrainingPrograms(ctx context.Context) ([]model.TrainingProgram, error) {
	rows, err := s.query(ctx, `SELECT `+programColumns+` FROM training_programs ORDER BY id`)
	return collect(rows, err, scanProgram)
}

func (s *Store) GetTrainingProgram(ctx context.Context, id int64) (*model.TrainingProgram, error) {
	return one(s.queryRow(ctx, `SELECT `+programColumns+` FROM training_programs WHERE id = ?`, id), scanProgram)
}

func (s *Store) CreateTrainingProgram(ctx context.Context, p model.TrainingProgram) (model.TrainingProgram, error) {
	if err := storage.PrepareTrainingProgram(&p); err != nil {
		return model.TrainingProgram{}, err
	}
	id, err := s.insert(ctx, "training program", `
		INSERT INTO training_programs (title, description, duration, cost, is_mandatory, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Duration, p.Cost, p.IsMandatory, p.IsActive,
	)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	p.ID = id
	return p, nil
}

const trainingColumns = `id, employee_id, training_program_id, enrollment_date, completion_date, status, score`

func trainingFields(t *model.EmployeeTraining) []any {
	return []any{&t.ID, &t.EmployeeID, &t.TrainingProgramID, &t.EnrollmentDate, &t.CompletionDate, &t.Status, &t.Score}
}

func scanTraining(sc scanner) (model.EmployeeTraining, error) {
	var t model.EmployeeTraining
	err := sc.Scan(trainingFields(&t)...)
	return t, err
}

func (s *Store) ListEmployeeTrainings(ctx context.Context) ([]model.EmployeeTrainingView, error) {
	rows, err := s.query(ctx, `
		SELECT `+prefixed("t", trainingColumns)+`,
		       e.first_name || ' ' || e.last_name, p.title
		FROM employee_training t
		JOIN employees e ON e.id = t.employee_id
		JOIN training_programs p ON p.id = t.training_program_id
		ORDER BY t.enrollment_date DESC, t.id DESC`)
	return collect(rows, err, func(sc scanner) (model.EmployeeTrainingView, error) {
		var v model.EmployeeTrainingView
		err := sc.Scan(append(trainingFields(&v.EmployeeTraining), &v.EmployeeName, &v.ProgramTitle)...)
		return v, err
	})
}

func (s *Store) GetEmployeeTraining(ctx context.Context, id int64) (*model.EmployeeTraining, error) {
	return s.getTraining(ctx, id)
}

func (r runner) getTraining(ctx context.Context, id int64) (*model.EmployeeTraining, error) {
	return one(r.queryRow(ctx, `SELECT `+trainingColumns+` FROM employee_training WHERE id = ?`, id), scanTraining)
}

func (s *Store) CreateEmployeeTraining(ctx context.Context, t model.EmployeeTraining) (model.EmployeeTraining, error) {
	if err := storage.PrepareEmployeeTraining(&t, s.clock); err != nil {
		return model.EmployeeTraining{}, err
	}
	id, err := s.insert(ctx, "employee training", `
		INSERT INTO employee_training (employee_id, training_program_id, enrollment_date, completion_date, status, score)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.EmployeeID, t.TrainingProgramID, t.EnrollmentDate, t.CompletionDate, t.Status, t.Score,
	)
	if err != nil {
		return model.EmployeeTraining{}, err
	}
	t.ID = id
	return t, nil
}

func (s *Store) UpdateEmployeeTraining(ctx context.Context, id int64, p storage.EmployeeTrainingPatch) (model.EmployeeTraining, error) {
	var out model.EmployeeTraining
	err := s.inTx(ctx, func(r runner) error {
		t, err := r.getTraining(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return storage.NotFound("employee training", id)
		}
		p.Apply(t)
		if err := storage.Validate("employee training", t); err != nil {
			return err
		}
		out = *t
		return r.update(ctx, "employee training", `
			UPDATE employee_training SET completion_date = ?, status = ?, score = ?
			WHERE id = ?`,
			t.CompletionDate, t.Status, t.Score, id,
		)
	})
	if err != nil {
		return model.EmployeeTraining{}, err
	}
	return out, nil
}

// =============================================================================
// RECRUITMENT
// =============================================================================

const postingColumns = `id, title, department_id, position_id, location, type, status, posted_date, closing_date`

func postingFields(j *model.JobPosting) []any {
	return []any{&j.ID, &j.Title, &j.DepartmentID, &j.PositionID, &j.Location, &j.Type, &j.Status,
		&j.PostedDate, &j.ClosingDate}
}

func scanPosting(sc scanner) (model.JobPosting, error) {
	var j model.JobPosting
	err := sc.Scan(postingFields(&j)...)
	return j, err
}

func (s *Store) ListJobPostings(ctx context.Context) ([]model.JobPostingView, error) {
	rows, err := s.query(ctx, `
		SELECT `+prefixed("j", postingColumns)+`, d.name, p.title
		FROM job_postings j
		JOIN departments d ON d.id = j.department_id
		JOIN positions p ON p.id = j.position_id
		ORDER BY j.posted_date DESC, j.id DESC`)
	return collect(rows, err, func(sc scanner) (model.JobPostingView, error) {
		var v model.JobPostingView
		err := sc.Scan(append(postingFields(&v.JobPosting), &v.Department, &v.PositionTitle)...)
		return v, err
	})
}

func (s *Store) GetJobPosting(ctx context.Context, id int64) (*model.JobPosting, error) {
	return s.getPosting(ctx, id)
}

func (r runner) getPosting(ctx context.Context, id int64) (*model.JobPosting, error) {
	return one(r.queryRow(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = ?`, id), scanPosting)
}

func (s *Store) CreateJobPosting(ctx context.Context, j model.JobPosting) (model.JobPosting, error) {
	if err := storage.PrepareJobPosting(&j, s.clock); err != nil {
		return model.JobPosting{}, err
	}
	id, err := s.insert(ctx, "job posting", `
		INSERT INTO job_postings (title, department_id, position_id, location, type, status, posted_date, closing_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Title, j.DepartmentID, j.PositionID, j.Location, j.Type, j.Status, j.PostedDate, j.ClosingDate,
	)
	if err != nil {
		return model.JobPosting{}, err
	}
	j.ID = id
	return j, nil
}

func (s *Store) UpdateJobPosting(ctx context.Context, id int64, p storage.JobPostingPatch) (model.JobPosting, error) {
	var out model.JobPosting
	err := s.inTx(ctx, func(r runner) error {
		j, err := r.getPosting(ctx, id)
		if err != nil {
			return err
		}
		if j == nil {
			return storage.NotFound("job posting", id)
		}
		p.Apply(j)
		if err := storage.Validate("job posting", j); err != nil {
			return err
		}
		out = *j
		return r.update(ctx, "job posting", `
			UPDATE job_postings SET title = ?, location = ?, type = ?, status = ?, closing_date = ?
			WHERE id = ?`,
			j.Title, j.Location, j.Type, j.Status, j.ClosingDate, id,
		)
	})
	if err != nil {
		return model.JobPosting{}, err
	}
	return out, nil
}

const applicationColumns = `id, job_posting_id, first_name, last_name, email, status, applied_date`

func applicationFields(a *model.JobApplication) []any {
	return []any{&a.ID, &a.JobPostingID, &a.FirstName, &a.LastName, &a.Email, &a.Status, &a.AppliedDate}
}

func scanApplication(sc scanner) (model.JobApplication, error) {
	var a model.JobApplication
	err := sc.Scan(applicationFields(&a)...)
	return a, err
}

func (s *Store) ListJobApplications(ctx context.Context) ([]model.JobApplicationView, error) {
	rows, err := s.query(ctx, `
		SELECT `+prefixed("a", applicationColumns)+`, j.title
		FROM job_applications a
		JOIN job_postings j ON j.id = a.job_posting_id
		ORDER BY a.applied_date DESC, a.id DESC`)
	return collect(rows, err, func(sc scanner) (model.JobApplicationView, error) {
		var v model.JobApplicationView
		err := sc.Scan(append(applicationFields(&v.JobApplication), &v.JobTitle)...)
		return v, err
	})
}

func (s *Store) GetJobApplication(ctx context.Context, id int64) (*model.JobApplication, error) {
	return s.getApplication(ctx, id)
}

func (r runner) getApplication(ctx context.Context, id int64) (*model.JobApplication, error) {
	return one(r.queryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = ?`, id), scanApplication)
}

func (s *Store) CreateJobApplication(ctx context.Context, a model.JobApplication) (model.JobApplication, error) {
	if err := storage.PrepareJobApplication(&a, s.clock); err != nil {
		return model.JobApplication{}, err
	}
	id, err := s.insert(ctx, "job application", `
		INSERT INTO job_applications (job_posting_id, first_name, last_name, email, status, applied_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.JobPostingID, a.FirstName, a.LastName, a.Email, a.Status, a.AppliedDate,
	)
	if err != nil {
		return model.JobApplication{}, err
	}
	a.ID = id
	return a, nil
}

func (s *Store) UpdateJobApplication(ctx context.Context, id int64, p storage.JobApplicationPatch) (model.JobApplication, error) {
	var out model.JobApplication
	err := s.inTx(ctx, func(r runner) error {
		a, err := r.getApplication(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return storage.NotFound("job application", id)
		}
		p.Apply(a)
		if err := storage.Validate("job application", a); err != nil {
			return err
		}
		out = *a
		return r.update(ctx, "job application", `UPDATE job_applications SET status = ? WHERE id = ?`, a.Status, id)
	})
	if err != nil {
		return model.JobApplication{}, err
	}
	return out, nil
}

// prefixed qualifies a column list with a table alias:
// prefixed("e", "id, name") == "e.id, e.name".
func prefixed(alias, columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
