package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// org keeps the ids assigned while loading so later rows can reference them.
type org struct {
	s     storage.Storage
	clock storage.Clock
	today model.Date

	departments map[string]int64
	positions   map[string]int64
	employees   map[string]int64 // by badge number
	leaveTypes  map[string]int64
	programs    map[string]int64
	postings    map[string]int64
}

func loadOrganization(ctx context.Context, s storage.Storage, clock storage.Clock) error {
	o := &org{
		s:           s,
		clock:       clock,
		today:       clock.Today(),
		departments: make(map[string]int64),
		positions:   make(map[string]int64),
		employees:   make(map[string]int64),
		leaveTypes:  make(map[string]int64),
		programs:    make(map[string]int64),
		postings:    make(map[string]int64),
	}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"departments", o.loadDepartments},
		{"positions", o.loadPositions},
		{"employees", o.loadEmployees},
		{"managers", o.assignManagers},
		{"attendance", o.loadAttendance},
		{"leave", o.loadLeave},
		{"payroll", o.loadPayroll},
		{"reviews", o.loadReviews},
		{"training", o.loadTraining},
		{"recruitment", o.loadRecruitment},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(year int, month time.Month, day int) model.Date { return model.NewDate(year, month, day) }

// at returns the instant hh:mm UTC on d.
func at(d model.Date, hh, mm int) *time.Time {
	t := d.Time().Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
	return &t
}

// =============================================================================
// STRUCTURE
// =============================================================================

func (o *org) loadDepartments(ctx context.Context) error {
	rows := []model.Department{
		{Name: "Engineering", Description: ptr("Product development and platform operations"), Budget: ptr(money("500000.00"))},
		{Name: "Human Resources", Description: ptr("People operations, hiring and benefits"), Budget: ptr(money("150000.00"))},
		{Name: "Finance", Description: ptr("Accounting, payroll and financial planning"), Budget: ptr(money("200000.00"))},
		{Name: "Marketing", Description: ptr("Brand, community and outreach"), Budget: ptr(money("180000.00"))},
		{Name: "Legal", Description: ptr("Contracts and compliance")},
	}
	for _, d := range rows {
		created, err := o.s.CreateDepartment(ctx, d)
		if err != nil {
			return fmt.Errorf("%q: %w", d.Name, err)
		}
		o.departments[d.Name] = created.ID
	}
	return nil
}

func (o *org) loadPositions(ctx context.Context) error {
	rows := []struct {
		dept string
		p    model.Position
	}{
		{"Engineering", model.Position{Title: "Engineering Manager", SalaryRange: ptr("110000-140000"), IsActive: true}},
		{"Engineering", model.Position{Title: "Software Engineer", SalaryRange: ptr("70000-100000"), IsActive: true}},
		{"Human Resources", model.Position{Title: "HR Specialist", SalaryRange: ptr("50000-70000"), IsActive: true}},
		{"Finance", model.Position{Title: "Accountant", SalaryRange: ptr("60000-80000"), IsActive: true}},
		{"Marketing", model.Position{Title: "Marketing Lead", SalaryRange: ptr("80000-100000"), IsActive: false}},
	}
	for _, row := range rows {
		p := row.p
		p.DepartmentID = o.departments[row.dept]
		created, err := o.s.CreatePosition(ctx, p)
		if err != nil {
			return fmt.Errorf("%q: %w", p.Title, err)
		}
		o.positions[p.Title] = created.ID
	}
	return nil
}

func (o *org) loadEmployees(ctx context.Context) error {
	rows := []struct {
		position, dept, manager string
		e                       model.Employee
	}{
		{"Engineering Manager", "Engineering", "", model.Employee{
			EmployeeID: "EMP001", FirstName: "Layla", LastName: "Hassan", Email: "layla.hassan@example.com",
			Phone: ptr("+44 20 7946 0101"), HireDate: date(2018, time.April, 2), Salary: money("120000.00"),
		}},
		{"Software Engineer", "Engineering", "EMP001", model.Employee{
			EmployeeID: "EMP002", FirstName: "Daniel", LastName: "Okafor", Email: "daniel.okafor@example.com",
			HireDate: date(2021, time.January, 11), Salary: money("85000.00"),
		}},
		{"Software Engineer", "Engineering", "EMP001", model.Employee{
			EmployeeID: "EMP003", FirstName: "Mei", LastName: "Tanaka", Email: "mei.tanaka@example.com",
			HireDate: date(2022, time.June, 20), Salary: money("82000.00"), Status: model.EmployeeOnLeave,
		}},
		{"HR Specialist", "Human Resources", "", model.Employee{
			EmployeeID: "EMP004", FirstName: "Yusuf", LastName: "Rahman", Email: "yusuf.rahman@example.com",
			Phone: ptr("+44 20 7946 0104"), HireDate: date(2019, time.September, 16), Salary: money("60000.00"),
		}},
		{"Accountant", "Finance", "", model.Employee{
			EmployeeID: "EMP005", FirstName: "Clara", LastName: "Novak", Email: "clara.novak@example.com",
			HireDate: date(2020, time.February, 3), Salary: money("70000.00"),
		}},
		{"Marketing Lead", "Marketing", "", model.Employee{
			EmployeeID: "EMP006", FirstName: "Samuel", LastName: "Reyes", Email: "samuel.reyes@example.com",
			HireDate: date(2017, time.November, 27), TerminationDate: ptr(date(2024, time.March, 31)),
			Salary: money("90000.00"), Status: model.EmployeeTerminated,
		}},
		{"Software Engineer", "Engineering", "EMP001", model.Employee{
			EmployeeID: "EMP007", FirstName: "Amina", LastName: "Diallo", Email: "amina.diallo@example.com",
			HireDate: date(2023, time.September, 4), Salary: money("78000.00"),
		}},
	}
	for _, row := range rows {
		e := row.e
		e.PositionID = ptr(o.positions[row.position])
		e.DepartmentID = ptr(o.departments[row.dept])
		if row.manager != "" {
			e.ManagerID = ptr(o.employees[row.manager])
		}
		created, err := o.s.CreateEmployee(ctx, e)
		if err != nil {
			return fmt.Errorf("%s: %w", e.EmployeeID, err)
		}
		o.employees[e.EmployeeID] = created.ID
	}
	return nil
}

func (o *org) assignManagers(ctx context.Context) error {
	managers := map[string]string{
		"Engineering":     "EMP001",
		"Human Resources": "EMP004",
		"Finance":         "EMP005",
	}
	for _, dept := range []string{"Engineering", "Human Resources", "Finance"} {
		patch := storage.DepartmentPatch{ManagerID: ptr(o.employees[managers[dept]])}
		if _, err := o.s.UpdateDepartment(ctx, o.departments[dept], patch); err != nil {
			return fmt.Errorf("%q: %w", dept, err)
		}
	}
	return nil
}

// =============================================================================
// DAY TO DAY
// =============================================================================

func (o *org) loadAttendance(ctx context.Context) error {
	yesterday := o.today.AddDays(-1)
	rows := []struct {
		badge string
		a     model.Attendance
	}{
		{"EMP002", model.Attendance{Date: yesterday, ClockIn: at(yesterday, 9, 0), ClockOut: at(yesterday, 17, 0)}},
		{"EMP001", model.Attendance{Date: o.today, ClockIn: at(o.today, 8, 45), ClockOut: at(o.today, 17, 15)}},
		{"EMP002", model.Attendance{Date: o.today, ClockIn: at(o.today, 9, 0), ClockOut: at(o.today, 17, 30)}},
		{"EMP007", model.Attendance{Date: o.today, ClockIn: at(o.today, 9, 20), Status: model.AttendanceLate,
			Notes: ptr("Train delay")}},
		{"EMP004", model.Attendance{Date: o.today, ClockIn: at(o.today, 8, 55)}},
	}
	for _, row := range rows {
		a := row.a
		a.EmployeeID = o.employees[row.badge]
		if _, err := o.s.CreateAttendance(ctx, a); err != nil {
			return fmt.Errorf("%s on %s: %w", row.badge, a.Date, err)
		}
	}
	return nil
}

func (o *org) loadLeave(ctx context.Context) error {
	types := []model.LeaveType{
		{Name: "Annual Leave", DefaultDays: 25, IsPaid: true},
		{Name: "Sick Leave", DefaultDays: 10, IsPaid: true},
		{Name: "Unpaid Leave", DefaultDays: 0, IsPaid: false},
	}
	for _, t := range types {
		created, err := o.s.CreateLeaveType(ctx, t)
		if err != nil {
			return fmt.Errorf("type %q: %w", t.Name, err)
		}
		o.leaveTypes[t.Name] = created.ID
	}

	now := o.clock.Now()
	rows := []struct {
		badge, leaveType, approver string
		r                          model.LeaveRequest
	}{
		{"EMP003", "Annual Leave", "EMP001", model.LeaveRequest{
			StartDate: o.today.AddDays(-3), EndDate: o.today.AddDays(4),
			Reason: ptr("Family visit"), Status: model.LeaveApproved,
		}},
		{"EMP002", "Annual Leave", "", model.LeaveRequest{
			StartDate: o.today.AddDays(14), EndDate: o.today.AddDays(18),
			Reason: ptr("Summer holiday"),
		}},
		{"EMP005", "Sick Leave", "EMP004", model.LeaveRequest{
			StartDate: o.today.AddDays(-20), EndDate: o.today.AddDays(-19),
			Status: model.LeaveApproved,
		}},
		{"EMP007", "Unpaid Leave", "EMP001", model.LeaveRequest{
			StartDate: o.today.AddDays(30), EndDate: o.today.AddDays(32),
			Reason: ptr("Personal travel"), Status: model.LeaveRejected,
		}},
		{"EMP004", "Annual Leave", "", model.LeaveRequest{
			StartDate: o.today.AddDays(45), EndDate: o.today.AddDays(45),
		}},
	}
	for _, row := range rows {
		r := row.r
		r.EmployeeID = o.employees[row.badge]
		r.LeaveTypeID = o.leaveTypes[row.leaveType]
		if row.approver != "" {
			r.ApprovedBy = ptr(o.employees[row.approver])
			r.ApprovedAt = &now
		}
		if _, err := o.s.CreateLeaveRequest(ctx, r); err != nil {
			return fmt.Errorf("request for %s: %w", row.badge, err)
		}
	}
	return nil
}

func (o *org) loadPayroll(ctx context.Context) error {
	year, month := o.today.Year, int(o.today.Month)
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}
	paidOn := model.NewDate(year, time.Month(month), 1).AddDays(-1)

	rows := []struct {
		badge string
		p     model.Payroll
	}{
		{"EMP001", model.Payroll{Month: prevMonth, Year: prevYear, BasicSalary: money("10000.00"),
			Allowances: money("750.00"), Deductions: money("2150.00"), Status: model.PayrollPaid, PaymentDate: ptr(paidOn)}},
		{"EMP002", model.Payroll{Month: prevMonth, Year: prevYear, BasicSalary: money("7083.33"),
			Allowances: money("300.00"), Deductions: money("1416.67"), Status: model.PayrollPaid, PaymentDate: ptr(paidOn)}},
		{"EMP001", model.Payroll{Month: month, Year: year, BasicSalary: money("10000.00"),
			Allowances: money("750.00"), Deductions: money("2150.00"), Status: model.PayrollProcessed}},
		{"EMP002", model.Payroll{Month: month, Year: year, BasicSalary: money("7083.33"),
			Allowances: money("300.00"), Deductions: money("1416.67")}},
		{"EMP004", model.Payroll{Month: month, Year: year, BasicSalary: money("5000.00"),
			Allowances: money("200.00"), Deductions: money("950.00")}},
		{"EMP005", model.Payroll{Month: month, Year: year, BasicSalary: money("5833.33"),
			Allowances: money("250.00"), Deductions: money("1120.00")}},
	}
	for _, row := range rows {
		p := row.p
		p.EmployeeID = o.employees[row.badge]
		if _, err := o.s.CreatePayroll(ctx, p); err != nil {
			return fmt.Errorf("%s %d/%d: %w", row.badge, p.Month, p.Year, err)
		}
	}
	return nil
}

// =============================================================================
// DEVELOPMENT
// =============================================================================

func (o *org) loadReviews(ctx context.Context) error {
	period := fmt.Sprintf("H1 %d", o.today.Year)
	rows := []struct {
		badge, reviewer string
		r               model.PerformanceReview
	}{
		{"EMP002", "EMP001", model.PerformanceReview{ReviewPeriod: period, ReviewDate: o.today.AddDays(-30),
			Rating: ptr(model.Rating(42)), Status: model.ReviewCompleted}},
		{"EMP005", "EMP004", model.PerformanceReview{ReviewPeriod: period, ReviewDate: o.today.AddDays(-10),
			Rating: ptr(model.Rating(38)), Status: model.ReviewSubmitted}},
		{"EMP003", "EMP001", model.PerformanceReview{ReviewPeriod: period, ReviewDate: o.today.AddDays(-5)}},
	}
	for _, row := range rows {
		r := row.r
		r.EmployeeID = o.employees[row.badge]
		r.ReviewerID = o.employees[row.reviewer]
		if _, err := o.s.CreatePerformanceReview(ctx, r); err != nil {
			return fmt.Errorf("review of %s: %w", row.badge, err)
		}
	}
	return nil
}

func (o *org) loadTraining(ctx context.Context) error {
	programs := []model.TrainingProgram{
		{Title: "Secure Coding", Description: ptr("OWASP top ten and secure review practices"), Duration: ptr("2 days"),
			Cost: ptr(money("450.00")), IsMandatory: true, IsActive: true},
		{Title: "Leadership Essentials", Description: ptr("Coaching, feedback and delegation"), Duration: ptr("6 weeks"),
			Cost: ptr(money("1200.00")), IsActive: true},
		{Title: "Workplace Safety", Duration: ptr("3 hours"), IsMandatory: true, IsActive: true},
	}
	for _, p := range programs {
		created, err := o.s.CreateTrainingProgram(ctx, p)
		if err != nil {
			return fmt.Errorf("program %q: %w", p.Title, err)
		}
		o.programs[p.Title] = created.ID
	}

	rows := []struct {
		badge, program string
		t              model.EmployeeTraining
	}{
		{"EMP002", "Secure Coding", model.EmployeeTraining{EnrollmentDate: o.today.AddDays(-40),
			CompletionDate: ptr(o.today.AddDays(-38)), Status: model.TrainingCompleted, Score: ptr(92)}},
		{"EMP001", "Leadership Essentials", model.EmployeeTraining{EnrollmentDate: o.today.AddDays(-21),
			Status: model.TrainingInProgress}},
		{"EMP007", "Secure Coding", model.EmployeeTraining{EnrollmentDate: o.today.AddDays(-7)}},
		{"EMP004", "Workplace Safety", model.EmployeeTraining{EnrollmentDate: o.today.AddDays(-2)}},
	}
	for _, row := range rows {
		t := row.t
		t.EmployeeID = o.employees[row.badge]
		t.TrainingProgramID = o.programs[row.program]
		if _, err := o.s.CreateEmployeeTraining(ctx, t); err != nil {
			return fmt.Errorf("%s in %q: %w", row.badge, row.program, err)
		}
	}
	return nil
}

func (o *org) loadRecruitment(ctx context.Context) error {
	postings := []struct {
		dept, position string
		j              model.JobPosting
	}{
		{"Marketing", "Marketing Lead", model.JobPosting{Title: "Marketing Intern", Location: ptr("London"),
			Type: "internship", Status: model.JobClosed, PostedDate: o.today.AddDays(-90), ClosingDate: ptr(o.today.AddDays(-60))}},
		{"Engineering", "Software Engineer", model.JobPosting{Title: "Senior Go Engineer", Location: ptr("Remote"),
			PostedDate: o.today.AddDays(-12), ClosingDate: ptr(o.today.AddDays(30))}},
		{"Finance", "Accountant", model.JobPosting{Title: "Payroll Accountant", Location: ptr("London"),
			Type: "part_time", PostedDate: o.today.AddDays(-3)}},
	}
	for _, row := range postings {
		j := row.j
		j.DepartmentID = o.departments[row.dept]
		j.PositionID = o.positions[row.position]
		created, err := o.s.CreateJobPosting(ctx, j)
		if err != nil {
			return fmt.Errorf("posting %q: %w", j.Title, err)
		}
		o.postings[j.Title] = created.ID
	}

	applications := []struct {
		posting string
		a       model.JobApplication
	}{
		{"Senior Go Engineer", model.JobApplication{FirstName: "Priya", LastName: "Natarajan", Email: "priya.n@example.net",
			Status: model.ApplicationShortlisted, AppliedDate: o.today.AddDays(-10)}},
		{"Senior Go Engineer", model.JobApplication{FirstName: "Tomasz", LastName: "Kowalski", Email: "tomasz.k@example.net",
			AppliedDate: o.today.AddDays(-4)}},
		{"Senior Go Engineer", model.JobApplication{FirstName: "Grace", LastName: "Mensah", Email: "grace.m@example.net",
			Status: model.ApplicationInterviewed, AppliedDate: o.today.AddDays(-9)}},
		{"Payroll Accountant", model.JobApplication{FirstName: "Hugo", LastName: "Lefevre", Email: "hugo.l@example.net",
			AppliedDate: o.today.AddDays(-1)}},
	}
	for _, row := range applications {
		a := row.a
		a.JobPostingID = o.postings[row.posting]
		if _, err := o.s.CreateJobApplication(ctx, a); err != nil {
			return fmt.Errorf("application from %s %s: %w", a.FirstName, a.LastName, err)
		}
	}
	return nil
}
