package storage

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/portal/model"
)

// =============================================================================
// PARTIAL UPDATES
// =============================================================================
//
// A patch field left nil is absent and keeps the stored value. Nullable
// columns are cleared by the Clear* flags, since a nil pointer already means
// "unchanged". Every adapter applies a patch the same way: load the row, call
// Apply, re-derive computed fields, validate, write the whole row back.

type DepartmentPatch struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	ManagerID    *int64           `json:"managerId"`
	Budget       *decimal.Decimal `json:"budget"`
	ClearManager bool             `json:"clearManager"`
}

func (p DepartmentPatch) Apply(d *model.Department) {
	setIf(&d.Name, p.Name)
	setPtrIf(&d.Description, p.Description)
	setPtrIf(&d.ManagerID, p.ManagerID)
	setPtrIf(&d.Budget, p.Budget)
	if p.ClearManager {
		d.ManagerID = nil
	}
}

type EmployeePatch struct {
	EmployeeID      *string               `json:"employeeId"`
	FirstName       *string               `json:"firstName"`
	LastName        *string               `json:"lastName"`
	Email           *string               `json:"email"`
	Phone           *string               `json:"phone"`
	PositionID      *int64                `json:"positionId"`
	DepartmentID    *int64                `json:"departmentId"`
	ManagerID       *int64                `json:"managerId"`
	HireDate        *model.Date           `json:"hireDate"`
	TerminationDate *model.Date           `json:"terminationDate"`
	Salary          *decimal.Decimal      `json:"salary"`
	Status          *model.EmployeeStatus `json:"status"`
	ClearManager    bool                  `json:"clearManager"`
}

func (p EmployeePatch) Apply(e *model.Employee) {
	setIf(&e.EmployeeID, p.EmployeeID)
	setIf(&e.FirstName, p.FirstName)
	setIf(&e.LastName, p.LastName)
	setIf(&e.Email, p.Email)
	setPtrIf(&e.Phone, p.Phone)
	setPtrIf(&e.PositionID, p.PositionID)
	setPtrIf(&e.DepartmentID, p.DepartmentID)
	setPtrIf(&e.ManagerID, p.ManagerID)
	setIf(&e.HireDate, p.HireDate)
	setPtrIf(&e.TerminationDate, p.TerminationDate)
	setIf(&e.Salary, p.Salary)
	setIf(&e.Status, p.Status)
	if p.ClearManager {
		e.ManagerID = nil
	}
}

// AttendancePatch is mostly clock-out: set ClockOut, TotalHours follows.
type AttendancePatch struct {
	ClockIn  *time.Time              `json:"clockIn"`
	ClockOut *time.Time              `json:"clockOut"`
	Status   *model.AttendanceStatus `json:"status"`
	Notes    *string                 `json:"notes"`
}

func (p AttendancePatch) Apply(a *model.Attendance) {
	setPtrIf(&a.ClockIn, p.ClockIn)
	setPtrIf(&a.ClockOut, p.ClockOut)
	setIf(&a.Status, p.Status)
	setPtrIf(&a.Notes, p.Notes)
}

type LeaveRequestPatch struct {
	LeaveTypeID   *int64             `json:"leaveTypeId"`
	StartDate     *model.Date        `json:"startDate"`
	EndDate       *model.Date        `json:"endDate"`
	DaysRequested *int               `json:"daysRequested"`
	Reason        *string            `json:"reason"`
	Status        *model.LeaveStatus `json:"status"`
	ApprovedBy    *int64             `json:"approvedBy"`
	ApprovedAt    *time.Time         `json:"approvedAt"`
}

// Apply clears the day count when either date moves without a new count,
// so DeriveLeaveRequest recounts it.
func (p LeaveRequestPatch) Apply(r *model.LeaveRequest) {
	setIf(&r.LeaveTypeID, p.LeaveTypeID)
	setIf(&r.StartDate, p.StartDate)
	setIf(&r.EndDate, p.EndDate)
	if (p.StartDate != nil || p.EndDate != nil) && p.DaysRequested == nil {
		r.DaysRequested = 0
	}
	setIf(&r.DaysRequested, p.DaysRequested)
	setPtrIf(&r.Reason, p.Reason)
	setIf(&r.Status, p.Status)
	setPtrIf(&r.ApprovedBy, p.ApprovedBy)
	setPtrIf(&r.ApprovedAt, p.ApprovedAt)
}

// PayrollPatch never carries NetSalary; it is recomputed after Apply.
type PayrollPatch struct {
	BasicSalary *decimal.Decimal     `json:"basicSalary"`
	Allowances  *decimal.Decimal     `json:"allowances"`
	Deductions  *decimal.Decimal     `json:"deductions"`
	Status      *model.PayrollStatus `json:"status"`
	PaymentDate *model.Date          `json:"paymentDate"`
}

func (p PayrollPatch) Apply(pr *model.Payroll) {
	setIf(&pr.BasicSalary, p.BasicSalary)
	setIf(&pr.Allowances, p.Allowances)
	setIf(&pr.Deductions, p.Deductions)
	setIf(&pr.Status, p.Status)
	setPtrIf(&pr.PaymentDate, p.PaymentDate)
}

type PerformanceReviewPatch struct {
	ReviewPeriod *string             `json:"reviewPeriod"`
	ReviewDate   *model.Date         `json:"reviewDate"`
	Rating       *model.Rating       `json:"rating"`
	Status       *model.ReviewStatus `json:"status"`
}

func (p PerformanceReviewPatch) Apply(r *model.PerformanceReview) {
	setIf(&r.ReviewPeriod, p.ReviewPeriod)
	setIf(&r.ReviewDate, p.ReviewDate)
	setPtrIf(&r.Rating, p.Rating)
	setIf(&r.Status, p.Status)
}

type EmployeeTrainingPatch struct {
	CompletionDate *model.Date           `json:"completionDate"`
	Status         *model.TrainingStatus `json:"status"`
	Score          *int                  `json:"score"`
}

func (p EmployeeTrainingPatch) Apply(t *model.EmployeeTraining) {
	setPtrIf(&t.CompletionDate, p.CompletionDate)
	setIf(&t.Status, p.Status)
	setPtrIf(&t.Score, p.Score)
}

type JobPostingPatch struct {
	Title       *string                 `json:"title"`
	Location    *string                 `json:"location"`
	Type        *string                 `json:"type"`
	Status      *model.JobPostingStatus `json:"status"`
	ClosingDate *model.Date             `json:"closingDate"`
}

func (p JobPostingPatch) Apply(j *model.JobPosting) {
	setIf(&j.Title, p.Title)
	setPtrIf(&j.Location, p.Location)
	setIf(&j.Type, p.Type)
	setIf(&j.Status, p.Status)
	setPtrIf(&j.ClosingDate, p.ClosingDate)
}

type JobApplicationPatch struct {
	Status *model.ApplicationStatus `json:"status"`
}

func (p JobApplicationPatch) Apply(a *model.JobApplication) {
	setIf(&a.Status, p.Status)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// setPtrIf copies v so the entity never aliases the caller's patch.
func setPtrIf[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
