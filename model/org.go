package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STRUCTURE
// =============================================================================

type Department struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description,omitempty"`
	ManagerID   *int64           `json:"managerId,omitempty" validate:"omitempty,gt=0"`
	Budget      *decimal.Decimal `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

type Position struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title" validate:"required"`
	Description  *string `json:"description,omitempty"`
	DepartmentID int64   `json:"departmentId" validate:"gt=0"`
	SalaryRange  *string `json:"salaryRange,omitempty"`
	IsActive     bool    `json:"isActive"`
}

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeTerminated EmployeeStatus = "terminated"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
)

// Employee is keyed by the surrogate ID; EmployeeID is the HR badge number.
type Employee struct {
	ID              int64           `json:"id"`
	EmployeeID      string          `json:"employeeId" validate:"required,max=32"`
	FirstName       string          `json:"firstName" validate:"required"`
	LastName        string          `json:"lastName" validate:"required"`
	Email           string          `json:"email" validate:"required,email"`
	Phone           *string         `json:"phone,omitempty"`
	PositionID      *int64          `json:"positionId,omitempty" validate:"omitempty,gt=0"`
	DepartmentID    *int64          `json:"departmentId,omitempty" validate:"omitempty,gt=0"`
	ManagerID       *int64          `json:"managerId,omitempty" validate:"omitempty,gt=0"`
	HireDate        Date            `json:"hireDate" validate:"required"`
	TerminationDate *Date           `json:"terminationDate,omitempty"`
	Salary          decimal.Decimal `json:"salary" validate:"gte=0"`
	Status          EmployeeStatus  `json:"status" validate:"oneof=active terminated on_leave"`
}

// FullName is the display name used by every joined view.
func (e Employee) FullName() string { return e.FirstName + " " + e.LastName }

// =============================================================================
// ATTENDANCE
// =============================================================================

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
)

// Attendance is at most one record per (EmployeeID, Date).
type Attendance struct {
	ID         int64            `json:"id"`
	EmployeeID int64            `json:"employeeId" validate:"gt=0"`
	Date       Date             `json:"date" validate:"required"`
	ClockIn    *time.Time       `json:"clockIn,omitempty"`
	ClockOut   *time.Time       `json:"clockOut,omitempty"`
	TotalHours *decimal.Decimal `json:"totalHours,omitempty"`
	Status     AttendanceStatus `json:"status" validate:"oneof=present absent late half_day"`
	Notes      *string          `json:"notes,omitempty"`
}

// =============================================================================
// LEAVE
// =============================================================================

type LeaveType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	DefaultDays int    `json:"defaultDays" validate:"min=0"`
	IsPaid      bool   `json:"isPaid"`
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveStatuses lists every leave status in display order.
var LeaveStatuses = []LeaveStatus{LeavePending, LeaveApproved, LeaveRejected}

type LeaveRequest struct {
	ID            int64       `json:"id"`
	EmployeeID    int64       `json:"employeeId" validate:"gt=0"`
	LeaveTypeID   int64       `json:"leaveTypeId" validate:"gt=0"`
	StartDate     Date        `json:"startDate" validate:"required"`
	EndDate       Date        `json:"endDate" validate:"required"`
	DaysRequested int         `json:"daysRequested" validate:"min=1"`
	Reason        *string     `json:"reason,omitempty"`
	Status        LeaveStatus `json:"status" validate:"oneof=pending approved rejected"`
	ApprovedBy    *int64      `json:"approvedBy,omitempty" validate:"omitempty,gt=0"`
	ApprovedAt    *time.Time  `json:"approvedAt,omitempty"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type PayrollStatus string

const (
	PayrollPending   PayrollStatus = "pending"
	PayrollProcessed PayrollStatus = "processed"
	PayrollPaid      PayrollStatus = "paid"
)

// Payroll is unique per (EmployeeID, Month, Year).
// NetSalary = BasicSalary + Allowances - Deductions, always computed by storage.
type Payroll struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employeeId" validate:"gt=0"`
	Month       int             `json:"month" validate:"min=1,max=12"`
	Year        int             `json:"year" validate:"min=1970,max=9999"`
	BasicSalary decimal.Decimal `json:"basicSalary" validate:"gte=0"`
	Allowances  decimal.Decimal `json:"allowances" validate:"gte=0"`
	Deductions  decimal.Decimal `json:"deductions" validate:"gte=0"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      PayrollStatus   `json:"status" validate:"oneof=pending processed paid"`
	PaymentDate *Date           `json:"paymentDate,omitempty"`
}

// =============================================================================
// PERFORMANCE
// =============================================================================

type ReviewStatus string

const (
	ReviewDraft     ReviewStatus = "draft"
	ReviewSubmitted ReviewStatus = "submitted"
	ReviewCompleted ReviewStatus = "completed"
)

// PerformanceReview ratings are 1 to 5 stars, stored in tenths.
type PerformanceReview struct {
	ID           int64        `json:"id"`
	EmployeeID   int64        `json:"employeeId" validate:"gt=0"`
	ReviewerID   int64        `json:"reviewerId" validate:"gt=0"`
	ReviewPeriod string       `json:"reviewPeriod" validate:"required"`
	ReviewDate   Date         `json:"reviewDate" validate:"required"`
	Rating       *Rating      `json:"rating,omitempty" validate:"omitempty,min=10,max=50"`
	Status       ReviewStatus `json:"status" validate:"oneof=draft submitted completed"`
}

// =============================================================================
// TRAINING
// =============================================================================

type TrainingProgram struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title" validate:"required"`
	Description *string          `json:"description,omitempty"`
	Duration    *string          `json:"duration,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	IsMandatory bool             `json:"isMandatory"`
	IsActive    bool             `json:"isActive"`
}

type TrainingStatus string

const (
	TrainingEnrolled   TrainingStatus = "enrolled"
	TrainingInProgress TrainingStatus = "in_progress"
	TrainingCompleted  TrainingStatus = "completed"
	TrainingDropped    TrainingStatus = "dropped"
)

type EmployeeTraining struct {
	ID                int64          `json:"id"`
	EmployeeID        int64          `json:"employeeId" validate:"gt=0"`
	TrainingProgramID int64          `json:"trainingProgramId" validate:"gt=0"`
	EnrollmentDate    Date           `json:"enrollmentDate" validate:"required"`
	CompletionDate    *Date          `json:"completionDate,omitempty"`
	Status            TrainingStatus `json:"status" validate:"oneof=enrolled in_progress completed dropped"`
	Score             *int           `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
}

// =============================================================================
// RECRUITMENT
// =============================================================================

type JobPostingStatus string

const (
	JobOpen   JobPostingStatus = "open"
	JobClosed JobPostingStatus = "closed"
	JobDraft  JobPostingStatus = "draft"
)

type JobPosting struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title" validate:"required"`
	DepartmentID int64            `json:"departmentId" validate:"gt=0"`
	PositionID   int64            `json:"positionId" validate:"gt=0"`
	Location     *string          `json:"location,omitempty"`
	Type         string           `json:"type" validate:"oneof=full_time part_time contract internship"`
	Status       JobPostingStatus `json:"status" validate:"oneof=open closed draft"`
	PostedDate   Date             `json:"postedDate" validate:"required"`
	ClosingDate  *Date            `json:"closingDate,omitempty"`
}

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationReviewing   ApplicationStatus = "reviewing"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationRejected    ApplicationStatus = "rejected"
)

type JobApplication struct {
	ID           int64             `json:"id"`
	JobPostingID int64             `json:"jobPostingId" validate:"gt=0"`
	FirstName    string            `json:"firstName" validate:"required"`
	LastName     string            `json:"lastName" validate:"required"`
	Email        string            `json:"email" validate:"required,email"`
	Status       ApplicationStatus `json:"status" validate:"oneof=applied reviewing shortlisted interviewed offered rejected"`
	AppliedDate  Date              `json:"appliedDate" validate:"required"`
}
