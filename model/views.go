package model

// Denormalized read views. Each embeds its base entity, so the JSON is the
// entity's fields plus the joined display fields. Display fields for optional
// references are pointers and null when the reference is unset. Required
// references are plain strings: writes check the parent and deletes of a
// referenced parent fail, so the join always matches.

type EmployeeView struct {
	Employee
	Position   *string `json:"position"`
	Department *string `json:"department"`
}

type DepartmentView struct {
	Department
	ManagerName   *string `json:"managerName"`
	EmployeeCount int     `json:"employeeCount"`
}

type AttendanceView struct {
	Attendance
	EmployeeName string `json:"employeeName"`
}

type LeaveRequestView struct {
	LeaveRequest
	EmployeeName  string `json:"employeeName"`
	LeaveTypeName string `json:"leaveTypeName"`
}

type PayrollView struct {
	Payroll
	EmployeeName string `json:"employeeName"`
}

type PerformanceReviewView struct {
	PerformanceReview
	EmployeeName string `json:"employeeName"`
	ReviewerName string `json:"reviewerName"`
}

type EmployeeTrainingView struct {
	EmployeeTraining
	EmployeeName string `json:"employeeName"`
	ProgramTitle string `json:"programTitle"`
}

type JobPostingView struct {
	JobPosting
	Department    string `json:"department"`
	PositionTitle string `json:"positionTitle"`
}

type JobApplicationView struct {
	JobApplication
	JobTitle string `json:"jobTitle"`
}

// =============================================================================
// AGGREGATES
// =============================================================================

// DashboardStats is advisory: each count is consistent on its own but the
// four are not read atomically.
type DashboardStats struct {
	TotalEmployees   int `json:"totalEmployees"`
	ActiveEmployees  int `json:"activeEmployees"`
	TotalDepartments int `json:"totalDepartments"`
	OpenJobPostings  int `json:"openJobPostings"`
}

type DepartmentHeadcount struct {
	DepartmentID int64  `json:"departmentId"`
	Name         string `json:"name"`
	Employees    int    `json:"employees"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
