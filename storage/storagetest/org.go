package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// FIXTURE
// =============================================================================

// staff is a minimal organization: one department with one position, a
// manager and a report.
type staff struct {
	dept     model.Department
	position model.Position
	manager  model.Employee
	report   model.Employee
}

func newStaff(t *testing.T, s storage.Storage) staff {
	t.Helper()
	ctx := context.Background()

	dept, err := s.CreateDepartment(ctx, model.Department{Name: "Engineering", Budget: ptr(money("500000"))})
	require.NoError(t, err)
	pos, err := s.CreatePosition(ctx, model.Position{Title: "Software Engineer", DepartmentID: dept.ID, IsActive: true})
	require.NoError(t, err)
	manager, err := s.CreateEmployee(ctx, model.Employee{
		EmployeeID: "EMP001", FirstName: "Layla", LastName: "Hassan", Email: "layla@example.com",
		PositionID: &pos.ID, DepartmentID: &dept.ID, HireDate: model.NewDate(2019, time.April, 1),
		Salary: money("120000"),
	})
	require.NoError(t, err)
	report, err := s.CreateEmployee(ctx, model.Employee{
		EmployeeID: "EMP002", FirstName: "Daniel", LastName: "Okafor", Email: "daniel@example.com",
		PositionID: &pos.ID, DepartmentID: &dept.ID, ManagerID: &manager.ID,
		HireDate: model.NewDate(2021, time.September, 13), Salary: money("85000"),
	})
	require.NoError(t, err)
	return staff{dept: dept, position: pos, manager: manager, report: report}
}

// =============================================================================
// STRUCTURE
// =============================================================================

func testDepartments(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	legal, err := s.CreateDepartment(ctx, model.Department{Name: "Legal"})
	require.NoError(t, err)
	finance, err := s.CreateDepartment(ctx, model.Department{Name: "Finance", Description: ptr("Books")})
	require.NoError(t, err)

	t.Run("manager is checked", func(t *testing.T) {
		_, err := s.CreateDepartment(ctx, model.Department{Name: "Ghost", ManagerID: ptr(int64(9999))})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdateDepartment(ctx, legal.ID, storage.DepartmentPatch{ManagerID: ptr(int64(9999))})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("update sets and clears the manager", func(t *testing.T) {
		got, err := s.UpdateDepartment(ctx, org.dept.ID, storage.DepartmentPatch{ManagerID: &org.manager.ID})
		require.NoError(t, err)
		require.NotNil(t, got.ManagerID)
		assert.Equal(t, org.manager.ID, *got.ManagerID)
		assert.Equal(t, "Engineering", got.Name)
		require.NotNil(t, got.Budget)
		assert.True(t, got.Budget.Equal(money("500000")))

		got, err = s.UpdateDepartment(ctx, finance.ID, storage.DepartmentPatch{
			ManagerID: &org.report.ID, Budget: ptr(money("200000.50")),
		})
		require.NoError(t, err)
		got, err = s.UpdateDepartment(ctx, finance.ID, storage.DepartmentPatch{ClearManager: true})
		require.NoError(t, err)
		assert.Nil(t, got.ManagerID)

		stored, err := s.GetDepartment(ctx, finance.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Nil(t, stored.ManagerID)
		require.NotNil(t, stored.Budget)
		assert.True(t, stored.Budget.Equal(money("200000.5")), "budget %s", stored.Budget)
		assert.Equal(t, "Books", *stored.Description)
	})

	t.Run("list is by name with counts and manager", func(t *testing.T) {
		views, err := s.ListDepartments(ctx)
		require.NoError(t, err)
		require.Len(t, views, 3)

		names := []string{views[0].Name, views[1].Name, views[2].Name}
		assert.Equal(t, []string{"Engineering", "Finance", "Legal"}, names)

		assert.Equal(t, 2, views[0].EmployeeCount)
		require.NotNil(t, views[0].ManagerName)
		assert.Equal(t, "Layla Hassan", *views[0].ManagerName)
		assert.Zero(t, views[2].EmployeeCount)
		assert.Nil(t, views[2].ManagerName)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.UpdateDepartment(ctx, 9999, storage.DepartmentPatch{Name: ptr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteDepartment(ctx, 9999), storage.ErrNotFound)

		got, err := s.GetDepartment(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteDepartment(ctx, org.dept.ID), storage.ErrConflict)

		require.NoError(t, s.DeleteDepartment(ctx, legal.ID))
		got, err := s.GetDepartment(ctx, legal.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("positions", func(t *testing.T) {
		_, err := s.CreatePosition(ctx, model.Position{Title: "Orphan", DepartmentID: 9999})
		assert.ErrorIs(t, err, storage.ErrValidation)

		lead, err := s.CreatePosition(ctx, model.Position{Title: "Controller", DepartmentID: finance.ID, SalaryRange: ptr("90k-110k")})
		require.NoError(t, err)

		positions, err := s.ListPositions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{org.position.ID, lead.ID}, ids(positions, func(p model.Position) int64 { return p.ID }))
		assert.True(t, positions[0].IsActive)
		assert.False(t, positions[1].IsActive)

		got, err := s.GetPosition(ctx, lead.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, lead, *got)
	})
}

func testEmployees(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	// GIVEN: an employee without position or department
	loose, err := s.CreateEmployee(ctx, model.Employee{
		EmployeeID: "EMP003", FirstName: "Amina", LastName: "Diallo", Email: "amina@example.com",
		HireDate: model.NewDate(2023, time.January, 9), Salary: money("64000.75"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeActive, loose.Status)

	t.Run("directory order and joined names", func(t *testing.T) {
		views, err := s.ListEmployees(ctx)
		require.NoError(t, err)
		assert.Equal(t,
			[]int64{loose.ID, org.manager.ID, org.report.ID},
			ids(views, func(v model.EmployeeView) int64 { return v.ID }))

		assert.Nil(t, views[0].Position)
		assert.Nil(t, views[0].Department)
		require.NotNil(t, views[1].Position)
		assert.Equal(t, "Software Engineer", *views[1].Position)
		require.NotNil(t, views[1].Department)
		assert.Equal(t, "Engineering", *views[1].Department)
		assert.True(t, views[0].Salary.Equal(money("64000.75")))
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := s.GetEmployee(ctx, org.report.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		sameJSON(t, org.report, *got)
	})

	t.Run("unique keys", func(t *testing.T) {
		_, err := s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP001", FirstName: "A", LastName: "B", Email: "fresh@example.com",
			HireDate: Today, Salary: money("1"),
		})
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP099", FirstName: "A", LastName: "B", Email: "layla@example.com",
			HireDate: Today, Salary: money("1"),
		})
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = s.UpdateEmployee(ctx, loose.ID, storage.EmployeePatch{Email: ptr("daniel@example.com")})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("references are checked", func(t *testing.T) {
		_, err := s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP100", FirstName: "A", LastName: "B", Email: "a@example.com",
			PositionID: ptr(int64(9999)), HireDate: Today, Salary: money("1"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdateEmployee(ctx, loose.ID, storage.EmployeePatch{ManagerID: ptr(int64(9999))})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("payload rules", func(t *testing.T) {
		_, err := s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP101", FirstName: "A", LastName: "B", Email: "b@example.com",
			HireDate: Today, TerminationDate: ptr(Today.AddDays(-1)), Salary: money("1"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP102", FirstName: "A", LastName: "B", Email: "c@example.com",
			HireDate: Today, Salary: money("-1"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP103", FirstName: "A", LastName: "B", Email: "d@example.com",
			HireDate: Today, Salary: money("1"), Status: "retired",
		})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("update", func(t *testing.T) {
		terminated := model.EmployeeTerminated
		got, err := s.UpdateEmployee(ctx, loose.ID, storage.EmployeePatch{
			Status:          &terminated,
			TerminationDate: ptr(model.NewDate(2024, time.March, 31)),
			DepartmentID:    &org.dept.ID,
			ManagerID:       &org.manager.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, model.EmployeeTerminated, got.Status)
		assert.Equal(t, "Amina", got.FirstName)

		got, err = s.UpdateEmployee(ctx, loose.ID, storage.EmployeePatch{ClearManager: true})
		require.NoError(t, err)
		assert.Nil(t, got.ManagerID)

		stored, err := s.GetEmployee(ctx, loose.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		sameJSON(t, got, *stored)

		_, err = s.UpdateEmployee(ctx, 9999, storage.EmployeePatch{FirstName: ptr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		// the manager still has a report
		assert.ErrorIs(t, s.DeleteEmployee(ctx, org.manager.ID), storage.ErrConflict)

		// and, once the report is gone, still manages a department
		_, err := s.UpdateDepartment(ctx, org.dept.ID, storage.DepartmentPatch{ManagerID: &org.manager.ID})
		require.NoError(t, err)
		require.NoError(t, s.DeleteEmployee(ctx, org.report.ID))
		assert.ErrorIs(t, s.DeleteEmployee(ctx, org.manager.ID), storage.ErrConflict)

		got, err := s.GetEmployee(ctx, org.report.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, s.DeleteEmployee(ctx, org.report.ID), storage.ErrNotFound)

		// a freed badge number can be reused
		_, err = s.CreateEmployee(ctx, model.Employee{
			EmployeeID: "EMP002", FirstName: "Daniel", LastName: "Okafor", Email: "daniel@example.com",
			HireDate: Today, Salary: money("1"),
		})
		assert.NoError(t, err)
	})
}

// =============================================================================
// ATTENDANCE / LEAVE / PAYROLL
// =============================================================================

func testAttendance(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	at := func(d model.Date, hh, mm int) *time.Time {
		v := time.Date(d.Year, d.Month, d.Day, hh, mm, 0, 0, time.UTC)
		return &v
	}
	yesterday := Today.AddDays(-1)

	// GIVEN: a clock-in without a date lands on today
	in, err := s.CreateAttendance(ctx, model.Attendance{EmployeeID: org.report.ID, ClockIn: at(Today, 9, 0)})
	require.NoError(t, err)
	assert.Equal(t, Today, in.Date)
	assert.Equal(t, model.AttendancePresent, in.Status)
	assert.Nil(t, in.TotalHours)

	old, err := s.CreateAttendance(ctx, model.Attendance{EmployeeID: org.report.ID, Date: yesterday,
		ClockIn: at(yesterday, 9, 0), ClockOut: at(yesterday, 17, 0)})
	require.NoError(t, err)
	require.NotNil(t, old.TotalHours)
	assert.True(t, old.TotalHours.Equal(money("8")))

	mgr, err := s.CreateAttendance(ctx, model.Attendance{EmployeeID: org.manager.ID, ClockIn: at(Today, 8, 45),
		Status: model.AttendanceLate, Notes: ptr("Train delay")})
	require.NoError(t, err)

	t.Run("clock out computes hours", func(t *testing.T) {
		got, err := s.UpdateAttendance(ctx, in.ID, storage.AttendancePatch{ClockOut: at(Today, 17, 30)})
		require.NoError(t, err)
		require.NotNil(t, got.TotalHours)
		assert.True(t, got.TotalHours.Equal(money("8.5")), "hours %s", got.TotalHours)

		stored, err := s.GetAttendance(ctx, in.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.ClockOut)
		assert.True(t, stored.ClockOut.Equal(*at(Today, 17, 30)))
		assert.True(t, stored.TotalHours.Equal(money("8.5")))
	})

	t.Run("one record per employee and day", func(t *testing.T) {
		_, err := s.CreateAttendance(ctx, model.Attendance{EmployeeID: org.report.ID, Date: Today})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("payload rules", func(t *testing.T) {
		_, err := s.UpdateAttendance(ctx, mgr.ID, storage.AttendancePatch{ClockOut: at(Today, 8, 0)})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateAttendance(ctx, model.Attendance{EmployeeID: 9999})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdateAttendance(ctx, 9999, storage.AttendancePatch{Notes: ptr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list orders by day then name and filters", func(t *testing.T) {
		all, err := s.ListAttendance(ctx, model.Date{})
		require.NoError(t, err)
		assert.Equal(t, []int64{mgr.ID, in.ID, old.ID}, ids(all, func(v model.AttendanceView) int64 { return v.ID }))
		assert.Equal(t, "Layla Hassan", all[0].EmployeeName)
		require.NotNil(t, all[0].Notes)
		assert.Equal(t, "Train delay", *all[0].Notes)

		day, err := s.ListAttendance(ctx, yesterday)
		require.NoError(t, err)
		assert.Equal(t, []int64{old.ID}, ids(day, func(v model.AttendanceView) int64 { return v.ID }))

		none, err := s.ListAttendance(ctx, Today.AddDays(10))
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}

func testLeave(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, clk := fresh(t, newStore)
	org := newStaff(t, s)

	annual, err := s.CreateLeaveType(ctx, model.LeaveType{Name: "Annual Leave", DefaultDays: 25, IsPaid: true})
	require.NoError(t, err)
	unpaid, err := s.CreateLeaveType(ctx, model.LeaveType{Name: "Unpaid Leave"})
	require.NoError(t, err)

	types, err := s.ListLeaveTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{annual.ID, unpaid.ID}, ids(types, func(t model.LeaveType) int64 { return t.ID }))
	assert.True(t, types[0].IsPaid)
	assert.False(t, types[1].IsPaid)

	// GIVEN: a request with no explicit day count
	req, err := s.CreateLeaveRequest(ctx, model.LeaveRequest{
		EmployeeID: org.report.ID, LeaveTypeID: annual.ID,
		StartDate: model.NewDate(2025, time.April, 7), EndDate: model.NewDate(2025, time.April, 11),
		Reason: ptr("Family visit"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, req.DaysRequested)
	assert.Equal(t, model.LeavePending, req.Status)
	assert.Nil(t, req.ApprovedBy)

	later, err := s.CreateLeaveRequest(ctx, model.LeaveRequest{
		EmployeeID: org.manager.ID, LeaveTypeID: unpaid.ID, DaysRequested: 1,
		StartDate: model.NewDate(2025, time.May, 2), EndDate: model.NewDate(2025, time.May, 2),
	})
	require.NoError(t, err)

	t.Run("payload rules", func(t *testing.T) {
		_, err := s.CreateLeaveRequest(ctx, model.LeaveRequest{
			EmployeeID: org.report.ID, LeaveTypeID: annual.ID,
			StartDate: model.NewDate(2025, time.April, 11), EndDate: model.NewDate(2025, time.April, 7),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateLeaveRequest(ctx, model.LeaveRequest{
			EmployeeID: org.report.ID, LeaveTypeID: 9999,
			StartDate: Today, EndDate: Today,
		})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("approve", func(t *testing.T) {
		clk.Set(Now.Add(2 * time.Hour))
		approved := model.LeaveApproved
		decided := Now.Add(2 * time.Hour)

		got, err := s.UpdateLeaveRequest(ctx, req.ID, storage.LeaveRequestPatch{
			Status: &approved, ApprovedBy: &org.manager.ID, ApprovedAt: &decided,
		})
		require.NoError(t, err)
		assert.Equal(t, model.LeaveApproved, got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, org.manager.ID, *got.ApprovedBy)
		assert.Equal(t, 5, got.DaysRequested)

		stored, err := s.GetLeaveRequest(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.ApprovedAt)
		assert.True(t, stored.ApprovedAt.Equal(decided))
		assert.Equal(t, "Family visit", *stored.Reason)
	})

	t.Run("unknown approver", func(t *testing.T) {
		_, err := s.UpdateLeaveRequest(ctx, later.ID, storage.LeaveRequestPatch{ApprovedBy: ptr(int64(9999))})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdateLeaveRequest(ctx, 9999, storage.LeaveRequestPatch{Reason: ptr("x")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("moving dates recounts days", func(t *testing.T) {
		end := model.NewDate(2025, time.May, 6)
		got, err := s.UpdateLeaveRequest(ctx, later.ID, storage.LeaveRequestPatch{EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, 5, got.DaysRequested)

		stored, err := s.GetLeaveRequest(ctx, later.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 5, stored.DaysRequested)

		// an explicit count in the same patch wins
		start := model.NewDate(2025, time.May, 5)
		got, err = s.UpdateLeaveRequest(ctx, later.ID, storage.LeaveRequestPatch{StartDate: &start, DaysRequested: ptr(1)})
		require.NoError(t, err)
		assert.Equal(t, 1, got.DaysRequested)
	})

	t.Run("list newest first with names", func(t *testing.T) {
		views, err := s.ListLeaveRequests(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{later.ID, req.ID}, ids(views, func(v model.LeaveRequestView) int64 { return v.ID }))
		assert.Equal(t, "Layla Hassan", views[0].EmployeeName)
		assert.Equal(t, "Unpaid Leave", views[0].LeaveTypeName)
		assert.Equal(t, "Daniel Okafor", views[1].EmployeeName)
	})

	t.Run("breakdown", func(t *testing.T) {
		got, err := s.LeaveStatusBreakdown(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.StatusCount{
			{Status: "approved", Count: 1},
			{Status: "pending", Count: 1},
		}, got)
	})
}

func testPayroll(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	march, err := s.CreatePayroll(ctx, model.Payroll{
		EmployeeID: org.report.ID, Month: 3, Year: 2025,
		BasicSalary: money("7083.33"), Allowances: money("250"), Deductions: money("1420.10"),
		NetSalary: money("1"),
	})
	require.NoError(t, err)
	assert.True(t, march.NetSalary.Equal(money("5913.23")), "net %s", march.NetSalary)
	assert.Equal(t, model.PayrollPending, march.Status)

	feb, err := s.CreatePayroll(ctx, model.Payroll{
		EmployeeID: org.report.ID, Month: 2, Year: 2025,
		BasicSalary: money("7083.33"), Allowances: money("0"), Deductions: money("0"),
		Status: model.PayrollPaid, PaymentDate: ptr(model.NewDate(2025, time.February, 28)),
	})
	require.NoError(t, err)
	mgrMarch, err := s.CreatePayroll(ctx, model.Payroll{
		EmployeeID: org.manager.ID, Month: 3, Year: 2025,
		BasicSalary: money("10000"), Allowances: money("500"), Deductions: money("2500"),
	})
	require.NoError(t, err)
	lastYear, err := s.CreatePayroll(ctx, model.Payroll{
		EmployeeID: org.manager.ID, Month: 12, Year: 2024,
		BasicSalary: money("9500"), Allowances: money("0"), Deductions: money("0"),
	})
	require.NoError(t, err)

	t.Run("one run per employee and period", func(t *testing.T) {
		_, err := s.CreatePayroll(ctx, model.Payroll{
			EmployeeID: org.report.ID, Month: 3, Year: 2025,
			BasicSalary: money("1"), Allowances: money("0"), Deductions: money("0"),
		})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("payload rules", func(t *testing.T) {
		_, err := s.CreatePayroll(ctx, model.Payroll{
			EmployeeID: org.report.ID, Month: 13, Year: 2025,
			BasicSalary: money("1"), Allowances: money("0"), Deductions: money("0"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreatePayroll(ctx, model.Payroll{
			EmployeeID: org.report.ID, Month: 4, Year: 2025,
			BasicSalary: money("1"), Allowances: money("-5"), Deductions: money("0"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreatePayroll(ctx, model.Payroll{
			EmployeeID: 9999, Month: 4, Year: 2025,
			BasicSalary: money("1"), Allowances: money("0"), Deductions: money("0"),
		})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("list orders by period then name and filters", func(t *testing.T) {
		all, err := s.ListPayroll(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t,
			[]int64{mgrMarch.ID, march.ID, feb.ID, lastYear.ID},
			ids(all, func(v model.PayrollView) int64 { return v.ID }))
		assert.Equal(t, "Layla Hassan", all[0].EmployeeName)

		y, err := s.ListPayroll(ctx, 2025, 0)
		require.NoError(t, err)
		assert.Len(t, y, 3)

		m, err := s.ListPayroll(ctx, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{mgrMarch.ID, march.ID}, ids(m, func(v model.PayrollView) int64 { return v.ID }))

		ym, err := s.ListPayroll(ctx, 2024, 12)
		require.NoError(t, err)
		assert.Equal(t, []int64{lastYear.ID}, ids(ym, func(v model.PayrollView) int64 { return v.ID }))

		none, err := s.ListPayroll(ctx, 2030, 1)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("update recomputes net", func(t *testing.T) {
		processed := model.PayrollProcessed
		got, err := s.UpdatePayroll(ctx, march.ID, storage.PayrollPatch{Deductions: ptr(money("83.33")), Status: &processed})
		require.NoError(t, err)
		assert.True(t, got.NetSalary.Equal(money("7250")), "net %s", got.NetSalary)
		assert.Equal(t, model.PayrollProcessed, got.Status)

		stored, err := s.GetPayroll(ctx, march.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.NetSalary.Equal(money("7250")))
		assert.True(t, stored.BasicSalary.Equal(money("7083.33")))

		_, err = s.UpdatePayroll(ctx, march.ID, storage.PayrollPatch{BasicSalary: ptr(money("-1"))})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.UpdatePayroll(ctx, 9999, storage.PayrollPatch{Status: &processed})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

// =============================================================================
// REVIEWS / TRAINING / RECRUITMENT
// =============================================================================

func testReviews(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	first, err := s.CreatePerformanceReview(ctx, model.PerformanceReview{
		EmployeeID: org.report.ID, ReviewerID: org.manager.ID,
		ReviewPeriod: "H2 2024", ReviewDate: model.NewDate(2025, time.January, 15), Rating: ptr(model.Rating(42)),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewDraft, first.Status)

	second, err := s.CreatePerformanceReview(ctx, model.PerformanceReview{
		EmployeeID: org.manager.ID, ReviewerID: org.manager.ID,
		ReviewPeriod: "H2 2024", ReviewDate: model.NewDate(2025, time.February, 1),
	})
	require.NoError(t, err)

	_, err = s.CreatePerformanceReview(ctx, model.PerformanceReview{
		EmployeeID: org.report.ID, ReviewerID: 9999, ReviewPeriod: "x", ReviewDate: Today,
	})
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.CreatePerformanceReview(ctx, model.PerformanceReview{
		EmployeeID: org.report.ID, ReviewerID: org.manager.ID, ReviewPeriod: "x", ReviewDate: Today,
		Rating: ptr(model.Rating(55)),
	})
	assert.ErrorIs(t, err, storage.ErrValidation)

	views, err := s.ListPerformanceReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, ids(views, func(v model.PerformanceReviewView) int64 { return v.ID }))
	assert.Equal(t, "Daniel Okafor", views[1].EmployeeName)
	assert.Equal(t, "Layla Hassan", views[1].ReviewerName)

	completed := model.ReviewCompleted
	got, err := s.UpdatePerformanceReview(ctx, first.ID, storage.PerformanceReviewPatch{Status: &completed, Rating: ptr(model.Rating(45))})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewCompleted, got.Status)
	assert.Equal(t, model.Rating(45), *got.Rating)
	assert.Equal(t, "H2 2024", got.ReviewPeriod)

	stored, err := s.GetPerformanceReview(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, got, *stored)

	_, err = s.UpdatePerformanceReview(ctx, 9999, storage.PerformanceReviewPatch{Status: &completed})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testTraining(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	secure, err := s.CreateTrainingProgram(ctx, model.TrainingProgram{Title: "Secure Coding", Cost: ptr(money("1200")), IsMandatory: true, IsActive: true})
	require.NoError(t, err)
	lead, err := s.CreateTrainingProgram(ctx, model.TrainingProgram{Title: "Leadership Essentials", Duration: ptr("2 days"), IsActive: true})
	require.NoError(t, err)

	programs, err := s.ListTrainingPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{secure.ID, lead.ID}, ids(programs, func(p model.TrainingProgram) int64 { return p.ID }))
	require.NotNil(t, programs[0].Cost)
	assert.True(t, programs[0].Cost.Equal(money("1200")))
	assert.Nil(t, programs[1].Cost)

	// GIVEN: an enrollment without a date lands on today
	enrolled, err := s.CreateEmployeeTraining(ctx, model.EmployeeTraining{EmployeeID: org.report.ID, TrainingProgramID: secure.ID})
	require.NoError(t, err)
	assert.Equal(t, Today, enrolled.EnrollmentDate)
	assert.Equal(t, model.TrainingEnrolled, enrolled.Status)

	earlier, err := s.CreateEmployeeTraining(ctx, model.EmployeeTraining{
		EmployeeID: org.manager.ID, TrainingProgramID: lead.ID, EnrollmentDate: Today.AddDays(-30),
	})
	require.NoError(t, err)

	_, err = s.CreateEmployeeTraining(ctx, model.EmployeeTraining{EmployeeID: org.report.ID, TrainingProgramID: 9999})
	assert.ErrorIs(t, err, storage.ErrValidation)

	views, err := s.ListEmployeeTrainings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{enrolled.ID, earlier.ID}, ids(views, func(v model.EmployeeTrainingView) int64 { return v.ID }))
	assert.Equal(t, "Secure Coding", views[0].ProgramTitle)
	assert.Equal(t, "Layla Hassan", views[1].EmployeeName)

	completed := model.TrainingCompleted
	got, err := s.UpdateEmployeeTraining(ctx, enrolled.ID, storage.EmployeeTrainingPatch{
		Status: &completed, CompletionDate: ptr(Today.AddDays(3)), Score: ptr(92),
	})
	require.NoError(t, err)
	assert.Equal(t, 92, *got.Score)

	stored, err := s.GetEmployeeTraining(ctx, enrolled.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, got, *stored)

	_, err = s.UpdateEmployeeTraining(ctx, enrolled.ID, storage.EmployeeTrainingPatch{CompletionDate: ptr(Today.AddDays(-1))})
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.UpdateEmployeeTraining(ctx, enrolled.ID, storage.EmployeeTrainingPatch{Score: ptr(101)})
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.UpdateEmployeeTraining(ctx, 9999, storage.EmployeeTrainingPatch{Status: &completed})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testRecruitment(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)
	org := newStaff(t, s)

	// GIVEN: a posting with every default left to the store
	open, err := s.CreateJobPosting(ctx, model.JobPosting{Title: "Senior Go Engineer", DepartmentID: org.dept.ID, PositionID: org.position.ID})
	require.NoError(t, err)
	assert.Equal(t, Today, open.PostedDate)
	assert.Equal(t, "full_time", open.Type)
	assert.Equal(t, model.JobOpen, open.Status)

	older, err := s.CreateJobPosting(ctx, model.JobPosting{
		Title: "Intern", DepartmentID: org.dept.ID, PositionID: org.position.ID,
		Type: "internship", Status: model.JobClosed, PostedDate: Today.AddDays(-60),
		ClosingDate: ptr(Today.AddDays(-30)), Location: ptr("London"),
	})
	require.NoError(t, err)

	t.Run("payload rules", func(t *testing.T) {
		_, err := s.CreateJobPosting(ctx, model.JobPosting{Title: "x", DepartmentID: org.dept.ID, PositionID: org.position.ID, Type: "gig"})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateJobPosting(ctx, model.JobPosting{Title: "x", DepartmentID: org.dept.ID, PositionID: 9999})
		assert.ErrorIs(t, err, storage.ErrValidation)

		_, err = s.CreateJobPosting(ctx, model.JobPosting{Title: "x", DepartmentID: org.dept.ID, PositionID: org.position.ID,
			ClosingDate: ptr(Today.AddDays(-1))})
		assert.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("postings newest first", func(t *testing.T) {
		views, err := s.ListJobPostings(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{open.ID, older.ID}, ids(views, func(v model.JobPostingView) int64 { return v.ID }))
		assert.Equal(t, "Engineering", views[0].Department)
		assert.Equal(t, "Software Engineer", views[0].PositionTitle)
	})

	t.Run("close a posting", func(t *testing.T) {
		closed := model.JobClosed
		got, err := s.UpdateJobPosting(ctx, open.ID, storage.JobPostingPatch{Status: &closed, ClosingDate: ptr(Today.AddDays(14))})
		require.NoError(t, err)
		assert.Equal(t, model.JobClosed, got.Status)
		assert.Equal(t, "Senior Go Engineer", got.Title)

		reopened := model.JobOpen
		_, err = s.UpdateJobPosting(ctx, open.ID, storage.JobPostingPatch{Status: &reopened})
		require.NoError(t, err)

		_, err = s.UpdateJobPosting(ctx, 9999, storage.JobPostingPatch{Status: &closed})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("applications", func(t *testing.T) {
		a, err := s.CreateJobApplication(ctx, model.JobApplication{JobPostingID: open.ID, FirstName: "Omar", LastName: "Farouk", Email: "omar.f@example.com"})
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationApplied, a.Status)
		assert.Equal(t, Today, a.AppliedDate)

		b, err := s.CreateJobApplication(ctx, model.JobApplication{JobPostingID: older.ID, FirstName: "Ana", LastName: "Silva",
			Email: "ana@example.com", AppliedDate: Today.AddDays(-45)})
		require.NoError(t, err)

		_, err = s.CreateJobApplication(ctx, model.JobApplication{JobPostingID: 9999, FirstName: "x", LastName: "y", Email: "x@example.com"})
		assert.ErrorIs(t, err, storage.ErrValidation)

		views, err := s.ListJobApplications(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{a.ID, b.ID}, ids(views, func(v model.JobApplicationView) int64 { return v.ID }))
		assert.Equal(t, "Senior Go Engineer", views[0].JobTitle)
		assert.Equal(t, "Intern", views[1].JobTitle)

		shortlisted := model.ApplicationShortlisted
		got, err := s.UpdateJobApplication(ctx, a.ID, storage.JobApplicationPatch{Status: &shortlisted})
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationShortlisted, got.Status)

		stored, err := s.GetJobApplication(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, got, *stored)

		_, err = s.UpdateJobApplication(ctx, 9999, storage.JobApplicationPatch{Status: &shortlisted})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

// =============================================================================
// AGGREGATES
// =============================================================================

func testStats(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s, _ := fresh(t, newStore)

	t.Run("empty store", func(t *testing.T) {
		stats, err := s.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DashboardStats{}, stats)

		heads, err := s.DepartmentHeadcounts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, heads)
		assert.Empty(t, heads)

		leave, err := s.LeaveStatusBreakdown(ctx)
		require.NoError(t, err)
		assert.NotNil(t, leave)
		assert.Empty(t, leave)
	})

	org := newStaff(t, s)
	empty, err := s.CreateDepartment(ctx, model.Department{Name: "Audit"})
	require.NoError(t, err)
	onLeave := model.EmployeeOnLeave
	_, err = s.UpdateEmployee(ctx, org.report.ID, storage.EmployeePatch{Status: &onLeave})
	require.NoError(t, err)
	_, err = s.CreateJobPosting(ctx, model.JobPosting{Title: "Open", DepartmentID: org.dept.ID, PositionID: org.position.ID})
	require.NoError(t, err)
	_, err = s.CreateJobPosting(ctx, model.JobPosting{Title: "Draft", DepartmentID: org.dept.ID, PositionID: org.position.ID, Status: model.JobDraft})
	require.NoError(t, err)

	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{TotalEmployees: 2, ActiveEmployees: 1, TotalDepartments: 2, OpenJobPostings: 1}, stats)

	heads, err := s.DepartmentHeadcounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.DepartmentHeadcount{
		{DepartmentID: empty.ID, Name: "Audit", Employees: 0},
		{DepartmentID: org.dept.ID, Name: "Engineering", Employees: 2},
	}, heads)
}
