package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
)

func ptr[T any](v T) *T { return &v }

// =============================================================================
// DERIVED FIELDS
// =============================================================================

func TestNetSalary(t *testing.T) {
	net := NetSalary(
		decimal.RequireFromString("5000.00"),
		decimal.RequireFromString("750.00"),
		decimal.RequireFromString("2150.50"),
	)
	assert.True(t, net.Equal(decimal.RequireFromString("3599.5")), net.String())
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  *time.Time
		want string
	}{
		{"half hour", ptr(in.Add(8*time.Hour + 30*time.Minute)), "8.5"},
		{"rounded to two places", ptr(in.Add(20 * time.Minute)), "0.33"},
		{"same instant", ptr(in), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkedHours(&in, tt.out)
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), got.String())
		})
	}

	assert.Nil(t, WorkedHours(&in, nil))
	assert.Nil(t, WorkedHours(nil, &in))
}

func TestDeriveLeaveRequest(t *testing.T) {
	// GIVEN: a request without a day count
	r := model.LeaveRequest{
		StartDate: model.NewDate(2025, time.March, 3),
		EndDate:   model.NewDate(2025, time.March, 7),
	}

	// WHEN: deriving
	DeriveLeaveRequest(&r)

	// THEN: both ends are counted
	assert.Equal(t, 5, r.DaysRequested)

	// a supplied count is kept
	r.DaysRequested = 3
	DeriveLeaveRequest(&r)
	assert.Equal(t, 3, r.DaysRequested)
}

func TestLeaveRequestPatch_DateChangeRecountsDays(t *testing.T) {
	// GIVEN: a stored five-day request
	r := model.LeaveRequest{
		StartDate:     model.NewDate(2025, time.March, 3),
		EndDate:       model.NewDate(2025, time.March, 7),
		DaysRequested: 5,
	}

	// WHEN: only the end date moves
	end := model.NewDate(2025, time.March, 4)
	LeaveRequestPatch{EndDate: &end}.Apply(&r)
	DeriveLeaveRequest(&r)

	// THEN: the count follows the dates
	assert.Equal(t, 2, r.DaysRequested)

	// a patch without dates keeps the count
	LeaveRequestPatch{Reason: ptr("moved")}.Apply(&r)
	DeriveLeaveRequest(&r)
	assert.Equal(t, 2, r.DaysRequested)
}

func TestDeriveAttendance_NormalizesToUTC(t *testing.T) {
	cairo := time.FixedZone("EET", 2*60*60)
	a := model.Attendance{
		ClockIn:  ptr(time.Date(2025, time.March, 14, 11, 0, 0, 999, cairo)),
		ClockOut: ptr(time.Date(2025, time.March, 14, 19, 0, 0, 0, cairo)),
	}
	DeriveAttendance(&a)

	assert.Equal(t, time.UTC, a.ClockIn.Location())
	assert.Equal(t, 9, a.ClockIn.Hour())
	assert.Equal(t, 0, a.ClockIn.Nanosecond())
	assert.True(t, a.TotalHours.Equal(decimal.NewFromInt(8)), a.TotalHours.String())
}

// =============================================================================
// VALIDATION
// =============================================================================

func validEmployee() model.Employee {
	return model.Employee{
		EmployeeID: "EMP100",
		FirstName:  "Nadia",
		LastName:   "Ali",
		Email:      "nadia.ali@example.com",
		HireDate:   model.NewDate(2024, time.May, 6),
		Salary:     decimal.NewFromInt(64000),
		Status:     model.EmployeeActive,
	}
}

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, ErrValidation)
	return ve.Problems
}

func TestValidate_Employee(t *testing.T) {
	assert.NoError(t, Validate("employee", validEmployee()))

	tests := []struct {
		name   string
		mutate func(e *model.Employee)
		want   string
	}{
		{"missing first name", func(e *model.Employee) { e.FirstName = "" }, "firstName is required"},
		{"missing hire date", func(e *model.Employee) { e.HireDate = model.Date{} }, "hireDate is required"},
		{"bad email", func(e *model.Employee) { e.Email = "nadia" }, "email must be a valid email address"},
		{"negative salary", func(e *model.Employee) { e.Salary = decimal.NewFromInt(-1) }, "salary must be at least 0"},
		{"unknown status", func(e *model.Employee) { e.Status = "retired" }, "status must be one of [active terminated on_leave]"},
		{"terminated before hire", func(e *model.Employee) {
			e.TerminationDate = ptr(model.NewDate(2024, time.January, 1))
		}, "terminationDate must not be before hireDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmployee()
			tt.mutate(&e)
			assert.Contains(t, problemsOf(t, Validate("employee", e)), tt.want)
		})
	}
}

func TestValidate_CrossField(t *testing.T) {
	in := time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	day := model.DateOf(in)

	tests := []struct {
		name   string
		entity string
		v      any
		want   string
	}{
		{"clock-out without clock-in", "attendance",
			model.Attendance{EmployeeID: 1, Date: day, ClockOut: &in, Status: model.AttendancePresent},
			"clockOut requires clockIn"},
		{"clock-out before clock-in", "attendance",
			model.Attendance{EmployeeID: 1, Date: day, ClockIn: &in, ClockOut: ptr(in.Add(-time.Hour)), Status: model.AttendancePresent},
			"clockOut must not be before clockIn"},
		{"leave ends before it starts", "leave request",
			model.LeaveRequest{EmployeeID: 1, LeaveTypeID: 1, StartDate: day, EndDate: day.AddDays(-2), DaysRequested: 1, Status: model.LeavePending},
			"endDate must not be before startDate"},
		{"posting closes before posted", "job posting",
			model.JobPosting{Title: "Analyst", DepartmentID: 1, PositionID: 1, Type: "full_time", Status: model.JobOpen,
				PostedDate: day, ClosingDate: ptr(day.AddDays(-1))},
			"closingDate must not be before postedDate"},
		{"payroll month out of range", "payroll",
			model.Payroll{EmployeeID: 1, Month: 13, Year: 2025, Status: model.PayrollPending},
			"month must be at most 12"},
		{"audio url", "verse",
			model.Verse{SurahID: 1, Number: 1, Text: "text", AudioURL: ptr("not a url")},
			"audioUrl must be a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, problemsOf(t, Validate(tt.entity, tt.v)), tt.want)
		})
	}
}

// =============================================================================
// PREPARE
// =============================================================================

func TestPrepareDiscussion(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	d := model.Discussion{
		ID: 99, TopicID: 1, UserID: 1, Title: "Witr", Content: "How many rakah?",
		CommentsCount: 12, ViewsCount: 400,
	}

	require.NoError(t, PrepareDiscussion(&d, FixedClock(now)))

	assert.Zero(t, d.ID)
	assert.Zero(t, d.CommentsCount)
	assert.Zero(t, d.ViewsCount)
	assert.Equal(t, model.DiscussionOpen, d.Status)
	assert.True(t, d.CreatedAt.Equal(now))
}

func TestPreparePayroll_IgnoresClientNet(t *testing.T) {
	p := model.Payroll{
		EmployeeID: 1, Month: 3, Year: 2025,
		BasicSalary: decimal.NewFromInt(5000),
		Allowances:  decimal.NewFromInt(250),
		Deductions:  decimal.NewFromInt(1000),
		NetSalary:   decimal.NewFromInt(1),
	}
	require.NoError(t, PreparePayroll(&p))
	assert.True(t, p.NetSalary.Equal(decimal.NewFromInt(4250)), p.NetSalary.String())
	assert.Equal(t, model.PayrollPending, p.Status)
}

// =============================================================================
// PATCHES
// =============================================================================

func TestEmployeePatch_Apply(t *testing.T) {
	e := validEmployee()
	e.ManagerID = ptr(int64(1))
	e.Phone = ptr("+44 20 7946 0000")

	// GIVEN: a patch touching two fields and clearing the manager
	phone := "+44 20 7946 0999"
	p := EmployeePatch{LastName: ptr("Ali-Khan"), Phone: &phone, ClearManager: true}

	// WHEN: applied
	p.Apply(&e)

	// THEN: only those fields changed
	assert.Equal(t, "Ali-Khan", e.LastName)
	assert.Equal(t, "Nadia", e.FirstName)
	assert.Nil(t, e.ManagerID)
	assert.Equal(t, "+44 20 7946 0999", *e.Phone)

	// AND: the entity does not alias the patch
	phone = "changed"
	assert.Equal(t, "+44 20 7946 0999", *e.Phone)
}

func TestDepartmentPatch_EmptyIsNoop(t *testing.T) {
	d := model.Department{Name: "Legal", Budget: ptr(decimal.NewFromInt(10))}
	before := d
	DepartmentPatch{}.Apply(&d)
	assert.Equal(t, before, d)
}

// =============================================================================
// ERRORS AND CLOCK
// =============================================================================

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		err    error
		is     error
		client bool
		msg    string
	}{
		{NotFound("employee", 7), ErrNotFound, true, "employee 7 not found"},
		{Conflict("user", "username"), ErrConflict, true, "user with the same username already exists"},
		{InUse("department", 1, "employees"), ErrConflict, true, "department: 1 is still referenced by employees"},
		{MissingParent("verse", "surahId", 200), ErrValidation, true, "invalid verse: surahId 200 does not exist"},
		{Unsupported("create surah"), ErrUnsupported, true, "create surah: operation not supported by this backend"},
		{&UpstreamError{Op: "list surahs", StatusCode: 503}, ErrUpstreamUnavailable, false, "upstream list surahs: status 503"},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.is)
		assert.Equal(t, tt.client, IsClientError(tt.err), tt.msg)
		assert.EqualError(t, tt.err, tt.msg)
	}

	cause := context.DeadlineExceeded
	up := &UpstreamError{Op: "list verses", Err: cause}
	assert.True(t, errors.Is(up, cause))
	assert.True(t, errors.Is(up, ErrUpstreamUnavailable))
}

func TestClock(t *testing.T) {
	zone := time.FixedZone("PKT", 5*60*60)
	c := FixedClock(time.Date(2025, time.March, 15, 2, 0, 0, 1500, zone))

	now := c.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, 1000, now.Nanosecond())
	// 02:00 in UTC+5 is still the 14th in UTC
	assert.Equal(t, model.NewDate(2025, time.March, 14), c.Today())

	var system Clock
	assert.WithinDuration(t, time.Now(), system.Now(), time.Minute)
}
