/*
handlers_test.go - HTTP handler tests

Tests run the full router against a seeded fixture store:
- Status mapping of the storage error taxonomy
- Path, query and body parsing (400s)
- Password hashing on user creation
- Leave approval flow
- Dashboard
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/portal/model"
	"github.com/warp/portal/reporting"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
)

var testNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	store  storage.Storage
	router http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := storage.FixedClock(testNow)
	s, err := memory.Seeded(context.Background(), memory.WithClock(clock))
	require.NoError(t, err)
	return newFixtureWith(t, s)
}

func newFixtureWith(t *testing.T, s storage.Storage) *fixture {
	h := NewHandler(s, WithClock(storage.FixedClock(testNow)), WithBcryptCost(bcrypt.MinCost))
	return &fixture{t: t, store: s, router: NewRouter(h, []string{"http://localhost:5173"})}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.NotFound("employee", 9), http.StatusNotFound},
		{storage.Conflict("user", "username"), http.StatusConflict},
		{storage.InUse("department", 1, "employees"), http.StatusConflict},
		{storage.Invalid("payroll", "month out of range"), http.StatusBadRequest},
		{storage.MissingParent("verse", "surahId", 200), http.StatusBadRequest},
		{storage.Unsupported("create surah"), http.StatusMethodNotAllowed},
		{&storage.UpstreamError{Op: "list surahs", StatusCode: 503}, http.StatusBadGateway},
		{fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

// brokenQuran fails every read the way the proxy does when the upstream is down.
type brokenQuran struct{ storage.QuranStore }

func (brokenQuran) ListSurahs(context.Context) ([]model.Surah, error) {
	return nil, &storage.UpstreamError{Op: "list surahs", Err: errors.New("connection refused")}
}

func (brokenQuran) CreateSurah(context.Context, model.Surah) (model.Surah, error) {
	return model.Surah{}, storage.Unsupported("create surah")
}

func TestUpstreamAndReadOnlyErrors(t *testing.T) {
	// GIVEN: Quran content served by a failing read-only backend
	base, err := memory.Seeded(context.Background())
	require.NoError(t, err)
	f := newFixtureWith(t, storage.WithQuran(base, brokenQuran{}))

	// WHEN/THEN: reads are 502 and writes 405
	rec := f.do("GET", "/api/surahs", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeBody[ErrorResponse](t, rec)
	assert.Contains(t, resp.Details, "connection refused")

	rec = f.do("POST", "/api/surahs", model.Surah{Number: 6, Name: "الأنعام", EnglishName: "Al-An'am", VersesCount: 165})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// other families are unaffected
	assert.Equal(t, http.StatusOK, f.do("GET", "/api/topics", nil).Code)
}

// =============================================================================
// CONTENT
// =============================================================================

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do("GET", "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, rec)["status"])
}

func TestSurahs(t *testing.T) {
	f := newFixture(t)

	rec := f.do("GET", "/api/surahs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	surahs := decodeBody[[]model.Surah](t, rec)
	require.Len(t, surahs, 5)
	assert.Equal(t, "Al-Fatihah", surahs[0].EnglishName)

	rec = f.do("GET", "/api/surahs/1/verses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.Verse](t, rec), 7)

	// unknown surah: empty list, not 404
	rec = f.do("GET", "/api/surahs/99/verses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetByID_StatusCodes(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/surahs/2", http.StatusOK},
		{"/api/surahs/999", http.StatusNotFound},
		{"/api/surahs/abc", http.StatusBadRequest},
		{"/api/surahs/0", http.StatusBadRequest},
		{"/api/hadith-collections/1", http.StatusOK},
		{"/api/courses/42", http.StatusNotFound},
		{"/api/employees/1", http.StatusOK},
		{"/api/employees/-3", http.StatusBadRequest},
		{"/api/leave-requests/5", http.StatusOK},
		{"/api/job-postings/77", http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.do("GET", tt.path, nil).Code, tt.path)
	}
}

func TestCreateVerse_PathNamesTheSurah(t *testing.T) {
	f := newFixture(t)

	rec := f.do("POST", "/api/surahs/2/verses", map[string]any{
		"surahId": 1, "number": 1, "text": "الم", "translation": "Alif, Lam, Meem.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), decodeBody[model.Verse](t, rec).SurahID)
}

func TestCreateCourse_Invalid(t *testing.T) {
	// GIVEN: a course without a title
	f := newFixture(t)

	// WHEN: creating it
	rec := f.do("POST", "/api/courses", map[string]any{"level": "beginner"})

	// THEN: 400 with the list of problems
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "Invalid course", resp.Message)
	assert.NotEmpty(t, resp.Details)
}

func TestMalformedBody(t *testing.T) {
	f := newFixture(t)
	rec := f.do("POST", "/api/topics", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody[ErrorResponse](t, rec).Message)
}

func TestRecentDiscussions(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		query   string
		want    int
		wantLen int
	}{
		{"", http.StatusOK, 3},
		{"?limit=2", http.StatusOK, 2},
		{"?limit=0", http.StatusOK, 3},
		{"?limit=many", http.StatusBadRequest, 0},
		{"?limit=-1", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		rec := f.do("GET", "/api/discussions"+tt.query, nil)
		require.Equal(t, tt.want, rec.Code, tt.query)
		if tt.want == http.StatusOK {
			assert.Len(t, decodeBody[[]model.Discussion](t, rec), tt.wantLen, tt.query)
		}
	}
}

func TestDiscussionLifecycle(t *testing.T) {
	f := newFixture(t)

	// GIVEN: a new discussion with client-supplied counters
	rec := f.do("POST", "/api/discussions", map[string]any{
		"topicId": 1, "userId": 2, "title": "Tafsir recommendations",
		"content": "Which tafsir should a beginner start with?", "viewsCount": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[model.Discussion](t, rec)

	// THEN: server fields win
	assert.Equal(t, 0, created.ViewsCount)
	assert.Equal(t, model.DiscussionOpen, created.Status)
	assert.True(t, created.CreatedAt.Equal(testNow))

	// WHEN: deleting it twice
	path := fmt.Sprintf("/api/discussions/%d", created.ID)
	assert.Equal(t, http.StatusNoContent, f.do("DELETE", path, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do("DELETE", path, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do("GET", path, nil).Code)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	// GIVEN: a signup payload
	f := newFixture(t)
	body := CreateUserRequest{Username: "fatima", Password: "s3cret-pass", Email: "fatima@example.com"}

	// WHEN: creating the user
	rec := f.do("POST", "/api/users", body)

	// THEN: the response never carries the password
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")

	// AND: the store holds a bcrypt hash of it
	stored, err := f.store.GetUserByUsername(context.Background(), "fatima")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))
}

func TestCreateUser_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body CreateUserRequest
		want int
	}{
		{"duplicate username", CreateUserRequest{Username: "ahmed_123", Password: "x", Email: "other@example.com"}, http.StatusConflict},
		{"missing password", CreateUserRequest{Username: "bilal", Email: "bilal@example.com"}, http.StatusBadRequest},
		{"bad email", CreateUserRequest{Username: "bilal", Password: "x", Email: "not-an-email"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do("POST", "/api/users", tt.body).Code)
		})
	}
}

func TestPrayerTimes(t *testing.T) {
	f := newFixture(t)

	// defaults: today, London
	rec := f.do("GET", "/api/prayer-times", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decodeBody[model.PrayerTime](t, rec)
	assert.Equal(t, "London, United Kingdom", p.Location)
	assert.Equal(t, model.DateOf(testNow), p.Date)

	assert.Equal(t, http.StatusNotFound, f.do("GET", "/api/prayer-times?date=2001-01-01", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do("GET", "/api/prayer-times?date=14/03/2025", nil).Code)

	// saving fills the cache for another location
	rec = f.do("PUT", "/api/prayer-times", map[string]any{
		"date": "2025-03-14", "location": "Cairo, Egypt",
		"fajr": "04:40", "dhuhr": "12:05", "asr": "15:30", "maghrib": "18:01", "isha": "19:19",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do("GET", "/api/prayer-times?date=2025-03-14&location=Cairo,%20Egypt", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "18:01", decodeBody[model.PrayerTime](t, rec).Maghrib)
}

// =============================================================================
// ORGANIZATION
// =============================================================================

func TestDeleteDepartment(t *testing.T) {
	f := newFixture(t)

	// Engineering still has positions and employees
	rec := f.do("DELETE", "/api/departments/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Legal is empty
	assert.Equal(t, http.StatusNoContent, f.do("DELETE", "/api/departments/5", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do("DELETE", "/api/departments/5", nil).Code)
}

func TestUpdateEmployee(t *testing.T) {
	f := newFixture(t)

	// WHEN: raising a salary
	rec := f.do("PUT", "/api/employees/2", map[string]any{"salary": 90000})

	// THEN: only the salary changed
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	e := decodeBody[model.Employee](t, rec)
	assert.True(t, e.Salary.Equal(decimal.NewFromInt(90000)), e.Salary.String())
	assert.Equal(t, "Okafor", e.LastName)

	assert.Equal(t, http.StatusNotFound, f.do("PUT", "/api/employees/404", map[string]any{"salary": 1}).Code)
}

func TestCreateEmployee_DuplicateBadge(t *testing.T) {
	f := newFixture(t)
	rec := f.do("POST", "/api/employees", map[string]any{
		"employeeId": "EMP001", "firstName": "Nadia", "lastName": "Ali",
		"email": "nadia.ali@example.com", "hireDate": "2025-03-01", "salary": 50000,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

// =============================================================================
// HR
// =============================================================================

func TestClockOut(t *testing.T) {
	f := newFixture(t)

	// GIVEN: Amina clocked in at 09:20 today (record 4)
	// WHEN: she clocks out at 17:50
	rec := f.do("PUT", "/api/attendance/4", map[string]any{"clockOut": "2025-03-14T17:50:00Z"})

	// THEN: hours are derived
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	a := decodeBody[model.Attendance](t, rec)
	require.NotNil(t, a.TotalHours)
	assert.True(t, a.TotalHours.Equal(decimal.RequireFromString("8.5")), a.TotalHours.String())

	// a second clock-in for the same day is refused
	rec = f.do("POST", "/api/attendance", map[string]any{"employeeId": 7, "date": "2025-03-14"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListAttendance_Date(t *testing.T) {
	f := newFixture(t)

	rec := f.do("GET", "/api/attendance?date=2025-03-14", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.AttendanceView](t, rec), 4)

	rec = f.do("GET", "/api/attendance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.AttendanceView](t, rec), 5)

	assert.Equal(t, http.StatusBadRequest, f.do("GET", "/api/attendance?date=yesterday", nil).Code)
}

func TestApproveLeaveRequest(t *testing.T) {
	f := newFixture(t)

	// GIVEN: request 2 is pending
	// WHEN: Layla (employee 1) approves it
	rec := f.do("POST", "/api/leave-requests/2/approve", LeaveDecisionRequest{ApproverID: ptr(int64(1))})

	// THEN: status, approver and time are stamped
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[model.LeaveRequest](t, rec)
	assert.Equal(t, model.LeaveApproved, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, int64(1), *got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.True(t, got.ApprovedAt.Equal(testNow))

	// AND: it cannot be decided again
	rec = f.do("POST", "/api/leave-requests/2/reject", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRejectLeaveRequest_WithoutBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do("POST", "/api/leave-requests/5/reject", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[model.LeaveRequest](t, rec)
	assert.Equal(t, model.LeaveRejected, got.Status)
	assert.Nil(t, got.ApprovedBy)

	assert.Equal(t, http.StatusNotFound, f.do("POST", "/api/leave-requests/99/approve", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do("POST", "/api/leave-requests/5/approve", `{"approverId": "one"}`).Code)
}

func TestListPayroll_Filters(t *testing.T) {
	f := newFixture(t)

	rec := f.do("GET", "/api/payroll?year=2025&month=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.PayrollView](t, rec), 4)

	assert.Equal(t, http.StatusBadRequest, f.do("GET", "/api/payroll?month=13", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do("GET", "/api/payroll?year=last", nil).Code)
}

func TestCreatePayroll_ComputesNet(t *testing.T) {
	f := newFixture(t)

	rec := f.do("POST", "/api/payroll", map[string]any{
		"employeeId": 5, "month": 1, "year": 2024,
		"basicSalary": "5833.33", "allowances": "300", "deductions": "1416.67", "netSalary": "1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decodeBody[model.Payroll](t, rec)
	assert.True(t, p.NetSalary.Equal(decimal.RequireFromString("4716.66")), p.NetSalary.String())
}

// =============================================================================
// DASHBOARD
// =============================================================================

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do("GET", "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[model.DashboardStats](t, rec)
	assert.Equal(t, 7, stats.TotalEmployees)
	assert.Equal(t, 5, stats.TotalDepartments)

	rec = f.do("GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decodeBody[reporting.Dashboard](t, rec)
	assert.Len(t, d.Departments, 5)
	require.Len(t, d.Leave, 3)
	assert.Equal(t, model.LeaveApproved, d.Leave[1].Status)
	assert.Equal(t, 2, d.Leave[1].Count)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("OPTIONS", "/api/employees", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func ptr[T any](v T) *T { return &v }
