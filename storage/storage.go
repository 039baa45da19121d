/*
Package storage defines the contract every persistence backend implements.

PURPOSE:
  The HTTP layer and the reporting layer talk to persisted state only through
  Storage. Three backends implement it:
  - storage/memory:     Fixture adapter. In-process maps, the reference behavior.
  - storage/relational: SQL adapter (SQLite or PostgreSQL).
  - storage/proxy:      Read-through proxy for Quran content (QuranStore only).

  The backend is chosen once at process start (see cmd/server).

METHOD CONTRACTS:
  List*    Complete, order-stable sequence. Never nil. No pagination.
  Get*     (nil, nil) when the id does not exist. Absence is not an error.
  Create*  Takes a payload without id, assigns a fresh id and all server-side
           fields (timestamps, counters, derived amounts), returns the entity.
  Update*  Takes an id and a patch; nil patch fields are left unchanged.
           Returns the entity after the update. Unknown id: ErrNotFound.
  Delete*  Unknown id: ErrNotFound. Still referenced by other rows: ErrConflict.

  Aggregates (StatsStore) are dedicated methods so each backend can compute
  them natively (map reduce, GROUP BY).

ERRORS:
  See errors.go. Implementations never log; they return typed errors.

SEE ALSO:
  - errors.go:   Error taxonomy
  - patch.go:    Partial update payloads
  - defaults.go: Server-side fields filled on create
  - validate.go: Payload validation
*/
package storage

import (
	"context"

	"github.com/warp/portal/model"
)

// =============================================================================
// CONTENT FAMILY
// =============================================================================

// QuranStore reads and writes surahs and verses.
type QuranStore interface {
	// ListSurahs returns every surah ordered by Number.
	ListSurahs(ctx context.Context) ([]model.Surah, error)
	GetSurah(ctx context.Context, id int64) (*model.Surah, error)
	CreateSurah(ctx context.Context, s model.Surah) (model.Surah, error)

	// ListVersesBySurah returns the verses of one surah ordered by Number.
	// An unknown surah yields an empty list.
	ListVersesBySurah(ctx context.Context, surahID int64) ([]model.Verse, error)
	GetVerse(ctx context.Context, id int64) (*model.Verse, error)
	CreateVerse(ctx context.Context, v model.Verse) (model.Verse, error)
}

type HadithStore interface {
	ListHadithCollections(ctx context.Context) ([]model.HadithCollection, error)
	GetHadithCollection(ctx context.Context, id int64) (*model.HadithCollection, error)
	CreateHadithCollection(ctx context.Context, c model.HadithCollection) (model.HadithCollection, error)

	ListHadithsByCollection(ctx context.Context, collectionID int64) ([]model.Hadith, error)
	GetHadith(ctx context.Context, id int64) (*model.Hadith, error)
	CreateHadith(ctx context.Context, h model.Hadith) (model.Hadith, error)
}

type CourseStore interface {
	// ListCourses returns courses newest first.
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id int64) (*model.Course, error)
	CreateCourse(ctx context.Context, c model.Course) (model.Course, error)
}

type CommunityStore interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
	GetTopic(ctx context.Context, id int64) (*model.Topic, error)
	CreateTopic(ctx context.Context, t model.Topic) (model.Topic, error)

	// ListDiscussionsByTopic returns a topic's discussions newest first.
	ListDiscussionsByTopic(ctx context.Context, topicID int64) ([]model.Discussion, error)
	// ListRecentDiscussions returns the newest discussions across topics.
	// limit <= 0 returns all of them.
	ListRecentDiscussions(ctx context.Context, limit int) ([]model.Discussion, error)
	GetDiscussion(ctx context.Context, id int64) (*model.Discussion, error)
	CreateDiscussion(ctx context.Context, d model.Discussion) (model.Discussion, error)
	DeleteDiscussion(ctx context.Context, id int64) error
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// CreateUser stores u as given; Password must already be hashed.
	CreateUser(ctx context.Context, u model.User) (model.User, error)
}

// PrayerTimeStore is a persisted lookup cache keyed by (date, location).
// Nothing here computes prayer times.
type PrayerTimeStore interface {
	GetPrayerTime(ctx context.Context, date model.Date, location string) (*model.PrayerTime, error)
	SavePrayerTime(ctx context.Context, p model.PrayerTime) (model.PrayerTime, error)
}

// =============================================================================
// ORGANIZATION FAMILY
// =============================================================================

type DepartmentStore interface {
	// ListDepartments returns departments ordered by name, with employee
	// counts and the manager's name resolved.
	ListDepartments(ctx context.Context) ([]model.DepartmentView, error)
	GetDepartment(ctx context.Context, id int64) (*model.Department, error)
	CreateDepartment(ctx context.Context, d model.Department) (model.Department, error)
	UpdateDepartment(ctx context.Context, id int64, p DepartmentPatch) (model.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}

type PositionStore interface {
	ListPositions(ctx context.Context) ([]model.Position, error)
	GetPosition(ctx context.Context, id int64) (*model.Position, error)
	CreatePosition(ctx context.Context, p model.Position) (model.Position, error)
}

type EmployeeStore interface {
	// ListEmployees returns the employee directory ordered by last name then
	// first name, with position title and department name flattened in.
	ListEmployees(ctx context.Context) ([]model.EmployeeView, error)
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	CreateEmployee(ctx context.Context, e model.Employee) (model.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, p EmployeePatch) (model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

type AttendanceStore interface {
	// ListAttendance returns the records of one day, or of every day when
	// date is zero, ordered by date (newest first) then employee name.
	ListAttendance(ctx context.Context, date model.Date) ([]model.AttendanceView, error)
	GetAttendance(ctx context.Context, id int64) (*model.Attendance, error)
	// CreateAttendance is clock-in. A second record for the same employee
	// and day fails with ErrConflict.
	CreateAttendance(ctx context.Context, a model.Attendance) (model.Attendance, error)
	// UpdateAttendance is clock-out; TotalHours is recomputed.
	UpdateAttendance(ctx context.Context, id int64, p AttendancePatch) (model.Attendance, error)
}

type LeaveStore interface {
	ListLeaveTypes(ctx context.Context) ([]model.LeaveType, error)
	GetLeaveType(ctx context.Context, id int64) (*model.LeaveType, error)
	CreateLeaveType(ctx context.Context, t model.LeaveType) (model.LeaveType, error)

	ListLeaveRequests(ctx context.Context) ([]model.LeaveRequestView, error)
	GetLeaveRequest(ctx context.Context, id int64) (*model.LeaveRequest, error)
	CreateLeaveRequest(ctx context.Context, r model.LeaveRequest) (model.LeaveRequest, error)
	// UpdateLeaveRequest carries approvals. It does not guard against
	// approving twice; that rule belongs to the caller.
	UpdateLeaveRequest(ctx context.Context, id int64, p LeaveRequestPatch) (model.LeaveRequest, error)
}

type PayrollStore interface {
	// ListPayroll filters by year and month when they are > 0.
	ListPayroll(ctx context.Context, year, month int) ([]model.PayrollView, error)
	GetPayroll(ctx context.Context, id int64) (*model.Payroll, error)
	CreatePayroll(ctx context.Context, p model.Payroll) (model.Payroll, error)
	UpdatePayroll(ctx context.Context, id int64, p PayrollPatch) (model.Payroll, error)
}

type ReviewStore interface {
	ListPerformanceReviews(ctx context.Context) ([]model.PerformanceReviewView, error)
	GetPerformanceReview(ctx context.Context, id int64) (*model.PerformanceReview, error)
	CreatePerformanceReview(ctx context.Context, r model.PerformanceReview) (model.PerformanceReview, error)
	UpdatePerformanceReview(ctx context.Context, id int64, p PerformanceReviewPatch) (model.PerformanceReview, error)
}

type TrainingStore interface {
	ListTrainingPrograms(ctx context.Context) ([]model.TrainingProgram, error)
	GetTrainingProgram(ctx context.Context, id int64) (*model.TrainingProgram, error)
	CreateTrainingProgram(ctx context.Context, p model.TrainingProgram) (model.TrainingProgram, error)

	ListEmployeeTrainings(ctx context.Context) ([]model.EmployeeTrainingView, error)
	GetEmployeeTraining(ctx context.Context, id int64) (*model.EmployeeTraining, error)
	CreateEmployeeTraining(ctx context.Context, t model.EmployeeTraining) (model.EmployeeTraining, error)
	UpdateEmployeeTraining(ctx context.Context, id int64, p EmployeeTrainingPatch) (model.EmployeeTraining, error)
}

type RecruitmentStore interface {
	// ListJobPostings returns postings newest first.
	ListJobPostings(ctx context.Context) ([]model.JobPostingView, error)
	GetJobPosting(ctx context.Context, id int64) (*model.JobPosting, error)
	CreateJobPosting(ctx context.Context, p model.JobPosting) (model.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id int64, p JobPostingPatch) (model.JobPosting, error)

	ListJobApplications(ctx context.Context) ([]model.JobApplicationView, error)
	GetJobApplication(ctx context.Context, id int64) (*model.JobApplication, error)
	CreateJobApplication(ctx context.Context, a model.JobApplication) (model.JobApplication, error)
	UpdateJobApplication(ctx context.Context, id int64, p JobApplicationPatch) (model.JobApplication, error)
}

// StatsStore holds the aggregate reads behind the HR dashboard.
type StatsStore interface {
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	// DepartmentHeadcounts lists every department, including empty ones,
	// ordered by name.
	DepartmentHeadcounts(ctx context.Context) ([]model.DepartmentHeadcount, error)
	// LeaveStatusBreakdown counts leave requests per status present in the
	// data, ordered by status.
	LeaveStatusBreakdown(ctx context.Context) ([]model.StatusCount, error)
}

// =============================================================================
// STORAGE - everything together
// =============================================================================

// ContentStorage is the devotional portal's slice of the contract.
type ContentStorage interface {
	QuranStore
	HadithStore
	CourseStore
	CommunityStore
	UserStore
	PrayerTimeStore
}

// OrgStorage is the HR console's slice of the contract.
type OrgStorage interface {
	DepartmentStore
	PositionStore
	EmployeeStore
	AttendanceStore
	LeaveStore
	PayrollStore
	ReviewStore
	TrainingStore
	RecruitmentStore
	StatsStore
}

// Storage is the full contract.
type Storage interface {
	ContentStorage
	OrgStorage
}
