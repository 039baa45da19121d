package storage

import (
	"github.com/warp/portal/model"
)

// =============================================================================
// CREATE PREPARATION
// =============================================================================
//
// Prepare* fill the server-side fields of a create payload and validate it.
// Both writable adapters call them before touching their store, so the same
// payload yields the same entity (apart from the id) everywhere.
//
// Defaults apply only to zero values. Ids are always cleared; the adapter
// assigns them.

func PrepareSurah(s *model.Surah) error {
	s.ID = 0
	return Validate("surah", s)
}

func PrepareVerse(v *model.Verse) error {
	v.ID = 0
	return Validate("verse", v)
}

func PrepareHadithCollection(c *model.HadithCollection) error {
	c.ID = 0
	return Validate("hadith collection", c)
}

func PrepareHadith(h *model.Hadith) error {
	h.ID = 0
	return Validate("hadith", h)
}

func PrepareCourse(c *model.Course, clock Clock) error {
	c.ID = 0
	c.CreatedAt = clock.Now()
	if c.Level == "" {
		c.Level = model.LevelBeginner
	}
	return Validate("course", c)
}

func PrepareTopic(t *model.Topic) error {
	t.ID = 0
	return Validate("topic", t)
}

func PrepareDiscussion(d *model.Discussion, clock Clock) error {
	d.ID = 0
	d.CreatedAt = clock.Now()
	d.CommentsCount = 0
	d.ViewsCount = 0
	if d.Status == "" {
		d.Status = model.DiscussionOpen
	}
	return Validate("discussion", d)
}

func PrepareUser(u *model.User, clock Clock) error {
	u.ID = 0
	u.CreatedAt = clock.Now()
	return Validate("user", u)
}

func PreparePrayerTime(p *model.PrayerTime) error {
	p.ID = 0
	return Validate("prayer time", p)
}

func PrepareDepartment(d *model.Department) error {
	d.ID = 0
	return Validate("department", d)
}

func PreparePosition(p *model.Position) error {
	p.ID = 0
	return Validate("position", p)
}

func PrepareEmployee(e *model.Employee) error {
	e.ID = 0
	if e.Status == "" {
		e.Status = model.EmployeeActive
	}
	return Validate("employee", e)
}

func PrepareAttendance(a *model.Attendance, clock Clock) error {
	a.ID = 0
	if a.Date.IsZero() {
		a.Date = clock.Today()
	}
	if a.Status == "" {
		a.Status = model.AttendancePresent
	}
	DeriveAttendance(a)
	return Validate("attendance", a)
}

func PrepareLeaveType(t *model.LeaveType) error {
	t.ID = 0
	return Validate("leave type", t)
}

func PrepareLeaveRequest(r *model.LeaveRequest) error {
	r.ID = 0
	if r.Status == "" {
		r.Status = model.LeavePending
	}
	DeriveLeaveRequest(r)
	return Validate("leave request", r)
}

func PreparePayroll(p *model.Payroll) error {
	p.ID = 0
	if p.Status == "" {
		p.Status = model.PayrollPending
	}
	DerivePayroll(p)
	return Validate("payroll", p)
}

func PreparePerformanceReview(r *model.PerformanceReview) error {
	r.ID = 0
	if r.Status == "" {
		r.Status = model.ReviewDraft
	}
	return Validate("performance review", r)
}

func PrepareTrainingProgram(p *model.TrainingProgram) error {
	p.ID = 0
	return Validate("training program", p)
}

func PrepareEmployeeTraining(t *model.EmployeeTraining, clock Clock) error {
	t.ID = 0
	if t.EnrollmentDate.IsZero() {
		t.EnrollmentDate = clock.Today()
	}
	if t.Status == "" {
		t.Status = model.TrainingEnrolled
	}
	return Validate("employee training", t)
}

func PrepareJobPosting(j *model.JobPosting, clock Clock) error {
	j.ID = 0
	if j.PostedDate.IsZero() {
		j.PostedDate = clock.Today()
	}
	if j.Type == "" {
		j.Type = "full_time"
	}
	if j.Status == "" {
		j.Status = model.JobOpen
	}
	return Validate("job posting", j)
}

func PrepareJobApplication(a *model.JobApplication, clock Clock) error {
	a.ID = 0
	if a.AppliedDate.IsZero() {
		a.AppliedDate = clock.Today()
	}
	if a.Status == "" {
		a.Status = model.ApplicationApplied
	}
	return Validate("job application", a)
}
