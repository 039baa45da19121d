/*
Package memory is the fixture adapter: the whole Storage contract held in
process memory.

PURPOSE:
  Fast path for development and tests, and the reference behavior the other
  adapters are checked against (see storage/storagetest).

STATE:
  Every Store owns its maps; nothing is package-global, so two stores never
  share rows or id sequences. One sync.RWMutex guards the whole store.
  Rows are detached on the way in and on the way out: pointer fields are
  copied, so no caller holds memory the store also holds.

  table[T]     rows of one entity plus its private id counter
  indexes      parent id -> child ids kept sorted on insert
               (surah -> verses, collection -> hadiths, topic -> discussions)
  unique keys  natural key -> id, checked before every insert or update

INTEGRITY:
  Parent references are checked in code on create/update (ErrValidation) and
  on delete (ErrConflict while children exist), the same outcomes the
  relational adapter gets from its constraints.

SEE ALSO:
  - ../relational: SQL implementation of the same contract
  - ../../seed:    Sample data loaded by Seeded
*/
package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/warp/portal/model"
	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
)

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	mu    sync.RWMutex
	clock storage.Clock

	surahs            *table[model.Surah]
	verses            *table[model.Verse]
	hadithCollections *table[model.HadithCollection]
	hadiths           *table[model.Hadith]
	courses           *table[model.Course]
	topics            *table[model.Topic]
	discussions       *table[model.Discussion]
	users             *table[model.User]
	prayerTimes       *table[model.PrayerTime]

	departments       *table[model.Department]
	positions         *table[model.Position]
	employees         *table[model.Employee]
	attendance        *table[model.Attendance]
	leaveTypes        *table[model.LeaveType]
	leaveRequests     *table[model.LeaveRequest]
	payroll           *table[model.Payroll]
	reviews           *table[model.PerformanceReview]
	programs          *table[model.TrainingProgram]
	employeeTrainings *table[model.EmployeeTraining]
	jobPostings       *table[model.JobPosting]
	jobApplications   *table[model.JobApplication]

	// Secondary indexes: parent id -> ordered child ids.
	versesBySurah       map[int64][]int64
	hadithsByCollection map[int64][]int64
	discussionsByTopic  map[int64][]int64

	// Unique keys: natural key -> id.
	surahNumbers   map[int]int64
	verseNumbers   map[verseKey]int64
	usernames      map[string]int64
	badgeNumbers   map[string]int64
	employeeEmails map[string]int64
	attendanceDays map[attendanceKey]int64
	payrollPeriods map[payrollKey]int64
	prayerSlots    map[prayerKey]int64
}

type verseKey struct {
	SurahID int64
	Number  int
}

type attendanceKey struct {
	EmployeeID int64
	Date       model.Date
}

type payrollKey struct {
	EmployeeID int64
	Month      int
	Year       int
}

type prayerKey struct {
	Date     model.Date
	Location string
}

var _ storage.Storage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock stamped on created rows.
func WithClock(c storage.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		surahs:            newTable[model.Surah](),
		verses:            newTable[model.Verse](),
		hadithCollections: newTable[model.HadithCollection](),
		hadiths:           newTable[model.Hadith](),
		courses:           newTable[model.Course](),
		topics:            newTable[model.Topic](),
		discussions:       newTable[model.Discussion](),
		users:             newTable[model.User](),
		prayerTimes:       newTable[model.PrayerTime](),

		departments:       newTable[model.Department](),
		positions:         newTable[model.Position](),
		employees:         newTable[model.Employee](),
		attendance:        newTable[model.Attendance](),
		leaveTypes:        newTable[model.LeaveType](),
		leaveRequests:     newTable[model.LeaveRequest](),
		payroll:           newTable[model.Payroll](),
		reviews:           newTable[model.PerformanceReview](),
		programs:          newTable[model.TrainingProgram](),
		employeeTrainings: newTable[model.EmployeeTraining](),
		jobPostings:       newTable[model.JobPosting](),
		jobApplications:   newTable[model.JobApplication](),

		versesBySurah:       make(map[int64][]int64),
		hadithsByCollection: make(map[int64][]int64),
		discussionsByTopic:  make(map[int64][]int64),

		surahNumbers:   make(map[int]int64),
		verseNumbers:   make(map[verseKey]int64),
		usernames:      make(map[string]int64),
		badgeNumbers:   make(map[string]int64),
		employeeEmails: make(map[string]int64),
		attendanceDays: make(map[attendanceKey]int64),
		payrollPeriods: make(map[payrollKey]int64),
		prayerSlots:    make(map[prayerKey]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seeded returns a store pre-populated with the sample data set.
func Seeded(ctx context.Context, opts ...Option) (*Store, error) {
	s := New(opts...)
	if err := seed.Load(ctx, s, s.clock); err != nil {
		return nil, err
	}
	return s, nil
}

// =============================================================================
// TABLE - rows of one entity
// =============================================================================

type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// nextID hands out ids 1, 2, 3... Ids are never reused, even after a delete.
func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// put stores a detached copy of v under id.
func (t *table[T]) put(id int64, v T) {
	t.rows[id] = detach(v)
}

// get returns a detached copy of the row, or nil.
func (t *table[T]) get(id int64) *T {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	v = detach(v)
	return &v
}

// sorted returns detached copies of every row ordered by less. Never nil.
func (t *table[T]) sorted(less func(a, b T) bool) []T {
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, detach(v))
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// count returns the number of rows matching keep.
func (t *table[T]) count(keep func(T) bool) int {
	n := 0
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			n++
		}
	}
	return n
}

func (t *table[T]) any(match func(T) bool) bool {
	for _, v := range t.rows {
		if match(v) {
			return true
		}
	}
	return false
}

// pick returns the rows for ids, in the order given. Never nil.
func (t *table[T]) pick(ids []int64) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := t.rows[id]; ok {
			out = append(out, detach(v))
		}
	}
	return out
}

// detach returns v with every exported pointer field, including those of
// embedded structs, pointing at a fresh copy.
func detach[T any](v T) T {
	detachValue(reflect.ValueOf(&v).Elem())
	return v
}

func detachValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(v.Elem())
		detachValue(c.Elem())
		v.Set(c)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				detachValue(f)
			}
		}
	}
}

// =============================================================================
// INDEX HELPERS
// =============================================================================

// insertSorted inserts id into ids, which is ordered by before.
func insertSorted(ids []int64, id int64, before func(a, b int64) bool) []int64 {
	// Binary search for the first element that sorts after id
	i := sort.Search(len(ids), func(i int) bool {
		return before(id, ids[i])
	})
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// =============================================================================
// LOOKUP HELPERS
// =============================================================================

func (s *Store) employeeName(id int64) string {
	if e, ok := s.employees.rows[id]; ok {
		return e.FullName()
	}
	return ""
}

// nameOrder compares two employees by last name, then first name.
func nameOrder(a, b model.Employee) int {
	if a.LastName != b.LastName {
		return compare(a.LastName, b.LastName)
	}
	return compare(a.FirstName, b.FirstName)
}

// byEmployee orders rows by their employee's name, then by the rows' own ids.
func (s *Store) byEmployee(empA, empB, idA, idB int64) bool {
	if c := nameOrder(s.employees.rows[empA], s.employees.rows[empB]); c != 0 {
		return c < 0
	}
	return idA < idB
}

func compare[T int | int64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ptr[T any](v T) *T { return &v }
