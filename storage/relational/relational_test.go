package relational

import (
	"context"
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
	"github.com/warp/portal/storage/storagetest"
)

func newSQLite(t *testing.T, clock storage.Clock) storage.Storage {
	t.Helper()
	s, err := Open(":memory:", WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storagetest.Run(t, newSQLite)
}

func TestParityWithMemory(t *testing.T) {
	storagetest.RunParity(t,
		func(_ *testing.T, clock storage.Clock) storage.Storage {
			return memory.New(memory.WithClock(clock))
		},
		newSQLite,
	)
}

func TestEmpty(t *testing.T) {
	ctx := context.Background()
	clock := storage.FixedClock(storagetest.Now)
	s, err := Open(":memory:", WithClock(clock))
	require.NoError(t, err)
	defer s.Close()

	// GIVEN: a fresh database
	empty, err := s.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	// WHEN: it is seeded
	require.NoError(t, seed.Load(ctx, s, clock))

	// THEN: it is no longer empty
	empty, err = s.Empty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestOpen_FileDatabaseIsReopened(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/portal.db"
	clock := storage.FixedClock(storagetest.Now)

	// GIVEN: a seeded file database
	s, err := Open(path, WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, seed.Load(ctx, s, clock))
	require.NoError(t, s.Close())

	// WHEN: it is opened again
	s, err = Open(path, WithClock(clock))
	require.NoError(t, err)
	defer s.Close()

	// THEN: the schema migration is a no-op and the rows survive
	stats, err := s.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalEmployees)
}

func TestRebind(t *testing.T) {
	pg := dialectFor("postgres://localhost/portal")
	lite := dialectFor("./portal.db")

	q := "SELECT * FROM payroll WHERE year = ? AND month = ?"
	assert.Equal(t, "SELECT * FROM payroll WHERE year = $1 AND month = $2", pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
	assert.Equal(t, "postgres", pg.driver)
	assert.Equal(t, "sqlite3", lite.driver)
	assert.Equal(t, "postgres", dialectFor("postgresql://localhost/portal").driver)
}

func TestSchemaFragments(t *testing.T) {
	pg := dialectFor("postgres://localhost/portal").types.Replace(schema)
	lite := dialectFor(":memory:").types.Replace(schema)

	assert.Contains(t, pg, "BIGSERIAL PRIMARY KEY")
	assert.Contains(t, pg, "NUMERIC(14,2)")
	assert.Contains(t, lite, "INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.NotContains(t, pg, "{{")
	assert.NotContains(t, lite, "{{")
}

func TestSQLiteColumns(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"UNIQUE constraint failed: employees.email", "email"},
		{"UNIQUE constraint failed: payroll.employee_id, payroll.month, payroll.year", "employee_id,month,year"},
		{"something else", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteColumns(tt.msg), tt.msg)
	}
}

func TestClassify(t *testing.T) {
	unique := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	fk := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}
	other := errors.New("disk I/O error")

	assert.ErrorIs(t, classify("employee", unique), storage.ErrConflict)
	assert.ErrorIs(t, classify("employee", fk), storage.ErrValidation)

	err := classify("employee", other)
	assert.ErrorIs(t, err, other)
	assert.False(t, storage.IsClientError(err))
}
