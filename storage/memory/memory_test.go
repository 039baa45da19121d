package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
	"github.com/warp/portal/storage/storagetest"
)

func newStore(_ *testing.T, clock storage.Clock) storage.Storage {
	return memory.New(memory.WithClock(clock))
}

func TestContract(t *testing.T) {
	storagetest.Run(t, newStore)
}

func TestSeeded(t *testing.T) {
	// GIVEN: a seeded store
	s, err := memory.Seeded(context.Background(), memory.WithClock(storage.FixedClock(storagetest.Now)))
	require.NoError(t, err)

	// THEN: both families are populated
	surahs, err := s.ListSurahs(context.Background())
	require.NoError(t, err)
	assert.Len(t, surahs, 5)

	stats, err := s.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalEmployees)
}

func TestSeeded_StoresAreIndependent(t *testing.T) {
	ctx := context.Background()
	a, err := memory.Seeded(ctx)
	require.NoError(t, err)
	b, err := memory.Seeded(ctx)
	require.NoError(t, err)

	// WHEN: a discussion is deleted from one store
	feed, err := a.ListRecentDiscussions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.NoError(t, a.DeleteDiscussion(ctx, feed[0].ID))

	// THEN: the other still has it
	got, err := b.GetDiscussion(ctx, feed[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	topic, err := s.CreateTopic(ctx, model.Topic{Name: "Fiqh"})
	require.NoError(t, err)
	user, err := s.CreateUser(ctx, model.User{Username: "u", Password: "p", Email: "u@example.com"})
	require.NoError(t, err)

	first, err := s.CreateDiscussion(ctx, model.Discussion{TopicID: topic.ID, UserID: user.ID, Title: "a", Content: "a"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteDiscussion(ctx, first.ID))

	second, err := s.CreateDiscussion(ctx, model.Discussion{TopicID: topic.ID, UserID: user.ID, Title: "b", Content: "b"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestReturnedRowsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	dept, err := s.CreateDepartment(ctx, model.Department{Name: "Legal", Description: ptr("Contracts")})
	require.NoError(t, err)

	// WHEN: the caller mutates what it got back
	got, err := s.GetDepartment(ctx, dept.ID)
	require.NoError(t, err)
	got.Name = "Changed"

	// THEN: the stored row is unchanged
	again, err := s.GetDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Legal", again.Name)
}

func TestPointerFieldsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	s, err := memory.Seeded(ctx)
	require.NoError(t, err)

	// GIVEN: an employee in Engineering (department 1)
	got, err := s.GetEmployee(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got.DepartmentID)
	require.Equal(t, int64(1), *got.DepartmentID)

	// WHEN: the caller writes through pointer fields of what it read
	*got.DepartmentID = 999
	list, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	for i := range list {
		if list[i].DepartmentID != nil {
			*list[i].DepartmentID = 999
		}
	}

	// THEN: the store still points at the real department
	again, err := s.GetEmployee(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, again.DepartmentID)
	assert.Equal(t, int64(1), *again.DepartmentID)

	heads, err := s.DepartmentHeadcounts(ctx)
	require.NoError(t, err)
	total := 0
	for _, h := range heads {
		total += h.Employees
	}
	assert.Equal(t, 7, total)
}

func TestCreatedRowsDoNotAliasInput(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	// GIVEN: a department created from a caller-owned description
	desc := "Contracts"
	dept, err := s.CreateDepartment(ctx, model.Department{Name: "Legal", Description: &desc})
	require.NoError(t, err)

	// WHEN: the caller reuses its variable
	desc = "Changed"

	// THEN: the stored row kept the original text
	got, err := s.GetDepartment(ctx, dept.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Contracts", *got.Description)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	dept, err := s.CreateDepartment(ctx, model.Department{Name: "Engineering"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreatePosition(ctx, model.Position{Title: "Engineer", DepartmentID: dept.ID})
		}()
	}
	wg.Wait()

	positions, err := s.ListPositions(ctx)
	require.NoError(t, err)
	assert.Len(t, positions, 20)
	for i, p := range positions {
		assert.Equal(t, int64(i+1), p.ID)
	}
}

func ptr[T any](v T) *T { return &v }
