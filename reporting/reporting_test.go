package reporting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/portal/model"
	"github.com/warp/portal/reporting"
	"github.com/warp/portal/storage"
	"github.com/warp/portal/storage/memory"
)

func TestLeaveShares(t *testing.T) {
	tests := []struct {
		name   string
		counts []model.StatusCount
		want   []string // count:percent per pending, approved, rejected
	}{
		{
			name:   "no requests",
			counts: nil,
			want:   []string{"0:0", "0:0", "0:0"},
		},
		{
			name:   "missing statuses are zero",
			counts: []model.StatusCount{{Status: "approved", Count: 4}},
			want:   []string{"0:0", "4:100", "0:0"},
		},
		{
			name: "thirds round to two places",
			counts: []model.StatusCount{
				{Status: "approved", Count: 1},
				{Status: "pending", Count: 1},
				{Status: "rejected", Count: 1},
			},
			want: []string{"1:33.33", "1:33.33", "1:33.33"},
		},
		{
			name: "unknown statuses are ignored",
			counts: []model.StatusCount{
				{Status: "approved", Count: 2},
				{Status: "pending", Count: 2},
				{Status: "rejected", Count: 1},
				{Status: "withdrawn", Count: 5},
			},
			want: []string{"2:40", "2:40", "1:20"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporting.LeaveShares(tt.counts)
			require.Len(t, got, 3)
			assert.Equal(t, model.LeavePending, got[0].Status)
			assert.Equal(t, model.LeaveApproved, got[1].Status)
			assert.Equal(t, model.LeaveRejected, got[2].Status)
			for i, share := range got {
				assert.Equal(t, tt.want[i], decimal.NewFromInt(int64(share.Count)).String()+":"+share.Percent.String(), share.Status)
			}
		})
	}
}

func TestDashboard_Seeded(t *testing.T) {
	// GIVEN: the sample organization
	ctx := context.Background()
	store, err := memory.Seeded(ctx)
	require.NoError(t, err)

	// WHEN: the dashboard is built
	d, err := reporting.New(store).Dashboard(ctx)
	require.NoError(t, err)

	// THEN: all three sections are filled
	assert.Equal(t, 7, d.Stats.TotalEmployees)
	assert.Equal(t, 2, d.Stats.OpenJobPostings)
	assert.Len(t, d.Departments, 5)
	require.Len(t, d.Leave, 3)
	assert.Equal(t, 2, d.Leave[0].Count)
	assert.True(t, d.Leave[0].Percent.Equal(decimal.NewFromInt(40)), d.Leave[0].Percent.String())
}

// failingStats fails one aggregate read.
type failingStats struct {
	storage.StatsStore
	err error
}

func (f failingStats) DepartmentHeadcounts(ctx context.Context) ([]model.DepartmentHeadcount, error) {
	return nil, f.err
}

func TestDashboard_PropagatesFailure(t *testing.T) {
	ctx := context.Background()
	store, err := memory.Seeded(ctx)
	require.NoError(t, err)
	boom := errors.New("connection reset")

	_, err = reporting.New(failingStats{StatsStore: store, err: boom}).Dashboard(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "department headcounts")
}
