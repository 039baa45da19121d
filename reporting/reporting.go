/*
Package reporting assembles the HR dashboard from the storage aggregates.

PURPOSE:
  The storage layer answers three independent aggregate reads (counts,
  headcount per department, leave requests per status). Service runs them
  concurrently and turns the leave counts into shares of the total, which
  is what the dashboard chart draws.

CONSISTENCY:
  The reads are not a snapshot. Each number is correct on its own; under
  concurrent writes the three may describe slightly different moments.

SEE ALSO:
  - ../storage: StatsStore
  - ../api:     GET /api/dashboard
*/
package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// Dashboard is the full reporting view.
type Dashboard struct {
	Stats       model.DashboardStats        `json:"stats"`
	Departments []model.DepartmentHeadcount `json:"departments"`
	Leave       []LeaveShare                `json:"leave"`
}

// LeaveShare is one slice of the leave status chart.
type LeaveShare struct {
	Status  model.LeaveStatus `json:"status"`
	Count   int               `json:"count"`
	Percent decimal.Decimal   `json:"percent"`
}

type Service struct {
	stats storage.StatsStore
}

func New(stats storage.StatsStore) *Service {
	return &Service{stats: stats}
}

// Dashboard runs the aggregate reads concurrently. The first failure
// cancels the others and is returned.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		out       Dashboard
		breakdown []model.StatusCount
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.stats.DashboardStats(ctx)
		if err != nil {
			return fmt.Errorf("dashboard stats: %w", err)
		}
		out.Stats = stats
		return nil
	})
	g.Go(func() error {
		heads, err := s.stats.DepartmentHeadcounts(ctx)
		if err != nil {
			return fmt.Errorf("department headcounts: %w", err)
		}
		out.Departments = heads
		return nil
	})
	g.Go(func() error {
		counts, err := s.stats.LeaveStatusBreakdown(ctx)
		if err != nil {
			return fmt.Errorf("leave breakdown: %w", err)
		}
		breakdown = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	out.Leave = LeaveShares(breakdown)
	return out, nil
}

var hundred = decimal.NewFromInt(100)

// LeaveShares lists every leave status in display order with its count and
// its percentage of all requests, rounded to two places. Statuses missing
// from counts are reported as zero; unknown statuses are ignored.
func LeaveShares(counts []model.StatusCount) []LeaveShare {
	byStatus := make(map[model.LeaveStatus]int, len(counts))
	total := 0
	for _, c := range counts {
		byStatus[model.LeaveStatus(c.Status)] += c.Count
	}
	for _, status := range model.LeaveStatuses {
		total += byStatus[status]
	}

	out := make([]LeaveShare, 0, len(model.LeaveStatuses))
	for _, status := range model.LeaveStatuses {
		n := byStatus[status]
		share := LeaveShare{Status: status, Count: n, Percent: decimal.Zero}
		if total > 0 {
			share.Percent = decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
		}
		out = append(out, share)
	}
	return out
}
