package memory

import (
	"context"
	"sort"

	"github.com/warp/portal/model"
)

// =============================================================================
// AGGREGATES
// =============================================================================

func (s *Store) DashboardStats(_ context.Context) (model.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.DashboardStats{
		TotalEmployees:   s.employees.count(nil),
		ActiveEmployees:  s.employees.count(func(e model.Employee) bool { return e.Status == model.EmployeeActive }),
		TotalDepartments: s.departments.count(nil),
		OpenJobPostings:  s.jobPostings.count(func(j model.JobPosting) bool { return j.Status == model.JobOpen }),
	}, nil
}

func (s *Store) DepartmentHeadcounts(_ context.Context) ([]model.DepartmentHeadcount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int)
	for _, e := range s.employees.rows {
		if e.DepartmentID != nil {
			counts[*e.DepartmentID]++
		}
	}
	depts := s.departments.sorted(byDepartmentName)
	out := make([]model.DepartmentHeadcount, 0, len(depts))
	for _, d := range depts {
		out = append(out, model.DepartmentHeadcount{DepartmentID: d.ID, Name: d.Name, Employees: counts[d.ID]})
	}
	return out, nil
}

func (s *Store) LeaveStatusBreakdown(_ context.Context) ([]model.StatusCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range s.leaveRequests.rows {
		counts[string(r.Status)]++
	}
	out := make([]model.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, model.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}
