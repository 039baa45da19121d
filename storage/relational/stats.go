package relational

import (
	"context"

	"github.com/warp/portal/model"
)

// =============================================================================
// AGGREGATES
// =============================================================================

func (s *Store) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var (
		st  model.DashboardStats
		err error
	)
	if st.TotalEmployees, err = s.count(ctx, `SELECT COUNT(*) FROM employees`); err != nil {
		return model.DashboardStats{}, err
	}
	if st.ActiveEmployees, err = s.count(ctx, `SELECT COUNT(*) FROM employees WHERE status = ?`, model.EmployeeActive); err != nil {
		return model.DashboardStats{}, err
	}
	if st.TotalDepartments, err = s.count(ctx, `SELECT COUNT(*) FROM departments`); err != nil {
		return model.DashboardStats{}, err
	}
	if st.OpenJobPostings, err = s.count(ctx, `SELECT COUNT(*) FROM job_postings WHERE status = ?`, model.JobOpen); err != nil {
		return model.DashboardStats{}, err
	}
	return st, nil
}

func (s *Store) DepartmentHeadcounts(ctx context.Context) ([]model.DepartmentHeadcount, error) {
	rows, err := s.query(ctx, `
		SELECT d.id, d.name, COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		GROUP BY d.id, d.name
		ORDER BY d.name, d.id`)
	return collect(rows, err, func(sc scanner) (model.DepartmentHeadcount, error) {
		var h model.DepartmentHeadcount
		err := sc.Scan(&h.DepartmentID, &h.Name, &h.Employees)
		return h, err
	})
}

func (s *Store) LeaveStatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	rows, err := s.query(ctx, `
		SELECT status, COUNT(*)
		FROM leave_requests
		GROUP BY status
		ORDER BY status`)
	return collect(rows, err, func(sc scanner) (model.StatusCount, error) {
		var c model.StatusCount
		err := sc.Scan(&c.Status, &c.Count)
		return c, err
	})
}
