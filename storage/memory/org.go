package memory

import (
	"context"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// DEPARTMENTS
// =============================================================================

func (s *Store) ListDepartments(_ context.Context) ([]model.DepartmentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int)
	for _, e := range s.employees.rows {
		if e.DepartmentID != nil {
			counts[*e.DepartmentID]++
		}
	}

	depts := s.departments.sorted(byDepartmentName)
	out := make([]model.DepartmentView, 0, len(depts))
	for _, d := range depts {
		view := model.DepartmentView{Department: d, EmployeeCount: counts[d.ID]}
		if d.ManagerID != nil {
			if m, ok := s.employees.rows[*d.ManagerID]; ok {
				view.ManagerName = ptr(m.FullName())
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func byDepartmentName(a, b model.Department) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (s *Store) GetDepartment(_ context.Context, id int64) (*model.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.departments.get(id), nil
}

func (s *Store) CreateDepartment(_ context.Context, d model.Department) (model.Department, error) {
	if err := storage.PrepareDepartment(&d); err != nil {
		return model.Department{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDepartmentRefs(d); err != nil {
		return model.Department{}, err
	}
	d.ID = s.departments.nextID()
	s.departments.put(d.ID, d)
	return d, nil
}

func (s *Store) UpdateDepartment(_ context.Context, id int64, p storage.DepartmentPatch) (model.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departments.rows[id]
	if !ok {
		return model.Department{}, storage.NotFound("department", id)
	}
	p.Apply(&d)
	if err := storage.Validate("department", d); err != nil {
		return model.Department{}, err
	}
	if err := s.checkDepartmentRefs(d); err != nil {
		return model.Department{}, err
	}
	s.departments.put(id, d)
	return d, nil
}

func (s *Store) DeleteDepartment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.departments.has(id) {
		return storage.NotFound("department", id)
	}
	switch {
	case s.positions.any(func(p model.Position) bool { return p.DepartmentID == id }):
		return storage.InUse("department", id, "positions")
	case s.employees.any(func(e model.Employee) bool { return e.DepartmentID != nil && *e.DepartmentID == id }):
		return storage.InUse("department", id, "employees")
	case s.jobPostings.any(func(j model.JobPosting) bool { return j.DepartmentID == id }):
		return storage.InUse("department", id, "job postings")
	}
	delete(s.departments.rows, id)
	return nil
}

func (s *Store) checkDepartmentRefs(d model.Department) error {
	if d.ManagerID != nil && !s.employees.has(*d.ManagerID) {
		return storage.MissingParent("department", "managerId", *d.ManagerID)
	}
	return nil
}

// =============================================================================
// POSITIONS
// =============================================================================

func (s *Store) ListPositions(_ context.Context) ([]model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions.sorted(func(a, b model.Position) bool { return a.ID < b.ID }), nil
}

func (s *Store) GetPosition(_ context.Context, id int64) (*model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions.get(id), nil
}

func (s *Store) CreatePosition(_ context.Context, p model.Position) (model.Position, error) {
	if err := storage.PreparePosition(&p); err != nil {
		return model.Position{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.departments.has(p.DepartmentID) {
		return model.Position{}, storage.MissingParent("position", "departmentId", p.DepartmentID)
	}
	p.ID = s.positions.nextID()
	s.positions.put(p.ID, p)
	return p, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) ListEmployees(_ context.Context) ([]model.EmployeeView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emps := s.employees.sorted(func(a, b model.Employee) bool {
		if c := nameOrder(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	out := make([]model.EmployeeView, 0, len(emps))
	for _, e := range emps {
		view := model.EmployeeView{Employee: e}
		if e.PositionID != nil {
			if p, ok := s.positions.rows[*e.PositionID]; ok {
				view.Position = ptr(p.Title)
			}
		}
		if e.DepartmentID != nil {
			if d, ok := s.departments.rows[*e.DepartmentID]; ok {
				view.Department = ptr(d.Name)
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *Store) GetEmployee(_ context.Context, id int64) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.employees.get(id), nil
}

func (s *Store) CreateEmployee(_ context.Context, e model.Employee) (model.Employee, error) {
	if err := storage.PrepareEmployee(&e); err != nil {
		return model.Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEmployee(e); err != nil {
		return model.Employee{}, err
	}
	e.ID = s.employees.nextID()
	s.employees.put(e.ID, e)
	s.badgeNumbers[e.EmployeeID] = e.ID
	s.employeeEmails[e.Email] = e.ID
	return e, nil
}

func (s *Store) UpdateEmployee(_ context.Context, id int64, p storage.EmployeePatch) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.employees.rows[id]
	if !ok {
		return model.Employee{}, storage.NotFound("employee", id)
	}
	e := old
	p.Apply(&e)
	if err := storage.Validate("employee", e); err != nil {
		return model.Employee{}, err
	}
	if err := s.checkEmployee(e); err != nil {
		return model.Employee{}, err
	}

	delete(s.badgeNumbers, old.EmployeeID)
	delete(s.employeeEmails, old.Email)
	s.employees.put(id, e)
	s.badgeNumbers[e.EmployeeID] = id
	s.employeeEmails[e.Email] = id
	return e, nil
}

// checkEmployee verifies parent references and unique keys. e.ID is zero
// for a new employee.
func (s *Store) checkEmployee(e model.Employee) error {
	if e.PositionID != nil && !s.positions.has(*e.PositionID) {
		return storage.MissingParent("employee", "positionId", *e.PositionID)
	}
	if e.DepartmentID != nil && !s.departments.has(*e.DepartmentID) {
		return storage.MissingParent("employee", "departmentId", *e.DepartmentID)
	}
	if e.ManagerID != nil && !s.employees.has(*e.ManagerID) {
		return storage.MissingParent("employee", "managerId", *e.ManagerID)
	}
	if id, taken := s.badgeNumbers[e.EmployeeID]; taken && id != e.ID {
		return storage.Conflict("employee", "employeeId")
	}
	if id, taken := s.employeeEmails[e.Email]; taken && id != e.ID {
		return storage.Conflict("employee", "email")
	}
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees.rows[id]
	if !ok {
		return storage.NotFound("employee", id)
	}
	if ref := s.employeeReferrer(id); ref != "" {
		return storage.InUse("employee", id, ref)
	}
	delete(s.employees.rows, id)
	delete(s.badgeNumbers, e.EmployeeID)
	delete(s.employeeEmails, e.Email)
	return nil
}

// employeeReferrer names the first kind of row still pointing at the
// employee, or returns "".
func (s *Store) employeeReferrer(id int64) string {
	refs := []struct {
		name  string
		found bool
	}{
		{"employees", s.employees.any(func(e model.Employee) bool { return e.ID != id && e.ManagerID != nil && *e.ManagerID == id })},
		{"departments", s.departments.any(func(d model.Department) bool { return d.ManagerID != nil && *d.ManagerID == id })},
		{"attendance", s.attendance.any(func(a model.Attendance) bool { return a.EmployeeID == id })},
		{"leave requests", s.leaveRequests.any(func(r model.LeaveRequest) bool {
			return r.EmployeeID == id || (r.ApprovedBy != nil && *r.ApprovedBy == id)
		})},
		{"payroll", s.payroll.any(func(p model.Payroll) bool { return p.EmployeeID == id })},
		{"performance reviews", s.reviews.any(func(r model.PerformanceReview) bool {
			return r.EmployeeID == id || r.ReviewerID == id
		})},
		{"employee training", s.employeeTrainings.any(func(t model.EmployeeTraining) bool { return t.EmployeeID == id })},
	}
	for _, r := range refs {
		if r.found {
			return r.name
		}
	}
	return ""
}
