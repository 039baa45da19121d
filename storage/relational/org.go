package relational

import (
	"context"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

// =============================================================================
// DEPARTMENTS
// =============================================================================

const departmentColumns = `id, name, description, manager_id, budget`

func scanDepartment(sc scanner) (model.Department, error) {
	var d model.Department
	err := sc.Scan(&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.Budget)
	return d, err
}

// ListDepartments counts employees with a LEFT JOIN so empty departments
// still appear, and resolves the manager through a second join.
func (s *Store) ListDepartments(ctx context.Context) ([]model.DepartmentView, error) {
	rows, err := s.query(ctx, `
		SELECT d.id, d.name, d.description, d.manager_id, d.budget,
		       m.first_name || ' ' || m.last_name,
		       COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id
		LEFT JOIN employees m ON m.id = d.manager_id
		GROUP BY d.id, d.name, d.description, d.manager_id, d.budget, m.first_name, m.last_name
		ORDER BY d.name, d.id`)
	return collect(rows, err, func(sc scanner) (model.DepartmentView, error) {
		var v model.DepartmentView
		err := sc.Scan(&v.ID, &v.Name, &v.Description, &v.ManagerID, &v.Budget, &v.ManagerName, &v.EmployeeCount)
		return v, err
	})
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	return s.getDepartment(ctx, id)
}

func (r runner) getDepartment(ctx context.Context, id int64) (*model.Department, error) {
	return one(r.queryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id), scanDepartment)
}

func (s *Store) CreateDepartment(ctx context.Context, d model.Department) (model.Department, error) {
	if err := storage.PrepareDepartment(&d); err != nil {
		return model.Department{}, err
	}
	err := s.inTx(ctx, func(r runner) error {
		if err := r.checkManager(ctx, d.ManagerID); err != nil {
			return err
		}
		id, err := r.insert(ctx, "department", `
			INSERT INTO departments (name, description, manager_id, budget)
			VALUES (?, ?, ?, ?)`,
			d.Name, d.Description, d.ManagerID, d.Budget,
		)
		d.ID = id
		return err
	})
	if err != nil {
		return model.Department{}, err
	}
	return d, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, p storage.DepartmentPatch) (model.Department, error) {
	var out model.Department
	err := s.inTx(ctx, func(r runner) error {
		d, err := r.getDepartment(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return storage.NotFound("department", id)
		}
		p.Apply(d)
		if err := storage.Validate("department", d); err != nil {
			return err
		}
		if err := r.checkManager(ctx, d.ManagerID); err != nil {
			return err
		}
		out = *d
		return r.update(ctx, "department", `
			UPDATE departments SET name = ?, description = ?, manager_id = ?, budget = ?
			WHERE id = ?`,
			d.Name, d.Description, d.ManagerID, d.Budget, id,
		)
	})
	if err != nil {
		return model.Department{}, err
	}
	return out, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	return s.remove(ctx, "department", "departments", id)
}

func (r runner) checkManager(ctx context.Context, managerID *int64) error {
	if managerID == nil {
		return nil
	}
	ok, err := r.exists(ctx, "employees", "id", *managerID)
	if err != nil {
		return err
	}
	if !ok {
		return storage.MissingParent("department", "managerId", *managerID)
	}
	return nil
}

// =============================================================================
// POSITIONS
// =============================================================================

const positionColumns = `id, title, description, department_id, salary_range, is_active`

func scanPosition(sc scanner) (model.Position, error) {
	var p model.Position
	err := sc.Scan(&p.ID, &p.Title, &p.Description, &p.DepartmentID, &p.SalaryRange, &p.IsActive)
	return p, err
}

func (s *Store) ListPositions(ctx context.Context) ([]model.Position, error) {
	rows, err := s.query(ctx, `SELECT `+positionColumns+` FROM positions ORDER BY id`)
	return collect(rows, err, scanPosition)
}

func (s *Store) GetPosition(ctx context.Context, id int64) (*model.Position, error) {
	return one(s.queryRow(ctx, `SELECT `+positionColumns+` FROM positions WHERE id = ?`, id), scanPosition)
}

func (s *Store) CreatePosition(ctx context.Context, p model.Position) (model.Position, error) {
	if err := storage.PreparePosition(&p); err != nil {
		return model.Position{}, err
	}
	id, err := s.insert(ctx, "position", `
		INSERT INTO positions (title, description, department_id, salary_range, is_active)
		VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.DepartmentID, p.SalaryRange, p.IsActive,
	)
	if err != nil {
		return model.Position{}, err
	}
	p.ID = id
	return p, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = `id, employee_id, first_name, last_name, email, phone, position_id, department_id,
	manager_id, hire_date, termination_date, salary, status`

// employeeFields are the scan targets for employeeColumns.
func employeeFields(e *model.Employee) []any {
	return []any{&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.PositionID,
		&e.DepartmentID, &e.ManagerID, &e.HireDate, &e.TerminationDate, &e.Salary, &e.Status}
}

func scanEmployee(sc scanner) (model.Employee, error) {
	var e model.Employee
	err := sc.Scan(employeeFields(&e)...)
	return e, err
}

// ListEmployees joins Employee -> Position -> Department. A missing position
// or department leaves the flat field null.
func (s *Store) ListEmployees(ctx context.Context) ([]model.EmployeeView, error) {
	rows, err := s.query(ctx, `
		SELECT e.id, e.employee_id, e.first_name, e.last_name, e.email, e.phone, e.position_id, e.department_id,
		       e.manager_id, e.hire_date, e.termination_date, e.salary, e.status,
		       p.title, d.name
		FROM employees e
		LEFT JOIN positions p ON p.id = e.position_id
		LEFT JOIN departments d ON d.id = e.department_id
		ORDER BY e.last_name, e.first_name, e.id`)
	return collect(rows, err, func(sc scanner) (model.EmployeeView, error) {
		var v model.EmployeeView
		err := sc.Scan(append(employeeFields(&v.Employee), &v.Position, &v.Department)...)
		return v, err
	})
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	return s.getEmployee(ctx, id)
}

func (r runner) getEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	return one(r.queryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id), scanEmployee)
}

func (s *Store) CreateEmployee(ctx context.Context, e model.Employee) (model.Employee, error) {
	if err := storage.PrepareEmployee(&e); err != nil {
		return model.Employee{}, err
	}
	id, err := s.insert(ctx, "employee", `
		INSERT INTO employees (employee_id, first_name, last_name, email, phone, position_id, department_id,
			manager_id, hire_date, termination_date, salary, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EmployeeID, e.FirstName, e.LastName, e.Email, e.Phone, e.PositionID, e.DepartmentID,
		e.ManagerID, e.HireDate, e.TerminationDate, e.Salary, e.Status,
	)
	if err != nil {
		return model.Employee{}, err
	}
	e.ID = id
	return e, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, p storage.EmployeePatch) (model.Employee, error) {
	var out model.Employee
	err := s.inTx(ctx, func(r runner) error {
		e, err := r.getEmployee(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return storage.NotFound("employee", id)
		}
		p.Apply(e)
		if err := storage.Validate("employee", e); err != nil {
			return err
		}
		out = *e
		return r.update(ctx, "employee", `
			UPDATE employees SET employee_id = ?, first_name = ?, last_name = ?, email = ?, phone = ?,
				position_id = ?, department_id = ?, manager_id = ?, hire_date = ?, termination_date = ?,
				salary = ?, status = ?
			WHERE id = ?`,
			e.EmployeeID, e.FirstName, e.LastName, e.Email, e.Phone,
			e.PositionID, e.DepartmentID, e.ManagerID, e.HireDate, e.TerminationDate,
			e.Salary, e.Status, id,
		)
	})
	if err != nil {
		return model.Employee{}, err
	}
	return out, nil
}

// DeleteEmployee refuses while a department names the employee as manager;
// every other reference is a foreign key.
func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(r runner) error {
		managing, err := r.exists(ctx, "departments", "manager_id", id)
		if err != nil {
			return err
		}
		if managing {
			return storage.InUse("employee", id, "departments")
		}
		return r.remove(ctx, "employee", "employees", id)
	})
}
