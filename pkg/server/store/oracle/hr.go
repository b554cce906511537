package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Ensure HREmployeesStore implements store.HREmployeesStore
var _ store.HREmployeesStore = (*HREmployeesStore)(nil)

// HREmployeesStore implements store.HREmployeesStore against the shared
// Oracle schema
type HREmployeesStore struct {
	db *sql.DB
}

// NewHREmployeesStore creates a new HREmployeesStore
func NewHREmployeesStore(db *sql.DB) *HREmployeesStore {
	return &HREmployeesStore{db: db}
}

// List returns one page of unarchived employees matching the search, plus
// the total match count.
func (s *HREmployeesStore) List(ctx context.Context, search string, page int) ([]model.HREmployee, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * store.HRPageSize

	baseQuery := `FROM lkp_hr_employees hr WHERE hr.SYSTEM_ID NOT IN (SELECT EMPLOYEE_ID FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID IS NOT NULL)`
	var (
		searchClause string
		args         []interface{}
	)
	if search != "" {
		like := "%" + strings.ToUpper(search) + "%"
		searchClause = ` AND (UPPER(TRIM(hr.FULLNAME_EN)) LIKE :1 OR UPPER(TRIM(hr.FULLNAME_AR)) LIKE :2 OR TRIM(hr.EMPNO) LIKE :3)`
		args = append(args, like, like, like)
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(hr.SYSTEM_ID) `+baseQuery+searchClause, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count hr employees: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT SYSTEM_ID, TRIM(FULLNAME_EN) as FULLNAME_EN, TRIM(FULLNAME_AR) as FULLNAME_AR, TRIM(EMPNO) as EMPNO %s%s ORDER BY hr.FULLNAME_EN OFFSET :%d ROWS FETCH NEXT :%d ROWS ONLY`,
		baseQuery, searchClause, len(args)+1, len(args)+2,
	)
	args = append(args, offset, store.HRPageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query hr employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.HREmployee, 0)
	for rows.Next() {
		var emp model.HREmployee
		if err := rows.Scan(&emp.SystemID, &emp.FullNameEN, &emp.FullNameAR, &emp.EmpNo); err != nil {
			return nil, 0, fmt.Errorf("scan hr employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, total, rows.Err()
}

// Get retrieves one employee's master data record.
func (s *HREmployeesStore) Get(ctx context.Context, employeeID int64) (*model.HREmployeeDetails, error) {
	var details model.HREmployeeDetails
	err := s.db.QueryRowContext(ctx,
		`SELECT SYSTEM_ID, TRIM(FULLNAME_EN) as FULLNAME_EN, TRIM(FULLNAME_AR) as FULLNAME_AR, TRIM(EMPNO) as EMPNO, TRIM(DEPARTEMENT) as DEPARTMENT, TRIM(SECTION) as SECTION, TRIM(EMAIL) as EMAIL, TRIM(MOBILE) as MOBILE, TRIM(SUPERVISORNAME) as SUPERVISORNAME, TRIM(NATIONALITY) as NATIONALITY, TRIM(JOB_NAME) as JOB_NAME FROM lkp_hr_employees WHERE SYSTEM_ID = :1`,
		employeeID,
	).Scan(
		&details.SystemID,
		&details.FullNameEN,
		&details.FullNameAR,
		&details.EmpNo,
		&details.Department,
		&details.Section,
		&details.Email,
		&details.Mobile,
		&details.SupervisorName,
		&details.Nationality,
		&details.JobName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHREmployeeNotFound
		}
		return nil, fmt.Errorf("query hr employee details: %w", err)
	}
	return &details, nil
}
