package store

import (
	"context"
	"errors"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
)

// ErrHREmployeeNotFound is returned when an HR master record doesn't exist
var ErrHREmployeeNotFound = errors.New("hr employee not found")

// HRPageSize is the fixed page size of the HR picker list
const HRPageSize = 10

// HREmployeesStore abstracts read access to the HR master data. Only
// employees without an archive record are listed; the archive flow writes
// back through EmployeesStore.
type HREmployeesStore interface {
	// List returns one page of unarchived employees matching the search,
	// plus the total match count.
	List(ctx context.Context, search string, page int) ([]model.HREmployee, int, error)

	// Get retrieves one employee's master data record.
	// Returns ErrHREmployeeNotFound if no row matches.
	Get(ctx context.Context, employeeID int64) (*model.HREmployeeDetails, error)
}
