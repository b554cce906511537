package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
)

// ErrArchiveNotFound is returned when an archive record doesn't exist
var ErrArchiveNotFound = errors.New("archive record not found")

// ErrAlreadyArchived is returned when creating an archive for an employee
// that already has one
var ErrAlreadyArchived = errors.New("employee already archived")

// ErrDuplicateDocType is returned when a create request carries two
// documents of the same type
var ErrDuplicateDocType = errors.New("duplicate document type")

// DocTypeExistsError is returned when a new document's type is already
// active on the archive
type DocTypeExistsError struct {
	Name string
}

func (e *DocTypeExistsError) Error() string {
	return fmt.Sprintf("document type %q already active on this archive", e.Name)
}

// UploadError wraps a DMS upload failure for a single document
type UploadError struct {
	DocTypeName string
	Err         error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q failed: %v", e.DocTypeName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Filter narrows the archive list query. PageSize 0 disables pagination
// and returns every matching row (the export path).
type Filter struct {
	Search     string
	Status     string
	FilterType string // has_warrant | no_warrant | expiring_soon_or_expired
	Page       int
	PageSize   int
}

// ArchivePayload is the employee_data form field of create and update
// requests. The field tags follow the front-end's key spelling.
type ArchivePayload struct {
	EmployeeID     int64   `json:"employee_id"`
	StatusID       *int64  `json:"status_id"`
	HireDate       *string `json:"hireDate"`
	JobTitle       *string `json:"jobTitle"`
	Nationality    *string `json:"nationality"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Manager        *string `json:"manager"`
	Department     *string `json:"department"`
	Section        *string `json:"section"`
	EmployeeNumber string  `json:"employeeNumber"`
	NameEN         string  `json:"name_en"`
}

// NewDocument is one uploaded file with its archive metadata.
// Expiry is YYYY-MM-DD or empty for none.
type NewDocument struct {
	File           io.Reader
	Filename       string
	DocTypeID      int64
	DocTypeName    string
	Expiry         string
	LegislationIDs []int64
}

// UpdatedDocument replaces the legislation set of an existing document
type UpdatedDocument struct {
	SystemID       int64   `json:"system_id"`
	LegislationIDs []int64 `json:"legislation_ids"`
}

// BulkEmployee is one parsed row of a bulk-import spreadsheet.
// HireDate is DD/MM/YYYY or empty for none.
type BulkEmployee struct {
	EmpNo       string
	NameAR      string
	NameEN      string
	HireDate    string
	Nationality string
	JobTitle    string
	Manager     string
	Phone       string
	Email       string
	StatusName  string
	Section     string
	Department  string
}

// BulkResult reports the outcome of a bulk archive import. A non-zero
// Failed count means the whole import was rolled back.
type BulkResult struct {
	Added  int
	Failed int
	Errors []string
}

// EmployeesStore abstracts archive record operations
type EmployeesStore interface {
	// DashboardCounts returns the four dashboard counters.
	DashboardCounts(ctx context.Context) (model.DashboardCounts, error)

	// List returns archive rows matching the filter plus the total match
	// count before pagination.
	List(ctx context.Context, filter Filter) ([]model.ArchivedEmployee, int, error)

	// Get retrieves one archive record with its active documents.
	// Returns ErrArchiveNotFound if no row matches.
	Get(ctx context.Context, archiveID int64) (*model.ArchiveDetails, error)

	// Create archives an employee and uploads the documents to the DMS
	// under the caller's session, all in one transaction. Any failure
	// rolls the whole transaction back.
	// Returns ErrAlreadyArchived, ErrDuplicateDocType or an *UploadError.
	Create(ctx context.Context, dst, dmsUser string, payload ArchivePayload, docs []NewDocument) error

	// Update modifies an archive record: master data, soft-deleted
	// documents, replaced legislation sets and newly uploaded documents,
	// all in one transaction.
	// Returns a *DocTypeExistsError or an *UploadError.
	Update(ctx context.Context, dst, dmsUser string, archiveID int64, payload ArchivePayload, newDocs []NewDocument, deletedIDs []int64, updatedDocs []UpdatedDocument) error

	// BulkArchive imports parsed spreadsheet rows all-or-nothing: any row
	// error rolls the whole import back and reports per-row errors.
	BulkArchive(ctx context.Context, rows []BulkEmployee) (BulkResult, error)
}
