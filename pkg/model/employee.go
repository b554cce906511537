package model

// Warrant and card status literals. The Arabic/English pairs are data the
// front-end matches on, not translations; they must stay byte-exact.
const (
	WarrantActive  = "فعالة / Active"
	WarrantExpired = "منتهية / Expired"
	WarrantPresent = "توجد / Yes"
	WarrantAbsent  = "لا توجد / No"

	CardPresent = "توجد / Yes"
	CardAbsent  = "لا توجد / No"

	CardClassExpired      = "expired"
	CardClassExpiringSoon = "expiring-soon"
	CardClassValid        = "valid"

	NoExpiry = "N/A"
)

// ArchivedEmployee is one row of the archive list. The warrant and card
// columns are computed from the employee's documents, not stored.
type ArchivedEmployee struct {
	SystemID        int64   `json:"system_id"`
	FullNameEN      *string `json:"fullname_en"`
	FullNameAR      *string `json:"fullname_ar"`
	EmpNo           *string `json:"empno"`
	Department      *string `json:"department"`
	Section         *string `json:"section"`
	StatusEN        *string `json:"status_en"`
	StatusAR        *string `json:"status_ar"`
	WarrantStatus   string  `json:"warrant_status"`
	CardStatus      string  `json:"card_status"`
	CardExpiry      string  `json:"card_expiry"`
	CardStatusClass string  `json:"card_status_class"`
}

// ArchiveDetails is a single archived employee with the nested documents
// the edit form works on. HireDate is formatted YYYY-MM-DD.
type ArchiveDetails struct {
	ArchiveID      int64      `json:"archive_id"`
	EmployeeID     int64      `json:"employee_id"`
	StatusID       *int64     `json:"status_id"`
	HireDate       *string    `json:"hire_date"`
	FullNameEN     *string    `json:"fullname_en"`
	FullNameAR     *string    `json:"fullname_ar"`
	EmpNo          *string    `json:"empno"`
	Department     *string    `json:"department"`
	Section        *string    `json:"section"`
	Email          *string    `json:"email"`
	Mobile         *string    `json:"mobile"`
	SupervisorName *string    `json:"supervisorname"`
	Nationality    *string    `json:"nationality"`
	JobName        *string    `json:"job_name"`
	Documents      []Document `json:"documents"`
}

// DashboardCounts holds the four counters of the dashboard page.
type DashboardCounts struct {
	TotalEmployees    int64 `json:"total_employees"`
	ActiveEmployees   int64 `json:"active_employees"`
	InactiveEmployees int64 `json:"inactive_employees"`
	ExpiringSoon      int64 `json:"expiring_soon"`
}
