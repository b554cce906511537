package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Ensure EmployeesStore implements store.EmployeesStore
var _ store.EmployeesStore = (*EmployeesStore)(nil)

// Judicial-card and warrant-decision documents are matched by type name in
// both languages. The Arabic literals are data the schema depends on.
const (
	judicialCardExists = `SELECT 1
		FROM LKP_PTA_EMP_DOCS doc
		JOIN LKP_PTA_DOC_TYPES dt ON doc.DOC_TYPE_ID = dt.SYSTEM_ID
		WHERE doc.PTA_EMP_ARCH_ID = arch.SYSTEM_ID
		  AND (TRIM(dt.NAME) LIKE '%Judicial Card%' OR TRIM(dt.NAME) LIKE '%بطاقة الضبطية%')
		  AND doc.DISABLED = '0'`

	warrantExpiryQuery = `SELECT doc.EXPIRY
		FROM LKP_PTA_EMP_DOCS doc
		JOIN LKP_PTA_DOC_TYPES dt ON doc.DOC_TYPE_ID = dt.SYSTEM_ID
		WHERE doc.PTA_EMP_ARCH_ID = :1
		  AND (TRIM(dt.NAME) LIKE '%Warrant Decisions%' OR TRIM(dt.NAME) LIKE '%القرارات الخاصة بالضبطية%')
		  AND doc.DISABLED = '0'
		ORDER BY doc.EXPIRY DESC
		FETCH FIRST 1 ROWS ONLY`

	judicialCardExpiryQuery = `SELECT doc.EXPIRY
		FROM LKP_PTA_EMP_DOCS doc
		JOIN LKP_PTA_DOC_TYPES dt ON doc.DOC_TYPE_ID = dt.SYSTEM_ID
		WHERE doc.PTA_EMP_ARCH_ID = :1
		  AND (TRIM(dt.NAME) LIKE '%Judicial Card%' OR TRIM(dt.NAME) LIKE '%بطاقة الضبطية%')
		  AND doc.DISABLED = '0'
		ORDER BY doc.EXPIRY DESC
		FETCH FIRST 1 ROWS ONLY`
)

var docTypeSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// EmployeesStore implements store.EmployeesStore against the shared Oracle
// schema. Document uploads go through the DMS inside the same transaction
// as the metadata inserts.
type EmployeesStore struct {
	db  *sql.DB
	dms dms.Service
}

// NewEmployeesStore creates a new EmployeesStore
func NewEmployeesStore(db *sql.DB, dmsService dms.Service) *EmployeesStore {
	return &EmployeesStore{db: db, dms: dmsService}
}

// DashboardCounts returns the four dashboard counters.
func (s *EmployeesStore) DashboardCounts(ctx context.Context) (model.DashboardCounts, error) {
	var counts model.DashboardCounts

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM LKP_PTA_EMP_ARCH`).Scan(&counts.TotalEmployees)
	if err != nil {
		return counts, fmt.Errorf("count total employees: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT arch.SYSTEM_ID)
		FROM LKP_PTA_EMP_ARCH arch
		JOIN LKP_PTA_EMP_STATUS stat ON arch.STATUS_ID = stat.SYSTEM_ID
		WHERE TRIM(stat.NAME_ENGLISH) = 'Active'
		  AND EXISTS (`+judicialCardExists+`)`).Scan(&counts.ActiveEmployees)
	if err != nil {
		return counts, fmt.Errorf("count active employees: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*)
		FROM LKP_PTA_EMP_ARCH arch
		JOIN LKP_PTA_EMP_STATUS stat ON arch.STATUS_ID = stat.SYSTEM_ID
		WHERE TRIM(stat.NAME_ENGLISH) = 'Inactive'`).Scan(&counts.InactiveEmployees)
	if err != nil {
		return counts, fmt.Errorf("count inactive employees: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT arch.SYSTEM_ID)
		FROM LKP_PTA_EMP_ARCH arch
		JOIN LKP_PTA_EMP_DOCS doc ON arch.SYSTEM_ID = doc.PTA_EMP_ARCH_ID
		JOIN LKP_PTA_DOC_TYPES dt ON doc.DOC_TYPE_ID = dt.SYSTEM_ID
		WHERE doc.DISABLED = '0'
		  AND (TRIM(dt.NAME) LIKE '%Judicial Card%' OR TRIM(dt.NAME) LIKE '%بطاقة الضبطية%')
		  AND doc.EXPIRY IS NOT NULL
		  AND doc.EXPIRY < (SYSDATE + 30)`).Scan(&counts.ExpiringSoon)
	if err != nil {
		return counts, fmt.Errorf("count expiring employees: %w", err)
	}

	return counts, nil
}

// List returns archive rows matching the filter plus the total match count
// before pagination. The warrant and card columns come from one follow-up
// query pair per row; the front-end table depends on them and the archive
// stays small enough for that to hold up.
func (s *EmployeesStore) List(ctx context.Context, filter store.Filter) ([]model.ArchivedEmployee, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	baseQuery := `FROM LKP_PTA_EMP_ARCH arch
		JOIN lkp_hr_employees hr ON arch.EMPLOYEE_ID = hr.SYSTEM_ID
		LEFT JOIN LKP_PTA_EMP_STATUS stat ON arch.STATUS_ID = stat.SYSTEM_ID`

	var (
		clauses []string
		args    []interface{}
	)
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf(":%d", len(args))
	}

	if filter.Search != "" {
		like := "%" + strings.ToUpper(filter.Search) + "%"
		clauses = append(clauses, fmt.Sprintf(
			"(UPPER(TRIM(hr.FULLNAME_EN)) LIKE %s OR UPPER(TRIM(hr.FULLNAME_AR)) LIKE %s OR TRIM(hr.EMPNO) LIKE %s)",
			bind(like), bind(like), bind(like),
		))
	}
	if filter.Status != "" {
		clauses = append(clauses, "TRIM(stat.NAME_ENGLISH) = "+bind(filter.Status))
	}

	switch filter.FilterType {
	case "has_warrant":
		clauses = append(clauses, "EXISTS ("+judicialCardExists+")")
	case "no_warrant":
		clauses = append(clauses, "NOT EXISTS ("+judicialCardExists+")")
	case "expiring_soon_or_expired":
		clauses = append(clauses, "EXISTS ("+judicialCardExists+`
		  AND doc.EXPIRY IS NOT NULL
		  AND doc.EXPIRY < (SYSDATE + 30))`)
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT arch.SYSTEM_ID) `+baseQuery+whereClause, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count archived employees: %w", err)
	}

	fetchQuery := `SELECT DISTINCT arch.SYSTEM_ID, TRIM(hr.FULLNAME_EN) as FULLNAME_EN, TRIM(hr.FULLNAME_AR) as FULLNAME_AR, TRIM(hr.EMPNO) as EMPNO, TRIM(hr.DEPARTEMENT) as DEPARTMENT, TRIM(hr.SECTION) as SECTION,
		TRIM(stat.NAME_ENGLISH) as STATUS_EN, TRIM(stat.NAME_ARABIC) as STATUS_AR ` +
		baseQuery + whereClause + ` ORDER BY arch.SYSTEM_ID DESC`
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		fetchQuery += fmt.Sprintf(" OFFSET %s ROWS FETCH NEXT %s ROWS ONLY", bind(offset), bind(filter.PageSize))
	}

	rows, err := s.db.QueryContext(ctx, fetchQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query archived employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.ArchivedEmployee, 0)
	for rows.Next() {
		var emp model.ArchivedEmployee
		err := rows.Scan(
			&emp.SystemID,
			&emp.FullNameEN,
			&emp.FullNameAR,
			&emp.EmpNo,
			&emp.Department,
			&emp.Section,
			&emp.StatusEN,
			&emp.StatusAR,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan archived employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	now := time.Now()
	for i := range employees {
		warrantExpiry, warrantFound, err := s.latestExpiry(ctx, warrantExpiryQuery, employees[i].SystemID)
		if err != nil {
			return nil, 0, fmt.Errorf("query warrant expiry: %w", err)
		}
		employees[i].WarrantStatus = classifyWarrant(warrantFound, warrantExpiry, now)

		cardExpiry, cardFound, err := s.latestExpiry(ctx, judicialCardExpiryQuery, employees[i].SystemID)
		if err != nil {
			return nil, 0, fmt.Errorf("query card expiry: %w", err)
		}
		employees[i].CardStatus, employees[i].CardExpiry, employees[i].CardStatusClass = classifyCard(cardFound, cardExpiry, now)
	}

	return employees, total, nil
}

// latestExpiry returns the newest matching document's expiry for an
// archive, reporting whether such a document exists at all.
func (s *EmployeesStore) latestExpiry(ctx context.Context, query string, archiveID int64) (sql.NullTime, bool, error) {
	var expiry sql.NullTime
	err := s.db.QueryRowContext(ctx, query, archiveID).Scan(&expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return expiry, false, nil
	}
	if err != nil {
		return expiry, false, err
	}
	return expiry, true, nil
}

// classifyWarrant maps the newest warrant decision's expiry to the status
// literal the front-end matches on. The comparison is at date granularity:
// a warrant stays active through its expiry day.
func classifyWarrant(found bool, expiry sql.NullTime, now time.Time) string {
	if !found {
		return model.WarrantAbsent
	}
	if !expiry.Valid {
		return model.WarrantPresent
	}
	if !dateOnly(expiry.Time).Before(dateOnly(now)) {
		return model.WarrantActive
	}
	return model.WarrantExpired
}

// classifyCard maps the newest judicial card's expiry to the status
// literal, display date and CSS class of the list row.
func classifyCard(found bool, expiry sql.NullTime, now time.Time) (status, expiryStr, class string) {
	if !found {
		return model.CardAbsent, model.NoExpiry, ""
	}
	if !expiry.Valid {
		return model.CardPresent, model.NoExpiry, model.CardClassValid
	}
	expiryStr = expiry.Time.Format("2006-01-02")
	switch {
	case expiry.Time.Before(now):
		class = model.CardClassExpired
	case expiry.Time.Before(now.Add(30 * 24 * time.Hour)):
		class = model.CardClassExpiringSoon
	default:
		class = model.CardClassValid
	}
	return model.CardPresent, expiryStr, class
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Get retrieves one archive record with its active documents.
func (s *EmployeesStore) Get(ctx context.Context, archiveID int64) (*model.ArchiveDetails, error) {
	var (
		details  model.ArchiveDetails
		hireDate sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT arch.SYSTEM_ID as ARCHIVE_ID, arch.EMPLOYEE_ID, arch.STATUS_ID, arch.HIRE_DATE, TRIM(hr.FULLNAME_EN) as FULLNAME_EN, TRIM(hr.FULLNAME_AR) as FULLNAME_AR, TRIM(hr.EMPNO) as EMPNO, TRIM(hr.DEPARTEMENT) as DEPARTMENT, TRIM(hr.SECTION) as SECTION, TRIM(hr.EMAIL) as EMAIL, TRIM(hr.MOBILE) as MOBILE, TRIM(hr.SUPERVISORNAME) as SUPERVISORNAME, TRIM(hr.NATIONALITY) as NATIONALITY, TRIM(hr.JOB_NAME) as JOB_NAME FROM LKP_PTA_EMP_ARCH arch JOIN lkp_hr_employees hr ON arch.EMPLOYEE_ID = hr.SYSTEM_ID WHERE arch.SYSTEM_ID = :1`,
		archiveID,
	).Scan(
		&details.ArchiveID,
		&details.EmployeeID,
		&details.StatusID,
		&hireDate,
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
			return nil, store.ErrArchiveNotFound
		}
		return nil, fmt.Errorf("query archive details: %w", err)
	}
	if hireDate.Valid {
		formatted := hireDate.Time.Format("2006-01-02")
		details.HireDate = &formatted
	}

	docs, err := s.fetchDocuments(ctx, archiveID)
	if err != nil {
		return nil, err
	}
	details.Documents = docs

	return &details, nil
}

func (s *EmployeesStore) fetchDocuments(ctx context.Context, archiveID int64) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT d.SYSTEM_ID, d.DOCNUMBER, d.DOC_TYPE_ID, d.EXPIRY, TRIM(dt.NAME) as DOC_NAME
		FROM LKP_PTA_EMP_DOCS d
		JOIN LKP_PTA_DOC_TYPES dt ON d.DOC_TYPE_ID = dt.SYSTEM_ID
		WHERE d.PTA_EMP_ARCH_ID = :1 AND d.DISABLED = '0'`, archiveID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	documents := make([]model.Document, 0)
	for rows.Next() {
		var (
			doc    model.Document
			expiry sql.NullTime
		)
		if err := rows.Scan(&doc.SystemID, &doc.DocNumber, &doc.DocTypeID, &expiry, &doc.DocName); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if expiry.Valid {
			formatted := expiry.Time.Format("2006-01-02")
			doc.Expiry = &formatted
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range documents {
		ids, names, err := s.fetchDocumentLegislations(ctx, documents[i].SystemID)
		if err != nil {
			return nil, err
		}
		documents[i].LegislationIDs = ids
		documents[i].LegislationNames = names
	}

	return documents, nil
}

func (s *EmployeesStore) fetchDocumentLegislations(ctx context.Context, docID int64) ([]int64, []string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dl.LEGISLATION_ID, TRIM(l.NAME)
		FROM LKP_PTA_DOC_LEGISL dl
		JOIN LKP_PTA_LEGISL l ON dl.LEGISLATION_ID = l.SYSTEM_ID
		WHERE dl.DOC_ID = :1`, docID)
	if err != nil {
		return nil, nil, fmt.Errorf("query document legislations: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	names := make([]string, 0)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, nil, fmt.Errorf("scan document legislation: %w", err)
		}
		ids = append(ids, id)
		names = append(names, name)
	}
	return ids, names, rows.Err()
}

// Create archives an employee and uploads the documents to the DMS under
// the caller's session, all in one transaction.
func (s *EmployeesStore) Create(ctx context.Context, dst, dmsUser string, payload store.ArchivePayload, docs []store.NewDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID = :1`, payload.EmployeeID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check existing archive: %w", err)
	}
	if existing > 0 {
		return store.ErrAlreadyArchived
	}

	if err := updateHREmployee(ctx, tx, payload); err != nil {
		return err
	}

	seen := make(map[int64]bool, len(docs))
	for _, doc := range docs {
		if seen[doc.DocTypeID] {
			return store.ErrDuplicateDocType
		}
		seen[doc.DocTypeID] = true
	}

	var archiveID int64
	err = tx.QueryRowContext(ctx, `SELECT NVL(MAX(SYSTEM_ID), 0) + 1 FROM LKP_PTA_EMP_ARCH`).Scan(&archiveID)
	if err != nil {
		return fmt.Errorf("allocate archive id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO LKP_PTA_EMP_ARCH (SYSTEM_ID, EMPLOYEE_ID, STATUS_ID, HIRE_DATE, DISABLED, LAST_UPDATE) VALUES (:1, :2, :3, TO_DATE(:4, 'YYYY-MM-DD'), '0', SYSDATE)`,
		archiveID, payload.EmployeeID, intOrNil(payload.StatusID), blankToNil(payload.HireDate),
	)
	if err != nil {
		return fmt.Errorf("insert archive: %w", err)
	}

	for _, doc := range docs {
		abstract := fmt.Sprintf("%s for %s", doc.DocTypeName, payload.NameEN)
		if err := s.insertDocument(ctx, tx, dst, dmsUser, archiveID, payload.EmployeeNumber, abstract, doc); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update modifies an archive record: master data, soft-deleted documents,
// replaced legislation sets and newly uploaded documents, all in one
// transaction.
func (s *EmployeesStore) Update(ctx context.Context, dst, dmsUser string, archiveID int64, payload store.ArchivePayload, newDocs []store.NewDocument, deletedIDs []int64, updatedDocs []store.UpdatedDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE LKP_PTA_EMP_ARCH SET STATUS_ID = :1, HIRE_DATE = TO_DATE(:2, 'YYYY-MM-DD'), LAST_UPDATE = SYSDATE WHERE SYSTEM_ID = :3`,
		intOrNil(payload.StatusID), blankToNil(payload.HireDate), archiveID,
	)
	if err != nil {
		return fmt.Errorf("update archive: %w", err)
	}

	if err := updateHREmployee(ctx, tx, payload); err != nil {
		return err
	}

	// Legislation links go first so the disabled documents never carry
	// dangling references.
	for _, docID := range deletedIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM LKP_PTA_DOC_LEGISL WHERE DOC_ID = :1`, docID); err != nil {
			return fmt.Errorf("delete legislation links: %w", err)
		}
	}
	for _, docID := range deletedIDs {
		if _, err := tx.ExecContext(ctx, `UPDATE LKP_PTA_EMP_DOCS SET DISABLED = '1', LAST_UPDATE = SYSDATE WHERE SYSTEM_ID = :1`, docID); err != nil {
			return fmt.Errorf("disable document: %w", err)
		}
	}

	for _, doc := range updatedDocs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM LKP_PTA_DOC_LEGISL WHERE DOC_ID = :1`, doc.SystemID); err != nil {
			return fmt.Errorf("delete legislation links: %w", err)
		}
		for _, legID := range doc.LegislationIDs {
			if legID == 0 {
				continue
			}
			if err := insertLegislationLink(ctx, tx, doc.SystemID, legID); err != nil {
				return err
			}
		}
	}

	existingTypes, err := s.activeDocTypes(ctx, tx, archiveID)
	if err != nil {
		return err
	}

	for _, doc := range newDocs {
		if existingTypes[doc.DocTypeID] {
			return &store.DocTypeExistsError{Name: doc.DocTypeName}
		}
		abstract := fmt.Sprintf("Updated document for %s", payload.NameEN)
		if err := s.insertDocument(ctx, tx, dst, dmsUser, archiveID, payload.EmployeeNumber, abstract, doc); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *EmployeesStore) activeDocTypes(ctx context.Context, tx *sql.Tx, archiveID int64) (map[int64]bool, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT DOC_TYPE_ID FROM LKP_PTA_EMP_DOCS WHERE PTA_EMP_ARCH_ID = :1 AND DISABLED = '0'`, archiveID,
	)
	if err != nil {
		return nil, fmt.Errorf("query active document types: %w", err)
	}
	defer rows.Close()

	types := make(map[int64]bool)
	for rows.Next() {
		var typeID int64
		if err := rows.Scan(&typeID); err != nil {
			return nil, fmt.Errorf("scan document type id: %w", err)
		}
		types[typeID] = true
	}
	return types, rows.Err()
}

// insertDocument uploads one document to the DMS and records it with its
// legislation links. The upload happens inside the caller's transaction on
// purpose: a failed upload must roll back the metadata with it.
func (s *EmployeesStore) insertDocument(ctx context.Context, tx *sql.Tx, dst, dmsUser string, archiveID int64, empNo, abstract string, doc store.NewDocument) error {
	docName := fmt.Sprintf("Archive_%s_%s", empNo, docTypeSanitizer.ReplaceAllString(doc.DocTypeName, "_"))

	appID, err := s.appIDForFilename(ctx, tx, doc.Filename)
	if err != nil {
		return err
	}

	docNumber, err := s.dms.UploadDocument(ctx, dst, doc.File, dms.UploadMetadata{
		DocName:  docName,
		Abstract: abstract,
		Filename: doc.Filename,
		Author:   dmsUser,
		AppID:    appID,
	})
	if err != nil {
		return &store.UploadError{DocTypeName: doc.DocTypeName, Err: err}
	}

	var docID int64
	if err := tx.QueryRowContext(ctx, `SELECT NVL(MAX(SYSTEM_ID), 0) + 1 FROM LKP_PTA_EMP_DOCS`).Scan(&docID); err != nil {
		return fmt.Errorf("allocate document id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO LKP_PTA_EMP_DOCS (SYSTEM_ID, PTA_EMP_ARCH_ID, DOCNUMBER, DOC_TYPE_ID, EXPIRY, DISABLED, LAST_UPDATE) VALUES (:1, :2, :3, :4, TO_DATE(:5, 'YYYY-MM-DD'), '0', SYSDATE)`,
		docID, archiveID, docNumber, doc.DocTypeID, emptyToNil(doc.Expiry),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	for _, legID := range doc.LegislationIDs {
		if legID == 0 {
			continue
		}
		if err := insertLegislationLink(ctx, tx, docID, legID); err != nil {
			return err
		}
	}

	return nil
}

// appIDForFilename resolves the DMS application id for a filename's
// extension from the APPS table: first by default extension, then by the
// broader file-types list, then UNKNOWN.
func (s *EmployeesStore) appIDForFilename(ctx context.Context, tx *sql.Tx, filename string) (string, error) {
	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(filename), "."))

	var appID string
	err := tx.QueryRowContext(ctx,
		`SELECT APPLICATION FROM APPS WHERE UPPER(DEFAULT_EXTENSION) = :1`, ext,
	).Scan(&appID)
	if err == nil {
		return appID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("query app id: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT APPLICATION FROM APPS WHERE UPPER(FILE_TYPES) LIKE :1`, "%"+ext+"%",
	).Scan(&appID)
	if err == nil {
		return appID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("query app id: %w", err)
	}
	return "UNKNOWN", nil
}

func insertLegislationLink(ctx context.Context, tx *sql.Tx, docID, legislationID int64) error {
	var linkID int64
	if err := tx.QueryRowContext(ctx, `SELECT NVL(MAX(SYSTEM_ID), 0) + 1 FROM LKP_PTA_DOC_LEGISL`).Scan(&linkID); err != nil {
		return fmt.Errorf("allocate legislation link id: %w", err)
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO LKP_PTA_DOC_LEGISL (SYSTEM_ID, DOC_ID, LEGISLATION_ID) VALUES (:1, :2, :3)`,
		linkID, docID, legislationID,
	)
	if err != nil {
		return fmt.Errorf("insert legislation link: %w", err)
	}
	return nil
}

func updateHREmployee(ctx context.Context, tx *sql.Tx, payload store.ArchivePayload) error {
	_, err := tx.ExecContext(ctx, `UPDATE lkp_hr_employees
		SET JOB_NAME = :1,
		    NATIONALITY = :2,
		    EMAIL = :3,
		    MOBILE = :4,
		    SUPERVISORNAME = :5,
		    DEPARTEMENT = :6,
		    SECTION = :7
		WHERE SYSTEM_ID = :8`,
		strOrNil(payload.JobTitle),
		strOrNil(payload.Nationality),
		strOrNil(payload.Email),
		strOrNil(payload.Phone),
		strOrNil(payload.Manager),
		strOrNil(payload.Department),
		strOrNil(payload.Section),
		payload.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("update hr employee: %w", err)
	}
	return nil
}

// BulkArchive imports parsed spreadsheet rows all-or-nothing.
func (s *EmployeesStore) BulkArchive(ctx context.Context, rows []store.BulkEmployee) (store.BulkResult, error) {
	var result store.BulkResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	statusMap, err := bulkStatusMap(ctx, tx)
	if err != nil {
		return result, err
	}
	hrMap, err := bulkHRMap(ctx, tx)
	if err != nil {
		return result, err
	}
	archivedIDs, err := bulkArchivedSet(ctx, tx)
	if err != nil {
		return result, err
	}

	// Rows without a recognized status default to Inactive; if the status
	// table has no Inactive row, any status beats NULL.
	defaultStatus := interface{}(nil)
	if id, ok := statusMap["INACTIVE"]; ok {
		defaultStatus = id
	} else {
		for _, id := range statusMap {
			defaultStatus = id
			break
		}
	}

	for i, emp := range rows {
		rowNum := i + 2 // header is row 1

		empNo := strings.TrimSpace(emp.EmpNo)
		if empNo == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing Employee ID (empno).", rowNum))
			result.Failed++
			continue
		}

		employeeID, ok := hrMap[empNo]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Employee ID '%s' not found in HR system (lkp_hr_employees).", rowNum, empNo))
			result.Failed++
			continue
		}

		if archivedIDs[employeeID] {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Employee '%s' is already archived.", rowNum, empNo))
			result.Failed++
			continue
		}

		statusBind := defaultStatus
		if id, ok := statusMap[strings.ToUpper(strings.TrimSpace(emp.StatusName))]; ok {
			statusBind = id
		}

		err := bulkImportRow(ctx, tx, employeeID, statusBind, emp)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d (EmpID: %s): DB Error - %v", rowNum, emp.EmpNo, err))
			result.Failed++
			continue
		}

		result.Added++
		archivedIDs[employeeID] = true
	}

	if result.Failed > 0 {
		result.Errors = append([]string{"Transaction rolled back due to errors. No employees were added."}, result.Errors...)
		result.Added = 0
		return result, nil
	}

	if err := tx.Commit(); err != nil {
		return store.BulkResult{}, fmt.Errorf("commit bulk import: %w", err)
	}
	return result, nil
}

func bulkImportRow(ctx context.Context, tx *sql.Tx, employeeID int64, statusBind interface{}, emp store.BulkEmployee) error {
	_, err := tx.ExecContext(ctx, `UPDATE lkp_hr_employees
		SET FULLNAME_EN = :1,
		    FULLNAME_AR = :2,
		    NATIONALITY = :3,
		    JOB_NAME = :4,
		    SUPERVISORNAME = :5,
		    MOBILE = :6,
		    EMAIL = :7,
		    SECTION = :8,
		    DEPARTEMENT = :9
		WHERE SYSTEM_ID = :10`,
		emp.NameEN, emp.NameAR, emp.Nationality, emp.JobTitle, emp.Manager,
		emp.Phone, emp.Email, emp.Section, emp.Department, employeeID,
	)
	if err != nil {
		return err
	}

	var archiveID int64
	if err := tx.QueryRowContext(ctx, `SELECT NVL(MAX(SYSTEM_ID), 0) + 1 FROM LKP_PTA_EMP_ARCH`).Scan(&archiveID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO LKP_PTA_EMP_ARCH (SYSTEM_ID, EMPLOYEE_ID, STATUS_ID, HIRE_DATE, DISABLED, LAST_UPDATE) VALUES (:1, :2, :3, TO_DATE(:4, 'DD/MM/YYYY'), '0', SYSDATE)`,
		archiveID, employeeID, statusBind, emptyToNil(emp.HireDate),
	)
	return err
}

func bulkStatusMap(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT SYSTEM_ID, TRIM(NAME_ENGLISH) FROM LKP_PTA_EMP_STATUS`)
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		if name.Valid && name.String != "" {
			statuses[strings.ToUpper(name.String)] = id
		}
	}
	return statuses, rows.Err()
}

func bulkHRMap(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT SYSTEM_ID, TRIM(EMPNO) FROM lkp_hr_employees`)
	if err != nil {
		return nil, fmt.Errorf("query hr employees: %w", err)
	}
	defer rows.Close()

	employees := make(map[string]int64)
	for rows.Next() {
		var (
			id    int64
			empNo sql.NullString
		)
		if err := rows.Scan(&id, &empNo); err != nil {
			return nil, fmt.Errorf("scan hr employee: %w", err)
		}
		if empNo.Valid && empNo.String != "" {
			employees[empNo.String] = id
		}
	}
	return employees, rows.Err()
}

func bulkArchivedSet(ctx context.Context, tx *sql.Tx) (map[int64]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT EMPLOYEE_ID FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query archived ids: %w", err)
	}
	defer rows.Close()

	archived := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan archived id: %w", err)
		}
		archived[id] = true
	}
	return archived, rows.Err()
}

// strOrNil binds an optional string, NULL when absent.
func strOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// blankToNil binds an optional string, NULL when absent or empty.
func blankToNil(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// emptyToNil binds a string, NULL when empty.
func emptyToNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// intOrNil binds an optional integer, NULL when absent.
func intOrNil(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
