package oracle

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rta-apps/pta-archiving-backend/pkg/dms"
	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

func ptr[T any](v T) *T { return &v }

// stubDMS satisfies dms.Service for store tests; only uploads matter here.
type stubDMS struct {
	docNumber string
	err       error
	uploads   []dms.UploadMetadata
}

func (s *stubDMS) Login(ctx context.Context, username, password string) (string, error) {
	return "", nil
}

func (s *stubDMS) SystemLogin(ctx context.Context) (string, error) {
	return "", nil
}

func (s *stubDMS) UploadDocument(ctx context.Context, dst string, content io.Reader, meta dms.UploadMetadata) (string, error) {
	s.uploads = append(s.uploads, meta)
	if s.err != nil {
		return "", s.err
	}
	return s.docNumber, nil
}

func (s *stubDMS) FetchDocument(ctx context.Context, dst, docNumber string) ([]byte, string, error) {
	return nil, "", nil
}

func TestClassifyWarrant(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		found  bool
		expiry sql.NullTime
		want   string
	}{
		{"no warrant document", false, sql.NullTime{}, model.WarrantAbsent},
		{"warrant without expiry", true, sql.NullTime{}, model.WarrantPresent},
		{"expiry later today still active", true, sql.NullTime{Valid: true, Time: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)}, model.WarrantActive},
		{"future expiry", true, sql.NullTime{Valid: true, Time: now.AddDate(0, 6, 0)}, model.WarrantActive},
		{"past expiry", true, sql.NullTime{Valid: true, Time: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)}, model.WarrantExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyWarrant(tt.found, tt.expiry, now))
		})
	}
}

func TestClassifyCard(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		found      bool
		expiry     sql.NullTime
		wantStatus string
		wantExpiry string
		wantClass  string
	}{
		{"no card document", false, sql.NullTime{}, model.CardAbsent, model.NoExpiry, ""},
		{"card without expiry", true, sql.NullTime{}, model.CardPresent, model.NoExpiry, model.CardClassValid},
		// Unlike warrants, the card comparison is at instant granularity:
		// a card dated midnight today is already expired by noon.
		{"expiry midnight today", true, sql.NullTime{Valid: true, Time: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)}, model.CardPresent, "2025-06-15", model.CardClassExpired},
		{"expiry within thirty days", true, sql.NullTime{Valid: true, Time: now.Add(10 * 24 * time.Hour)}, model.CardPresent, "2025-06-25", model.CardClassExpiringSoon},
		{"expiry far out", true, sql.NullTime{Valid: true, Time: now.Add(60 * 24 * time.Hour)}, model.CardPresent, "2025-08-14", model.CardClassValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, expiry, class := classifyCard(tt.found, tt.expiry, now)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantExpiry, expiry)
			assert.Equal(t, tt.wantClass, class)
		})
	}
}

func TestEmployeesStoreDashboardCounts(t *testing.T) {
	db, mock := setupDB(t)
	s := NewEmployeesStore(db, &stubDMS{})

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM LKP_PTA_EMP_ARCH$`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(120))
	mock.ExpectQuery(`TRIM\(stat.NAME_ENGLISH\) = 'Active'`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(80))
	mock.ExpectQuery(`TRIM\(stat.NAME_ENGLISH\) = 'Inactive'`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(40))
	mock.ExpectQuery(`doc.EXPIRY < \(SYSDATE \+ 30\)`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(7))

	counts, err := s.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DashboardCounts{
		TotalEmployees:    120,
		ActiveEmployees:   80,
		InactiveEmployees: 40,
		ExpiringSoon:      7,
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func listColumns() []string {
	return []string{"SYSTEM_ID", "FULLNAME_EN", "FULLNAME_AR", "EMPNO", "DEPARTMENT", "SECTION", "STATUS_EN", "STATUS_AR"}
}

func TestEmployeesStoreList(t *testing.T) {
	t.Run("search, status and filter type combine", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectQuery(`SELECT COUNT\(DISTINCT arch.SYSTEM_ID\)`).
			WithArgs("%JOHN%", "%JOHN%", "%JOHN%", "Active").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(1))
		mock.ExpectQuery(`OFFSET :5 ROWS FETCH NEXT :6 ROWS ONLY`).
			WithArgs("%JOHN%", "%JOHN%", "%JOHN%", "Active", 0, 20).
			WillReturnRows(sqlmock.NewRows(listColumns()).
				AddRow(int64(7), "John Smith", "جون سميث", "1042", "Finance", "Audit", "Active", "فعال"))
		mock.ExpectQuery(`%Warrant Decisions%`).
			WithArgs(int64(7)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`%Judicial Card%`).
			WithArgs(int64(7)).
			WillReturnError(sql.ErrNoRows)

		employees, total, err := s.List(context.Background(), store.Filter{
			Search:     "john",
			Status:     "Active",
			FilterType: "has_warrant",
			Page:       1,
			PageSize:   20,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, employees, 1)
		assert.Equal(t, model.WarrantAbsent, employees[0].WarrantStatus)
		assert.Equal(t, model.CardAbsent, employees[0].CardStatus)
		assert.Equal(t, model.NoExpiry, employees[0].CardExpiry)
		assert.Equal(t, "", employees[0].CardStatusClass)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page size zero disables pagination", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectQuery(`SELECT COUNT\(DISTINCT arch.SYSTEM_ID\)`).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(2))
		mock.ExpectQuery(`ORDER BY arch.SYSTEM_ID DESC$`).
			WillReturnRows(sqlmock.NewRows(listColumns()).
				AddRow(int64(8), "B", nil, "2", nil, nil, nil, nil).
				AddRow(int64(7), "A", nil, "1", nil, nil, nil, nil))
		for _, id := range []int64{8, 7} {
			mock.ExpectQuery(`%Warrant Decisions%`).WithArgs(id).WillReturnError(sql.ErrNoRows)
			mock.ExpectQuery(`%Judicial Card%`).WithArgs(id).WillReturnError(sql.ErrNoRows)
		}

		employees, total, err := s.List(context.Background(), store.Filter{PageSize: 0})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, employees, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("warrant and card columns come from the newest documents", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		now := time.Now()
		cardExpiry := now.Add(-48 * time.Hour)

		mock.ExpectQuery(`SELECT COUNT\(DISTINCT arch.SYSTEM_ID\)`).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(1))
		mock.ExpectQuery(`SELECT DISTINCT arch.SYSTEM_ID`).
			WithArgs(0, 20).
			WillReturnRows(sqlmock.NewRows(listColumns()).
				AddRow(int64(7), "John Smith", nil, "1042", nil, nil, "Active", nil))
		mock.ExpectQuery(`%Warrant Decisions%`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"EXPIRY"}).AddRow(now.Add(90 * 24 * time.Hour)))
		mock.ExpectQuery(`%Judicial Card%`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"EXPIRY"}).AddRow(cardExpiry))

		employees, _, err := s.List(context.Background(), store.Filter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, model.WarrantActive, employees[0].WarrantStatus)
		assert.Equal(t, model.CardPresent, employees[0].CardStatus)
		assert.Equal(t, cardExpiry.Format("2006-01-02"), employees[0].CardExpiry)
		assert.Equal(t, model.CardClassExpired, employees[0].CardStatusClass)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeesStoreGet(t *testing.T) {
	detailColumns := []string{
		"ARCHIVE_ID", "EMPLOYEE_ID", "STATUS_ID", "HIRE_DATE", "FULLNAME_EN", "FULLNAME_AR",
		"EMPNO", "DEPARTMENT", "SECTION", "EMAIL", "MOBILE", "SUPERVISORNAME", "NATIONALITY", "JOB_NAME",
	}

	t.Run("returns the record with nested documents", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		hired := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
		expiry := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM LKP_PTA_EMP_ARCH arch JOIN lkp_hr_employees hr ON arch.EMPLOYEE_ID = hr.SYSTEM_ID WHERE arch.SYSTEM_ID = :1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(int64(7), int64(42), int64(1), hired, "John Smith", "جون سميث",
					"1042", "Finance", nil, "john@example.com", nil, "Jane Boss", "UAE", "Accountant"))
		mock.ExpectQuery(`FROM LKP_PTA_EMP_DOCS d`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "DOCNUMBER", "DOC_TYPE_ID", "EXPIRY", "DOC_NAME"}).
				AddRow(int64(11), "123456", int64(5), expiry, "Judicial Card").
				AddRow(int64(12), "123457", int64(2), nil, "Passport"))
		mock.ExpectQuery(`FROM LKP_PTA_DOC_LEGISL dl`).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"LEGISLATION_ID", "NAME"}).
				AddRow(int64(9), "Federal Law 12").
				AddRow(int64(4), "Local Order 3"))
		mock.ExpectQuery(`FROM LKP_PTA_DOC_LEGISL dl`).
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows([]string{"LEGISLATION_ID", "NAME"}))

		details, err := s.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), details.ArchiveID)
		assert.Equal(t, int64(42), details.EmployeeID)
		assert.Equal(t, int64(1), *details.StatusID)
		assert.Equal(t, "2020-05-01", *details.HireDate)
		assert.Nil(t, details.Section)

		require.Len(t, details.Documents, 2)
		card := details.Documents[0]
		assert.Equal(t, "123456", *card.DocNumber)
		assert.Equal(t, "2030-12-31", *card.Expiry)
		assert.Equal(t, []int64{9, 4}, card.LegislationIDs)
		assert.Equal(t, []string{"Federal Law 12", "Local Order 3"}, card.LegislationNames)

		passport := details.Documents[1]
		assert.Nil(t, passport.Expiry)
		assert.Empty(t, passport.LegislationIDs)
		assert.NotNil(t, passport.LegislationIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown archive", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectQuery(`WHERE arch.SYSTEM_ID = :1`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.Get(context.Background(), 999)
		assert.ErrorIs(t, err, store.ErrArchiveNotFound)
	})

	t.Run("archive without documents", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectQuery(`WHERE arch.SYSTEM_ID = :1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(detailColumns).
				AddRow(int64(7), int64(42), nil, nil, "John Smith", nil, "1042", nil, nil, nil, nil, nil, nil, nil))
		mock.ExpectQuery(`FROM LKP_PTA_EMP_DOCS d`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "DOCNUMBER", "DOC_TYPE_ID", "EXPIRY", "DOC_NAME"}))

		details, err := s.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Nil(t, details.StatusID)
		assert.Nil(t, details.HireDate)
		assert.NotNil(t, details.Documents)
		assert.Empty(t, details.Documents)
	})
}

func createPayload() store.ArchivePayload {
	return store.ArchivePayload{
		EmployeeID:     42,
		StatusID:       ptr(int64(1)),
		HireDate:       ptr("2020-05-01"),
		JobTitle:       ptr("Accountant"),
		Nationality:    ptr("UAE"),
		Email:          ptr("john@example.com"),
		Phone:          ptr("0501234567"),
		Manager:        ptr("Jane Boss"),
		Department:     ptr("Finance"),
		Section:        ptr("Audit"),
		EmployeeNumber: "1042",
		NameEN:         "John Smith",
	}
}

func expectHRUpdate(mock sqlmock.Sqlmock) {
	mock.ExpectExec(`UPDATE lkp_hr_employees`).
		WithArgs("Accountant", "UAE", "john@example.com", "0501234567", "Jane Boss", "Finance", "Audit", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestEmployeesStoreCreate(t *testing.T) {
	newDoc := store.NewDocument{
		File:           strings.NewReader("%PDF-1.4 test"),
		Filename:       "card.pdf",
		DocTypeID:      5,
		DocTypeName:    "Judicial Card",
		Expiry:         "2030-12-31",
		LegislationIDs: []int64{9},
	}

	t.Run("uploads and records documents in one transaction", func(t *testing.T) {
		db, mock := setupDB(t)
		dmsStub := &stubDMS{docNumber: "DOC-123"}
		s := NewEmployeesStore(db, dmsStub)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID = :1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(0))
		expectHRUpdate(mock)
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_ARCH`).
			WithArgs(int64(7), int64(42), int64(1), "2020-05-01").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(DEFAULT_EXTENSION\) = :1`).
			WithArgs("PDF").
			WillReturnRows(sqlmock.NewRows([]string{"APPLICATION"}).AddRow("ACROBAT"))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_DOCS`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(11)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_DOCS`).
			WithArgs(int64(11), int64(7), "DOC-123", int64(5), "2030-12-31").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_DOC_LEGISL`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(3)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_DOC_LEGISL`).
			WithArgs(int64(3), int64(11), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.Create(context.Background(), "dst-token", "jsmith", createPayload(), []store.NewDocument{newDoc})
		require.NoError(t, err)

		require.Len(t, dmsStub.uploads, 1)
		upload := dmsStub.uploads[0]
		assert.Equal(t, "Archive_1042_Judicial_Card", upload.DocName)
		assert.Equal(t, "Judicial Card for John Smith", upload.Abstract)
		assert.Equal(t, "card.pdf", upload.Filename)
		assert.Equal(t, "jsmith", upload.Author)
		assert.Equal(t, "ACROBAT", upload.AppID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("employee already archived", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID = :1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(1))
		mock.ExpectRollback()

		err := s.Create(context.Background(), "dst-token", "jsmith", createPayload(), nil)
		assert.ErrorIs(t, err, store.ErrAlreadyArchived)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same document type twice in one request", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID = :1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(0))
		expectHRUpdate(mock)
		mock.ExpectRollback()

		docs := []store.NewDocument{newDoc, newDoc}
		err := s.Create(context.Background(), "dst-token", "jsmith", createPayload(), docs)
		assert.ErrorIs(t, err, store.ErrDuplicateDocType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("upload failure rolls everything back", func(t *testing.T) {
		db, mock := setupDB(t)
		cause := errors.New("backend offline")
		s := NewEmployeesStore(db, &stubDMS{err: cause})

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID = :1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(0))
		expectHRUpdate(mock)
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_ARCH`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(DEFAULT_EXTENSION\) = :1`).
			WithArgs("PDF").
			WillReturnRows(sqlmock.NewRows([]string{"APPLICATION"}).AddRow("ACROBAT"))
		mock.ExpectRollback()

		err := s.Create(context.Background(), "dst-token", "jsmith", createPayload(), []store.NewDocument{newDoc})
		require.Error(t, err)

		var uploadErr *store.UploadError
		require.ErrorAs(t, err, &uploadErr)
		assert.Equal(t, "Judicial Card", uploadErr.DocTypeName)
		assert.ErrorIs(t, err, cause)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEmployeesStoreUpdate(t *testing.T) {
	t.Run("applies deletions, legislation updates and new documents", func(t *testing.T) {
		db, mock := setupDB(t)
		dmsStub := &stubDMS{docNumber: "DOC-999"}
		s := NewEmployeesStore(db, dmsStub)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE LKP_PTA_EMP_ARCH SET STATUS_ID = :1, HIRE_DATE = TO_DATE\(:2, 'YYYY-MM-DD'\), LAST_UPDATE = SYSDATE WHERE SYSTEM_ID = :3`).
			WithArgs(int64(1), "2020-05-01", int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectHRUpdate(mock)

		// deleted document 33
		mock.ExpectExec(`DELETE FROM LKP_PTA_DOC_LEGISL WHERE DOC_ID = :1`).
			WithArgs(int64(33)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE LKP_PTA_EMP_DOCS SET DISABLED = '1', LAST_UPDATE = SYSDATE WHERE SYSTEM_ID = :1`).
			WithArgs(int64(33)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// document 44 gets a new legislation set
		mock.ExpectExec(`DELETE FROM LKP_PTA_DOC_LEGISL WHERE DOC_ID = :1`).
			WithArgs(int64(44)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_DOC_LEGISL`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(20)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_DOC_LEGISL`).
			WithArgs(int64(20), int64(44), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_DOC_LEGISL`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(21)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_DOC_LEGISL`).
			WithArgs(int64(21), int64(44), int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`SELECT DOC_TYPE_ID FROM LKP_PTA_EMP_DOCS WHERE PTA_EMP_ARCH_ID = :1 AND DISABLED = '0'`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"DOC_TYPE_ID"}).AddRow(int64(2)))

		// new document: png resolved through the file-types fallback
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(DEFAULT_EXTENSION\) = :1`).
			WithArgs("PNG").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(FILE_TYPES\) LIKE :1`).
			WithArgs("%PNG%").
			WillReturnRows(sqlmock.NewRows([]string{"APPLICATION"}).AddRow("PAINT"))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_DOCS`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(12)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_DOCS`).
			WithArgs(int64(12), int64(7), "DOC-999", int64(5), nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		newDocs := []store.NewDocument{{
			File:        strings.NewReader("png bytes"),
			Filename:    "scan.png",
			DocTypeID:   5,
			DocTypeName: "Judicial Card",
		}}
		updated := []store.UpdatedDocument{{SystemID: 44, LegislationIDs: []int64{5, 6}}}

		err := s.Update(context.Background(), "dst-token", "jsmith", 7, createPayload(), newDocs, []int64{33}, updated)
		require.NoError(t, err)

		require.Len(t, dmsStub.uploads, 1)
		assert.Equal(t, "Updated document for John Smith", dmsStub.uploads[0].Abstract)
		assert.Equal(t, "PAINT", dmsStub.uploads[0].AppID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("new document type already active", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE LKP_PTA_EMP_ARCH`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		expectHRUpdate(mock)
		mock.ExpectQuery(`SELECT DOC_TYPE_ID FROM LKP_PTA_EMP_DOCS`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"DOC_TYPE_ID"}).AddRow(int64(5)))
		mock.ExpectRollback()

		newDocs := []store.NewDocument{{
			File:        strings.NewReader("pdf"),
			Filename:    "card.pdf",
			DocTypeID:   5,
			DocTypeName: "Judicial Card",
		}}

		err := s.Update(context.Background(), "dst-token", "jsmith", 7, createPayload(), newDocs, nil, nil)
		var exists *store.DocTypeExistsError
		require.ErrorAs(t, err, &exists)
		assert.Equal(t, "Judicial Card", exists.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func expectBulkMaps(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(NAME_ENGLISH\) FROM LKP_PTA_EMP_STATUS`).
		WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "NAME"}).
			AddRow(int64(1), "Active").
			AddRow(int64(2), "Inactive"))
	mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(EMPNO\) FROM lkp_hr_employees`).
		WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "EMPNO"}).
			AddRow(int64(101), "1001").
			AddRow(int64(102), "1002"))
	mock.ExpectQuery(`SELECT EMPLOYEE_ID FROM LKP_PTA_EMP_ARCH WHERE EMPLOYEE_ID IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"EMPLOYEE_ID"}))
}

func bulkRow(empNo, status, hireDate string) store.BulkEmployee {
	return store.BulkEmployee{
		EmpNo:       empNo,
		NameAR:      "اسم",
		NameEN:      "Name",
		HireDate:    hireDate,
		Nationality: "UAE",
		JobTitle:    "Clerk",
		Manager:     "Boss",
		Phone:       "050",
		Email:       "x@example.com",
		StatusName:  status,
		Section:     "S",
		Department:  "D",
	}
}

func TestEmployeesStoreBulkArchive(t *testing.T) {
	t.Run("imports every row and commits", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		expectBulkMaps(mock)

		// row 1: explicit Active status
		mock.ExpectExec(`UPDATE lkp_hr_employees`).
			WithArgs("Name", "اسم", "UAE", "Clerk", "Boss", "050", "x@example.com", "S", "D", int64(101)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_ARCH`).
			WithArgs(int64(7), int64(101), int64(1), "15/03/2020").
			WillReturnResult(sqlmock.NewResult(0, 1))

		// row 2: unknown status falls back to Inactive, blank hire date binds NULL
		mock.ExpectExec(`UPDATE lkp_hr_employees`).
			WithArgs("Name", "اسم", "UAE", "Clerk", "Boss", "050", "x@example.com", "S", "D", int64(102)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(8)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_ARCH`).
			WithArgs(int64(8), int64(102), int64(2), nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows := []store.BulkEmployee{
			bulkRow("1001", "active", "15/03/2020"),
			bulkRow("1002", "Retired", ""),
		}

		result, err := s.BulkArchive(context.Background(), rows)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Added)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, result.Errors)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("any bad row rolls the whole import back", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		expectBulkMaps(mock)

		// the valid second row still runs before the rollback decision
		mock.ExpectExec(`UPDATE lkp_hr_employees`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(7)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_EMP_ARCH`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		rows := []store.BulkEmployee{
			bulkRow("9999", "Active", ""),
			bulkRow("1001", "Active", ""),
		}

		result, err := s.BulkArchive(context.Background(), rows)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 2)
		assert.Equal(t, "Transaction rolled back due to errors. No employees were added.", result.Errors[0])
		assert.Equal(t, "Row 2: Employee ID '9999' not found in HR system (lkp_hr_employees).", result.Errors[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("blank and duplicate employee ids are reported per row", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM LKP_PTA_EMP_STATUS`).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "NAME"}).AddRow(int64(2), "Inactive"))
		mock.ExpectQuery(`FROM lkp_hr_employees`).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "EMPNO"}).AddRow(int64(101), "1001"))
		mock.ExpectQuery(`SELECT EMPLOYEE_ID FROM LKP_PTA_EMP_ARCH`).
			WillReturnRows(sqlmock.NewRows([]string{"EMPLOYEE_ID"}).AddRow(int64(101)))
		mock.ExpectRollback()

		rows := []store.BulkEmployee{
			bulkRow("  ", "Active", ""),
			bulkRow("1001", "Active", ""),
		}

		result, err := s.BulkArchive(context.Background(), rows)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Added)
		assert.Equal(t, 2, result.Failed)
		require.Len(t, result.Errors, 3)
		assert.Equal(t, "Row 2: Missing Employee ID (empno).", result.Errors[1])
		assert.Equal(t, "Row 3: Employee '1001' is already archived.", result.Errors[2])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAppIDForFilename(t *testing.T) {
	t.Run("file without extension matches any file-types row", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewEmployeesStore(db, &stubDMS{})

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(DEFAULT_EXTENSION\) = :1`).
			WithArgs("").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT APPLICATION FROM APPS WHERE UPPER\(FILE_TYPES\) LIKE :1`).
			WithArgs("%%").
			WillReturnError(sql.ErrNoRows)

		tx, err := db.Begin()
		require.NoError(t, err)

		appID, err := s.appIDForFilename(context.Background(), tx, "README")
		require.NoError(t, err)
		assert.Equal(t, "UNKNOWN", appID)
	})
}
