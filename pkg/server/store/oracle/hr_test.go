package oracle

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

func TestHREmployeesStoreList(t *testing.T) {
	t.Run("second page without search", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewHREmployeesStore(db)

		mock.ExpectQuery(`SELECT COUNT\(hr.SYSTEM_ID\) FROM lkp_hr_employees hr WHERE hr.SYSTEM_ID NOT IN`).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(25))
		mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(FULLNAME_EN\) as FULLNAME_EN.*ORDER BY hr.FULLNAME_EN OFFSET :1 ROWS FETCH NEXT :2 ROWS ONLY`).
			WithArgs(10, store.HRPageSize).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "FULLNAME_EN", "FULLNAME_AR", "EMPNO"}).
				AddRow(int64(11), "John Smith", "جون سميث", "1011").
				AddRow(int64(12), nil, nil, "1012"))

		employees, total, err := s.List(context.Background(), "", 2)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		require.Len(t, employees, 2)
		assert.Equal(t, "John Smith", *employees[0].FullNameEN)
		assert.Nil(t, employees[1].FullNameEN)
		assert.Equal(t, "1012", *employees[1].EmpNo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("search is uppercased into the like patterns", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewHREmployeesStore(db)

		mock.ExpectQuery(`SELECT COUNT\(hr.SYSTEM_ID\)`).
			WithArgs("%JOHN%", "%JOHN%", "%JOHN%").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(1))
		mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(FULLNAME_EN\)`).
			WithArgs("%JOHN%", "%JOHN%", "%JOHN%", 0, store.HRPageSize).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "FULLNAME_EN", "FULLNAME_AR", "EMPNO"}).
				AddRow(int64(11), "John Smith", nil, "1011"))

		employees, total, err := s.List(context.Background(), "john", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, employees, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields an empty slice", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewHREmployeesStore(db)

		mock.ExpectQuery(`SELECT COUNT\(hr.SYSTEM_ID\)`).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT"}).AddRow(0))
		mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(FULLNAME_EN\)`).
			WithArgs(0, store.HRPageSize).
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "FULLNAME_EN", "FULLNAME_AR", "EMPNO"}))

		employees, total, err := s.List(context.Background(), "", 1)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.NotNil(t, employees)
		assert.Empty(t, employees)
	})
}

func TestHREmployeesStoreGet(t *testing.T) {
	t.Run("returns the master record", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewHREmployeesStore(db)

		columns := []string{
			"SYSTEM_ID", "FULLNAME_EN", "FULLNAME_AR", "EMPNO", "DEPARTMENT", "SECTION",
			"EMAIL", "MOBILE", "SUPERVISORNAME", "NATIONALITY", "JOB_NAME",
		}
		mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(FULLNAME_EN\).*FROM lkp_hr_employees WHERE SYSTEM_ID = :1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(42), "John Smith", "جون سميث", "1042", "Finance", nil,
					"john@example.com", "0501234567", "Jane Boss", "UAE", "Accountant"))

		details, err := s.Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), details.SystemID)
		assert.Equal(t, "John Smith", *details.FullNameEN)
		assert.Equal(t, "Finance", *details.Department)
		assert.Nil(t, details.Section)
		assert.Equal(t, "Accountant", *details.JobName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewHREmployeesStore(db)

		mock.ExpectQuery(`FROM lkp_hr_employees WHERE SYSTEM_ID = :1`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.Get(context.Background(), 999)
		assert.ErrorIs(t, err, store.ErrHREmployeeNotFound)
	})
}
