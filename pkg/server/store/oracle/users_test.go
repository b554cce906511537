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

func setupDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUsersStoreSecurityLevel(t *testing.T) {
	t.Run("resolves the assigned level", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE WHERE UPPER\(USER_ID\) = UPPER\(:1\)`).
			WithArgs("jsmith").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT sl.NAME\s+FROM LKP_PTA_USR_SECUR us`).
			WithArgs(int64(77)).
			WillReturnRows(sqlmock.NewRows([]string{"NAME"}).AddRow("Editor"))

		level, err := s.SecurityLevel(context.Background(), "jsmith")
		require.NoError(t, err)
		assert.Equal(t, "Editor", level)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := s.SecurityLevel(context.Background(), "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("user without a level", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE`).
			WithArgs("jsmith").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT sl.NAME\s+FROM LKP_PTA_USR_SECUR us`).
			WithArgs(int64(77)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.SecurityLevel(context.Background(), "jsmith")
		assert.ErrorIs(t, err, store.ErrNoSecurityLevel)
	})
}

func TestUsersStoreGrantSecurityLevel(t *testing.T) {
	t.Run("updates an existing assignment", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE`).
			WithArgs("jsmith").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT SYSTEM_ID FROM LKP_PTA_SECURITY WHERE UPPER\(TRIM\(NAME\)\) = UPPER\(:1\)`).
			WithArgs("Editor").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(2)))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE LKP_PTA_USR_SECUR SET SECURITY_LEVEL_ID = :1 WHERE USER_ID = :2`).
			WithArgs(int64(2), int64(77)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.GrantSecurityLevel(context.Background(), "jsmith", "Editor")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts when the user had no assignment", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE`).
			WithArgs("jsmith").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT SYSTEM_ID FROM LKP_PTA_SECURITY`).
			WithArgs("Viewer").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(1)))
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE LKP_PTA_USR_SECUR`).
			WithArgs(int64(1), int64(77)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT NVL\(MAX\(SYSTEM_ID\), 0\) \+ 1 FROM LKP_PTA_USR_SECUR`).
			WillReturnRows(sqlmock.NewRows([]string{"ID"}).AddRow(int64(15)))
		mock.ExpectExec(`INSERT INTO LKP_PTA_USR_SECUR`).
			WithArgs(int64(15), int64(77), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.GrantSecurityLevel(context.Background(), "jsmith", "Viewer")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown level", func(t *testing.T) {
		db, mock := setupDB(t)
		s := NewUsersStore(db)

		mock.ExpectQuery(`SELECT SYSTEM_ID FROM PEOPLE`).
			WithArgs("jsmith").
			WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID"}).AddRow(int64(77)))
		mock.ExpectQuery(`SELECT SYSTEM_ID FROM LKP_PTA_SECURITY`).
			WithArgs("Owner").
			WillReturnError(sql.ErrNoRows)

		err := s.GrantSecurityLevel(context.Background(), "jsmith", "Owner")
		assert.ErrorIs(t, err, store.ErrLevelNotFound)
	})
}

func TestUsersStoreLevels(t *testing.T) {
	db, mock := setupDB(t)
	s := NewUsersStore(db)

	mock.ExpectQuery(`SELECT SYSTEM_ID, TRIM\(NAME\) as NAME FROM LKP_PTA_SECURITY ORDER BY SYSTEM_ID`).
		WillReturnRows(sqlmock.NewRows([]string{"SYSTEM_ID", "NAME"}).
			AddRow(int64(1), "Viewer").
			AddRow(int64(2), "Editor"))

	levels, err := s.Levels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, int64(1), levels[0].SystemID)
	assert.Equal(t, "Viewer", *levels[0].Name)
	assert.Equal(t, "Editor", *levels[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
