package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore against the shared Oracle schema
type UsersStore struct {
	db *sql.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *sql.DB) *UsersStore {
	return &UsersStore{db: db}
}

// SecurityLevel resolves a username to its security level name.
func (s *UsersStore) SecurityLevel(ctx context.Context, username string) (string, error) {
	userID, err := s.lookupPersonID(ctx, username)
	if err != nil {
		return "", err
	}

	var level string
	err = s.db.QueryRowContext(ctx, `
		SELECT sl.NAME
		FROM LKP_PTA_USR_SECUR us
		JOIN LKP_PTA_SECURITY sl ON us.SECURITY_LEVEL_ID = sl.SYSTEM_ID
		WHERE us.USER_ID = :1
	`, userID).Scan(&level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", store.ErrNoSecurityLevel
		}
		return "", fmt.Errorf("query security level: %w", err)
	}
	return level, nil
}

// GrantSecurityLevel assigns a named security level to a user, replacing
// any existing assignment.
func (s *UsersStore) GrantSecurityLevel(ctx context.Context, username, levelName string) error {
	userID, err := s.lookupPersonID(ctx, username)
	if err != nil {
		return err
	}

	var levelID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT SYSTEM_ID FROM LKP_PTA_SECURITY WHERE UPPER(TRIM(NAME)) = UPPER(:1)`,
		levelName,
	).Scan(&levelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrLevelNotFound
		}
		return fmt.Errorf("query security level id: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE LKP_PTA_USR_SECUR SET SECURITY_LEVEL_ID = :1 WHERE USER_ID = :2`,
		levelID, userID,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if updated == 0 {
		var assignmentID int64
		if err := tx.QueryRowContext(ctx,
			`SELECT NVL(MAX(SYSTEM_ID), 0) + 1 FROM LKP_PTA_USR_SECUR`,
		).Scan(&assignmentID); err != nil {
			return fmt.Errorf("allocate assignment id: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO LKP_PTA_USR_SECUR (SYSTEM_ID, USER_ID, SECURITY_LEVEL_ID) VALUES (:1, :2, :3)`,
			assignmentID, userID, levelID,
		)
		if err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}

	return tx.Commit()
}

// Levels lists all security levels.
func (s *UsersStore) Levels(ctx context.Context) ([]model.SecurityLevel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT SYSTEM_ID, TRIM(NAME) as NAME FROM LKP_PTA_SECURITY ORDER BY SYSTEM_ID`,
	)
	if err != nil {
		return nil, fmt.Errorf("query security levels: %w", err)
	}
	defer rows.Close()

	var levels []model.SecurityLevel
	for rows.Next() {
		var level model.SecurityLevel
		if err := rows.Scan(&level.SystemID, &level.Name); err != nil {
			return nil, fmt.Errorf("scan security level: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

// lookupPersonID resolves a username to its PEOPLE system id.
func (s *UsersStore) lookupPersonID(ctx context.Context, username string) (int64, error) {
	var userID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT SYSTEM_ID FROM PEOPLE WHERE UPPER(USER_ID) = UPPER(:1)`,
		username,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		return 0, fmt.Errorf("query person id: %w", err)
	}
	return userID, nil
}
