package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rta-apps/pta-archiving-backend/pkg/model"
	"github.com/rta-apps/pta-archiving-backend/pkg/server/store"
)

// Ensure LookupsStore implements store.LookupsStore
var _ store.LookupsStore = (*LookupsStore)(nil)

// LookupsStore implements store.LookupsStore against the shared Oracle
// schema
type LookupsStore struct {
	db *sql.DB
}

// NewLookupsStore creates a new LookupsStore
func NewLookupsStore(db *sql.DB) *LookupsStore {
	return &LookupsStore{db: db}
}

// Statuses lists the enabled employee statuses.
func (s *LookupsStore) Statuses(ctx context.Context) ([]model.Status, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT SYSTEM_ID, TRIM(NAME_ENGLISH) as NAME_ENGLISH, TRIM(NAME_ARABIC) as NAME_ARABIC FROM LKP_PTA_EMP_STATUS WHERE DISABLED='0'`,
	)
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]model.Status, 0)
	for rows.Next() {
		var status model.Status
		if err := rows.Scan(&status.SystemID, &status.NameEnglish, &status.NameArabic); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

// DocumentTypes lists the enabled document types, split into the full list
// and the subset that carries an expiry date.
func (s *LookupsStore) DocumentTypes(ctx context.Context) (model.DocumentTypes, error) {
	types := model.DocumentTypes{
		AllTypes:        make([]model.DocumentType, 0),
		TypesWithExpiry: make([]model.DocumentType, 0),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT SYSTEM_ID, TRIM(NAME) as NAME, HAS_EXPIRY FROM LKP_PTA_DOC_TYPES WHERE DISABLED = '0' ORDER BY SYSTEM_ID`,
	)
	if err != nil {
		return types, fmt.Errorf("query document types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			docType   model.DocumentType
			hasExpiry sql.NullString
		)
		if err := rows.Scan(&docType.SystemID, &docType.Name, &hasExpiry); err != nil {
			return types, fmt.Errorf("scan document type: %w", err)
		}
		types.AllTypes = append(types.AllTypes, docType)
		if hasExpiry.Valid && strings.TrimSpace(hasExpiry.String) == "1" {
			types.TypesWithExpiry = append(types.TypesWithExpiry, docType)
		}
	}
	return types, rows.Err()
}

// Legislations lists the enabled legislations ordered by name.
func (s *LookupsStore) Legislations(ctx context.Context) ([]model.Legislation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT SYSTEM_ID, TRIM(NAME) as NAME FROM LKP_PTA_LEGISL WHERE DISABLED = '0' ORDER BY NAME`,
	)
	if err != nil {
		return nil, fmt.Errorf("query legislations: %w", err)
	}
	defer rows.Close()

	legislations := make([]model.Legislation, 0)
	for rows.Next() {
		var legislation model.Legislation
		if err := rows.Scan(&legislation.SystemID, &legislation.Name); err != nil {
			return nil, fmt.Errorf("scan legislation: %w", err)
		}
		legislations = append(legislations, legislation)
	}
	return legislations, rows.Err()
}
