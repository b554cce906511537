package model

// Document is an archived document row joined with its type name and
// legislation links. Expiry is formatted YYYY-MM-DD when present.
type Document struct {
	SystemID         int64    `json:"system_id"`
	DocNumber        *string  `json:"docnumber"`
	DocTypeID        *int64   `json:"doc_type_id"`
	Expiry           *string  `json:"expiry"`
	DocName          *string  `json:"doc_name"`
	LegislationIDs   []int64  `json:"legislation_ids"`
	LegislationNames []string `json:"legislation_names"`
}

// DocumentType is a row of LKP_PTA_DOC_TYPES.
type DocumentType struct {
	SystemID int64   `json:"system_id"`
	Name     *string `json:"name"`
}

// DocumentTypes splits the enabled types into the full list and the
// subset that carries an expiry date.
type DocumentTypes struct {
	AllTypes        []DocumentType `json:"all_types"`
	TypesWithExpiry []DocumentType `json:"types_with_expiry"`
}
