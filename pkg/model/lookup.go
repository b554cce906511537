package model

// Status is a row of LKP_PTA_EMP_STATUS.
type Status struct {
	SystemID    int64   `json:"system_id"`
	NameEnglish *string `json:"name_english"`
	NameArabic  *string `json:"name_arabic"`
}

// Legislation is a row of LKP_PTA_LEGISL.
type Legislation struct {
	SystemID int64   `json:"system_id"`
	Name     *string `json:"name"`
}

// SecurityLevel is a row of LKP_PTA_SECURITY.
type SecurityLevel struct {
	SystemID int64   `json:"system_id"`
	Name     *string `json:"name"`
}
