package audit

import (
	"fmt"
	"strconv"
)

// ExportEvent represents an archive export audit event
type ExportEvent struct {
	Username string
	ClientIP string
	Rows     int
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	return fmt.Sprintf("%s exported %d archive row(s)", e.Username, e.Rows)
}

func (e ExportEvent) Severity() Severity {
	return SeverityInfo
}

func (e ExportEvent) Facility() int {
	return FacilityAuth
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"rows": strconv.Itoa(e.Rows),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "export",
		},
	}
}
