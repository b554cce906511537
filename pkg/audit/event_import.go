package audit

import (
	"fmt"
	"strconv"
)

// ImportEvent represents a bulk archive import audit event
type ImportEvent struct {
	Username     string
	ClientIP     string
	Filename     string
	Added        int
	Failed       int
	Success      bool
	ErrorMessage string
}

func (e ImportEvent) MessageID() string {
	return "import"
}

func (e ImportEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s imported %d employee(s) from %s", e.Username, e.Added, e.Filename)
	}
	msg := fmt.Sprintf("%s failed to import from %s (%d added, %d failed)", e.Username, e.Filename, e.Added, e.Failed)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ImportEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ImportEvent) Facility() int {
	return FacilityAuth
}

func (e ImportEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"file":   e.Filename,
			"added":  strconv.Itoa(e.Added),
			"failed": strconv.Itoa(e.Failed),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "import",
			"result":    result,
		},
	}
}
