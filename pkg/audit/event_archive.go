package audit

import (
	"fmt"
	"strconv"
)

// ArchiveEvent represents an archive create or update audit event
type ArchiveEvent struct {
	Username      string
	ClientIP      string
	ArchiveID     int64
	EmpNo         string
	Operation     string // "create", "update"
	DocumentCount int
	Success       bool
	ErrorMessage  string
}

func (e ArchiveEvent) MessageID() string {
	return "archive"
}

func (e ArchiveEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd archive for employee %s with %d document(s)", e.Username, e.Operation, e.EmpNo, e.DocumentCount)
	}
	msg := fmt.Sprintf("%s tried to %s archive for employee %s", e.Username, e.Operation, e.EmpNo)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ArchiveEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ArchiveEvent) Facility() int {
	return FacilityAuth
}

func (e ArchiveEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"empno": e.EmpNo,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result,
		},
	}
	if e.ArchiveID != 0 {
		sd[SDIDSubject]["archive"] = strconv.FormatInt(e.ArchiveID, 10)
	}
	return sd
}
