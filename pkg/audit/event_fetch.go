package audit

import "fmt"

// DocumentFetchEvent represents a document download audit event
type DocumentFetchEvent struct {
	Username     string
	ClientIP     string
	DocNumber    string
	Filename     string
	Success      bool
	ErrorMessage string
}

func (e DocumentFetchEvent) MessageID() string {
	return "fetch"
}

func (e DocumentFetchEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s fetched document %s (%s)", e.Username, e.DocNumber, e.Filename)
	}
	msg := fmt.Sprintf("%s tried to fetch document %s", e.Username, e.DocNumber)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e DocumentFetchEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e DocumentFetchEvent) Facility() int {
	return FacilityAuth
}

func (e DocumentFetchEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.Username,
		},
		SDIDSubject: {
			"document": e.DocNumber,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "fetch",
			"result":    result,
		},
	}
	if e.Filename != "" {
		sd[SDIDSubject]["filename"] = e.Filename
	}
	return sd
}
