package dms

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidCredentials is returned when the DMS rejects a login.
	ErrInvalidCredentials = errors.New("invalid DMS credentials")

	// ErrDocumentNotFound is returned when a document cannot be located
	// in the DMS.
	ErrDocumentNotFound = errors.New("document not found in DMS")
)

// OpError describes a failed DMS operation: either a transport/fault
// failure (Err set) or a non-zero service result code.
type OpError struct {
	Op   string
	Code int
	Err  error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dms: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("dms: %s failed with result code %d", e.Op, e.Code)
}

func (e *OpError) Unwrap() error { return e.Err }

// UploadMetadata carries the profile fields of a document upload.
type UploadMetadata struct {
	// DocName is the DOCNAME profile property.
	DocName string
	// Abstract is the ABSTRACT profile property.
	Abstract string
	// Filename is the original upload filename, kept for logging.
	Filename string
	// Author is used for both AUTHOR_ID and TYPIST_ID.
	Author string
	// AppID is the DMS application id resolved from the file extension.
	AppID string
}

// Service is the document management surface the rest of the backend
// consumes. Client implements it against the live SOAP service; tests
// substitute a mock.
type Service interface {
	// Login authenticates a user and returns the session ticket (DST).
	Login(ctx context.Context, username, password string) (string, error)

	// SystemLogin authenticates with the configured service account.
	SystemLogin(ctx context.Context) (string, error)

	// UploadDocument stores content as a new document under the given
	// session ticket and returns the assigned document number.
	UploadDocument(ctx context.Context, dst string, content io.Reader, meta UploadMetadata) (string, error)

	// FetchDocument retrieves a document's content and filename.
	FetchDocument(ctx context.Context, dst, docNumber string) ([]byte, string, error)
}
