// Package dms implements the SOAP client for the OpenText DMSvr document
// management service.
//
// The service is a WCF basicHttpBinding endpoint described by a WSDL; the
// client speaks SOAP 1.1 with hand-built envelopes instead of generated
// code. Operations are split across two ports that share one address:
//
//   - IDMSvc: LoginSvr5, CreateObject, PutDoc, GetDocSvr3, UpdateObject
//   - IDMObj: GetWriteStream, WriteStream, CommitStream, GetReadStream,
//     ReadStream, ReleaseObject
//
// # Sessions
//
// Every call carries a DST, the ticket LoginSvr5 issues. User-facing
// operations run under the ticket of the logged-in user; SystemLogin
// obtains a ticket for the configured service account.
//
// # Uploads and Downloads
//
// An upload is a chain: CreateObject makes the document profile from a
// property bag, PutDoc opens the content handle, GetWriteStream /
// WriteStream / CommitStream move the bytes in 48 KiB chunks, and
// UpdateObject unlocks the profile. Downloads mirror it with GetDocSvr3 /
// GetReadStream / ReadStream in 64 KiB chunks. ReleaseObject frees the
// server-side handles in both directions, success or failure.
package dms
