package dms

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rta-apps/pta-archiving-backend/pkg/config"
)

const (
	// writeChunkSize is the upload chunk passed to WriteStream.
	writeChunkSize = 48 * 1024
	// readChunkSize is the requestedBytes value passed to ReadStream.
	readChunkSize = 64 * 1024

	requestTimeout = 60 * time.Second
)

// Client talks to the DMSvr service with hand-built SOAP 1.1 envelopes.
type Client struct {
	endpoint     string
	library      string
	loginContext string
	user         string
	password     string

	httpClient *http.Client
	logger     zerolog.Logger
}

var _ Service = (*Client)(nil)

// Endpoint derives the service address from the WSDL URL: the address is
// the URL with its query (?wsdl, ?singleWsdl) removed.
func Endpoint(wsdlURL string) string {
	if i := strings.Index(wsdlURL, "?"); i >= 0 {
		return wsdlURL[:i]
	}
	return wsdlURL
}

// NewClient builds a client for the DMSvr service described by cfg.
func NewClient(cfg config.DMS, logger zerolog.Logger) *Client {
	return &Client{
		endpoint:     Endpoint(cfg.WSDLURL),
		library:      cfg.Library,
		loginContext: cfg.LoginContext,
		user:         cfg.User,
		password:     cfg.Password,
		httpClient:   &http.Client{Timeout: requestTimeout},
		logger:       logger.With().Str("component", "dms").Logger(),
	}
}

// Login authenticates a user against the DMS and returns the session
// ticket (DST). A rejected login is ErrInvalidCredentials; transport and
// fault failures come back as *OpError.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.login(ctx, username, password)
}

// SystemLogin authenticates with the configured service account.
func (c *Client) SystemLogin(ctx context.Context) (string, error) {
	return c.login(ctx, c.user, c.password)
}

func (c *Client) login(ctx context.Context, username, password string) (string, error) {
	request := loginRequest{
		Call: loginCall{
			LoginInfo: loginInfoArray{Items: []loginInfo{{
				Network:      0,
				LoginContext: c.loginContext,
				Username:     username,
				Password:     password,
			}}},
			Authen: 1,
			DSTIn:  "",
		},
	}

	var reply loginReply
	if err := c.call(ctx, portSvc, "LoginSvr5", request, &reply); err != nil {
		return "", err
	}
	if reply.ResultCode != 0 || reply.DSTOut == "" {
		c.logger.Error().
			Str("username", username).
			Int("result_code", reply.ResultCode).
			Msg("DMS login failed")
		return "", ErrInvalidCredentials
	}
	return reply.DSTOut, nil
}

// UploadDocument stores content as a new document: CreateObject makes the
// profile, PutDoc and the write-stream calls move the bytes, UpdateObject
// unlocks the profile. The returned document number keys the archive row.
func (c *Client) UploadDocument(ctx context.Context, dst string, content io.Reader, meta UploadMetadata) (string, error) {
	author := meta.Author
	if author == "" {
		author = "SYSTEM"
	}
	appID := meta.AppID
	if appID == "" {
		appID = "UNKNOWN"
	}

	c.logger.Info().
		Str("docname", meta.DocName).
		Str("author", author).
		Msg("uploading document")

	createRequest := createObjectRequest{
		Call: createObjectCall{
			DSTIn:      dst,
			ObjectType: "DEF_PROF",
			Properties: newPropertyBag(
				[]string{
					"%TARGET_LIBRARY", "%RECENTLY_USED_LOCATION", "DOCNAME", "TYPE_ID",
					"AUTHOR_ID", "TYPIST_ID", "ABSTRACT", "APP_ID", "SECURITY",
				},
				[]anyValue{
					{Type: "x:string", Value: c.library},
					{Type: "x:string", Value: `DOCSOPEN!L\` + c.library},
					{Type: "x:string", Value: meta.DocName},
					{Type: "x:string", Value: "DEFAULT"},
					{Type: "x:string", Value: author},
					{Type: "x:string", Value: author},
					{Type: "x:string", Value: meta.Abstract},
					{Type: "x:string", Value: appID},
					{Type: "x:string", Value: "1"},
				},
			),
		},
	}

	var createReply createObjectReply
	if err := c.call(ctx, portSvc, "CreateObject", createRequest, &createReply); err != nil {
		return "", err
	}
	if createReply.ResultCode != 0 || createReply.RetProperties == nil {
		return "", &OpError{Op: "CreateObject", Code: createReply.ResultCode, Err: errorDocErr(createReply.ErrorDoc)}
	}

	docNumber, ok := createReply.RetProperties.Lookup("%OBJECT_IDENTIFIER")
	if !ok {
		return "", &OpError{Op: "CreateObject", Err: errors.New("reply missing %OBJECT_IDENTIFIER")}
	}
	versionID, ok := createReply.RetProperties.Lookup("%VERSION_ID")
	if !ok {
		return "", &OpError{Op: "CreateObject", Err: errors.New("reply missing %VERSION_ID")}
	}
	c.logger.Info().Str("docnumber", docNumber).Msg("document profile created")

	putRequest := putDocRequest{Call: putDocCall{
		DSTIn:          dst,
		LibraryName:    c.library,
		DocumentNumber: docNumber,
		VersionID:      versionID,
	}}
	var putReply putDocReply
	if err := c.call(ctx, portSvc, "PutDoc", putRequest, &putReply); err != nil {
		return "", err
	}
	if putReply.ResultCode != 0 || putReply.PutDocID == "" {
		return "", &OpError{Op: "PutDoc", Code: putReply.ResultCode}
	}
	defer c.releaseObject(ctx, putReply.PutDocID)

	streamRequest := getWriteStreamRequest{Call: contentIDCall{DSTIn: dst, ContentID: putReply.PutDocID}}
	var streamReply getWriteStreamReply
	if err := c.call(ctx, portObj, "GetWriteStream", streamRequest, &streamReply); err != nil {
		return "", err
	}
	if streamReply.ResultCode != 0 || streamReply.StreamID == "" {
		return "", &OpError{Op: "GetWriteStream", Code: streamReply.ResultCode}
	}
	defer c.releaseObject(ctx, streamReply.StreamID)

	buf := make([]byte, writeChunkSize)
	for {
		n, err := io.ReadFull(content, buf)
		if n > 0 {
			writeRequest := writeStreamRequest{Call: writeStreamCall{
				StreamID: streamReply.StreamID,
				StreamData: streamData{
					BufferSize:   n,
					StreamBuffer: base64.StdEncoding.EncodeToString(buf[:n]),
				},
			}}
			var writeReply writeStreamReply
			if callErr := c.call(ctx, portObj, "WriteStream", writeRequest, &writeReply); callErr != nil {
				return "", callErr
			}
			if writeReply.ResultCode != 0 {
				return "", &OpError{Op: "WriteStream", Code: writeReply.ResultCode}
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read upload content: %w", err)
		}
	}

	commitRequest := commitStreamRequest{Call: commitStreamCall{StreamID: streamReply.StreamID, Flags: 0}}
	var commitReply commitStreamReply
	if err := c.call(ctx, portObj, "CommitStream", commitRequest, &commitReply); err != nil {
		return "", err
	}
	if commitReply.ResultCode != 0 {
		return "", &OpError{Op: "CommitStream", Code: commitReply.ResultCode}
	}

	unlockRequest := updateObjectRequest{Call: createObjectCall{
		DSTIn:      dst,
		ObjectType: "Profile",
		Properties: newPropertyBag(
			[]string{"%OBJECT_TYPE_ID", "%OBJECT_IDENTIFIER", "%TARGET_LIBRARY", "%STATUS"},
			[]anyValue{
				{Type: "x:string", Value: "def_prof"},
				{Type: "x:int", Value: docNumber},
				{Type: "x:string", Value: strings.ToLower(c.library)},
				{Type: "x:string", Value: "%UNLOCK"},
			},
		),
	}}
	var unlockReply updateObjectReply
	if err := c.call(ctx, portSvc, "UpdateObject", unlockRequest, &unlockReply); err != nil {
		return "", err
	}
	if unlockReply.ResultCode != 0 {
		// The content is committed at this point; a locked profile is
		// recoverable by an administrator, a lost upload is not.
		c.logger.Warn().
			Str("docnumber", docNumber).
			Int("result_code", unlockReply.ResultCode).
			Msg("unlock failed, document may remain locked")
	}

	return docNumber, nil
}

// FetchDocument retrieves a document's content and filename. A document
// the service cannot locate is ErrDocumentNotFound.
func (c *Client) FetchDocument(ctx context.Context, dst, docNumber string) ([]byte, string, error) {
	request := getDocRequest{Call: getDocCall{
		DSTIn: dst,
		Criteria: criteriaBag{
			CriteriaCount:  2,
			CriteriaNames:  stringArray{Items: []string{"%TARGET_LIBRARY", "%DOCUMENT_NUMBER"}},
			CriteriaValues: stringArray{Items: []string{c.library, docNumber}},
		},
	}}
	var reply getDocReply
	if err := c.call(ctx, portSvc, "GetDocSvr3", request, &reply); err != nil {
		return nil, "", err
	}
	if reply.ResultCode != 0 || reply.GetDocID == "" {
		c.logger.Warn().
			Str("docnumber", docNumber).
			Int("result_code", reply.ResultCode).
			Msg("document not found")
		return nil, "", ErrDocumentNotFound
	}
	defer c.releaseObject(ctx, reply.GetDocID)

	filename := docNumber
	if name, ok := reply.DocProperties.Lookup("%VERSION_FILE_NAME"); ok && name != "" {
		filename = name
	}

	streamRequest := getReadStreamRequest{Call: contentIDCall{DSTIn: dst, ContentID: reply.GetDocID}}
	var streamReply getReadStreamReply
	if err := c.call(ctx, portObj, "GetReadStream", streamRequest, &streamReply); err != nil {
		return nil, "", err
	}
	if streamReply.ResultCode != 0 || streamReply.StreamID == "" {
		return nil, "", &OpError{Op: "GetReadStream", Code: streamReply.ResultCode}
	}
	defer c.releaseObject(ctx, streamReply.StreamID)

	var content bytes.Buffer
	for {
		readRequest := readStreamRequest{Call: readStreamCall{
			StreamID:       streamReply.StreamID,
			RequestedBytes: readChunkSize,
		}}
		var readReply readStreamReply
		if err := c.call(ctx, portObj, "ReadStream", readRequest, &readReply); err != nil {
			return nil, "", err
		}
		if readReply.ResultCode != 0 || readReply.StreamData == nil {
			break
		}
		chunk, err := base64.StdEncoding.DecodeString(strings.TrimSpace(readReply.StreamData.StreamBuffer))
		if err != nil {
			return nil, "", &OpError{Op: "ReadStream", Err: err}
		}
		if len(chunk) == 0 {
			break
		}
		content.Write(chunk)
	}

	return content.Bytes(), filename, nil
}

// releaseObject frees a server-side object handle. Failures are logged and
// otherwise ignored; cleanup runs even after the surrounding call failed
// or its context expired.
func (c *Client) releaseObject(ctx context.Context, objectID string) {
	request := releaseObjectRequest{Call: releaseObjectCall{ObjectID: objectID}}
	var reply releaseObjectReply
	if err := c.call(context.WithoutCancel(ctx), portObj, "ReleaseObject", request, &reply); err != nil {
		c.logger.Debug().Err(err).Str("object_id", objectID).Msg("release failed")
	}
}

func (c *Client) call(ctx context.Context, port, operation string, request, reply interface{}) error {
	body, err := xml.Marshal(newRequestEnvelope(request))
	if err != nil {
		return &OpError{Op: operation, Err: err}
	}
	payload := append([]byte(xml.Header), body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return &OpError{Op: operation, Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", fmt.Sprintf("%q", nsTempURI+port+"/"+operation))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &OpError{Op: operation, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &OpError{Op: operation, Err: err}
	}

	var response responseEnvelope
	if err := xml.Unmarshal(raw, &response); err != nil {
		return &OpError{Op: operation, Err: fmt.Errorf("malformed response: %w", err)}
	}
	if response.Body.Fault != nil {
		return &OpError{Op: operation, Err: fmt.Errorf("fault %s: %s", response.Body.Fault.Code, response.Body.Fault.String)}
	}
	if resp.StatusCode != http.StatusOK {
		return &OpError{Op: operation, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := xml.Unmarshal(response.Body.InnerXML, reply); err != nil {
		return &OpError{Op: operation, Err: fmt.Errorf("malformed %s reply: %w", operation, err)}
	}
	return nil
}

func errorDocErr(doc string) error {
	if doc == "" {
		return nil
	}
	return errors.New(doc)
}
