package dms

import "encoding/xml"

// XML namespaces of the DMSvr WCF service. The prefixes are declared once
// on the envelope and used literally in the field tags below; encoding/xml
// has no first-class prefix support, so the tags spell them out.
const (
	nsSoapEnv      = "http://schemas.xmlsoap.org/soap/envelope/"
	nsTempURI      = "http://tempuri.org/"
	nsDataContract = "http://schemas.datacontract.org/2004/07/OpenText.DMSvr.Serializable"
	nsArrays       = "http://schemas.microsoft.com/2003/10/Serialization/Arrays"
	nsXSI          = "http://www.w3.org/2001/XMLSchema-instance"
	nsXSD          = "http://www.w3.org/2001/XMLSchema"
)

// Service ports. Operations are split across two WCF endpoints that share
// one address; the port name only changes the SOAPAction.
const (
	portSvc = "IDMSvc"
	portObj = "IDMObj"
)

type requestEnvelope struct {
	XMLName xml.Name `xml:"s:Envelope"`
	NSS     string   `xml:"xmlns:s,attr"`
	NST     string   `xml:"xmlns:t,attr"`
	NSD     string   `xml:"xmlns:d,attr"`
	NSB     string   `xml:"xmlns:b,attr"`
	NSI     string   `xml:"xmlns:i,attr"`
	NSX     string   `xml:"xmlns:x,attr"`
	Body    requestBody
}

type requestBody struct {
	XMLName   xml.Name `xml:"s:Body"`
	Operation interface{}
}

func newRequestEnvelope(operation interface{}) requestEnvelope {
	return requestEnvelope{
		NSS:  nsSoapEnv,
		NST:  nsTempURI,
		NSD:  nsDataContract,
		NSB:  nsArrays,
		NSI:  nsXSI,
		NSX:  nsXSD,
		Body: requestBody{Operation: operation},
	}
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault    *soapFault `xml:"Fault"`
	InnerXML []byte     `xml:",innerxml"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// anyValue is one entry of an ArrayOfanyType property bag. Type carries the
// xsi:type of the value, e.g. "x:string" or "x:int".
type anyValue struct {
	Type  string `xml:"i:type,attr"`
	Value string `xml:",chardata"`
}

type anyValueArray struct {
	Items []anyValue `xml:"b:anyType"`
}

type stringArray struct {
	Items []string `xml:"b:string"`
}

// propertyBag is the name/value pair list CreateObject and UpdateObject
// take. Names and values are parallel arrays.
type propertyBag struct {
	PropertyCount  int           `xml:"d:propertyCount"`
	PropertyNames  stringArray   `xml:"d:propertyNames"`
	PropertyValues anyValueArray `xml:"d:propertyValues"`
}

func newPropertyBag(names []string, values []anyValue) propertyBag {
	return propertyBag{
		PropertyCount:  len(names),
		PropertyNames:  stringArray{Items: names},
		PropertyValues: anyValueArray{Items: values},
	}
}

// Requests, one struct per operation. The operation element and its call
// wrapper live in the tempuri namespace, the call members in the data
// contract namespace.

type loginRequest struct {
	XMLName xml.Name  `xml:"t:LoginSvr5"`
	Call    loginCall `xml:"t:call"`
}

type loginCall struct {
	LoginInfo loginInfoArray `xml:"d:loginInfo"`
	Authen    int            `xml:"d:authen"`
	DSTIn     string         `xml:"d:dstIn"`
}

type loginInfoArray struct {
	Items []loginInfo `xml:"d:DMSvrLoginInfo"`
}

type loginInfo struct {
	Network      int    `xml:"d:network"`
	LoginContext string `xml:"d:loginContext"`
	Username     string `xml:"d:username"`
	Password     string `xml:"d:password"`
}

type createObjectRequest struct {
	XMLName xml.Name         `xml:"t:CreateObject"`
	Call    createObjectCall `xml:"t:call"`
}

type createObjectCall struct {
	DSTIn      string      `xml:"d:dstIn"`
	ObjectType string      `xml:"d:objectType"`
	Properties propertyBag `xml:"d:properties"`
}

type putDocRequest struct {
	XMLName xml.Name   `xml:"t:PutDoc"`
	Call    putDocCall `xml:"t:call"`
}

type putDocCall struct {
	DSTIn          string `xml:"d:dstIn"`
	LibraryName    string `xml:"d:libraryName"`
	DocumentNumber string `xml:"d:documentNumber"`
	VersionID      string `xml:"d:versionID"`
}

type getWriteStreamRequest struct {
	XMLName xml.Name      `xml:"t:GetWriteStream"`
	Call    contentIDCall `xml:"t:call"`
}

type getReadStreamRequest struct {
	XMLName xml.Name      `xml:"t:GetReadStream"`
	Call    contentIDCall `xml:"t:call"`
}

type contentIDCall struct {
	DSTIn     string `xml:"d:dstIn"`
	ContentID string `xml:"d:contentID"`
}

type writeStreamRequest struct {
	XMLName xml.Name        `xml:"t:WriteStream"`
	Call    writeStreamCall `xml:"t:call"`
}

type writeStreamCall struct {
	StreamID   string     `xml:"d:streamID"`
	StreamData streamData `xml:"d:streamData"`
}

// streamData carries one chunk of file content. StreamBuffer is
// base64Binary on the wire; encoding/xml does not encode []byte itself, so
// the caller base64-encodes into the string.
type streamData struct {
	BufferSize   int    `xml:"d:bufferSize"`
	StreamBuffer string `xml:"d:streamBuffer"`
}

type commitStreamRequest struct {
	XMLName xml.Name         `xml:"t:CommitStream"`
	Call    commitStreamCall `xml:"t:call"`
}

type commitStreamCall struct {
	StreamID string `xml:"d:streamID"`
	Flags    int    `xml:"d:flags"`
}

type readStreamRequest struct {
	XMLName xml.Name       `xml:"t:ReadStream"`
	Call    readStreamCall `xml:"t:call"`
}

type readStreamCall struct {
	StreamID       string `xml:"d:streamID"`
	RequestedBytes int    `xml:"d:requestedBytes"`
}

type updateObjectRequest struct {
	XMLName xml.Name         `xml:"t:UpdateObject"`
	Call    createObjectCall `xml:"t:call"`
}

type getDocRequest struct {
	XMLName xml.Name   `xml:"t:GetDocSvr3"`
	Call    getDocCall `xml:"t:call"`
}

type getDocCall struct {
	DSTIn    string      `xml:"d:dstIn"`
	Criteria criteriaBag `xml:"d:criteria"`
}

// criteriaBag is the search criteria list of GetDocSvr3. Unlike the
// property bags, both sides are plain string arrays.
type criteriaBag struct {
	CriteriaCount  int         `xml:"d:criteriaCount"`
	CriteriaNames  stringArray `xml:"d:criteriaNames"`
	CriteriaValues stringArray `xml:"d:criteriaValues"`
}

type releaseObjectRequest struct {
	XMLName xml.Name          `xml:"t:ReleaseObject"`
	Call    releaseObjectCall `xml:"t:call"`
}

type releaseObjectCall struct {
	ObjectID string `xml:"d:objectID"`
}

// Replies. Field tags carry no namespace so they match by local name
// whatever prefix the server serializes with.

type loginReply struct {
	XMLName    xml.Name `xml:"LoginSvr5Response"`
	ResultCode int      `xml:"resultCode"`
	ErrorDoc   string   `xml:"errorDoc"`
	DSTOut     string   `xml:"DSTOut"`
}

type createObjectReply struct {
	XMLName       xml.Name         `xml:"CreateObjectResponse"`
	ResultCode    int              `xml:"resultCode"`
	ErrorDoc      string           `xml:"errorDoc"`
	RetProperties *replyProperties `xml:"retProperties"`
}

type putDocReply struct {
	XMLName    xml.Name `xml:"PutDocResponse"`
	ResultCode int      `xml:"resultCode"`
	PutDocID   string   `xml:"putDocID"`
}

type getWriteStreamReply struct {
	XMLName    xml.Name `xml:"GetWriteStreamResponse"`
	ResultCode int      `xml:"resultCode"`
	StreamID   string   `xml:"streamID"`
}

type writeStreamReply struct {
	XMLName    xml.Name `xml:"WriteStreamResponse"`
	ResultCode int      `xml:"resultCode"`
}

type commitStreamReply struct {
	XMLName    xml.Name `xml:"CommitStreamResponse"`
	ResultCode int      `xml:"resultCode"`
}

type updateObjectReply struct {
	XMLName    xml.Name `xml:"UpdateObjectResponse"`
	ResultCode int      `xml:"resultCode"`
}

type getDocReply struct {
	XMLName       xml.Name         `xml:"GetDocSvr3Response"`
	ResultCode    int              `xml:"resultCode"`
	GetDocID      string           `xml:"getDocID"`
	DocProperties *replyProperties `xml:"docProperties"`
}

type getReadStreamReply struct {
	XMLName    xml.Name `xml:"GetReadStreamResponse"`
	ResultCode int      `xml:"resultCode"`
	StreamID   string   `xml:"streamID"`
}

type readStreamReply struct {
	XMLName    xml.Name        `xml:"ReadStreamResponse"`
	ResultCode int             `xml:"resultCode"`
	StreamData *readStreamData `xml:"streamData"`
}

type readStreamData struct {
	BufferSize   int    `xml:"bufferSize"`
	StreamBuffer string `xml:"streamBuffer"`
}

type releaseObjectReply struct {
	XMLName    xml.Name `xml:"ReleaseObjectResponse"`
	ResultCode int      `xml:"resultCode"`
}

type replyProperties struct {
	PropertyNames  replyNames  `xml:"propertyNames"`
	PropertyValues replyValues `xml:"propertyValues"`
}

type replyNames struct {
	Items []string `xml:"string"`
}

type replyValues struct {
	Items []string `xml:"anyType"`
}

// Lookup returns the value at the same index as name in the parallel
// name/value arrays.
func (p *replyProperties) Lookup(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	for i, n := range p.PropertyNames.Items {
		if n == name && i < len(p.PropertyValues.Items) {
			return p.PropertyValues.Items[i], true
		}
	}
	return "", false
}
