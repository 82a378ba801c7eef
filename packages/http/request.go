package http

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealie-tools/mealie-api/packages/core/config"
	"github.com/mealie-tools/mealie-api/packages/payload"
)

// APIPrefix is the path segment every Mealie endpoint lives under.
const APIPrefix = "/api"

// Request is the fully assembled call for one invocation. It is built
// once and never mutated afterwards.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte // JSON-encoded payload, nil when absent

	// Files and Fields carry the multipart body: field name to resolved
	// path, and field name to plain value. Both nil outside multipart mode.
	Files  map[string]string
	Fields map[string]any

	Timeout time.Duration
}

// Multipart reports whether the request carries a multipart form body.
func (r *Request) Multipart() bool {
	return r.Files != nil || r.Fields != nil
}

// FileNames returns the multipart file field names in stable order.
func (r *Request) FileNames() []string {
	return sortedKeys(r.Files)
}

// BuildRequest assembles the one request this invocation will send. In
// multipart mode the payload is classified into file uploads and plain
// fields, and the Content-Type header is left unset so the transport can
// supply the boundary value itself.
func BuildRequest(creds *config.Credentials, endpoint string, p payload.Payload, explicitMethod string, multipart bool) (*Request, error) {
	req := &Request{
		Method: InferMethod(p, explicitMethod),
		URL:    JoinURL(creds.BaseURL, endpoint),
		Headers: map[string]string{
			"Authorization": "Bearer " + creds.Token,
			"Accept":        "application/json",
			"X-Request-ID":  uuid.NewString(),
		},
	}

	if !multipart {
		req.Headers["Content-Type"] = "application/json"
	}

	if p == nil || !methodTakesBody(req.Method) {
		return req, nil
	}

	if multipart {
		classified, err := payload.Classify(p)
		if err != nil {
			return nil, err
		}
		req.Files = classified.Files
		req.Fields = classified.Fields
		return req, nil
	}

	body, err := p.Encode()
	if err != nil {
		return nil, err
	}
	req.Body = body
	return req, nil
}

// JoinURL concatenates the base URL, the API root, and the endpoint. The
// base URL arrives with its trailing slash already stripped.
func JoinURL(baseURL, endpoint string) string {
	if strings.HasPrefix(endpoint, "/") {
		return baseURL + APIPrefix + endpoint
	}
	return baseURL + APIPrefix + "/" + endpoint
}

// InferMethod picks the HTTP method: an explicit one wins, otherwise POST
// when a payload is present and GET when not.
func InferMethod(p payload.Payload, explicit string) string {
	if explicit != "" {
		return strings.ToUpper(explicit)
	}
	if p != nil {
		return "POST"
	}
	return "GET"
}

func methodTakesBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}
