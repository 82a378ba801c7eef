package http

import (
	"encoding/json"
	"strings"
	"time"
)

// Response wraps the transport result. Rendering never mutates it.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
	FinalURL   string
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) BodyJSON() (any, error) {
	var result any
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "application/json")
}

func (r *Response) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "text/html")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// ReasonPhrase returns the textual part of the status line, e.g.
// "Not Found" for "404 Not Found".
func (r *Response) ReasonPhrase() string {
	_, reason, found := strings.Cut(r.Status, " ")
	if !found {
		return r.Status
	}
	return reason
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
