package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	httpclient "github.com/mealie-tools/mealie-api/packages/http"
	"github.com/mealie-tools/mealie-api/packages/payload"
)

// DebugReporter prints full request and response metadata for verbose
// mode. The bearer token is always redacted.
type DebugReporter struct {
	writer io.Writer
	style  *Style
}

func NewDebugReporter(w io.Writer, style *Style) *DebugReporter {
	return &DebugReporter{writer: w, style: style}
}

// MaskToken redacts a bearer token down to its first 8 and last 4
// characters. Tokens too short to mask meaningfully become ***.
func MaskToken(token string) string {
	if len(token) > 12 {
		return token[:8] + "..." + token[len(token)-4:]
	}
	return "***"
}

// HumanSize renders a byte count the way a person reads it.
func HumanSize(n int64) string {
	if n > 1024 {
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%d bytes", n)
}

// PrintRequest dumps the request before it is sent. The multipart body
// listing reuses the classifier's file predicate so it never disagrees
// with what actually gets uploaded.
func (d *DebugReporter) PrintRequest(req *httpclient.Request, p payload.Payload, multipart bool) {
	fmt.Fprintln(d.writer, d.style.Info("=== HTTP REQUEST DEBUG INFO ==="))
	fmt.Fprintf(d.writer, "URL: %s\n", req.URL)
	fmt.Fprintf(d.writer, "Method: %s\n", req.Method)

	timeout := req.Timeout
	if timeout == 0 {
		timeout = httpclient.DefaultTimeout
	}
	fmt.Fprintf(d.writer, "Timeout: %s\n", timeout)

	contentType := "application/json"
	if multipart {
		contentType = "multipart/form-data"
	}
	fmt.Fprintf(d.writer, "Content Type: %s\n\n", contentType)

	fmt.Fprintln(d.writer, d.style.Warn("Headers:"))
	for _, k := range sortedKeys(req.Headers) {
		v := req.Headers[k]
		if strings.EqualFold(k, "Authorization") && strings.HasPrefix(v, "Bearer ") {
			fmt.Fprintf(d.writer, "  %s: Bearer %s\n", k, MaskToken(strings.TrimPrefix(v, "Bearer ")))
			continue
		}
		fmt.Fprintf(d.writer, "  %s: %s\n", k, v)
	}
	fmt.Fprintln(d.writer)

	if p == nil {
		fmt.Fprintln(d.writer, d.style.Warn("Request Body: (empty)"))
		fmt.Fprintln(d.writer)
		return
	}

	if multipart {
		fmt.Fprintln(d.writer, d.style.Warn("Request Body (Multipart Form Data):"))
		for _, key := range sortedKeys(p) {
			value := p[key]
			if !payload.IsFileReference(key, value) {
				fmt.Fprintf(d.writer, "  %s: %v\n", key, value)
				continue
			}

			path := payload.ExpandPath(value.(string))
			if info, err := os.Stat(path); err == nil {
				fmt.Fprintf(d.writer, "  %s: %s (%s)\n", key, path, HumanSize(info.Size()))
			} else {
				fmt.Fprintf(d.writer, "  %s: %v (FILE NOT FOUND)\n", key, value)
			}
		}
	} else {
		fmt.Fprintln(d.writer, d.style.Warn("Request Body (JSON):"))
		fmt.Fprintln(d.writer, p.Pretty())
	}
	fmt.Fprintln(d.writer)
}

// PrintResponse dumps the response metadata after it arrives.
func (d *DebugReporter) PrintResponse(resp *httpclient.Response) {
	fmt.Fprintln(d.writer, d.style.Info("=== HTTP RESPONSE DEBUG INFO ==="))
	fmt.Fprintf(d.writer, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintf(d.writer, "Reason: %s\n", resp.ReasonPhrase())
	fmt.Fprintf(d.writer, "URL: %s\n", resp.FinalURL)
	if resp.Duration > 0 {
		fmt.Fprintf(d.writer, "Response Time: %.2fms\n", float64(resp.Duration.Microseconds())/1000)
	}
	fmt.Fprintln(d.writer)

	fmt.Fprintln(d.writer, d.style.Warn("Response Headers:"))
	for _, k := range sortedKeys(resp.Headers) {
		fmt.Fprintf(d.writer, "  %s: %s\n", k, resp.Headers[k])
	}
	fmt.Fprintln(d.writer)

	fmt.Fprintf(d.writer, "Response Size: %s\n\n", HumanSize(int64(len(resp.Body))))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
