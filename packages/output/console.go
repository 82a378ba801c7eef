package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/gjson"

	"github.com/mealie-tools/mealie-api/packages/http"
)

// Style is the read-only set of colorizers handed to everything that
// writes to the console.
type Style struct {
	Success func(a ...any) string
	Error   func(a ...any) string
	Warn    func(a ...any) string
	Info    func(a ...any) string
	Detail  func(a ...any) string
	Bold    func(a ...any) string
}

// NewStyle builds the colorizer set. Passing noColor disables color for
// the whole process; it is never re-enabled.
func NewStyle(noColor bool) *Style {
	if noColor {
		color.NoColor = true
	}
	return &Style{
		Success: color.New(color.FgGreen).SprintFunc(),
		Error:   color.New(color.FgRed).SprintFunc(),
		Warn:    color.New(color.FgYellow).SprintFunc(),
		Info:    color.New(color.FgBlue).SprintFunc(),
		Detail:  color.New(color.FgCyan).SprintFunc(),
		Bold:    color.New(color.Bold).SprintFunc(),
	}
}

// Renderer formats a response for the terminal.
type Renderer struct {
	writer    io.Writer
	errWriter io.Writer
	style     *Style
	raw       bool
	query     string
}

type Option func(*Renderer)

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		writer:    os.Stdout,
		errWriter: os.Stderr,
		style:     NewStyle(false),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.writer = w
	}
}

func WithErrWriter(w io.Writer) Option {
	return func(r *Renderer) {
		r.errWriter = w
	}
}

func WithStyle(s *Style) Option {
	return func(r *Renderer) {
		r.style = s
	}
}

func WithRaw(raw bool) Option {
	return func(r *Renderer) {
		r.raw = raw
	}
}

func WithQuery(path string) Option {
	return func(r *Renderer) {
		r.query = path
	}
}

// Render writes the response and returns the process exit code: 0 for a
// 2xx status, 1 for anything else. That exit code is the single signal a
// caller can script against.
func (r *Renderer) Render(resp *http.Response) int {
	code := 1
	if resp.IsSuccess() {
		code = 0
	}

	if r.raw {
		// Body verbatim, nothing else, for piping into other tools.
		fmt.Fprint(r.writer, resp.BodyString())
		return code
	}

	if r.query != "" {
		r.renderQuery(resp)
		return code
	}

	r.renderBanner(resp)

	content := strings.TrimSpace(resp.BodyString())
	if content == "" {
		if resp.IsSuccess() {
			fmt.Fprintln(r.writer, r.style.Warn("Success but no response body received"))
		} else {
			fmt.Fprintln(r.writer, r.style.Warn("No response body received"))
		}
		return code
	}

	fmt.Fprintf(r.writer, "\nResponse:\n")

	contentType := strings.ToLower(resp.ContentType())
	switch {
	case strings.Contains(contentType, "application/json"):
		r.renderJSON(content)
	case strings.Contains(contentType, "text/html"):
		fmt.Fprintln(r.writer, r.style.Warn("HTML Response (parsed):"))
		fmt.Fprintln(r.writer, ExtractText(content))
	default:
		if contentType != "" {
			fmt.Fprintln(r.writer, r.style.Warn("Content-Type: "+contentType))
		}
		fmt.Fprintln(r.writer, content)
	}

	return code
}

func (r *Renderer) renderBanner(resp *http.Response) {
	switch {
	case resp.IsSuccess():
		fmt.Fprintln(r.writer, r.style.Success(fmt.Sprintf("✓ Success (HTTP %d)", resp.StatusCode)))
	case resp.IsClientError():
		fmt.Fprintln(r.writer, r.style.Error(fmt.Sprintf("✗ Client Error (HTTP %d)", resp.StatusCode)))
	case resp.IsServerError():
		fmt.Fprintln(r.writer, r.style.Error(fmt.Sprintf("✗ Server Error (HTTP %d)", resp.StatusCode)))
	default:
		fmt.Fprintln(r.writer, r.style.Warn(fmt.Sprintf("! Unexpected Status (HTTP %d)", resp.StatusCode)))
	}
}

// renderJSON pretty-prints with two-space indentation, leaving non-ASCII
// characters unescaped. A body that fails to parse despite the declared
// content type degrades to a warning plus the raw text.
func (r *Renderer) renderJSON(content string) {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		fmt.Fprintln(r.writer, r.style.Warn("Response claims to be JSON but is not valid JSON:"))
		fmt.Fprintln(r.writer, content)
		return
	}

	enc := json.NewEncoder(r.writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(parsed); err != nil {
		fmt.Fprintln(r.writer, content)
	}
}

// renderQuery emits only the value at the configured gjson path.
func (r *Renderer) renderQuery(resp *http.Response) {
	if !resp.IsJSON() {
		fmt.Fprintln(r.errWriter, r.style.Warn("warning: --query requires a JSON response"))
		fmt.Fprint(r.writer, resp.BodyString())
		return
	}

	result := gjson.GetBytes(resp.Body, r.query)
	if !result.Exists() {
		fmt.Fprintln(r.errWriter, r.style.Warn("warning: no value at path "+r.query))
		return
	}

	if result.Type == gjson.JSON {
		fmt.Fprintln(r.writer, result.Raw)
		return
	}
	fmt.Fprintln(r.writer, result.String())
}

func (r *Renderer) FormatError(err error) {
	fmt.Fprintf(r.writer, "%s %v\n", r.style.Error("Error:"), err)
}
