package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the decoded JSON object supplied on the command line.
// A nil Payload means no body was supplied.
type Payload map[string]any

// escapeRepairs lists the shell-escape sequences unwound when a payload
// fails to decode as-is, applied in order. The final entry rewrites \"
// globally, which can corrupt string values that legitimately contain
// escaped quotes; the trade-off favors payloads mangled by an interactive
// shell over hand-crafted ones.
var escapeRepairs = []struct{ from, to string }{
	{`\ `, ` `},
	{`\(`, `(`},
	{`\)`, `)`},
	{`\&`, `&`},
	{`\[`, `[`},
	{`\]`, `]`},
	{`\{`, `{`},
	{`\}`, `}`},
	{`\;`, `;`},
	{`\>`, `>`},
	{`\<`, `<`},
	{`\|`, `|`},
	{`\$`, `$`},
	{"\\`", "`"},
	{`\'`, `'`},
	{`\"`, `"`},
}

// MalformedPayloadError reports a payload that failed to decode even after
// escape repair. It carries both forms of the input so the user can see
// what the repair pass attempted.
type MalformedPayloadError struct {
	Original string
	Repaired string
	Err      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("invalid JSON payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// Parse decodes a raw payload argument. Empty or whitespace-only input
// means no body and returns a nil Payload. The repaired result reports
// whether the escape-repair pass was needed for the decode to succeed.
func Parse(raw string) (Payload, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, false, nil
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err == nil {
		return p, false, nil
	}

	fixed := RepairEscapes(raw)
	var repaired Payload
	if err := json.Unmarshal([]byte(fixed), &repaired); err != nil {
		return nil, false, &MalformedPayloadError{Original: raw, Repaired: fixed, Err: err}
	}
	return repaired, true, nil
}

// RepairEscapes unwinds shell-escape artifacts from a raw payload string.
func RepairEscapes(raw string) string {
	fixed := raw
	for _, r := range escapeRepairs {
		fixed = strings.ReplaceAll(fixed, r.from, r.to)
	}
	return fixed
}

// Encode renders the payload as compact JSON for transmission.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Pretty renders the payload as indented JSON with non-ASCII characters
// left unescaped.
func (p Payload) Pretty() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Sprintf("%v", map[string]any(p))
	}
	return strings.TrimRight(buf.String(), "\n")
}
