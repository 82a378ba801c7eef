// Package output renders responses for human or script consumption.
//
// The Renderer handles the status banner, content-type aware body
// formatting (JSON pretty-print, HTML text extraction, passthrough) and
// raw mode for piping. The DebugReporter dumps request and response
// metadata in verbose mode with the bearer token redacted.
package output
