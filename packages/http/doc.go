// Package http builds and sends the single authenticated request of an
// invocation.
//
// It wraps the standard library's http package with:
//   - URL assembly against the server's /api root
//   - HTTP method inference from payload presence
//   - Bearer token and accept headers
//   - Multipart form data encoding for file uploads
//   - A fixed timeout and exactly one attempt, no retries
package http
