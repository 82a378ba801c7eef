// Package payload parses the JSON payload argument and classifies its
// fields for multipart upload.
//
// Parsing tolerates common shell-escaping artifacts: when the raw argument
// fails to decode, a fixed set of escape sequences is unwound and the
// decode retried. Classification decides which fields name files on disk
// and should be streamed as attachments instead of sent as form values.
package payload
