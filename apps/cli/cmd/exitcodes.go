package cmd

// Exit codes for mealie-api. The HTTP status of the response collapses
// into the same success/failure signal as every other error, so callers
// can script against a single bit.
const (
	// ExitSuccess indicates a 2xx response, or that help was shown.
	ExitSuccess = 0

	// ExitFailure indicates any failure: bad payload, missing upload
	// file, transport error, or a non-2xx response.
	ExitFailure = 1
)
