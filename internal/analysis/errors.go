package analysis

import "fmt"

// InvalidRepoError is returned when the repository identifier cannot be
// parsed into owner/repo. Surfaced to the caller before traversal begins.
type InvalidRepoError struct {
	Input string
}

// Error implements the error interface.
func (e InvalidRepoError) Error() string {
	return fmt.Sprintf("invalid repository identifier %q: expected owner/repo or a github.com URL", e.Input)
}

// MetadataError is returned when the repository metadata lookup fails.
// Unlike per-node traversal failures it is terminal: the run aborts and
// nothing is recorded.
type MetadataError struct {
	Repo string
	Err  error
}

// Error implements the error interface.
func (e MetadataError) Error() string {
	return fmt.Sprintf("fetch metadata for %q: %v", e.Repo, e.Err)
}

// Unwrap exposes the underlying lookup failure.
func (e MetadataError) Unwrap() error { return e.Err }

// ReportNotFoundError is returned when the requested report does not exist
// in the store.
type ReportNotFoundError struct {
	Id string
}

// Error implements the error interface.
func (e ReportNotFoundError) Error() string {
	return fmt.Sprintf("report %q not found", e.Id)
}

// NotFoundError is reported by fetch adapters when the remote path does not
// exist. The aggregator treats it the same as any other fetch failure
// (contribute nothing, continue) but logs it without the error chain.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path %q not found", e.Path)
}

// TransientError wraps a transport failure or non-success response from the
// remote API. Traversal recovers from it locally; it is never terminal.
type TransientError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying transport failure.
func (e *TransientError) Unwrap() error { return e.Err }
