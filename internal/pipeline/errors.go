package pipeline

import "errors"

// Fault classes. Run wraps every error it returns in exactly one of these.
var (
	// ErrSourceResolution means the source name is unknown, or the source
	// returned something that is not a sequence of records. No output is written.
	ErrSourceResolution = errors.New("source resolution failed")
	// ErrFetch means the source's Fetch failed. No output is written.
	ErrFetch = errors.New("fetch failed")
	// ErrRender means a document could not be rendered. No output is written.
	ErrRender = errors.New("render failed")
	// ErrWrite means an output file could not be written. Artifacts written
	// before the failure are left in place.
	ErrWrite = errors.New("write failed")
)
