package types

import "errors"

// Error kinds surfaced by a batch run. Fatal kinds abort the run before any
// file is processed; per-file kinds are reported and the run continues.
var (
	// ErrPatternsUnavailable means the rules file is missing or holds no usable patterns.
	ErrPatternsUnavailable = errors.New("patterns unavailable")

	// ErrDirectoryUnreadable means the candidate files could not be enumerated.
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrNoCandidates means the target directory holds no candidate files.
	ErrNoCandidates = errors.New("no candidate files")

	// ErrFileOpenFailed means one candidate could not be opened.
	ErrFileOpenFailed = errors.New("file open failed")

	// ErrFileStatFailed means the size lookup for one candidate failed.
	ErrFileStatFailed = errors.New("file stat failed")
)

// IsFatal reports whether err aborts the whole run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrPatternsUnavailable) ||
		errors.Is(err, ErrDirectoryUnreadable) ||
		errors.Is(err, ErrNoCandidates)
}
