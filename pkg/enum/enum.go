// Package enum discovers the candidate files of a batch run.
package enum

// Config for candidate discovery.
type Config struct {
	// Root is the directory whose direct children are considered.
	Root string

	// Extension is the required file extension, including the dot.
	// Empty means DefaultExtension.
	Extension string

	// Exclude holds gitignore-style patterns matched against file names.
	Exclude []string

	// IgnoreFile names a gitignore-style file inside Root that adds more
	// exclude patterns when present. Empty disables it.
	IgnoreFile string
}

// DefaultExtension is the extension of candidate files.
const DefaultExtension = ".txt"

// DefaultIgnoreFile is read from the target directory when present.
const DefaultIgnoreFile = ".linesiftignore"

// Candidate is a file eligible for scanning.
type Candidate struct {
	Path string
	Name string
}
