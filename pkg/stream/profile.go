// Package stream runs the bounded-memory read, match, buffer and flush loop
// over a single input.
package stream

import "github.com/praetorian-inc/linesift/pkg/types"

const (
	// SmallFileThreshold is the size below which a file uses the small profile.
	SmallFileThreshold int64 = 50 * 1024 * 1024

	// LargeFileThreshold is not consulted by SelectMethod; everything at or
	// above SmallFileThreshold is large.
	LargeFileThreshold int64 = 500 * 1024 * 1024
)

// Profile sizes the buffers of one pass. Only batching changes between
// profiles; the lines matched and their order do not.
type Profile struct {
	// LineCapacity is the initial reservation for lines longer than the read buffer.
	LineCapacity int
	// ReadBuffer is the input buffer size; 0 uses the bufio default.
	ReadBuffer int
	// OutputCapacity is the initial reservation of the output buffer.
	OutputCapacity int
	// FlushThreshold is the buffered size at which output is written out.
	FlushThreshold int
}

var (
	// SmallProfile serves files below SmallFileThreshold.
	SmallProfile = Profile{
		LineCapacity:   8 * 1024,
		OutputCapacity: 256 * 1024,
		FlushThreshold: 128 * 1024,
	}

	// LargeProfile serves everything else and reads through a larger buffer.
	LargeProfile = Profile{
		LineCapacity:   8 * 1024,
		ReadBuffer:     512 * 1024,
		OutputCapacity: 512 * 1024,
		FlushThreshold: 256 * 1024,
	}
)

// SelectMethod picks the size method for a file of the given byte size.
func SelectMethod(size int64) types.SizeMethod {
	if size < SmallFileThreshold {
		return types.MethodSmall
	}
	return types.MethodLarge
}

// ProfileFor returns the buffer profile of a size method.
func ProfileFor(m types.SizeMethod) Profile {
	if m == types.MethodLarge {
		return LargeProfile
	}
	return SmallProfile
}
