package scanner

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrOutputLocked is returned when another run writes to the same output.
var ErrOutputLocked = errors.New("output is locked by another run")

// outputLock guards a result file against concurrent runs in other processes.
type outputLock struct {
	flock *flock.Flock
	path  string
}

// lockOutput acquires an exclusive lock next to the output file without
// blocking.
func lockOutput(outputPath string) (*outputLock, error) {
	path := outputPath + ".lock"
	fl := flock.New(path)

	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, path)
	}
	return &outputLock{flock: fl, path: path}, nil
}

func (l *outputLock) Unlock() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}
