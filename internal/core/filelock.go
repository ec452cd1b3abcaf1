package core

import (
	"fmt"
	"os"
	"syscall"
)

// withFileLock runs fn while holding an exclusive flock on path, creating
// the lock file if needed. The lock is released when fn returns.
func withFileLock(path string, fn func() error) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("opening lock file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring file lock: %w", err)
	}
	defer func() {
		if unlockErr := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); unlockErr != nil && err == nil {
			err = fmt.Errorf("releasing file lock: %w", unlockErr)
		}
	}()

	return fn()
}
