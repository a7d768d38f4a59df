package testutil

import (
	"time"

	"github.com/pkg/errors"
)

// WaitFor polls condition every interval until it holds or timeout elapses.
func WaitFor(timeout, interval time.Duration, condition func() bool) error {
	if timeout < interval {
		return errors.New("timeout must be greater than interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.Now().Add(timeout)
	for range ticker.C {
		if condition() {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.Errorf("condition was not met within %v", timeout)
		}
	}

	return nil
}
