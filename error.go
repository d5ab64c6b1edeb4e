package lfucache

import "fmt"

type constError string

// ErrInvalidConfiguration may be returned from [New] and [NewCounter].
const ErrInvalidConfiguration = constError("invalid configuration")

func (errStr constError) Error() string { return string(errStr) }

func capacityError(capacity int) error {
	return fmt.Errorf(
		"%w: capacity must be >=%d but %d was requested",
		ErrInvalidConfiguration, MinimumCapacity, capacity)
}

func evictFractionError(fraction float64) error {
	return fmt.Errorf(
		"%w: eviction fraction must be within (0, 1) but %g was requested",
		ErrInvalidConfiguration, fraction)
}
