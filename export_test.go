package lfucache

import "fmt"

// MinFrequency returns the minimum frequency cursor.
func (c *Cache[_, _]) MinFrequency() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minFrequency
}

// CheckInvariants returns an error describing the first
// inconsistency found between the index and the buckets.
func (c *Cache[Key, Value]) CheckInvariants() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var (
		linked int
		lowest = c.capacity
	)
	for frequency := range c.buckets {
		bucket := &c.buckets[frequency]
		if bucket.Len() != 0 && lowest == c.capacity {
			lowest = frequency
		}
		for entry := range bucket.All() {
			linked++
			if entry.Frequency != frequency {
				return fmt.Errorf("key %v has frequency %d but is in bucket %d",
					entry.Name, entry.Frequency, frequency)
			}
			if indexed := c.index[entry.Name]; indexed != entry {
				return fmt.Errorf("key %v in bucket %d is not indexed",
					entry.Name, frequency)
			}
		}
	}
	switch size := len(c.index); {
	case size > c.capacity:
		return fmt.Errorf("index size %d exceeds capacity %d", size, c.capacity)
	case size != linked:
		return fmt.Errorf("index size %d does not match %d linked entries", size, linked)
	case size != 0 && c.minFrequency != lowest:
		return fmt.Errorf("minimum frequency is %d but lowest populated bucket is %d",
			c.minFrequency, lowest)
	}
	return nil
}
