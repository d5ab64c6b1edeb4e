package lfucache

import (
	"fmt"
	"io"
	"strings"
)

const printRule = "========================="

// Fprint writes a summary of the cache to w, followed by its
// entries as "(key, value : frequency)" in [Cache.Snapshot] order.
func (c *Cache[Key, Value]) Fprint(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

func (c *Cache[Key, Value]) String() string {
	var (
		entries = c.Snapshot()
		text    strings.Builder
	)
	fmt.Fprintln(&text, printRule)
	fmt.Fprintf(&text, "entries: %d/%d\n", len(entries), c.capacity)
	for i, entry := range entries {
		if i != 0 {
			text.WriteString(", ")
		}
		fmt.Fprintf(&text, "(%v, %v : %d)",
			entry.Key, entry.Value, entry.Frequency)
	}
	text.WriteByte('\n')
	fmt.Fprintln(&text, printRule)
	return text.String()
}
