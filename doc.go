// Package lfucache implements a [Cache] using a least-frequently-used
// replacement policy, with least-recently-used as the tie-breaker.
//
// Get and Set run in constant time.
// When a new key is set in a full cache, a batch of the coldest entries
// is evicted at once, rather than one entry per insertion.
//
// The following is a summary (intended for maintainers).
//
// Glossary and invariants:
//
//   - Entry
//
//     A resident key, its value, and its access frequency.
//
//   - Bucket
//
//     The ordered set of entries sharing one frequency.
//     The front is the least recently accessed entry, the back the most recent.
//     There is one bucket per frequency in [0, capacity).
//
//   - Hot bucket
//
//     The bucket at capacity-1. Frequency saturates here,
//     so its order is pure recency.
//
//   - Minimum frequency
//
//     The index of the lowest populated bucket,
//     or capacity when all buckets are empty.
//     A new entry always enters bucket 0, which resets the minimum to 0.
//     (A new cache also reports 0.)
//
//   - Eviction batch
//
//     ceil(capacity * evictFraction), clamped to [1, capacity].
//
//   - A key is in the index iff it is in exactly one bucket,
//     the bucket at its frequency.
//
//   - The number of entries never exceeds capacity.
//
// Operations:
//
//   - Touch
//
//     On every access (a Get hit or a Set of a resident key),
//     the entry moves to the back of the next bucket.
//     If its bucket was the minimum and is now empty, the minimum advances by one.
//     Entries in the hot bucket move to its back instead.
//
//   - Eviction
//
//     Before a new key is inserted into a full cache,
//     up to a batch of entries are removed from the front of the minimum bucket,
//     advancing the minimum past empty buckets after each removal.
//
// Concurrency:
//
// A single lock guards the whole cache.
// Batch ([Cache.GetMany], [Cache.SetMany]) and read-modify-write
// ([Counter.Incr], [Counter.Decr]) operations hold it for their full duration,
// so they are atomic with respect to every other method.
package lfucache
