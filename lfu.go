package lfucache

import (
	"fmt"
	"iter"
	"math"
	"sync"

	"github.com/djdv/go-lfucache/internal/ring"
	"golang.org/x/sync/singleflight"
)

type (
	entry[Key comparable, Value any]  = ring.Ring[Key, Value]
	metadata[Key comparable]          = ring.Metadata[Key]
	bucket[Key comparable, Value any] = ring.List[Key, Value]
	// Cache evicts the least frequently used entries,
	// and the least recently used among those of equal frequency.
	// All methods are safe for concurrent use;
	// each one holds the cache lock for its full duration.
	// Constructed by [New].
	Cache[Key comparable, Value any] struct {
		index map[Key]*entry[Key, Value]
		// Index is frequency. Must not be resized (elements are self-referential).
		buckets []bucket[Key, Value]
		loads   singleflight.Group
		capacity, evictBatch,
		minFrequency int
		mu sync.Mutex
	}
	// Entry describes a resident value. See [Cache.Snapshot].
	Entry[Key comparable, Value any] struct {
		Key       Key
		Value     Value
		Frequency int
	}
	// Pair is a key and value for [Cache.SetMany].
	Pair[Key comparable, Value any] struct {
		Key   Key
		Value Value
	}
	// Lookup is the result for one key requested from [Cache.GetMany].
	// Found is false (and Value is the zero value) if the key was not resident.
	Lookup[Key comparable, Value any] struct {
		Key   Key
		Value Value
		Found bool
	}
)

// MinimumCapacity defines the lowest value supported by [New].
const MinimumCapacity = 1

// New creates a [Cache] with the given capacity.
// When the cache is full, inserting a new key first evicts
// evictFraction of the capacity (rounded up, at least one entry).
// evictFraction must be within the open interval (0, 1).
func New[Key comparable, Value any](capacity int, evictFraction float64) (*Cache[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, capacityError(capacity)
	}
	if !(evictFraction > 0 && evictFraction < 1) { // NaN fails both.
		return nil, evictFractionError(evictFraction)
	}
	var (
		batch      = math.Ceil(float64(capacity) * evictFraction)
		evictBatch = min(max(int(batch), 1), capacity)
	)
	return &Cache[Key, Value]{
		index:      make(map[Key]*entry[Key, Value], capacity),
		buckets:    make([]bucket[Key, Value], capacity),
		capacity:   capacity,
		evictBatch: evictBatch,
	}, nil
}

// Get returns the value for key if it is resident,
// and counts the call as an access of key;
// otherwise it returns the zero value and false.
func (c *Cache[Key, Value]) Get(key Key) (Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(key)
}

// Set inserts or updates key with value.
// Updating a resident key counts as an access.
// Inserting into a full cache evicts a batch of entries first.
func (c *Cache[Key, Value]) Set(key Key, value Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// GetMany calls Get for each key in order, as one atomic operation.
// Duplicate keys are looked up (and accessed) once per occurrence.
func (c *Cache[Key, Value]) GetMany(keys ...Key) []Lookup[Key, Value] {
	c.mu.Lock()
	defer c.mu.Unlock()
	lookups := make([]Lookup[Key, Value], len(keys))
	for i, key := range keys {
		value, found := c.get(key)
		lookups[i] = Lookup[Key, Value]{
			Key:   key,
			Value: value,
			Found: found,
		}
	}
	return lookups
}

// SetMany calls Set for each pair in order, as one atomic operation.
func (c *Cache[Key, Value]) SetMany(pairs ...Pair[Key, Value]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pair := range pairs {
		c.set(pair.Key, pair.Value)
	}
}

// Load returns the cached value for key (if resident). Otherwise, it calls fetch,
// inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
//
// The cache is not locked while fetch runs.
// Concurrent calls to Load for the same missing key share a single call to fetch.
func (c *Cache[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	shared, err, _ := c.loads.Do(loadKey(key), func() (any, error) {
		value, err := fetch()
		if err != nil {
			return value, err
		}
		c.Set(key, value)
		return value, nil
	})
	value, _ := shared.(Value)
	return value, err
}

// loadKey distinguishes keys by dynamic type as well as value,
// so interface keys such as int(1) and "1" never share a fetch.
func loadKey[Key comparable](key Key) string {
	return fmt.Sprintf("%T:%#v", key, key)
}

func (c *Cache[Key, Value]) get(key Key) (Value, bool) {
	if entry, ok := c.index[key]; ok {
		c.touch(entry)
		return entry.Value, true
	}
	var zero Value
	return zero, false
}

func (c *Cache[Key, Value]) set(key Key, value Value) {
	if entry, ok := c.index[key]; ok {
		entry.Value = value
		c.touch(entry)
		return
	}
	if len(c.index) >= c.capacity {
		c.evict()
	}
	c.addNew(key, value)
}

// addNew links a new entry at the back of the
// lowest bucket, which makes it the new minimum.
func (c *Cache[Key, Value]) addNew(key Key, value Value) {
	entry := &entry[Key, Value]{
		Metadata: metadata[Key]{Name: key},
		Value:    value,
	}
	c.index[key] = entry
	c.buckets[0].PushBack(entry)
	c.minFrequency = 0
	if debugging {
		assert(len(c.index) <= c.capacity,
			"index grew beyond capacity")
	}
}

// touch records an access of entry by moving it to the back
// of the next bucket. Entries in the last bucket are only
// moved to its back; their frequency saturates there.
func (c *Cache[Key, Value]) touch(entry *entry[Key, Value]) {
	var (
		frequency = entry.Frequency
		hottest   = c.capacity - 1
		from      = &c.buckets[frequency]
	)
	if frequency == hottest {
		from.MoveToBack(entry)
		return
	}
	from.Remove(entry)
	entry.Frequency++
	c.buckets[entry.Frequency].PushBack(entry)
	if frequency == c.minFrequency && from.Len() == 0 {
		// Bucket above was just populated.
		c.minFrequency++
	}
}

// evict removes up to a batch of entries, taken from the
// front of the lowest non-empty bucket(s).
func (c *Cache[_, _]) evict() {
	for range c.evictBatch {
		if c.minFrequency == c.capacity {
			return
		}
		coldest := &c.buckets[c.minFrequency]
		if debugging {
			assert(coldest.Len() != 0,
				"minimum frequency does not point to a populated bucket")
		}
		victim := coldest.Front()
		coldest.Remove(victim)
		delete(c.index, victim.Name)
		for c.minFrequency < c.capacity &&
			c.buckets[c.minFrequency].Len() == 0 {
			c.minFrequency++
		}
	}
}

// Len returns the number of resident entries.
func (c *Cache[_, _]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Capacity returns the maximum number of resident entries.
func (c *Cache[_, _]) Capacity() int { return c.capacity }

// EvictBatch returns the number of entries
// removed when a new key is set in a full cache.
func (c *Cache[_, _]) EvictBatch() int { return c.evictBatch }

// Snapshot returns the resident entries ordered by ascending
// frequency, then from least to most recently accessed.
// I.e. in the order they would be evicted.
func (c *Cache[Key, Value]) Snapshot() []Entry[Key, Value] {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]Entry[Key, Value], 0, len(c.index))
	for frequency := c.minFrequency; frequency < c.capacity; frequency++ {
		for entry := range c.buckets[frequency].All() {
			entries = append(entries, Entry[Key, Value]{
				Key:       entry.Name,
				Value:     entry.Value,
				Frequency: entry.Frequency,
			})
		}
	}
	return entries
}

// Keys returns an iterator over the keys of resident entries,
// in [Cache.Snapshot] order, as of the call to Keys.
func (c *Cache[Key, _]) Keys() iter.Seq[Key] {
	entries := c.Snapshot()
	return func(yield func(Key) bool) {
		for _, entry := range entries {
			if !yield(entry.Key) {
				return
			}
		}
	}
}
