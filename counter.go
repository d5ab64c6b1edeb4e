package lfucache

type (
	// Number is the set of value types a [Counter] can hold.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
			~float32 | ~float64
	}
	// Counter is a [Cache] of numbers which
	// can be adjusted atomically.
	// Constructed by [NewCounter].
	Counter[Key comparable, Value Number] struct {
		*Cache[Key, Value]
	}
)

// NewCounter creates a [Counter]. The arguments are the same as [New].
func NewCounter[Key comparable, Value Number](capacity int, evictFraction float64) (*Counter[Key, Value], error) {
	cache, err := New[Key, Value](capacity, evictFraction)
	if err != nil {
		return nil, err
	}
	return &Counter[Key, Value]{Cache: cache}, nil
}

// Incr adds delta to the value of key and returns the sum.
// A key that is not resident is treated as 0.
// The read and the write both count as accesses.
func (c *Counter[Key, Value]) Incr(key Key, delta Value) Value {
	return c.adjust(key, func(value Value) Value { return value + delta })
}

// Decr subtracts delta from the value of key and returns the difference.
// A key that is not resident is treated as 0.
func (c *Counter[Key, Value]) Decr(key Key, delta Value) Value {
	return c.adjust(key, func(value Value) Value { return value - delta })
}

func (c *Counter[Key, Value]) adjust(key Key, apply func(Value) Value) Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, _ := c.get(key)
	value = apply(value)
	c.set(key, value)
	return value
}
