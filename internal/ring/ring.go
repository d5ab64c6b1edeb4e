// Package ring provides the intrusive, sentinel-headed lists
// used as the frequency buckets of an LFU cache.
package ring

import "iter"

type (
	// Ring is an element of a [List].
	// An element belongs to at most one List at a time;
	// a detached element has no links.
	Ring[Key comparable, Value any] struct {
		next, prev *Ring[Key, Value]
		Value      Value
		Metadata[Key]
	}
	// Metadata stores the LFU state of a cache entry.
	Metadata[Key comparable] struct {
		// Name is the identifier of the data this metadata is bound to.
		Name Key
		// Frequency is the number of recorded accesses,
		// saturated by the owner at its last bucket index.
		// It is also the index of the bucket holding the element.
		Frequency int
	}
	// List is an ordered set of ring elements, headed by a sentinel.
	// The front of the list is the oldest element, the back is the newest.
	// The zero value is an empty list ready to use.
	List[Key comparable, Value any] struct {
		root Ring[Key, Value]
		len  int
	}
)

func (r *Ring[Key, Value]) init() *Ring[Key, Value] {
	r.next = r
	r.prev = r
	return r
}

// insertAfter links the detached element e after r.
func (r *Ring[Key, Value]) insertAfter(e *Ring[Key, Value]) {
	next := r.next
	r.next = e
	e.prev = r
	e.next = next
	next.prev = e
}

// detach joins the neighbours of r and clears its links.
func (r *Ring[Key, Value]) detach() {
	r.prev.next = r.next
	r.next.prev = r.prev
	r.next, r.prev = nil, nil
}

// Len returns the number of elements in l.
func (l *List[Key, Value]) Len() int { return l.len }

// Front returns the oldest element of l, or nil if l is empty.
func (l *List[Key, Value]) Front() *Ring[Key, Value] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// PushBack links r as the newest element of l.
// r must not be a member of any list.
func (l *List[Key, Value]) PushBack(r *Ring[Key, Value]) {
	if l.root.next == nil {
		l.root.init()
	}
	l.root.prev.insertAfter(r)
	l.len++
}

// Remove unlinks r from l.
// r must be a member of l.
func (l *List[Key, Value]) Remove(r *Ring[Key, Value]) {
	r.detach()
	l.len--
}

// MoveToBack relinks r as the newest element of l.
// r must be a member of l.
func (l *List[Key, Value]) MoveToBack(r *Ring[Key, Value]) {
	if l.root.prev == r {
		return
	}
	l.Remove(r)
	l.PushBack(r)
}

// All returns an iterator over the elements
// of l, from oldest to newest.
// The behavior is undefined if l changes during iteration.
func (l *List[Key, Value]) All() iter.Seq[*Ring[Key, Value]] {
	return func(yield func(*Ring[Key, Value]) bool) {
		if l.len == 0 {
			return
		}
		root := &l.root
		for p := root.next; p != root; p = p.next {
			if !yield(p) {
				return
			}
		}
	}
}
