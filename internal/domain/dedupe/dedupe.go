// Package dedupe tracks idempotency keys so a retried staffing request
// commits at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// Deduper records idempotency keys and the result each one produced.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records it if
	// not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Complete attaches a result to a recorded key.
	Complete(ctx context.Context, key, result string)

	// Result returns the result attached to key. ok is false while the key
	// is unknown or still in flight.
	Result(ctx context.Context, key string) (result string, ok bool)

	// Unrecord forgets key so the request can be retried. Used when the
	// request failed after the key was recorded.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key    string
	result string
	done   bool
}

// inMemoryDeduper keeps keys in insertion order and evicts the oldest once
// maxSize is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 10000,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.entries = make(map[string]*list.Element)
	d.order = list.New()

	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.entries[key]; ok {
		return true
	}

	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Front()
		d.order.Remove(oldest)
		delete(d.entries, oldest.Value.(*entry).key)
	}

	d.entries[key] = d.order.PushBack(&entry{key: key})
	return false
}

func (d *inMemoryDeduper) Complete(_ context.Context, key, result string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.entries[key]; ok {
		e := el.Value.(*entry)
		e.result, e.done = result, true
	}
}

func (d *inMemoryDeduper) Result(_ context.Context, key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := d.entries[key]
	if !ok {
		return "", false
	}
	e := el.Value.(*entry)
	return e.result, e.done
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.entries[key]; ok {
		d.order.Remove(el)
		delete(d.entries, key)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
