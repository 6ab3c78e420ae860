package fifo

import (
	"container/list"
	"sync"
)

// DefaultCapacity is used when a non positive capacity is supplied
const DefaultCapacity = 64

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a bounded cache evicting the oldest inserted entry first
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(key K, value V)
}

// New creates a cache
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    map[K]*list.Element{},
		order:    list.New(),
	}
}

// OnEvict sets a callback invoked with every evicted entry while the cache lock is held
func (c *Cache[K, V]) OnEvict(fn func(key K, value V)) *Cache[K, V] {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
	return c
}

// Len returns number of cached entries
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// GetOrCreate returns cached value or builds, stores and returns a new one, build runs at most once per missing key
// Lookups do not change eviction order.
func (c *Cache[K, V]) GetOrCreate(key K, build func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		return elem.Value.(entry[K, V]).value, nil
	}
	value, err := build()
	if err != nil {
		var zero V
		return zero, err
	}
	c.add(key, value)
	return value, nil
}

func (c *Cache[K, V]) add(key K, value V) {
	elem := c.order.PushBack(entry[K, V]{key: key, value: value})
	c.items[key] = elem
	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		kv := oldest.Value.(entry[K, V])
		delete(c.items, kv.key)
		if c.onEvict != nil {
			c.onEvict(kv.key, kv.value)
		}
	}
}
