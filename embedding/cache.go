package embedding

import "container/list"

// lruCache is an LRU cache of neighbor lists keyed by normalized word.
// Capacity counts entries, not bytes. It is not safe for concurrent use,
// callers are expected to hold the Wrapper mutex.
type lruCache struct {
	capacity  int
	items     map[string]*list.Element
	evictList *list.List
}

type cacheEntry struct {
	word      string
	neighbors []string
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
	}
}

// get returns the cached neighbor list and marks the entry most recently used.
func (c *lruCache) get(word string) ([]string, bool) {
	ent, ok := c.items[word]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(ent)
	return ent.Value.(*cacheEntry).neighbors, true
}

// set stores a neighbor list, evicting the least recently used entry when
// the cache is over capacity.
func (c *lruCache) set(word string, neighbors []string) {
	if c.capacity <= 0 {
		return
	}

	if ent, ok := c.items[word]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*cacheEntry).neighbors = neighbors
		return
	}

	ent := c.evictList.PushFront(&cacheEntry{word: word, neighbors: neighbors})
	c.items[word] = ent

	for c.evictList.Len() > c.capacity {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).word)
	}
}

func (c *lruCache) len() int { return c.evictList.Len() }

func (c *lruCache) purge() {
	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}
