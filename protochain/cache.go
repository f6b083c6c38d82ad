package protochain

import (
	"sync"
)

// maxCacheEntries bounds the lookup cache, which is reset once full.
const maxCacheEntries = 1 << 12

type (
	// lookupCache memoizes, per (receiver, key), the record that owned the
	// key when it was last resolved, or nil if nothing did. Entries are
	// only valid for the resolver epoch they were stored under. All methods
	// are safe to call on a nil receiver, which caches nothing.
	lookupCache struct {
		entries map[cacheKey]*Object
		epoch   uint64
		mu      sync.Mutex
	}

	cacheKey struct {
		object *Object
		key    Key
	}
)

func newLookupCache() *lookupCache {
	return &lookupCache{entries: make(map[cacheKey]*Object)}
}

func (x *lookupCache) get(epoch uint64, o *Object, k Key) (*Object, bool) {
	if x == nil {
		return nil, false
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.epoch != epoch {
		x.reset(epoch)
		return nil, false
	}
	holder, ok := x.entries[cacheKey{object: o, key: k}]
	return holder, ok
}

func (x *lookupCache) put(epoch uint64, o *Object, k Key, holder *Object) {
	if x == nil {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.epoch != epoch || len(x.entries) >= maxCacheEntries {
		x.reset(epoch)
	}
	x.entries[cacheKey{object: o, key: k}] = holder
}

// len is used by tests
func (x *lookupCache) len() int {
	if x == nil {
		return 0
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}

func (x *lookupCache) reset(epoch uint64) {
	clear(x.entries)
	x.epoch = epoch
}
