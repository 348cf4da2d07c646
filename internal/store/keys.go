package store

import "sync"

// keyPool provides reusable byte slices for building lookup keys.
var keyPool = sync.Pool{
	New: func() any {
		return make([]byte, 0, 128)
	},
}

// buildKey constructs a lookup key from prefix and suffix using a pooled buffer.
// Callers MUST call releaseKey when done with the key. Pooled keys are only
// used for reads: Badger keeps the slice passed to txn.Set until commit.
//
// Usage:
//
//	key := buildKey("book:", bookID)
//	item, err := txn.Get(key)
//	releaseKey(key)
func buildKey(prefix, suffix string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, suffix...)
	return buf
}

// buildIndexKey constructs a unique index key from prefix, index name, and value.
// Same ownership rules as buildKey.
func buildIndexKey(prefix, indexName, value string) []byte {
	buf, _ := keyPool.Get().([]byte)
	buf = buf[:0]
	buf = append(buf, prefix...)
	buf = append(buf, "idx:"...)
	buf = append(buf, indexName...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	return buf
}

// releaseKey returns a key buffer to the pool.
func releaseKey(key []byte) {
	if cap(key) <= 512 {
		keyPool.Put(key[:0])
	}
}
