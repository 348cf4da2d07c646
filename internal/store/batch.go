package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Batch collects seed writes into a single badger WriteBatch. It does not
// check for existing keys, so it is only used on a fresh store.
type Batch struct {
	store *Store
	wb    *badger.WriteBatch
	n     int
	done  bool
}

// NewBatch starts a batch.
func (s *Store) NewBatch() *Batch {
	return &Batch{store: s, wb: s.db.NewWriteBatch()}
}

// BatchPut queues entity and its index keys.
func BatchPut[T any](b *Batch, e *Entity[T], id string, entity *T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal %s%s: %w", e.prefix, id, err)
	}

	if err := b.wb.Set([]byte(e.prefix+id), data); err != nil {
		return fmt.Errorf("batch set %s%s: %w", e.prefix, id, err)
	}
	for _, idx := range e.indexes {
		for _, k := range e.indexKeys(idx, id, entity) {
			if err := b.wb.Set([]byte(k), []byte(id)); err != nil {
				return fmt.Errorf("batch set index %s: %w", idx.name, err)
			}
		}
	}
	b.n++
	return nil
}

// Len returns the number of entities queued.
func (b *Batch) Len() int {
	return b.n
}

// Commit writes every queued entity. The batch cannot be reused.
func (b *Batch) Commit() error {
	if b.done {
		return nil
	}
	b.done = true
	if err := b.wb.Flush(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	if b.store.logger != nil {
		b.store.logger.Debug("batch committed", "entities", b.n)
	}
	return nil
}

// Discard drops queued writes. It is a no-op after Commit.
func (b *Batch) Discard() {
	if b.done {
		return
	}
	b.done = true
	b.wb.Cancel()
}
