package db

import (
	"errors"

	"github.com/cockroachdb/pebble"
)

type pebbleDB struct {
	db *pebble.DB
}

func OpenPebble(dir string) (KV, error) {
	cache := pebble.NewCache(64 << 20)
	defer cache.Unref()
	db, err := pebble.Open(dir, &pebble.Options{
		Cache:        cache,
		MemTableSize: 32 << 20,
	})
	if err != nil {
		return nil, err
	}
	return &pebbleDB{db: db}, nil
}

func (p *pebbleDB) Get(key []byte) ([]byte, error) {
	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), value...), nil
}

func (p *pebbleDB) Has(key []byte) (bool, error) {
	_, err := p.Get(key)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (p *pebbleDB) Iterate(prefix []byte, reverse bool, fn func(key, value []byte) bool) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: prefix, UpperBound: prefixEnd(prefix)})
	if err != nil {
		return err
	}
	if reverse {
		for ok := iter.Last(); ok && fn(iter.Key(), iter.Value()); ok = iter.Prev() {
		}
	} else {
		for ok := iter.First(); ok && fn(iter.Key(), iter.Value()); ok = iter.Next() {
		}
	}
	return iter.Close()
}

// pebbleBatch remembers the first failed write so Write can report it.
type pebbleBatch struct {
	batch *pebble.Batch
	err   error
}

func (b *pebbleBatch) Put(key, value []byte) {
	if b.err == nil {
		b.err = b.batch.Set(key, value, nil)
	}
}

func (b *pebbleBatch) Delete(key []byte) {
	if b.err == nil {
		b.err = b.batch.Delete(key, nil)
	}
}

func (p *pebbleDB) Write(fn func(b Batch)) error {
	batch := &pebbleBatch{batch: p.db.NewBatch()}
	defer batch.batch.Close()
	fn(batch)
	if batch.err != nil {
		return batch.err
	}
	return batch.batch.Commit(pebble.Sync)
}

func (p *pebbleDB) Close() error {
	return p.db.Close()
}
