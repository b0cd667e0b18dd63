package db

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	db *leveldb.DB
}

func OpenLevelDB(dir string) (KV, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return &levelDB{db: db}, nil
}

// NewMemLevelDB returns a leveldb store kept in memory.
func NewMemLevelDB() KV {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		// memory storage never fails to open
		panic(err)
	}
	return &levelDB{db: db}
}

func (l *levelDB) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (l *levelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *levelDB) Iterate(prefix []byte, reverse bool, fn func(key, value []byte) bool) error {
	iter := l.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	if reverse {
		for ok := iter.Last(); ok && fn(iter.Key(), iter.Value()); ok = iter.Prev() {
		}
	} else {
		for iter.Next() && fn(iter.Key(), iter.Value()) {
		}
	}
	return iter.Error()
}

func (l *levelDB) Write(fn func(b Batch)) error {
	batch := new(leveldb.Batch)
	fn(batch)
	return l.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (l *levelDB) Close() error {
	return l.db.Close()
}
