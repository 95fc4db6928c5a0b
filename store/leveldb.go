package store

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const valuePrefix = "v:"

// LevelDB keeps one record per pile in a LevelDB database.
type LevelDB struct {
	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", path)
	}
	return NewLevelDB(db), nil
}

func NewLevelDB(db *leveldb.DB) *LevelDB {
	return &LevelDB{
		db:    db,
		wOpts: &opt.WriteOptions{Sync: true},
	}
}

func (l *LevelDB) Load() (map[int]float64, error) {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(valuePrefix)), l.rOpts)
	defer iter.Release()

	values := make(map[int]float64)
	for iter.Next() {
		key := string(iter.Key())
		state, err := strconv.Atoi(strings.TrimPrefix(key, valuePrefix))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key %q", key)
		}
		v, err := decodeF64(iter.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for key %q", key)
		}
		values[state] = v
	}
	return values, errors.Wrap(iter.Error(), "iterate values")
}

// Save replaces all stored values in one batch.
func (l *LevelDB) Save(values map[int]float64) error {
	batch := new(leveldb.Batch)
	iter := l.db.NewIterator(util.BytesPrefix([]byte(valuePrefix)), l.rOpts)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return errors.Wrap(err, "iterate values")
	}

	for state, v := range values {
		batch.Put([]byte(valuePrefix+strconv.Itoa(state)), encodeF64(v))
	}
	return errors.Wrap(l.db.Write(batch, l.wOpts), "write batch")
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

func encodeF64(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

func decodeF64(buf []byte) (float64, error) {
	if len(buf) != 8 {
		return 0, errors.Errorf("encoded float has len %d", len(buf))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}
