package storage

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

var _ VerifierStore = (*PebbleStore)(nil)

const cacheSize = 1 << 20 * 8

type recordKeyType byte

const (
	rateTPrefix recordKeyType = iota + 1
	processedTPrefix
)

func typedKey(t recordKeyType, k []byte) []byte {
	key := make([]byte, 0, len(k)+1)
	key = append(key, byte(t))
	return append(key, k...)
}

// PebbleStore is the durable VerifierStore. Rate-limit values are stored
// as fixed-width little-endian u64 seconds keyed by the raw submitter
// address; processed-claim records are msgpack encoded. All writes are
// synced.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(path string) (*PebbleStore, error) {
	c := pebble.NewCache(cacheSize)
	tc := pebble.NewTableCache(c, 16, 100)
	defer tc.Unref()
	defer c.Unref()

	db, err := pebble.Open(path, &pebble.Options{Cache: c, TableCache: tc})
	if err != nil {
		return nil, errors.Wrap(err, "opening verifier store")
	}

	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) LastAccepted(submitter common.Address) (uint64, bool, error) {
	d, done, err := s.db.Get(typedKey(rateTPrefix, submitter.Bytes()))
	if err != nil {
		if err == pebble.ErrNotFound {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "reading rate record")
	}
	defer done.Close()

	if len(d) != 8 {
		return 0, false, ErrCorruptRecord
	}

	return binary.LittleEndian.Uint64(d), true, nil
}

func (s *PebbleStore) RecordAccepted(submitter common.Address, seconds uint64) error {
	var v [8]byte
	binary.LittleEndian.PutUint64(v[:], seconds)

	key := typedKey(rateTPrefix, submitter.Bytes())
	if err := s.db.Set(key, v[:], &pebble.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "storing rate record")
	}

	return nil
}

func (s *PebbleStore) MarkProcessed(id common.Hash, rec *ProcessedClaim) error {
	d, err := msgpack.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding processed record")
	}

	key := typedKey(processedTPrefix, id.Bytes())
	if err := s.db.Set(key, d, &pebble.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "storing processed record")
	}

	return nil
}

func (s *PebbleStore) Processed(id common.Hash) (*ProcessedClaim, error) {
	d, done, err := s.db.Get(typedKey(processedTPrefix, id.Bytes()))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "reading processed record")
	}
	defer done.Close()

	rec := &ProcessedClaim{}
	if err := msgpack.Unmarshal(d, rec); err != nil {
		return nil, ErrCorruptRecord
	}

	return rec, nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}
