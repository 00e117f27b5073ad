package storage

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

const falsePositive = 0.01

// SeenSet is a bounded in-memory deduplication set over claim ids: a
// bloom filter answers the common "never seen" case without touching the
// LRU, and the LRU holds the exact recent set. Eviction means an old id
// can be reported unseen again, so a SeenSet is only a fast path in front
// of the persistent processed-claim records, never the sole authority.
// A SeenSet is owned by a single processing loop.
type SeenSet struct {
	filter *bloom.BloomFilter
	exact  *lru.Cache[common.Hash, struct{}]
}

func NewSeenSet(capacity int) (*SeenSet, error) {
	exact, err := lru.New[common.Hash, struct{}](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "sizing seen set")
	}

	return &SeenSet{
		filter: bloom.NewWithEstimates(uint(capacity), falsePositive),
		exact:  exact,
	}, nil
}

func (s *SeenSet) Seen(id common.Hash) bool {
	if !s.filter.Test(id.Bytes()) {
		return false
	}

	return s.exact.Contains(id)
}

func (s *SeenSet) Mark(id common.Hash) {
	s.filter.Add(id.Bytes())
	s.exact.Add(id, struct{}{})
}
