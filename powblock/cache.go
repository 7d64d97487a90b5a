package powblock

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/probeum/pow-consensus/powsdk"
)

// ancestorCacheSize bounds how many blocks the ancestor walk remembers
// across fork-resolution calls on the same node — fork choice frequently
// re-walks overlapping suffixes of both chains.
const ancestorCacheSize = 256

// CachingService wraps a powsdk.Service with an LRU of recently fetched
// blocks, the same way a blockchain header cache bounds repeated lookups
// during a hot path. Only GetBlocks benefits; the rest of the Service
// surface passes straight through.
type CachingService struct {
	powsdk.Service
	cache *lru.Cache
}

// NewCachingService wraps svc with an ancestor-header cache.
func NewCachingService(svc powsdk.Service) *CachingService {
	cache, err := lru.New(ancestorCacheSize)
	if err != nil {
		// Only fails for a non-positive size, which ancestorCacheSize never is.
		panic(err)
	}
	return &CachingService{Service: svc, cache: cache}
}

// GetBlocks serves cached entries directly and only calls through to the
// wrapped service for the ids it hasn't seen yet.
func (c *CachingService) GetBlocks(ids []powsdk.BlockId) (map[string]powsdk.Block, error) {
	out := make(map[string]powsdk.Block, len(ids))
	var miss []powsdk.BlockId

	for _, id := range ids {
		if v, ok := c.cache.Get(string(id)); ok {
			out[string(id)] = v.(powsdk.Block)
		} else {
			miss = append(miss, id)
		}
	}
	if len(miss) == 0 {
		return out, nil
	}

	fetched, err := c.Service.GetBlocks(miss)
	if err != nil {
		return nil, err
	}
	for k, v := range fetched {
		out[k] = v
		c.cache.Add(k, v)
	}
	return out, nil
}
