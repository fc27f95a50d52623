package noise

import (
	"math"
	"sync"
	"sync/atomic"
)

// Key is a sample coordinate.
type Key struct {
	X, Y float64
}

// CacheStats holds memoization counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Cache memoizes field samples. Implementations must be safe for concurrent use.
type Cache interface {
	Get(k Key) (float64, bool)
	Put(k Key, v float64)
	Stats() CacheStats
}

// NewCache picks a policy from a capacity setting:
// 0 means unbounded, a positive value bounds the entry count and a negative
// value disables memoization.
func NewCache(capacity int) Cache {
	switch {
	case capacity < 0:
		return NoCache()
	case capacity == 0:
		return NewUnboundedCache()
	default:
		return NewBoundedCache(capacity)
	}
}

const shardCount = 16

type cacheShard struct {
	mu     sync.Mutex
	values map[Key]float64
	// ring holds keys in insertion order when the shard is bounded
	ring   []Key
	next   int
	hits   uint64
	misses uint64
}

type mapCache struct {
	shards   [shardCount]cacheShard
	perShard int // 0 = unbounded
}

// NewUnboundedCache keeps every sample for the lifetime of the cache.
// Suitable for a single generation pass.
func NewUnboundedCache() Cache {
	return newMapCache(0)
}

// NewBoundedCache keeps at most roughly capacity samples, replacing the
// oldest entry of a full shard on insert.
func NewBoundedCache(capacity int) Cache {
	if capacity <= 0 {
		return NewUnboundedCache()
	}
	perShard := (capacity + shardCount - 1) / shardCount
	return newMapCache(perShard)
}

func newMapCache(perShard int) *mapCache {
	c := &mapCache{perShard: perShard}
	for i := range c.shards {
		c.shards[i].values = make(map[Key]float64)
		if perShard > 0 {
			c.shards[i].ring = make([]Key, 0, perShard)
		}
	}
	return c
}

func shardFor(k Key) int {
	h := math.Float64bits(k.X)*0x9E3779B97F4A7C15 ^ math.Float64bits(k.Y)*0xBF58476D1CE4E5B9
	h ^= h >> 29
	return int(h % shardCount)
}

func (c *mapCache) Get(k Key) (float64, bool) {
	s := &c.shards[shardFor(k)]
	s.mu.Lock()
	v, ok := s.values[k]
	if ok {
		s.hits++
	} else {
		s.misses++
	}
	s.mu.Unlock()
	return v, ok
}

func (c *mapCache) Put(k Key, v float64) {
	s := &c.shards[shardFor(k)]
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[k]; ok {
		s.values[k] = v
		return
	}
	if c.perShard == 0 {
		s.values[k] = v
		return
	}
	if len(s.ring) < c.perShard {
		s.ring = append(s.ring, k)
	} else {
		delete(s.values, s.ring[s.next])
		s.ring[s.next] = k
		s.next = (s.next + 1) % c.perShard
	}
	s.values[k] = v
}

func (c *mapCache) Stats() CacheStats {
	var st CacheStats
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		st.Hits += s.hits
		st.Misses += s.misses
		st.Size += len(s.values)
		s.mu.Unlock()
	}
	return st
}

type noCache struct {
	misses atomic.Uint64
}

// NoCache disables memoization. Every Get is a miss.
func NoCache() Cache {
	return &noCache{}
}

func (c *noCache) Get(Key) (float64, bool) {
	c.misses.Add(1)
	return 0, false
}

func (c *noCache) Put(Key, float64) {}

func (c *noCache) Stats() CacheStats {
	return CacheStats{Misses: c.misses.Load()}
}
