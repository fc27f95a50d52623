package noise

import "testing"

func TestBoundedCacheNeverExceedsCapacity(t *testing.T) {
	c := NewBoundedCache(64)
	for i := 0; i < 10000; i++ {
		c.Put(Key{X: float64(i), Y: float64(i) * 0.5}, float64(i))
	}
	// per-shard bound is ceil(64/16) = 4
	if size := c.Stats().Size; size > 64 {
		t.Errorf("Expected at most 64 entries, got %d", size)
	}
}

func TestBoundedCacheEvictsOldest(t *testing.T) {
	c := newMapCache(2)
	// force all keys into one shard by picking keys that hash together
	target := shardFor(Key{X: 0, Y: 0})
	var keys []Key
	for i := 0; len(keys) < 3; i++ {
		k := Key{X: float64(i), Y: 1}
		if shardFor(k) == target {
			keys = append(keys, k)
		}
	}
	for i, k := range keys {
		c.Put(k, float64(i))
	}
	if _, ok := c.Get(keys[0]); ok {
		t.Errorf("Expected oldest key to be evicted")
	}
	for i := 1; i < 3; i++ {
		if v, ok := c.Get(keys[i]); !ok || v != float64(i) {
			t.Errorf("Expected key %d to be present with value %d, got %v %v", i, i, v, ok)
		}
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := NewBoundedCache(32)
	k := Key{X: 1, Y: 2}
	c.Put(k, 1)
	c.Put(k, 2)
	if v, ok := c.Get(k); !ok || v != 2 {
		t.Errorf("Expected overwritten value 2, got %v %v", v, ok)
	}
	if size := c.Stats().Size; size != 1 {
		t.Errorf("Expected size 1 after overwrite, got %d", size)
	}
}

func TestNoCacheAlwaysMisses(t *testing.T) {
	c := NoCache()
	c.Put(Key{X: 1, Y: 1}, 3)
	if _, ok := c.Get(Key{X: 1, Y: 1}); ok {
		t.Errorf("Expected NoCache to miss")
	}
	if st := c.Stats(); st.Misses != 1 || st.Size != 0 {
		t.Errorf("Expected 1 miss and size 0, got %+v", st)
	}
}

func TestNewCachePolicy(t *testing.T) {
	if _, ok := NewCache(-1).(*noCache); !ok {
		t.Errorf("Expected negative capacity to disable caching")
	}
	if c, ok := NewCache(0).(*mapCache); !ok || c.perShard != 0 {
		t.Errorf("Expected zero capacity to be unbounded")
	}
	if c, ok := NewCache(100).(*mapCache); !ok || c.perShard != 7 {
		t.Errorf("Expected capacity 100 to bound shards at 7")
	}
}
