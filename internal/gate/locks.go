package gate

import (
	"hash/fnv"
	"sync"

	"github.com/groblegark/gatewarden/internal/model"
)

// lockShards is the number of mutex stripes for per-key serialization.
const lockShards = 64

// keyLocks serializes event processing per gate key with striped
// mutexes. Events for the same key always contend on the same stripe;
// events for different keys usually proceed in parallel.
type keyLocks struct {
	shards [lockShards]sync.Mutex
}

func (l *keyLocks) lock(key model.Key) *sync.Mutex {
	h := fnv.New64a()
	var buf [16]byte
	putInt64(buf[:8], key.GroupID)
	putInt64(buf[8:], key.MemberID)
	h.Write(buf[:])
	m := &l.shards[h.Sum64()%lockShards]
	m.Lock()
	return m
}

func putInt64(b []byte, v int64) {
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
}
