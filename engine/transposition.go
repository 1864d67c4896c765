package engine

import (
	"math"
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"bitboard-chess/board"
)

// TTFlag records which side of the window a stored score bounds.
type TTFlag uint8

const (
	TTNone TTFlag = iota
	TTExact
	TTLower
	TTUpper
)

const (
	clusterSize  = 4
	lockShards   = 256
	minClusters  = 1 << 10
	hashfullSize = 1000
)

// TTEntry is one stored search result.
type TTEntry struct {
	Hash  uint64
	Move  board.Move
	Score int16
	Depth int8
	Flag  TTFlag
	Age   uint8
}

// Cutoff reports whether the entry alone settles a node searched to depth at
// ply with window (alpha, beta), and the score to return if so.
func (e TTEntry) Cutoff(depth, ply int, alpha, beta int32) (int32, bool) {
	if int(e.Depth) < depth {
		return 0, false
	}
	score := scoreFromTT(e.Score, ply)
	switch e.Flag {
	case TTExact:
		return score, true
	case TTLower:
		if score >= beta {
			return score, true
		}
	case TTUpper:
		if score <= alpha {
			return score, true
		}
	}
	return 0, false
}

// TableLock guards a shard of the table.
type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// FakeLock is used when a single goroutine owns the table.
type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

// TransTable is a clustered hash table shared by all search workers. Readers
// may observe stale entries; moves read from it are always re-validated.
type TransTable struct {
	locks    []TableLock
	entries  []TTEntry
	clusters uint64
	mask     uint64
	age      uint8

	lookups    atomic.Uint64
	hits       atomic.Uint64
	writes     atomic.Uint64
	collisions atomic.Uint64
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	t := &TransTable{}
	t.Resize(uint64(sizeMB) << 20)
	t.SetSingleThreadedMode()
	return t
}

// NewTransTableFraction sizes the table as a fraction of physical memory.
func NewTransTableFraction(fraction float64) *TransTable {
	total := memory.TotalMemory()
	t := &TransTable{}
	t.Resize(uint64(fraction * float64(total)))
	t.SetSingleThreadedMode()
	log.Info().Float64("fraction", fraction).
		Uint64("total-system-memory-bytes", total).
		Msg("transposition-table-fraction")
	return t
}

// Resize reallocates the table to the largest power-of-two cluster count
// fitting in sizeBytes, dropping all entries.
func (t *TransTable) Resize(sizeBytes uint64) {
	clusterBytes := uint64(unsafe.Sizeof(TTEntry{})) * clusterSize
	want := sizeBytes / clusterBytes
	n := uint64(minClusters)
	if want > minClusters {
		n = 1 << (63 - bits.LeadingZeros64(want))
	}
	t.clusters = n
	t.mask = n - 1
	t.entries = make([]TTEntry, n*clusterSize)
	t.age = 0
	t.resetStats()

	log.Info().Uint64("clusters", n).
		Uint64("entries", n*clusterSize).
		Uint64("estimated-total-memory-bytes", n*clusterBytes).
		Msg("transposition-table-size")
}

// SetSingleThreadedMode removes locking overhead.
func (t *TransTable) SetSingleThreadedMode() {
	t.locks = []TableLock{FakeLock{}}
}

// SetMultiThreadedMode shards the table across read-write mutexes.
func (t *TransTable) SetMultiThreadedMode() {
	t.locks = make([]TableLock, lockShards)
	for i := range t.locks {
		t.locks[i] = &sync.RWMutex{}
	}
}

func (t *TransTable) lockFor(cluster uint64) TableLock {
	return t.locks[cluster&uint64(len(t.locks)-1)]
}

// Probe looks up hash. The returned entry is a copy.
func (t *TransTable) Probe(hash uint64) (TTEntry, bool) {
	cluster := hash & t.mask
	base := cluster * clusterSize
	lock := t.lockFor(cluster)

	t.lookups.Add(1)
	lock.RLock()
	defer lock.RUnlock()
	for i := uint64(0); i < clusterSize; i++ {
		e := t.entries[base+i]
		if e.Flag != TTNone && e.Hash == hash {
			t.hits.Add(1)
			return e, true
		}
	}
	return TTEntry{}, false
}

// Store saves a search result. Mate scores are converted to be relative to
// the stored node. Replacement prefers, in order: the same position, an empty
// slot, an entry from an earlier search, the shallowest entry.
func (t *TransTable) Store(hash uint64, depth, ply int, move board.Move, score int32, flag TTFlag) {
	cluster := hash & t.mask
	base := cluster * clusterSize
	lock := t.lockFor(cluster)

	lock.Lock()
	defer lock.Unlock()

	target := -1
	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+uint64(i)]
		if e.Flag != TTNone && e.Hash == hash {
			target = i
			if move == board.NoMove {
				move = e.Move
			}
			break
		}
	}
	if target < 0 {
		for i := 0; i < clusterSize; i++ {
			if t.entries[base+uint64(i)].Flag == TTNone {
				target = i
				break
			}
		}
	}
	if target < 0 {
		t.collisions.Add(1)
		for i := 0; i < clusterSize; i++ {
			if t.entries[base+uint64(i)].Age != t.age {
				target = i
				break
			}
		}
	}
	if target < 0 {
		target = 0
		for i := 1; i < clusterSize; i++ {
			if t.entries[base+uint64(i)].Depth < t.entries[base+uint64(target)].Depth {
				target = i
			}
		}
	}

	t.entries[base+uint64(target)] = TTEntry{
		Hash:  hash,
		Move:  move,
		Score: scoreToTT(score, ply),
		Depth: int8(clamp(depth, 0, math.MaxInt8)),
		Flag:  flag,
		Age:   t.age,
	}
	t.writes.Add(1)
}

// NewSearch marks existing entries as belonging to an earlier search.
func (t *TransTable) NewSearch() {
	t.age++
	t.resetStats()
}

// Clear empties the table.
func (t *TransTable) Clear() {
	clear(t.entries)
	t.age = 0
	t.resetStats()
}

// HashFull estimates table occupancy by the current search in permille.
func (t *TransTable) HashFull() int {
	n := min(hashfullSize/clusterSize, t.clusters)
	used := 0
	for c := uint64(0); c < n; c++ {
		lock := t.lockFor(c)
		lock.RLock()
		for _, e := range t.entries[c*clusterSize : (c+1)*clusterSize] {
			if e.Flag != TTNone && e.Age == t.age {
				used++
			}
		}
		lock.RUnlock()
	}
	return used * 1000 / int(n*clusterSize)
}

func (t *TransTable) resetStats() {
	t.lookups.Store(0)
	t.hits.Store(0)
	t.writes.Store(0)
	t.collisions.Store(0)
}

// LogStats writes the usage counters of the current search.
func (t *TransTable) LogStats() {
	lookups := t.lookups.Load()
	hitRate := 0.0
	if lookups > 0 {
		hitRate = float64(t.hits.Load()) / float64(lookups)
	}
	log.Debug().Uint64("lookups", lookups).
		Uint64("hits", t.hits.Load()).
		Float64("hit-rate", hitRate).
		Uint64("writes", t.writes.Load()).
		Uint64("collisions", t.collisions.Load()).
		Int("hashfull", t.HashFull()).
		Msg("transposition-table-stats")
}
