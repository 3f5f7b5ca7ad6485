package cache

import (
	"sync"
)

// mockCacheServer runs its clients in lockstep: a tick advances only once
// every client has called wait, so tests can order concurrent cache accesses
type mockCacheServer[T any] struct {
	entriesMu sync.Mutex
	entries   map[string]hitResult[T]

	mu          sync.Mutex
	ticked      *sync.Cond
	currentTick int
	maxTicks    int
	clientCount int
	arrived     int
}

type mockCacheClient[T any] struct {
	server      *mockCacheServer[T]
	desiredTick int
}

func NewMockCacheServer[T any](clientCount int, maxTicks int) (*mockCacheServer[T], []*mockCacheClient[T]) {
	server := &mockCacheServer[T]{
		entries:     make(map[string]hitResult[T]),
		maxTicks:    maxTicks,
		clientCount: clientCount,
	}
	server.ticked = sync.NewCond(&server.mu)

	clients := make([]*mockCacheClient[T], clientCount)
	for i := range clientCount {
		clients[i] = &mockCacheClient[T]{server: server}
	}

	return server, clients
}

func (s *mockCacheServer[T]) tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTick
}

func (s *mockCacheServer[T]) isDone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTick >= s.maxTicks
}

// processTicks advances the clock until maxTicks is reached
func (s *mockCacheServer[T]) processTicks() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.currentTick < s.maxTicks {
		for s.arrived < s.clientCount {
			s.ticked.Wait()
		}
		s.arrived = 0
		s.currentTick++
		s.ticked.Broadcast()
	}
}

func (c *mockCacheClient[T]) getOrClaim(key string) hitResult[T] {
	c.server.entriesMu.Lock()
	defer c.server.entriesMu.Unlock()

	if entry, ok := c.server.entries[key]; ok {
		return hitResult[T]{data: entry.data, valid: entry.valid}
	}

	c.server.entries[key] = hitResult[T]{}
	return hitResult[T]{claimed: true}
}

func (c *mockCacheClient[T]) set(key string, data T) {
	c.server.entriesMu.Lock()
	defer c.server.entriesMu.Unlock()

	c.server.entries[key] = hitResult[T]{data: data, valid: true}
}

func (c *mockCacheClient[T]) delete(key string) {
	c.server.entriesMu.Lock()
	defer c.server.entriesMu.Unlock()

	delete(c.server.entries, key)
}

// wait blocks until every client has reached the same tick
func (c *mockCacheClient[T]) wait() {
	s := c.server
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTick >= s.maxTicks {
		panic("wait() called on a client that is already done")
	}

	c.desiredTick++
	s.arrived++
	s.ticked.Broadcast()

	for s.currentTick < c.desiredTick {
		s.ticked.Wait()
	}
}

func (c *mockCacheClient[T]) waitUntilDone() {
	for !c.server.isDone() {
		c.wait()
	}
}
