package casing

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Memo caches Check results by string contents. It is shared across files
// and safe for concurrent use. Returned analyses must not be modified.
type Memo struct {
	checker *Checker
	cache   *lru.LRU[string, Analysis]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewMemo wraps c with an LRU of size entries. Entries never expire.
func NewMemo(c *Checker, size int) *Memo {
	if size < 16 {
		size = 16
	}
	return &Memo{
		checker: c,
		cache:   lru.NewLRU[string, Analysis](size, nil, 0),
	}
}

// Checker returns the wrapped checker.
func (m *Memo) Checker() *Checker { return m.checker }

func (m *Memo) Check(s string) Analysis {
	if a, ok := m.cache.Get(s); ok {
		m.hits.Add(1)
		return a
	}
	m.misses.Add(1)
	a := m.checker.Check(s)
	m.cache.Add(s, a)
	return a
}

// Stats returns cache hits and misses so far.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
