package peg

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
)

// maxPooledMemo is the size of a memo table beyond which it is not kept for
// the next parse.
const maxPooledMemo = 1 << 12

// Matchers are short-lived, but each one carries a memo table and an output
// stack. To avoid re-allocating them for every parse we will pool them.
type matcherPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalMatcherPool *matcherPool

func init() {
	globalMatcherPool = &matcherPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newMatcher(), nil
		})
	globalMatcherPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalMatcherPool.opool = pool.NewObjectPool(globalMatcherPool.ctx, factory, config)
}

func newMatcher() *matcher {
	return &matcher{memo: make(map[uint64]memoEntry)}
}

// borrowMatcher returns a matcher for input, with a budget of steps.
func borrowMatcher(input string, steps int) *matcher {
	var m *matcher
	if o, err := globalMatcherPool.opool.BorrowObject(globalMatcherPool.ctx); err == nil {
		m = o.(*matcher)
		m.pooled = true
	} else {
		tracer().Infof("cannot borrow matcher: %v", err)
		m = newMatcher()
	}
	m.input = input
	m.steps = steps
	return m
}

// Clears the matcher and puts it back into the pool, if it has been borrowed
// from there. Nodes and slices handed out to clients must not alias the
// matcher's buffers.
func (m *matcher) releaseIntoPool() {
	if !m.pooled {
		return
	}
	m.input = ""
	for i := range m.out {
		m.out[i] = nil
	}
	m.out = m.out[:0]
	if len(m.memo) > maxPooledMemo {
		m.memo = make(map[uint64]memoEntry)
	} else {
		clear(m.memo)
	}
	m.steps = 0
	m.exhausted = false
	m.lookahead = 0
	m.farthest = 0
	m.expected = m.expected[:0]
	if err := globalMatcherPool.opool.ReturnObject(globalMatcherPool.ctx, m); err != nil {
		tracer().Errorf("cannot return matcher to pool: %v", err)
	}
}
