package peg

import (
	"context"
	"errors"
	"testing"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherReturnsToPool(t *testing.T) {
	m := borrowMatcher("1, 2", 100)
	require.True(t, m.pooled)
	active := globalMatcherPool.opool.GetNumActive()
	m.releaseIntoPool()
	assert.Equal(t, active-1, globalMatcherPool.opool.GetNumActive())
	assert.Equal(t, "", m.input)
}

func TestUnpooledMatcherIsNotReturned(t *testing.T) {
	saved := globalMatcherPool
	defer func() { globalMatcherPool = saved }()
	failing := &matcherPool{ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return nil, errors.New("pool is out of matchers")
		})
	failing.opool = pool.NewObjectPoolWithDefaultConfig(failing.ctx, factory)
	globalMatcherPool = failing
	//
	m := borrowMatcher("1, 2", 100)
	require.NotNil(t, m)
	assert.False(t, m.pooled)
	m.releaseIntoPool()
	assert.Equal(t, "1, 2", m.input, "unpooled matcher should be left alone")
	assert.Equal(t, 0, failing.opool.GetNumIdle()+failing.opool.GetNumActive())
	// parsing still works without a pool
	g := MustCompile("numbers", numbersGrammar)
	tree, err := g.Parse("1, 2")
	require.NoError(t, err)
	assert.Equal(t, "list", tree.Rule)
}
