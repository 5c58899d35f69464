package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	r, e := ts.im.cache.Get([]byte(k))
	ts.NoError(e)
	ts.Equal(v, r)
}

func (ts *testsuite) TestGet() {
	k := "key"
	v := []byte("value")

	_, _, err := ts.im.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)

	ts.Require().NoError(ts.im.cache.Set([]byte(k), v, 60))
	r, ttl, err := ts.im.Get(mockCtx, k)
	ts.NoError(err)
	ts.Equal(v, r)
	ts.True(ttl > 55*time.Second && ttl <= time.Minute, "ttl %v", ttl)
}

func (ts *testsuite) TestDel() {
	k := "key"
	ts.Require().NoError(ts.im.cache.Set([]byte(k), []byte("value"), 60))
	ts.NoError(ts.im.Del(mockCtx, k))

	_, err := ts.im.cache.Get([]byte(k))
	ts.Equal(freecache.ErrNotFound, err)
}
