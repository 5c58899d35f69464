package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/service/cache/provider"
	"github.com/x-xyz/swiftbid/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	lyr0 provider.Provider
	lyr1 provider.Provider
	im   *impl
}

func (ts *testsuite) SetupTest() {
	ts.lyr0 = primitive.NewPrimitive("layer 0", 1)
	ts.lyr1 = primitive.NewPrimitive("layer 1", 1)
	ts.im = NewCompound([]provider.Provider{ts.lyr0, ts.lyr1}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Minute))
	r0, _, e := ts.lyr0.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r0)
	r1, _, e := ts.lyr1.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r1)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc  string
		Key   string
		Val   string
		Cache provider.Provider
	}{
		{Desc: "hit first layer", Key: "k0", Val: "v0", Cache: ts.lyr0},
		{Desc: "hit second layer", Key: "k1", Val: "v1", Cache: ts.lyr1},
	}

	for _, c := range cases {
		ts.Require().NoError(c.Cache.Set(mockCtx, c.Key, []byte(c.Val), time.Minute), c.Desc)
		v, _, err := ts.im.Get(mockCtx, c.Key)
		ts.NoError(err, c.Desc)
		ts.Equal([]byte(c.Val), v, c.Desc)

		// second layer hits are copied up
		v, _, err = ts.lyr0.Get(mockCtx, c.Key)
		ts.NoError(err, c.Desc)
		ts.Equal([]byte(c.Val), v, c.Desc)
	}

	_, _, err := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	k := "key"
	ts.Require().NoError(ts.im.Set(mockCtx, k, []byte("value"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, k))

	_, _, err := ts.lyr0.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
	_, _, err = ts.lyr1.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, err)
}
