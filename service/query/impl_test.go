package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/base/database/mongoclient"
	"github.com/x-xyz/swiftbid/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

func TestSortOption(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "status", Value: 1},
		{Key: "endTime", Value: -1},
	}, sortOption("status", "", "-endTime"))
	assert.Equal(t, bson.D{}, sortOption())
}

type dummy struct {
	Dummy   string `bson:"dummy"`
	Update  string `bson:"updatekey"`
	Version int64  `bson:"version"`
}

// querySuite runs against a live mongo, set MONGO_TEST_URI to enable it
type querySuite struct {
	suite.Suite
	im       *impl
	mongoURI string
}

func (q *querySuite) SetupSuite() {
	q.mongoURI = os.Getenv("MONGO_TEST_URI")
	if q.mongoURI == "" {
		q.T().Skip("MONGO_TEST_URI not set")
	}
	q.im = &impl{
		client: mongoclient.MustConnect(mongoclient.Config{
			URI:                q.mongoURI,
			AuthDBName:         "admin",
			DBName:             dbName,
			PoolSizeMultiplier: 1,
		}),
	}
}

func (q *querySuite) TearDownSuite() {
	if q.im != nil {
		q.im.client.Close()
	}
}

func (q *querySuite) SetupTest() {
	q.Require().NoError(q.im.coll(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestInsertAndFindOne() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Update: "b"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &res))
	q.Equal(dummy{Dummy: "a", Update: "b"}, res)

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "x"}, &res))
}

func (q *querySuite) TestInsertDuplicateKey() {
	q.Require().NoError(q.im.EnsureIndexes(mockCTX, []Index{
		{Table: mockTable, Keys: bson.D{{Key: "dummy", Value: 1}}, Unique: true},
	}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
}

func (q *querySuite) TestCountAndSearch() {
	for _, d := range []string{"c", "a", "b"} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: d, Update: "u"}))
	}

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "u"})
	q.Require().NoError(err)
	q.Equal(3, n)

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 2, "-dummy", bson.M{}, &res))
	q.Require().Len(res, 2)
	q.Equal("c", res[0].Dummy)
	q.Equal("b", res[1].Dummy)

	res = []dummy{}
	q.Require().NoError(q.im.SearchNSorts(mockCTX, mockTable, 1, 0, []string{"updatekey", "dummy"}, bson.M{}, &res))
	q.Require().Len(res, 2)
	q.Equal("b", res[0].Dummy)
}

func (q *querySuite) TestPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Update: "old"}))
	q.Require().NoError(q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"updatekey": "new"}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &res))
	q.Equal("new", res.Update)

	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"dummy": "x"}, bson.M{"updatekey": "new"}))
}

func (q *querySuite) TestFindOneAndUpdate() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Version: 1}))

	res := dummy{}
	err := q.im.FindOneAndUpdate(mockCTX, mockTable,
		bson.M{"dummy": "a", "version": 1},
		bson.M{"$set": bson.M{"updatekey": "x"}, "$inc": bson.M{"version": 1}},
		&res,
	)
	q.Require().NoError(err)
	q.Equal(dummy{Dummy: "a", Update: "x", Version: 2}, res)

	// stale version no longer matches
	err = q.im.FindOneAndUpdate(mockCTX, mockTable,
		bson.M{"dummy": "a", "version": 1},
		bson.M{"$set": bson.M{"updatekey": "y"}},
		&res,
	)
	q.Equal(ErrNotFound, err)
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(querySuite))
}
