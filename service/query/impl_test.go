package query

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/escrowapi/base/ctx"
	"github.com/x-xyz/escrowapi/base/database/mongoclient"
	"github.com/x-xyz/escrowapi/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "testdb"
)

func TestGetSortOption(t *testing.T) {
	s := getSortOption("itemId", "", "-index")
	if len(s) != 2 || s[0].Key != "itemId" || s[0].Value != 1 || s[1].Key != "index" || s[1].Value != -1 {
		t.Fatalf("unexpected sort option %v", s)
	}
}

// querySuite talks to a real replica set given by TEST_MONGO_URI
type querySuite struct {
	suite.Suite
	im *impl
}

func TestQuerySuite(t *testing.T) {
	if os.Getenv("TEST_MONGO_URI") == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	suite.Run(t, new(querySuite))
}

func (q *querySuite) SetupTest() {
	client := mongoclient.MustConnectMongoClient(os.Getenv("TEST_MONGO_URI"), "admin", dbName, false, true, 1)
	q.im = New(client, false).(*impl)
	q.Require().NoError(q.im.collection(mockTable).Drop(mockCTX))
}

type dummy struct {
	Key   string `bson:"key"`
	Value int    `bson:"value"`
}

func (q *querySuite) TestFindOne() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", 1}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"key": "a"}, &res))
	q.Equal(dummy{"a", 1}, res)
	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"key": "b"}, &res))
}

func (q *querySuite) TestPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", 1}))
	q.Require().NoError(q.im.Patch(mockCTX, mockTable, bson.M{"key": "a"}, bson.M{"value": 2}))
	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, bson.M{"key": "b"}, bson.M{"value": 2}))

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"key": "a"}, &res))
	q.Equal(2, res.Value)
}

func (q *querySuite) TestIncrement() {
	res := dummy{}
	q.Require().NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "c"}, &res, "value", 1))
	q.Equal(1, res.Value)
	q.Require().NoError(q.im.Increment(mockCTX, mockTable, bson.M{"key": "c"}, &res, "value", 1))
	q.Equal(2, res.Value)
}

func (q *querySuite) TestRunWithTransactionAbort() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{"a", 1}))

	err := q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		q.Require().NoError(q.im.Patch(c, mockTable, bson.M{"key": "a"}, bson.M{"value": 5}))
		return domain.ErrInsufficientBalance
	})
	q.ErrorIs(err, domain.ErrInsufficientBalance)

	res := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"key": "a"}, &res))
	q.Equal(1, res.Value)
}
