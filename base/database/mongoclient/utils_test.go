package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/escrowapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type patchableItem struct {
		IsStarted *bool   `bson:"isStarted,omitempty"`
		IsSold    *bool   `bson:"isSold,omitempty"`
		Seller    string  `bson:"seller"`
		Note      string  `bson:"note"`
		Skipped   *string `bson:"-"`
	}

	patchable := &patchableItem{
		IsStarted: ptr.Bool(false),
		Note:      "hey!yo!",
		Skipped:   ptr.String("x"),
	}

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"isStarted": false,
			// isSold is nil and seller is empty, both ignored
			"note": "hey!yo!",
		},
		updater,
	)
}

func TestMakeBsonMNotStruct(t *testing.T) {
	_, err := MakeBsonM(ptr.Int(1))
	assert.Equal(t, ErrNotStruct, err)
}
