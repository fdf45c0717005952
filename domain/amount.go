package domain

import (
	"bytes"
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/xerrors"
)

const etherDecimals = 18

// Amount is an immutable wei quantity. The zero value is 0.
type Amount struct {
	v *big.Int
}

func NewAmount(wei int64) Amount {
	return Amount{v: big.NewInt(wei)}
}

func AmountFromBig(b *big.Int) Amount {
	if b == nil {
		return Amount{}
	}
	return Amount{v: new(big.Int).Set(b)}
}

// ParseAmount parses a base 10 wei string
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return Amount{}, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, xerrors.Errorf("%w: %q", ErrInvalidNumberFormat, s)
	}
	return Amount{v: v}, nil
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Big returns a copy of the underlying integer
func (a Amount) Big() *big.Int {
	return new(big.Int).Set(a.big())
}

func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

func (a Amount) Add(b Amount) Amount {
	return Amount{v: new(big.Int).Add(a.big(), b.big())}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{v: new(big.Int).Sub(a.big(), b.big())}
}

func (a Amount) Sign() int {
	return a.big().Sign()
}

func (a Amount) IsZero() bool {
	return a.Sign() == 0
}

func (a Amount) String() string {
	return a.big().String()
}

// Ether converts wei to ether for display
func (a Amount) Ether() decimal.Decimal {
	return decimal.NewFromBigInt(a.big(), -etherDecimals)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a quoted decimal string and a bare integer literal
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" {
		*a = Amount{}
		return nil
	}
	res, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = res
	return nil
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.String())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return xerrors.Errorf("%w: bson type %s", ErrInvalidNumberFormat, t)
	}
	res, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = res
	return nil
}
