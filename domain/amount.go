package domain

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/xerrors"
)

// Amount is a decimal quantity of the ledger's native currency. It is stored
// in mongo as a decimal string and marshals to JSON as a string.
type Amount struct {
	decimal.Decimal
}

var ZeroAmount = Amount{decimal.Zero}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{d}
}

func NewAmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroAmount, xerrors.Errorf("invalid amount %q: %w", s, ErrInvalidNumberFormat)
	}
	return Amount{d}, nil
}

// MustAmount panics on malformed input, intended for constants and tests
func MustAmount(s string) Amount {
	a, err := NewAmountFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThanOrEqual(b.Decimal) {
		return a
	}
	return b
}

func (a Amount) Mul(d decimal.Decimal) Amount {
	return Amount{a.Decimal.Mul(d)}
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.Decimal.String())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		a.Decimal = decimal.Zero
		return nil
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return err
		}
		a.Decimal = d
		return nil
	case bsontype.Double:
		a.Decimal = decimal.NewFromFloat(raw.Double())
		return nil
	case bsontype.Int32:
		a.Decimal = decimal.NewFromInt32(raw.Int32())
		return nil
	case bsontype.Int64:
		a.Decimal = decimal.NewFromInt(raw.Int64())
		return nil
	}
	return xerrors.Errorf("cannot decode %s into Amount", t)
}
