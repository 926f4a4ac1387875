package math

import (
	collcodec "cosmossdk.io/collections/codec"
)

// RatValue lets Rat be stored directly as a collections map value.
var RatValue collcodec.ValueCodec[Rat] = ratValueCodec{}

type ratValueCodec struct{}

func (ratValueCodec) Encode(value Rat) ([]byte, error) {
	return value.Marshal()
}

func (ratValueCodec) Decode(b []byte) (Rat, error) {
	v := new(Rat)
	err := v.Unmarshal(b)
	if err != nil {
		return Rat{}, err
	}
	return *v, nil
}

func (ratValueCodec) EncodeJSON(value Rat) ([]byte, error) {
	return value.MarshalJSON()
}

func (ratValueCodec) DecodeJSON(b []byte) (Rat, error) {
	v := new(Rat)
	err := v.UnmarshalJSON(b)
	if err != nil {
		return Rat{}, err
	}
	return *v, nil
}

func (ratValueCodec) Stringify(value Rat) string {
	return value.String()
}

func (ratValueCodec) ValueType() string {
	return "MurasypRat"
}
