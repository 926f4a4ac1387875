package math_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	murmath "github.com/equaeghe/murasyp/math"
)

func TestRatEncoding(t *testing.T) {
	x := murmath.MustNewRatFromString("5/4")

	encoded, err := murmath.RatValue.Encode(x)
	require.NoError(t, err)
	require.Equal(t, []byte("5/4"), encoded)

	decoded, err := murmath.RatValue.Decode(encoded)
	require.NoError(t, err)
	require.True(t, x.Equal(decoded))
}

func TestRatEncodingJSON(t *testing.T) {
	x := murmath.MustNewRatFromString("5/4")

	encoded, err := murmath.RatValue.EncodeJSON(x)
	require.NoError(t, err)
	require.Equal(t, []byte("\"5/4\""), encoded)

	decoded, err := murmath.RatValue.DecodeJSON(encoded)
	require.NoError(t, err)
	require.True(t, x.Equal(decoded))
}

func TestRatEncodingStringify(t *testing.T) {
	x := murmath.MustNewRatFromString("5/4")
	require.Equal(t, "5/4", murmath.RatValue.Stringify(x))
}

func TestRatEncodingValueType(t *testing.T) {
	require.Equal(t, "MurasypRat", murmath.RatValue.ValueType())
}
