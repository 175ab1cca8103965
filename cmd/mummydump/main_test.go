package main

import (
	"testing"

	"github.com/mummydata/mummy"
	"github.com/stretchr/testify/require"
)

func TestUntransformKnownSchema(t *testing.T) {
	typ, err := mummy.Bind(demoSchemas["point"])
	require.NoError(t, err)

	msg := typ.New(mummy.Hash{
		{Key: "x", Value: 1.5},
		{Key: "y", Value: -2.0},
	})
	require.NoError(t, msg.Validate())

	encoded, err := msg.EncodeTransformed()
	require.NoError(t, err)

	require.NoError(t, untransform(encoded, "point"))
}

func TestUntransformUnknownSchema(t *testing.T) {
	require.Error(t, untransform(nil, "no-such-schema"))
}
