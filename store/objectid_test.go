package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestObjectIDFromHexRoundTrip(t *testing.T) {
	id := bson.NewObjectID()

	parsed, err := ObjectIDFromHex(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestObjectIDFromHexInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not an id", "not-a-valid-id"},
		{"too short", "abc123"},
		{"bad charset", "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ObjectIDFromHex(tt.in)
			assert.ErrorIs(t, err, ErrInvalidObjectID)
		})
	}
}
