package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ObjectIDFromHex converts a 24-character hex string into the driver's
// object id type. Invalid length or charset returns ErrInvalidObjectID.
func ObjectIDFromHex(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q: %v", ErrInvalidObjectID, s, err)
	}
	return id, nil
}
