package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestBuildWriteModelActions(t *testing.T) {
	tests := []struct {
		name string
		desc bson.M
		want any
	}{
		{
			"insertOne",
			bson.M{"insertOne": bson.M{"document": bson.M{"a": 1}}},
			&mongo.InsertOneModel{},
		},
		{
			"updateOne",
			bson.M{"updateOne": bson.M{"filter": bson.M{"a": 1}, "update": bson.M{"$set": bson.M{"a": 2}}}},
			&mongo.UpdateOneModel{},
		},
		{
			"updateMany",
			bson.M{"updateMany": bson.M{"filter": bson.M{}, "update": bson.M{"$inc": bson.M{"n": 1}}}},
			&mongo.UpdateManyModel{},
		},
		{
			"replaceOne",
			bson.M{"replaceOne": bson.M{"filter": bson.M{"a": 1}, "replacement": bson.M{"a": 2}}},
			&mongo.ReplaceOneModel{},
		},
		{
			"deleteOne",
			bson.M{"deleteOne": bson.M{"filter": bson.M{"a": 1}}},
			&mongo.DeleteOneModel{},
		},
		{
			"deleteMany",
			bson.M{"deleteMany": bson.M{"filter": bson.M{}}},
			&mongo.DeleteManyModel{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := buildWriteModel(tt.desc)
			require.NoError(t, err)
			assert.IsType(t, tt.want, model)
		})
	}
}

func TestBuildWriteModelUpsert(t *testing.T) {
	model, err := buildWriteModel(bson.M{
		"updateOne": bson.M{
			"filter": bson.M{"a": 1},
			"update": bson.M{"$set": bson.M{"a": 2}},
			"upsert": true,
		},
	})
	require.NoError(t, err)

	up, ok := model.(*mongo.UpdateOneModel)
	require.True(t, ok)
	require.NotNil(t, up.Upsert)
	assert.True(t, *up.Upsert)
}

func TestBuildWriteModelTextDescriptorBody(t *testing.T) {
	// descriptor bodies may themselves arrive as JSON text
	model, err := buildWriteModel(bson.M{
		"deleteOne": `{"filter": {"a": 1}}`,
	})
	require.NoError(t, err)
	assert.IsType(t, &mongo.DeleteOneModel{}, model)
}

func TestBuildWriteModelRejectsBadDescriptors(t *testing.T) {
	tests := []struct {
		name string
		desc bson.M
	}{
		{"unknown action", bson.M{"upsertEverything": bson.M{}}},
		{"two actions", bson.M{"insertOne": bson.M{"document": bson.M{}}, "deleteOne": bson.M{}}},
		{"empty descriptor", bson.M{}},
		{"insertOne without document", bson.M{"insertOne": bson.M{}}},
		{"updateOne without update", bson.M{"updateOne": bson.M{"filter": bson.M{"a": 1}}}},
		{"replaceOne without replacement", bson.M{"replaceOne": bson.M{"filter": bson.M{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildWriteModel(tt.desc)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}
