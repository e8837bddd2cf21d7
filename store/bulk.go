package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// BulkWrite executes a batch of write operations and returns the
// modified count. Each descriptor is a single-action mapping (or JSON
// text) in the driver's bulk syntax:
//
//	{"insertOne":  {"document": {...}}}
//	{"updateOne":  {"filter": {...}, "update": {...}, "upsert": true}}
//	{"updateMany": {"filter": {...}, "update": {...}}}
//	{"replaceOne": {"filter": {...}, "replacement": {...}}}
//	{"deleteOne":  {"filter": {...}}}
//	{"deleteMany": {"filter": {...}}}
//
// Options honored: ordered.
func (c *Client) BulkWrite(ctx context.Context, collection string, operations []any, opts any) (int64, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return 0, err
	}

	models := make([]mongo.WriteModel, 0, len(operations))
	for i, op := range operations {
		desc, err := Normalize(op)
		if err != nil {
			return 0, err
		}
		model, err := buildWriteModel(desc)
		if err != nil {
			return 0, fmt.Errorf("operation %d: %w", i, err)
		}
		models = append(models, model)
	}

	o, err := Normalize(opts)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("bulk_write")
	res, err := coll.BulkWrite(ctx, models, bulkWriteOptions(o))
	done(err)
	if err != nil {
		c.log.Error("bulk write failed", "collection", collection, "err", err)
		return 0, err
	}
	return res.ModifiedCount, nil
}

func buildWriteModel(desc bson.M) (mongo.WriteModel, error) {
	if len(desc) != 1 {
		return nil, fmt.Errorf("%w: bulk descriptor must hold exactly one action, got %d", ErrMalformedInput, len(desc))
	}

	var action string
	var rawBody any
	for k, v := range desc {
		action, rawBody = k, v
	}

	body, err := Normalize(rawBody)
	if err != nil {
		return nil, err
	}

	switch action {
	case "insertOne":
		doc, ok := body["document"]
		if !ok {
			return nil, fmt.Errorf("%w: insertOne requires a document", ErrMalformedInput)
		}
		return mongo.NewInsertOneModel().SetDocument(doc), nil

	case "updateOne":
		filter, update, err := updateBody(body)
		if err != nil {
			return nil, err
		}
		m := mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update)
		if b, ok := body["upsert"].(bool); ok {
			m.SetUpsert(b)
		}
		return m, nil

	case "updateMany":
		filter, update, err := updateBody(body)
		if err != nil {
			return nil, err
		}
		m := mongo.NewUpdateManyModel().SetFilter(filter).SetUpdate(update)
		if b, ok := body["upsert"].(bool); ok {
			m.SetUpsert(b)
		}
		return m, nil

	case "replaceOne":
		filter, err := Normalize(body["filter"])
		if err != nil {
			return nil, err
		}
		repl, ok := body["replacement"]
		if !ok {
			return nil, fmt.Errorf("%w: replaceOne requires a replacement", ErrMalformedInput)
		}
		m := mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(repl)
		if b, ok := body["upsert"].(bool); ok {
			m.SetUpsert(b)
		}
		return m, nil

	case "deleteOne":
		filter, err := Normalize(body["filter"])
		if err != nil {
			return nil, err
		}
		return mongo.NewDeleteOneModel().SetFilter(filter), nil

	case "deleteMany":
		filter, err := Normalize(body["filter"])
		if err != nil {
			return nil, err
		}
		return mongo.NewDeleteManyModel().SetFilter(filter), nil

	default:
		return nil, fmt.Errorf("%w: unknown bulk action %q", ErrMalformedInput, action)
	}
}

func updateBody(body bson.M) (filter, update bson.M, err error) {
	if filter, err = Normalize(body["filter"]); err != nil {
		return nil, nil, err
	}
	if _, ok := body["update"]; !ok {
		return nil, nil, fmt.Errorf("%w: update action requires an update document", ErrMalformedInput)
	}
	if update, err = Normalize(body["update"]); err != nil {
		return nil, nil, err
	}
	return filter, update, nil
}

func bulkWriteOptions(o bson.M) *options.BulkWriteOptionsBuilder {
	bo := options.BulkWrite()
	if b, ok := o["ordered"].(bool); ok {
		bo.SetOrdered(b)
	}
	return bo
}
