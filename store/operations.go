package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Find returns every document matching filter, materialized (not lazy).
// Documents decode per the "shape" option, defaulting to plain maps at
// every nesting level. Options honored: projection, sort, limit, skip.
func (c *Client) Find(ctx context.Context, collection string, filter, opts any) ([]map[string]any, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return nil, err
	}
	f, err := Normalize(filter)
	if err != nil {
		return nil, err
	}
	o, err := Normalize(opts)
	if err != nil {
		return nil, err
	}
	o = ApplyDefaultShape(o)

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("find")
	cur, err := coll.Find(ctx, f, findOptions(o))
	if err != nil {
		done(err)
		c.log.Error("find failed", "collection", collection, "err", err)
		return nil, err
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		done(err)
		c.log.Error("find cursor drain failed", "collection", collection, "err", err)
		return nil, err
	}
	done(nil)

	shape := shapeOf(o)
	docs := make([]map[string]any, len(raw))
	for i, d := range raw {
		docs[i] = shapeDoc(d, shape)
	}
	return docs, nil
}

// Count returns the number of documents matching filter.
// Options honored: limit, skip.
func (c *Client) Count(ctx context.Context, collection string, filter, opts any) (int64, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return 0, err
	}
	f, err := Normalize(filter)
	if err != nil {
		return 0, err
	}
	o, err := Normalize(opts)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("count")
	n, err := coll.CountDocuments(ctx, f, countOptions(o))
	done(err)
	if err != nil {
		c.log.Error("count failed", "collection", collection, "err", err)
		return 0, err
	}
	return n, nil
}

// InsertOne inserts a single document and returns its identifier.
// The document accepts JSON text or a structured value; an empty
// document is ErrMalformedInput, not a silent no-op.
func (c *Client) InsertOne(ctx context.Context, collection string, document any) (any, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return nil, err
	}
	doc, err := normalizeDocument(document)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("insert_one")
	res, err := coll.InsertOne(ctx, doc)
	done(err)
	if err != nil {
		c.log.Error("insert one failed", "collection", collection, "err", err)
		return nil, err
	}
	return res.InsertedID, nil
}

// InsertMany inserts documents in order and returns their identifiers,
// index-aligned with the input.
func (c *Client) InsertMany(ctx context.Context, collection string, documents []any) ([]any, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return nil, err
	}
	docs := make([]any, len(documents))
	for i, d := range documents {
		doc, err := normalizeDocument(d)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("insert_many")
	res, err := coll.InsertMany(ctx, docs)
	done(err)
	if err != nil {
		c.log.Error("insert many failed", "collection", collection, "err", err)
		return nil, err
	}
	return res.InsertedIDs, nil
}

// DeleteOne deletes the first document matching filter and returns the
// deleted count.
func (c *Client) DeleteOne(ctx context.Context, collection string, filter any) (int64, error) {
	return c.delete(ctx, collection, filter, false)
}

// DeleteMany deletes every document matching filter and returns the
// deleted count.
func (c *Client) DeleteMany(ctx context.Context, collection string, filter any) (int64, error) {
	return c.delete(ctx, collection, filter, true)
}

func (c *Client) delete(ctx context.Context, collection string, filter any, many bool) (int64, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return 0, err
	}
	f, err := Normalize(filter)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	op := "delete_one"
	if many {
		op = "delete_many"
	}
	done := c.observe(op)

	var deleted int64
	if many {
		res, derr := coll.DeleteMany(ctx, f)
		err = derr
		if res != nil {
			deleted = res.DeletedCount
		}
	} else {
		res, derr := coll.DeleteOne(ctx, f)
		err = derr
		if res != nil {
			deleted = res.DeletedCount
		}
	}
	done(err)
	if err != nil {
		c.log.Error("delete failed", "collection", collection, "many", many, "err", err)
		return 0, err
	}
	return deleted, nil
}

// UpdateOne applies update to the first document matching filter and
// returns the modified count. Options honored: upsert.
func (c *Client) UpdateOne(ctx context.Context, collection string, filter, update, opts any) (int64, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return 0, err
	}
	f, u, o, err := normalizeUpdateArgs(filter, update, opts)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("update_one")
	res, err := coll.UpdateOne(ctx, f, u, updateOneOptions(o))
	done(err)
	if err != nil {
		c.log.Error("update one failed", "collection", collection, "err", err)
		return 0, err
	}
	return res.ModifiedCount, nil
}

// UpdateMany applies update to every document matching filter and
// returns the modified count. Options honored: upsert.
func (c *Client) UpdateMany(ctx context.Context, collection string, filter, update, opts any) (int64, error) {
	coll, err := c.collection(collection)
	if err != nil {
		return 0, err
	}
	f, u, o, err := normalizeUpdateArgs(filter, update, opts)
	if err != nil {
		return 0, err
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	done := c.observe("update_many")
	res, err := coll.UpdateMany(ctx, f, u, updateManyOptions(o))
	done(err)
	if err != nil {
		c.log.Error("update many failed", "collection", collection, "err", err)
		return 0, err
	}
	return res.ModifiedCount, nil
}

func normalizeUpdateArgs(filter, update, opts any) (f, u, o bson.M, err error) {
	if f, err = Normalize(filter); err != nil {
		return nil, nil, nil, err
	}
	if u, err = Normalize(update); err != nil {
		return nil, nil, nil, err
	}
	if o, err = Normalize(opts); err != nil {
		return nil, nil, nil, err
	}
	return f, u, o, nil
}

// option builders: only the handful of modifiers the façade exposes are
// lifted out of the options mapping; everything else is ignored.

func findOptions(o bson.M) *options.FindOptionsBuilder {
	fo := options.Find()
	if v, ok := o["projection"]; ok {
		fo.SetProjection(v)
	}
	if v, ok := o["sort"]; ok {
		fo.SetSort(v)
	}
	if n, ok := asInt64(o["limit"]); ok {
		fo.SetLimit(n)
	}
	if n, ok := asInt64(o["skip"]); ok {
		fo.SetSkip(n)
	}
	return fo
}

func countOptions(o bson.M) *options.CountOptionsBuilder {
	co := options.Count()
	if n, ok := asInt64(o["limit"]); ok {
		co.SetLimit(n)
	}
	if n, ok := asInt64(o["skip"]); ok {
		co.SetSkip(n)
	}
	return co
}

func updateOneOptions(o bson.M) *options.UpdateOneOptionsBuilder {
	uo := options.UpdateOne()
	if b, ok := o["upsert"].(bool); ok {
		uo.SetUpsert(b)
	}
	return uo
}

func updateManyOptions(o bson.M) *options.UpdateManyOptionsBuilder {
	uo := options.UpdateMany()
	if b, ok := o["upsert"].(bool); ok {
		uo.SetUpsert(b)
	}
	return uo
}

// asInt64 tolerates the numeric types JSON and BSON decoding produce.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
