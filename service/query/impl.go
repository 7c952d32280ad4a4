package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
)

const (
	queryMaxTime  = 20 * time.Second
	slowThreshold = 500 * time.Millisecond
	// concurrent sessions, each transaction holds one
	txLimit = 10
)

var (
	met     = metrics.New("query")
	timeNow = time.Now
)

type impl struct {
	client *mongoclient.Client
	tokens chan struct{}
}

func New(client *mongoclient.Client) Mongo {
	return &impl{
		client: client,
		tokens: make(chan struct{}, txLimit),
	}
}

func (im *impl) coll(table domain.Table) *mongo.Collection {
	return im.client.Database(im.client.DbName).Collection(string(table))
}

// begin tags c with the call and returns a func that records its duration,
// warning when it ran slow.
func (im *impl) begin(c ctx.Ctx, table domain.Table, action string, query interface{}) (ctx.Ctx, func()) {
	c = ctx.WithValues(c, map[string]interface{}{
		"table":  table,
		"action": action,
		"query":  query,
	})
	timer := met.BumpTime("time", "func", action, "table", string(table))
	start := timeNow()
	return c, func() {
		timer.End()
		if elapsed := timeNow().Sub(start); elapsed >= slowThreshold {
			met.BumpSum("mongo.slowlog", 1, "table", string(table), "action", action)
			c.WithField("durationMs", elapsed.Milliseconds()).Warn("mongo slowlog")
		}
	}
}

func (im *impl) logerr(c ctx.Ctx, msg string, err error) {
	if _, ok := err.(topology.ConnectionError); ok {
		met.BumpSum("conn.err", 1)
	}
	c.WithField("err", err).Error(msg)
}

func (im *impl) Insert(c ctx.Ctx, table domain.Table, insert interface{}) error {
	c, end := im.begin(c, table, "insert", nil)
	defer end()

	if _, err := im.coll(table).InsertOne(c, insert); mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	} else if err != nil {
		im.logerr(c, "InsertOne failed", err)
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error {
	c, end := im.begin(c, table, "findone", query)
	defer end()

	res := im.coll(table).FindOne(c, query, options.FindOne().SetMaxTime(queryMaxTime))
	if err := res.Decode(result); err == mongo.ErrNoDocuments {
		return ErrNotFound
	} else if err != nil {
		im.logerr(c, "FindOne failed", err)
		return err
	}
	return nil
}

func sortOption(fields ...string) bson.D {
	res := bson.D{}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if f[0] == '-' {
			res = append(res, bson.E{Key: f[1:], Value: -1})
		} else {
			res = append(res, bson.E{Key: f, Value: 1})
		}
	}
	return res
}

func (im *impl) Find(c ctx.Ctx, table domain.Table, query, results interface{}, ops ...FindOp) error {
	c, end := im.begin(c, table, "find", query)
	defer end()

	o := &findOp{}
	for _, op := range ops {
		op(o)
	}
	opts := options.Find().SetMaxTime(queryMaxTime).SetSkip(int64(o.offset))
	if o.limit > 0 {
		opts.SetLimit(int64(o.limit))
	}
	if sort := sortOption(o.sort...); len(sort) > 0 {
		opts.SetSort(sort)
	}

	cursor, err := im.coll(table).Find(c, query, opts)
	if err != nil {
		im.logerr(c, "Find failed", err)
		return err
	}
	defer cursor.Close(c)

	if err := cursor.All(c, results); err != nil {
		im.logerr(c, "cursor.All failed", err)
		return err
	}
	return nil
}

func (im *impl) Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error) {
	c, end := im.begin(c, table, "count", selector)
	defer end()

	n, err := im.coll(table).CountDocuments(c, selector, options.Count().SetMaxTime(queryMaxTime))
	if err != nil {
		im.logerr(c, "CountDocuments failed", err)
		return 0, err
	}
	return int(n), nil
}

func (im *impl) Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	c, end := im.begin(c, table, "upsert", selector)
	defer end()

	if _, err := im.coll(table).ReplaceOne(c, selector, update, options.Replace().SetUpsert(true)); err != nil {
		im.logerr(c, "ReplaceOne failed", err)
		return err
	}
	return nil
}

func (im *impl) Patch(c ctx.Ctx, table domain.Table, selector, update interface{}) error {
	c, end := im.begin(c, table, "patch", selector)
	defer end()

	res, err := im.coll(table).UpdateOne(c, selector, bson.M{"$set": update})
	if err != nil {
		im.logerr(c, "UpdateOne failed", err)
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) Remove(c ctx.Ctx, table domain.Table, selector interface{}) error {
	c, end := im.begin(c, table, "remove", selector)
	defer end()

	res, err := im.coll(table).DeleteOne(c, selector)
	if err != nil {
		im.logerr(c, "DeleteOne failed", err)
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (im *impl) EnsureIndexes(c ctx.Ctx, table domain.Table, indexes ...Index) error {
	if len(indexes) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		models = append(models, mongo.IndexModel{
			Keys:    sortOption(idx.Keys...),
			Options: options.Index().SetUnique(idx.Unique),
		})
	}
	if _, err := im.coll(table).Indexes().CreateMany(c, models); err != nil {
		im.logerr(ctx.WithValue(c, "table", table), "Indexes.CreateMany failed", err)
		return err
	}
	return nil
}

func (im *impl) Ping(c ctx.Ctx) error {
	return im.client.Ping(c, readpref.Primary())
}

// View needs no session, reads outside one only see committed documents.
func (im *impl) View(c ctx.Ctx, run func(ctx.Ctx) error) error {
	return run(c)
}

func (im *impl) RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error {
	if mongo.SessionFromContext(c) != nil {
		return run(c)
	}

	select {
	case <-c.Done():
		return c.Err()
	case im.tokens <- struct{}{}:
	}
	defer func() { <-im.tokens }()

	session, err := im.client.StartSession()
	if err != nil {
		im.logerr(c, "StartSession failed", err)
		return err
	}
	defer session.EndSession(c)

	_, err = session.WithTransaction(c, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, run(ctx.Ctx{Context: sessCtx, Logger: c.Logger})
	})
	if err != nil {
		c.WithField("err", err).Debug("mongo transaction aborted")
	}
	return err
}
