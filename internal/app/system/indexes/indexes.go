// Package indexes declares the MongoDB indexes the mongo backend relies on and
// reconciles them at startup.
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// spec is one wanted index.
type spec struct {
	collection string
	name       string
	keys       bson.D
	unique     bool
}

// Collection names match the store packages' CollectionName constants.
// They are repeated here because store tests set up their databases
// through this package.
const (
	identitiesColl = "identities"
	hoursColl      = "study_hours"
)

// wanted lists every index, grouped by collection.
var wanted = []spec{
	// Login IDs are case-sensitive; a duplicate insert is "User already exists!".
	{
		collection: identitiesColl,
		name:       "uniq_identity_login_id",
		keys:       bson.D{{Key: "login_id", Value: 1}},
		unique:     true,
	},
	// One counter per (identity, month, subject). Concurrent $inc upserts
	// converge on it.
	{
		collection: hoursColl,
		name:       "uniq_hours_login_month_subject",
		keys: bson.D{
			{Key: "login_id", Value: 1},
			{Key: "year", Value: 1},
			{Key: "month", Value: 1},
			{Key: "subject", Value: 1},
		},
		unique: true,
	},
	{
		collection: hoursColl,
		name:       "idx_hours_month",
		keys:       bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}},
	},
}

// EnsureAll creates any missing index and rebuilds one whose uniqueness
// changed. It is idempotent. Every failure is collected so a bad startup
// reports all of them at once.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	present := map[string]map[string]current{}
	var problems []string

	for _, s := range wanted {
		have, ok := present[s.collection]
		if !ok {
			have = listIndexes(ctx, db.Collection(s.collection))
			present[s.collection] = have
		}
		if err := ensureOne(ctx, db.Collection(s.collection), s, have); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// current is an index as the server reports it.
type current struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique bool   `bson:"unique"`
}

// signature identifies an index by its ordered keys so a renamed index is
// still recognized.
func signature(keys bson.D) string {
	var b strings.Builder
	for i, e := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", e.Key, e.Value)
	}
	return b.String()
}

// listIndexes returns the collection's indexes by signature. A collection that
// cannot be listed is treated as having none; creation then surfaces the
// underlying error.
func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]current {
	out := map[string]current{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var idx current
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("skipping undecodable index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[signature(idx.Key)] = idx
	}
	return out
}

func ensureOne(ctx context.Context, coll *mongo.Collection, s spec, have map[string]current) error {
	log := zap.L().With(
		zap.String("collection", s.collection),
		zap.String("index", s.name),
		zap.Bool("unique", s.unique))

	if ex, ok := have[signature(s.keys)]; ok {
		if ex.Unique == s.unique {
			log.Debug("index present", zap.String("existing_name", ex.Name))
			return nil
		}
		if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
			return fmt.Errorf("%s.%s: drop %s: %w", s.collection, s.name, ex.Name, err)
		}
		log.Info("dropped index with stale options", zap.String("existing_name", ex.Name))
	}

	opts := options.Index().SetName(s.name)
	if s.unique {
		opts.SetUnique(true)
	}
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: s.keys, Options: opts}); err != nil {
		if s.unique && wafflemongo.IsDup(err) {
			return fmt.Errorf("%s.%s: duplicate documents block the unique index", s.collection, s.name)
		}
		return fmt.Errorf("%s.%s: %w", s.collection, s.name, err)
	}
	log.Info("index created")
	return nil
}
