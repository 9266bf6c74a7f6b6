// Package validators attaches MongoDB JSON-Schema validators to the study
// hours collections. Servers that cannot run collMod are tolerated.
package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/studyhours/internal/app/store/hours"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// collection pairs a collection name with its validator document.
type collection struct {
	name   string
	schema bson.M
}

func collections() []collection {
	return []collection{
		{identities.CollectionName, identitiesSchema()},
		{hours.CollectionName, studyHoursSchema()},
	}
}

// EnsureAll creates each collection when missing and (re)applies its
// validator. The hours collection must exist before the first merge because
// a transaction cannot create it implicitly on older servers.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		// Fall through to create; a NamespaceExists reply is harmless.
		zap.L().Warn("listing collections failed", zap.Error(err))
	}
	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	var problems []string
	for _, c := range collections() {
		if err := ensure(ctx, db, c, have[c.name]); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", c.name, err))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, db *mongo.Database, c collection, exists bool) error {
	log := zap.L().With(zap.String("collection", c.name))

	if !exists {
		switch err := db.CreateCollection(ctx, c.name); classify(err) {
		case errNone:
			log.Info("created collection")
		case errExists:
		default:
			return fmt.Errorf("create: %w", err)
		}
	}

	cmd := bson.D{
		{Key: "collMod", Value: c.name},
		{Key: "validator", Value: c.schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	err := db.RunCommand(ctx, cmd).Err()
	switch classify(err) {
	case errNone:
		log.Info("validator applied")
		return nil
	case errUnsupported:
		log.Info("validator skipped, server does not support collMod", zap.Error(err))
		return nil
	default:
		return fmt.Errorf("collMod: %w", err)
	}
}

type errKind int

const (
	errNone errKind = iota
	errExists
	errUnsupported
	errOther
)

// Server codes: 48 NamespaceExists, 59 CommandNotFound, 115 CommandNotSupported.
func classify(err error) errKind {
	if err == nil {
		return errNone
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 48:
			return errExists
		case 59, 115:
			return errUnsupported
		}
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "namespace exists"):
		return errExists
	case strings.Contains(msg, "no such command"),
		strings.Contains(msg, "not implemented"),
		strings.Contains(msg, "not supported"):
		return errUnsupported
	}
	return errOther
}

func identitiesSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"login_id", "password_hash", "display_name"},
		"properties": bson.M{
			"login_id":      bson.M{"bsonType": "string", "minLength": 1},
			"password_hash": bson.M{"bsonType": "string", "minLength": 1},
			"display_name":  bson.M{"bsonType": "string"},
			"created_at":    bson.M{"bsonType": "date"},
		},
	}}
}

// Hours are unbounded; only the bucket key is constrained.
func studyHoursSchema() bson.M {
	integer := bson.A{"int", "long"}
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"login_id", "year", "month", "subject", "hours"},
		"properties": bson.M{
			"login_id": bson.M{"bsonType": "string", "minLength": 1},
			"year":     bson.M{"bsonType": integer},
			"month":    bson.M{"bsonType": integer, "minimum": 1, "maximum": 12},
			"subject":  bson.M{"bsonType": "string"},
			"hours":    bson.M{"bsonType": integer},
		},
	}}
}
