// internal/app/store/hours/mongo.go
package hours

import (
	"context"
	"time"

	"github.com/dalemusser/studyhours/internal/app/system/txn"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection backing the Mongo store.
const CollectionName = "study_hours"

// entry is one (login_id, year, month, subject) counter. Subjects are kept
// as values rather than field names so any subject string is safe.
type entry struct {
	LoginID   string    `bson:"login_id"`
	Year      int       `bson:"year"`
	Month     int       `bson:"month"`
	Subject   string    `bson:"subject"`
	Hours     int       `bson:"hours"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo is a MongoDB-backed hours store. Each subject counter is updated
// with an atomic $inc upsert, backed by the uniq_hours_login_month_subject
// index (see system/indexes). On a replica set a whole upload batch commits
// in one transaction; on a standalone server each counter is still atomic.
type Mongo struct {
	db     *mongo.Database
	c      *mongo.Collection
	logger *zap.Logger
}

// NewMongo returns a store over db.study_hours.
func NewMongo(db *mongo.Database, logger *zap.Logger) *Mongo {
	return &Mongo{db: db, c: db.Collection(CollectionName), logger: logger}
}

func (s *Mongo) Merge(ctx context.Context, loginID string, month models.Month, hours models.SubjectHours) error {
	if len(hours) == 0 {
		return nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(hours))
	for subject, h := range hours {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"login_id": loginID,
				"year":     month.Year,
				"month":    int(month.Month),
				"subject":  subject,
			}).
			SetUpdate(bson.M{
				"$inc": bson.M{"hours": h},
				"$set": bson.M{"updated_at": now},
			}).
			SetUpsert(true))
	}

	return txn.Run(ctx, s.db, s.logger, func(ctx context.Context) error {
		_, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
		return err
	})
}

func (s *Mongo) RecordsFor(ctx context.Context, loginID string) ([]models.HourRecord, error) {
	return s.find(ctx, bson.M{"login_id": loginID})
}

func (s *Mongo) All(ctx context.Context) ([]models.HourRecord, error) {
	return s.find(ctx, bson.M{})
}

// find folds subject counters back into per-(identity, month) records.
func (s *Mongo) find(ctx context.Context, filter bson.M) ([]models.HourRecord, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	type key struct {
		loginID string
		month   models.Month
	}
	index := make(map[key]int)
	var out []models.HourRecord

	for cur.Next(ctx) {
		var e entry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		k := key{loginID: e.LoginID, month: models.Month{Year: e.Year, Month: time.Month(e.Month)}}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.HourRecord{
				LoginID:  k.loginID,
				Month:    k.month,
				Subjects: make(models.SubjectHours),
			})
		}
		out[i].Subjects[e.Subject] += e.Hours
	}
	return out, cur.Err()
}
