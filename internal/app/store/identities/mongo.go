// internal/app/store/identities/mongo.go
package identities

import (
	"context"
	"time"

	"github.com/dalemusser/studyhours/internal/app/system/authutil"
	"github.com/dalemusser/studyhours/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection backing the Mongo store.
const CollectionName = "identities"

// Mongo is a MongoDB-backed identity store. Uniqueness of login_id is
// enforced by the uniq_identity_login_id index (see system/indexes).
type Mongo struct {
	c *mongo.Collection
}

// NewMongo returns a store over db.identities.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection(CollectionName)}
}

func (s *Mongo) Register(ctx context.Context, loginID, password, displayName string) (models.Identity, error) {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		LoginID:      loginID,
		PasswordHash: hash,
		DisplayName:  DisplayName(displayName),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, id); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Identity{}, ErrDuplicateIdentity
		}
		return models.Identity{}, err
	}
	return id, nil
}

func (s *Mongo) Authenticate(ctx context.Context, loginID, password string) (models.Identity, error) {
	id, err := s.Get(ctx, loginID)
	if err == ErrNotFound {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Identity{}, err
	}
	if !authutil.CheckPassword(password, id.PasswordHash) {
		return models.Identity{}, ErrInvalidCredentials
	}
	return id, nil
}

func (s *Mongo) Get(ctx context.Context, loginID string) (models.Identity, error) {
	var id models.Identity
	if err := s.c.FindOne(ctx, bson.M{"login_id": loginID}).Decode(&id); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Identity{}, ErrNotFound
		}
		return models.Identity{}, err
	}
	return id, nil
}

func (s *Mongo) DisplayNames(ctx context.Context) (map[string]string, error) {
	proj := options.Find().SetProjection(bson.M{"login_id": 1, "display_name": 1})
	cur, err := s.c.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]string)
	for cur.Next(ctx) {
		var id models.Identity
		if err := cur.Decode(&id); err != nil {
			return nil, err
		}
		out[id.LoginID] = id.DisplayName
	}
	return out, cur.Err()
}

func (s *Mongo) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.Register(ctx, models.AdminLoginID, password, models.AdminLoginID)
	if err == ErrDuplicateIdentity {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
