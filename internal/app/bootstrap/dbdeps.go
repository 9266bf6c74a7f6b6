// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/studyhours/internal/app/store/hours"
	"github.com/dalemusser/studyhours/internal/app/store/identities"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the stores and backend connections for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler and Shutdown. The Mongo fields are nil with the memory backend.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Identities identities.Store
	Hours      hours.Store

	// FileStorage keeps every raw CSV upload.
	FileStorage storage.Store
}
