// Package testutil holds shared helpers for package tests: a throwaway
// MongoDB database per test, request builders and template boot.
package testutil

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/studyhours/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestDBName prefixes every per-test database.
const TestDBName = "studyhours_test"

// mongoURI is the server tests connect to; STUDYHOURS_TEST_MONGO_URI overrides it.
func mongoURI() string {
	if v := os.Getenv("STUDYHOURS_TEST_MONGO_URI"); v != "" {
		return v
	}
	return "mongodb://localhost:27017"
}

var shared = struct {
	once   sync.Once
	client *mongo.Client
	err    error
}{}

// sharedClient connects once per test binary. Short selection timeouts make
// an absent server a quick skip rather than a slow failure.
func sharedClient() (*mongo.Client, error) {
	shared.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(mongoURI()).
			SetConnectTimeout(3 * time.Second).
			SetServerSelectionTimeout(3 * time.Second)
		shared.client, shared.err = mongo.Connect(ctx, opts)
		if shared.err == nil {
			shared.err = shared.client.Ping(ctx, nil)
		}
	})
	return shared.client, shared.err
}

// SetupTestDB returns an empty database named after the test, with the
// production indexes in place. It is dropped on cleanup.
// Without a reachable MongoDB the test is skipped, so memory-backend tests
// still run everywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := sharedClient()
	if err != nil {
		t.Skipf("MongoDB not reachable at %s: %v", mongoURI(), err)
	}

	db := client.Database(TestDBName + "_" + dbSuffix(t.Name()))

	ctx, cancel := TestContext()
	defer cancel()
	if err := db.Drop(ctx); err != nil {
		t.Fatalf("drop test database: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database on cleanup: %v", err)
		}
	})
	return db
}

// dbSuffix maps a test name onto characters MongoDB accepts in database
// names, keeping the full name within the 63-byte limit.
func dbSuffix(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
	if max := 63 - len(TestDBName) - 1; len(s) > max {
		s = s[:max]
	}
	return s
}

// TestContext returns a context with a generous deadline for test setup.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
