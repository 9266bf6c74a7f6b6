package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		StoreBackend:  BackendMemory,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "studyhours",
		StorageType:   "local",
		AdminPassword: "ADMIN",
		MaxUploadSize: 1 << 20,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"memory defaults", func(*AppConfig) {}, false},
		{"mongo backend", func(c *AppConfig) { c.StoreBackend = BackendMongo }, false},
		{"unknown backend", func(c *AppConfig) { c.StoreBackend = "redis" }, true},
		{"mongo no database", func(c *AppConfig) { c.StoreBackend = BackendMongo; c.MongoDatabase = "" }, true},
		{"memory ignores bad uri", func(c *AppConfig) { c.MongoURI = "http://nope" }, false},
		{"s3 without bucket", func(c *AppConfig) { c.StorageType = "s3" }, true},
		{"unknown storage", func(c *AppConfig) { c.StorageType = "ftp" }, true},
		{"empty admin password", func(c *AppConfig) { c.AdminPassword = "" }, true},
		{"zero upload size", func(c *AppConfig) { c.MaxUploadSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(cfg, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnectDB_MemoryBackend(t *testing.T) {
	cfg := validConfig()
	cfg.StorageLocalPath = t.TempDir()
	ctx := context.Background()
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, nil, cfg, logger)
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.MongoClient != nil || deps.MongoDatabase != nil {
		t.Error("memory backend should not connect to MongoDB")
	}
	if deps.Identities == nil || deps.Hours == nil || deps.FileStorage == nil {
		t.Fatal("ConnectDB left a dependency nil")
	}

	if err := EnsureSchema(ctx, nil, cfg, deps, logger); err != nil {
		t.Errorf("EnsureSchema on memory backend: %v", err)
	}

	// Starting twice keeps a single ADMIN with the first password.
	t.Cleanup(func() { timeouts.Set(timeouts.Defaults) })
	cfg.TimeoutShort = 3 * time.Second
	for i := 0; i < 2; i++ {
		if err := Startup(ctx, nil, cfg, deps, logger); err != nil {
			t.Fatalf("Startup: %v", err)
		}
	}
	if timeouts.Short() != 3*time.Second {
		t.Errorf("timeouts.Short() = %v, want 3s", timeouts.Short())
	}
	id, err := deps.Identities.Authenticate(ctx, models.AdminLoginID, "ADMIN")
	if err != nil {
		t.Fatalf("Authenticate ADMIN: %v", err)
	}
	if !id.IsAdmin() {
		t.Error("seeded identity is not the administrator")
	}

	if err := Shutdown(ctx, nil, cfg, deps, logger); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
