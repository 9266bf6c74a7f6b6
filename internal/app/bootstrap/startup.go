// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/studyhours/internal/app/resources"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/dalemusser/studyhours/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the stores are ready but before the HTTP handler
// is built and requests are served.
//
// It applies handler deadlines, loads the shared templates and makes sure
// the ADMIN identity exists. Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Set(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	resources.LoadSharedTemplates()

	created, err := deps.Identities.EnsureAdmin(ctx, appCfg.AdminPassword)
	if err != nil {
		logger.Error("failed to seed admin identity", zap.Error(err))
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("created admin identity", zap.String("login_id", models.AdminLoginID))
	} else {
		logger.Debug("admin identity already present", zap.String("login_id", models.AdminLoginID))
	}

	return nil
}
