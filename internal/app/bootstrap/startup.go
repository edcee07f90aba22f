// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	adminstore "github.com/dalemusser/folio/internal/app/store/admins"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies request deadlines and reports the security-relevant
// state of the deployment.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})

	limiterMode := "memory"
	if deps.Redis != nil {
		limiterMode = "redis"
	}
	logger.Info("folio starting",
		zap.String("env", coreCfg.Env),
		zap.String("blob_backend", appCfg.BlobBackend),
		zap.String("rate_limiter", limiterMode),
		zap.String("proficiency_policy", appCfg.ProficiencyPolicy))

	if appCfg.SessionKey == devSessionKey {
		logger.Warn("using the development session_key; set FOLIO_SESSION_KEY before deploying")
	}

	cctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	n, err := adminstore.New(deps.MongoDatabase).Count(cctx)
	if err != nil {
		logger.Warn("could not count admin accounts", zap.Error(err))
		return nil
	}
	if n == 0 {
		logger.Info("no admin account yet; create one with POST /api/admin/setup")
	}
	return nil
}
