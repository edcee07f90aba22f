// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/folio/internal/app/system/blobstore"
	"github.com/dalemusser/folio/internal/app/system/indexes"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects MongoDB, plus Redis and MinIO when configured.
// A failure closes whatever was already opened.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	deps.MongoClient = client

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))

	if appCfg.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(pingCtx, appCfg.RedisAddr, appCfg.RedisPassword)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("redis connect: %w", err)
		}
		deps.Redis = rdb
		logger.Info("connected to Redis for rate limiting", zap.String("addr", appCfg.RedisAddr))
	}

	if appCfg.BlobBackend == BlobBackendMinio {
		store, err := blobstore.NewMinio(pingCtx, blobstore.MinioConfig{
			Endpoint:  appCfg.MinioEndpoint,
			AccessKey: appCfg.MinioAccess,
			SecretKey: appCfg.MinioSecret,
			Bucket:    appCfg.MinioBucket,
			UseSSL:    appCfg.MinioUseSSL,
		})
		if err != nil {
			closeDeps(deps, logger)
			return DBDeps{}, err
		}
		deps.Blobs = store
		logger.Info("setting uploads stored in MinIO",
			zap.String("endpoint", appCfg.MinioEndpoint),
			zap.String("bucket", appCfg.MinioBucket))
	}

	return deps, nil
}

// EnsureSchema creates collections, validators and indexes. Both steps
// are idempotent and safe to run on every start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
