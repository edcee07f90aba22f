// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/folio/internal/app/system/blobstore"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends folio talks to. Redis and Blobs are nil when
// not configured.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Redis         *redis.Client
	Blobs         blobstore.Store
}
