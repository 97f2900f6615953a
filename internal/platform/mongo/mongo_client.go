// Package mongo is the MongoDB document store.
package mongo

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// DefaultURI is used when MONGO_URI is not set.
const DefaultURI = "mongodb://localhost:27017/"

// Config holds the MongoDB connection settings.
type Config struct {
	URI     string
	Timeout time.Duration
}

// LoadConfig loads the MongoDB configuration from environment variables.
func LoadConfig() Config {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = DefaultURI
	}
	return Config{URI: uri, Timeout: 10 * time.Second}
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg Config) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Error("MongoDB connection failed", "uri", redact(cfg.URI), "error", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("MongoDB connection successful", "uri", redact(cfg.URI))
	return client, nil
}

// redact drops the credentials of a connection string for logging.
func redact(uri string) string {
	opts := options.Client().ApplyURI(uri)
	if opts.Auth == nil || opts.Auth.Username == "" {
		return uri
	}
	return "mongodb://***@" + strings.Join(opts.Hosts, ",")
}
