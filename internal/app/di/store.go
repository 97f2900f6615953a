package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
	"fund_backend/internal/platform/config"
	"fund_backend/internal/platform/db"
	"fund_backend/internal/platform/http/handler"
	"fund_backend/internal/platform/mongo"
)

// DocumentStore is satisfied by both the MongoDB and the SQL store.
type DocumentStore interface {
	schemesusecase.DocumentStore
	screenerusecase.DocumentStore
}

// Stores holds one document store per logical database.
type Stores struct {
	Funds  DocumentStore // mutual fund reports
	Stocks DocumentStore // screener spot and additional data
	Ping   handler.Pinger
	Close  func() error
}

// NewStores connects the document store selected by cfg.Store.Driver.
// MongoDB is used by default; "sql" stores documents through gorm.
func NewStores(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, err := mongo.NewClient(ctx, mongo.LoadConfig())
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return &Stores{
			Funds:  mongo.NewDocumentStore(client, cfg.MutualFund.Database),
			Stocks: mongo.NewDocumentStore(client, cfg.Screener.Database),
			Ping: func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
			Close: func() error { return client.Disconnect(context.Background()) },
		}, nil

	case config.StoreSQL:
		gdb, err := db.Open(db.LoadConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("open sql store: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		return &Stores{
			Funds:  db.NewDocumentStore(gdb, cfg.MutualFund.Database),
			Stocks: db.NewDocumentStore(gdb, cfg.Screener.Database),
			Ping:   sqlDB.PingContext,
			Close:  sqlDB.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
