package main

import (
	"context"

	"github.com/x-xyz/marketplace/base/config"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/store/memory"
	"github.com/x-xyz/marketplace/service/store/sqldb"
	asset_repository "github.com/x-xyz/marketplace/stores/asset/repository"
	listing_repository "github.com/x-xyz/marketplace/stores/listing/repository"
)

// stores holds everything that depends on the configured driver. All
// repositories share tx so one unit of work spans the listing table and the
// sandbox ledger.
type stores struct {
	tx         domain.Transactor
	pinger     hcdomain.Pinger
	ledger     asset.LedgerRepo
	listings   listing.Repo
	activities listing.ActivityRepo
	close      func()
}

func newStores(c ctx.Ctx, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		return newMongoStores(c, cfg)
	case config.StoreSqlite:
		return newSqliteStores(c, cfg)
	}

	c.Info("init memory store")
	store := memory.New()
	ledger := asset_repository.NewMemory()
	listings := listing_repository.NewMemory()
	activities := listing_repository.NewMemoryActivity()
	store.Register(ledger, listings, activities)
	return &stores{
		tx:         store,
		pinger:     store,
		ledger:     ledger,
		listings:   listings,
		activities: activities,
		close:      func() {},
	}, nil
}

func newMongoStores(c ctx.Ctx, cfg *config.Config) (*stores, error) {
	c.Info("init mongo")
	mongoClient, err := mongoclient.Connect(mongoclient.Options{
		URI:            cfg.Store.Mongo.URI,
		AuthDBName:     cfg.Store.Mongo.AuthDBName,
		DBName:         cfg.Store.Mongo.DBName,
		EnableSSL:      cfg.Store.Mongo.EnableSSL,
		PoolMultiplier: cfg.Store.Mongo.PoolMultiplier,
	})
	if err != nil {
		return nil, err
	}
	q := query.New(mongoClient)

	if err := asset_repository.EnsureIndexes(c, q); err != nil {
		c.WithField("err", err).Error("asset_repository.EnsureIndexes failed")
		return nil, err
	}
	if err := listing_repository.EnsureIndexes(c, q); err != nil {
		c.WithField("err", err).Error("listing_repository.EnsureIndexes failed")
		return nil, err
	}

	return &stores{
		tx:         q,
		pinger:     q,
		ledger:     asset_repository.NewMongo(q),
		listings:   listing_repository.NewMongo(q),
		activities: listing_repository.NewMongoActivity(q),
		close: func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				c.WithField("err", err).Warn("mongo disconnect failed")
			}
		},
	}, nil
}

func newSqliteStores(c ctx.Ctx, cfg *config.Config) (*stores, error) {
	c.WithField("path", cfg.Store.Sqlite.Path).Info("init sqlite")
	db, err := sqldb.Open(cfg.Store.Sqlite.Path)
	if err != nil {
		c.WithField("err", err).Error("sqldb.Open failed")
		return nil, err
	}

	if err := asset_repository.MigrateSqlite(db); err != nil {
		c.WithField("err", err).Error("asset_repository.MigrateSqlite failed")
		return nil, err
	}
	if err := listing_repository.MigrateSqlite(db); err != nil {
		c.WithField("err", err).Error("listing_repository.MigrateSqlite failed")
		return nil, err
	}

	return &stores{
		tx:         db,
		pinger:     db,
		ledger:     asset_repository.NewSqlite(db),
		listings:   listing_repository.NewSqlite(db),
		activities: listing_repository.NewSqliteActivity(db),
		close: func() {
			if err := db.Close(); err != nil {
				c.WithField("err", err).Warn("sqlite close failed")
			}
		},
	}, nil
}
