// Package daemon opens the storage backend and runs the web service.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pension-board/retiree-intake/internal/config"
	"github.com/pension-board/retiree-intake/internal/db/dsn"
	"github.com/pension-board/retiree-intake/internal/db/models"
	"github.com/pension-board/retiree-intake/internal/web"
)

// defaultMaxOpenConns keeps the pool small for serverless-style backends.
const defaultMaxOpenConns = 5

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	cfg        *config.Config
	db         *gorm.DB
}

// Start runs the web service until a shutdown signal arrives, then closes
// the database handle.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go func() {
		if err := d.webService.Start(addr); err != nil {
			log.Fatal().Err(err).Msg("web service stopped unexpectedly")
		}
	}()

	d.webService.WaitShutdown()

	if sqlDB, err := d.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}

	return nil
}

// New creates a new Daemon instance with the provided configuration.
// The database connection is opened here, once, and handed down; there is
// no lazily initialized global handle.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if sqlDB, err := db.DB(); err == nil {
		maxOpen := cfg.DB.MaxOpenConns
		if maxOpen == 0 {
			maxOpen = defaultMaxOpenConns
		}

		sqlDB.SetMaxOpenConns(maxOpen)
	}

	// Schema creation is idempotent. Errors are logged but do not abort
	// the start, so concurrent cold starts racing on the DDL stay alive.
	if err = db.AutoMigrate(
		&models.Submission{},
		&models.File{},
	); err != nil {
		log.Error().Err(err).Msg("failed to migrate database schema")
	}

	return &Daemon{
		webService: *web.New(cfg, db),
		cfg:        cfg,
		db:         db,
	}
}

// openDialector selects the gorm driver from the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case "mysql":
		return gormmysql.Open(dsn.Create(cfg))
	case "sqlite":
		return sqlite.Open(dsn.Create(cfg))
	default:
		return gormpostgres.Open(dsn.Create(cfg))
	}
}
