package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/loragriffin/blog-app/app/config"
	applog "github.com/loragriffin/blog-app/app/logger"
	"github.com/loragriffin/blog-app/app/models"
	"github.com/loragriffin/blog-app/app/repositories"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured backend and returns its stores.
func Open(cfg config.DatabaseConfig) (*repositories.Repository, error) {
	log := applog.For("database")

	switch cfg.Driver {
	case "badger", "":
		db, err := OpenBadger(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", "badger").Str("path", cfg.Path).Msg("storage opened")
		return repositories.NewBadgerRepository(db), nil
	case "sqlite", "postgres":
		db, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("storage opened")
		return repositories.NewGormRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenBadger opens (creating if needed) a badger directory.
func OpenBadger(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{applog.For("badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}
	return db, nil
}

// OpenGorm opens a sqlite file or a postgres DSN and migrates the schema when asked to.
func OpenGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		Logger:      NewGormLogger(applog.For("gorm")),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("failed to test %s connection: %w", cfg.Driver, err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			closeGorm(db)
			return nil, err
		}
	}
	return db, nil
}

// closeGorm releases the pool behind db when opening fails halfway.
func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// Migrate creates or updates the blog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Author{}, &models.BlogPost{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewGormLogger routes gorm's warnings and slow queries through zerolog.
func NewGormLogger(l zerolog.Logger) logger.Interface {
	return logger.New(gormWriter{l}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// badgerLogger adapts zerolog to badger.Logger. Badger is chatty at info, so
// info is logged at debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
