package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the relational InvoiceStore implementation.
type Store struct {
	db     *gorm.DB
	Config *Config
}

func (s *Store) autoMigrate() error {
	var err error
	if err = s.db.AutoMigrate(&Invoice{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&LineItem{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&Settings{}); err != nil {
		return err
	}
	return nil
}

// InitDatabase opens the database configured for cfg.Mode and migrates the
// schema.
func InitDatabase(cfg *Config) (*Store, error) {
	var err error

	store := &Store{Config: cfg}
	svr := cfg.Servers[cfg.Mode]
	gormConfig := &gorm.Config{}
	if cfg.Mode == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	switch svr.Database {
	case "sqlite3":
		filename := svr.DBName
		// in-memory databases are used as-is, files live under db/
		if filename != ":memory:" && !strings.HasPrefix(filename, "file:") {
			filename = filepath.Join("db", filename)
		}
		store.db, err = gorm.Open(sqlite.Open(filename), gormConfig)
		if err != nil {
			return nil, err
		}
	case "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable TimeZone=UTC",
			svr.DBHost, svr.DBUser, svr.DBPassword, svr.DBName)
		store.db, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database %q", svr.Database)
	}
	if err = store.autoMigrate(); err != nil {
		return nil, err
	}
	return store, nil
}
