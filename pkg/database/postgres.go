package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"TradeTrack/pkg/config"
	"TradeTrack/pkg/model"
)

// Postgres is the root database handle. Entity-scoped accessors hang off it.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres opens the connection pool and migrates the schema.
func NewPostgres(cfg *config.Config) (*Postgres, error) {
	dbCfg := cfg.Database.Postgres

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.PriceAlert{},
		&model.WatchlistItem{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *Postgres) Users() *UserDB {
	return &UserDB{db: p.db}
}

func (p *Postgres) Alerts() *AlertDB {
	return &AlertDB{db: p.db}
}

func (p *Postgres) Watchlist() *WatchlistDB {
	return &WatchlistDB{db: p.db}
}
