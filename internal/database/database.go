package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle together with the settings it was opened with
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New opens the configured database, sizes its pool and checks that it answers.
// Timestamps are written in UTC and unique violations surface as gorm.ErrDuplicatedKey.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	db := &DB{DB: gdb, config: cfg}
	pool, err := db.pool()
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(cfg.MaxConnections)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("failed to reach %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

func (db *DB) pool() (*sql.DB, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.BlacklistedToken{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
	)
}

func (db *DB) Close() error {
	pool, err := db.pool()
	if err != nil {
		return err
	}
	return pool.Close()
}

// HealthCheck pings the underlying connection pool
func (db *DB) HealthCheck(ctx context.Context) error {
	pool, err := db.pool()
	if err != nil {
		return err
	}
	return pool.PingContext(ctx)
}

// domainIndexes back the per-user listings and the case-insensitive name lookups.
// Category names are unique per user regardless of case.
var domainIndexes = []struct {
	name, on string
	unique   bool
}{
	{name: "idx_users_email_lower", on: "users(LOWER(email))"},
	{name: "idx_blacklisted_tokens_expires_at", on: "blacklisted_tokens(expires_at)"},
	{name: "idx_accounts_user_created", on: "accounts(user_id, created_at)"},
	{name: "idx_categories_user_name_lower", on: "categories(user_id, LOWER(name))", unique: true},
	{name: "idx_transactions_user_date", on: "transactions(user_id, date)"},
	{name: "idx_transactions_account_id", on: "transactions(account_id)"},
	{name: "idx_transactions_category_id", on: "transactions(category_id)"},
}

// CreateIndexes creates any missing domain index. It returns the number that failed;
// a failure only costs query speed, so callers log it.
func (db *DB) CreateIndexes() int {
	failed := 0
	for _, idx := range domainIndexes {
		kind := "INDEX"
		if idx.unique {
			kind = "UNIQUE INDEX"
		}
		stmt := fmt.Sprintf("CREATE %s IF NOT EXISTS %s ON %s", kind, idx.name, idx.on)
		if err := db.DB.Exec(stmt).Error; err != nil {
			slog.Warn("failed to create index", "index", idx.name, "error", err)
			failed++
		}
	}
	return failed
}

// CleanupExpiredTokens drops blacklist entries whose token could no longer be used anyway
func (db *DB) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	res := db.DB.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.BlacklistedToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired blacklisted tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Initialize opens the database and brings its schema up to date. On postgres the SQL
// migrations run when AUTO_MIGRATE=true; otherwise, or when they fail, AutoMigrate does.
func Initialize(cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if !db.migrateWithSQL() {
		if err := db.AutoMigrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	if failed := db.CreateIndexes(); failed > 0 {
		slog.Warn("some indexes are missing", "failed", failed, "total", len(domainIndexes))
	}

	slog.Info("database initialized", "driver", cfg.Database.Driver)
	return db, nil
}

func (db *DB) migrateWithSQL() bool {
	if db.config.Driver == config.DriverSQLite {
		return false
	}

	pool, err := db.pool()
	if err != nil {
		slog.Warn("SQL migrations unavailable", "error", err)
		return false
	}

	migrated, err := RunMigrationsIfEnabled(pool)
	if err != nil {
		slog.Warn("SQL migrations failed, falling back to AutoMigrate", "error", err)
		return false
	}
	return migrated
}
