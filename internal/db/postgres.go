package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"woa-fleet/hangar/internal/config"
)

// InitSQLX returns the sqlx handle used by the hand-written SQL
// repositories. Postgres gets its own lib/pq pool; sqlite shares the GORM
// connection so both see the same in-memory database.
func InitSQLX(cfg config.DBConfig, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.Driver == "sqlite" {
		sqlDB, err := orm.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
		}
		return sqlx.NewDb(sqlDB, "sqlite3"), nil
	}

	var (
		conn *sqlx.DB
		err  error
	)
	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", cfg.PostgresDSN())
		if err == nil {
			return conn, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}
