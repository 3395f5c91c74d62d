// Package storage selects and initialises the review store.
package storage

import (
	"database/sql"
	"fmt"
	"io"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_intake/internal/domain"
	mysqlrepo "review_intake/internal/storage/mysql"
	"review_intake/internal/storage/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Options struct {
	Driver     string
	SQLitePath string
	MySQLDSN   string
}

// Open connects to the configured store and applies migrations. The returned
// closer releases every pool opened here.
func Open(o Options) (domain.ReviewRepository, io.Closer, error) {
	switch o.Driver {
	case "", DriverSQLite:
		db, err := sqlite.NewDB(o.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", o.SQLitePath, err)
		}
		if err := sqlite.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", DriverSQLite).Str("path", o.SQLitePath).Msg("database ready")
		return sqlite.NewReviewRepo(db), db, nil

	case DriverMySQL:
		db, err := sql.Open("mysql", o.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		if err := mysqlrepo.RunMigrations(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info().Str("driver", DriverMySQL).Msg("database ready")
		return mysqlrepo.New(db), db, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", o.Driver)
}
