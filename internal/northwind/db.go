package northwind

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MikeMC777/northwind-report/internal/config"
	"github.com/MikeMC777/northwind-report/internal/logging"
)

// Dataset is the connection scope of one report run. Method and Query answer
// the same questions in builder and SQL form; both live until Close.
type Dataset struct {
	Method Repository
	Query  Repository

	closers []func() error
}

// Open connects to the configured database. With postgres, GORM runs on top of
// the same pgx pool the SQL repository uses. SQLite has no pgx path, so the
// GORM repository serves both forms.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Dataset, error) {
	gcfg := &gorm.Config{Logger: logging.Gorm(log, cfg.SQLLog)}

	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		sqlDB := stdlib.OpenDBFromPool(pool)
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gcfg)
		if err != nil {
			_ = sqlDB.Close()
			pool.Close()
			return nil, fmt.Errorf("open gorm over pgx pool: %w", err)
		}
		log.Debug("dataset opened", zap.String("driver", cfg.Driver))

		return &Dataset{
			Method: NewGormRepo(gdb),
			Query:  NewPGRepo(pool),
			closers: []func() error{
				sqlDB.Close,
				func() error { pool.Close(); return nil },
			},
		}, nil

	case config.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(sqliteURI(cfg.SQLitePath)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("ping sqlite %s: %w", cfg.SQLitePath, err)
		}
		log.Debug("dataset opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.SQLitePath))

		repo := NewGormRepo(gdb)
		return &Dataset{Method: repo, Query: repo, closers: []func() error{sqlDB.Close}}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// sqliteURI opens path read-only. The path is escaped so '?', '#' and '%'
// in a file name are not taken as URI syntax.
func sqliteURI(path string) string {
	u := url.URL{Path: path, RawQuery: "mode=ro"}
	return "file:" + u.EscapedPath() + "?" + u.RawQuery
}

// Close releases every connection held by the dataset. Safe to call more than once.
func (d *Dataset) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
