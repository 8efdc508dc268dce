package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/database"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/repository/memory"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// DriverMemory keeps the primary store in process memory (development only)
const DriverMemory = "memory"

// Database holds CLI flags for the primary relational store
type Database struct {
	driver string
	dsn    string
}

func (x *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-driver",
			Usage:       "Primary store driver (sqlite, mysql or memory)",
			Category:    "Database",
			Value:       database.DriverSQLite,
			Sources:     cli.EnvVars("CIVICSYNC_DB_DRIVER"),
			Destination: &x.driver,
		},
		&cli.StringFlag{
			Name:        "db-dsn",
			Usage:       "Primary store DSN (file path for sqlite, user:pass@tcp(host:3306)/db?parseTime=true for mysql)",
			Category:    "Database",
			Value:       "data/civicsync.db",
			Sources:     cli.EnvVars("CIVICSYNC_DB_DSN"),
			Destination: &x.dsn,
		},
	}
}

// Driver returns the configured driver name
func (x *Database) Driver() string {
	return x.driver
}

func (x Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("driver", x.driver),
		slog.Int("dsn.len", len(x.dsn)),
	)
}

// Configure opens the primary store. The caller is responsible for calling
// Close() on the returned repository.
func (x *Database) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch strings.ToLower(x.driver) {
	case DriverMemory:
		logging.From(ctx).Warn("Using in-memory primary store (development mode)")
		return memory.New(), nil

	case database.DriverSQLite, "sqlite3", database.DriverMySQL:
		if x.dsn == "" {
			return nil, goerr.Wrap(ErrMissingOption, "db-dsn is required", goerr.V(OptionKey, "db-dsn"))
		}
		db, err := database.Open(ctx, x.driver, x.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open primary store")
		}
		return db, nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedBackend, "invalid database driver", goerr.V(BackendKey, x.driver))
	}
}
