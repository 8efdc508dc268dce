package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/utils/logging"
)

// Supported drivers
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Database is the relational primary store backed by gorm.
type Database struct {
	db                      *gorm.DB
	userType                *table[model.UserType]
	reportStatusCode        *table[model.ReportStatusCode]
	workType                *table[model.WorkType]
	enterprise              *table[model.Enterprise]
	assignmentStatusCode    *table[model.AssignmentStatusCode]
	user                    *table[model.User]
	session                 *sessionRepository
	loginAttempt            *table[model.LoginAttempt]
	report                  *table[model.Report]
	assignment              *assignmentRepository
	reportStatusHistory     *reportStatusHistoryRepository
	assignmentStatusHistory *assignmentStatusHistoryRepository
	syncRun                 *syncRunRepository
}

var _ interfaces.Repository = &Database{}

// Open connects to the primary store. For SQLite the parent directory of the
// database file is created when missing.
func Open(ctx context.Context, driver, dsn string) (*Database, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case DriverSQLite, "sqlite3":
		if err := ensureSQLiteDirectory(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, goerr.New("unsupported database driver", goerr.V("driver", driver))
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("driver", driver))
	}

	logging.From(ctx).Info("database opened", "driver", driver)
	return New(db), nil
}

func ensureSQLiteDirectory(dsn string) error {
	candidate := strings.TrimSpace(dsn)
	if candidate == "" || strings.Contains(candidate, ":memory:") {
		return nil
	}
	candidate = strings.TrimPrefix(candidate, "file:")
	if idx := strings.Index(candidate, "?"); idx >= 0 {
		candidate = candidate[:idx]
	}

	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create sqlite directory", goerr.V("dir", dir))
	}
	return nil
}

// New wraps an already opened gorm handle
func New(db *gorm.DB) *Database {
	d := &Database{db: db}
	d.userType = newTable[model.UserType](d, "user type")
	d.reportStatusCode = newTable[model.ReportStatusCode](d, "report status code")
	d.workType = newTable[model.WorkType](d, "work type")
	d.enterprise = newTable[model.Enterprise](d, "enterprise")
	d.assignmentStatusCode = newTable[model.AssignmentStatusCode](d, "assignment status code")
	d.user = newTable[model.User](d, "user")
	d.session = &sessionRepository{table: newTable[model.Session](d, "session")}
	d.loginAttempt = newTable[model.LoginAttempt](d, "login attempt")
	d.report = newTable[model.Report](d, "report")
	d.assignment = &assignmentRepository{table: newTable[model.Assignment](d, "assignment")}
	d.reportStatusHistory = &reportStatusHistoryRepository{table: newTable[model.StatusHistoryEntry](d, "report status history")}
	d.assignmentStatusHistory = &assignmentStatusHistoryRepository{table: newTable[model.AssignmentStatusHistoryEntry](d, "assignment status history")}
	d.syncRun = &syncRunRepository{db: d}
	return d
}

// Models lists every table of the primary store in creation order
func Models() []any {
	return []any{
		&model.UserType{},
		&model.ReportStatusCode{},
		&model.WorkType{},
		&model.Enterprise{},
		&model.AssignmentStatusCode{},
		&model.User{},
		&model.Session{},
		&model.LoginAttempt{},
		&model.Report{},
		&model.Assignment{},
		&model.StatusHistoryEntry{},
		&model.AssignmentStatusHistoryEntry{},
		&model.SyncRun{},
	}
}

// Migrate creates or updates the tables of every model
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return goerr.Wrap(err, "failed to migrate primary store")
	}
	return nil
}

type txCtxKey struct{}

// conn returns the transaction bound to ctx, or the base handle
func (d *Database) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

func (d *Database) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txCtxKey{}, tx))
	})
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql handle")
	}
	return sqlDB.Close()
}

func (d *Database) UserType() interfaces.EntityRepository[model.UserType] {
	return d.userType
}

func (d *Database) ReportStatusCode() interfaces.EntityRepository[model.ReportStatusCode] {
	return d.reportStatusCode
}

func (d *Database) WorkType() interfaces.EntityRepository[model.WorkType] {
	return d.workType
}

func (d *Database) Enterprise() interfaces.EntityRepository[model.Enterprise] {
	return d.enterprise
}

func (d *Database) AssignmentStatusCode() interfaces.EntityRepository[model.AssignmentStatusCode] {
	return d.assignmentStatusCode
}

func (d *Database) User() interfaces.EntityRepository[model.User] {
	return d.user
}

func (d *Database) Session() interfaces.SessionRepository {
	return d.session
}

func (d *Database) LoginAttempt() interfaces.EntityRepository[model.LoginAttempt] {
	return d.loginAttempt
}

func (d *Database) Report() interfaces.EntityRepository[model.Report] {
	return d.report
}

func (d *Database) Assignment() interfaces.AssignmentRepository {
	return d.assignment
}

func (d *Database) ReportStatusHistory() interfaces.ReportStatusHistoryRepository {
	return d.reportStatusHistory
}

func (d *Database) AssignmentStatusHistory() interfaces.AssignmentStatusHistoryRepository {
	return d.assignmentStatusHistory
}

func (d *Database) SyncRun() interfaces.SyncRunRepository {
	return d.syncRun
}
