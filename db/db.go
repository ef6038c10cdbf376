package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// modernc registers itself as "sqlite"; the gorm dialect defaults to the cgo "sqlite3" driver.
const sqliteDriverName = "sqlite"

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	Logger       *slog.Logger
}

func OptionsFromConfig(cfg config.Config, log *slog.Logger) Options {
	return Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBURL,
		MaxOpenConns: cfg.DBMaxOpenConns,
		Logger:       log,
	}
}

func NewStorage(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dialector = postgres.Open(opts.DSN)
	case "sqlite":
		dialector = sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        sqliteDSN(opts.DSN),
		})
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger(opts.Logger),
		TranslateError: opts.Driver == "postgres",
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if opts.Driver == "sqlite" {
		// sqlite has a single writer; one connection also keeps in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		maxOpen := opts.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 25
		}
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tables lists every model in dependency order.
func Tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	}
}

func Migrate(db *gorm.DB, log *slog.Logger) error {
	for _, model := range Tables() {
		name := fmt.Sprintf("%T", model)
		log.Debug("migrating table", "model", name)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", name, err)
		}
		log.Info("migration successful", "model", name)
	}
	return nil
}

// DropTables drops the given tables, or every table when none are given.
func DropTables(db *gorm.DB, log *slog.Logger, tables []interface{}) error {
	if len(tables) == 0 {
		all := Tables()
		for i := len(all) - 1; i >= 0; i-- {
			tables = append(tables, all[i])
		}
	}

	var failed []string
	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			log.Warn("drop table failed", "model", fmt.Sprintf("%T", table), "error", err)
			failed = append(failed, fmt.Sprintf("%T", table))
			continue
		}
		log.Info("table dropped", "model", fmt.Sprintf("%T", table))
	}
	if len(failed) > 0 {
		return fmt.Errorf("could not drop %s", strings.Join(failed, ", "))
	}
	return nil
}

// TableByName maps the names accepted by clear-db to models.
func TableByName(name string) (interface{}, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user", "users":
		return &models.User{}, true
	case "post", "posts":
		return &models.Post{}, true
	case "like", "likes":
		return &models.Like{}, true
	case "comment", "comments":
		return &models.Comment{}, true
	}
	return nil, false
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func gormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Discard
	}
	return logger.New(
		slog.NewLogLogger(log.With("logger", "gorm").Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
