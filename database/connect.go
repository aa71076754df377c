package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rpupo63/lifestyle-cms-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	// pure Go driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

// Connect opens the database selected by cfg.DBType and registers read replicas when configured
func Connect(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.IsDevelopment(),
		},
	)

	var db *gorm.DB
	var err error
	switch cfg.DBType {
	case "supa", "postgres":
		db, err = gorm.Open(postgresDialector(cfg.DSN()), &gorm.Config{
			PrepareStmt: false,
			Logger:      newLogger,
		})
	case "sqlite":
		db, err = OpenSQLite(cfg.DSN(), newLogger)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if len(cfg.DatabaseReplicaURLs) > 0 {
		if cfg.DBType == "sqlite" {
			return nil, fmt.Errorf("read replicas are not supported with DB_TYPE=sqlite")
		}
		replicas := make([]gorm.Dialector, 0, len(cfg.DatabaseReplicaURLs))
		for _, dsn := range cfg.DatabaseReplicaURLs {
			replicas = append(replicas, postgresDialector(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}

	return db, nil
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// OpenSQLite opens a SQLite database through the pure Go driver, with
// foreign keys enforced on every connection
func OpenSQLite(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	return gorm.Open(
		sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			DSN:        withForeignKeys(dsn),
		}),
		&gorm.Config{Logger: gormLogger},
	)
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// OpenMemory opens a migrated, named, in-memory SQLite database on a single
// connection, so concurrent callers serialize. Each name is a separate database.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := OpenSQLite(dsn, logger.Default.LogMode(logger.Silent))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating in-memory database: %w", err)
	}
	return db, nil
}
