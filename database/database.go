package database

import (
	"fmt"
	"strings"

	"github.com/brendenGit/Warbler/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// New opens a connection for the given driver ("sqlite" or "postgres").
// SQLite connections always run with foreign key enforcement enabled.
func New(driver, dsn string) (*DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "sqlite3", "":
		dialector = sqlite.Open(withForeignKeys(dsn))
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.WithField("driver", driver).Info("Database connection established")
	return &DB{gormDB}, nil
}

// Migrate creates or updates the users, messages, follows and likes tables.
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withForeignKeys(dsn string) string {
	if dsn == "" {
		dsn = "warbler.db"
	}
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// OpenInMemory opens a migrated, private in-memory SQLite database. The name
// keeps concurrent databases in one process apart.
func OpenInMemory(name string) (*DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	db, err := New("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
