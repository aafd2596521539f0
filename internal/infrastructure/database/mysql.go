package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLOptions configures the connection pool.
type MySQLOptions struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	Debug        bool
}

// NewMySQL returns a GORM DB connected to MySQL. The DSN must contain parseTime=true.
func NewMySQL(opts MySQLOptions) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN is not set")
	}

	logLevel := logger.Warn
	if opts.Debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(mysql.Open(opts.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB error: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// CloseMySQL closes the underlying pool.
func CloseMySQL(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
