package auth

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"gatehouse/config"
	"gatehouse/logger"
)

var DB *sql.DB

// InitDB connects to MySQL and runs migrations. The database usually comes
// up a few seconds after the server when both start together, so the
// connection is retried before giving up.
func InitDB(cfg *config.Config) error {
	dsn := cfg.DSN()

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sql.Open("mysql", dsn)
		if err == nil {
			err = DB.Ping()
			if err == nil {
				break
			}
		}
		logger.Warn("waiting for database (%s): %v", cfg.DBHost, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("connected to database %s", cfg.DBName)
	return migrate()
}

func migrate() error {
	queryUsers := `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := DB.Exec(queryUsers); err != nil {
		return fmt.Errorf("migration (users) failed: %w", err)
	}

	queryActivity := `
	CREATE TABLE IF NOT EXISTS activity (
		id INT AUTO_INCREMENT PRIMARY KEY,
		level VARCHAR(10) NOT NULL,
		message TEXT NOT NULL,
		details TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := DB.Exec(queryActivity); err != nil {
		return fmt.Errorf("migration (activity) failed: %w", err)
	}

	return nil
}
