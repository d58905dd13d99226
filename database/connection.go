// database/connection.go
package database

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MariaDB driver

	"github.com/puertodata/contenedores/backend/config"
)

// Connect opens a connection to the movements database and verifies it with
// a ping. The caller owns the handle and closes it when its queries are done;
// the dashboard holds no long-lived connection between loads.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	// DSN: username:password@protocol(address)/dbname?param=value
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close() // Close the handle if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
