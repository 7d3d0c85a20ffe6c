package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresChecker probes PostgreSQL over a dedicated database/sql
// connection, independent of the repository pool
type PostgresChecker struct {
	db *sql.DB
}

// NewPostgresChecker opens a lazy connection for health probes
func NewPostgresChecker(dsn string) (*PostgresChecker, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresChecker{db: db}, nil
}

// Type returns the service type
func (p *PostgresChecker) Type() string {
	return "postgres"
}

// HealthCheck verifies PostgreSQL connectivity
func (p *PostgresChecker) HealthCheck(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close releases the probe connection
func (p *PostgresChecker) Close() error {
	return p.db.Close()
}
