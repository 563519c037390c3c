// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"github.com/unclebandit/ecommerce-services/internal/config"
)

const connectAttempts = 30

// Open connects database/sql to postgres through lib/pq and waits for it to answer.
func Open(ctx context.Context, cfg config.DB) (*sql.DB, error) {
	log.Println("DB_USER:", cfg.User)
	log.Println("DB_NAME:", cfg.Name)
	log.Println("DB_HOST:", cfg.Host)

	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := waitFor(ctx, conn.PingContext); err != nil {
		conn.Close()
		return nil, err
	}

	log.Println("✅ Connected to database")
	return conn, nil
}

// OpenPool builds a pgx connection pool and waits for the database to answer.
func OpenPool(ctx context.Context, cfg config.DB) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitFor(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}

	log.Println("✅ Connected to database with connection pool")
	return pool, nil
}

func waitFor(ctx context.Context, ping func(context.Context) error) error {
	var err error
	for i := 0; i < connectAttempts; i++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		log.Printf("⏳ Waiting for database... (%d/%d)", i+1, connectAttempts)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}
