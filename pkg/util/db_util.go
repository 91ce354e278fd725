package util

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type PostgresDatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool"`

	// ConnectRetry is how many times the initial ping is attempted before giving up.
	// Zero means a single attempt.
	ConnectRetry int `yaml:"connect_retry"`
}

func (c PostgresDatabaseConfig) ConnString() string {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = 5
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&timezone=UTC",
		url.PathEscape(c.User),
		url.PathEscape(c.Password),
		url.PathEscape(c.Host),
		c.Port,
		url.PathEscape(c.Database),
		url.QueryEscape(sslMode),
		poolSize,
	)
}

// NewPostgresDBPool opens a pool and waits until the database answers a ping.
// The database may still be starting when the server boots, so the ping is retried
// with backoff up to ConnectRetry times.
func NewPostgresDBPool(config PostgresDatabaseConfig) (*pgxpool.Pool, error) {
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, config.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open connection to database: %w", err)
	}

	attempts := uint(1)
	if config.ConnectRetry > 0 {
		attempts = uint(config.ConnectRetry)
	}
	err = retry.Do(
		func() error { return dbPool.Ping(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logrus.Warnf("ping database %s:%d (attempt %d): %v", config.Host, config.Port, n+1, err)
		}),
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return dbPool, nil
}
