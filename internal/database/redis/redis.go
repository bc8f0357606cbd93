// Package redis wraps the go-redis client this service uses as its market
// price cache. Everything stored through it is disposable and carries a TTL,
// so the API keeps running when the server is unavailable.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	connectTimeout   = 5 * time.Second
	operationTimeout = 2 * time.Second
)

// Client is the shared cache handle handed to the services.
type Client struct {
	client *goredis.Client
}

// NewRedisClient connects to the cache and verifies the server answers
// before handing the client out.
func NewRedisClient(host, port, password string, db int) (*Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     password,
		DB:           db,
		DialTimeout:  connectTimeout,
		ReadTimeout:  operationTimeout,
		WriteTimeout: operationTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s:%s: %w", host, port, err)
	}

	return &Client{client: client}, nil
}

// GetClient exposes the underlying go-redis client for cache operations.
func (c *Client) GetClient() *goredis.Client {
	return c.client
}

// Ping reports whether the cache still answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
