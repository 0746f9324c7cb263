package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/localstore/localstore"
)

// Client is a localstore.Backend implementation for Redis.
// All entries live in one Redis DB, which is flushed by Clear(),
// so don't share that DB with other data.
type Client struct {
	c *redis.Client
}

// Set stores the given text for the given key.
// The key must not be "".
func (c Client) Set(k, text string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return c.c.Set(context.Background(), k, text, 0).Err()
}

// Get retrieves the text stored for the given key.
// If no entry is found it returns ("", false, nil).
// The key must not be "".
func (c Client) Get(k string) (text string, found bool, err error) {
	if err := localstore.CheckKey(k); err != nil {
		return "", false, err
	}

	text, err = c.c.Get(context.Background(), k).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, err
	}

	return text, true, nil
}

// Delete deletes the stored entry for the given key.
// Deleting a non-existing entry does NOT lead to an error.
// The key must not be "".
func (c Client) Delete(k string) error {
	if err := localstore.CheckKey(k); err != nil {
		return err
	}

	return c.c.Del(context.Background(), k).Err()
}

// Clear deletes all keys of the selected DB with FLUSHDB.
func (c Client) Clear() error {
	return c.c.FlushDB(context.Background()).Err()
}

// Len returns the number of keys in the selected DB (DBSIZE).
func (c Client) Len() (int, error) {
	n, err := c.c.DBSize(context.Background()).Result()
	return int(n), err
}

// Close closes the client.
// It must be called to release any open resources.
func (c Client) Close() error {
	return c.c.Close()
}

// Options are the options for the Redis client.
type Options struct {
	// Address of the Redis server, including the port.
	// Optional ("localhost:6379" by default).
	Address string
	// Password for the Redis server.
	// Optional ("" by default).
	Password string
	// DB to use.
	// Optional (0 by default).
	DB int
}

// DefaultOptions is an Options object with default values.
// Address: "localhost:6379", Password: "", DB: 0
var DefaultOptions = Options{
	Address: "localhost:6379",
	// No need to set Password or DB because their Go zero values are fine for that.
}

// NewClient creates a new Redis client.
// The connection is checked with a PING.
//
// You must call the Close() method on the client when you're done working with it.
func NewClient(options Options) (Client, error) {
	result := Client{}

	// Set default values
	if options.Address == "" {
		options.Address = DefaultOptions.Address
	}

	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})

	err := client.Ping(context.Background()).Err()
	if err != nil {
		_ = client.Close()
		return result, err
	}

	result.c = client

	return result, nil
}
