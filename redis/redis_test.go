package redis_test

import (
	"testing"

	"github.com/localstore/localstore/redis"
	"github.com/localstore/localstore/test"
)

// Don't use the default number ("0"),
// which could lead to valuable data being deleted when a developer accidentally runs the test with valuable data in DB 0.
var testDbNumber = 15 // 16 DBs by default (unchanged config), starting with 0

// TestClient tests if reading from, writing to, deleting from and clearing the store works properly.
func TestClient(t *testing.T) {
	client := createClient(t)
	test.TestBackend(client, t)
}

// TestStorage tests the typed operations on top of the client.
func TestStorage(t *testing.T) {
	client := createClient(t)
	test.TestStorage(client, t)
}

// TestTypes tests if setting and getting values works with all Go types.
func TestTypes(t *testing.T) {
	client := createClient(t)
	test.TestTypes(client, t)
}

// TestClientConcurrent launches a bunch of goroutines that concurrently work with the Redis client.
func TestClientConcurrent(t *testing.T) {
	client := createClient(t)

	goroutineCount := 1000

	test.TestConcurrentInteractions(t, goroutineCount, client)
}

// TestErrors tests some error cases.
func TestErrors(t *testing.T) {
	client := createClient(t)
	test.TestEmptyKey(client, t)
}

// TestUnreachable tests if creating a client fails when there's no server.
func TestUnreachable(t *testing.T) {
	_, err := redis.NewClient(redis.Options{Address: "localhost:1"})
	if err == nil {
		t.Error("An error should have occurred, but didn't")
	}
}

// createClient creates a client for the test DB.
// The test is skipped if no Redis server is running,
// `mage test redis` starts one in Docker.
func createClient(t *testing.T) redis.Client {
	options := redis.Options{
		DB: testDbNumber,
	}
	client, err := redis.NewClient(options)
	if err != nil {
		t.Skipf("Redis isn't available: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Clear()
		_ = client.Close()
	})
	return client
}
