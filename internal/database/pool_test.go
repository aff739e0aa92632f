package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/feedspin/feedspin/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		testDBConnString, terminate = setupContainer(ctx)
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool("not a connection string", 5, time.Minute, 5*time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

// Every coupon redemption runs as a conditional UPDATE, so the pool's job is
// to let many kiosks race that statement without leaking connections. This
// reproduces the pattern: N workers race to claim one row, exactly one wins.
func TestPool_ConcurrentConditionalUpdate(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS claim_race (
			id     int PRIMARY KEY,
			status text NOT NULL
		)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO claim_race (id, status) VALUES (1, 'active')
		ON CONFLICT (id) DO UPDATE SET status = 'active'`)
	require.NoError(t, err)

	checker := leaktest.NewGoroutineChecker(t)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	claimed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			tag, err := pool.Exec(ctx,
				`UPDATE claim_race SET status = 'used' WHERE id = 1 AND status = 'active'`)
			if err != nil {
				t.Errorf("worker %d: %v", id, err)
				return
			}
			if tag.RowsAffected() == 1 {
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 1, claimed, "exactly one worker should claim the row")

	stats := pool.Stat()
	assert.Equal(t, int32(0), stats.AcquiredConns(), "all connections should be released")

	checker.Check(2) // pgx keeps a couple of background goroutines per pool
}

func TestPool_MaxConnsEnforced(t *testing.T) {
	requireDatabase(t)

	maxConns := 3
	pool, err := NewPool(testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Hold every connection in the pool.
	conns := make([]interface{ Release() }, 0, maxConns)
	for i := 0; i < maxConns; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	assert.Equal(t, int32(maxConns), pool.Stat().AcquiredConns())

	// One more acquire must block until a connection frees up.
	shortCtx, shortCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer shortCancel()
	_, err = pool.Acquire(shortCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	conns[0].Release()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	conn.Release()

	for _, c := range conns[1:] {
		c.Release()
	}
}

func TestPool_ReleasedAfterQueryError(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 5, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := pool.Exec(ctx, "UPDATE no_such_table SET status = 'used'")
		assert.Error(t, err)
	}

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(),
		"failed queries must not leak connections")
}
