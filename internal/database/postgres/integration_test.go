package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/feedspin/feedspin/internal/database"
	"github.com/feedspin/feedspin/internal/database/postgres"
	"github.com/feedspin/feedspin/internal/database/schema"
	"github.com/feedspin/feedspin/internal/domain"
)

// startTestDB spins up a throwaway Postgres container and applies the schema
func startTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(15*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 20, 5*time.Minute, 30*time.Minute)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema.SchemaSQL); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return pool
}

// seedMerchant inserts a merchant with one store and returns their IDs
func seedMerchant(t *testing.T, pool *pgxpool.Pool) (merchantID, storeID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	merchantID = uuid.New()
	storeID = uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO merchants (merchant_id, merchant_name) VALUES ($1, 'Test Cafe')
	`, merchantID)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO stores (store_id, merchant_id, store_name) VALUES ($1, $2, 'Main Street')
	`, storeID, merchantID)
	require.NoError(t, err)

	return merchantID, storeID
}

func TestCouponMarkRedeemed_ConcurrentScans_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	pool := startTestDB(t)
	merchantID, storeID := seedMerchant(t, pool)

	spinID := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO spins (spin_id, merchant_id, store_id, outcome) VALUES ($1, $2, $3, 'prize')
	`, spinID, merchantID, storeID)
	require.NoError(t, err)

	couponID := uuid.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO coupons (coupon_id, spin_id, merchant_id, won_at_store_id, code,
		                     prize_id, prize_name, expires_at)
		VALUES ($1, $2, $3, $4, 'ABCD-2345', $5, 'Free Coffee', NOW() + INTERVAL '7 days')
	`, couponID, spinID, merchantID, storeID, uuid.New())
	require.NoError(t, err)

	repo := postgres.NewCouponRepository(pool)

	// Fire 8 concurrent redemption attempts for the same coupon
	var redeemed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.MarkRedeemed(ctx, couponID, storeID, uuid.New(), time.Now().UTC())
			if err != nil {
				t.Errorf("MarkRedeemed failed: %v", err)
				return
			}
			redeemed.Add(affected)
		}()
	}
	wg.Wait()

	// Exactly one attempt may claim the coupon
	assert.Equal(t, int64(1), redeemed.Load(),
		"Expected exactly 1 successful redemption, got %d", redeemed.Load())

	coupon, err := repo.GetCoupon(ctx, couponID)
	require.NoError(t, err)
	assert.True(t, coupon.Used)
	require.NotNil(t, coupon.RedeemedAtStoreID)
	assert.Equal(t, storeID, *coupon.RedeemedAtStoreID)
}

func TestLoyaltyRedemption_ConcurrentOverdraw_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	pool := startTestDB(t)
	merchantID, _ := seedMerchant(t, pool)

	clientID := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO loyalty_clients (client_id, merchant_id) VALUES ($1, $2)
	`, clientID, merchantID)
	require.NoError(t, err)

	repo := postgres.NewLoyaltyRepository(pool)

	err = repo.AppendTransaction(ctx, &domain.PointsTransaction{
		ID:         uuid.New(),
		ClientID:   clientID,
		MerchantID: merchantID,
		Kind:       domain.TransactionEarn,
		Points:     100,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	// 10 concurrent redemptions of 30 points each against a balance of 100:
	// only 3 can fit, the rest must be refused
	var succeeded atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AppendRedemption(ctx, &domain.PointsTransaction{
				ID:         uuid.New(),
				ClientID:   clientID,
				MerchantID: merchantID,
				Kind:       domain.TransactionRedeem,
				Points:     -30,
				CreatedAt:  time.Now().UTC(),
			})
			if err != nil {
				t.Errorf("AppendRedemption failed: %v", err)
				return
			}
			if ok {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), succeeded.Load(),
		"Expected exactly 3 redemptions to fit, got %d", succeeded.Load())

	balance, err := repo.GetBalance(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, 10, balance)
	assert.GreaterOrEqual(t, balance, 0, "Ledger must never go negative")
}

func TestWelcomeGrant_OncePerClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	pool := startTestDB(t)
	merchantID, _ := seedMerchant(t, pool)

	clientID := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO loyalty_clients (client_id, merchant_id) VALUES ($1, $2)
	`, clientID, merchantID)
	require.NoError(t, err)

	repo := postgres.NewLoyaltyRepository(pool)

	var granted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.AppendWelcome(ctx, &domain.PointsTransaction{
				ID:         uuid.New(),
				ClientID:   clientID,
				MerchantID: merchantID,
				Kind:       domain.TransactionWelcome,
				Points:     50,
				CreatedAt:  time.Now().UTC(),
			})
			if err != nil {
				t.Errorf("AppendWelcome failed: %v", err)
				return
			}
			if ok {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), granted.Load(),
		"Welcome bonus must be granted exactly once, got %d", granted.Load())
}
