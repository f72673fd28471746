package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testJWTSecret signs bearer tokens for integration tests.
const testJWTSecret = "integration-test-secret"

// adminUserID matches the admin row seeded by the migrations.
var adminUserID = uuid.MustParse("6f1c8f6e-6a3e-4bfb-9a10-54d389a4e1a0")

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, runs the migrations and
// returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Bring the schema up the same way the server does at boot
	if err := database.Migrate(connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPoolFromConnString(ctx, connStr, nil)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts test product data and returns the assigned IDs in
// insertion order. The desk mat is deliberately out of stock.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []int64 {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		name        string
		description string
		price       string
		stock       int
	}{
		{"Wireless Keyboard", "compact mechanical keyboard", "49.99", 5},
		{"Wireless Mouse", "ergonomic mouse with silent clicks", "19.99", 8},
		{"Monitor", "27 inch display", "189.00", 2},
		{"Desk Mat", "large desk mat", "15.00", 0},
		{"USB Cable", "braided charging cable", "9.99", 30},
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO products (name, description, price, stock) VALUES ($1, $2, $3, $4) RETURNING id",
			p.name, p.description, p.price, p.stock,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// SeedCustomer inserts a customer user and returns it.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, username string) model.User {
	t.Helper()

	user := model.User{
		ID:       uuid.New(),
		Username: username,
		FullName: username + " test",
		Role:     model.RoleCustomer,
	}

	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, username, full_name, role) VALUES ($1, $2, $3, $4)",
		user.ID, user.Username, user.FullName, string(user.Role),
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

// AdminToken mints a bearer token for the migration-seeded admin user.
func AdminToken(t *testing.T) string {
	t.Helper()

	admin := model.User{ID: adminUserID, Username: "admin", Role: model.RoleAdmin}
	token, err := auth.NewToken(testJWTSecret, admin, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint admin token: %v", err)
	}
	return token
}

// TokenFor mints a bearer token for the given user.
func TokenFor(t *testing.T, user model.User) string {
	t.Helper()

	token, err := auth.NewToken(testJWTSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token for %s: %v", user.Username, err)
	}
	return token
}

// SeedOrder inserts an order with a single item for the given user and
// returns the order ID. Order writes over the API are admin-only, so tests
// that need a customer-owned order create it here.
func SeedOrder(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, productID int64, quantity int) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	orderID := uuid.New()
	now := time.Now()

	_, err := pool.Exec(ctx,
		"INSERT INTO orders (id, user_id, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		orderID, userID, string(model.OrderStatusPending), now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, err = pool.Exec(ctx,
		"INSERT INTO order_items (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)",
		uuid.New(), orderID, productID, quantity,
	)
	if err != nil {
		t.Fatalf("failed to seed order item: %v", err)
	}
	return orderID
}

// CleanupDB cleans all data from test tables. The migration-seeded admin user
// survives so admin tokens keep resolving to a real row.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id <> $1", adminUserID); err != nil {
		t.Logf("failed to clean table users: %v", err)
	}
}
