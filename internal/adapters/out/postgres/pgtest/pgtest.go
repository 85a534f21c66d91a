// Package pgtest starts a disposable PostgreSQL container carrying the application schema.
// It is used by the repository and query integration suites.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/migrations"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine, applies migrations and opens a GORM connection.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := migrations.Up(dsn); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db, DSN: dsn}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec(
		"TRUNCATE TABLE audit_records, order_lines, orders, cart_items, vehicles, items CASCADE",
	).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

// InsertItem adds a catalog item with the given stock level.
func (d *Database) InsertItem(id uuid.UUID, name string, priceCents int64, weightOz, available int) error {
	return d.DB.Exec(
		"INSERT INTO items (id, name, price_cents, weight_oz, available) VALUES (?, ?, ?, ?, ?)",
		id, name, priceCents, weightOz, available,
	).Error
}

// InsertCartItem puts quantity units of an item into the customer's cart.
func (d *Database) InsertCartItem(customerID, itemID uuid.UUID, quantity int) error {
	return d.DB.Exec(
		"INSERT INTO cart_items (customer_id, item_id, quantity) VALUES (?, ?, ?)",
		customerID, itemID, quantity,
	).Error
}
