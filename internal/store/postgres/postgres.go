// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and applies the schema idempotently.
// Errors here are fatal to the caller: the server must not start serving
// against an uninitialized backend.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) ListClients(ctx context.Context) ([]*model.Client, error) {
	return queryListClients(ctx, s.db)
}

func (s *PostgresStore) UpsertClient(ctx context.Context, c *model.Client) error {
	return queryUpsertClient(ctx, s.db, c)
}

func (s *PostgresStore) EnsureClient(ctx context.Context, id string) error {
	return queryEnsureClient(ctx, s.db, id)
}

func (s *PostgresStore) RenameClient(ctx context.Context, id, name string) (*model.Client, error) {
	return queryRenameClient(ctx, s.db, id, name)
}

func (s *PostgresStore) DeleteClient(ctx context.Context, id string) error {
	return queryDeleteClient(ctx, s.db, id)
}

func (s *PostgresStore) GetState(ctx context.Context, id string) (model.State, error) {
	return queryGetState(ctx, s.db, id)
}

func (s *PostgresStore) PutState(ctx context.Context, id string, state model.State) error {
	return queryPutState(ctx, s.db, id, state)
}

func (s *PostgresStore) ResetAll(ctx context.Context) error {
	return queryResetAll(ctx, s.db)
}
