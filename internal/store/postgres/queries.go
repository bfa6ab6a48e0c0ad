package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/store"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryListClients(ctx context.Context, db executor) ([]*model.Client, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM clients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func queryUpsertClient(ctx context.Context, db executor, c *model.Client) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO clients (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		c.ID, c.Name,
	)
	if err != nil {
		return err
	}

	// Seed the state row if absent. Existing state is never overwritten here.
	_, err = db.ExecContext(ctx, `
		INSERT INTO client_states (client_id, state)
		VALUES ($1, '{}'::jsonb)
		ON CONFLICT (client_id) DO NOTHING`,
		c.ID,
	)
	return err
}

func queryEnsureClient(ctx context.Context, db executor, id string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO clients (id, name)
		VALUES ($1, $1)
		ON CONFLICT (id) DO NOTHING`,
		id,
	)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO client_states (client_id, state)
		VALUES ($1, '{}'::jsonb)
		ON CONFLICT (client_id) DO NOTHING`,
		id,
	)
	return err
}

func queryRenameClient(ctx context.Context, db executor, id, name string) (*model.Client, error) {
	var c model.Client
	err := db.QueryRowContext(ctx, `
		UPDATE clients SET name = $2
		WHERE id = $1
		RETURNING id, name`,
		id, name,
	).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func queryDeleteClient(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func queryGetState(ctx context.Context, db executor, id string) (model.State, error) {
	var state []byte
	err := db.QueryRowContext(ctx,
		`SELECT state FROM client_states WHERE client_id = $1`, id,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown ids read as empty state, never as an error.
		return model.EmptyState, nil
	}
	if err != nil {
		return nil, err
	}
	if len(state) == 0 {
		return model.EmptyState, nil
	}
	return model.State(state), nil
}

func queryPutState(ctx context.Context, db executor, id string, state model.State) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO client_states (client_id, state)
		VALUES ($1, $2)
		ON CONFLICT (client_id) DO UPDATE SET state = EXCLUDED.state`,
		id, []byte(state),
	)
	return err
}

func queryResetAll(ctx context.Context, db executor) error {
	// client_states goes with it via ON DELETE CASCADE.
	_, err := db.ExecContext(ctx, `DELETE FROM clients`)
	return err
}
