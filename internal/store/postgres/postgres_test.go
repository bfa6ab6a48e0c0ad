package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/groblegark/onboard/internal/model"
	"github.com/groblegark/onboard/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func TestQueryListClients(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("acme-corp", "Acme Corp").
		AddRow("globex", "Globex")
	mock.ExpectQuery("SELECT id, name FROM clients ORDER BY name ASC").WillReturnRows(rows)

	clients, err := queryListClients(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
	if clients[0].ID != "acme-corp" || clients[0].Name != "Acme Corp" {
		t.Fatalf("got clients[0]=%+v", clients[0])
	}
}

func TestQueryListClients_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT id, name FROM clients").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	clients, err := queryListClients(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("expected no clients, got %d", len(clients))
	}
}

func TestQueryUpsertClient(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("acme-corp", "Acme Corp").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO client_states").
		WithArgs("acme-corp").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := &model.Client{ID: "acme-corp", Name: "Acme Corp"}
	if err := queryUpsertClient(context.Background(), db, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryUpsertClient_ExistingStateUntouched(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("acme-corp", "ACME!").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// ON CONFLICT DO NOTHING: zero rows affected when state already exists.
	mock.ExpectExec("INSERT INTO client_states").
		WithArgs("acme-corp").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c := &model.Client{ID: "acme-corp", Name: "ACME!"}
	if err := queryUpsertClient(context.Background(), db, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryEnsureClient(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("new-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO client_states").
		WithArgs("new-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryEnsureClient(context.Background(), db, "new-id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryEnsureClient_ExistingUntouched(t *testing.T) {
	db, mock := newMockDB(t)
	// Both inserts hit ON CONFLICT DO NOTHING.
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("acme-corp").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO client_states").
		WithArgs("acme-corp").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryEnsureClient(context.Background(), db, "acme-corp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryRenameClient(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("UPDATE clients SET name").
		WithArgs("acme-corp", "New Name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("acme-corp", "New Name"))

	c, err := queryRenameClient(context.Background(), db, "acme-corp", "New Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "acme-corp" || c.Name != "New Name" {
		t.Fatalf("got %+v", c)
	}
}

func TestQueryRenameClient_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("UPDATE clients SET name").
		WithArgs("nonexistent", "x").
		WillReturnError(sql.ErrNoRows)

	_, err := queryRenameClient(context.Background(), db, "nonexistent", "x")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}

func TestQueryDeleteClient(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").WithArgs("acme-corp").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryDeleteClient(context.Background(), db, "acme-corp"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryDeleteClient_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").WithArgs("nonexistent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryDeleteClient(context.Background(), db, "nonexistent"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}

func TestQueryGetState(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT state FROM client_states WHERE client_id = \\$1").
		WithArgs("acme-corp").
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow([]byte(`{"task1":true}`)))

	state, err := queryGetState(context.Background(), db, "acme-corp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(state) != `{"task1":true}` {
		t.Fatalf("got state=%s", state)
	}
}

func TestQueryGetState_UnknownIDReadsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT state FROM client_states WHERE client_id = \\$1").
		WithArgs("unknown-id").
		WillReturnError(sql.ErrNoRows)

	state, err := queryGetState(context.Background(), db, "unknown-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(state) != `{}` {
		t.Fatalf("expected empty object, got %s", state)
	}
}

func TestQueryGetState_NullStateReadsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT state FROM client_states WHERE client_id = \\$1").
		WithArgs("acme-corp").
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(nil))

	state, err := queryGetState(context.Background(), db, "acme-corp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(state) != `{}` {
		t.Fatalf("expected empty object, got %s", state)
	}
}

func TestQueryPutState(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO client_states").
		WithArgs("acme-corp", []byte(`{"task1":true}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryPutState(context.Background(), db, "acme-corp", model.State(`{"task1":true}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryResetAll(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM clients").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := queryResetAll(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
