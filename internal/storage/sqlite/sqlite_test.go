package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/personas-app/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "personas.db"), Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateThenList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreatePersona(ctx, types.PersonaFields{Name: "Ada", Lastname: "Lovelace", Age: 36})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	personas, err := store.ListPersonas(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := types.Persona{ID: id, Name: "Ada", Lastname: "Lovelace", Age: 36}
	if len(personas) != 1 || personas[0] != want {
		t.Fatalf("expected [%+v], got %+v", want, personas)
	}
}

func TestListEmptyTableReturnsEmptySlice(t *testing.T) {
	store := newTestStore(t)

	personas, err := store.ListPersonas(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if personas == nil || len(personas) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", personas)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		id, err := store.CreatePersona(ctx, types.PersonaFields{Name: "Same", Lastname: "Row", Age: i})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
}

func TestUpdateOverwritesAllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreatePersona(ctx, types.PersonaFields{Name: "Ada", Lastname: "Lovelace", Age: 36})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fields := types.PersonaFields{Name: "Grace", Lastname: "", Age: 0}
	if err := store.UpdatePersonaByID(ctx, id, fields); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetPersonaByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != id || got.Fields() != fields {
		t.Fatalf("expected %+v for id %d, got %+v", fields, id, got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPersonaByID(context.Background(), 999999)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil persona, got %+v", got)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreatePersona(ctx, types.PersonaFields{Name: "Ada", Lastname: "Lovelace", Age: 36})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.DeletePersonaByID(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.GetPersonaByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected deleted persona to be gone, got %+v", got)
	}
}

func TestUpdateAndDeleteMissingAreNoOps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreatePersona(ctx, types.PersonaFields{Name: "Ada", Lastname: "Lovelace", Age: 36})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.UpdatePersonaByID(ctx, id+100, types.PersonaFields{Name: "Ghost"}); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if err := store.DeletePersonaByID(ctx, id+100); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	personas, err := store.ListPersonas(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := types.Persona{ID: id, Name: "Ada", Lastname: "Lovelace", Age: 36}
	if len(personas) != 1 || personas[0] != want {
		t.Fatalf("store changed: %+v", personas)
	}
}

func TestClosedStoreSurfacesErrors(t *testing.T) {
	store := newTestStore(t)
	store.Close()

	if _, err := store.ListPersonas(context.Background()); err == nil {
		t.Fatal("expected error from closed store")
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error from closed store")
	}
}
