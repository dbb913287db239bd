// Package persona is the request-handling core for the persona resource.
//
// Every operation issues exactly one statement through the injected
// storage.Storage and then either names a view to render or returns the
// location to redirect to. The service keeps no state of its own.
//
// A missing id is never an error: FetchForEdit returns an edit view with
// a nil persona, and Update / Delete on a missing id succeed without
// touching the store.
package persona

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/personas-app/internal/storage"
	"github.com/aanand-mishra/personas-app/internal/types"
)

// View names.
const (
	ViewList = "personas/list"
	ViewAdd  = "personas/add"
	ViewEdit = "personas/edit"
)

// ListLocation is where every successful write redirects.
const ListLocation = "/list"

// View is a template name plus the data to execute it with.
type View struct {
	Name string
	Data any
}

// ListData feeds the personas/list view.
type ListData struct {
	Personas []types.Persona
}

// EditData feeds the personas/edit view. Persona is nil when the
// requested id does not exist.
type EditData struct {
	Persona *types.Persona
}

// Service implements the five persona operations on top of a Storage.
type Service struct {
	store storage.Storage
}

// New returns a Service backed by store.
func New(store storage.Storage) *Service {
	return &Service{store: store}
}

// List returns the list view with every stored persona.
func (s *Service) List(ctx context.Context) (View, error) {
	personas, err := s.store.ListPersonas(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list personas: %w", err)
	}
	return View{Name: ViewList, Data: ListData{Personas: personas}}, nil
}

// CreateForm returns the static, empty create form.
func (s *Service) CreateForm() View {
	return View{Name: ViewAdd}
}

// Create inserts a new persona and returns the redirect location.
// Fields are stored as given.
func (s *Service) Create(ctx context.Context, fields types.PersonaFields) (string, error) {
	if _, err := s.store.CreatePersona(ctx, fields); err != nil {
		return "", fmt.Errorf("create persona: %w", err)
	}
	return ListLocation, nil
}

// FetchForEdit returns the edit view for id. When no row matches, the
// view carries a nil persona and the error is nil.
func (s *Service) FetchForEdit(ctx context.Context, id int64) (View, error) {
	p, err := s.store.GetPersonaByID(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("fetch persona %d: %w", id, err)
	}
	return View{Name: ViewEdit, Data: EditData{Persona: p}}, nil
}

// Update overwrites every field of id and returns the redirect location.
func (s *Service) Update(ctx context.Context, id int64, fields types.PersonaFields) (string, error) {
	if err := s.store.UpdatePersonaByID(ctx, id, fields); err != nil {
		return "", fmt.Errorf("update persona %d: %w", id, err)
	}
	return ListLocation, nil
}

// Delete removes id and returns the redirect location.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	if err := s.store.DeletePersonaByID(ctx, id); err != nil {
		return "", fmt.Errorf("delete persona %d: %w", id, err)
	}
	return ListLocation, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
