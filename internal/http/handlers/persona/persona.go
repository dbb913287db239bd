// Package persona contains the HTTP handlers for the persona resource.
//
// Handlers follow the factory pattern: each exported function receives its
// dependencies once at startup and returns the http.HandlerFunc the router
// calls on every request.
//
//	mux.HandleFunc("GET /list", persona.List(svc, renderer))
//
// Every failure, whatever its cause, is answered with 500 and a
// {"message": ...} body.
package persona

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/aanand-mishra/personas-app/internal/http/views"
	service "github.com/aanand-mishra/personas-app/internal/service/persona"
	"github.com/aanand-mishra/personas-app/internal/types"
	"github.com/aanand-mishra/personas-app/internal/utils/response"
	"github.com/rs/zerolog/hlog"
)

// maxMemory bounds the in-memory part of multipart form parsing.
const maxMemory = 1 << 20

// Routes registers every persona route on mux.
//
//	GET  /            → redirect to /list
//	GET  /list        → list view
//	GET  /add         → empty create form
//	POST /add         → create, redirect to /list
//	GET  /edit/{id}   → pre-filled edit form (empty if id is unknown)
//	POST /edit/{id}   → update, redirect to /list
//	GET  /delete/{id} → delete, redirect to /list
//	GET  /healthz     → store ping
func Routes(mux *http.ServeMux, svc *service.Service, renderer *views.Renderer) {
	mux.HandleFunc("GET /{$}", Index())
	mux.HandleFunc("GET /list", List(svc, renderer))
	mux.HandleFunc("GET /add", AddForm(svc, renderer))
	mux.HandleFunc("POST /add", Create(svc))
	mux.HandleFunc("GET /edit/{id}", EditForm(svc, renderer))
	mux.HandleFunc("POST /edit/{id}", Update(svc))
	mux.HandleFunc("GET /delete/{id}", Delete(svc))
	mux.HandleFunc("GET /healthz", Health(svc))
}

// Index handles GET / by sending the browser to the list.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, service.ListLocation, http.StatusFound)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /list and renders every stored persona.
// ─────────────────────────────────────────────────────────────────────────────
func List(svc *service.Service, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)
		log.Debug().Msg("listing personas")

		view, err := svc.List(r.Context())
		if err != nil {
			fail(w, r, err)
			return
		}

		render(w, r, renderer, view)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// AddForm handles GET /add and renders the empty create form.
// ─────────────────────────────────────────────────────────────────────────────
func AddForm(svc *service.Service, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, svc.CreateForm())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /add.
//
// Body (form or JSON): name, lastname, age. Values are stored as sent; age
// is only coerced to an integer.
// ─────────────────────────────────────────────────────────────────────────────
func Create(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := hlog.FromRequest(r)

		fields, err := decodeFields(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		log.Info().Str("name", fields.Name).Str("lastname", fields.Lastname).Msg("creating a persona")

		location, err := svc.Create(r.Context(), fields)
		if err != nil {
			fail(w, r, err)
			return
		}

		http.Redirect(w, r, location, http.StatusFound)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// EditForm handles GET /edit/{id}. An unknown id renders an empty form.
// ─────────────────────────────────────────────────────────────────────────────
func EditForm(svc *service.Service, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		view, err := svc.FetchForEdit(r.Context(), id)
		if err != nil {
			fail(w, r, err)
			return
		}

		if data, ok := view.Data.(service.EditData); ok && data.Persona == nil {
			hlog.FromRequest(r).Debug().Int64("id", id).Msg("persona not found, rendering empty form")
		}

		render(w, r, renderer, view)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles POST /edit/{id}. All three fields are overwritten; an
// unknown id is a silent no-op.
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		fields, err := decodeFields(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		hlog.FromRequest(r).Info().Int64("id", id).Msg("updating a persona")

		location, err := svc.Update(r.Context(), id, fields)
		if err != nil {
			fail(w, r, err)
			return
		}

		http.Redirect(w, r, location, http.StatusFound)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles GET /delete/{id}. An unknown id is a silent no-op.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			fail(w, r, err)
			return
		}

		hlog.FromRequest(r).Info().Int64("id", id).Msg("deleting a persona")

		location, err := svc.Delete(r.Context(), id)
		if err != nil {
			fail(w, r, err)
			return
		}

		http.Redirect(w, r, location, http.StatusFound)
	}
}

// Health handles GET /healthz.
func Health(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			fail(w, r, err)
			return
		}
		response.WriteJSON(w, http.StatusOK, response.Status{Status: response.StatusOK})
	}
}

func render(w http.ResponseWriter, r *http.Request, renderer *views.Renderer, view service.View) {
	if err := renderer.Render(w, view.Name, view.Data); err != nil {
		fail(w, r, err)
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	response.Error(w, err)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", raw)
	}
	return id, nil
}

// jsonBody mirrors the form fields. Age may arrive as a number or a string.
type jsonBody struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Age      any    `json:"age"`
}

// decodeFields reads name, lastname and age from a JSON, urlencoded or
// multipart body. Missing fields are left at their zero value.
func decodeFields(r *http.Request) (types.PersonaFields, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var body jsonBody
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			return types.PersonaFields{}, fmt.Errorf("decode body: %w", err)
		}
		age, err := coerceAge(body.Age)
		if err != nil {
			return types.PersonaFields{}, err
		}
		return types.PersonaFields{Name: body.Name, Lastname: body.Lastname, Age: age}, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return types.PersonaFields{}, fmt.Errorf("parse form: %w", err)
		}

	default:
		if err := r.ParseForm(); err != nil {
			return types.PersonaFields{}, fmt.Errorf("parse form: %w", err)
		}
	}

	age, err := parseAge(r.PostForm.Get("age"))
	if err != nil {
		return types.PersonaFields{}, err
	}

	return types.PersonaFields{
		Name:     r.PostForm.Get("name"),
		Lastname: r.PostForm.Get("lastname"),
		Age:      age,
	}, nil
}

func coerceAge(v any) (int, error) {
	switch age := v.(type) {
	case nil:
		return 0, nil
	case float64:
		if age != float64(int(age)) {
			return 0, fmt.Errorf("invalid age %v: must be an integer", age)
		}
		return int(age), nil
	case string:
		return parseAge(age)
	default:
		return 0, fmt.Errorf("invalid age %v: must be an integer", age)
	}
}

// parseAge treats an empty value as 0.
func parseAge(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid age %q: must be an integer", raw)
	}
	return age, nil
}
