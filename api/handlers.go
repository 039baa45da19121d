/*
handlers.go - HTTP handler context and shared request/response helpers

PURPOSE:
  Exposes the storage contract over REST. Handlers parse the request, make
  one contract call (two for approve/reject), and serialize the result.
  They hold no business rules beyond the few that belong to the caller:
  password hashing, approve-once, and query parameter defaults.

ARCHITECTURE:
  Handler holds every dependency:
  - store:   The storage backend chosen at startup (memory, sql, proxy)
  - reports: Dashboard aggregation over the same store
  - clock:   "Today" for defaults and approval timestamps
  - cost:    bcrypt cost for new passwords

REQUEST FLOW:
  1. Parse path id / query / body (400 on malformed input)
  2. Call the store
  3. Map errors (errors.go) or write JSON

FILES:
  content.go: Quran, hadith, courses, community, users, prayer times
  org.go:     Departments, positions, employees
  hr.go:      Attendance, leave, payroll, reviews, training, recruitment
  stats.go:   Dashboard

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - server.go: Router setup and middleware
  - errors.go: Error to status mapping
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warp/portal/reporting"
	"github.com/warp/portal/seed"
	"github.com/warp/portal/storage"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	store   storage.Storage
	reports *reporting.Service
	clock   storage.Clock
	cost    int

	defaultLocation string
}

type Option func(*Handler)

// WithClock sets the clock used for "today" and approval timestamps.
func WithClock(c storage.Clock) Option {
	return func(h *Handler) { h.clock = c }
}

// WithBcryptCost sets the cost used to hash new passwords.
func WithBcryptCost(cost int) Option {
	return func(h *Handler) { h.cost = cost }
}

// NewHandler creates a handler over store.
func NewHandler(store storage.Storage, opts ...Option) *Handler {
	h := &Handler{
		store:           store,
		reports:         reporting.New(store),
		cost:            bcrypt.DefaultCost,
		defaultLocation: seed.DefaultLocation,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz reports that the process is serving.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respond writes v with status, or the mapped error.
func respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, status, v)
}

// respondFound writes *v, or 404 when the store reported it absent.
func respondFound[T any](w http.ResponseWriter, entity string, v *T, err error) {
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, entity+" not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// pathID parses the {id} URL parameter. It writes a 400 and returns false
// when the id is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id "+strconv.Quote(raw), nil)
		return 0, false
	}
	return id, true
}

// decode reads a JSON body into v. It writes a 400 and returns false on
// malformed input.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// decodeOptional is decode for bodies that may be empty.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter; absent is def.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "Invalid "+name+" "+strconv.Quote(raw), nil)
		return 0, false
	}
	return n, true
}

// =============================================================================
// CRUD SHAPES
// =============================================================================
//
// Most organization endpoints are one store call over an id and/or a body.
// These adapt a store method to that shape.

func getWith[T any](w http.ResponseWriter, r *http.Request, entity string, get func(context.Context, int64) (*T, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := get(r.Context(), id)
	respondFound(w, entity, v, err)
}

func createWith[T any](w http.ResponseWriter, r *http.Request, create func(context.Context, T) (T, error)) {
	var v T
	if !decode(w, r, &v) {
		return
	}
	created, err := create(r.Context(), v)
	respond(w, http.StatusCreated, created, err)
}

func updateWith[P, T any](w http.ResponseWriter, r *http.Request, update func(context.Context, int64, P) (T, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch P
	if !decode(w, r, &patch) {
		return
	}
	updated, err := update(r.Context(), id, patch)
	respond(w, http.StatusOK, updated, err)
}

func deleteWith(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
