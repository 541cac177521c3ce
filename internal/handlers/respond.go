// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the ELV catalog site.
// Handlers are grouped by concern (catalog API, leads API, auth,
// storefront) and receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"elvcatalog/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error         string `json:"error"`
	Field         string `json:"field,omitempty"`
	SubCategories *int   `json:"subcategories,omitempty"`
	Products      *int   `json:"products,omitempty"`
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps a service error onto the API error taxonomy.
// Anything unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr *models.ValidationError
		depErr *models.DependencyError
	)
	switch {
	case errors.As(err, &depErr):
		body := errorBody{Error: depErr.Error(), Products: &depErr.Products}
		if depErr.Entity == models.EntityCategory {
			body.SubCategories = &depErr.SubCategories
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: valErr.Message, Field: valErr.Field})
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "An entry with this name already exists")
	case errors.Is(err, models.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "This email is already subscribed")
	case errors.Is(err, models.ErrInUse):
		writeError(w, http.StatusConflict, "Entry is still in use")
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// pathID parses the {id} URL parameter. An unparsable ID cannot match a
// row, so it is reported as not found.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, models.ErrNotFound
	}
	return id, nil
}

// queryID parses an optional UUID query parameter.
func queryID(r *http.Request, key string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, models.Invalid(key, "Invalid id")
	}
	return &id, nil
}

// message is the body of successful deletes.
type message struct {
	Message string `json:"message"`
}
