// Package program exposes the static catalog over HTTP.
package program

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/spacbotltd/spacbot-api/internal/catalog"
	"github.com/spacbotltd/spacbot-api/internal/utils/response"
)

// GetList handles GET /api/programs.
// Returns every catalog entry, ordered by name.
func GetList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing programs")
		response.WriteJSON(w, http.StatusOK, catalog.All())
	}
}

// GetByName handles GET /api/programs/{name}.
// Returns 404 for anything that is not a catalog key.
func GetByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		slog.Info("getting a program", slog.String("name", name))

		p, ok := catalog.Lookup(name)
		if !ok {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(errors.New("program not found")))
			return
		}

		response.WriteJSON(w, http.StatusOK, p)
	}
}
